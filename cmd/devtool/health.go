package main

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/osse101/ContestBot_Go/internal/handler"
)

const slowHealthThreshold = time.Second

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check liveness and readiness of a running server (API_URL)"
}

func (c *HealthCheckCommand) Run(args []string) error {
	client := newAPIClient()
	PrintHeader("Health Check (" + client.baseURL + ")")

	if err := timedCheck(client, "/healthz", nil); err != nil {
		return err
	}

	var ready handler.HealthResponse
	if err := timedCheck(client, "/readyz", &ready); err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(ready.Components)) {
		if state := ready.Components[name]; state == handler.HealthStatusOK {
			PrintSuccess("  %s: %s", name, state)
		} else {
			PrintWarning("  %s: %s", name, state)
		}
	}
	if ready.Status == handler.HealthStatusDegraded {
		PrintWarning("server is ready but degraded")
	}
	return nil
}

func timedCheck(client *apiClient, path string, out interface{}) error {
	start := time.Now()
	if _, err := client.do(http.MethodGet, path, nil, out); err != nil {
		PrintError("%s failed: %v", path, err)
		return fmt.Errorf("%s: %w", path, err)
	}

	if elapsed := time.Since(start); elapsed > slowHealthThreshold {
		PrintWarning("%s slow response time (%v)", path, elapsed)
	} else {
		PrintSuccess("%s passed (response time: %v)", path, elapsed)
	}
	return nil
}
