package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	HandleHealthz().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	t.Run("Storage Reachable", func(t *testing.T) {
		storage := &MockPinger{}
		storage.On("Ping", mock.Anything).Return(nil)

		w := httptest.NewRecorder()
		HandleReadyz(storage).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
		storage.AssertExpectations(t)
	})

	for name, pingErr := range map[string]error{
		"Storage Timeout": context.DeadlineExceeded,
		"Storage Refused": errors.New("connection refused"),
	} {
		t.Run(name, func(t *testing.T) {
			storage := &MockPinger{}
			storage.On("Ping", mock.Anything).Return(pingErr)

			w := httptest.NewRecorder()
			HandleReadyz(storage).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
			assert.Contains(t, w.Body.String(), `"storage":"unavailable"`)
			storage.AssertExpectations(t)
		})
	}
}

func TestHandleReadyz_Probes(t *testing.T) {
	up := Probe{Name: "discord", Check: func(context.Context) error { return nil }}
	down := Probe{Name: "streamerbot", Check: func(context.Context) error { return errors.New("not connected") }}

	t.Run("optional probe down is degraded", func(t *testing.T) {
		storage := &MockPinger{}
		storage.On("Ping", mock.Anything).Return(nil)

		w := httptest.NewRecorder()
		HandleReadyz(storage, up, down).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp HealthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, HealthStatusDegraded, resp.Status)
		assert.Equal(t, map[string]string{
			ComponentStorage: HealthStatusOK,
			"discord":        HealthStatusOK,
			"streamerbot":    HealthStatusUnavailable,
		}, resp.Components)
	})

	t.Run("storage down wins", func(t *testing.T) {
		storage := &MockPinger{}
		storage.On("Ping", mock.Anything).Return(errors.New("refused"))

		w := httptest.NewRecorder()
		HandleReadyz(storage, down).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
	})
}

func TestHandleVersion(t *testing.T) {
	w := httptest.NewRecorder()
	HandleVersion("1.4.0").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"version":"1.4.0"`)
	assert.Contains(t, w.Body.String(), `"go_version":"go`)
}
