package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/handler"
)

// SeedCommand loads a roster CSV (participant_id,team_id[,display_name]) into a
// running server: it creates every team it mentions, then imports the rows.
type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Seed teams and participants from a roster CSV via the API"
}

func (c *SeedCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("roster file required: seed <roster.csv>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open roster %s: %w", args[0], err)
	}
	defer f.Close()

	rows, err := parseRoster(f)
	if err != nil {
		return err
	}
	PrintInfo("Parsed %d roster rows", len(rows))

	client := newAPIClient()
	created := 0
	for _, teamID := range uniqueTeams(rows) {
		status, err := client.do(http.MethodPost, "/api/v1/teams",
			handler.CreateTeamRequest{TeamID: teamID, Name: teamID}, nil, http.StatusConflict)
		if err != nil {
			return err
		}
		if status != http.StatusConflict {
			created++
		}
	}
	PrintSuccess("Teams ready (%d created)", created)

	var assigned, failed int
	for start := 0; start < len(rows); start += handler.MaxImportRows {
		end := min(start+handler.MaxImportRows, len(rows))
		var resp handler.ImportParticipantsResponse
		if _, err := client.do(http.MethodPost, "/api/v1/admin/participants/import",
			handler.ImportParticipantsRequest{Rows: rows[start:end]}, &resp); err != nil {
			return err
		}
		assigned += resp.Assigned
		failed += resp.Failed
		for _, r := range resp.Results {
			if r.Error != "" {
				PrintWarning("%s: %s", r.ParticipantID, r.Error)
			}
		}
	}

	if failed > 0 {
		PrintWarning("Imported with %d failed rows (%d assigned)", failed, assigned)
		return nil
	}
	PrintSuccess("Seed complete (%d assigned)", assigned)
	return nil
}

// parseRoster reads participant_id,team_id[,display_name] records. A first
// record starting with participant_id is treated as a header.
func parseRoster(r io.Reader) ([]domain.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []domain.ImportRow
	for line := 1; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roster line %d: %w", line, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "participant_id") {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("roster line %d: expected participant_id,team_id[,display_name]", line)
		}
		row := domain.ImportRow{
			ParticipantID: strings.TrimSpace(rec[0]),
			TeamID:        strings.TrimSpace(rec[1]),
		}
		if len(rec) > 2 {
			row.DisplayName = strings.TrimSpace(rec[2])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func uniqueTeams(rows []domain.ImportRow) []string {
	seen := make(map[string]bool)
	var teams []string
	for _, r := range rows {
		if r.TeamID == "" || seen[r.TeamID] {
			continue
		}
		seen[r.TeamID] = true
		teams = append(teams, r.TeamID)
	}
	return teams
}
