package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/ContestBot_Go/internal/domain"
	"github.com/osse101/ContestBot_Go/internal/validation"
)

// ContestFile is the declarative team and roster setup loaded from CONTEST_CONFIG_PATH
type ContestFile struct {
	Version string             `json:"version"`
	Teams   []ContestTeam      `json:"teams"`
	Roster  []domain.ImportRow `json:"roster,omitempty"`
}

// ContestTeam declares a team. Name defaults to the ID.
type ContestTeam struct {
	ID   string `json:"team_id"`
	Name string `json:"name,omitempty"`
}

// LoadContestFile reads a contest file and checks it against the embedded schema
// before decoding. Roster rows must reference a team declared in the same file.
func LoadContestFile(path string, v validation.SchemaValidator) (*ContestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contest config %s: %w", path, err)
	}

	if err := v.ValidateBytes(data, validation.SchemaContest); err != nil {
		return nil, fmt.Errorf("invalid contest config %s: %w", path, err)
	}

	var file ContestFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode contest config %s: %w", path, err)
	}

	declared := make(map[string]struct{}, len(file.Teams))
	for _, t := range file.Teams {
		declared[t.ID] = struct{}{}
	}
	for i, row := range file.Roster {
		if _, ok := declared[row.TeamID]; !ok {
			return nil, fmt.Errorf("invalid contest config %s: roster row %d references undeclared team %q", path, i, row.TeamID)
		}
	}

	return &file, nil
}
