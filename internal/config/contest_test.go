package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ContestBot_Go/internal/validation"
)

func writeContestFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contest.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadContestFile(t *testing.T) {
	path := writeContestFile(t, `{
		"version": "1.0",
		"teams": [{"team_id": "red", "name": "Red"}, {"team_id": "blue"}],
		"roster": [{"participant_id": "u1", "team_id": "red", "display_name": "Ana"}]
	}`)

	file, err := LoadContestFile(path, validation.NewSchemaValidator())
	require.NoError(t, err)
	require.Len(t, file.Teams, 2)
	assert.Equal(t, "Red", file.Teams[0].Name)
	assert.Empty(t, file.Teams[1].Name)
	require.Len(t, file.Roster, 1)
	assert.Equal(t, "u1", file.Roster[0].ParticipantID)
	assert.Equal(t, "Ana", file.Roster[0].DisplayName)
}

func TestLoadContestFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"schema violation", `{"version": "1.0", "teams": [{"name": "no id"}]}`, "invalid contest config"},
		{"undeclared team", `{"version": "1.0", "teams": [{"team_id": "red"}],
			"roster": [{"participant_id": "u1", "team_id": "green"}]}`, `undeclared team "green"`},
		{"not json", `teams: [red]`, "failed to parse JSON data"},
	}

	v := validation.NewSchemaValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadContestFile(writeContestFile(t, tt.body), v)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadContestFile_Missing(t *testing.T) {
	_, err := LoadContestFile(filepath.Join(t.TempDir(), "nope.json"), validation.NewSchemaValidator())
	assert.ErrorContains(t, err, "failed to read contest config")
}
