package domain

import "time"

// Participant is a contest entrant, keyed by the platform-assigned identifier.
type Participant struct {
	ID          string    `json:"participant_id"`
	DisplayName string    `json:"display_name"`
	TeamID      string    `json:"team_id,omitempty"` // empty until assigned
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasTeam reports whether the participant may submit contributions.
func (p *Participant) HasTeam() bool {
	return p != nil && p.TeamID != ""
}

// Team is a competing group. Teams are never deleted.
type Team struct {
	ID        string    `json:"team_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportRow is one line of a bulk participant import.
type ImportRow struct {
	ParticipantID string `json:"participant_id" validate:"required,max=100"`
	TeamID        string `json:"team_id" validate:"required,max=100"`
	DisplayName   string `json:"display_name" validate:"max=100"`
}

// ImportStatus is the per-row outcome of a bulk import
type ImportStatus string

const (
	ImportStatusAssigned  ImportStatus = "assigned"
	ImportStatusUnchanged ImportStatus = "unchanged"
	ImportStatusFailed    ImportStatus = "failed"
)

// ImportResult reports what happened to a single import row.
type ImportResult struct {
	Row           int          `json:"row"`
	ParticipantID string       `json:"participant_id"`
	Status        ImportStatus `json:"status"`
	Error         string       `json:"error,omitempty"`
}
