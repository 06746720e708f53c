package sse

import "github.com/osse101/ContestBot_Go/internal/domain"

// LeaderboardUpdatedPayload is pushed after an approval or recompute changes totals
type LeaderboardUpdatedPayload struct {
	Reason    string                    `json:"reason"`
	Standings []domain.LeaderboardEntry `json:"standings"`
}

// ConnectedPayload is the body of the first message on a stream
type ConnectedPayload struct {
	ClientID string   `json:"client_id"`
	Filters  []string `json:"filters,omitempty"`
	TeamID   string   `json:"team_id,omitempty"`
}
