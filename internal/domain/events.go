package domain

// Event type string constants for contest activity.
// The event package re-types these for the bus.
const (
	// EventTypeContributionSubmitted is published after a pending contribution is stored
	EventTypeContributionSubmitted = "contribution.submitted"

	// EventTypeContributionDecided is published after a moderation decision commits
	EventTypeContributionDecided = "contribution.decided"

	// EventTypeTeamAssigned is published when a participant joins or is moved to a team
	EventTypeTeamAssigned = "participant.team_assigned"

	// EventTypeLeaderboardRecomputed is published after running totals are rebuilt
	EventTypeLeaderboardRecomputed = "leaderboard.recomputed"
)
