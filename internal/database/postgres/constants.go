package postgres

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Registry Operations
const (
	ErrMsgFailedToGetParticipant    = "failed to get participant"
	ErrMsgFailedToUpsertParticipant = "failed to upsert participant"
	ErrMsgFailedToAssignTeam        = "failed to assign team"
	ErrMsgFailedToCreateTeam        = "failed to create team"
	ErrMsgFailedToGetTeam           = "failed to get team"
	ErrMsgFailedToListTeams         = "failed to list teams"
)

// Error Messages - Contribution Operations
const (
	ErrMsgFailedToLockParticipant    = "failed to lock participant"
	ErrMsgFailedToCheckDuplicate     = "failed to check duplicate payload"
	ErrMsgFailedToInsertContribution = "failed to insert contribution"
	ErrMsgFailedToGetContribution    = "failed to get contribution"
	ErrMsgFailedToListPending        = "failed to list pending contributions"
	ErrMsgFailedToTransition         = "failed to transition contribution"
	ErrMsgFailedToIncrementTotal     = "failed to increment team total"
)

// Error Messages - Leaderboard Operations
const (
	ErrMsgFailedToListTotals  = "failed to list team totals"
	ErrMsgFailedToGetTotal    = "failed to get team total"
	ErrMsgFailedToTally       = "failed to tally approved contributions"
	ErrMsgFailedToLockScores  = "failed to lock team scores"
	ErrMsgFailedToWriteTotals = "failed to write team totals"
)

// Error Messages - Event Log Operations
const (
	ErrMsgFailedToLogEvent      = "failed to log event"
	ErrMsgFailedToGetEvents     = "failed to get events"
	ErrMsgFailedToCleanupEvents = "failed to cleanup events"
)

// contributionColumns is the shared projection for contribution rows
const contributionColumns = `contribution_id, participant_id, team_id, kind, payload, payload_key, caption,
	submitted_at, state, COALESCE(moderator_id, ''), decided_at, reject_reason, awarded_points`
