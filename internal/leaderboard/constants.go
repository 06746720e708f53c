package leaderboard

// Log messages
const (
	LogMsgRecomputed        = "Leaderboard recomputed"
	LogMsgDriftDetected     = "Team total drifted from approved contributions"
	LogMsgReconcileClean    = "Leaderboard reconcile found no drift"
	LogErrFailedToRecompute = "Failed to recompute leaderboard"
	LogErrFailedToVerify    = "Failed to verify leaderboard"
)
