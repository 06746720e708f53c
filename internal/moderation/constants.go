package moderation

// Log messages
const (
	LogMsgDecisionCommitted = "Moderation decision committed"
	LogMsgAlreadyDecided    = "Contribution already decided"

	LogErrFailedToBegin    = "Failed to begin moderation transaction"
	LogErrFailedTransition = "Failed to transition contribution"
	LogErrFailedIncrement  = "Failed to increment team total"
	LogErrFailedCommit     = "Failed to commit moderation decision"
)
