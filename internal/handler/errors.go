package handler

// User-facing error messages. These never carry internal error details.
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgUnavailableError    = "Storage is temporarily unavailable. Please retry shortly."
	ErrMsgResourceNotFound    = "Resource not found"

	ErrMsgParticipantNotFound  = "Participant not found"
	ErrMsgContributionNotFound = "Contribution not found"
	ErrMsgTeamNotFound         = "Team not found"
	ErrMsgUnregistered         = "You need a team before you can submit"
	ErrMsgAlreadyAssigned      = "Participant is already on a different team"
	ErrMsgTeamExists           = "Team already exists"

	ErrMsgDuplicatePayload = "That has already been submitted"
	ErrMsgInvalidKind      = "Kind must be article or photo"
	ErrMsgInvalidPayload   = "Submission payload is not valid"
	ErrMsgAlreadyDecided   = "Contribution has already been decided"
	ErrMsgInvalidOutcome   = "Outcome must be approve or reject"
)

// Request parsing messages
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidContributionID = "Invalid contribution id"
	ErrMsgInvalidLimit          = "Invalid 'limit' (must be 1-%d)"
	ErrMsgInvalidTimestamp      = "Invalid '%s' timestamp format (use RFC3339)"
	ErrMsgEmptyImport           = "Import must contain at least one row"
	ErrMsgImportTooLarge        = "Import exceeds %d rows"
	ErrMsgEventTypeRequired     = "Event type is required"
	ErrMsgInvalidPayloadJSON    = "Invalid payload JSON"
	ErrMsgGatherMetricsFailed   = "Failed to gather metrics"
)

// Success messages
const (
	MsgTeamAssigned     = "Team assigned"
	MsgTeamOverridden   = "Team overridden"
	MsgEventBroadcasted = "Event broadcasted successfully"
)

// Log messages
const (
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgOperationFailed  = "Request failed"
	LogMsgOperationRefused = "Request refused"
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgProbeFailed      = "Optional dependency probe failed"
)

// Request limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 1000
	MaxImportRows    = 5000
)
