package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgNotFound             = "not found"
	ErrMsgParticipantNotFound  = "participant not found"
	ErrMsgContributionNotFound = "contribution not found"
	ErrMsgTeamNotFound         = "team not found"

	// Registry errors
	ErrMsgUnregistered    = "participant has no team assignment"
	ErrMsgAlreadyAssigned = "participant already assigned to a different team"
	ErrMsgTeamExists      = "team already exists"

	// Submission errors
	ErrMsgDuplicatePayload = "duplicate payload"
	ErrMsgInvalidKind      = "invalid contribution kind"
	ErrMsgInvalidPayload   = "invalid payload"

	// Moderation errors
	ErrMsgAlreadyDecided  = "contribution already decided"
	ErrMsgInvalidOutcome  = "invalid moderation outcome"
	ErrMsgInvalidStateMsg = "invalid contribution state"

	// Database/System errors
	ErrMsgStorageUnavailable = "storage unavailable"
	ErrMsgTxClosed           = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotFound = errors.New(ErrMsgNotFound)

	ErrUnregistered    = errors.New(ErrMsgUnregistered)
	ErrAlreadyAssigned = errors.New(ErrMsgAlreadyAssigned)
	ErrTeamExists      = errors.New(ErrMsgTeamExists)

	ErrDuplicatePayload = errors.New(ErrMsgDuplicatePayload)
	ErrInvalidKind      = errors.New(ErrMsgInvalidKind)
	ErrInvalidPayload   = errors.New(ErrMsgInvalidPayload)

	ErrAlreadyDecided = errors.New(ErrMsgAlreadyDecided)
	ErrInvalidOutcome = errors.New(ErrMsgInvalidOutcome)
	ErrInvalidState   = errors.New(ErrMsgInvalidStateMsg)

	// ErrStorageUnavailable marks transient storage failures. Callers may retry with backoff.
	ErrStorageUnavailable = errors.New(ErrMsgStorageUnavailable)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// Specific not-found errors. Each matches ErrNotFound under errors.Is.
var (
	ErrParticipantNotFound  = &notFoundError{msg: ErrMsgParticipantNotFound}
	ErrContributionNotFound = &notFoundError{msg: ErrMsgContributionNotFound}
	ErrTeamNotFound         = &notFoundError{msg: ErrMsgTeamNotFound}
)

type notFoundError struct {
	msg string
}

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound
}
