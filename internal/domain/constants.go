package domain

import "time"

// Default point awards. Deployments override these through configuration.
const (
	DefaultArticlePoints int64 = 10
	DefaultPhotoPoints   int64 = 5
)

// Field limits
const (
	MaxParticipantIDLength = 100
	MaxDisplayNameLength   = 100
	MaxTeamIDLength        = 100
	MaxTeamNameLength      = 100
	MaxPayloadLength       = 2048
	MaxCaptionLength       = 1000
	MaxRejectReasonLength  = 500
)

// DefaultPendingPageSize is the keyset page size used when listing the pending queue.
const DefaultPendingPageSize = 50

// LifetimeWindow disables the time bound on duplicate detection.
const LifetimeWindow time.Duration = 0
