package domain

import (
	"fmt"
	"slices"
	"time"
)

// ContributionKind is the closed set of submission types.
type ContributionKind string

const (
	KindArticle ContributionKind = "article"
	KindPhoto   ContributionKind = "photo"
)

// AllKinds lists every supported contribution kind in display order.
var AllKinds = []ContributionKind{KindArticle, KindPhoto}

// ParseKind validates a raw kind string.
func ParseKind(s string) (ContributionKind, error) {
	if k := ContributionKind(s); slices.Contains(AllKinds, k) {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// ContributionState is the moderation lifecycle state.
// pending -> approved | rejected; both outcomes are terminal.
type ContributionState string

const (
	StatePending  ContributionState = "pending"
	StateApproved ContributionState = "approved"
	StateRejected ContributionState = "rejected"
)

// IsTerminal reports whether no further transition is allowed.
func (s ContributionState) IsTerminal() bool {
	return s == StateApproved || s == StateRejected
}

// Contribution is a single submission and its moderation record.
type Contribution struct {
	ID            int64             `json:"contribution_id"`
	ParticipantID string            `json:"participant_id"`
	TeamID        string            `json:"team_id"` // frozen at submission
	Kind          ContributionKind  `json:"kind"`
	Payload       string            `json:"payload"`
	PayloadKey    string            `json:"-"`
	Caption       string            `json:"caption,omitempty"`
	SubmittedAt   time.Time         `json:"submitted_at"`
	State         ContributionState `json:"state"`
	ModeratorID   string            `json:"moderator_id,omitempty"`
	DecidedAt     *time.Time        `json:"decided_at,omitempty"`
	RejectReason  string            `json:"reject_reason,omitempty"`
	AwardedPoints int64             `json:"awarded_points"`
}

// Validate checks the points/state coupling: points are awarded iff approved.
func (c *Contribution) Validate() error {
	switch c.State {
	case StateApproved:
		if c.AwardedPoints <= 0 {
			return fmt.Errorf("%w: approved contribution %d has no points", ErrInvalidState, c.ID)
		}
	case StatePending, StateRejected:
		if c.AwardedPoints != 0 {
			return fmt.Errorf("%w: %s contribution %d carries points", ErrInvalidState, c.State, c.ID)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidState, c.State)
	}
	return nil
}

// PendingFilter narrows a pending-queue listing. Zero values mean "any".
type PendingFilter struct {
	Kind   ContributionKind
	TeamID string
}

// Matches reports whether c passes the filter.
func (f PendingFilter) Matches(c *Contribution) bool {
	if f.Kind != "" && c.Kind != f.Kind {
		return false
	}
	if f.TeamID != "" && c.TeamID != f.TeamID {
		return false
	}
	return true
}

// PendingCursor is a keyset position in the (SubmittedAt, ID) ordering.
type PendingCursor struct {
	SubmittedAt time.Time
	ID          int64
}

// After reports whether c sorts strictly after the cursor.
func (cur PendingCursor) After(c *Contribution) bool {
	if c.SubmittedAt.Equal(cur.SubmittedAt) {
		return c.ID > cur.ID
	}
	return c.SubmittedAt.After(cur.SubmittedAt)
}

// DecisionOutcome is a moderator verdict.
type DecisionOutcome string

const (
	OutcomeApprove DecisionOutcome = "approve"
	OutcomeReject  DecisionOutcome = "reject"
)

// ParseOutcome validates a raw outcome string.
func ParseOutcome(s string) (DecisionOutcome, error) {
	switch DecisionOutcome(s) {
	case OutcomeApprove, OutcomeReject:
		return DecisionOutcome(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
}

// TargetState maps an outcome to the terminal state it produces.
func (o DecisionOutcome) TargetState() ContributionState {
	if o == OutcomeApprove {
		return StateApproved
	}
	return StateRejected
}

// ModerationDecision is the input to the moderation engine.
type ModerationDecision struct {
	ModeratorID    string
	ContributionID int64
	Outcome        DecisionOutcome
	Reason         string
}

// Transition is the state change applied by a compare-and-swap on a pending contribution.
type Transition struct {
	To            ContributionState
	ModeratorID   string
	DecidedAt     time.Time
	Reason        string
	AwardedPoints int64
}

// PointsTable maps each kind to its fixed award.
type PointsTable map[ContributionKind]int64

// PointsFor returns the award for kind, or an error for unknown kinds.
func (t PointsTable) PointsFor(kind ContributionKind) (int64, error) {
	pts, ok := t[kind]
	if !ok || pts <= 0 {
		return 0, fmt.Errorf("%w: no points configured for %q", ErrInvalidKind, kind)
	}
	return pts, nil
}
