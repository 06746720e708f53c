package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osse101/ContestBot_Go/internal/repository"
)

var _ repository.EventLog = (*EventLog)(nil)

// EventLog is an append-only in-memory event log
type EventLog struct {
	mu      sync.RWMutex
	entries []repository.EventLogEntry
	nextID  int64
	now     func() time.Time
}

// NewEventLog creates an empty in-memory event log
func NewEventLog() *EventLog {
	return &EventLog{now: time.Now}
}

func (l *EventLog) LogEvent(ctx context.Context, eventType string, participantID *string, payload, metadata map[string]interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	var pid *string
	if participantID != nil {
		v := *participantID
		pid = &v
	}
	l.entries = append(l.entries, repository.EventLogEntry{
		ID:            l.nextID,
		EventType:     eventType,
		ParticipantID: pid,
		Payload:       payload,
		Metadata:      metadata,
		CreatedAt:     l.now(),
	})
	return nil
}

func (l *EventLog) GetEvents(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []repository.EventLogEntry
	for _, e := range l.entries {
		if filter.ParticipantID != nil && (e.ParticipantID == nil || *e.ParticipantID != *filter.ParticipantID) {
			continue
		}
		if filter.EventType != nil && e.EventType != *filter.EventType {
			continue
		}
		if filter.Since != nil && e.CreatedAt.Before(*filter.Since) {
			continue
		}
		if filter.Until != nil && e.CreatedAt.After(*filter.Until) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (l *EventLog) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-time.Duration(retentionDays) * 24 * time.Hour)
	kept := l.entries[:0]
	var removed int64
	for _, e := range l.entries {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	l.entries = kept
	return removed, nil
}
