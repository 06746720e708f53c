package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ContestBot_Go/internal/repository"
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) repository.EventLog {
	return &eventLogRepository{db: db}
}

// LogEvent stores an event. A nil metadata map is stored as SQL NULL.
func (r *eventLogRepository) LogEvent(ctx context.Context, eventType string, participantID *string, payload, metadata map[string]interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}
	var metadataJSON []byte
	if metadata != nil {
		if metadataJSON, err = json.Marshal(metadata); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
		}
	}

	if _, err := r.db.Exec(ctx, insertEventSQL, eventType, participantID, payloadJSON, metadataJSON); err != nil {
		return wrapErr(ErrMsgFailedToLogEvent, err)
	}
	return nil
}

const insertEventSQL = `
	INSERT INTO event_log (event_type, participant_id, payload, metadata)
	VALUES ($1, $2, $3, $4)`

// Unset filter fields bind as NULL and drop out of the WHERE clause; LIMIT NULL returns every row.
const selectEventsSQL = `
	SELECT id, event_type, participant_id, payload, metadata, created_at
	FROM event_log
	WHERE ($1::text IS NULL OR participant_id = $1)
	  AND ($2::text IS NULL OR event_type = $2)
	  AND ($3::timestamptz IS NULL OR created_at >= $3)
	  AND ($4::timestamptz IS NULL OR created_at <= $4)
	ORDER BY created_at DESC, id DESC
	LIMIT $5`

// GetEvents returns matching events, newest first
func (r *eventLogRepository) GetEvents(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	var limit *int
	if filter.Limit > 0 {
		limit = &filter.Limit
	}

	rows, err := r.db.Query(ctx, selectEventsSQL,
		filter.ParticipantID, filter.EventType, filter.Since, filter.Until, limit)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetEvents, err)
	}

	// columns line up with the EventLogEntry fields; jsonb scans straight into the maps
	events, err := pgx.CollectRows(rows, pgx.RowToStructByPos[repository.EventLogEntry])
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToGetEvents, err)
	}
	return events, nil
}

// CleanupOldEvents deletes events older than retentionDays whole days
func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM event_log WHERE created_at < NOW() - make_interval(days => $1)`,
		retentionDays)
	if err != nil {
		return 0, wrapErr(ErrMsgFailedToCleanupEvents, err)
	}
	return tag.RowsAffected(), nil
}
