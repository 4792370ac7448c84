package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fysiofunnel/api/internal/entity"
)

type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{DB: db}
}

// Insert appends one event. occurred_at is assigned by the database so
// ordering within one connection pool stays consistent. lead_id goes in
// unchecked, the table has no foreign key on purpose.
func (r *EventRepository) Insert(ctx context.Context, ev *entity.FunnelEvent) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if ev.Actor == "" {
		ev.Actor = entity.ActorSystem
	}
	if ev.Metadata == nil {
		ev.Metadata = entity.Metadata{}
	}

	query := `
		INSERT INTO lead_events (lead_id, practice_code, event_type, actor, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, occurred_at
	`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		ev.LeadID,
		ev.PracticeCode,
		string(ev.EventType),
		ev.Actor,
		ev.Metadata,
	).Scan(
		&ev.ID,
		&ev.OccurredAt,
	)

	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	return nil
}

func (r *EventRepository) ListByPracticeRange(ctx context.Context, practiceCode string, from, toExclusive time.Time) ([]entity.FunnelEvent, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, lead_id, practice_code, event_type, actor, occurred_at, metadata
		FROM lead_events
		WHERE practice_code = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY id
	`

	rows, err := r.DB.QueryContext(ctx, query, practiceCode, from, toExclusive)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []entity.FunnelEvent
	for rows.Next() {
		var ev entity.FunnelEvent
		var leadID sql.NullInt64
		if err := rows.Scan(
			&ev.ID,
			&leadID,
			&ev.PracticeCode,
			&ev.EventType,
			&ev.Actor,
			&ev.OccurredAt,
			&ev.Metadata,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if leadID.Valid {
			ev.LeadID = &leadID.Int64
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// CountByTypeRange aggregates events per type inside [from, toExclusive).
// Types without events are simply absent from the map.
func (r *EventRepository) CountByTypeRange(ctx context.Context, practiceCode string, from, toExclusive time.Time) (map[entity.EventType]int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT event_type, COUNT(*)
		FROM lead_events
		WHERE practice_code = $1 AND occurred_at >= $2 AND occurred_at < $3
		GROUP BY event_type
	`

	rows, err := r.DB.QueryContext(ctx, query, practiceCode, from, toExclusive)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.EventType]int)
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[entity.EventType(eventType)] = count
	}

	return counts, rows.Err()
}

// DailyCountsRange buckets events per calendar day and type, ordered by day
// then type. Days without events produce no row.
func (r *EventRepository) DailyCountsRange(ctx context.Context, practiceCode string, from, toExclusive time.Time) ([]entity.DailyCount, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT occurred_at::date AS day, event_type, COUNT(*)
		FROM lead_events
		WHERE practice_code = $1 AND occurred_at >= $2 AND occurred_at < $3
		GROUP BY day, event_type
		ORDER BY day, event_type
	`

	rows, err := r.DB.QueryContext(ctx, query, practiceCode, from, toExclusive)
	if err != nil {
		return nil, fmt.Errorf("bucket events: %w", err)
	}
	defer rows.Close()

	var counts []entity.DailyCount
	for rows.Next() {
		var dc entity.DailyCount
		var eventType string
		if err := rows.Scan(&dc.Day, &eventType, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan bucket: %w", err)
		}
		dc.EventType = entity.EventType(eventType)
		counts = append(counts, dc)
	}

	return counts, rows.Err()
}
