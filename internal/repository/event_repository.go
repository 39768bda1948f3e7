package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"draftweaver/internal/models"
)

// EventRepository is append-only. There is deliberately no update or delete.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	ListByOwner(ctx context.Context, owner int64, limit int) ([]*models.Event, error)
}

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	query := `
		INSERT INTO events (owner, kind, ref_id, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var refID interface{}
	if event.RefID != 0 {
		refID = event.RefID
	}
	var payload interface{}
	if len(event.Payload) > 0 {
		payload = []byte(event.Payload)
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query, event.Owner, event.Kind, refID, payload).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *eventRepository) ListByOwner(ctx context.Context, owner int64, limit int) ([]*models.Event, error) {
	query := `
		SELECT id, owner, kind, ref_id, payload, created_at
		FROM events
		WHERE owner = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, owner, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		var refID sql.NullInt64
		var payload []byte
		err := rows.Scan(&event.ID, &event.Owner, &event.Kind, &refID, &payload, &event.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		event.RefID = refID.Int64
		event.Payload = payload
		events = append(events, &event)
	}
	return events, nil
}
