package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"draftweaver/internal/models"
)

type ScheduledPostRepository interface {
	Create(ctx context.Context, tx *sql.Tx, sp *models.ScheduledPost) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error)
	ListByDraftID(ctx context.Context, draftID int64) ([]*models.ScheduledPost, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]*models.ScheduledPost, error)
	ListUpcoming(ctx context.Context, owner int64, limit int) ([]*models.ScheduledPost, error)
	MarkPosted(ctx context.Context, id int64, externalPostID string) error
	CountUnposted(ctx context.Context, draftID int64) (int, error)
}

type scheduledPostRepository struct {
	db *sql.DB
}

func NewScheduledPostRepository(db *sql.DB) ScheduledPostRepository {
	return &scheduledPostRepository{db: db}
}

const scheduledPostColumns = `id, draft_id, platform, scheduled_for, status, external_post_id, created_at, updated_at`

func scanScheduledPost(row interface{ Scan(...interface{}) error }) (*models.ScheduledPost, error) {
	var sp models.ScheduledPost
	var externalID sql.NullString

	err := row.Scan(&sp.ID, &sp.DraftID, &sp.Platform, &sp.ScheduledFor,
		&sp.Status, &externalID, &sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		return nil, err
	}

	sp.ExternalPostID = externalID.String
	return &sp, nil
}

func (r *scheduledPostRepository) Create(ctx context.Context, tx *sql.Tx, sp *models.ScheduledPost) (int64, error) {
	query := `
		INSERT INTO scheduled_posts (draft_id, platform, scheduled_for, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, sp.DraftID, sp.Platform, sp.ScheduledFor, sp.Status).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, sp.DraftID, sp.Platform, sp.ScheduledFor, sp.Status).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *scheduledPostRepository) GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	sp, err := scanScheduledPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return sp, nil
}

func (r *scheduledPostRepository) ListByDraftID(ctx context.Context, draftID int64) ([]*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE draft_id = $1`

	rows, err := r.db.QueryContext(ctx, query, draftID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return collectScheduledPosts(rows)
}

func (r *scheduledPostRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*models.ScheduledPost, error) {
	query := `
		SELECT ` + scheduledPostColumns + `
		FROM scheduled_posts
		WHERE status = $1 AND scheduled_for <= $2
		ORDER BY scheduled_for
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, models.ScheduledPostStatusScheduled, now, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return collectScheduledPosts(rows)
}

func (r *scheduledPostRepository) ListUpcoming(ctx context.Context, owner int64, limit int) ([]*models.ScheduledPost, error) {
	query := `
		SELECT sp.id, sp.draft_id, sp.platform, sp.scheduled_for, sp.status, sp.external_post_id, sp.created_at, sp.updated_at
		FROM scheduled_posts sp
		JOIN drafts d ON d.id = sp.draft_id
		WHERE d.owner = $1 AND sp.status = $2
		ORDER BY sp.scheduled_for
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, owner, models.ScheduledPostStatusScheduled, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return collectScheduledPosts(rows)
}

func (r *scheduledPostRepository) MarkPosted(ctx context.Context, id int64, externalPostID string) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			external_post_id = COALESCE(NULLIF($2, ''), external_post_id),
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.ScheduledPostStatusPosted, externalPostID, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduledPostRepository) CountUnposted(ctx context.Context, draftID int64) (int, error) {
	query := `SELECT COUNT(*) FROM scheduled_posts WHERE draft_id = $1 AND status <> $2`

	var count int
	err := r.db.QueryRowContext(ctx, query, draftID, models.ScheduledPostStatusPosted).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

func collectScheduledPosts(rows *sql.Rows) ([]*models.ScheduledPost, error) {
	var sps []*models.ScheduledPost
	for rows.Next() {
		sp, err := scanScheduledPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		sps = append(sps, sp)
	}
	return sps, nil
}
