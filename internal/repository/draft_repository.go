package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"draftweaver/internal/models"
)

type DraftRepository interface {
	Create(ctx context.Context, tx *sql.Tx, draft *models.Draft) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Draft, error)
	GetByOwner(ctx context.Context, owner int64) ([]*models.Draft, error)
	CheckByOwner(ctx context.Context, draftID, owner int64) (bool, error)
	Update(ctx context.Context, draft *models.Draft) error
	UpdateStatus(ctx context.Context, status string, draftID int64) error
	UpdateMetadata(ctx context.Context, status string, metadata models.DraftMetadata, draftID int64) error
	UpdateCaption(ctx context.Context, caption, status string, draftID int64) error
	Remove(ctx context.Context, id int64) error
}

type draftRepository struct {
	db *sql.DB
}

func NewDraftRepository(db *sql.DB) DraftRepository {
	return &draftRepository{db: db}
}

const draftColumns = `id, owner, media_type, media_path, title, caption, hashtags, target_instagram, target_tiktok, status, metadata, desired_publish_at, created_at, updated_at`

func scanDraft(row interface{ Scan(...interface{}) error }) (*models.Draft, error) {
	var draft models.Draft
	var title, caption, hashtags sql.NullString
	var desired sql.NullTime

	err := row.Scan(&draft.ID, &draft.Owner, &draft.MediaType, &draft.MediaPath,
		&title, &caption, &hashtags, &draft.TargetInstagram, &draft.TargetTiktok,
		&draft.Status, &draft.Metadata, &desired, &draft.CreatedAt, &draft.UpdatedAt)
	if err != nil {
		return nil, err
	}

	draft.Title = title.String
	draft.Caption = caption.String
	draft.Hashtags = hashtags.String
	if desired.Valid {
		t := desired.Time
		draft.DesiredPublishAt = &t
	}
	return &draft, nil
}

func (r *draftRepository) Create(ctx context.Context, tx *sql.Tx, draft *models.Draft) (int64, error) {
	query := `
		INSERT INTO drafts (owner, media_type, media_path, title, caption, hashtags, target_instagram, target_tiktok, status, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{draft.Owner, draft.MediaType, draft.MediaPath, draft.Title,
		draft.Caption, draft.Hashtags, draft.TargetInstagram, draft.TargetTiktok,
		draft.Status, draft.Metadata}

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *draftRepository) GetByID(ctx context.Context, id int64) (*models.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	draft, err := scanDraft(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return draft, nil
}

func (r *draftRepository) GetByOwner(ctx context.Context, owner int64) ([]*models.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE owner = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var drafts []*models.Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func (r *draftRepository) CheckByOwner(ctx context.Context, draftID, owner int64) (bool, error) {
	query := "SELECT 1 FROM drafts WHERE id = $1 AND owner = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, draftID, owner).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *draftRepository) Update(ctx context.Context, draft *models.Draft) error {
	query := `
		UPDATE drafts
		SET title = $1,
			caption = $2,
			hashtags = $3,
			target_instagram = $4,
			target_tiktok = $5,
			desired_publish_at = $6,
			updated_at = $7
		WHERE id = $8
	`
	var desired interface{}
	if draft.DesiredPublishAt != nil {
		desired = *draft.DesiredPublishAt
	}
	_, err := r.db.ExecContext(ctx, query, draft.Title, draft.Caption, draft.Hashtags,
		draft.TargetInstagram, draft.TargetTiktok, desired, time.Now(), draft.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *draftRepository) UpdateStatus(ctx context.Context, status string, draftID int64) error {
	query := `
		UPDATE drafts
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), draftID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *draftRepository) UpdateMetadata(ctx context.Context, status string, metadata models.DraftMetadata, draftID int64) error {
	query := `
		UPDATE drafts
		SET status = $1,
			metadata = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, status, metadata, time.Now(), draftID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *draftRepository) UpdateCaption(ctx context.Context, caption, status string, draftID int64) error {
	query := `
		UPDATE drafts
		SET caption = $1,
			status = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, caption, status, time.Now(), draftID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *draftRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM drafts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
