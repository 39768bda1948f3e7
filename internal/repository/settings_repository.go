package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"draftweaver/internal/models"
)

type SettingsRepository interface {
	GetByOwner(ctx context.Context, owner int64) (*models.Settings, bool, error)
	Upsert(ctx context.Context, settings *models.Settings) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByOwner(ctx context.Context, owner int64) (*models.Settings, bool, error) {
	query := `SELECT owner, low_content_alert, low_content_threshold, created_at, updated_at FROM settings WHERE owner = $1`
	row := r.db.QueryRowContext(ctx, query, owner)

	var settings models.Settings
	err := row.Scan(&settings.Owner, &settings.LowContentAlert, &settings.LowContentThreshold,
		&settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &settings, true, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *models.Settings) error {
	query := `
		INSERT INTO settings (owner, low_content_alert, low_content_threshold)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner) DO UPDATE
		SET low_content_alert = EXCLUDED.low_content_alert,
			low_content_threshold = EXCLUDED.low_content_threshold,
			updated_at = $4
	`
	_, err := r.db.ExecContext(ctx, query, settings.Owner, settings.LowContentAlert,
		settings.LowContentThreshold, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
