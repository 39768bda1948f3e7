package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"draftweaver/internal/models"
)

type IntegrationRepository interface {
	GetByOwner(ctx context.Context, owner int64) (*models.Integrations, bool, error)
	Upsert(ctx context.Context, integrations *models.Integrations) error
}

type integrationRepository struct {
	db *sql.DB
}

func NewIntegrationRepository(db *sql.DB) IntegrationRepository {
	return &integrationRepository{db: db}
}

func (r *integrationRepository) GetByOwner(ctx context.Context, owner int64) (*models.Integrations, bool, error) {
	query := `
		SELECT owner, instagram_connected, tiktok_connected, openai_configured, video_edit_provider, created_at, updated_at
		FROM integrations WHERE owner = $1
	`
	row := r.db.QueryRowContext(ctx, query, owner)

	var integrations models.Integrations
	var provider sql.NullString
	err := row.Scan(&integrations.Owner, &integrations.InstagramConnected, &integrations.TiktokConnected,
		&integrations.OpenAIConfigured, &provider, &integrations.CreatedAt, &integrations.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	integrations.VideoEditProvider = provider.String
	return &integrations, true, nil
}

func (r *integrationRepository) Upsert(ctx context.Context, integrations *models.Integrations) error {
	query := `
		INSERT INTO integrations (owner, instagram_connected, tiktok_connected, openai_configured, video_edit_provider)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner) DO UPDATE
		SET instagram_connected = EXCLUDED.instagram_connected,
			tiktok_connected = EXCLUDED.tiktok_connected,
			openai_configured = EXCLUDED.openai_configured,
			video_edit_provider = EXCLUDED.video_edit_provider,
			updated_at = $6
	`
	_, err := r.db.ExecContext(ctx, query, integrations.Owner, integrations.InstagramConnected,
		integrations.TiktokConnected, integrations.OpenAIConfigured, integrations.VideoEditProvider, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
