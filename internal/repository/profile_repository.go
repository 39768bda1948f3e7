package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"draftweaver/internal/models"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, bool, error)
	UpsertStyleProfile(ctx context.Context, userID int64, profile *models.StyleProfile) error
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, bool, error) {
	query := `SELECT user_id, style_profile, created_at, updated_at FROM profiles WHERE user_id = $1`
	row := r.db.QueryRowContext(ctx, query, userID)

	var profile models.Profile
	var style models.StyleProfile
	var hasStyle sql.NullString

	err := row.Scan(&profile.UserID, &hasStyle, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	if hasStyle.Valid && hasStyle.String != "" {
		if err := style.Scan(hasStyle.String); err != nil {
			slog.Info(err.Error())
			return nil, false, err
		}
		profile.StyleProfile = &style
	}

	return &profile, true, nil
}

func (r *profileRepository) UpsertStyleProfile(ctx context.Context, userID int64, profile *models.StyleProfile) error {
	query := `
		INSERT INTO profiles (user_id, style_profile)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET style_profile = EXCLUDED.style_profile,
			updated_at = $3
	`
	_, err := r.db.ExecContext(ctx, query, userID, profile, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
