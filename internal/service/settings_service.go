package service

import (
	"context"
	"fmt"

	"draftweaver/internal/models"
	"draftweaver/internal/repository"
)

type SettingsService interface {
	GetSettingsInfo(ctx context.Context, owner int64) (*models.Settings, error)
	UpdateSettings(ctx context.Context, owner int64, lowContentAlert bool, lowContentThreshold int) error
	GetIntegrations(ctx context.Context, owner int64) (*models.Integrations, error)
}

type settingsService struct {
	sr repository.SettingsRepository
	ir repository.IntegrationRepository
}

func NewSettingsService(sr repository.SettingsRepository, ir repository.IntegrationRepository) SettingsService {
	return &settingsService{
		sr: sr,
		ir: ir,
	}
}

func (s *settingsService) GetSettingsInfo(ctx context.Context, owner int64) (*models.Settings, error) {
	settings, isExist, err := s.sr.GetByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	if !isExist {
		// First read for a new user: sensible defaults, not an error.
		return &models.Settings{
			Owner:               owner,
			LowContentAlert:     true,
			LowContentThreshold: 3,
		}, nil
	}

	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, owner int64, lowContentAlert bool, lowContentThreshold int) error {
	settings := models.Settings{
		Owner:               owner,
		LowContentAlert:     lowContentAlert,
		LowContentThreshold: lowContentThreshold,
	}
	if err := s.sr.Upsert(ctx, &settings); err != nil {
		return fmt.Errorf("error updating settings: %w", err)
	}
	return nil
}

func (s *settingsService) GetIntegrations(ctx context.Context, owner int64) (*models.Integrations, error) {
	integrations, isExist, err := s.ir.GetByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	if !isExist {
		return &models.Integrations{Owner: owner}, nil
	}

	return integrations, nil
}
