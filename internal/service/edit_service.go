package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	config "draftweaver/configs"
	"draftweaver/internal/models"
	"draftweaver/internal/repository"
)

type EditService interface {
	// RequestEdit applies the edit transition. When the returned delay is
	// non-negative the caller must enqueue a render task with that delay;
	// a render path supplied directly completes the round-trip in place and
	// the delay is -1.
	RequestEdit(ctx context.Context, draftID int64, preset, renderPath string) (time.Duration, error)
	CompleteEdit(ctx context.Context, draftID int64, preset string) error
}

type editService struct {
	cfg config.Config
	dr  repository.DraftRepository
	er  repository.EventRepository
}

func NewEditService(cfg config.Config, dr repository.DraftRepository, er repository.EventRepository) EditService {
	return &editService{
		cfg: cfg,
		dr:  dr,
		er:  er,
	}
}

func (s *editService) RequestEdit(ctx context.Context, draftID int64, preset, renderPath string) (time.Duration, error) {
	draft, err := s.dr.GetByID(ctx, draftID)
	if err != nil {
		return -1, err
	}
	if draft == nil {
		return -1, ErrDraftNotFound
	}

	metadata := draft.Metadata

	if renderPath != "" {
		// Follow-up call from an external editor: store the result and
		// return the draft to the editable state.
		metadata.RenderPath = renderPath
		metadata.EditPreset = preset
		if err := s.dr.UpdateMetadata(ctx, models.DraftStatusDraft, metadata, draft.ID); err != nil {
			return -1, fmt.Errorf("error updating draft: %w", err)
		}

		s.emitEditEvent(ctx, draft.Owner, draft.ID, models.EventEditReady, preset, renderPath)
		return -1, nil
	}

	if preset != "" {
		metadata.EditPreset = preset
	}
	if err := s.dr.UpdateMetadata(ctx, models.DraftStatusEditing, metadata, draft.ID); err != nil {
		return -1, fmt.Errorf("error updating draft: %w", err)
	}

	s.emitEditEvent(ctx, draft.Owner, draft.ID, models.EventEditRequest, preset, "")

	return s.renderDelay(), nil
}

func (s *editService) CompleteEdit(ctx context.Context, draftID int64, preset string) error {
	draft, err := s.dr.GetByID(ctx, draftID)
	if err != nil {
		return err
	}
	if draft == nil {
		return ErrDraftNotFound
	}

	if preset == "" {
		preset = "default"
	}

	metadata := draft.Metadata
	metadata.EditPreset = preset
	metadata.RenderPath = fmt.Sprintf("renders/%d/%s.mp4", draft.ID, preset)
	metadata.EditCompletedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.dr.UpdateMetadata(ctx, models.DraftStatusDraft, metadata, draft.ID); err != nil {
		return fmt.Errorf("error completing edit: %w", err)
	}

	s.emitEditEvent(ctx, draft.Owner, draft.ID, models.EventEditReady, preset, metadata.RenderPath)
	return nil
}

func (s *editService) renderDelay() time.Duration {
	minSec := s.cfg.EditMinDelaySec
	maxSec := s.cfg.EditMaxDelaySec
	if maxSec <= minSec {
		return time.Duration(minSec) * time.Second
	}
	return time.Duration(minSec+rand.Intn(maxSec-minSec+1)) * time.Second
}

func (s *editService) emitEditEvent(ctx context.Context, owner, draftID int64, kind, preset, renderPath string) {
	payload, _ := json.Marshal(map[string]interface{}{
		"preset":      preset,
		"render_path": renderPath,
	})
	if _, err := s.er.Create(ctx, &models.Event{
		Owner:   owner,
		Kind:    kind,
		RefID:   draftID,
		Payload: payload,
	}); err != nil {
		slog.Info(err.Error())
	}
}
