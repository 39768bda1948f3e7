package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	config "draftweaver/configs"
	"draftweaver/internal/models"
	"draftweaver/internal/repository"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type ScheduleService interface {
	Schedule(ctx context.Context, draftID int64, platforms []string, scheduledFor time.Time) error
	MarkPosted(ctx context.Context, scheduledPostID int64, externalPostID string) error
	ProcessDue(ctx context.Context) (int, error)
	ListUpcoming(ctx context.Context, owner int64) ([]*models.ScheduledPost, error)
}

type scheduleService struct {
	cfg config.Config
	db  *sql.DB
	dr  repository.DraftRepository
	sp  repository.ScheduledPostRepository
	er  repository.EventRepository
}

func NewScheduleService(
	cfg config.Config,
	db *sql.DB,
	dr repository.DraftRepository,
	sp repository.ScheduledPostRepository,
	er repository.EventRepository) ScheduleService {
	return &scheduleService{
		cfg: cfg,
		db:  db,
		dr:  dr,
		sp:  sp,
		er:  er,
	}
}

func (s *scheduleService) Schedule(ctx context.Context, draftID int64, platforms []string, scheduledFor time.Time) error {
	if len(platforms) == 0 {
		return ErrNoPlatforms
	}

	draft, err := s.dr.GetByID(ctx, draftID)
	if err != nil {
		return err
	}
	if draft == nil {
		return ErrDraftNotFound
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, platform := range platforms {
		sp := models.ScheduledPost{
			DraftID:      draft.ID,
			Platform:     platform,
			ScheduledFor: scheduledFor,
			Status:       models.ScheduledPostStatusScheduled,
		}
		if _, err = s.sp.Create(ctx, tx, &sp); err != nil {
			return fmt.Errorf("error creating scheduled post: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := s.dr.UpdateStatus(ctx, models.DraftStatusScheduled, draft.ID); err != nil {
		return fmt.Errorf("error updating draft status: %w", err)
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"platforms":     platforms,
		"scheduled_for": scheduledFor.UTC().Format(time.RFC3339),
	})
	if _, err := s.er.Create(ctx, &models.Event{
		Owner:   draft.Owner,
		Kind:    models.EventPostScheduled,
		RefID:   draft.ID,
		Payload: payload,
	}); err != nil {
		slog.Info(err.Error())
	}

	return nil
}

func (s *scheduleService) MarkPosted(ctx context.Context, scheduledPostID int64, externalPostID string) error {
	sp, err := s.sp.GetByID(ctx, scheduledPostID)
	if err != nil {
		return err
	}
	if sp == nil {
		return ErrScheduledPostNotFound
	}

	if err := s.sp.MarkPosted(ctx, sp.ID, externalPostID); err != nil {
		return fmt.Errorf("error updating scheduled post: %w", err)
	}

	draft, err := s.dr.GetByID(ctx, sp.DraftID)
	if err != nil {
		return err
	}
	if draft != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"platform":          sp.Platform,
			"scheduled_post_id": sp.ID,
			"external_post_id":  externalPostID,
		})
		if _, err := s.er.Create(ctx, &models.Event{
			Owner:   draft.Owner,
			Kind:    models.EventPosted,
			RefID:   sp.DraftID,
			Payload: payload,
		}); err != nil {
			slog.Info(err.Error())
		}
	}

	return s.promoteIfComplete(ctx, sp.DraftID)
}

// ProcessDue sweeps scheduled posts whose time has passed, simulating the
// publish and promoting drafts whose platforms have all gone out. Returns
// the number of posts processed.
func (s *scheduleService) ProcessDue(ctx context.Context) (int, error) {
	now := time.Now()

	duePosts, err := s.sp.ListDue(ctx, now, s.cfg.SweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("error fetching due posts: %w", err)
	}

	processed := 0
	touched := make(map[int64]struct{})
	owners := make(map[int64]int64)

	for _, post := range duePosts {
		externalID, err := syntheticExternalID(post.Platform)
		if err != nil {
			slog.Info(err.Error())
			continue
		}

		if err := s.sp.MarkPosted(ctx, post.ID, externalID); err != nil {
			slog.Info(err.Error())
			continue
		}

		owner, ok := owners[post.DraftID]
		if !ok {
			draft, err := s.dr.GetByID(ctx, post.DraftID)
			if err != nil || draft == nil {
				slog.Info(fmt.Sprintf("draft %d missing for scheduled post %d", post.DraftID, post.ID))
				touched[post.DraftID] = struct{}{}
				processed++
				continue
			}
			owner = draft.Owner
			owners[post.DraftID] = owner
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"platform":          post.Platform,
			"scheduled_post_id": post.ID,
			"simulated":         true,
		})
		if _, err := s.er.Create(ctx, &models.Event{
			Owner:   owner,
			Kind:    models.EventPosted,
			RefID:   post.DraftID,
			Payload: payload,
		}); err != nil {
			slog.Info(err.Error())
		}

		touched[post.DraftID] = struct{}{}
		processed++
	}

	for draftID := range touched {
		if err := s.promoteIfComplete(ctx, draftID); err != nil {
			slog.Info(err.Error())
		}
	}

	return processed, nil
}

func (s *scheduleService) ListUpcoming(ctx context.Context, owner int64) ([]*models.ScheduledPost, error) {
	posts, err := s.sp.ListUpcoming(ctx, owner, 20)
	if err != nil {
		return nil, fmt.Errorf("error listing upcoming posts: %w", err)
	}
	return posts, nil
}

// promoteIfComplete moves the draft to posted once no scheduled post for it
// remains unposted.
func (s *scheduleService) promoteIfComplete(ctx context.Context, draftID int64) error {
	remaining, err := s.sp.CountUnposted(ctx, draftID)
	if err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}
	return s.dr.UpdateStatus(ctx, models.DraftStatusPosted, draftID)
}

func syntheticExternalID(platform string) (string, error) {
	suffix, err := gonanoid.Generate("abcdefghijklmnopqrstuvwxyz0123456789", 9)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("sim_%s_%d_%s", platform, time.Now().UnixMilli(), suffix), nil
}
