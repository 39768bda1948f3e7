package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"time"

	"draftweaver/internal/models"
	"draftweaver/internal/repository"
	"draftweaver/internal/transfer"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type DraftService interface {
	CreateDraft(ctx context.Context, owner int64, dc *transfer.DraftCreation, file *multipart.FileHeader) (int64, error)
	List(ctx context.Context, owner int64) ([]*models.Draft, error)
	DraftInfo(ctx context.Context, draftID, owner int64) (*models.Draft, error)
	Update(ctx context.Context, owner int64, du *transfer.DraftUpdate) error
	Remove(ctx context.Context, owner, draftID int64) error
}

type draftService struct {
	dr repository.DraftRepository
	r2 R2Service
}

func NewDraftService(dr repository.DraftRepository, r2 R2Service) DraftService {
	return &draftService{
		dr: dr,
		r2: r2,
	}
}

func (s *draftService) CreateDraft(ctx context.Context, owner int64, dc *transfer.DraftCreation, file *multipart.FileHeader) (int64, error) {
	if dc == nil {
		err := errors.New("draft creation data is nil")
		slog.Error(err.Error())
		return 0, err
	}
	if file == nil {
		err := errors.New("no file provided for the draft")
		slog.Info(err.Error())
		return 0, err
	}

	fileContent, err := file.Open()
	if err != nil {
		return 0, fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return 0, fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return 0, fmt.Errorf("unsupported file type: %w", err)
	}

	mediaType, err := classifyMedia(fileBytes)
	if err != nil {
		return 0, err
	}

	key, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	if err := s.r2.UploadMedia(ctx, key, fileBytes, fileType.MIME.Value); err != nil {
		return 0, fmt.Errorf("error uploading file: %w", err)
	}

	draft := models.Draft{
		Owner:           owner,
		MediaType:       mediaType,
		MediaPath:       key,
		Title:           dc.Title,
		Caption:         dc.Caption,
		Hashtags:        dc.Hashtags,
		TargetInstagram: dc.TargetInstagram,
		TargetTiktok:    dc.TargetTiktok,
		Status:          models.DraftStatusDraft,
	}

	draftID, err := s.dr.Create(ctx, nil, &draft)
	if err != nil {
		return 0, fmt.Errorf("error creating draft: %w", err)
	}

	if dc.DesiredPublishAt != "" {
		publishAt, err := time.Parse(time.RFC3339, dc.DesiredPublishAt)
		if err != nil {
			slog.Info(err.Error())
		} else {
			draft.ID = draftID
			draft.DesiredPublishAt = &publishAt
			if err := s.dr.Update(ctx, &draft); err != nil {
				slog.Info(err.Error())
			}
		}
	}

	return draftID, nil
}

func classifyMedia(fileBytes []byte) (string, error) {
	if filetype.IsImage(fileBytes) {
		return models.MediaTypeImage, nil
	}
	if filetype.IsVideo(fileBytes) {
		return models.MediaTypeVideo, nil
	}
	return "", errors.New("only image and video files are allowed")
}

func (s *draftService) List(ctx context.Context, owner int64) ([]*models.Draft, error) {
	drafts, err := s.dr.GetByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("error listing drafts: %w", err)
	}
	return drafts, nil
}

func (s *draftService) DraftInfo(ctx context.Context, draftID, owner int64) (*models.Draft, error) {
	if owner == 0 || draftID == 0 {
		return nil, ErrDraftNotFound
	}

	isValid, err := s.dr.CheckByOwner(ctx, draftID, owner)
	if err != nil {
		return nil, err
	}
	if !isValid {
		slog.Info("draft ownership check failed")
		return nil, ErrDraftNotFound
	}

	draft, err := s.dr.GetByID(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("error getting draft info: %w", err)
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}

	return draft, nil
}

func (s *draftService) Update(ctx context.Context, owner int64, du *transfer.DraftUpdate) error {
	draft, err := s.DraftInfo(ctx, du.ID, owner)
	if err != nil {
		return err
	}

	draft.Title = du.Title
	draft.Caption = du.Caption
	draft.Hashtags = du.Hashtags
	draft.TargetInstagram = du.TargetInstagram
	draft.TargetTiktok = du.TargetTiktok
	draft.DesiredPublishAt = nil
	if du.DesiredPublishAt != "" {
		publishAt, err := time.Parse(time.RFC3339, du.DesiredPublishAt)
		if err != nil {
			return fmt.Errorf("invalid desired publish time: %w", err)
		}
		draft.DesiredPublishAt = &publishAt
	}

	if err := s.dr.Update(ctx, draft); err != nil {
		return fmt.Errorf("error updating draft: %w", err)
	}
	return nil
}

func (s *draftService) Remove(ctx context.Context, owner, draftID int64) error {
	if _, err := s.DraftInfo(ctx, draftID, owner); err != nil {
		return err
	}

	if err := s.dr.Remove(ctx, draftID); err != nil {
		return fmt.Errorf("error removing draft: %w", err)
	}
	return nil
}
