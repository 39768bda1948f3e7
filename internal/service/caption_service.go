package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"draftweaver/internal/models"
	"draftweaver/internal/repository"
)

type CaptionService interface {
	GenerateCaption(ctx context.Context, draftID int64) (fallback bool, err error)
}

type captionService struct {
	dr  repository.DraftRepository
	pr  repository.ProfileRepository
	er  repository.EventRepository
	llm CompletionClient
}

func NewCaptionService(
	dr repository.DraftRepository,
	pr repository.ProfileRepository,
	er repository.EventRepository,
	llm CompletionClient) CaptionService {
	return &captionService{
		dr:  dr,
		pr:  pr,
		er:  er,
		llm: llm,
	}
}

const captionSystemPrompt = `You write short social media captions for Instagram and TikTok. Return only the caption text, no quotes and no commentary. Keep it under 2200 characters.`

func (s *captionService) GenerateCaption(ctx context.Context, draftID int64) (bool, error) {
	draft, err := s.dr.GetByID(ctx, draftID)
	if err != nil {
		return false, err
	}
	if draft == nil {
		return false, ErrDraftNotFound
	}

	if _, err := s.er.Create(ctx, &models.Event{
		Owner: draft.Owner,
		Kind:  models.EventCaptionReq,
		RefID: draft.ID,
	}); err != nil {
		slog.Info(err.Error())
	}

	var style *models.StyleProfile
	profile, isExist, err := s.pr.GetByUserID(ctx, draft.Owner)
	if err == nil && isExist {
		style = profile.StyleProfile
	}

	fallback := false
	caption, err := s.llm.Complete(ctx, captionSystemPrompt, buildCaptionPrompt(draft, style), 300, 0.7)
	caption = strings.TrimSpace(caption)
	if err != nil || caption == "" {
		if err != nil {
			slog.Info(err.Error())
		}
		caption = FallbackCaption(draft.Title)
		fallback = true
	}

	if err := s.dr.UpdateCaption(ctx, caption, models.DraftStatusCaptionReady, draft.ID); err != nil {
		return fallback, fmt.Errorf("error saving caption: %w", err)
	}

	payload, _ := json.Marshal(map[string]interface{}{"fallback": fallback})
	if _, err := s.er.Create(ctx, &models.Event{
		Owner:   draft.Owner,
		Kind:    models.EventCaptionReady,
		RefID:   draft.ID,
		Payload: payload,
	}); err != nil {
		slog.Info(err.Error())
	}

	return fallback, nil
}

func buildCaptionPrompt(draft *models.Draft, style *models.StyleProfile) string {
	var b strings.Builder

	b.WriteString("Write a caption for a ")
	b.WriteString(draft.MediaType)
	b.WriteString(" post")
	if draft.Title != "" {
		b.WriteString(" titled \"")
		b.WriteString(draft.Title)
		b.WriteString("\"")
	}
	b.WriteString(".")

	if draft.Hashtags != "" {
		b.WriteString("\nInclude these hashtags: ")
		b.WriteString(draft.Hashtags)
	}

	if style != nil {
		if style.Tone != "" {
			b.WriteString("\nTone: " + style.Tone)
		}
		if style.SentenceLength != "" {
			b.WriteString("\nSentence length: " + style.SentenceLength)
		}
		if style.EmojiUsage != "" {
			b.WriteString("\nEmoji usage: " + style.EmojiUsage)
		}
		if style.HashtagStrategy != "" {
			b.WriteString("\nHashtag strategy: " + style.HashtagStrategy)
		}
		if len(style.Structure) > 0 {
			b.WriteString("\nStructure: " + strings.Join(style.Structure, ", "))
		}
		if len(style.CTAPatterns) > 0 {
			b.WriteString("\nCalls to action: " + strings.Join(style.CTAPatterns, ", "))
		}
		if len(style.DoNots) > 0 {
			b.WriteString("\nAvoid: " + strings.Join(style.DoNots, ", "))
		}
	}

	return b.String()
}

// FallbackCaption is the deterministic substitute used when the completion
// service is unavailable. The request still succeeds; degradation is not an
// error here.
func FallbackCaption(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "New post is live. Link in bio."
	}
	return fmt.Sprintf("%s | new post is live. Link in bio.", title)
}
