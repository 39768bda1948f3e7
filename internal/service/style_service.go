package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"draftweaver/internal/models"
	"draftweaver/internal/repository"
)

type StyleService interface {
	AnalyzeStyle(ctx context.Context, userID int64, source string) error
	BuildFromSamples(ctx context.Context, userID int64, samples string) (*models.StyleProfile, error)
}

type styleService struct {
	pr  repository.ProfileRepository
	er  repository.EventRepository
	llm CompletionClient
}

func NewStyleService(
	pr repository.ProfileRepository,
	er repository.EventRepository,
	llm CompletionClient) StyleService {
	return &styleService{
		pr:  pr,
		er:  er,
		llm: llm,
	}
}

// AnalyzeStyle writes a placeholder profile. Scraping the user's actual
// account history is handled by external automation; this records the intent.
func (s *styleService) AnalyzeStyle(ctx context.Context, userID int64, source string) error {
	if source == "" {
		source = models.StyleSourceManual
	}

	profile := &models.StyleProfile{
		Status:     models.StyleStatusPlaceholder,
		Source:     source,
		AnalyzedAt: time.Now().UTC().Format(time.RFC3339),
		Insights: &models.StyleInsights{
			PostingFrequency:   "Weekly",
			CommonThemes:       []string{"Content Creation", "Technology"},
			EngagementPatterns: "Placeholder data",
			BestPostingTimes:   []string{"18:00", "20:00"},
		},
	}

	if err := s.pr.UpsertStyleProfile(ctx, userID, profile); err != nil {
		return fmt.Errorf("error saving style profile: %w", err)
	}
	return nil
}

const styleSystemPrompt = `Analyze the provided social media content samples and create a comprehensive style profile. Return a JSON object with these exact keys:
{
  "tone": "casual/professional/playful/authoritative/etc",
  "sentence_length": "short/medium/long/mixed",
  "emoji_usage": "none/minimal/moderate/heavy",
  "structure": ["intro", "main_point", "call_to_action"],
  "hashtag_strategy": "minimal/focused/extensive/trending",
  "cta_patterns": ["ask questions", "encourage sharing", "direct action"],
  "language_mix": "formal/informal/technical/conversational",
  "do_nots": ["avoid excessive caps", "no overuse of emojis", "etc"]
}
Be specific and actionable in your analysis.`

func (s *styleService) BuildFromSamples(ctx context.Context, userID int64, samples string) (*models.StyleProfile, error) {
	if len(strings.TrimSpace(samples)) < 50 {
		return nil, ErrSamplesTooShort
	}

	raw, err := s.llm.Complete(ctx, styleSystemPrompt,
		fmt.Sprintf("Analyze these social media posts and create a style profile:\n\n%s", samples), 800, 0.3)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error analyzing style: %w", err)
	}

	var profile models.StyleProfile
	if err := json.Unmarshal([]byte(extractJSON(raw)), &profile); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("invalid response from style analysis: %w", err)
	}

	profile.Status = models.StyleStatusAnalyzed
	profile.Source = models.StyleSourceManualSamples
	profile.AnalyzedAt = time.Now().UTC().Format(time.RFC3339)
	profile.SampleCount = countSamples(samples)

	if err := s.pr.UpsertStyleProfile(ctx, userID, &profile); err != nil {
		return nil, fmt.Errorf("error saving style profile: %w", err)
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"sample_count": profile.SampleCount,
		"tone":         profile.Tone,
	})
	if _, err := s.er.Create(ctx, &models.Event{
		Owner:   userID,
		Kind:    models.EventStyleBuilt,
		Payload: payload,
	}); err != nil {
		slog.Info(err.Error())
	}

	return &profile, nil
}

func countSamples(samples string) int {
	count := 0
	for _, line := range strings.Split(samples, "\n") {
		if len(strings.TrimSpace(line)) > 10 {
			count++
		}
	}
	return count
}

// extractJSON strips markdown code fences some models wrap JSON in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(raw, "```")
		raw = strings.TrimSpace(raw)
	}
	return raw
}
