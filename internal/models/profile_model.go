package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Profile struct {
	UserID       int64         `db:"user_id" json:"user_id"`
	StyleProfile *StyleProfile `db:"style_profile" json:"style_profile,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// StyleProfile conditions caption generation. Every field has a usable zero
// value; a missing profile and an empty profile behave the same.
type StyleProfile struct {
	Tone            string         `json:"tone,omitempty"`
	SentenceLength  string         `json:"sentence_length,omitempty"`
	EmojiUsage      string         `json:"emoji_usage,omitempty"`
	LanguageMix     string         `json:"language_mix,omitempty"`
	HashtagStrategy string         `json:"hashtag_strategy,omitempty"`
	Structure       []string       `json:"structure,omitempty"`
	CTAPatterns     []string       `json:"cta_patterns,omitempty"`
	DoNots          []string       `json:"do_nots,omitempty"`
	Status          string         `json:"status"`
	Source          string         `json:"source,omitempty"`
	AnalyzedAt      string         `json:"analyzed_at,omitempty"`
	SampleCount     int            `json:"sample_count,omitempty"`
	Insights        *StyleInsights `json:"insights,omitempty"`
}

type StyleInsights struct {
	PostingFrequency   string   `json:"posting_frequency,omitempty"`
	CommonThemes       []string `json:"common_themes,omitempty"`
	EngagementPatterns string   `json:"engagement_patterns,omitempty"`
	BestPostingTimes   []string `json:"best_posting_times,omitempty"`
}

const (
	StyleStatusPlaceholder = "placeholder"
	StyleStatusAnalyzed    = "analyzed"
)

const (
	StyleSourceManual        = "manual"
	StyleSourceManualSamples = "manual_samples"
)

func (p StyleProfile) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (p *StyleProfile) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = StyleProfile{}
		return nil
	case []byte:
		if len(v) == 0 {
			*p = StyleProfile{}
			return nil
		}
		return json.Unmarshal(v, p)
	case string:
		if v == "" {
			*p = StyleProfile{}
			return nil
		}
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported style_profile column type %T", src)
	}
}
