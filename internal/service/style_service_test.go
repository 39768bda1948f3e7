package service

import (
	"context"
	"testing"
	"time"

	"draftweaver/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const styleSamples = `Just dropped my new video editing workflow, check the link in bio!
Anyone else obsessed with golden hour shots lately?
Three tips for better reels: shoot vertical, hook in 2 seconds, cut on the beat.`

func TestBuildFromSamplesRequiresMinimumContent(t *testing.T) {
	ss := NewStyleService(&fakeProfileRepo{}, &fakeEventRepo{}, &fakeCompletion{})

	_, err := ss.BuildFromSamples(context.Background(), 7, "too short")
	assert.ErrorIs(t, err, ErrSamplesTooShort)

	_, err = ss.BuildFromSamples(context.Background(), 7, "   \n  ")
	assert.ErrorIs(t, err, ErrSamplesTooShort)
}

func TestBuildFromSamples(t *testing.T) {
	pr := &fakeProfileRepo{}
	er := &fakeEventRepo{}
	llm := &fakeCompletion{reply: "```json\n" + `{
		"tone": "playful",
		"sentence_length": "short",
		"emoji_usage": "minimal",
		"structure": ["hook", "tips", "cta"],
		"hashtag_strategy": "focused",
		"cta_patterns": ["ask questions"],
		"language_mix": "conversational",
		"do_nots": ["avoid excessive caps"]
	}` + "\n```"}

	ss := NewStyleService(pr, er, llm)

	profile, err := ss.BuildFromSamples(context.Background(), 7, styleSamples)
	require.NoError(t, err)

	assert.Equal(t, "playful", profile.Tone)
	assert.Equal(t, "short", profile.SentenceLength)
	assert.Equal(t, []string{"hook", "tips", "cta"}, profile.Structure)
	assert.Equal(t, models.StyleStatusAnalyzed, profile.Status)
	assert.Equal(t, models.StyleSourceManualSamples, profile.Source)
	assert.Equal(t, 3, profile.SampleCount)

	_, err = time.Parse(time.RFC3339, profile.AnalyzedAt)
	assert.NoError(t, err)

	require.NotNil(t, pr.upserted)
	assert.Equal(t, "playful", pr.upserted.Tone)

	require.Len(t, er.events, 1)
	assert.Equal(t, models.EventStyleBuilt, er.events[0].Kind)
	assert.Contains(t, string(er.events[0].Payload), `"tone":"playful"`)
}

func TestBuildFromSamplesRejectsInvalidJSON(t *testing.T) {
	ss := NewStyleService(&fakeProfileRepo{}, &fakeEventRepo{}, &fakeCompletion{reply: "sorry, I cannot do that"})
	_, err := ss.BuildFromSamples(context.Background(), 7, styleSamples)
	assert.Error(t, err)
}

func TestAnalyzeStyleWritesPlaceholder(t *testing.T) {
	pr := &fakeProfileRepo{}
	ss := NewStyleService(pr, &fakeEventRepo{}, &fakeCompletion{})

	require.NoError(t, ss.AnalyzeStyle(context.Background(), 7, ""))

	require.NotNil(t, pr.upserted)
	assert.Equal(t, models.StyleStatusPlaceholder, pr.upserted.Status)
	assert.Equal(t, models.StyleSourceManual, pr.upserted.Source)
	require.NotNil(t, pr.upserted.Insights)
	assert.Equal(t, "Weekly", pr.upserted.Insights.PostingFrequency)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"tone":"casual"}`, extractJSON("```json\n{\"tone\":\"casual\"}\n```"))
	assert.Equal(t, `{"tone":"casual"}`, extractJSON(`{"tone":"casual"}`))
}

func TestCountSamples(t *testing.T) {
	assert.Equal(t, 2, countSamples("this line is long enough\nshort\nanother real sample line"))
}
