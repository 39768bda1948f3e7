package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	config "draftweaver/configs"
	"draftweaver/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req oaiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func captionConfig(baseURL string) config.Config {
	return config.Config{
		OpenAIKey:     "test-key",
		OpenAIBaseURL: baseURL,
		OpenAIModel:   "gpt-4o-mini",
	}
}

func TestGenerateCaption(t *testing.T) {
	srv := completionServer(t, "Golden hour over the city. What's your favorite skyline?")
	defer srv.Close()

	dr := newFakeDraftRepo()
	er := &fakeEventRepo{}
	draftID := dr.add(&models.Draft{
		Owner:     7,
		MediaType: models.MediaTypeImage,
		Title:     "Sunset timelapse",
		Status:    models.DraftStatusDraft,
	})

	cs := NewCaptionService(dr, &fakeProfileRepo{}, er, NewOpenAIClient(captionConfig(srv.URL)))

	fallback, err := cs.GenerateCaption(context.Background(), draftID)
	require.NoError(t, err)
	assert.False(t, fallback)

	draft, _ := dr.GetByID(context.Background(), draftID)
	assert.Equal(t, "Golden hour over the city. What's your favorite skyline?", draft.Caption)
	assert.Equal(t, models.DraftStatusCaptionReady, draft.Status)
	assert.Equal(t, []string{models.EventCaptionReq, models.EventCaptionReady}, er.kinds())
}

func TestGenerateCaptionUsesStyleProfile(t *testing.T) {
	srv := completionServer(t, "ok")
	defer srv.Close()

	dr := newFakeDraftRepo()
	draftID := dr.add(&models.Draft{Owner: 7, MediaType: models.MediaTypeVideo, Status: models.DraftStatusDraft})
	pr := &fakeProfileRepo{profile: &models.Profile{
		UserID:       7,
		StyleProfile: &models.StyleProfile{Tone: "playful", Status: models.StyleStatusAnalyzed},
	}}
	llm := &fakeCompletion{reply: "Styled caption"}

	cs := NewCaptionService(dr, pr, &fakeEventRepo{}, llm)
	fallback, err := cs.GenerateCaption(context.Background(), draftID)
	require.NoError(t, err)
	assert.False(t, fallback)
	assert.Equal(t, 1, llm.calls)

	draft, _ := dr.GetByID(context.Background(), draftID)
	assert.Equal(t, "Styled caption", draft.Caption)
}

func TestGenerateCaptionFallsBackWhenCompletionFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	dr := newFakeDraftRepo()
	er := &fakeEventRepo{}
	draftID := dr.add(&models.Draft{
		Owner:     7,
		MediaType: models.MediaTypeImage,
		Title:     "Morning run",
		Status:    models.DraftStatusDraft,
	})

	cs := NewCaptionService(dr, &fakeProfileRepo{}, er, NewOpenAIClient(captionConfig(srv.URL)))

	fallback, err := cs.GenerateCaption(context.Background(), draftID)
	require.NoError(t, err)
	assert.True(t, fallback)

	draft, _ := dr.GetByID(context.Background(), draftID)
	assert.Equal(t, "Morning run | new post is live. Link in bio.", draft.Caption)
	assert.Equal(t, models.DraftStatusCaptionReady, draft.Status)

	ready := er.events[len(er.events)-1]
	assert.Equal(t, models.EventCaptionReady, ready.Kind)
	assert.JSONEq(t, `{"fallback":true}`, string(ready.Payload))
}

func TestGenerateCaptionFallsBackOnEmptyCompletion(t *testing.T) {
	dr := newFakeDraftRepo()
	draftID := dr.add(&models.Draft{Owner: 7, MediaType: models.MediaTypeImage, Status: models.DraftStatusDraft})

	cs := NewCaptionService(dr, &fakeProfileRepo{}, &fakeEventRepo{}, &fakeCompletion{reply: "  \n"})
	fallback, err := cs.GenerateCaption(context.Background(), draftID)
	require.NoError(t, err)
	assert.True(t, fallback)

	draft, _ := dr.GetByID(context.Background(), draftID)
	assert.Equal(t, "New post is live. Link in bio.", draft.Caption)
}

func TestGenerateCaptionDraftNotFound(t *testing.T) {
	cs := NewCaptionService(newFakeDraftRepo(), &fakeProfileRepo{}, &fakeEventRepo{}, &fakeCompletion{})
	_, err := cs.GenerateCaption(context.Background(), 99)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestFallbackCaption(t *testing.T) {
	assert.Equal(t, "My title | new post is live. Link in bio.", FallbackCaption("My title"))
	assert.Equal(t, "New post is live. Link in bio.", FallbackCaption("   "))
}
