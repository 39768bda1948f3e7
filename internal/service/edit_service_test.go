package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	config "draftweaver/configs"
	"draftweaver/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editConfig() config.Config {
	return config.Config{EditMinDelaySec: 20, EditMaxDelaySec: 60}
}

func TestRequestEditMovesDraftToEditing(t *testing.T) {
	dr := newFakeDraftRepo()
	er := &fakeEventRepo{}
	draftID := dr.add(&models.Draft{Owner: 7, MediaType: models.MediaTypeVideo, Status: models.DraftStatusDraft})

	es := NewEditService(editConfig(), dr, er)

	delay, err := es.RequestEdit(context.Background(), draftID, "vibrant", "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, delay, 20*time.Second)
	assert.LessOrEqual(t, delay, 60*time.Second)

	draft, _ := dr.GetByID(context.Background(), draftID)
	assert.Equal(t, models.DraftStatusEditing, draft.Status)
	assert.Equal(t, "vibrant", draft.Metadata.EditPreset)
	assert.Equal(t, []string{models.EventEditRequest}, er.kinds())
}

func TestRequestEditWithRenderPathCompletesInPlace(t *testing.T) {
	dr := newFakeDraftRepo()
	er := &fakeEventRepo{}
	draftID := dr.add(&models.Draft{Owner: 7, MediaType: models.MediaTypeVideo, Status: models.DraftStatusEditing})

	es := NewEditService(editConfig(), dr, er)

	delay, err := es.RequestEdit(context.Background(), draftID, "clean", "renders/external/out.mp4")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), delay)

	draft, _ := dr.GetByID(context.Background(), draftID)
	assert.Equal(t, models.DraftStatusDraft, draft.Status)
	assert.Equal(t, "renders/external/out.mp4", draft.Metadata.RenderPath)
	assert.Equal(t, []string{models.EventEditReady}, er.kinds())
}

func TestRequestEditDraftNotFound(t *testing.T) {
	es := NewEditService(editConfig(), newFakeDraftRepo(), &fakeEventRepo{})
	_, err := es.RequestEdit(context.Background(), 99, "", "")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestCompleteEdit(t *testing.T) {
	dr := newFakeDraftRepo()
	er := &fakeEventRepo{}
	draftID := dr.add(&models.Draft{Owner: 7, MediaType: models.MediaTypeVideo, Status: models.DraftStatusEditing})

	es := NewEditService(editConfig(), dr, er)
	require.NoError(t, es.CompleteEdit(context.Background(), draftID, "vibrant"))

	draft, _ := dr.GetByID(context.Background(), draftID)
	assert.Equal(t, models.DraftStatusDraft, draft.Status)
	assert.Equal(t, fmt.Sprintf("renders/%d/vibrant.mp4", draftID), draft.Metadata.RenderPath)

	_, err := time.Parse(time.RFC3339, draft.Metadata.EditCompletedAt)
	assert.NoError(t, err)
	assert.Equal(t, []string{models.EventEditReady}, er.kinds())
}

func TestCompleteEditDefaultsPreset(t *testing.T) {
	dr := newFakeDraftRepo()
	draftID := dr.add(&models.Draft{Owner: 7, MediaType: models.MediaTypeVideo, Status: models.DraftStatusEditing})

	es := NewEditService(editConfig(), dr, &fakeEventRepo{})
	require.NoError(t, es.CompleteEdit(context.Background(), draftID, ""))

	draft, _ := dr.GetByID(context.Background(), draftID)
	assert.Equal(t, "default", draft.Metadata.EditPreset)
	assert.Equal(t, fmt.Sprintf("renders/%d/default.mp4", draftID), draft.Metadata.RenderPath)
}

func TestCompleteEditDraftNotFound(t *testing.T) {
	es := NewEditService(editConfig(), newFakeDraftRepo(), &fakeEventRepo{})
	assert.ErrorIs(t, es.CompleteEdit(context.Background(), 99, "vibrant"), ErrDraftNotFound)
}
