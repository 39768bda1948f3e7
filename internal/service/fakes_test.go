package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"draftweaver/internal/models"
)

// In-memory repository fakes backing the service tests.

type fakeDraftRepo struct {
	nextID int64
	drafts map[int64]*models.Draft
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{nextID: 1, drafts: make(map[int64]*models.Draft)}
}

func (r *fakeDraftRepo) add(draft *models.Draft) int64 {
	id := r.nextID
	r.nextID++
	draft.ID = id
	r.drafts[id] = draft
	return id
}

func (r *fakeDraftRepo) Create(ctx context.Context, tx *sql.Tx, draft *models.Draft) (int64, error) {
	copied := *draft
	return r.add(&copied), nil
}

func (r *fakeDraftRepo) GetByID(ctx context.Context, id int64) (*models.Draft, error) {
	draft, ok := r.drafts[id]
	if !ok {
		return nil, nil
	}
	copied := *draft
	return &copied, nil
}

func (r *fakeDraftRepo) GetByOwner(ctx context.Context, owner int64) ([]*models.Draft, error) {
	var out []*models.Draft
	for _, draft := range r.drafts {
		if draft.Owner == owner {
			copied := *draft
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeDraftRepo) CheckByOwner(ctx context.Context, draftID, owner int64) (bool, error) {
	draft, ok := r.drafts[draftID]
	return ok && draft.Owner == owner, nil
}

func (r *fakeDraftRepo) Update(ctx context.Context, draft *models.Draft) error {
	stored, ok := r.drafts[draft.ID]
	if !ok {
		return nil
	}
	stored.Title = draft.Title
	stored.Caption = draft.Caption
	stored.Hashtags = draft.Hashtags
	stored.TargetInstagram = draft.TargetInstagram
	stored.TargetTiktok = draft.TargetTiktok
	stored.DesiredPublishAt = draft.DesiredPublishAt
	return nil
}

func (r *fakeDraftRepo) UpdateStatus(ctx context.Context, status string, draftID int64) error {
	if draft, ok := r.drafts[draftID]; ok {
		draft.Status = status
	}
	return nil
}

func (r *fakeDraftRepo) UpdateMetadata(ctx context.Context, status string, metadata models.DraftMetadata, draftID int64) error {
	if draft, ok := r.drafts[draftID]; ok {
		draft.Status = status
		draft.Metadata = metadata
	}
	return nil
}

func (r *fakeDraftRepo) UpdateCaption(ctx context.Context, caption, status string, draftID int64) error {
	if draft, ok := r.drafts[draftID]; ok {
		draft.Caption = caption
		draft.Status = status
	}
	return nil
}

func (r *fakeDraftRepo) Remove(ctx context.Context, id int64) error {
	delete(r.drafts, id)
	return nil
}

type fakeScheduledPostRepo struct {
	nextID int64
	posts  map[int64]*models.ScheduledPost
}

func newFakeScheduledPostRepo() *fakeScheduledPostRepo {
	return &fakeScheduledPostRepo{nextID: 1, posts: make(map[int64]*models.ScheduledPost)}
}

func (r *fakeScheduledPostRepo) add(sp *models.ScheduledPost) int64 {
	id := r.nextID
	r.nextID++
	sp.ID = id
	r.posts[id] = sp
	return id
}

func (r *fakeScheduledPostRepo) Create(ctx context.Context, tx *sql.Tx, sp *models.ScheduledPost) (int64, error) {
	copied := *sp
	return r.add(&copied), nil
}

func (r *fakeScheduledPostRepo) GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error) {
	sp, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *sp
	return &copied, nil
}

func (r *fakeScheduledPostRepo) ListByDraftID(ctx context.Context, draftID int64) ([]*models.ScheduledPost, error) {
	var out []*models.ScheduledPost
	for _, sp := range r.posts {
		if sp.DraftID == draftID {
			copied := *sp
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeScheduledPostRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]*models.ScheduledPost, error) {
	var out []*models.ScheduledPost
	for _, sp := range r.posts {
		if sp.Status == models.ScheduledPostStatusScheduled && !sp.ScheduledFor.After(now) {
			copied := *sp
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeScheduledPostRepo) ListUpcoming(ctx context.Context, owner int64, limit int) ([]*models.ScheduledPost, error) {
	var out []*models.ScheduledPost
	for _, sp := range r.posts {
		if sp.Status == models.ScheduledPostStatusScheduled {
			copied := *sp
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeScheduledPostRepo) MarkPosted(ctx context.Context, id int64, externalPostID string) error {
	sp, ok := r.posts[id]
	if !ok {
		return nil
	}
	sp.Status = models.ScheduledPostStatusPosted
	if externalPostID != "" {
		sp.ExternalPostID = externalPostID
	}
	return nil
}

func (r *fakeScheduledPostRepo) CountUnposted(ctx context.Context, draftID int64) (int, error) {
	count := 0
	for _, sp := range r.posts {
		if sp.DraftID == draftID && sp.Status != models.ScheduledPostStatusPosted {
			count++
		}
	}
	return count, nil
}

type fakeEventRepo struct {
	events []*models.Event
}

func (r *fakeEventRepo) Create(ctx context.Context, event *models.Event) (int64, error) {
	copied := *event
	copied.ID = int64(len(r.events) + 1)
	r.events = append(r.events, &copied)
	return copied.ID, nil
}

func (r *fakeEventRepo) ListByOwner(ctx context.Context, owner int64, limit int) ([]*models.Event, error) {
	var out []*models.Event
	for _, event := range r.events {
		if event.Owner == owner {
			out = append(out, event)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeEventRepo) kinds() []string {
	out := make([]string, 0, len(r.events))
	for _, event := range r.events {
		out = append(out, event.Kind)
	}
	return out
}

type fakeProfileRepo struct {
	profile  *models.Profile
	upserted *models.StyleProfile
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID int64) (*models.Profile, bool, error) {
	if r.profile == nil {
		return nil, false, nil
	}
	return r.profile, true, nil
}

func (r *fakeProfileRepo) UpsertStyleProfile(ctx context.Context, userID int64, profile *models.StyleProfile) error {
	r.upserted = profile
	return nil
}

type fakeCompletion struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompletion) Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	f.calls++
	return f.reply, f.err
}
