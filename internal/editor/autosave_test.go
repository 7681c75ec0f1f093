package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePersister struct {
	saved []*Draft
	id    uuid.UUID
	err   error
}

func (f *fakePersister) SaveDocument(_ context.Context, draft *Draft) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.saved = append(f.saved, draft)
	if f.id == uuid.Nil {
		f.id = uuid.New()
	}
	return f.id, nil
}

type fakeReconciler struct {
	calls    int
	body     string
	featured string
	err      error
}

func (f *fakeReconciler) Reconcile(_ context.Context, _ uuid.UUID, body, featured string) (int, error) {
	f.calls++
	f.body = body
	f.featured = featured
	return 0, f.err
}

func TestAutosaver_TickCommitsDrift(t *testing.T) {
	s := surfaceOf(t, "<p>hello</p>")
	draft := NewDraft(uuid.New())
	a := NewAutosaver(s, draft, nil, &fakePersister{}, nil, 0)

	assert.NoError(t, s.SetHTML("<p>changed</p>"))
	a.Tick()

	assert.Equal(t, "<p>changed</p>", draft.BodyHTML())
	assert.Equal(t, "<p>changed</p>", a.History().Current())
	assert.Equal(t, 2, a.History().Len())
	assert.False(t, s.Dirty())
}

func TestAutosaver_CleanTickRecordsNothing(t *testing.T) {
	s := surfaceOf(t, "<p>hello</p>")
	draft := NewDraft(uuid.New())
	a := NewAutosaver(s, draft, nil, &fakePersister{}, nil, 0)

	a.Tick()
	a.Tick()

	assert.Equal(t, 1, a.History().Len(), "unchanged content must not grow the history")
}

func TestAutosaver_EmptySurfaceIsNeverCommitted(t *testing.T) {
	s := NewSurface(nil)
	draft := NewDraft(uuid.New())
	draft.SetBody(&Doc{Blocks: []Block{{Type: BlockParagraph, Spans: []Span{{Text: "kept"}}}}})
	a := NewAutosaver(s, draft, NewHistory("<p>kept</p>"), &fakePersister{}, nil, 0)

	a.Tick()

	assert.Equal(t, "<p>kept</p>", draft.BodyHTML())
	assert.Equal(t, 1, a.History().Len())
}

func TestAutosaver_SaveAssignsID(t *testing.T) {
	s := surfaceOf(t, "<p>hello</p>")
	draft := NewDraft(uuid.New())
	docs := &fakePersister{}
	a := NewAutosaver(s, draft, nil, docs, nil, 0)

	assert.NoError(t, a.Save(context.TODO(), false))
	assert.NotNil(t, draft.ID)
	assert.Equal(t, docs.id, *draft.ID)
	assert.Len(t, docs.saved, 1)

	// a second save updates in place, the ID is stable
	assert.NoError(t, a.Save(context.TODO(), false))
	assert.Equal(t, docs.id, *draft.ID)
}

func TestAutosaver_TransportFailureLeavesStateUntouched(t *testing.T) {
	s := surfaceOf(t, "<p>hello</p>")
	draft := NewDraft(uuid.New())
	docs := &fakePersister{err: errors.New("connection refused")}
	a := NewAutosaver(s, draft, nil, docs, nil, 0)

	err := a.Save(context.TODO(), true)
	assert.Error(t, err)
	assert.NotErrorAs(t, err, new(*PublishError))
	assert.Nil(t, draft.ID)
	assert.False(t, draft.Published)
	assert.Equal(t, "<p>hello</p>", draft.BodyHTML(), "the local draft survives a failed save")
}

func TestAutosaver_PublishRejectionStillSaves(t *testing.T) {
	s := surfaceOf(t, "<p>too short</p>")
	draft := NewDraft(uuid.New())
	docs := &fakePersister{}
	a := NewAutosaver(s, draft, nil, docs, nil, 0)

	err := a.Save(context.TODO(), true)

	var pubErr *PublishError
	assert.ErrorAs(t, err, &pubErr)
	assert.False(t, draft.Published)
	assert.Len(t, docs.saved, 1, "an ineligible draft is still saved as a draft")
	assert.False(t, docs.saved[0].Published)
}

func TestAutosaver_ReconcilerRunsAfterSave(t *testing.T) {
	s := surfaceOf(t, `<p>hello</p><img src="https://x.test/a.png">`)
	draft := NewDraft(uuid.New())
	draft.FeaturedImage = "https://x.test/featured.png"
	media := &fakeReconciler{}
	a := NewAutosaver(s, draft, nil, &fakePersister{}, media, 0)

	assert.NoError(t, a.Save(context.TODO(), false))
	assert.Equal(t, 1, media.calls)
	assert.Equal(t, `<p>hello</p><img src="https://x.test/a.png">`, media.body)
	assert.Equal(t, "https://x.test/featured.png", media.featured)
}

func TestAutosaver_ReconcilerFailureIsSwallowed(t *testing.T) {
	s := surfaceOf(t, "<p>hello</p>")
	draft := NewDraft(uuid.New())
	media := &fakeReconciler{err: errors.New("bucket unavailable")}
	a := NewAutosaver(s, draft, nil, &fakePersister{}, media, 0)

	assert.NoError(t, a.Save(context.TODO(), false))
	assert.Equal(t, 1, media.calls)
	assert.NotNil(t, draft.ID, "a cleanup failure must not fail the save")
}

func TestAutosaver_RecoverVisibility(t *testing.T) {
	s := surfaceOf(t, "<p>hello</p>")
	draft := NewDraft(uuid.New())
	a := NewAutosaver(s, draft, NewHistory("<p>hello</p>"), &fakePersister{}, nil, 0)

	assert.False(t, a.RecoverVisibility(), "no drift, nothing to recover")

	assert.NoError(t, s.SetHTML("<p>drifted while hidden</p>"))
	assert.True(t, a.RecoverVisibility())
	assert.Equal(t, "<p>hello</p>", s.HTML())
}
