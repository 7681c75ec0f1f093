package editor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Persister saves a draft. Implementations create when the draft has no ID
// and update otherwise, returning the article ID.
type Persister interface {
	SaveDocument(ctx context.Context, draft *Draft) (uuid.UUID, error)
}

// Reconciler cleans up stored media no longer referenced by the saved
// body. It runs only after a successful save and is best effort.
type Reconciler interface {
	Reconcile(ctx context.Context, articleID uuid.UUID, body, featured string) (int, error)
}

// DefaultAutosaveInterval is how often the live surface is reconciled with
// the draft. Snapshots are taken on this interval, not per keystroke.
const DefaultAutosaveInterval = time.Second

// Autosaver bridges the live surface and the draft. On a fixed tick it
// reads the surface and, when the content drifted, pushes it into the
// draft and the history stack. It never writes draft content back onto the
// surface, except through RecoverVisibility.
type Autosaver struct {
	mu      sync.Mutex
	surface *Surface
	draft   *Draft
	history *History

	docs  Persister
	media Reconciler

	interval  time.Duration
	done      chan struct{}
	stopOnce  sync.Once
	lastSaved string
}

// NewAutosaver wires a surface, draft and history together. A nil history
// is initialized from the surface's current content.
func NewAutosaver(surface *Surface, draft *Draft, history *History, docs Persister, media Reconciler, interval time.Duration) *Autosaver {
	if history == nil {
		history = NewHistory(surface.HTML())
	}
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &Autosaver{
		surface:  surface,
		draft:    draft,
		history:  history,
		docs:     docs,
		media:    media,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// History exposes the undo/redo stack, shared with the command dispatcher.
func (a *Autosaver) History() *History { return a.history }

// Run ticks until Stop is called. Call it in its own goroutine.
func (a *Autosaver) Run() {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.done:
			return
		case <-ticker.C:
			a.Tick()
		}
	}
}

// Stop cancels the autosave timer. An in-flight save completes on its own;
// its result is simply not applied anywhere.
func (a *Autosaver) Stop() {
	a.stopOnce.Do(func() { close(a.done) })
}

// Tick reads the live surface once and commits any drift into the draft
// and the history. Safe to call concurrently with editing: it only reads
// the serialized state and holds no lock across I/O.
func (a *Autosaver) Tick() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.commitLocked()
}

func (a *Autosaver) commitLocked() {
	body := a.surface.HTML()
	if body == "" || a.surface.doc.Empty() {
		// an empty surface is never committed or snapshotted
		a.surface.ClearDirty()
		return
	}
	if body != a.draft.BodyHTML() {
		a.draft.SetBody(a.surface.doc)
	}
	a.history.RecordIfChanged(body)
	a.surface.ClearDirty()
}

// CommitTitle commits the title field on blur, stripped to plain text.
func (a *Autosaver) CommitTitle(raw string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.draft.SetTitle(raw)
}

// CommitSubtitle commits the subtitle field on blur, stripped to plain text.
func (a *Autosaver) CommitSubtitle(raw string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.draft.SetSubtitle(raw)
}

// Save persists the draft. When publish is requested the eligibility
// validation runs first; a rejection reverts the flag and is returned to
// the caller, but the draft is still saved. A transport failure leaves all
// local state untouched so the user can retry. After a successful save the
// media reconciler runs; its failures are logged and swallowed.
func (a *Autosaver) Save(ctx context.Context, publish bool) error {
	a.mu.Lock()
	a.commitLocked()

	wasPublished := a.draft.Published
	pubErr := a.draft.SetPublished(publish)

	snapshot := *a.draft
	if a.draft.Body != nil {
		snapshot.Body = a.draft.Body.Clone()
	}
	a.mu.Unlock()

	id, err := a.docs.SaveDocument(ctx, &snapshot)
	if err != nil {
		a.mu.Lock()
		a.draft.Published = wasPublished
		a.mu.Unlock()
		return err
	}

	a.mu.Lock()
	if a.draft.ID == nil {
		saved := id
		a.draft.ID = &saved
	}
	a.lastSaved = snapshot.BodyHTML()
	featured := a.draft.FeaturedImage
	a.mu.Unlock()

	if a.media != nil {
		if _, rerr := a.media.Reconcile(ctx, id, snapshot.BodyHTML(), featured); rerr != nil {
			// cleanup is best effort and self healing on the next save
			logrus.Errorf("media reconciliation failed for article %s: %v", id, rerr)
		}
	}

	return pubErr
}

// RecoverVisibility repaints the surface from the last known-good snapshot
// when the content drifted while the page was hidden. This is the one case
// where stored state overwrites the live surface.
func (a *Autosaver) RecoverVisibility() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	current := a.history.Current()
	if current == "" || a.surface.HTML() == current {
		return false
	}
	if err := a.surface.SetHTML(current); err != nil {
		logrus.Errorf("visibility recovery failed: %v", err)
		return false
	}
	return true
}
