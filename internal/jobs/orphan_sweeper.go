package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/writespace/writespace/internal/compress"
	"github.com/writespace/writespace/internal/media"
	"github.com/writespace/writespace/internal/store"
)

// OrphanSweeper re-runs media reconciliation over recently updated
// articles. The per-save cleanup already handles the common case; the
// sweep catches orphans left behind when a session crashed or a storage
// delete failed.
type OrphanSweeper struct {
	store      store.Store
	reconciler *media.Reconciler
	window     time.Duration
}

func NewOrphanSweeper(store store.Store, reconciler *media.Reconciler, window time.Duration) *OrphanSweeper {
	if window <= 0 {
		window = time.Hour
	}
	return &OrphanSweeper{
		store:      store,
		reconciler: reconciler,
		window:     window,
	}
}

func (s *OrphanSweeper) Schedule() string {
	return "@every 10m"
}

func (s *OrphanSweeper) Run() {
	ctx := context.Background()

	articles, err := s.store.ListArticlesUpdatedSince(ctx, time.Now().Add(-s.window))
	if err != nil {
		logrus.Errorf("orphan sweep: listing articles: %v", err)
		return
	}

	swept := 0
	for _, article := range articles {
		id, err := uuid.Parse(article.ID)
		if err != nil {
			logrus.Errorf("orphan sweep: bad article id %q: %v", article.ID, err)
			continue
		}

		codec, err := compress.ForName(article.Compression)
		if err != nil {
			logrus.Errorf("orphan sweep: article %s: %v", article.ID, err)
			continue
		}
		body, err := codec.Decode([]byte(article.Content))
		if err != nil {
			logrus.Errorf("orphan sweep: decoding article %s: %v", article.ID, err)
			continue
		}

		deleted, err := s.reconciler.Reconcile(ctx, id, string(body), article.FeaturedImage)
		if err != nil {
			logrus.Errorf("orphan sweep: article %s: %v", article.ID, err)
			continue
		}
		swept += deleted
	}

	if swept > 0 {
		logrus.Infof("orphan sweep removed %d stale media references", swept)
	}
}
