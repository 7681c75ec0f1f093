// Package media reconciles stored media objects against the article
// content that references them, deleting orphans after every save.
package media

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/writespace/writespace/internal/editor"
	"github.com/writespace/writespace/internal/storage"
	"github.com/writespace/writespace/internal/store"
)

var _ editor.Reconciler = (*Reconciler)(nil)

// Reconciler deletes media an article no longer references. It is
// re-derived from the current content on every run, so running it twice
// with unchanged content is a no-op.
type Reconciler struct {
	refs    store.MediaReferenceStore
	objects storage.ObjectStorage
}

func NewReconciler(refs store.MediaReferenceStore, objects storage.ObjectStorage) *Reconciler {
	return &Reconciler{refs: refs, objects: objects}
}

// Reconcile extracts every image URL from the saved body, unions the
// featured image, and deletes tracked references whose URL is absent.
//
// Per orphan the stored object is deleted before its reference row: a
// failed storage delete leaves the row behind for a future pass, and a
// row is never removed while its object might still exist. Per-record
// failures are logged and skipped; the save that triggered the run is
// already done and must not be affected.
func (r *Reconciler) Reconcile(ctx context.Context, articleID uuid.UUID, body, featured string) (int, error) {
	current := mapset.NewSet[string](editor.ImageSources(body)...)
	if featured != "" {
		current.Add(featured)
	}

	refs, err := r.refs.ListMediaReferences(ctx, articleID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, ref := range refs {
		if current.Contains(ref.StorageURL) {
			continue
		}

		if ref.Uploaded {
			if ref.StoragePath == "" {
				// should not happen; leave the row so the leak stays visible
				logrus.Warnf("uploaded reference %s has no storage path, skipping", ref.ID)
				continue
			}
			if err := r.objects.Delete(ctx, ref.StoragePath); err != nil {
				logrus.Errorf("deleting orphaned object %s: %v", ref.StoragePath, err)
				continue // keep the row, retry on the next pass
			}
		}

		refID, err := uuid.Parse(ref.ID)
		if err != nil {
			logrus.Errorf("parsing media reference id %q: %v", ref.ID, err)
			continue
		}
		if err := r.refs.DeleteMediaReference(ctx, refID); err != nil {
			logrus.Errorf("deleting orphaned reference %s: %v", ref.ID, err)
			continue
		}
		deleted++
	}

	return deleted, nil
}
