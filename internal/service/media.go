package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/writespace/writespace/internal/model"
	"github.com/writespace/writespace/internal/storage"
	"github.com/writespace/writespace/internal/store"
)

// DefaultMaxUploadSize caps media uploads at 5 MiB, checked before any
// bytes go over the wire.
const DefaultMaxUploadSize = 5 << 20

// NewMediaService creates a new MediaService. maxSize <= 0 falls back to
// DefaultMaxUploadSize.
func NewMediaService(objects storage.ObjectStorage, store store.Store, maxSize int64) *MediaService {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &MediaService{
		objects: objects,
		store:   store,
		maxSize: maxSize,
	}
}

// MediaService is the media storage service: object upload/delete plus the
// MediaReference tracking reconciliation works from.
type MediaService struct {
	objects storage.ObjectStorage
	store   store.Store
	maxSize int64
}

// Upload stores a media object and returns its path and public URL.
// Oversized payloads are rejected before the upload starts.
func (m *MediaService) Upload(ctx context.Context, data []byte, contentType string) (*storage.Object, error) {
	if int64(len(data)) > m.maxSize {
		return nil, validationErr(fmt.Sprintf("object of %d bytes exceeds the %d byte upload limit", len(data), m.maxSize))
	}
	obj, err := m.objects.Upload(ctx, data, contentType)
	if err != nil {
		return nil, transportErr("uploading object", err)
	}
	return obj, nil
}

// DeleteObject removes a stored object by path.
func (m *MediaService) DeleteObject(ctx context.Context, path string) error {
	if err := m.objects.Delete(ctx, path); err != nil {
		return transportErr("deleting object", err)
	}
	return nil
}

// TrackReference records a media URL as referenced by an article. An
// uploaded reference must carry its storage path.
func (m *MediaService) TrackReference(ctx context.Context, ref *model.MediaReference) error {
	if ref.Uploaded && ref.StoragePath == "" {
		return validationErr("uploaded reference is missing its storage path")
	}
	if ref.ID == "" {
		ref.ID = uuid.New().String()
	}
	if err := m.store.CreateMediaReference(ctx, ref); err != nil {
		return transportErr("tracking media reference", err)
	}
	return nil
}

// ListReferences returns every tracked reference of an article.
func (m *MediaService) ListReferences(ctx context.Context, articleID uuid.UUID) ([]*model.MediaReference, error) {
	refs, err := m.store.ListMediaReferences(ctx, articleID)
	if err != nil {
		return nil, transportErr("listing media references", err)
	}
	return refs, nil
}

// DeleteReference removes a tracked reference by ID.
func (m *MediaService) DeleteReference(ctx context.Context, id uuid.UUID) error {
	if err := m.store.DeleteMediaReference(ctx, id); err != nil {
		return transportErr("deleting media reference", err)
	}
	return nil
}
