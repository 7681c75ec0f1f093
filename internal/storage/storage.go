package storage

import "context"

// Object is a stored media object: the key used to delete it and the URL
// readers embed in article bodies.
type Object struct {
	Path      string
	PublicURL string
}

// ObjectStorage stores uploaded media. Implementations own their timeout
// and retry behavior; callers report a failure once and let the user retry.
type ObjectStorage interface {
	Upload(ctx context.Context, data []byte, contentType string) (*Object, error)
	Delete(ctx context.Context, path string) error
}
