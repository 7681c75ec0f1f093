package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/writespace/writespace/internal/model"
)

var _ ArticleCache = (*Nop)(nil)

// Nop is the cache used when no redis is configured, for example in tests.
type Nop struct{}

func NewNop() Nop {
	return Nop{}
}

func (Nop) SetArticle(ctx context.Context, article *model.Article, ttl time.Duration) error {
	return nil
}

func (Nop) GetArticle(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	return nil, ErrCacheMiss
}

func (Nop) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	return nil
}
