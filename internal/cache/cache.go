package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/writespace/writespace/internal/model"
)

// ArticleCache keeps recently saved articles warm for readers. All of it
// is best effort; a miss or a failure just falls through to the store.
type ArticleCache interface {
	SetArticle(ctx context.Context, article *model.Article, ttl time.Duration) error
	GetArticle(ctx context.Context, id uuid.UUID) (*model.Article, error)
	DeleteArticle(ctx context.Context, id uuid.UUID) error
}
