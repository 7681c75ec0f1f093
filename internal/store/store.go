package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/writespace/writespace/internal/model"
)

type Store interface {
	ArticleStore
	RevisionStore
	MediaReferenceStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type ArticleStore interface {
	// CreateArticle creates a new article.
	CreateArticle(ctx context.Context, article *model.Article) error
	// GetArticle retrieves an article by ID.
	GetArticle(ctx context.Context, id uuid.UUID) (*model.Article, error)
	// ListArticles retrieves the articles of an author.
	ListArticles(ctx context.Context, authorID uuid.UUID) ([]*model.Article, error)
	// ListArticlesUpdatedSince retrieves articles updated in the given window.
	ListArticlesUpdatedSince(ctx context.Context, since time.Time) ([]*model.Article, error)
	// UpdateArticle updates an article.
	UpdateArticle(ctx context.Context, article *model.Article) error
	// DeleteArticle soft deletes an article by ID.
	DeleteArticle(ctx context.Context, id uuid.UUID) error
	// EraseArticle hard deletes an article by ID.
	EraseArticle(ctx context.Context, id uuid.UUID) error
}

type RevisionStore interface {
	// CreateRevision stores a pre-update snapshot of an article.
	CreateRevision(ctx context.Context, rev *model.ArticleRevision) error
	// ListRevisions retrieves the revisions of an article, newest first.
	ListRevisions(ctx context.Context, articleID uuid.UUID) ([]*model.ArticleRevision, error)
	// GetRevision retrieves one revision of an article.
	GetRevision(ctx context.Context, articleID uuid.UUID, revision int64) (*model.ArticleRevision, error)
	// DeleteRevision deletes one revision of an article.
	DeleteRevision(ctx context.Context, articleID uuid.UUID, revision int64) error
}

type MediaReferenceStore interface {
	// CreateMediaReference tracks a media URL for an article.
	CreateMediaReference(ctx context.Context, ref *model.MediaReference) error
	// ListMediaReferences retrieves every tracked reference of an article.
	ListMediaReferences(ctx context.Context, articleID uuid.UUID) ([]*model.MediaReference, error)
	// DeleteMediaReference removes a tracked reference by ID.
	DeleteMediaReference(ctx context.Context, id uuid.UUID) error
}
