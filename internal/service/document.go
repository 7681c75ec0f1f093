package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/writespace/writespace/internal/cache"
	"github.com/writespace/writespace/internal/compress"
	"github.com/writespace/writespace/internal/editor"
	"github.com/writespace/writespace/internal/model"
	"github.com/writespace/writespace/internal/store"
)

const articleCacheTTL = time.Hour

// NewDocumentService creates a new DocumentService.
func NewDocumentService(codec compress.Codec, store store.Store, cache cache.ArticleCache) *DocumentService {
	return &DocumentService{
		codec: codec,
		store: store,
		cache: cache,
	}
}

// DocumentService is the document persistence service: it moves drafts in
// and out of the article store, writing a revision snapshot on every
// update. Body content is compressed with the configured codec.
type DocumentService struct {
	codec compress.Codec
	store store.Store
	cache cache.ArticleCache
}

var _ editor.Persister = (*DocumentService)(nil)

// SaveDocument creates the article when the draft has no ID yet and
// updates it otherwise. Updates snapshot the previous row as a revision
// before overwriting it.
func (s *DocumentService) SaveDocument(ctx context.Context, draft *editor.Draft) (uuid.UUID, error) {
	body, err := s.codec.Encode([]byte(draft.BodyHTML()))
	if err != nil {
		return uuid.Nil, transportErr("encoding article body", err)
	}

	if draft.ID == nil {
		id := uuid.New()
		article := s.articleFromDraft(draft, id)
		article.Content = string(body)

		if err := s.store.CreateArticle(ctx, article); err != nil {
			return uuid.Nil, transportErr("creating article", err)
		}
		s.cacheArticle(ctx, article)
		return id, nil
	}

	id := *draft.ID
	var saved *model.Article
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		existing, err := tx.GetArticle(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("article "+id.String(), err)
			}
			return err
		}

		// snapshot the row being replaced
		if err := tx.CreateRevision(ctx, &model.ArticleRevision{
			ArticleID:   existing.ID,
			Revision:    existing.Revision,
			Title:       existing.Title,
			Subtitle:    existing.Subtitle,
			Content:     existing.Content,
			Compression: existing.Compression,
		}); err != nil {
			return err
		}

		article := s.articleFromDraft(draft, id)
		article.Content = string(body)
		article.Revision = existing.Revision + 1
		article.CreatedAt = existing.CreatedAt
		saved = article

		return tx.UpdateArticle(ctx, article)
	})
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			return uuid.Nil, err
		}
		return uuid.Nil, transportErr("updating article", err)
	}

	s.cacheArticle(ctx, saved)
	return id, nil
}

// LoadDocument hydrates a draft from storage.
func (s *DocumentService) LoadDocument(ctx context.Context, id uuid.UUID) (*editor.Draft, error) {
	article, err := s.cache.GetArticle(ctx, id)
	if err != nil {
		article, err = s.store.GetArticle(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFoundErr("article "+id.String(), err)
			}
			return nil, transportErr("loading article", err)
		}
	}
	return s.draftFromArticle(article)
}

// ListDocuments returns the stored articles of an author, newest first.
func (s *DocumentService) ListDocuments(ctx context.Context, authorID uuid.UUID) ([]*model.Article, error) {
	articles, err := s.store.ListArticles(ctx, authorID)
	if err != nil {
		return nil, transportErr("listing articles", err)
	}
	return articles, nil
}

// DeleteDocument soft deletes an article.
func (s *DocumentService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteArticle(ctx, id); err != nil {
		return transportErr("deleting article", err)
	}
	if err := s.cache.DeleteArticle(ctx, id); err != nil {
		logrus.Warnf("evicting article %s from cache: %v", id, err)
	}
	return nil
}

// EraseDocument hard deletes an article.
func (s *DocumentService) EraseDocument(ctx context.Context, id uuid.UUID) error {
	if err := s.store.EraseArticle(ctx, id); err != nil {
		return transportErr("erasing article", err)
	}
	if err := s.cache.DeleteArticle(ctx, id); err != nil {
		logrus.Warnf("evicting article %s from cache: %v", id, err)
	}
	return nil
}

// ListRevisions returns the revision snapshots of an article, newest first.
func (s *DocumentService) ListRevisions(ctx context.Context, articleID uuid.UUID) ([]*model.ArticleRevision, error) {
	revisions, err := s.store.ListRevisions(ctx, articleID)
	if err != nil {
		return nil, transportErr("listing revisions", err)
	}
	return revisions, nil
}

// RestoreRevision overwrites the current article content with an older
// revision, snapshotting the current row first so nothing is lost.
func (s *DocumentService) RestoreRevision(ctx context.Context, articleID uuid.UUID, revision int64) error {
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		article, err := tx.GetArticle(ctx, articleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("article "+articleID.String(), err)
			}
			return err
		}

		rev, err := tx.GetRevision(ctx, articleID, revision)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErr("revision", err)
			}
			return err
		}

		if err := tx.CreateRevision(ctx, &model.ArticleRevision{
			ArticleID:   article.ID,
			Revision:    article.Revision,
			Title:       article.Title,
			Subtitle:    article.Subtitle,
			Content:     article.Content,
			Compression: article.Compression,
		}); err != nil {
			return err
		}

		article.Title = rev.Title
		article.Subtitle = rev.Subtitle
		article.Content = rev.Content
		article.Compression = rev.Compression
		article.Revision = article.Revision + 1

		return tx.UpdateArticle(ctx, article)
	})
	if err != nil {
		var se *Error
		if errors.As(err, &se) {
			return err
		}
		return transportErr("restoring revision", err)
	}
	return nil
}

func (s *DocumentService) articleFromDraft(draft *editor.Draft, id uuid.UUID) *model.Article {
	article := &model.Article{
		ID:            id.String(),
		AuthorID:      draft.AuthorID.String(),
		Title:         draft.Title,
		Subtitle:      draft.Subtitle,
		FeaturedImage: draft.FeaturedImage,
		Language:      draft.Language,
		Published:     draft.Published,
		Compression:   s.codec.Name(),
	}
	if draft.CategoryID != nil {
		article.CategoryID = draft.CategoryID.String()
	}
	return article
}

func (s *DocumentService) draftFromArticle(article *model.Article) (*editor.Draft, error) {
	codec, err := compress.ForName(article.Compression)
	if err != nil {
		return nil, transportErr("resolving codec", err)
	}
	body, err := codec.Decode([]byte(article.Content))
	if err != nil {
		return nil, transportErr("decoding article body", err)
	}
	doc, err := editor.ParseHTML(string(body))
	if err != nil {
		return nil, transportErr("parsing article body", err)
	}

	id, err := uuid.Parse(article.ID)
	if err != nil {
		return nil, transportErr("parsing article id", err)
	}
	authorID, err := uuid.Parse(article.AuthorID)
	if err != nil {
		return nil, transportErr("parsing author id", err)
	}

	draft := &editor.Draft{
		ID:            &id,
		AuthorID:      authorID,
		Title:         article.Title,
		Subtitle:      article.Subtitle,
		Body:          doc,
		FeaturedImage: article.FeaturedImage,
		Language:      article.Language,
		Published:     article.Published,
	}
	if article.CategoryID != "" {
		categoryID, err := uuid.Parse(article.CategoryID)
		if err == nil {
			draft.CategoryID = &categoryID
		}
	}
	return draft, nil
}

func (s *DocumentService) cacheArticle(ctx context.Context, article *model.Article) {
	if err := s.cache.SetArticle(ctx, article, articleCacheTTL); err != nil {
		logrus.Warnf("caching article %s: %v", article.ID, err)
	}
}
