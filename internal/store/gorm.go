package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/writespace/writespace/internal/model"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) CreateArticle(ctx context.Context, article *model.Article) error {
	return g.db.WithContext(ctx).Create(article).Error
}

func (g *GormStore) GetArticle(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	var article model.Article
	err := g.db.WithContext(ctx).Where("id = ?", id.String()).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (g *GormStore) ListArticles(ctx context.Context, authorID uuid.UUID) ([]*model.Article, error) {
	var articles []*model.Article
	err := g.db.WithContext(ctx).Where("author_id = ?", authorID.String()).
		Order("updated_at desc").Find(&articles).Error
	return articles, err
}

func (g *GormStore) ListArticlesUpdatedSince(ctx context.Context, since time.Time) ([]*model.Article, error) {
	var articles []*model.Article
	err := g.db.WithContext(ctx).Where("updated_at >= ?", since).Find(&articles).Error
	return articles, err
}

func (g *GormStore) UpdateArticle(ctx context.Context, article *model.Article) error {
	return g.db.WithContext(ctx).Save(article).Error
}

func (g *GormStore) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.Article{}).Error
}

func (g *GormStore) EraseArticle(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Unscoped().Where("id = ?", id.String()).Delete(&model.Article{}).Error
}

func (g *GormStore) CreateRevision(ctx context.Context, rev *model.ArticleRevision) error {
	return g.db.WithContext(ctx).Create(rev).Error
}

func (g *GormStore) ListRevisions(ctx context.Context, articleID uuid.UUID) ([]*model.ArticleRevision, error) {
	var revisions []*model.ArticleRevision
	err := g.db.WithContext(ctx).Where("article_id = ?", articleID.String()).
		Order("revision desc").Find(&revisions).Error
	return revisions, err
}

func (g *GormStore) GetRevision(ctx context.Context, articleID uuid.UUID, revision int64) (*model.ArticleRevision, error) {
	var rev model.ArticleRevision
	err := g.db.WithContext(ctx).
		Where("article_id = ? AND revision = ?", articleID.String(), revision).
		First(&rev).Error
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (g *GormStore) DeleteRevision(ctx context.Context, articleID uuid.UUID, revision int64) error {
	return g.db.WithContext(ctx).
		Where("article_id = ? AND revision = ?", articleID.String(), revision).
		Delete(&model.ArticleRevision{}).Error
}

func (g *GormStore) CreateMediaReference(ctx context.Context, ref *model.MediaReference) error {
	return g.db.WithContext(ctx).Create(ref).Error
}

func (g *GormStore) ListMediaReferences(ctx context.Context, articleID uuid.UUID) ([]*model.MediaReference, error) {
	var refs []*model.MediaReference
	err := g.db.WithContext(ctx).Where("article_id = ?", articleID.String()).Find(&refs).Error
	return refs, err
}

func (g *GormStore) DeleteMediaReference(ctx context.Context, id uuid.UUID) error {
	return g.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&model.MediaReference{}).Error
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
