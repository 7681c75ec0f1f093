package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/writespace/writespace/internal/model"
)

// ErrCacheMiss is returned when the article is not cached.
var ErrCacheMiss = errors.New("cache: article not found")

func articleKey(id string) string {
	return "article:" + id
}

var _ ArticleCache = (*Redis)(nil)

type Redis struct {
	client *redis.Client
}

func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // no password set
		DB:       0,  // use default DB
		Protocol: 2,
	})

	return &Redis{client: client}
}

func (r *Redis) SetArticle(ctx context.Context, article *model.Article, ttl time.Duration) error {
	data, err := json.Marshal(article)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, articleKey(article.ID), data, ttl).Err()
}

func (r *Redis) GetArticle(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	res := r.client.Get(ctx, articleKey(id.String()))
	if err := res.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	data, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	article := &model.Article{}
	if err := json.Unmarshal(data, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (r *Redis) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, articleKey(id.String())).Err()
}
