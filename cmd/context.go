package cmd

import (
	"github.com/writespace/writespace/internal/cache"
	"github.com/writespace/writespace/internal/compress"
	"github.com/writespace/writespace/internal/config"
	"github.com/writespace/writespace/internal/media"
	"github.com/writespace/writespace/internal/service"
	"github.com/writespace/writespace/internal/storage"
	"github.com/writespace/writespace/internal/store"

	"github.com/sirupsen/logrus"
)

// env is the wired-up application state the CLI commands run against.
type env struct {
	cfg        *config.Config
	store      store.Store
	docs       *service.DocumentService
	mediaSvc   *service.MediaService
	reconciler *media.Reconciler
}

func buildEnv() *env {
	cfg := config.Load()
	db := config.GetDB(cfg)
	st := store.NewGormStore(db)

	codec, err := compress.ForName(cfg.Compression)
	if err != nil {
		logrus.Fatalf("bad compression config: %v", err)
	}

	var articles cache.ArticleCache = cache.NewNop()
	if cfg.RedisAddr != "" {
		articles = cache.NewRedis(cfg.RedisAddr)
	}

	var objects storage.ObjectStorage = storage.NewMemoryStorage()
	if cfg.S3Endpoint != "" {
		objects = storage.NewS3Storage(cfg.S3AccessKeyID, cfg.S3AccessKeySecret, cfg.S3Endpoint, cfg.S3Bucket, cfg.S3PublicURL)
	}

	return &env{
		cfg:        cfg,
		store:      st,
		docs:       service.NewDocumentService(codec, st, articles),
		mediaSvc:   service.NewMediaService(objects, st, cfg.MaxUploadSize),
		reconciler: media.NewReconciler(st, objects),
	}
}
