package config

import (
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config is the process configuration, read from the environment (a .env
// file is loaded automatically when present).
type Config struct {
	Env string

	DBDriver string // sqlite or postgres
	DBDSN    string

	RedisAddr string

	S3AccessKeyID     string
	S3AccessKeySecret string
	S3Endpoint        string
	S3Bucket          string
	S3PublicURL       string

	Compression   string
	MaxUploadSize int64
}

// Load reads the configuration from the environment with defaults that
// work for local development.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("writespace")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", ".tmp/writespace.db")
	v.SetDefault("redis_addr", "")
	v.SetDefault("compression", "gzip")
	v.SetDefault("max_upload_size", 5<<20)

	return &Config{
		Env:               v.GetString("env"),
		DBDriver:          v.GetString("db_driver"),
		DBDSN:             v.GetString("db_dsn"),
		RedisAddr:         v.GetString("redis_addr"),
		S3AccessKeyID:     v.GetString("s3_access_key_id"),
		S3AccessKeySecret: v.GetString("s3_access_key_secret"),
		S3Endpoint:        v.GetString("s3_endpoint"),
		S3Bucket:          v.GetString("s3_bucket"),
		S3PublicURL:       v.GetString("s3_public_url"),
		Compression:       v.GetString("compression"),
		MaxUploadSize:     v.GetInt64("max_upload_size"),
	}
}

// GetDB opens the configured database.
func GetDB(cfg *Config) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DBDriver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	default:
		db, err = gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	}
	if err != nil {
		logrus.Fatalf("error opening database: %v", err)
	}

	return db
}
