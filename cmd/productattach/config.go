package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dmitrymomot/productattach/pkg/httpserver"
	"github.com/dmitrymomot/productattach/pkg/pg"
	"github.com/dmitrymomot/productattach/pkg/redis"
)

const (
	storageLocal = "local"
	storageS3    = "s3"
)

// Config is the service configuration read from the environment.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"productattach"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"` // Overrides the level implied by APP_ENV.

	Media       MediaConfig
	Storage     StorageConfig
	Stores      StoresConfig
	Backend     BackendConfig
	ScopeConfig ScopeConfigConfig

	HTTP  httpserver.Config
	PG    pg.Config
	Redis redis.Config
}

type MediaConfig struct {
	Dir             string   `env:"MEDIA_DIR" envDefault:"./pub/media"`
	URL             string   `env:"MEDIA_URL" envDefault:"http://localhost:8080/media/"` // Base media URL of the single default store.
	DirPerm         string   `env:"MEDIA_DIR_PERM" envDefault:"0755"`                    // Octal permission of created folders.
	StrictPaths     bool     `env:"MEDIA_STRICT_PATHS" envDefault:"false"`               // Rejects paths resolving outside the media root.
	MaxUploadSize   int64    `env:"MEDIA_MAX_UPLOAD_SIZE" envDefault:"33554432"`
	AllowedExts     []string `env:"MEDIA_ALLOWED_EXTENSIONS" envSeparator:","` // Empty allows any extension.
	DeletableExts   []string `env:"MEDIA_DELETABLE_EXTENSIONS" envSeparator:","`
	ServeLocalFiles bool     `env:"MEDIA_SERVE_LOCAL" envDefault:"true"` // Serves the local media root under /media/.
}

type StorageConfig struct {
	Driver           string        `env:"STORAGE_DRIVER" envDefault:"local"`
	S3Bucket         string        `env:"S3_BUCKET"`
	S3Region         string        `env:"S3_REGION"`
	S3AccessKeyID    string        `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey      string        `env:"S3_SECRET_KEY"`
	S3Endpoint       string        `env:"S3_ENDPOINT"`
	S3Prefix         string        `env:"S3_PREFIX" envDefault:"media/productattach"`
	S3PublicURL      string        `env:"S3_PUBLIC_URL"`
	S3ForcePathStyle bool          `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
	S3UploadTimeout  time.Duration `env:"S3_UPLOAD_TIMEOUT" envDefault:"30s"`
}

type StoresConfig struct {
	File string `env:"STORES_FILE"` // YAML stores definition; empty means a single default store on MEDIA_URL.
}

type BackendConfig struct {
	BaseURL   string `env:"ADMIN_BASE_URL" envDefault:"http://localhost:8080"`
	FrontName string `env:"ADMIN_FRONT_NAME" envDefault:"admin"`
}

type ScopeConfigConfig struct {
	ItemsPerPage string        `env:"ITEMS_PER_PAGE" envDefault:"20"` // Default-scope fallback when no source has a value.
	CacheSize    int           `env:"SCOPE_CONFIG_CACHE_SIZE" envDefault:"1024"`
	CacheTTL     time.Duration `env:"SCOPE_CONFIG_CACHE_TTL" envDefault:"1m"`
	RedisTTL     time.Duration `env:"SCOPE_CONFIG_REDIS_TTL" envDefault:"10m"`
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case storageLocal:
	case storageS3:
		if c.Storage.S3Bucket == "" || c.Storage.S3Region == "" {
			return fmt.Errorf("S3_BUCKET and S3_REGION are required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	return nil
}

func (c MediaConfig) dirPerm() (os.FileMode, error) {
	perm, err := strconv.ParseUint(c.DirPerm, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid MEDIA_DIR_PERM %q: %w", c.DirPerm, err)
	}
	return os.FileMode(perm), nil
}
