package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/productattach/migrations"
	"github.com/dmitrymomot/productattach/modules/productattach"
	"github.com/dmitrymomot/productattach/pkg/attachment"
	"github.com/dmitrymomot/productattach/pkg/backendurl"
	"github.com/dmitrymomot/productattach/pkg/config"
	"github.com/dmitrymomot/productattach/pkg/file"
	"github.com/dmitrymomot/productattach/pkg/httpserver"
	"github.com/dmitrymomot/productattach/pkg/logger"
	"github.com/dmitrymomot/productattach/pkg/pg"
	"github.com/dmitrymomot/productattach/pkg/redis"
	"github.com/dmitrymomot/productattach/pkg/scopeconfig"
	"github.com/dmitrymomot/productattach/pkg/storemanager"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("productattach stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithContextExtractors(productattach.LogRequestID),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(cfg.LogLevel))
	}
	log := logger.New(opts...)
	logger.SetAsDefault(log)

	storage, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}

	storeOpts := []attachment.StoreOption{attachment.WithStoreLogger(log)}
	if len(cfg.Media.DeletableExts) > 0 {
		storeOpts = append(storeOpts, attachment.WithDeletableExtensions(cfg.Media.DeletableExts...))
	}
	store := attachment.NewStore(storage, storeOpts...)

	stores, err := newStoreManager(cfg)
	if err != nil {
		return err
	}

	static := scopeconfig.NewStatic(map[string]string{
		attachment.XMLPathItemsPerPage: cfg.ScopeConfig.ItemsPerPage,
	})
	sources := []scopeconfig.Source{}
	var checks []func(context.Context) error

	if cfg.PG.Enabled() {
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return err
		}
		defer pool.Close()

		if cfg.PG.AutoMigrate {
			if err := pg.Migrate(ctx, pool, migrations.FS, cfg.PG, log.With(logger.Component("migrations"))); err != nil {
				return err
			}
		}

		var source scopeconfig.Source = scopeconfig.NewPostgresSource(pool)
		if cfg.Redis.Enabled() {
			client, err := redis.Connect(ctx, cfg.Redis)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			source = scopeconfig.NewRedisCache(source, client, cfg.ScopeConfig.RedisTTL, scopeconfig.WithRedisLogger(log))
			checks = append(checks, redis.Healthcheck(client))
		}
		sources = append(sources, source)
		checks = append(checks, pg.Healthcheck(pool))
	}
	sources = append(sources, static)

	resolver := scopeconfig.NewResolver(
		scopeconfig.NewMemoryCache(scopeconfig.Chain(sources...), cfg.ScopeConfig.CacheSize, cfg.ScopeConfig.CacheTTL),
		stores,
	)

	urls, err := backendurl.New(cfg.Backend.BaseURL,
		backendurl.WithFrontName(cfg.Backend.FrontName),
	)
	if err != nil {
		return err
	}

	uploaderOpts := []attachment.UploaderOption{
		attachment.WithMaxFileSize(cfg.Media.MaxUploadSize),
		attachment.WithUploaderLogger(log),
	}
	if len(cfg.Media.AllowedExts) > 0 {
		uploaderOpts = append(uploaderOpts, attachment.WithAllowedExtensions(cfg.Media.AllowedExts...))
	}

	helper := attachment.NewHelper(store, resolver, stores, urls,
		attachment.WithHelperLogger(log),
		attachment.WithUploader(attachment.NewUploader(store, uploaderOpts...)),
	)

	r := chi.NewRouter()
	r.Get("/health", httpserver.HealthCheckHandler(log))
	r.Get("/ready", httpserver.HealthCheckHandler(log, checks...))
	r.Mount("/productattach", productattach.New(helper,
		productattach.WithLogger(log),
		productattach.WithMaxUploadSize(cfg.Media.MaxUploadSize),
	).Handle())

	if local, ok := storage.(*file.LocalStorage); ok && cfg.Media.ServeLocalFiles {
		prefix := "/media/" + attachment.MediaPath + "/"
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(local.BaseDir()))))
	}

	log.InfoContext(ctx, "starting productattach",
		slog.String("media_root", store.Root()),
		slog.String("storage", cfg.Storage.Driver),
		slog.Int("stores", len(stores.Stores())),
		slog.Bool("postgres", cfg.PG.Enabled()),
		slog.Bool("redis", cfg.PG.Enabled() && cfg.Redis.Enabled()),
	)

	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}

// newStorage returns the backend of the attachment media root.
func newStorage(ctx context.Context, cfg Config) (file.Storage, error) {
	if cfg.Storage.Driver == storageS3 {
		return file.NewS3Storage(ctx, file.S3Config{
			Bucket:         cfg.Storage.S3Bucket,
			Region:         cfg.Storage.S3Region,
			AccessKeyID:    cfg.Storage.S3AccessKeyID,
			SecretKey:      cfg.Storage.S3SecretKey,
			Endpoint:       cfg.Storage.S3Endpoint,
			Prefix:         cfg.Storage.S3Prefix,
			BaseURL:        cfg.Storage.S3PublicURL,
			ForcePathStyle: cfg.Storage.S3ForcePathStyle,
		}, file.WithS3UploadTimeout(cfg.Storage.S3UploadTimeout))
	}

	perm, err := cfg.Media.dirPerm()
	if err != nil {
		return nil, err
	}

	localOpts := []file.LocalOption{file.WithDirPerm(perm)}
	if cfg.Media.StrictPaths {
		localOpts = append(localOpts, file.WithConfinement())
	}

	return file.NewLocalStorage(
		filepath.Join(cfg.Media.Dir, attachment.MediaPath),
		strings.TrimSuffix(cfg.Media.URL, "/")+"/"+attachment.MediaPath,
		localOpts...,
	)
}

func newStoreManager(cfg Config) (*storemanager.Manager, error) {
	if cfg.Stores.File == "" {
		return storemanager.Single(cfg.Media.URL), nil
	}
	stores, err := storemanager.Load(cfg.Stores.File)
	if err != nil {
		return nil, fmt.Errorf("stores file %s: %w", cfg.Stores.File, err)
	}
	return stores, nil
}
