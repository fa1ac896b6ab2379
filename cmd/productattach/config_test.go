package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/productattach/pkg/config"
)

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		var cfg Config
		require.NoError(t, config.Load(&cfg))
		require.NoError(t, cfg.validate())

		assert.Equal(t, storageLocal, cfg.Storage.Driver)
		assert.Equal(t, "./pub/media", cfg.Media.Dir)
		assert.Equal(t, "20", cfg.ScopeConfig.ItemsPerPage)
		assert.False(t, cfg.PG.Enabled())
		assert.False(t, cfg.Redis.Enabled())

		perm, err := cfg.Media.dirPerm()
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), perm)
	})

	t.Run("environment overrides", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)
		t.Setenv("MEDIA_DIR_PERM", "0700")
		t.Setenv("MEDIA_ALLOWED_EXTENSIONS", "pdf,jpg")
		t.Setenv("STORAGE_DRIVER", "s3")
		t.Setenv("S3_BUCKET", "media")
		t.Setenv("S3_REGION", "eu-central-1")

		var cfg Config
		require.NoError(t, config.Load(&cfg))
		require.NoError(t, cfg.validate())

		assert.Equal(t, []string{"pdf", "jpg"}, cfg.Media.AllowedExts)
		perm, err := cfg.Media.dirPerm()
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o700), perm)
	})

	t.Run("invalid values", func(t *testing.T) {
		assert.Error(t, Config{Storage: StorageConfig{Driver: "ftp"}}.validate())
		assert.Error(t, Config{Storage: StorageConfig{Driver: storageS3}}.validate())

		_, err := MediaConfig{DirPerm: "rwx"}.dirPerm()
		assert.Error(t, err)
	})
}
