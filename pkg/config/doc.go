// Package config loads typed configuration from environment variables,
// optionally read from .env files first.
//
// Structs are annotated with `env` tags understood by
// github.com/caarlos0/env/v11; .env files are read with
// github.com/joho/godotenv:
//
//	type StorageConfig struct {
//		Driver   string `env:"STORAGE_DRIVER" envDefault:"local"`
//		S3Bucket string `env:"S3_BUCKET"`
//	}
//
//	if err := config.LoadEnv(".env.local", ".env"); err != nil {
//		log.Fatal(err)
//	}
//	var storage StorageConfig
//	config.MustLoad(&storage)
//
// Every configuration type is parsed once and cached for the lifetime of
// the process. ResetCache clears the cache, which tests use between cases.
package config
