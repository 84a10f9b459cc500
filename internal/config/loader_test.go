package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/catalog/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "db.json")
				convey.So(cfg.SampleSize, convey.ShouldEqual, 5)
				convey.So(cfg.DatasetTimeoutMS, convey.ShouldEqual, 10_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CATALOG_ADDR", ":8080")
			_ = os.Setenv("CATALOG_DATASET_PATH", "/srv/data/db.json")
			_ = os.Setenv("CATALOG_SAMPLE_SIZE", "3")
			_ = os.Setenv("CATALOG_SAMPLE_SEED", "42")
			_ = os.Setenv("CATALOG_LOG_FORMAT", "json")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/srv/data/db.json")
				convey.So(cfg.SampleSize, convey.ShouldEqual, 3)
				convey.So(cfg.SampleSeed, convey.ShouldEqual, uint64(42))
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
dataset_url: "http://data.local/db.json"
sample_size: 7
title: "Staging"
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("CATALOG_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DatasetURL, convey.ShouldEqual, "http://data.local/db.json")
				convey.So(cfg.SampleSize, convey.ShouldEqual, 7)
				convey.So(cfg.Title, convey.ShouldEqual, "Staging")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "db.json") // From defaults
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")       // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
sample_size: 7
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("CATALOG_CONFIG", tmpFile)
			_ = os.Setenv("CATALOG_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")  // Overridden by env
				convey.So(cfg.SampleSize, convey.ShouldEqual, 7) // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("CATALOG_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("CATALOG_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("CATALOG_SAMPLE_SIZE", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the YAML file blanks the address", func() {
			tmpFile := createTempConfigFile(`addr: ""`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("CATALOG_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the YAML file removes every dataset source", func() {
			tmpFile := createTempConfigFile(`
dataset_path: ""
dataset_url: ""
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("CATALOG_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "dataset_path or dataset_url")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given a config with a negative dataset timeout", t, func() {
		cfg := config.New()
		cfg.DatasetTimeoutMS = -1

		convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"CATALOG_CONFIG",
		"CATALOG_ADDR",
		"CATALOG_DATASET_PATH",
		"CATALOG_DATASET_URL",
		"CATALOG_SAMPLE_SIZE",
		"CATALOG_SAMPLE_SEED",
		"CATALOG_LOG_FORMAT",
		"CATALOG_LOG_LEVEL",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "catalog-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
