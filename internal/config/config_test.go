package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConfigDefaults(t *testing.T) {
	Convey("Given a default config", t, func() {
		cfg := config.New(context.Background())

		Convey("Then sensible defaults are set", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.WorkerCount, ShouldBeGreaterThan, 0)
			So(cfg.QueueSize, ShouldEqual, 4096)
			So(cfg.CacheSize, ShouldEqual, 10_000)
			So(cfg.ArtifactDir, ShouldBeBlank)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given the config loader", t, func() {
		ctx := context.Background()

		cleanup := func() {
			os.Unsetenv("PDEX_CONFIG")
			os.Unsetenv("PDEX_ADDR")
			os.Unsetenv("PDEX_LOG_LEVEL")
			os.Unsetenv("PDEX_WORKER_COUNT")
			os.Unsetenv("PDEX_QUEUE_SIZE")
			os.Unsetenv("PDEX_CACHE_SIZE")
			os.Unsetenv("PDEX_ARTIFACT_DIR")
		}
		cleanup()
		Reset(cleanup)

		Convey("When no overrides are present", func() {
			cfg, err := config.Load(ctx)

			Convey("Then defaults are returned", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.LogLevel, ShouldEqual, "info")
			})
		})

		Convey("When env vars override fields", func() {
			os.Setenv("PDEX_ADDR", ":7070")
			os.Setenv("PDEX_LOG_LEVEL", "debug")
			os.Setenv("PDEX_QUEUE_SIZE", "128")
			os.Setenv("PDEX_ARTIFACT_DIR", "/tmp/bundle")

			cfg, err := config.Load(ctx)

			Convey("Then the overrides win", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.QueueSize, ShouldEqual, 128)
				So(cfg.ArtifactDir, ShouldEqual, "/tmp/bundle")
			})
		})

		Convey("When a YAML file is provided", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			yaml := "addr: \":6060\"\nworker_count: 3\ncache_size: 42\n"
			So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
			os.Setenv("PDEX_CONFIG", path)

			cfg, err := config.Load(ctx)

			Convey("Then file values override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.WorkerCount, ShouldEqual, 3)
				So(cfg.CacheSize, ShouldEqual, 42)
			})

			Convey("And env vars still override the file", func() {
				os.Setenv("PDEX_ADDR", ":5050")
				cfg, err = config.Load(ctx)
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":5050")
			})
		})

		Convey("When the config file does not exist", func() {
			os.Setenv("PDEX_CONFIG", "/nonexistent/config.yaml")

			_, err := config.Load(ctx)

			Convey("Then loading fails", func() {
				So(err, ShouldWrap, config.ErrLoadConfig)
			})
		})

		Convey("When a field is invalid", func() {
			os.Setenv("PDEX_ADDR", "")

			Convey("Then an empty addr is rejected", func() {
				// An empty env value still overrides the default.
				_, err := config.Load(ctx)
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})

		Convey("When worker_count is non-positive", func() {
			os.Setenv("PDEX_WORKER_COUNT", "0")

			_, err := config.Load(ctx)

			Convey("Then loading fails", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}
