package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/kaizolist/internal/config"
	"github.com/okian/kaizolist/internal/domain/scoring"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
				convey.So(cfg.ScoringParams(), convey.ShouldResemble, scoring.DefaultParams())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("KAIZO_ADDR", ":8080")
			_ = os.Setenv("KAIZO_DATA_DIR", "/srv/list")
			_ = os.Setenv("KAIZO_RELOAD_INTERVAL_S", "30")
			_ = os.Setenv("KAIZO_DUPLICATE_CREDIT", "true")
			_ = os.Setenv("KAIZO_SCORING_DECAY", "cap")
			_ = os.Setenv("KAIZO_SCORING_TOP_N", "5")
			_ = os.Setenv("KAIZO_SCORING_C2", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/list")
				convey.So(cfg.ReloadIntervalS, convey.ShouldEqual, 30)
				convey.So(cfg.DuplicateCredit, convey.ShouldBeTrue)
				p := cfg.ScoringParams()
				convey.So(p.Decay, convey.ShouldEqual, scoring.Cap)
				convey.So(p.TopN, convey.ShouldEqual, 5)
				convey.So(p.C2, convey.ShouldEqual, 0.0)
				convey.So(p.P, convey.ShouldEqual, 0.85)
			})
		})

		convey.Convey("When the decay is given in mixed case", func() {
			_ = os.Setenv("KAIZO_SCORING_DECAY", " EXPONENTIAL ")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it validates and resolves to the lower-case decay", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ScoringParams().Decay, convey.ShouldEqual, scoring.Exponential)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			tmpFile := createTempConfigFile(t, `
addr: ":9090"
log_format: json
max_leaderboard_limit: 25
nats_url: "nats://127.0.0.1:4222"
scoring:
  baseline: 5
  lambda: 0.2
`)
			_ = os.Setenv("KAIZO_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values are merged over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 25)
				convey.So(cfg.NATSURL, convey.ShouldEqual, "nats://127.0.0.1:4222")
				convey.So(cfg.Scoring.Baseline, convey.ShouldEqual, 5.0)
				convey.So(cfg.Scoring.Lambda, convey.ShouldEqual, 0.2)
				convey.So(cfg.Scoring.Q, convey.ShouldEqual, 0.65)
			})

			convey.Convey("And env overrides the file", func() {
				_ = os.Setenv("KAIZO_ADDR", ":7070")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("KAIZO_CONFIG", "/nonexistent/kaizo.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then ErrLoadConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the YAML is invalid", func() {
			_ = os.Setenv("KAIZO_CONFIG", createTempConfigFile(t, "addr: [unclosed"))
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When a numeric env var is not a number", func() {
			_ = os.Setenv("KAIZO_MAX_LEADERBOARD_LIMIT", "lots")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given invalid settings", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		cases := [][2]string{
			{"KAIZO_ADDR", ""},
			{"KAIZO_MAX_LEADERBOARD_LIMIT", "0"},
			{"KAIZO_RELOAD_INTERVAL_S", "-1"},
			{"KAIZO_LOG_FORMAT", "xml"},
			{"KAIZO_SCORING_P", "1.5"},
			{"KAIZO_SCORING_DECAY", "linear"},
		}
		for _, c := range cases {
			key, val := c[0], c[1]
			convey.Convey("When "+key+"="+val, func() {
				_ = os.Setenv(key, val)
				defer func() { _ = os.Unsetenv(key) }()

				_, err := config.Load(ctx)

				convey.Convey("Then ErrInvalidConfig is returned", func() {
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}

		convey.Convey("When scoring params are invalid", func() {
			_ = os.Setenv("KAIZO_SCORING_LAMBDA", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then the scoring error is preserved", func() {
				convey.So(errors.Is(err, scoring.ErrInvalidParams), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"KAIZO_CONFIG", "KAIZO_ADDR", "KAIZO_LOG_LEVEL", "KAIZO_LOG_FORMAT", "KAIZO_DATA_DIR",
		"KAIZO_RELOAD_INTERVAL_S", "KAIZO_DUPLICATE_CREDIT", "KAIZO_MAX_LEADERBOARD_LIMIT",
		"KAIZO_SCORING_DECAY", "KAIZO_SCORING_TOP_N", "KAIZO_SCORING_C2", "KAIZO_SCORING_P",
		"KAIZO_SCORING_LAMBDA",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "kaizo-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	return f.Name()
}
