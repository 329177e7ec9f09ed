// Package config defines service configuration structures and loading hooks.
package config

import (
	"context"
	"strings"
	"time"

	"github.com/okian/kaizolist/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds the source JSON files.
	DataDir        string `koanf:"data_dir"`
	LevelsFile     string `koanf:"levels_file"`
	ChallengesFile string `koanf:"challenges_file"`
	VictorsFile    string `koanf:"victors_file"`

	// ReloadIntervalS rebuilds the board every N seconds. 0 disables it.
	ReloadIntervalS int `koanf:"reload_interval_s"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// DuplicateCredit counts a verifier's own victory as a second clear.
	DuplicateCredit bool `koanf:"duplicate_credit"`

	// NATSURL enables board notifications when non-empty.
	NATSURL     string `koanf:"nats_url"`
	NATSSubject string `koanf:"nats_subject"`

	Scoring Scoring `koanf:"scoring"`
}

// Scoring mirrors scoring.Params with config keys.
type Scoring struct {
	A        float64 `koanf:"a"`
	P        float64 `koanf:"p"`
	B        float64 `koanf:"b"`
	Q        float64 `koanf:"q"`
	Baseline float64 `koanf:"baseline"`
	Decay    string  `koanf:"decay"`
	Lambda   float64 `koanf:"lambda"`
	TopN     int     `koanf:"top_n"`
	C1       float64 `koanf:"c1"`
	C2       float64 `koanf:"c2"`
}

// New creates a Config with defaults. Context is reserved for future use.
func New(_ context.Context) *Config {
	p := scoring.DefaultParams()
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		DataDir:             "data",
		LevelsFile:          "levels.json",
		ChallengesFile:      "challenges.json",
		VictorsFile:         "victors.json",
		ReloadIntervalS:     0,
		MaxLeaderboardLimit: 100,
		NATSSubject:         "kaizolist.board",
		Scoring: Scoring{
			A:        p.A,
			P:        p.P,
			B:        p.B,
			Q:        p.Q,
			Baseline: p.Baseline,
			Decay:    string(p.Decay),
			Lambda:   p.Lambda,
			TopN:     p.TopN,
			C1:       p.C1,
			C2:       p.C2,
		},
	}
}

// ScoringParams converts the scoring section into formula parameters.
func (c *Config) ScoringParams() scoring.Params {
	s := c.Scoring
	return scoring.Params{
		A:        s.A,
		P:        s.P,
		B:        s.B,
		Q:        s.Q,
		Baseline: s.Baseline,
		Decay:    scoring.Decay(strings.ToLower(strings.TrimSpace(s.Decay))),
		Lambda:   s.Lambda,
		TopN:     s.TopN,
		C1:       s.C1,
		C2:       s.C2,
	}
}

// ReloadInterval returns ReloadIntervalS as a duration.
func (c *Config) ReloadInterval() time.Duration {
	return time.Duration(c.ReloadIntervalS) * time.Second
}
