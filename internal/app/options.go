package service

import (
	"time"

	"github.com/okian/kaizolist/internal/adapters/mq/notify"
	"github.com/okian/kaizolist/internal/adapters/source"
	"github.com/okian/kaizolist/internal/domain/scoring"
	"github.com/okian/kaizolist/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLoader sets where source collections come from.
func WithLoader(l source.Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithScorer sets the PLP scorer.
func WithScorer(sc *scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithDuplicateCredit counts a verifier's own victory as a second clear.
func WithDuplicateCredit(enabled bool) Option {
	return func(s *Service) {
		s.duplicateCredit = enabled
	}
}

// WithNotifier sets where board.recomputed events are published.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithReloadInterval rebuilds the board periodically. Zero disables it.
func WithReloadInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.reloadInterval = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
