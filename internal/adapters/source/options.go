package source

import "github.com/okian/kaizolist/pkg/logger"

// Option applies a configuration option to the FileLoader.
type Option func(*FileLoader)

// WithDataDir sets the directory relative file names are resolved against.
func WithDataDir(dir string) Option {
	return func(l *FileLoader) {
		if dir != "" {
			l.dir = dir
		}
	}
}

// WithLevelsFile sets the main list file name.
func WithLevelsFile(name string) Option {
	return func(l *FileLoader) {
		if name != "" {
			l.levels = name
		}
	}
}

// WithChallengesFile sets the challenge list file name.
func WithChallengesFile(name string) Option {
	return func(l *FileLoader) {
		if name != "" {
			l.challenges = name
		}
	}
}

// WithVictorsFile sets the victors mapping file name.
func WithVictorsFile(name string) Option {
	return func(l *FileLoader) {
		if name != "" {
			l.victors = name
		}
	}
}

// WithLogger sets the logger used for missing or unreadable files.
func WithLogger(log logger.Logger) Option {
	return func(l *FileLoader) {
		if log != nil {
			l.log = log
		}
	}
}
