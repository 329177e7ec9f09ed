// Package source reads the list, challenge and victors collections from disk.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/okian/kaizolist/internal/domain/model"
	"github.com/okian/kaizolist/internal/domain/registry"
	"github.com/okian/kaizolist/pkg/logger"
)

// Snapshot is one consistent read of every source collection.
type Snapshot struct {
	// Lists holds the entry collections in merge order: levels, then challenges.
	Lists   [][]model.Entry
	Victors map[string][]string
}

// Loader produces source snapshots.
type Loader interface {
	Load(ctx context.Context) (Snapshot, error)
}

// FileLoader reads JSON documents from a data directory.
type FileLoader struct {
	dir        string
	levels     string
	challenges string
	victors    string
	log        logger.Logger
}

// NewFileLoader creates a loader for levels.json, challenges.json and
// victors.json in the current directory unless options say otherwise.
func NewFileLoader(opts ...Option) *FileLoader {
	l := &FileLoader{
		dir:        ".",
		levels:     "levels.json",
		challenges: "challenges.json",
		victors:    "victors.json",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the three files concurrently. A missing or unreadable file
// yields an empty collection and a warning; only a bad data directory or a
// cancelled context is an error.
func (l *FileLoader) Load(ctx context.Context) (Snapshot, error) {
	fi, err := os.Stat(l.dir)
	if err != nil {
		return Snapshot{}, fmt.Errorf("stat data dir: %w", err)
	}
	if !fi.IsDir() {
		return Snapshot{}, fmt.Errorf("%s: %w", l.dir, ErrNotDirectory)
	}

	var (
		levels, challenges []model.Entry
		victors            map[string][]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		levels = registry.ParseEntries(l.read(gctx, l.levels))
		return gctx.Err()
	})
	g.Go(func() error {
		challenges = registry.ParseEntries(l.read(gctx, l.challenges))
		return gctx.Err()
	})
	g.Go(func() error {
		victors = registry.ParseVictors(l.read(gctx, l.victors))
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Lists: [][]model.Entry{levels, challenges}, Victors: victors}, nil
}

func (l *FileLoader) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(l.dir, name)
}

func (l *FileLoader) read(ctx context.Context, name string) []byte {
	p := l.path(name)
	data, err := os.ReadFile(p)
	if err != nil {
		if l.log != nil {
			l.log.Warn(ctx, "source unavailable, using empty collection",
				logger.String("path", p), logger.Error(err))
		}
		return nil
	}
	return data
}
