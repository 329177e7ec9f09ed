// Package service builds the leaderboard from its sources and answers the
// read queries the HTTP API needs.
package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/kaizolist/internal/adapters/mq/notify"
	repository "github.com/okian/kaizolist/internal/adapters/repository"
	"github.com/okian/kaizolist/internal/adapters/source"
	"github.com/okian/kaizolist/internal/domain/aggregate"
	"github.com/okian/kaizolist/internal/domain/model"
	"github.com/okian/kaizolist/internal/domain/ranking"
	"github.com/okian/kaizolist/internal/domain/registry"
	"github.com/okian/kaizolist/internal/domain/scoring"
	"github.com/okian/kaizolist/internal/domain/simulate"
	"github.com/okian/kaizolist/internal/domain/types"
	"github.com/okian/kaizolist/pkg/logger"
	"github.com/okian/kaizolist/pkg/metrics"
)

// Board is one immutable build of the leaderboard. Its stores are filled
// before the board is published and never written again, so every query
// that loads one Board sees a single build.
type Board struct {
	ID        string
	Registry  *registry.Registry
	Players   []model.PlayerAggregate
	Standings []types.Standing
	Report    aggregate.Report
	BuiltAt   time.Time

	byName map[string]int
	scores repository.Store
	points repository.Store
}

func newBoard(ctx context.Context, reg *registry.Registry, players []model.PlayerAggregate, report aggregate.Report) (*Board, error) {
	b := &Board{
		ID:        uuid.NewString(),
		Registry:  reg,
		Players:   players,
		Standings: ranking.RankPlayers(players),
		Report:    report,
		BuiltAt:   time.Now().UTC(),
		byName:    make(map[string]int, len(players)),
		scores:    repository.NewTreapStore(),
		points:    repository.NewTreapStore(repository.WithOrder(repository.ByPoints)),
	}
	for i, p := range players {
		b.byName[p.Name] = i
	}
	if err := b.scores.Replace(ctx, b.Standings); err != nil {
		return nil, fmt.Errorf("replace standings: %w", err)
	}
	if err := b.points.Replace(ctx, ranking.RankByPoints(players)); err != nil {
		return nil, fmt.Errorf("replace point standings: %w", err)
	}
	return b, nil
}

func (b *Board) creditedKLP() float64 {
	var sum float64
	for _, p := range b.Players {
		sum += p.RawPointTotal
	}
	return sum
}

func (b *Board) player(name string) (model.PlayerAggregate, bool) {
	i, ok := b.byName[name]
	if !ok {
		return model.PlayerAggregate{}, false
	}
	return b.Players[i], true
}

// PlayerView is everything the API shows for one player.
type PlayerView struct {
	types.Standing
	PointsRank     int                   `json:"klp_rank"`
	Breakdown      scoring.Breakdown     `json:"breakdown"`
	Verification   float64               `json:"verification_klp"`
	Victory        float64               `json:"victory_klp"`
	Participations []model.Participation `json:"participations"`
	Created        []string              `json:"created,omitempty"`
}

// Service implements the API dependencies for the leaderboard.
type Service struct {
	mu       sync.Mutex
	reloadMu sync.Mutex

	loader          source.Loader
	scorer          *scoring.Scorer
	duplicateCredit bool
	notifier        notify.Notifier
	reloadInterval  time.Duration

	board atomic.Pointer[Board]

	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	logger logger.Logger
}

// New constructs a Service. Start must be called before queries succeed.
func New(opts ...Option) *Service {
	s := &Service{
		loader:   source.NewFileLoader(),
		scorer:   scoring.NewScorer(),
		notifier: notify.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the first board and, when configured, starts periodic reloads.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting leaderboard service...")
	if err := s.Reload(ctx); err != nil {
		return err
	}

	s.stopCh = make(chan struct{})
	if s.reloadInterval > 0 {
		s.startPeriodicReload(ctx)
	}
	s.started = true
	s.logger.Info(ctx, "leaderboard service started",
		logger.Duration("reloadInterval", s.reloadInterval),
		logger.Bool("duplicateCredit", s.duplicateCredit),
	)
	return nil
}

func (s *Service) startPeriodicReload(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.reloadInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				if err := s.Reload(ctx); err != nil {
					s.logger.Error(ctx, "periodic reload failed", logger.Error(err))
				}
			}
		}
	}()
}

// Stop ends periodic reloads and closes the notifier.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping leaderboard service...")
	close(s.stopCh)
	s.wg.Wait()
	if err := s.notifier.Close(); err != nil {
		s.logger.Warn(context.Background(), "notifier close failed", logger.Error(err))
	}
	s.started = false
	s.logger.Info(context.Background(), "leaderboard service stopped")
}

// Reload reads the sources, rebuilds every aggregate and swaps the board in.
// Readers keep seeing the previous board until the swap.
func (s *Service) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	log := s.log()
	loadStart := time.Now()
	snap, err := s.loader.Load(ctx)
	if err != nil {
		metrics.RecordRecomputeError()
		return fmt.Errorf("load sources: %w", err)
	}
	metrics.RecordSourceLoad(ms(time.Since(loadStart)))

	start := time.Now()
	reg := registry.New(snap.Lists...)
	players, report := aggregate.BuildWithReport(reg, snap.Victors,
		aggregate.WithScorer(s.scorer),
		aggregate.WithDuplicateCredit(s.duplicateCredit),
	)
	b, err := newBoard(ctx, reg, players, report)
	if err != nil {
		metrics.RecordRecomputeError()
		return err
	}
	s.board.Store(b)

	elapsed := time.Since(start)
	metrics.RecordRecompute(ms(elapsed), metrics.BoardStats{
		Players:        report.Players,
		Entries:        reg.Len(),
		Participations: report.Participations,
		Skipped:        report.Skipped,
		Duplicates:     report.Duplicates,
	})
	log.Info(ctx, "board recomputed",
		logger.String("board", b.ID),
		logger.Int("entries", reg.Len()),
		logger.Int("droppedEntries", reg.Dropped()),
		logger.Int("players", report.Players),
		logger.Int("skipped", report.Skipped),
		logger.Int("duplicates", report.Duplicates),
		logger.Duration("took", elapsed),
	)

	ev := notify.Event{
		Type:       notify.BoardRecomputed,
		ID:         b.ID,
		Players:    report.Players,
		Entries:    reg.Len(),
		Skipped:    report.Skipped,
		Duplicates: report.Duplicates,
		BuiltAt:    b.BuiltAt,
	}
	if len(b.Standings) > 0 {
		ev.Leader, ev.LeaderPLP = b.Standings[0].Name, b.Standings[0].Score
	}
	if err := s.notifier.Publish(ctx, ev); err != nil {
		log.Warn(ctx, "board notification failed", logger.Error(err))
	}
	return nil
}

// Board returns the current board, or nil before the first build.
func (s *Service) Board() *Board {
	return s.board.Load()
}

func (s *Service) current() (*Board, error) {
	b := s.board.Load()
	if b == nil {
		return nil, ErrNotReady
	}
	return b, nil
}

// TopN returns the first n players by PLP.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Standing, error) {
	b, err := s.current()
	if err != nil {
		return nil, err
	}
	return b.scores.TopN(ctx, n)
}

// TopNByPoints returns the first n players by raw KLP total.
func (s *Service) TopNByPoints(ctx context.Context, n int) ([]types.Standing, error) {
	b, err := s.current()
	if err != nil {
		return nil, err
	}
	return b.points.TopN(ctx, n)
}

// Rank returns the PLP standing of one player.
func (s *Service) Rank(ctx context.Context, name string) (types.Standing, error) {
	b, err := s.current()
	if err != nil {
		return types.Standing{}, err
	}
	st, err := b.scores.Rank(ctx, name)
	if err != nil {
		return types.Standing{}, fmt.Errorf("%s: %w", name, ErrPlayerNotFound)
	}
	return st, nil
}

// Player returns the full profile of one player.
func (s *Service) Player(ctx context.Context, name string) (PlayerView, error) {
	b, err := s.current()
	if err != nil {
		return PlayerView{}, err
	}
	agg, ok := b.player(name)
	if !ok {
		return PlayerView{}, fmt.Errorf("%s: %w", name, ErrPlayerNotFound)
	}
	st, err := b.scores.Rank(ctx, name)
	if err != nil {
		return PlayerView{}, fmt.Errorf("%s: %w", name, ErrPlayerNotFound)
	}
	view := PlayerView{
		Standing:       st,
		Breakdown:      s.scorer.Breakdown(agg.Points()),
		Verification:   agg.VerificationTotal(),
		Victory:        agg.VictoryTotal(),
		Participations: byPointsDesc(agg.Clone().Participations),
	}
	if pst, err := b.points.Rank(ctx, name); err == nil {
		view.PointsRank = pst.Rank
	}
	for _, e := range b.Registry.ByCreator(name) {
		view.Created = append(view.Created, e.Name)
	}
	return view, nil
}

// Entries returns every registered entry ordered by KLP.
func (s *Service) Entries(_ context.Context) ([]registry.RankedEntry, error) {
	b, err := s.current()
	if err != nil {
		return nil, err
	}
	return registry.RankEntries(b.Registry.All()), nil
}

// Simulate projects player's PLP and rank after clearing entryName. An
// empty or unknown player is simulated from zero participations.
func (s *Service) Simulate(ctx context.Context, player, entryName string) (simulate.Result, error) {
	b, err := s.current()
	if err != nil {
		return simulate.Result{}, err
	}
	candidate, ok := b.Registry.Lookup(entryName)
	if !ok {
		return simulate.Result{}, fmt.Errorf("%s: %w", entryName, ErrEntryNotFound)
	}
	baseline, ok := b.player(player)
	if !ok {
		baseline = simulate.ZeroPlayer()
		baseline.Name = player
	}
	res, err := simulate.Simulate(s.scorer, baseline, candidate, b.Players)
	if err != nil {
		return simulate.Result{}, err
	}
	metrics.RecordSimulation()
	s.log().Debug(ctx, "simulated clear",
		logger.String("player", player),
		logger.String("entry", entryName),
		logger.Float64("delta", res.Delta),
	)
	return res, nil
}

// Available lists the entries player has not cleared, highest KLP first.
func (s *Service) Available(_ context.Context, player string) ([]model.Entry, error) {
	b, err := s.current()
	if err != nil {
		return nil, err
	}
	baseline, _ := b.player(player)
	return simulate.Available(baseline, b.Registry), nil
}

// GetStats returns a summary of the current board.
func (s *Service) GetStats() types.Stats {
	b := s.board.Load()
	if b == nil {
		return types.Stats{}
	}
	st := types.Stats{
		Entries:        b.Registry.Len(),
		DroppedEntries: b.Registry.Dropped(),
		Players:        b.Report.Players,
		Participations: b.Report.Participations,
		Skipped:        b.Report.Skipped,
		Duplicates:     b.Report.Duplicates,
		EntryKLP:       b.Registry.TotalKLP(),
		CreditedKLP:    b.creditedKLP(),
		BuiltAt:        b.BuiltAt.Format(time.RFC3339),
	}
	if len(b.Standings) > 0 {
		st.TopScore = b.Standings[0].Score
	}
	return st
}

func (s *Service) log() logger.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logger.Get()
}

// byPointsDesc sorts clears highest KLP first, then by entry name.
func byPointsDesc(ps []model.Participation) []model.Participation {
	slices.SortStableFunc(ps, func(a, b model.Participation) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.EntryName, b.EntryName)
	})
	return ps
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
