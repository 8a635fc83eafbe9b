// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	demoqueue "github.com/okian/mvdstats/internal/adapters/mq/queue"
	workerpool "github.com/okian/mvdstats/internal/adapters/mq/worker"
	repository "github.com/okian/mvdstats/internal/adapters/repository"
	"github.com/okian/mvdstats/internal/domain/dedupe"
	"github.com/okian/mvdstats/internal/domain/match"
	"github.com/okian/mvdstats/internal/domain/model"
	"github.com/okian/mvdstats/internal/domain/scoring"
	"github.com/okian/mvdstats/internal/domain/tally"
	"github.com/okian/mvdstats/internal/domain/teamkill"
	"github.com/okian/mvdstats/internal/domain/types"
	"github.com/okian/mvdstats/pkg/logger"
	"github.com/okian/mvdstats/pkg/metrics"
)

// Service accepts demo uploads, analyses them in the background and keeps
// the leaderboard and match results.
type Service struct {
	mu sync.RWMutex

	// Core components
	leaderboard *repository.TreapStore
	archive     *repository.Archive
	deduper     dedupe.Deduper
	queue       *demoqueue.InMemoryQueue
	analyzer    *match.Analyzer
	scorer      scoring.Scorer
	workerPool  *workerpool.Pool
	results     *lru.Cache[string, types.MatchResult]

	// Configuration
	workerCount  int
	queueSize    int
	dedupeSize   int
	resultsSize  int
	maxDemoBytes int
	pingFrames   int
	lookahead    int
	archivePath  string

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU(),
		queueSize:    1_000,
		dedupeSize:   10_000,
		resultsSize:  10_000,
		maxDemoBytes: 64 << 20,
		pingFrames:   tally.DefaultPingFrames,
		lookahead:    teamkill.DefaultLookahead,
		scorer:       scoring.NewFragScorer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	// New only fails for non-positive sizes.
	s.results, _ = lru.New[string, types.MatchResult](s.resultsSize)
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting match stats service...")

	if s.archivePath != "" {
		archive, err := repository.OpenArchive(s.archivePath)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		s.archive = archive
		s.logger.Info(ctx, "using match archive", logger.String("path", s.archivePath))
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.leaderboard = repository.NewTreapStore(runCtx)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = demoqueue.NewInMemoryQueue(demoqueue.WithCapacity(s.queueSize))
	s.analyzer = match.NewAnalyzer(
		match.WithPingFrames(s.pingFrames),
		match.WithLookahead(s.lookahead),
		match.WithMaxBytes(s.maxDemoBytes),
	)

	if s.archive != nil {
		if err := s.replay(ctx); err != nil {
			cancel()
			_ = s.leaderboard.Close()
			_ = s.archive.Close()
			s.archive = nil
			return fmt.Errorf("rebuild leaderboard: %w", err)
		}
	}

	s.workerPool = workerpool.NewPool(s.workerCount, s.queue, s.analyzer, s)
	s.workerPool.Start(runCtx)

	s.started = true
	s.logger.Info(ctx, "match stats service started",
		logger.Int("workers", s.workerPool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// replay rebuilds the leaderboard from the archive.
func (s *Service) replay(ctx context.Context) error {
	n := 0
	err := s.archive.Each(ctx, func(m model.Match) error {
		n++
		return s.rank(ctx, m)
	})
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "leaderboard rebuilt from archive", logger.Int("matches", n))
	return nil
}

// Stop drains the queue and shuts down the service.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping match stats service...")

	var errs []error
	if s.workerPool != nil {
		errs = append(errs, s.workerPool.Shutdown(ctx))
	}
	s.cancel()
	if s.leaderboard != nil {
		errs = append(errs, s.leaderboard.Close())
	}
	if s.archive != nil {
		errs = append(errs, s.archive.Close())
		s.archive = nil
	}

	s.started = false
	s.logger.Info(ctx, "match stats service stopped")
	return errors.Join(errs...)
}

// Submit queues a demo for analysis. A demo that was uploaded before is not
// queued again; its existing match id is returned instead.
func (s *Service) Submit(ctx context.Context, data []byte) (types.Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return types.Upload{}, ErrNotStarted
	}
	switch {
	case len(data) == 0:
		return types.Upload{}, match.ErrEmpty
	case len(data) > s.maxDemoBytes:
		return types.Upload{}, fmt.Errorf("%w: %d bytes", match.ErrTooLarge, len(data))
	}

	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])

	if s.archive != nil {
		id, err := s.archive.FindByChecksum(ctx, checksum)
		switch {
		case err == nil:
			metrics.RecordDemoDuplicate()
			return types.Upload{ID: id, Status: types.StatusDone, Duplicate: true}, nil
		case !errors.Is(err, repository.ErrMatchNotFound):
			return types.Upload{}, fmt.Errorf("lookup checksum: %w", err)
		}
	}

	id, seen := s.deduper.Claim(ctx, checksum, uuid.NewString())
	if seen {
		if upload, ok := s.duplicate(ctx, id, checksum); ok {
			return upload, nil
		}
		// Nothing remembers the claimed match any more: analyse it again.
		s.deduper.Release(ctx, checksum)
		if id, seen = s.deduper.Claim(ctx, checksum, uuid.NewString()); seen {
			// a concurrent upload of the same demo claimed it first
			metrics.RecordDemoDuplicate()
			return types.Upload{ID: id, Status: types.StatusQueued, Duplicate: true}, nil
		}
	}

	job := workerpool.Job{
		ID:       id,
		Checksum: checksum,
		Data:     data,
		Received: time.Now().UTC(),
	}
	s.results.Add(id, types.MatchResult{ID: id, Status: types.StatusQueued, Received: job.Received})

	if err := s.queue.Enqueue(ctx, job); err != nil {
		s.deduper.Release(ctx, checksum)
		s.results.Remove(id)
		return types.Upload{}, err
	}
	s.logger.Debug(ctx, "demo queued",
		logger.String("match_id", id),
		logger.Int("bytes", len(data)),
	)
	return types.Upload{ID: id, Status: types.StatusQueued}, nil
}

// duplicate reports the state of an earlier upload of the same demo. It
// fails when the result was evicted and the archive does not hold the match.
func (s *Service) duplicate(ctx context.Context, id, checksum string) (types.Upload, bool) {
	upload := types.Upload{ID: id, Duplicate: true}
	if r, ok := s.results.Get(id); ok {
		upload.Status = r.Status
	} else {
		if s.archive == nil {
			return types.Upload{}, false
		}
		archived, err := s.archive.FindByChecksum(ctx, checksum)
		if err != nil {
			if !errors.Is(err, repository.ErrMatchNotFound) {
				s.logger.Warn(ctx, "checksum lookup failed", logger.Error(err))
			}
			return types.Upload{}, false
		}
		upload.ID, upload.Status = archived, types.StatusDone
	}

	metrics.RecordDemoDuplicate()
	s.logger.Debug(ctx, "duplicate demo",
		logger.String("match_id", upload.ID),
		logger.String("status", string(upload.Status)),
	)
	return upload, true
}

// Match returns the processing state of an uploaded demo.
func (s *Service) Match(ctx context.Context, id string) (types.MatchResult, error) {
	if r, ok := s.results.Get(id); ok {
		return r, nil
	}

	s.mu.RLock()
	archive := s.archive
	s.mu.RUnlock()

	if archive != nil {
		m, err := archive.Get(ctx, id)
		if err == nil {
			return types.MatchResult{ID: id, Status: types.StatusDone, Received: m.AnalyzedAt, Match: &m}, nil
		}
		if !errors.Is(err, repository.ErrMatchNotFound) {
			return types.MatchResult{}, err
		}
	}
	return types.MatchResult{}, repository.ErrMatchNotFound
}

// Complete stores an analysed match and offers its scores to the leaderboard.
func (s *Service) Complete(ctx context.Context, j workerpool.Job, m model.Match) error {
	if s.archive != nil {
		if err := s.archive.Save(ctx, m); err != nil {
			err = fmt.Errorf("archive: %w", err)
			s.Fail(ctx, j, err)
			return err
		}
	}
	if err := s.rank(ctx, m); err != nil {
		s.Fail(ctx, j, err)
		return err
	}

	s.results.Add(j.ID, types.MatchResult{
		ID:       j.ID,
		Status:   types.StatusDone,
		Received: j.Received,
		Match:    &m,
	})
	s.logger.Info(ctx, "match analysed",
		logger.String("match_id", m.ID),
		logger.String("map", m.Map),
		logger.String("source", string(m.Source)),
		logger.Int("players", len(m.Players)),
	)
	return nil
}

// Fail records why a demo could not be analysed.
func (s *Service) Fail(_ context.Context, j workerpool.Job, err error) {
	s.results.Add(j.ID, types.MatchResult{
		ID:       j.ID,
		Status:   types.StatusFailed,
		Error:    err.Error(),
		Received: j.Received,
	})
}

func (s *Service) rank(ctx context.Context, m model.Match) error {
	scores, err := s.scorer.Score(ctx, m)
	if errors.Is(err, scoring.ErrUnranked) {
		s.logger.Debug(ctx, "match not ranked", logger.String("match_id", m.ID), logger.Error(err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	for _, ps := range scores {
		if _, err := s.leaderboard.UpdateBest(ctx, ps); err != nil {
			return fmt.Errorf("leaderboard: %w", err)
		}
	}
	return nil
}

// TopN returns the top N leaderboard entries.
func (s *Service) TopN(ctx context.Context, n int) ([]repository.Entry, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.leaderboard.TopN(ctx, n)
}

// Rank returns the leaderboard entry of a player.
func (s *Service) Rank(ctx context.Context, player string) (repository.Entry, error) {
	if !s.isStarted() {
		return repository.Entry{}, ErrNotStarted
	}
	return s.leaderboard.Rank(ctx, player)
}

// PlayerMatches returns a player's most recent archived results.
func (s *Service) PlayerMatches(ctx context.Context, player string, limit int) ([]repository.PlayerResult, error) {
	s.mu.RLock()
	archive := s.archive
	s.mu.RUnlock()

	if archive == nil {
		return nil, ErrArchiveDisabled
	}
	return archive.PlayerResults(ctx, player, limit)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"dedupeSize":   s.dedupeSize,
		"maxDemoBytes": s.maxDemoBytes,
		"archive":      s.archivePath != "",
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		totalPlayers := s.leaderboard.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalPlayers"] = totalPlayers
		stats["knownDemos"] = s.deduper.Size()
		stats["results"] = s.results.Len()
		if s.archive != nil {
			if n, err := s.archive.Count(ctx); err == nil {
				stats["archivedMatches"] = n
			}
		}

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalPlayers(totalPlayers)
	}
	return stats
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
