// Package match turns a demo buffer into a match summary by combining the
// serverinfo, roster, ktxstats document and print tallies.
package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/mvdstats/internal/domain/ktxstats"
	"github.com/okian/mvdstats/internal/domain/model"
	"github.com/okian/mvdstats/internal/domain/roster"
	"github.com/okian/mvdstats/internal/domain/tally"
	"github.com/okian/mvdstats/internal/mvd/block"
	"github.com/okian/mvdstats/internal/mvd/infostring"
	"github.com/okian/mvdstats/pkg/logger"
	"github.com/okian/mvdstats/pkg/metrics"
)

const modeCTF = "ctf"

// Analyzer produces match summaries. It holds no per-demo state and is safe
// for concurrent use.
type Analyzer struct {
	pingFrames int
	lookahead  int
	maxBytes   int
	log        logger.Logger
}

// NewAnalyzer returns an Analyzer with the given options applied.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := defaults()
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.Get().Named("analyzer")
	}
	return a
}

// Analyze decodes data into a match summary. ID and Checksum are left for the
// caller to fill.
func (a *Analyzer) Analyze(ctx context.Context, data []byte) (model.Match, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return model.Match{}, err
	}
	if len(data) == 0 {
		return model.Match{}, ErrEmpty
	}
	if a.maxBytes > 0 && len(data) > a.maxBytes {
		return model.Match{}, fmt.Errorf("%d bytes, limit %d: %w", len(data), a.maxBytes, ErrTooLarge)
	}

	si, err := Serverinfo(data)
	if err != nil {
		return model.Match{}, fmt.Errorf("analyze: %w", err)
	}

	clients, clientsErr := roster.Clients(data)
	stats, statsErr := ktxstats.FromDemo(data)
	if statsErr != nil && !errors.Is(statsErr, block.ErrAbsent) {
		a.log.Debug(ctx, "ktxstats document ignored", logger.Error(statsErr))
	}

	flagRecords := tally.FlagEvents(data)
	flags := tally.FlagCounts(flagRecords)
	isCTF := len(flagRecords) > 0 || si.Mode == modeCTF

	m := model.Match{
		Filename:  si.Serverdemo,
		Map:       si.Map,
		Mode:      si.Mode,
		Hostname:  si.Hostname,
		Matchtag:  si.Matchtag,
		IsCTF:     isCTF,
		IsAborted: IsAborted(data),
		IsPaused:  IsPaused(data),
	}
	if isCTF {
		m.Flags = flags
	}

	if err := ctx.Err(); err != nil {
		return model.Match{}, err
	}

	m.MatchDate = a.matchdate(ctx, data, stats, statsErr == nil)

	if statsErr == nil {
		m.Source = model.SourceKtxstats
		m.Players = PlayersFromKtxstats(stats)
		if m.Map == "" {
			m.Map = stats.Map
		}
		if m.Mode == "" {
			m.Mode = stats.Mode
		}
	} else {
		if clientsErr != nil {
			return model.Match{}, fmt.Errorf("analyze: %w", clientsErr)
		}
		m.Source = model.SourceParsing
		m.Players = a.parsePlayers(ctx, data, clients, flags, isCTF)
	}
	m.Teams = Teams(m.Players)

	frames := a.durations(ctx, data, si, &m)
	m.IsValid = clientsErr == nil && len(clients) > 0 && len(data) >= minValidSize && hasEndOfDemo(data)
	m.AnalyzedAt = time.Now().UTC()

	metrics.RecordFramesScanned(frames)
	metrics.RecordPlayerSource(string(m.Source))
	metrics.RecordAnalysisLatency(float64(time.Since(start).Milliseconds()))

	a.log.Debug(ctx, "demo analyzed",
		logger.String("map", m.Map),
		logger.String("source", string(m.Source)),
		logger.Int("players", len(m.Players)),
		logger.Int("frames", frames),
		logger.Duration("match_duration", m.MatchDuration),
	)
	return m, nil
}

func (a *Analyzer) parsePlayers(ctx context.Context, data []byte, clients []model.Client, flags map[string]model.FlagCounts, isCTF bool) []model.Player {
	scan := tally.ScanFrags(data, clients, tally.WithLookahead(a.lookahead))
	if scan.Unclassified > 0 || scan.Unresolved > 0 {
		a.log.Debug(ctx, "prints skipped",
			logger.Int("unclassified", scan.Unclassified),
			logger.Int("unresolved_teamkills", scan.Unresolved),
		)
	}
	metrics.RecordUnclassifiedPrints(scan.Unclassified)
	metrics.RecordUnresolvedTeamkills(scan.Unresolved)

	scores := tally.Scores(tally.FoldFrags(scan.Events), tally.CTFPoints(flags, clients), isCTF)
	pings := tally.Pings(data, tally.WithPingFrames(a.pingFrames))
	return PlayersFromClients(clients, pings, scores)
}

// matchdate prefers the print in the demo and falls back to the date of the
// ktxstats document.
func (a *Analyzer) matchdate(ctx context.Context, data []byte, stats ktxstats.Stats, haveStats bool) string {
	date, err := Matchdate(data)
	if err == nil {
		return date
	}
	if haveStats && validMatchdate(stats.Date) {
		return stats.Date
	}
	a.log.Debug(ctx, "matchdate unavailable", logger.Error(err))
	return ""
}

// durations fills the duration fields of m and returns the number of frames
// in the demo.
func (a *Analyzer) durations(ctx context.Context, data []byte, si infostring.Serverinfo, m *model.Match) int {
	m.DemoDuration, _ = elapsed(data, demoEnd(data))
	_, frames := elapsed(data, len(data))

	hoony := si.Mode == modeHoony
	if !hoony {
		cd, err := countdown(data)
		if err != nil {
			a.log.Debug(ctx, "countdown not found")
		}
		m.CountdownDuration = cd
	}

	if !hoony {
		if d, ok := ktxDuration(data); ok {
			m.MatchDuration = d
			return frames
		}
	}
	m.MatchDuration = max(m.DemoDuration-m.CountdownDuration, 0)
	return frames
}
