// Package search turns a user query into a short ranked list of files by
// asking an external index for candidates, dropping noise and scoring the rest
// on index order and modification time.
package search

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kamusis/smartfind/internal/config"
)

// Provider runs a translated query against an external file index, scoped to
// dirs, and returns its raw output lines in the index's own order.
type Provider interface {
	Query(ctx context.Context, q IndexQuery, dirs []string) ([]string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, q IndexQuery, dirs []string) ([]string, error)

// Query calls f.
func (f ProviderFunc) Query(ctx context.Context, q IndexQuery, dirs []string) ([]string, error) {
	return f(ctx, q, dirs)
}

type options struct {
	logger *slog.Logger
	now    func() time.Time
	stat   func(string) (fs.FileInfo, error)
}

// Option configures a Search call.
type Option func(*options)

// WithLogger sets the logger used for diagnostics. A nil logger discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock fixes the time used for recency scoring.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithStat replaces os.Stat for metadata lookups.
func WithStat(stat func(string) (fs.FileInfo, error)) Option {
	return func(o *options) {
		if stat != nil {
			o.stat = stat
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		stat:   os.Stat,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WeightsFromConfig converts the ranking section of cfg.
func WeightsFromConfig(r config.Ranking) Weights {
	return Weights{
		Relevance: r.RelevanceWeight,
		Recency:   r.RecencyWeight,
		NameMatch: r.NameMatchWeight,
		Window:    r.RecencyWindow(),
	}
}

// Search runs the full pipeline: translate, query the provider under the
// configured timeout, parse, exclude, score, sort and truncate. It never
// returns an error; failures are reported through Outcome.Status.
func Search(ctx context.Context, p Provider, query string, cfg *config.Config, opts ...Option) (out Outcome) {
	o := newOptions(opts)
	log := o.logger

	defer func() {
		if r := recover(); r != nil {
			log.Error("search pipeline panicked", "panic", r)
			out = failed(fmt.Errorf("search pipeline panicked: %v", r))
		}
	}()

	if p == nil {
		return failed(ErrProviderRequired)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	q := Translate(query)
	if q.Empty() {
		return Outcome{Results: []Result{}, Status: StatusNoMatches}
	}

	dirs := existingDirs(cfg.IncludeDirectories, o.stat, log)
	if len(dirs) == 0 {
		return Outcome{Results: []Result{}, Status: StatusNoDirectories, Err: ErrNoDirectories}
	}

	qctx, cancel := context.WithTimeout(ctx, cfg.TimeoutDuration())
	defer cancel()

	start := time.Now()
	lines, err := p.Query(qctx, q, dirs)
	if err != nil {
		log.Debug("index query failed", "expr", q.Expression, "elapsed", time.Since(start), "err", err)
		return failed(err)
	}
	log.Debug("index query done", "expr", q.Expression, "dirs", len(dirs), "lines", len(lines), "elapsed", time.Since(start))

	candidates := ParseHits(lines)
	kept := NewExcluder(cfg.ExcludePatterns, cfg.ExcludeFilenames).Filter(candidates)
	log.Debug("exclusion applied", "candidates", len(candidates), "kept", len(kept))

	results := Rank(kept, q, WeightsFromConfig(cfg.Ranking), o.now(), o.stat, log)
	results = Truncate(results, cfg.Limit)

	status := StatusOK
	if len(results) == 0 {
		status = StatusNoMatches
	}
	return Outcome{Results: results, Status: status, Candidates: len(candidates)}
}

func failed(err error) Outcome {
	return Outcome{Results: []Result{}, Status: StatusProviderFailed, Err: err}
}

func existingDirs(dirs []string, stat func(string) (fs.FileInfo, error), log *slog.Logger) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		info, err := stat(d)
		if err != nil || !info.IsDir() {
			log.Debug("skipping include directory", "dir", d, "err", err)
			continue
		}
		out = append(out, d)
	}
	return out
}

// ParseHits keeps the non-blank, absolute paths from raw index output,
// in order.
func ParseHits(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		ln = strings.TrimRight(ln, "\r\n")
		if strings.TrimSpace(ln) == "" {
			continue
		}
		if !filepath.IsAbs(ln) {
			continue
		}
		out = append(out, filepath.Clean(ln))
	}
	return out
}

// Rank stats and scores paths, which must already be in index order, and
// returns them sorted by score. Candidates that cannot be stat'ed are dropped
// first; relevance is ranked over the survivors only.
func Rank(paths []string, q IndexQuery, w Weights, now time.Time, stat func(string) (fs.FileInfo, error), log *slog.Logger) []Result {
	if stat == nil {
		stat = os.Stat
	}
	type hit struct {
		path string
		info fs.FileInfo
	}
	hits := make([]hit, 0, len(paths))
	for _, p := range paths {
		info, err := stat(p)
		if err != nil {
			if log != nil {
				log.Debug("dropping candidate", "path", p, "err", err)
			}
			continue
		}
		hits = append(hits, hit{path: p, info: info})
	}

	out := make([]Result, 0, len(hits))
	for i, h := range hits {
		rel := Relevance(i, len(hits))
		rec := Recency(h.info.ModTime(), now, w.Window)
		var name float64
		if w.NameMatch > 0 {
			name = NameMatch(h.path, q.Raw)
		}

		out = append(out, Result{
			Path:     h.path,
			Filename: filepath.Base(h.path),
			Modified: h.info.ModTime(),
			Score:    w.Score(rel, rec, name),
		})
	}
	SortResults(out)
	return out
}

// Truncate caps results at limit, never above config.MaxLimit.
func Truncate(results []Result, limit int) []Result {
	if limit <= 0 || limit > config.MaxLimit {
		limit = config.MaxLimit
	}
	if len(results) > limit {
		return results[:limit]
	}
	return results
}
