// package tasks implements catalog search, the activity journal, and library exports.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/woodshed/internal/models"
	"github.com/desertthunder/woodshed/internal/services"
	"github.com/desertthunder/woodshed/internal/shared"
)

// SearchOutcome is the result of one numbered catalog search.
type SearchOutcome struct {
	Generation uint64
	Term       string
	Results    []models.Candidate // never nil
	Err        error              // wraps [shared.ErrSearchUnavailable] on failure
}

// Failed reports whether the search could not complete.
func (o SearchOutcome) Failed() bool { return o.Err != nil }

// Empty reports a successful search with no matches.
func (o SearchOutcome) Empty() bool { return o.Err == nil && len(o.Results) == 0 }

// Searcher issues catalog searches where only the most recent request counts.
type Searcher struct {
	catalog    services.Catalog
	timeout    time.Duration
	generation atomic.Uint64
	logger     *log.Logger
}

// NewSearcher creates a searcher over catalog. A non-positive timeout defaults to 10 seconds.
func NewSearcher(catalog services.Catalog, timeout time.Duration, logger *log.Logger) *Searcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Searcher{catalog: catalog, timeout: timeout, logger: logger}
}

// Begin reserves the next generation number. Every earlier generation becomes stale.
func (s *Searcher) Begin() uint64 {
	return s.generation.Add(1)
}

// Latest returns the most recently issued generation.
func (s *Searcher) Latest() uint64 {
	return s.generation.Load()
}

// IsCurrent reports whether gen is the latest issued generation.
func (s *Searcher) IsCurrent(gen uint64) bool {
	return gen == s.generation.Load()
}

// Run performs the search for a generation obtained from [Searcher.Begin].
//
// Failures are normalized to an empty result set with Err set.
func (s *Searcher) Run(ctx context.Context, gen uint64, term string) SearchOutcome {
	out := SearchOutcome{Generation: gen, Term: term, Results: []models.Candidate{}}

	if s.catalog == nil {
		out.Err = fmt.Errorf("%w: %w: no catalog configured", shared.ErrSearchUnavailable, shared.ErrServiceUnavailable)
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results, err := s.catalog.Search(ctx, term)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", shared.ErrTimeout, err)
		}
		if !errors.Is(err, shared.ErrSearchUnavailable) {
			err = fmt.Errorf("%w: %w", shared.ErrSearchUnavailable, err)
		}
		s.logger.Warn("search failed", "generation", gen, "term", term, "error", err)
		out.Err = err
		return out
	}

	if results != nil {
		out.Results = results
	}
	s.logger.Debug("search completed", "generation", gen, "term", term, "results", len(out.Results), "current", s.IsCurrent(gen))
	return out
}

// Search is [Searcher.Begin] followed by [Searcher.Run].
func (s *Searcher) Search(ctx context.Context, term string) SearchOutcome {
	return s.Run(ctx, s.Begin(), term)
}
