// Package discovery drives the location x category search loop against the
// places gateway, feeding results through normalize, filter, and dedup.
package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ropnep/trustedtrades/internal/config"
	"github.com/ropnep/trustedtrades/internal/tradie"
	"github.com/ropnep/trustedtrades/pkg/places"
)

// Runner executes one discovery pass over the configured search space.
// One outbound call is in flight at a time; the call budget and the
// accumulated results are therefore race-free without locks.
type Runner struct {
	client  places.Client
	limiter *rate.Limiter
	filter  *tradie.Filter
	cfg     *config.Config
	kw      *config.Keywords
}

// costPerCallUSD is the Places text search SKU price per request.
const costPerCallUSD = 0.032

// Result holds the outcome of a discovery run.
type Result struct {
	Found      []tradie.Tradie
	APICalls   int
	Filtered   int
	Duplicates int
	CostUSD    float64
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(client places.Client, cfg *config.Config, kw *config.Keywords) *Runner {
	delay := time.Duration(cfg.Discovery.DelayMS) * time.Millisecond
	limiter := rate.NewLimiter(rate.Inf, 1)
	if delay > 0 {
		limiter = rate.NewLimiter(rate.Every(delay), 1)
	}
	return &Runner{
		client:  client,
		limiter: limiter,
		filter:  tradie.NewFilter(kw, cfg.Region),
		cfg:     cfg,
		kw:      kw,
	}
}

// Run iterates locations in order and categories within each location,
// querying the gateway once per pair until the call budget is exhausted.
// Exhaustion aborts the entire double loop, not just the current location.
// A per-query failure is logged and treated as zero results; it still
// consumes its budget slot and is never fatal to the run.
func (r *Runner) Run(ctx context.Context, existing []tradie.Tradie) (*Result, error) {
	log := zap.L().With(zap.String("component", "discovery"))

	budget := r.cfg.Discovery.MaxAPICalls
	pageSize := r.cfg.Discovery.PageSize
	result := &Result{}

	log.Info("starting discovery run",
		zap.Int("locations", len(r.cfg.Region.Locations)),
		zap.Int("categories", len(r.kw.Categories)),
		zap.Int("budget", budget),
	)

	for _, location := range r.cfg.Region.Locations {
		if result.APICalls >= budget {
			break
		}
		for _, cat := range r.kw.Categories {
			if result.APICalls >= budget {
				log.Info("call budget exhausted", zap.Int("calls", result.APICalls))
				break
			}

			if err := r.limiter.Wait(ctx); err != nil {
				return result, eris.Wrap(err, "discovery: rate limit wait")
			}

			query := fmt.Sprintf("%s in %s", cat.Query, location)
			resp, err := r.client.TextSearch(ctx, query, pageSize)
			result.APICalls++
			if err != nil {
				log.Warn("search failed",
					zap.String("query", query),
					zap.Error(err),
				)
				continue
			}

			accepted := r.collect(resp.Places, cat, location, existing, result)
			log.Debug("query complete",
				zap.String("query", query),
				zap.Int("returned", len(resp.Places)),
				zap.Int("accepted", accepted),
			)
		}
	}

	result.CostUSD = float64(result.APICalls) * costPerCallUSD

	log.Info("discovery run complete",
		zap.Int("found", len(result.Found)),
		zap.Int("filtered", result.Filtered),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("api_calls", result.APICalls),
		zap.Float64("cost_usd", result.CostUSD),
	)

	return result, nil
}

// collect normalizes, filters, and dedups one query's candidates, appending
// survivors to result.Found. Dedup compares against the pre-existing store
// and against records already accepted earlier in this run.
func (r *Runner) collect(candidates []places.Place, cat config.CategorySpec, location string, existing []tradie.Tradie, result *Result) int {
	accepted := 0
	for _, p := range candidates {
		provisionalID := len(existing) + len(result.Found) + 1
		t := tradie.Normalize(p, cat, location, provisionalID, r.cfg.Region)

		if rejected, reason := r.filter.Reject(t, p.Types, cat); rejected {
			result.Filtered++
			zap.L().Debug("candidate rejected",
				zap.String("name", t.Name),
				zap.String("reason", reason),
			)
			continue
		}

		if tradie.IsDuplicate(existing, t) || tradie.IsDuplicate(result.Found, t) {
			result.Duplicates++
			continue
		}

		result.Found = append(result.Found, t)
		accepted++
	}
	return accepted
}
