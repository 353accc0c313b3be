// Package scheduler periodically re-runs stale lookups so stored prices
// stay current without manual re-checks.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"grocerscan/matcher"
	"grocerscan/store"
)

// LookupFunc runs one product lookup end to end, including persistence
// of the result. Provided by the caller so the scheduler stays decoupled
// from the scraping pipeline.
type LookupFunc func(ctx context.Context, query string) (*matcher.MatchResult, error)

// Refresher re-checks queries whose latest stored lookup has gone stale.
type Refresher struct {
	cron     *cron.Cron
	repo     *store.Repository
	lookup   LookupFunc
	schedule string
	maxAge   time.Duration
	batch    int
}

// New builds a refresher. schedule is a six-field cron spec (seconds
// included), matching "0 0 */6 * * *" style entries.
func New(repo *store.Repository, lookup LookupFunc, schedule string, maxAge time.Duration) *Refresher {
	return &Refresher{
		cron:     cron.New(cron.WithSeconds()),
		repo:     repo,
		lookup:   lookup,
		schedule: schedule,
		maxAge:   maxAge,
		batch:    25,
	}
}

// Start schedules the refresh job.
func (r *Refresher) Start() {
	if _, err := r.cron.AddFunc(r.schedule, r.refreshStale); err != nil {
		log.Printf("Failed to schedule refresh job: %v", err)
		return
	}
	r.cron.Start()
	log.Printf("Lookup refresh scheduled: %s (max age %s)", r.schedule, r.maxAge)
}

// Stop halts the scheduler; a running refresh finishes its batch.
func (r *Refresher) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

func (r *Refresher) refreshStale() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	queries, err := r.repo.StaleQueries(ctx, r.maxAge, r.batch)
	if err != nil {
		log.Printf("Loading stale queries failed: %v", err)
		return
	}
	if len(queries) == 0 {
		return
	}
	log.Printf("Refreshing %d stale lookups", len(queries))

	var refreshed int
	for _, q := range queries {
		if ctx.Err() != nil {
			break
		}
		res, err := r.lookup(ctx, q)
		if err != nil {
			log.Printf("Refresh of %q failed: %v", q, err)
			continue
		}
		if res == nil {
			continue
		}
		refreshed++
	}
	log.Printf("Refreshed %d/%d stale lookups", refreshed, len(queries))
}
