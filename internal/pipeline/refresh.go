// Package pipeline drives the periodic refresh cycle: fetch every
// region's feed, normalize and resolve its rows, aggregate, and publish
// a brand-new snapshot. Failures degrade, they never abort: a failed
// region keeps its previous events, a bad row is dropped, a failed
// persist still publishes.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/gigwatch/event-listings-service/internal/domain"
	"github.com/gigwatch/event-listings-service/internal/observability"
	"github.com/gigwatch/event-listings-service/internal/snapshot"
)

// Fetcher retrieves one region's raw feed rows.
type Fetcher interface {
	Fetch(ctx context.Context, region domain.Region) ([]domain.RawRow, error)
}

// Options carries the refresh loop's tunables. A nil Clock means real time.
type Options struct {
	Interval     time.Duration
	FetchTimeout time.Duration
	SnapshotPath string
	Clock        clockwork.Clock
}

// Refresher runs the fetch-normalize-aggregate-publish loop.
type Refresher struct {
	fetcher   Fetcher
	gazetteer domain.Gazetteer
	store     *snapshot.Store
	regions   []domain.Region
	opts      Options
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	ready     atomic.Bool
}

// New creates a Refresher over the given regions.
func New(fetcher Fetcher, gz domain.Gazetteer, store *snapshot.Store, regions []domain.Region, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Refresher {
	clk := opts.Clock
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Refresher{
		fetcher:   fetcher,
		gazetteer: gz,
		store:     store,
		regions:   regions,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
		clock:     clk,
	}
}

// Restore loads a previously persisted snapshot, if any, and publishes it
// so queries are served before the first cycle completes.
func (r *Refresher) Restore() error {
	snap, err := snapshot.Load(r.opts.SnapshotPath)
	if err != nil {
		return err
	}
	if snap == nil {
		r.logger.Info("no persisted snapshot, starting empty")
		return nil
	}
	r.store.Publish(snap)
	r.ready.Store(true)
	r.logger.Info("restored persisted snapshot",
		"path", r.opts.SnapshotPath,
		"generated_at", snap.GeneratedAt,
	)
	return nil
}

// Ready reports whether a snapshot has been published from restore or a
// completed cycle.
func (r *Refresher) Ready() bool {
	return r.ready.Load()
}

// CheckReadiness implements the HTTP readiness probe.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no snapshot published yet")
	}
	return nil
}

// Run executes refresh cycles until the context is cancelled. The first
// cycle starts immediately; each subsequent one after Interval.
func (r *Refresher) Run(ctx context.Context) error {
	r.logger.Info("refresh loop started", "interval", r.opts.Interval, "regions", len(r.regions))
	r.metrics.PipelineRunning.Set(1)
	defer r.metrics.PipelineRunning.Set(0)

	for {
		r.RunCycle(ctx)

		select {
		case <-ctx.Done():
			r.logger.Info("refresh loop stopping", "reason", ctx.Err())
			return nil
		case <-r.clock.After(r.opts.Interval):
		}
	}
}

// RunCycle performs one full fetch-normalize-aggregate-publish pass.
// Regions are fetched concurrently; they share no mutable state until the
// merge below.
func (r *Refresher) RunCycle(ctx context.Context) {
	start := r.clock.Now()
	previous := r.store.Current()

	results := make([]regionResult, len(r.regions))
	var wg sync.WaitGroup
	for i, region := range r.regions {
		wg.Add(1)
		go func(i int, region domain.Region) {
			defer wg.Done()
			results[i] = r.refreshRegion(ctx, region)
		}(i, region)
	}
	wg.Wait()

	eventsByRegion := make(map[string][]domain.Event, len(r.regions))
	for _, res := range results {
		if res.err != nil {
			// Stale data beats no data: carry the previous cycle's
			// events for this region into the new snapshot.
			r.logger.Warn("region fetch failed, retaining previous events",
				"region", res.region.Key, "error", res.err)
			r.metrics.RegionFetches.WithLabelValues(res.region.Key, "error").Inc()
			eventsByRegion[res.region.Key] = previous.EventsByRegion[res.region.Key]
			continue
		}
		r.metrics.RegionFetches.WithLabelValues(res.region.Key, "success").Inc()
		eventsByRegion[res.region.Key] = res.events
	}

	genreCounts, cityCounts := Aggregate(eventsByRegion)
	snap := &domain.Snapshot{
		EventsByRegion: eventsByRegion,
		GenreCounts:    genreCounts,
		CityCounts:     cityCounts,
		GeneratedAt:    r.clock.Now(),
	}

	if err := snapshot.Save(r.opts.SnapshotPath, snap); err != nil {
		r.logger.Error("snapshot persistence failed", "error", err)
		r.metrics.PersistenceErrors.Inc()
	}

	r.store.Publish(snap)
	r.ready.Store(true)

	total := 0
	for _, events := range eventsByRegion {
		total += len(events)
	}
	r.metrics.RefreshCycles.Inc()
	r.metrics.RefreshDuration.Observe(r.clock.Since(start).Seconds())
	r.metrics.SnapshotEvents.Set(float64(total))
	r.metrics.LastRefreshTime.Set(float64(snap.GeneratedAt.Unix()))
	r.logger.Info("cycle complete", "events", total, "duration", r.clock.Since(start))
}

type regionResult struct {
	region domain.Region
	events []domain.Event
	err    error
}

// refreshRegion fetches one region and normalizes its rows. Rows whose
// grammar cannot be parsed are dropped individually; location resolution
// failures keep the event with whatever did resolve.
func (r *Refresher) refreshRegion(ctx context.Context, region domain.Region) regionResult {
	fetchCtx, cancel := context.WithTimeout(ctx, r.opts.FetchTimeout)
	defer cancel()

	rows, err := r.fetcher.Fetch(fetchCtx, region)
	if err != nil {
		return regionResult{region: region, err: err}
	}

	events := make([]domain.Event, 0, len(rows))
	for i, row := range rows {
		event, err := domain.NormalizeRow(row, region)
		if err != nil {
			r.logger.Warn("dropping unparseable row",
				"region", region.Key, "row", i, "error", err)
			r.metrics.RowsDropped.Inc()
			continue
		}

		loc, err := domain.ResolveLocation(row.Location, region, r.gazetteer)
		if err != nil {
			r.logger.Warn("location partially resolved",
				"region", region.Key, "row", i, "error", err)
		}
		if loc.Lat == nil {
			r.metrics.GazetteerMisses.Inc()
		}
		event.Location = loc
		events = append(events, event)
	}

	r.metrics.EventsNormalized.Add(float64(len(events)))
	return regionResult{region: region, events: events}
}
