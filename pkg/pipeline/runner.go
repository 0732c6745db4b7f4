package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mbertsch/critpath/pkg/cache"
	"github.com/mbertsch/critpath/pkg/cpm"
	errs "github.com/mbertsch/critpath/pkg/errors"
	"github.com/mbertsch/critpath/pkg/graph"
	"github.com/mbertsch/critpath/pkg/layout"
	"github.com/mbertsch/critpath/pkg/observability"
	"github.com/mbertsch/critpath/pkg/plan"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// computePayload is the cached form of one compute stage run.
type computePayload struct {
	Schedule *cpm.Result    `json:"schedule"`
	Layout   *layout.Result `json:"layout"`
}

// Execute runs the complete load → compute → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	// Stage 1: Load
	loadStart := time.Now()
	g, p, err := plan.Load(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if opts.Name != "" {
		p.Name = opts.Name
	}

	result := &Result{
		Plan:     p,
		Snapshot: g.Snapshot(),
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Fingerprint = cache.Fingerprint(result.Snapshot)

	r.Logger.Info("loaded plan",
		"name", p.Name,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Compute
	computeStart := time.Now()
	sched, l, computeHit, err := r.ComputeWithCacheInfo(ctx, result.Snapshot, opts)
	if err != nil {
		return nil, err
	}
	result.Schedule = sched
	result.Layout = l
	result.Stats.ComputeTime = time.Since(computeStart)
	result.CacheInfo.ComputeHit = computeHit

	r.Logger.Info("computed schedule",
		"duration_units", sched.Duration,
		"critical_paths", len(sched.CriticalPaths),
		"cached", computeHit,
		"duration", result.Stats.ComputeTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p.Name, result.Snapshot, sched, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeWithCacheInfo runs the schedule and layout engines with caching and
// returns cache hit info. The cache key covers graph content and spacing
// options, so a spacing change recomputes while an unchanged plan does not.
func (r *Runner) ComputeWithCacheInfo(ctx context.Context, snap graph.Snapshot, opts Options) (*cpm.Result, *layout.Result, bool, error) {
	r.applyLogger(&opts)

	cacheKey := r.computeKey(snap, opts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var payload computePayload
			if err := json.Unmarshal(data, &payload); err == nil && payload.Schedule != nil && payload.Layout != nil {
				observability.Cache().OnCacheHit(ctx, "result")
				return payload.Schedule, payload.Layout, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	sched, l, err := compute(ctx, snap, opts)
	if err != nil {
		return nil, nil, false, err
	}

	if data, err := json.Marshal(computePayload{Schedule: sched, Layout: l}); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLResult); err == nil {
			observability.Cache().OnCacheSet(ctx, "result", len(data))
		}
	}

	return sched, l, false, nil
}

// Compute is a convenience wrapper that discards the cache hit info.
func (r *Runner) Compute(ctx context.Context, snap graph.Snapshot, opts Options) (*cpm.Result, *layout.Result, error) {
	sched, l, _, err := r.ComputeWithCacheInfo(ctx, snap, opts)
	return sched, l, err
}

// compute runs both engines uncached, emitting observability events.
func compute(ctx context.Context, snap graph.Snapshot, opts Options) (*cpm.Result, *layout.Result, error) {
	schedStart := time.Now()
	observability.Pipeline().OnScheduleStart(ctx, len(snap.Nodes), len(snap.Edges))
	sched, err := cpm.Compute(snap)
	observability.Pipeline().OnScheduleComplete(ctx, time.Since(schedStart), err)
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeGraphCycle, err, "cannot schedule graph")
	}

	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(snap.Nodes))
	l := layout.Build(snap, sched, opts.LayoutOptions())
	observability.Pipeline().OnLayoutComplete(ctx, time.Since(layoutStart), nil)

	return sched, l, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, name string, snap graph.Snapshot, sched *cpm.Result, l *layout.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	renderKey := r.renderKey(snap, opts)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			if data, hit, err := r.Cache.Get(ctx, cache.ArtifactKey(renderKey, format)); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := renderArtifacts(name, snap, sched, l, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		if err := r.Cache.Set(ctx, cache.ArtifactKey(renderKey, format), data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, name string, snap graph.Snapshot, sched *cpm.Result, l *layout.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, name, snap, sched, l, opts)
	return artifacts, err
}

// computeKey derives the cache key for the compute stage.
func (r *Runner) computeKey(snap graph.Snapshot, opts Options) string {
	optsData, _ := json.Marshal(opts.LayoutOptions())
	return cache.ResultKey(cache.Hash(append([]byte(cache.Fingerprint(snap)), optsData...)))
}

// renderKey derives the fingerprint shared by all artifact cache keys of one
// render configuration.
func (r *Runner) renderKey(snap graph.Snapshot, opts Options) string {
	renderOpts := struct {
		Layout     layout.Options
		Engine     string
		Annotate   bool
		ShowSlack  bool
		Background string
		Scale      float64
	}{opts.LayoutOptions(), opts.Engine, opts.Annotate, opts.ShowSlack, opts.Background, opts.Scale}

	optsData, _ := json.Marshal(renderOpts)
	return cache.Hash(append([]byte(cache.Fingerprint(snap)), optsData...))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
