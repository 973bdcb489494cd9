package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flow/pkg/cache"
	"github.com/matzehuels/flow/pkg/errors"
	"github.com/matzehuels/flow/pkg/graph"
	"github.com/matzehuels/flow/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTLs for cached entries; zero values use the cache package defaults.
	SnapshotTTL time.Duration
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		SnapshotTTL: cache.TTLSnapshot,
		ArtifactTTL: cache.TTLArtifact,
	}
}

// Execute runs the complete decode → solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result, err := r.SolveWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("solved layout",
		"file", opts.Filename,
		"nodes", result.Stats.NodeCount,
		"size", fmt.Sprintf("%gx%g", result.Snapshot.Size.Width, result.Snapshot.Size.Height),
		"cached", result.CacheInfo.SolveHit,
		"duration", result.Stats.SolveTime)

	if err := contextError(ctx); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Snapshot, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo decodes and solves the document with caching.
// The returned Result has no artifacts.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForSolve(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	decodeStart := time.Now()
	doc, err := Decode(opts)
	if err != nil {
		return nil, err
	}
	result.DocumentHash, err = DocumentHash(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash document")
	}
	result.Stats.DecodeTime = time.Since(decodeStart)

	cacheKey := r.Keyer.SnapshotKey(result.DocumentHash, opts.SnapshotKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if snap, err := graph.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "snapshot")
				result.Snapshot = snap
				result.Stats.NodeCount = len(snap.Nodes)
				result.CacheInfo.SolveHit = true
				return result, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "snapshot")
	}

	solveStart := time.Now()
	observability.Solve().OnSolveStart(ctx, opts.Width, opts.Height)
	tree, snap, err := Solve(doc, opts)
	result.Stats.SolveTime = time.Since(solveStart)
	if err != nil {
		observability.Solve().OnSolveComplete(ctx, 0, result.Stats.SolveTime, err)
		return nil, err
	}
	observability.Solve().OnSolveComplete(ctx, tree.Len(), result.Stats.SolveTime, nil)

	result.Tree = tree
	result.Snapshot = snap
	result.Stats.NodeCount = tree.Len()

	opts.Logger.Debug("solved tree",
		"nodes", tree.Len(),
		"viewport", opts.Viewport(),
		"placed", opts.Place)

	if data, err := graph.Marshal(snap); err == nil {
		r.set(ctx, opts.Logger, "snapshot", cacheKey, data, r.SnapshotTTL)
	}

	return result, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, snap graph.Snapshot, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Compute cache key from snapshot data
	snapData, err := graph.Marshal(snap)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize snapshot for cache key")
	}
	snapHash := cache.Hash(snapData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(snapHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Solve().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, snap, opts)
	observability.Solve().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		if cerr := contextError(ctx); cerr != nil {
			return nil, false, cerr
		}
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(snapHash, opts.ArtifactKeyOpts(format))
		r.set(ctx, opts.Logger, "artifact", key, data, r.ArtifactTTL)
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) set(ctx context.Context, logger *log.Logger, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// contextError converts a cancelled or expired context into a coded error.
func contextError(ctx context.Context) error {
	err := ctx.Err()
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeTimeout, err, "layout timed out")
	}
	return err
}
