package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/reactorsim/pkg/cache"
	"github.com/matzehuels/reactorsim/pkg/observability"
	"github.com/matzehuels/reactorsim/pkg/reactor"
)

// Cache key types reported to observability hooks.
const (
	keyTypeArtifact  = "artifact"
	keyTypeAnimation = "animation"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// Result contains the outputs of a render.
type Result struct {
	// Frame is the computed frame.
	Frame reactor.Frame

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool

	// Duration is the wall time spent in Render.
	Duration time.Duration
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Render computes the frame for opts.Progress and encodes it in every
// requested format, serving each format from the cache when possible.
func (r *Runner) Render(ctx context.Context, opts Options) (result *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Progress, opts.Formats)
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	frame := reactor.Compute(opts.Progress)
	result = &Result{
		Frame:     frame,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		CacheHit:  true,
	}

	keys := make(map[string]string, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := r.Keyer.ArtifactKey(r.artifactKeyOpts(opts, format))
		if data, ok := r.lookup(ctx, key, keyTypeArtifact, opts.Refresh); ok {
			result.Artifacts[format] = data
			continue
		}
		keys[format] = key
		missing = append(missing, format)
	}

	if len(missing) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.CacheHit = false
		rendered, err := RenderAll(frame, missing, opts.Scale)
		if err != nil {
			return nil, err
		}
		for _, format := range missing {
			result.Artifacts[format] = rendered[format]
			r.store(ctx, keys[format], keyTypeArtifact, rendered[format])
		}
	}

	result.Duration = time.Since(start)
	r.Logger.Debug("rendered frame",
		"progress", frame.Progress,
		"phase", frame.Phase,
		"formats", opts.Formats,
		"cached", result.CacheHit,
		"duration", result.Duration)
	return result, nil
}

// Animate renders a GIF of a full auto-play run.
func (r *Runner) Animate(ctx context.Context, opts AnimateOptions) (data []byte, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	key := r.Keyer.AnimationKey(cache.AnimationKeyOpts{
		Every: opts.Every,
		Scale: opts.Scale,
		Delay: opts.Delay,
	})
	if data, ok := r.lookup(ctx, key, keyTypeAnimation, opts.Refresh); ok {
		r.Logger.Debug("animation served from cache", "every", opts.Every)
		return data, nil
	}

	timeline := Timeline(opts.Every)
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnAnimateStart(ctx, len(timeline))
	defer func() {
		hooks.OnAnimateComplete(ctx, len(timeline), time.Since(start), err)
	}()

	data, err = EncodeGIF(ctx, timeline, opts.Scale, opts.Delay)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, keyTypeAnimation, data)

	r.Logger.Info("rendered animation",
		"frames", len(timeline),
		"bytes", len(data),
		"duration", time.Since(start))
	return data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) artifactKeyOpts(opts Options, format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Progress: opts.Progress}
	// Only raster output depends on scale.
	if format == FormatPNG {
		k.Scale = opts.Scale
	}
	return k
}

func (r *Runner) lookup(ctx context.Context, key, keyType string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
