package pipeline

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/specview/specview/pkg/axis"
	"github.com/specview/specview/pkg/cache"
	"github.com/specview/specview/pkg/errors"
	"github.com/specview/specview/pkg/ndarray"
	"github.com/specview/specview/pkg/observability"
	"github.com/specview/specview/pkg/scale"
	"github.com/specview/specview/pkg/viewer"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// Apart from the cache, logger, and the last scale result, the Runner
// holds no state. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Builder viewer.Builder
	Logger  *log.Logger

	mu        sync.Mutex
	lastScale *scale.Result
}

// NewRunner creates a runner with the given cache, keyer, and builder.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If builder is nil, a StubBuilder is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, builder viewer.Builder, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if builder == nil {
		builder = &viewer.StubBuilder{Logger: logger}
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Builder: builder,
		Logger:  logger,
	}
}

// Display runs the complete validate → reorder → scale → build pipeline
// with caching.
func (r *Runner) Display(ctx context.Context, data *ndarray.Array, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Validate
	validateStart := time.Now()
	spec, states, err := r.Validate(ctx, data, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ValidateTime = time.Since(validateStart)

	opts.Logger.Debug("validated axes",
		"axes", spec.String(),
		"shape", fmt.Sprint(data.Shape()),
		"duration", result.Stats.ValidateTime)

	// Stage 2: Reorder
	reorderStart := time.Now()
	ordered, target, err := r.Reorder(ctx, data, spec)
	if err != nil {
		return nil, err
	}
	result.Axes = target
	result.Stats.ReorderTime = time.Since(reorderStart)
	result.Stats.Permuted = ordered != data

	if result.Stats.Permuted {
		opts.Logger.Info("rearranged data",
			"from", spec.String(),
			"to", target.String(),
			"shape", fmt.Sprint(ordered.Shape()),
			"duration", result.Stats.ReorderTime)
	}

	// Stage 3: Scale
	scaleStart := time.Now()
	scaled, scaleResult, scaleHit, err := r.ScaleWithCacheInfo(ctx, ordered, target, opts)
	if err != nil {
		return nil, err
	}
	result.Data = scaled
	result.Scale = scaleResult
	result.Stats.ScaleTime = time.Since(scaleStart)
	result.CacheInfo.ScaleHit = scaleHit

	r.setLastScale(scaleResult)
	r.logScale(opts.Logger, scaleResult, result.Stats.ScaleTime)

	// Stage 4: Build
	buildStart := time.Now()
	if states != nil {
		states.AxisIndex = target.Index(axis.States)
	}
	handle, meta, metaHit, err := r.BuildWithCacheInfo(ctx, scaled, target, states, opts, scaleResult)
	if err != nil {
		return nil, err
	}
	result.Handle = handle
	result.Metadata = meta
	result.Stats.BuildTime = time.Since(buildStart)
	result.CacheInfo.MetadataHit = metaHit

	opts.Logger.Info("display ready",
		"viewer", string(handle.Kind),
		"pending", handle.Pending,
		"title", handle.Title)

	return result, nil
}

// Validate parses and checks the axis labels against the data shape and
// resolves state names. The returned StatesInfo is nil when the data
// has no states axis; its AxisIndex refers to the input order.
//
// The sequence is fixed: dimension cap, label/shape count, label
// parsing, state-name resolution, then the role-combination rules.
// Doubly invalid input is diagnosed by the earliest failing step.
func (r *Runner) Validate(ctx context.Context, data *ndarray.Array, opts Options) (axis.Spec, *viewer.StatesInfo, error) {
	start := time.Now()
	observability.Pipeline().OnValidateStart(ctx, data.Shape(), opts.AxisLabels)

	validator := axis.NewValidator()
	spec, states, err := func() (axis.Spec, *viewer.StatesInfo, error) {
		if err := validator.ValidateCount(opts.AxisLabels); err != nil {
			return nil, nil, err
		}
		if err := validator.ValidateShape(data.Shape(), opts.AxisLabels); err != nil {
			return nil, nil, err
		}
		spec, err := validator.ParseLabels(opts.AxisLabels)
		if err != nil {
			return nil, nil, err
		}
		states, err := resolveStates(data, spec, opts.StateNames)
		if err != nil {
			return nil, nil, err
		}
		if err := validator.ValidateRoles(spec); err != nil {
			return nil, nil, err
		}
		return spec, states, nil
	}()
	observability.Pipeline().OnValidateComplete(ctx, data.Shape(), opts.AxisLabels, time.Since(start), err)
	return spec, states, err
}

// Reorder computes the canonical order for spec and permutes data into
// it. When the data is already canonical the input array is returned.
func (r *Runner) Reorder(ctx context.Context, data *ndarray.Array, spec axis.Spec) (*ndarray.Array, axis.Spec, error) {
	start := time.Now()

	target, err := axis.TargetOrder(spec)
	if err != nil {
		return nil, nil, err
	}
	observability.Pipeline().OnReorderStart(ctx, spec.Strings(), target.Strings())

	ordered, err := axis.Permute(data, spec, target)
	observability.Pipeline().OnReorderComplete(ctx, spec.Strings(), target.Strings(),
		ordered != data, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	return ordered, target, nil
}

// ScaleWithCacheInfo applies decade scaling with cached analysis and
// reports whether the analysis came from cache.
//
// Only the analysis (the per-scope factors) is cached; the factors are
// always applied to the array at hand. Keys include a content hash, so
// modified data never reuses stale factors.
func (r *Runner) ScaleWithCacheInfo(ctx context.Context, data *ndarray.Array, axes axis.Spec, opts Options) (*ndarray.Array, scale.Result, bool, error) {
	start := time.Now()
	statesCount := 0
	if i := axes.Index(axis.States); i >= 0 {
		statesCount = data.Dim(i)
	}
	observability.Pipeline().OnScaleStart(ctx, data.Shape(), statesCount)

	dataHash := hashArray(data)
	cacheKey := r.Keyer.ScaleKey(dataHash, opts.ScaleKeyOpts(axes.Strings()))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if raw, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var info scale.Info
			if err := json.Unmarshal(raw, &info); err == nil {
				observability.Cache().OnCacheHit(ctx, "scale")
				scaled, res := applyScaleInfo(data, info)
				observability.Pipeline().OnScaleComplete(ctx, data.Shape(), res.IsScaled(), time.Since(start), nil)
				return scaled, res, true, nil
			}
			// Undecodable entry - recompute below
		}
	}
	observability.Cache().OnCacheMiss(ctx, "scale")

	scaled, res, err := scale.Scale(data, axes, opts.ShouldAutoScale())
	observability.Pipeline().OnScaleComplete(ctx, data.Shape(), res.IsScaled(), time.Since(start), err)
	if err != nil {
		return nil, scale.Result{}, false, err
	}

	if raw, err := json.Marshal(res.Info()); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, raw, cache.ScaleTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "scale", len(raw))
		}
	}
	return scaled, res, false, nil
}

// Build selects the viewer kind, assembles metadata, and delegates
// construction to the runner's builder.
func (r *Runner) Build(ctx context.Context, data *ndarray.Array, axes axis.Spec, states *viewer.StatesInfo, opts Options, sc scale.Result) (*viewer.Handle, viewer.Metadata, error) {
	handle, meta, _, err := r.BuildWithCacheInfo(ctx, data, axes, states, opts, sc)
	return handle, meta, err
}

// BuildWithCacheInfo is Build with cached metadata assembly; the bool
// reports whether the metadata came from cache.
//
// Metadata is keyed by the content hash of the prepared array plus the
// options that shape it (axes, title, state names, scaling), so a
// redisplay of an unchanged dataset reuses the assembled document. The
// builder always runs; handles are live objects and never cached.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, data *ndarray.Array, axes axis.Spec, states *viewer.StatesInfo, opts Options, sc scale.Result) (*viewer.Handle, viewer.Metadata, bool, error) {
	start := time.Now()

	kind, err := viewer.Select(data.Shape())
	if err != nil {
		return nil, viewer.Metadata{}, false, err
	}
	observability.Pipeline().OnBuildStart(ctx, string(kind))

	metaKey := r.Keyer.MetadataKey(hashArray(data), opts.MetadataKeyOpts(axes.Strings()))

	var meta viewer.Metadata
	hit := false
	if !opts.Refresh {
		if raw, ok, err := r.Cache.Get(ctx, metaKey); err == nil && ok {
			if err := json.Unmarshal(raw, &meta); err == nil {
				hit = true
				observability.Cache().OnCacheHit(ctx, "metadata")
			}
			// Undecodable entry - reassemble below
		}
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "metadata")
		meta = viewer.NewMetadata(data, axes, states, opts.Title, kind, sc)
		if raw, err := json.Marshal(meta); err == nil {
			if err := r.Cache.Set(ctx, metaKey, raw, cache.MetadataTTL); err == nil {
				observability.Cache().OnCacheSet(ctx, "metadata", len(raw))
			}
		}
	}

	handle, err := r.Builder.Build(ctx, data, meta)
	observability.Pipeline().OnBuildComplete(ctx, string(kind), time.Since(start), err)
	if err != nil {
		return nil, viewer.Metadata{}, false, err
	}
	return handle, meta, hit, nil
}

// LastScale returns the scale result of the most recent Display call,
// if any. Exposed so callers can annotate axes after the fact.
func (r *Runner) LastScale() (scale.Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastScale == nil {
		return scale.Result{}, false
	}
	return *r.lastScale, true
}

// ResetScale forgets the last scale result.
func (r *Runner) ResetScale() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastScale = nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) setLastScale(res scale.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastScale = &res
}

// logScale reports applied factors the way users see them: one line per
// scaled scope with the ×10ⁿ label.
func (r *Runner) logScale(logger *log.Logger, res scale.Result, d time.Duration) {
	if !res.IsScaled() {
		logger.Debug("no display scaling needed", "duration", d)
		return
	}
	for scope, entry := range res.Entries {
		if entry.Factor == 1.0 {
			continue
		}
		logger.Info("scaled data",
			"scope", scope.String(),
			"factor", entry.Factor,
			"label", entry.Label)
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// resolveStates checks supplied state names against their limits and
// produces the final names, defaulting to "1".."n". The hard cap
// applies to supplied names only; an unnamed states axis of any length
// gets numeric defaults.
func resolveStates(data *ndarray.Array, spec axis.Spec, names []string) (*viewer.StatesInfo, error) {
	idx := spec.Index(axis.States)
	if idx < 0 {
		if len(names) > 0 {
			return nil, errors.New(errors.ErrCodeStateNamesMismatch,
				"state names given but no states axis in %s", spec)
		}
		return nil, nil
	}

	count := data.Dim(idx)
	if len(names) > 0 {
		if len(names) > axis.MaxStates {
			return nil, errors.New(errors.ErrCodeTooManyStates,
				"maximum %d named states supported, got %d", axis.MaxStates, len(names))
		}
		if len(names) != count {
			return nil, errors.New(errors.ErrCodeStateNamesMismatch,
				"%d state names given for %d states", len(names), count)
		}
	} else {
		names = make([]string, count)
		for i := range names {
			names[i] = strconv.Itoa(i + 1)
		}
	}
	return &viewer.StatesInfo{
		Names:     append([]string(nil), names...),
		Count:     count,
		AxisIndex: idx,
	}, nil
}

// applyScaleInfo applies previously computed factors to an array.
func applyScaleInfo(data *ndarray.Array, info scale.Info) (*ndarray.Array, scale.Result) {
	res := info.Result()
	if !res.IsScaled() {
		return data, res
	}
	scaled := data.Clone()
	if info.HasStates {
		for i, e := range info.States {
			if e.Factor != 1.0 {
				scaled.ScaleSlice(info.StatesAxis, i, e.Factor)
			}
		}
		return scaled, res
	}
	if info.Global != nil && info.Global.Factor != 1.0 {
		scaled.Scale(info.Global.Factor)
	}
	return scaled, res
}

// hashArray computes a content hash over shape and values, suitable for
// cache keys.
func hashArray(a *ndarray.Array) string {
	var buf bytes.Buffer
	for _, d := range a.Shape() {
		_ = binary.Write(&buf, binary.LittleEndian, int64(d))
	}
	for _, v := range a.Data() {
		_ = binary.Write(&buf, binary.LittleEndian, math.Float64bits(v))
	}
	return cache.Hash(buf.Bytes())
}
