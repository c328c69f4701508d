package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/prismaflow/pkg/cache"
	"github.com/matzehuels/prismaflow/pkg/diagram"
	"github.com/matzehuels/prismaflow/pkg/flow"
	prismaio "github.com/matzehuels/prismaflow/pkg/io"
	"github.com/matzehuels/prismaflow/pkg/observability"
	"github.com/matzehuels/prismaflow/pkg/render/dot"
	"github.com/matzehuels/prismaflow/pkg/variant"
)

// Cache TTLs.
const (
	TTLDiagram  = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Runner encapsulates render execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner holds no per-render state, so one Runner may serve concurrent
// renders with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// SVG lays out DOT source. It defaults to [dot.RenderSVG].
	SVG func(ctx context.Context, src string) ([]byte, error)
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
		SVG:    dot.RenderSVG,
	}
}

// logger returns the per-render logger when the caller set one.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// Execute runs select → assemble → emit → render → export.
func (r *Runner) Execute(ctx context.Context, in flow.Input, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
		CacheInfo: CacheInfo{ExportHits: make(map[string]bool)},
	}

	// Stage 1+2: Select and assemble
	assembleStart := time.Now()
	p, d, err := r.Assemble(ctx, in, opts)
	if err != nil {
		return nil, err
	}
	result.Variant = p
	result.Diagram = d
	result.Stats.AssembleTime = time.Since(assembleStart)
	result.Stats.NodeCount = len(d.Nodes)
	result.Stats.EdgeCount = len(d.Edges)

	r.logger(opts).Info("assembled diagram",
		"variant", p.Kind,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.AssembleTime)

	// Stage 3: Emit
	result.DOT = dot.Emit(d, opts.Style)

	// Stage 4+5: Render and export
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	err = r.render(ctx, in, opts, result)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	for _, w := range result.Warnings {
		observability.Pipeline().OnWarning(ctx, string(w.Code()))
	}
	r.logger(opts).Info("rendered outputs",
		"formats", opts.Formats,
		"warnings", len(result.Warnings),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Assemble selects the variant for the arm flags and builds the diagram.
// Box texts left empty by the input fall back to the template wording.
func (r *Runner) Assemble(ctx context.Context, in flow.Input, opts Options) (variant.Params, *diagram.Diagram, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return variant.Params{}, nil, fmt.Errorf("invalid options: %w", err)
	}

	p := variant.Select(opts.Previous, opts.Other)
	observability.Pipeline().OnAssembleStart(ctx, p.Kind.String())

	start := time.Now()
	data := in.Data.WithDefaultLabels()
	d, err := diagram.Assemble(data, in.Tooltips, p, opts.Style)
	n := 0
	if d != nil {
		n = len(d.Nodes)
	}
	observability.Pipeline().OnAssembleComplete(ctx, p.Kind.String(), n, time.Since(start), err)
	if err != nil {
		r.logger(opts).Debug("assembly failed", "variant", p.Kind, "err", err)
		return p, nil, fmt.Errorf("assemble: %w", err)
	}
	return p, d, nil
}

// LayoutSVG lays out DOT source with Graphviz, reading and filling the cache.
func (r *Runner) LayoutSVG(ctx context.Context, src string, opts Options) ([]byte, bool, error) {
	keyOpts, err := opts.DiagramKeyOpts()
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.DiagramKey(cache.Hash([]byte(src)), keyOpts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "diagram")
			return data, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "diagram")

	svg, err := r.SVG(ctx, src)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, svg, TTLDiagram); err != nil {
		r.logger(opts).Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "diagram", len(svg))
	}
	return svg, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) render(ctx context.Context, in flow.Input, opts Options, result *Result) error {
	var svg []byte
	if opts.NeedsSVG() {
		raw, hit, err := r.LayoutSVG(ctx, result.DOT, opts)
		if err != nil {
			return err
		}
		result.CacheInfo.SVGHit = hit
		svg, result.Warnings = Decorate(raw, result.Diagram, result.Variant, in.URLs, opts)
	}

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data = svg
		case FormatDOT:
			data = []byte(result.DOT)
		case FormatJSON:
			data, err = marshalDiagram(result.Diagram)
		case FormatPDF, FormatPNG:
			var hit bool
			data, hit, err = r.export(ctx, svg, format, in.URLs, opts)
			result.CacheInfo.ExportHits[format] = hit
		}
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		result.Artifacts[format] = data
	}
	return nil
}

func (r *Runner) export(ctx context.Context, svg []byte, format string, urls flow.URLs, opts Options) ([]byte, bool, error) {
	urlsHash, err := cache.HashJSON(urls)
	if err != nil {
		return nil, false, fmt.Errorf("hash urls: %w", err)
	}
	key := r.Keyer.ArtifactKey(cache.Hash(svg), opts.ArtifactKeyOpts(format, urlsHash))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	data, err := Export(ctx, svg, format, opts.Scale)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
		r.logger(opts).Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

func marshalDiagram(d *diagram.Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := prismaio.WriteJSON(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
