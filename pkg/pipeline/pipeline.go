// Package pipeline runs the complete PRISMA flow render.
//
// The CLI and the HTTP service share this package so both produce
// byte-identical artifacts for the same input and options.
//
// # Stages
//
//  1. Select: pick the layout variant from the two arm flags
//  2. Assemble: resolve every box text and build the positioned diagram
//  3. Emit: write the DOT description
//  4. Render: lay out the DOT with Graphviz, then apply the SVG overlays
//  5. Export: rasterize to PDF or PNG when requested
//
// Assembly fails fast: a missing metric aborts the run before any DOT is
// written. Overlay problems are reported as warnings on the [Result].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{
//	    Previous: true,
//	    Other:    true,
//	    Formats:  []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    log.Fatal(errors.UserMessage(err))
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/prismaflow/pkg/cache"
	"github.com/matzehuels/prismaflow/pkg/diagram"
	"github.com/matzehuels/prismaflow/pkg/errors"
	"github.com/matzehuels/prismaflow/pkg/flow"
	"github.com/matzehuels/prismaflow/pkg/variant"
)

// DefaultScale is the PNG zoom factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Options configures a render.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Arm flags
	Previous bool `json:"previous"`
	Other    bool `json:"other"`

	// Render options
	Style       flow.Style `json:"style"`
	Formats     []string   `json:"formats,omitempty"`
	Interactive bool       `json:"interactive,omitempty"` // wrap boxes in hyperlinks
	Scale       float64    `json:"scale,omitempty"`       // PNG zoom
	Refresh     bool       `json:"refresh,omitempty"`     // bypass cache reads

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"` // per-render logger, overrides Runner.Logger

	validated bool
}

// Result contains the outputs of a render.
type Result struct {
	// Variant is the layout chosen for the arm flags.
	Variant variant.Params

	// Diagram is the assembled node/edge model.
	Diagram *diagram.Diagram

	// DOT is the emitted Graphviz source.
	DOT string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings lists boxes left without a hyperlink.
	Warnings []*errors.UnresolvedURLWarning

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains render statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	AssembleTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	SVGHit     bool            // Graphviz output came from cache
	ExportHits map[string]bool // per rasterized format
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, pdf, png, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.Style = o.Style.WithDefaults()
	if err := o.Style.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// NeedsSVG reports whether any requested format is derived from the SVG.
func (o *Options) NeedsSVG() bool {
	for _, f := range o.Formats {
		switch f {
		case FormatSVG, FormatPDF, FormatPNG:
			return true
		}
	}
	return false
}

// DiagramKeyOpts returns cache key options for the Graphviz SVG.
func (o *Options) DiagramKeyOpts() (cache.DiagramKeyOpts, error) {
	styleHash, err := cache.HashJSON(o.Style)
	if err != nil {
		return cache.DiagramKeyOpts{}, fmt.Errorf("hash style: %w", err)
	}
	return cache.DiagramKeyOpts{
		Previous:  o.Previous,
		Other:     o.Other,
		StyleHash: styleHash,
	}, nil
}

// ArtifactKeyOpts returns cache key options for a rasterized format.
func (o *Options) ArtifactKeyOpts(format, urlsHash string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:      format,
		Interactive: o.Interactive,
	}
	if o.Interactive {
		opts.URLsHash = urlsHash
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
