// Package pipeline provides the core scheduling pipeline for critpath.
//
// This package implements the complete load → schedule → layout → render
// pipeline used by the CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a project plan and build the activity graph
//  2. Compute: Run the critical path schedule and the drawing layout
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Path:    "project.toml",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Compute only
//	sched, l, err := runner.Compute(ctx, snap, opts)
//
//	// Render with existing results
//	artifacts, err := runner.Render(ctx, snap, sched, l, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mbertsch/critpath/pkg/cpm"
	"github.com/mbertsch/critpath/pkg/graph"
	"github.com/mbertsch/critpath/pkg/layout"
	"github.com/mbertsch/critpath/pkg/plan"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// Engine constants select who computes the drawing geometry for SVG/PNG/PDF.
const (
	// EngineNative draws the built-in layered layout.
	EngineNative = "native"
	// EngineGraphviz delegates positioning to Graphviz via DOT.
	EngineGraphviz = "graphviz"
)

// ValidEngines is the set of supported drawing engines.
var ValidEngines = map[string]bool{
	EngineNative:   true,
	EngineGraphviz: true,
}

// DefaultScale is the raster scale factor for PNG export.
const DefaultScale = 2.0

// Options contains all configuration for the scheduling pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Path    string `json:"path,omitempty"` // plan file (.toml or .json)
	Name    string `json:"name,omitempty"` // project name override
	Refresh bool   `json:"refresh,omitempty"`

	// Layout options (zero values fall back to layout package defaults)
	LayerGap   float64 `json:"layer_gap,omitempty"`
	NodeGap    float64 `json:"node_gap,omitempty"`
	Radius     float64 `json:"radius,omitempty"`
	EdgeSpread float64 `json:"edge_spread,omitempty"`
	MarginX    float64 `json:"margin_x,omitempty"`
	MarginY    float64 `json:"margin_y,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Engine     string   `json:"engine,omitempty"`
	Annotate   bool     `json:"annotate,omitempty"`   // event times on node labels
	ShowSlack  bool     `json:"show_slack,omitempty"` // slack on non-critical edge labels
	Background string   `json:"background,omitempty"`
	Scale      float64  `json:"scale,omitempty"` // PNG raster scale

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the loaded project plan, when the run started from a file.
	Plan *plan.Plan

	// Snapshot is the graph the results were computed from.
	Snapshot graph.Snapshot

	// Fingerprint is the content hash of the snapshot.
	Fingerprint string

	// Schedule is the critical path result.
	Schedule *cpm.Result

	// Layout is the drawing geometry.
	Layout *layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	LoadTime    time.Duration
	ComputeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ComputeHit bool // Whether schedule+layout came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
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

// ValidateEngine checks that a drawing engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return fmt.Errorf("invalid engine: %q (must be one of: native, graphviz)", engine)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Path == "" {
		return fmt.Errorf("path is required")
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Engine == "" {
		o.Engine = EngineNative
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateEngine(o.Engine)
}

// LayoutOptions translates the spacing knobs into layout package options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		LayerGap:   o.LayerGap,
		NodeGap:    o.NodeGap,
		Radius:     o.Radius,
		EdgeSpread: o.EdgeSpread,
		MarginX:    o.MarginX,
		MarginY:    o.MarginY,
	}
}
