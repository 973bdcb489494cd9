// Package pipeline provides the layout pipeline shared by the CLI and the
// HTTP server.
//
// This package implements the complete decode → solve → render pipeline. By
// centralizing this logic, every entry point produces identical results and
// shares the same cache keys.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Parse a TOML or JSON tree document
//  2. Solve: Build the node tree, run flow.Solve (and flow.Place when
//     positions are requested) and export a graph.Snapshot
//  3. Render: Produce artifacts from the snapshot (JSON, DOT, SVG)
//
// Solve and Render results are cached independently: a new output format
// for an already solved document skips straight to rendering.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Document: data,
//	    Filename: "app.toml",
//	    Width:    1024,
//	    Height:   768,
//	    Formats:  []string{"json", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flow/pkg/cache"
	"github.com/matzehuels/flow/pkg/document"
	"github.com/matzehuels/flow/pkg/errors"
	"github.com/matzehuels/flow/pkg/flow"
	"github.com/matzehuels/flow/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default viewport width.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height.
	DefaultHeight = 600.0

	// DefaultIDs is the default node id source.
	DefaultIDs = IDsSequence
)

// Node id sources.
const (
	IDsSequence = "sequence"
	IDsUUID     = "uuid"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// ValidIDs is the set of supported id sources.
var ValidIDs = map[string]bool{
	IDsSequence: true,
	IDsUUID:     true,
}

// ContentTypes maps output formats to their media types.
var ContentTypes = map[string]string{
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
	FormatSVG:  "image/svg+xml",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Decode options
	Document       []byte          `json:"-"`
	DocumentFormat document.Format `json:"document_format,omitempty"` // detected when empty
	Filename       string          `json:"filename,omitempty"`        // used for format detection and logs

	// Solve options
	Width  float64 `json:"width,omitempty"`  // zero selects DefaultWidth
	Height float64 `json:"height,omitempty"` // zero selects DefaultHeight
	Place  bool    `json:"place,omitempty"`
	IDs    string  `json:"ids,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // detailed DOT labels

	Refresh bool `json:"refresh,omitempty"` // bypass cache reads

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the built node tree. It is nil when the snapshot came from
	// the cache.
	Tree *document.Tree

	// Snapshot is the solved tree.
	Snapshot graph.Snapshot

	// DocumentHash is the content hash of the canonical document.
	DocumentHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	DecodeTime time.Duration
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the snapshot came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(SupportedFormats(), ", "))
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

// ValidateIDs checks that an id source is valid.
func ValidateIDs(ids string) error {
	if !ValidIDs[ids] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid ids: %q (must be one of: sequence, uuid)", ids)
	}
	return nil
}

// SupportedFormats returns the output formats in sorted order.
func SupportedFormats() []string {
	out := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSolve checks the document and viewport and applies solve defaults.
func (o *Options) ValidateForSolve() error {
	if len(o.Document) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "document is required")
	}
	if o.DocumentFormat == "" && o.Filename != "" {
		f, err := document.FormatFromFilename(o.Filename)
		if err != nil {
			return err
		}
		o.DocumentFormat = f
	}
	o.SetSolveDefaults()
	if err := errors.ValidateViewport(o.Width, o.Height); err != nil {
		return err
	}
	return ValidateIDs(o.IDs)
}

// SetSolveDefaults sets default values for solving.
func (o *Options) SetSolveDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.IDs == "" {
		o.IDs = DefaultIDs
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Viewport returns the configured viewport.
func (o *Options) Viewport() flow.Size {
	return flow.Size{Width: o.Width, Height: o.Height}
}

// IDSource returns a fresh id source for one build.
func (o *Options) IDSource() flow.IDSource {
	if o.IDs == IDsUUID {
		return flow.NewUUIDSource()
	}
	return flow.NewSequence("n")
}

// SnapshotKeyOpts returns cache key options for solving.
func (o *Options) SnapshotKeyOpts() cache.SnapshotKeyOpts {
	return cache.SnapshotKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		Place:  o.Place,
		IDs:    o.IDs,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format != FormatJSON {
		opts.Detailed = o.Detailed
	}
	return opts
}
