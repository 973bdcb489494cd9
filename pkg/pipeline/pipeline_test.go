package pipeline

import (
	"testing"

	"github.com/matzehuels/flow/pkg/document"
	"github.com/matzehuels/flow/pkg/errors"
	"github.com/matzehuels/flow/pkg/flow"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestSupportedFormats(t *testing.T) {
	got := SupportedFormats()
	want := []string{"dot", "json", "svg"}
	if len(got) != len(want) {
		t.Fatalf("SupportedFormats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SupportedFormats() = %v, want %v", got, want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Document: []byte(`kind = "empty"`)}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("viewport = %gx%g, want %gx%g", opts.Width, opts.Height, DefaultWidth, DefaultHeight)
	}
	if opts.IDs != DefaultIDs {
		t.Errorf("IDs = %q, want %q", opts.IDs, DefaultIDs)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults failed: %v", err)
	}
}

func TestOptionsValidateForSolve(t *testing.T) {
	doc := []byte(`kind = "empty"`)

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing document", Options{}, errors.ErrCodeInvalidInput},
		{"negative width", Options{Document: doc, Width: -1}, errors.ErrCodeInvalidViewport},
		{"huge height", Options{Document: doc, Height: errors.MaxViewport * 2}, errors.ErrCodeInvalidViewport},
		{"bad ids", Options{Document: doc, IDs: "random"}, errors.ErrCodeInvalidInput},
		{"bad filename", Options{Document: doc, Filename: "tree.yaml"}, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForSolve()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForSolve() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsFormatFromFilename(t *testing.T) {
	opts := Options{Document: []byte(`{"kind": "empty"}`), Filename: "tree.json"}
	if err := opts.ValidateForSolve(); err != nil {
		t.Fatal(err)
	}
	if opts.DocumentFormat != document.FormatJSON {
		t.Errorf("DocumentFormat = %q, want json", opts.DocumentFormat)
	}
}

func TestOptionsIDSource(t *testing.T) {
	seq := (&Options{IDs: IDsSequence}).IDSource()
	if got := seq.Next(); got != flow.ID("n1") {
		t.Errorf("sequence first id = %q, want n1", got)
	}

	uuids := (&Options{IDs: IDsUUID}).IDSource()
	if _, ok := uuids.(flow.UUIDSource); !ok {
		t.Errorf("uuid source = %T, want flow.UUIDSource", uuids)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Detailed: true}
	if opts.ArtifactKeyOpts(FormatJSON).Detailed {
		t.Error("Detailed should not affect json artifact keys")
	}
	if !opts.ArtifactKeyOpts(FormatDOT).Detailed {
		t.Error("Detailed should affect dot artifact keys")
	}
}
