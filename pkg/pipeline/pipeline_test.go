package pipeline

import (
	"reflect"
	"testing"

	"github.com/matzehuels/prismaflow/pkg/flow"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
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

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"svg", []string{"svg"}, false},
		{"svg,pdf", []string{"svg", "pdf"}, false},
		{" SVG , png ,", []string{"svg", "png"}, false},
		{"svg,svg,dot", []string{"svg", "dot"}, false},
		{"", nil, false},
		{"svg,gif", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseFormats(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
	if opts.Style.Font == "" {
		t.Error("Style defaults not applied")
	}
	if opts.Logger != nil {
		t.Error("Logger should stay nil so the runner logger is used")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"pdf"}, Scale: 3}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	first := opts.Style

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Style != first {
		t.Error("Style changed on second call")
	}
	if opts.Scale != 3 {
		t.Errorf("Scale changed to %v", opts.Scale)
	}
}

func TestOptionsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"format", Options{Formats: []string{"gif"}}},
		{"scale", Options{Scale: -1}},
		{"arrow", Options{Style: flow.Style{ArrowHead: "banana"}}},
		{"colour", Options{Style: flow.Style{MainColour: "#12"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNeedsSVG(t *testing.T) {
	tests := []struct {
		formats []string
		want    bool
	}{
		{[]string{"svg"}, true},
		{[]string{"png"}, true},
		{[]string{"dot", "pdf"}, true},
		{[]string{"dot"}, false},
		{[]string{"dot", "json"}, false},
	}
	for _, tt := range tests {
		o := Options{Formats: tt.formats}
		if got := o.NeedsSVG(); got != tt.want {
			t.Errorf("NeedsSVG(%v) = %v, want %v", tt.formats, got, tt.want)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{Scale: 2}
	if got := o.ArtifactKeyOpts("pdf", "h"); got.Scale != 0 || got.URLsHash != "" {
		t.Errorf("pdf key opts = %+v, want no scale and no urls", got)
	}
	if got := o.ArtifactKeyOpts("png", "h"); got.Scale != 2 {
		t.Errorf("png key opts scale = %v, want 2", got.Scale)
	}

	o.Interactive = true
	if got := o.ArtifactKeyOpts("pdf", "h"); got.URLsHash != "h" || !got.Interactive {
		t.Errorf("interactive key opts = %+v", got)
	}
}
