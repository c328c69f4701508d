package cli

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".cache", appName)) {
		t.Errorf("cacheDir() = %q, want suffix .cache/%s", dir, appName)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheLocation(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	t.Setenv(envCache, "")

	if got := cacheLocation("redis://localhost:6379/0"); got != "redis://localhost:6379/0" {
		t.Errorf("flag: got %q", got)
	}
	if got := cacheLocation(""); got != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("default: got %q", got)
	}

	t.Setenv(envCache, "none")
	if got := cacheLocation(""); got != "none" {
		t.Errorf("env: got %q", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "review/PRISMA.csv", "review/PRISMA"},
		{"", "flow.json", "flow"},
		{"out/diagram.svg", "PRISMA.csv", "out/diagram"},
		{"out/diagram.PDF", "PRISMA.csv", "out/diagram.PDF"},
		{"out/diagram", "PRISMA.csv", "out/diagram"},
		{"diagram.v2", "PRISMA.csv", "diagram.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name           string
		output, format string
		single         bool
		want           string
	}{
		{"single explicit", "figure1.svg", "svg", true, "figure1.svg"},
		{"single stdout", "-", "dot", true, "-"},
		{"single derived", "", "png", true, "PRISMA.png"},
		{"multi derived", "", "pdf", false, "PRISMA.pdf"},
		{"multi base", "out/fig.svg", "png", false, "out/fig.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, "PRISMA.csv", tt.format, tt.single); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutputPathKeepsInput(t *testing.T) {
	tests := []struct {
		name                  string
		output, input, format string
		single                bool
		want                  string
	}{
		{"json from json", "", "review.json", "json", true, "review.diagram.json"},
		{"json from json multi", "", "data/review.json", "json", false, "data/review.diagram.json"},
		{"unclean input", "", "./review.json", "json", true, "./review.diagram.json"},
		{"base equals input", "review.json", "review.json", "json", false, "review.diagram.json"},
		{"svg from json", "", "review.json", "svg", true, "review.svg"},
		{"explicit single wins", "review.json", "review.json", "json", true, "review.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.format, tt.single); got != tt.want {
				t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.format, got, tt.want)
			}
		})
	}
}
