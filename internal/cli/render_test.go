package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/prismaflow/pkg/errors"
	"github.com/matzehuels/prismaflow/pkg/flow"
	"github.com/matzehuels/prismaflow/pkg/template"
)

func TestStyleFlagsCoverEveryFlag(t *testing.T) {
	cmd := New(os.Stderr, LogInfo).renderCommand()
	for name := range styleFlags {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("style flag %q is not registered", name)
		}
	}
	if len(styleFlags) != 8 {
		t.Errorf("len(styleFlags) = %d, want 8", len(styleFlags))
	}
}

func TestResolveStyleDefaults(t *testing.T) {
	s, err := resolveStyle("", flow.Style{Font: "Arial"}, func(string) bool { return false })
	if err != nil {
		t.Fatalf("resolveStyle() error: %v", err)
	}
	if s != flow.DefaultStyle() {
		t.Errorf("resolveStyle() = %+v, want defaults", s)
	}
}

func TestResolveStyleFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.toml")
	body := "font = \"Times\"\narrow_colour = \"Navy\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := map[string]bool{"arrow-colour": true, "font-size": true}
	flags := flow.Style{Font: "Ignored", FontSize: 12, ArrowColour: "#ff0000"}
	s, err := resolveStyle(path, flags, func(name string) bool { return changed[name] })
	if err != nil {
		t.Fatalf("resolveStyle() error: %v", err)
	}
	if s.Font != "Times" {
		t.Errorf("Font = %q, want file value Times", s.Font)
	}
	if s.ArrowColour != "#ff0000" {
		t.Errorf("ArrowColour = %q, want flag value", s.ArrowColour)
	}
	if s.FontSize != 12 {
		t.Errorf("FontSize = %v, want 12", s.FontSize)
	}
	if s.TitleColour != flow.DefaultTitleColour {
		t.Errorf("TitleColour = %q, want default", s.TitleColour)
	}
}

func TestResolveStyleInvalidFlag(t *testing.T) {
	_, err := resolveStyle("", flow.Style{ArrowHead: "banana"}, func(name string) bool { return name == "arrow-head" })
	if !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("resolveStyle() error = %v, want INVALID_STYLE", err)
	}
}

func TestLoadInput(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "PRISMA.csv")
	if err := os.WriteFile(csvPath, template.CSV(), 0o644); err != nil {
		t.Fatal(err)
	}
	in, err := loadInput(csvPath)
	if err != nil {
		t.Fatalf("loadInput(csv) error: %v", err)
	}
	if _, ok := in.Data.Count(flow.RecordsScreened); !ok {
		t.Error("template input has no records_screened count")
	}

	jsonPath := filepath.Join(dir, "flow.JSON")
	if err := os.WriteFile(jsonPath, []byte(`{"data": {"counts": {"records_screened": 7}}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	in, err = loadInput(jsonPath)
	if err != nil {
		t.Fatalf("loadInput(json) error: %v", err)
	}
	if n, _ := in.Data.Count(flow.RecordsScreened); n != 7 {
		t.Errorf("records_screened = %d, want 7", n)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(os.Stderr, LogInfo).RootCommand()
	want := []string{"render", "template", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestTemplateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PRISMA.csv")
	cmd := New(os.Stderr, LogInfo).templateCommand()
	run := func(args ...string) error {
		cmd.SetArgs(args)
		return cmd.Execute()
	}

	if err := run("-o", path); err != nil {
		t.Fatalf("template error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(template.CSV()) {
		t.Error("written template differs from the embedded one")
	}

	if err := run("-o", path); err == nil {
		t.Error("expected an error when the file exists")
	}
	if err := run("-o", path, "--force"); err != nil {
		t.Errorf("template --force error: %v", err)
	}
}
