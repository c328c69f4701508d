package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/prismaflow/pkg/flow"
	prismaio "github.com/matzehuels/prismaflow/pkg/io"
	"github.com/matzehuels/prismaflow/pkg/pipeline"
	"github.com/matzehuels/prismaflow/pkg/variant"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file (single format) or base path (multiple)
	formats   string // comma-separated output formats
	styleFile string // TOML or YAML style file
	pick      bool   // choose the arms interactively
	cacheURL  string // cache backend, see cache.Open
	noCache   bool   // disable caching
	pipeline  pipeline.Options
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		pipeline: pipeline.Options{
			Previous: true,
			Other:    true,
			Scale:    pipeline.DefaultScale,
		},
	}
	var style flow.Style

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a flow diagram from a CSV or JSON file",
		Long: `Render a PRISMA 2020 flow diagram.

The input is a CSV in the template layout (see 'prismaflow template') or a
JSON file with data, tooltips and urls. Box texts left empty use the
template wording.

The previous and other arms are on by default. Turn them off with
--previous=false and --other=false, or choose them with --pick.

Graphviz layouts are cached locally; pdf and png need rsvg-convert.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := pipeline.ParseFormats(opts.formats)
			if err != nil {
				return err
			}
			opts.pipeline.Formats = formats

			s, err := resolveStyle(opts.styleFile, style, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			opts.pipeline.Style = s

			if opts.pick {
				prev, other, ok, err := pickArms(opts.pipeline.Previous, opts.pipeline.Other)
				if err != nil {
					return err
				}
				if !ok {
					printInfo("Cancelled")
					return nil
				}
				opts.pipeline.Previous, opts.pipeline.Other = prev, other
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	f.StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, pdf, png, dot, json (comma-separated)")
	f.BoolVar(&opts.pipeline.Previous, "previous", opts.pipeline.Previous, "include the previous studies arm")
	f.BoolVar(&opts.pipeline.Other, "other", opts.pipeline.Other, "include the other methods arm")
	f.BoolVarP(&opts.pipeline.Interactive, "interactive", "i", false, "wrap boxes in their URLs")
	f.Float64Var(&opts.pipeline.Scale, "scale", opts.pipeline.Scale, "PNG zoom factor")
	f.BoolVar(&opts.pick, "pick", false, "choose the arms interactively")
	f.StringVar(&opts.styleFile, "style-file", "", "style file (.toml, .yaml)")
	f.StringVar(&opts.cacheURL, "cache", "", "cache location: directory, redis://, mongodb:// or none")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&opts.pipeline.Refresh, "refresh", false, "ignore cached results")

	f.StringVar(&style.Font, "font", flow.DefaultFont, "font family")
	f.Float64Var(&style.FontSize, "font-size", flow.DefaultFontSize, "font size in points")
	f.StringVar(&style.TitleColour, "title-colour", flow.DefaultTitleColour, "fill of the databases header")
	f.StringVar(&style.GreyBoxColour, "greybox-colour", flow.DefaultGreyBoxColour, "fill of the previous and other headers")
	f.StringVar(&style.MainColour, "main-colour", flow.DefaultMainColour, "box outline colour")
	f.StringVar(&style.ArrowColour, "arrow-colour", flow.DefaultArrowColour, "arrow colour")
	f.StringVar(&style.ArrowHead, "arrow-head", flow.DefaultArrowHead, "arrow head shape")
	f.StringVar(&style.ArrowTail, "arrow-tail", flow.DefaultArrowTail, "arrow tail shape")

	return cmd
}

// styleFlags maps style flag names to the field they set.
var styleFlags = map[string]func(dst *flow.Style, src flow.Style){
	"font":           func(d *flow.Style, s flow.Style) { d.Font = s.Font },
	"font-size":      func(d *flow.Style, s flow.Style) { d.FontSize = s.FontSize },
	"title-colour":   func(d *flow.Style, s flow.Style) { d.TitleColour = s.TitleColour },
	"greybox-colour": func(d *flow.Style, s flow.Style) { d.GreyBoxColour = s.GreyBoxColour },
	"main-colour":    func(d *flow.Style, s flow.Style) { d.MainColour = s.MainColour },
	"arrow-colour":   func(d *flow.Style, s flow.Style) { d.ArrowColour = s.ArrowColour },
	"arrow-head":     func(d *flow.Style, s flow.Style) { d.ArrowHead = s.ArrowHead },
	"arrow-tail":     func(d *flow.Style, s flow.Style) { d.ArrowTail = s.ArrowTail },
}

// resolveStyle starts from the style file (or the defaults) and applies the
// style flags the user set explicitly.
func resolveStyle(file string, flags flow.Style, changed func(name string) bool) (flow.Style, error) {
	s := flow.DefaultStyle()
	if file != "" {
		loaded, err := prismaio.LoadStyle(file)
		if err != nil {
			return flow.Style{}, err
		}
		s = loaded
	}
	names := make([]string, 0, len(styleFlags))
	for name := range styleFlags {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if changed(name) {
			styleFlags[name](&s, flags)
		}
	}
	return s, s.Validate()
}

// loadInput reads a CSV or JSON flow input by extension.
func loadInput(path string) (flow.Input, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return prismaio.ImportJSON(path)
	}
	return prismaio.ImportCSV(path)
}

// runRender loads the input, runs the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	prog := newProgress(c.Logger)

	in, err := loadInput(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded input", "path", input, "counts", len(in.Data.Counts), "urls", len(in.URLs))

	runner, err := c.newRunner(ctx, opts.cacheURL, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.pipeline.Logger = c.Logger

	kind := variant.KindOf(opts.pipeline.Previous, opts.pipeline.Other)
	spin := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s layout...", kind))
	spin.Start()
	res, err := runner.Execute(ctx, in, opts.pipeline)
	if err != nil {
		spin.Fail("Render failed")
		return err
	}
	spin.Stop()

	printSuccess("Rendered %s layout", StyleHighlight.Render(res.Variant.Kind.String()))
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.SVGHit)

	single := len(opts.pipeline.Formats) == 1
	for _, format := range opts.pipeline.Formats {
		path := outputPath(opts.output, input, format, single)
		if err := writeArtifact(path, res.Artifacts[format]); err != nil {
			return err
		}
		if path != "-" {
			printFile(path)
		}
	}

	if len(res.Warnings) > 0 {
		boxes := make([]string, len(res.Warnings))
		for i, w := range res.Warnings {
			boxes[i] = w.Box
		}
		printWarning("%d boxes have no URL", len(boxes))
		printDetail("%s", strings.Join(boxes, ", "))
	}

	prog.done("Render complete", "variant", res.Variant.Kind.String(), "formats", len(opts.pipeline.Formats))
	return nil
}

func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

// pickArms runs the arm picker and returns the chosen flags. ok is false
// when the user quit without confirming.
func pickArms(previous, other bool) (bool, bool, bool, error) {
	final, err := tea.NewProgram(NewArmPickerModel(previous, other)).Run()
	if err != nil {
		return false, false, false, fmt.Errorf("picker: %w", err)
	}
	m, ok := final.(ArmPickerModel)
	if !ok || !m.Confirmed {
		return previous, other, false, nil
	}
	return m.Previous(), m.Other(), true, nil
}
