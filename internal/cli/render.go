package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mbertsch/critpath/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: svg, png, pdf, json, dot
	engine     string   // drawing engine: native or graphviz
	annotate   bool     // include event times in DOT node labels
	showSlack  bool     // label non-critical edges with their slack
	background string   // SVG background color
	scale      float64  // PNG raster scale
	layerGap   float64  // horizontal distance between layers
	nodeGap    float64  // vertical distance between nodes in a layer
	noCache    bool     // disable the result cache
	refresh    bool     // recompute even when cached
}

// renderCommand creates the render command for generating diagram outputs.
//
// Default settings:
//   - format: svg
//   - engine: native (built-in layered layout)
//   - scale: 2.0 for PNG export
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		engine: pipeline.EngineNative,
		scale:  pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a plan as a layered diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if err := pipeline.ValidateEngine(opts.engine); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "drawing engine: native (default), graphviz")
	cmd.Flags().BoolVar(&opts.annotate, "annotate", false, "include event times in DOT node labels")
	cmd.Flags().BoolVar(&opts.showSlack, "slack", false, "label non-critical activities with their slack")
	cmd.Flags().StringVar(&opts.background, "background", "", "SVG background color (default transparent)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG raster scale factor")
	cmd.Flags().Float64Var(&opts.layerGap, "layer-gap", 0, "horizontal distance between layers")
	cmd.Flags().Float64Var(&opts.nodeGap, "node-gap", 0, "vertical distance between nodes in a layer")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Path:       path,
		Formats:    opts.formats,
		Engine:     opts.engine,
		Annotate:   opts.annotate,
		ShowSlack:  opts.showSlack,
		Background: opts.background,
		Scale:      opts.scale,
		LayerGap:   opts.layerGap,
		NodeGap:    opts.nodeGap,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	printSuccess("Rendered %s", result.Plan.Name)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.ComputeHit)

	for _, format := range opts.formats {
		out := outputPath(path, opts.output, format, len(opts.formats) > 1)
		if err := os.WriteFile(out, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printFile(out)
	}
	return nil
}

// outputPath decides where one format's bytes land. With multiple formats the
// explicit output acts as a base path and each format gets its extension.
func outputPath(input, output, format string, multi bool) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return base + "." + format
	}
	if multi {
		base := strings.TrimSuffix(output, filepath.Ext(output))
		return base + "." + format
	}
	return output
}
