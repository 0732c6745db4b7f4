package pipeline

import (
	"fmt"

	"github.com/mbertsch/critpath/pkg/cpm"
	"github.com/mbertsch/critpath/pkg/graph"
	"github.com/mbertsch/critpath/pkg/layout"
	"github.com/mbertsch/critpath/pkg/render"
)

// renderArtifacts generates output bytes in every requested format.
func renderArtifacts(name string, snap graph.Snapshot, sched *cpm.Result, l *layout.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		data, err := renderFormat(format, name, snap, sched, l, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderFormat(format, name string, snap graph.Snapshot, sched *cpm.Result, l *layout.Result, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return renderSVG(snap, sched, l, opts)
	case FormatPNG:
		if opts.Engine == EngineGraphviz {
			return render.GraphvizPNG(dotSource(snap, sched, opts), opts.Scale)
		}
		svg, err := renderSVG(snap, sched, l, opts)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(svg, opts.Scale)
	case FormatPDF:
		svg, err := renderSVG(snap, sched, l, opts)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(svg)
	case FormatJSON:
		return render.RenderJSON(render.NewArtifact(name, snap, sched, l))
	case FormatDOT:
		return []byte(dotSource(snap, sched, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func renderSVG(snap graph.Snapshot, sched *cpm.Result, l *layout.Result, opts Options) ([]byte, error) {
	if opts.Engine == EngineGraphviz {
		return render.GraphvizSVG(dotSource(snap, sched, opts))
	}

	svgOpts := []render.SVGOption{render.WithSchedule(sched)}
	if opts.ShowSlack {
		svgOpts = append(svgOpts, render.WithSlackLabels())
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, render.WithBackground(opts.Background))
	}
	return render.RenderSVG(l, svgOpts...), nil
}

func dotSource(snap graph.Snapshot, sched *cpm.Result, opts Options) string {
	return render.ToDOT(snap, sched, render.DOTOptions{Annotate: opts.Annotate})
}
