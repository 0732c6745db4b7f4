// Package render turns computed layouts and schedules into output artifacts.
//
// # Overview
//
// This package contains the output side of the pipeline. It provides:
//
//   - A native SVG sink for [layout.Result] geometry ([RenderSVG])
//   - Graphviz DOT export and rendering ([ToDOT], [GraphvizSVG])
//   - A JSON artifact combining schedule and layout ([RenderJSON])
//   - Generic format conversion (SVG to PDF/PNG via [ToPDF] and [ToPNG])
//
// # Native SVG
//
// [RenderSVG] draws the layout geometry directly: nodes as circles, activities
// as cubic Bézier curves, with zero-slack activities highlighted when a
// schedule is attached via [WithSchedule].
//
//	svg := render.RenderSVG(l, render.WithSchedule(sched))
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// # Graphviz
//
// [ToDOT] exports the project graph in DOT format, letting Graphviz compute
// its own layout. This is the interchange path for external tooling.
//
//	dot := render.ToDOT(snap, sched, render.DOTOptions{Annotate: true})
//	svg, err := render.GraphvizSVG(dot)
package render
