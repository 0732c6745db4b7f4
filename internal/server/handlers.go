package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mbertsch/critpath/pkg/cpm"
	errs "github.com/mbertsch/critpath/pkg/errors"
	"github.com/mbertsch/critpath/pkg/graph"
	"github.com/mbertsch/critpath/pkg/pipeline"
	"github.com/mbertsch/critpath/pkg/plan"
	"github.com/mbertsch/critpath/pkg/render"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// decodePlan reads a plan from the request body and builds its graph.
func decodePlan(r *http.Request) (*plan.Plan, graph.Snapshot, error) {
	var p plan.Plan
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return nil, graph.Snapshot{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body")
	}
	g, err := plan.Build(&p)
	if err != nil {
		return nil, graph.Snapshot{}, errs.Wrap(errs.ErrCodeInvalidPlan, err, "invalid plan")
	}
	return &p, g.Snapshot(), nil
}

// pipelineOptions derives per-request options from query parameters.
func pipelineOptions(r *http.Request) pipeline.Options {
	q := r.URL.Query()
	opts := pipeline.Options{
		Engine:     q.Get("engine"),
		Annotate:   q.Get("annotate") == "true",
		ShowSlack:  q.Get("show_slack") == "true",
		Background: q.Get("background"),
		Refresh:    q.Get("refresh") == "true",
	}
	if v, err := strconv.ParseFloat(q.Get("layer_gap"), 64); err == nil {
		opts.LayerGap = v
	}
	if v, err := strconv.ParseFloat(q.Get("node_gap"), 64); err == nil {
		opts.NodeGap = v
	}
	if v, err := strconv.ParseFloat(q.Get("scale"), 64); err == nil {
		opts.Scale = v
	}
	opts.SetRenderDefaults()
	return opts
}

// handleSchedule computes the critical path metrics for a posted plan.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	_, snap, err := decodePlan(r)
	if err != nil {
		writeError(w, err)
		return
	}

	sched, err := cpm.Compute(snap)
	if err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeGraphCycle, err, "cannot schedule graph"))
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

// handleLayout computes schedule and drawing geometry for a posted plan.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	p, snap, err := decodePlan(r)
	if err != nil {
		writeError(w, err)
		return
	}

	sched, l, err := s.runner.Compute(r.Context(), snap, pipelineOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, render.NewArtifact(p.Name, snap, sched, l))
}

// handleRender renders a posted plan to the requested format.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	p, snap, err := decodePlan(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.renderSnapshot(w, r, p.Name, snap)
}

func (s *Server) renderSnapshot(w http.ResponseWriter, r *http.Request, name string, snap graph.Snapshot) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInvalidFormat, err, "unsupported format"))
		return
	}

	opts := pipelineOptions(r)
	opts.Formats = []string{format}

	sched, l, err := s.runner.Compute(r.Context(), snap, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	artifacts, err := s.runner.Render(r.Context(), name, snap, sched, l, opts)
	if err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "render failed"))
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}
