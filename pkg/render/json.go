package render

import (
	"encoding/json"

	"github.com/mbertsch/critpath/pkg/cpm"
	"github.com/mbertsch/critpath/pkg/graph"
	"github.com/mbertsch/critpath/pkg/layout"
)

// Artifact bundles everything computed for one graph snapshot. It is the
// primary data interchange format, enabling:
//
//   - Integration with external visualization tools
//   - Caching computed results for fast re-rendering
//   - Round-trip rendering (re-import and draw identically)
type Artifact struct {
	Name     string         `json:"name,omitempty" bson:"name,omitempty"`
	Version  uint64         `json:"version" bson:"version"`
	Nodes    []string       `json:"nodes" bson:"nodes"`
	Edges    []graph.Edge   `json:"edges" bson:"edges"`
	Schedule *cpm.Result    `json:"schedule,omitempty" bson:"schedule,omitempty"`
	Layout   *layout.Result `json:"layout,omitempty" bson:"layout,omitempty"`
}

// NewArtifact assembles an artifact from a snapshot and its computed results.
// Either result may be nil when that stage was skipped.
func NewArtifact(name string, snap graph.Snapshot, sched *cpm.Result, l *layout.Result) *Artifact {
	return &Artifact{
		Name:     name,
		Version:  snap.Version,
		Nodes:    snap.Nodes,
		Edges:    snap.Edges,
		Schedule: sched,
		Layout:   l,
	}
}

// RenderJSON exports the artifact as a pretty-printed JSON document.
// It returns an error only if marshaling fails, which should not happen with
// well-formed results. It does not modify the artifact and is safe to call
// concurrently.
func RenderJSON(a *Artifact) ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}
