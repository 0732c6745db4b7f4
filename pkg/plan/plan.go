// Package plan loads project plan files into a graph.
//
// A plan declares activities (weighted dependencies between named events)
// and, optionally, standalone nodes. Two on-disk formats are supported and
// selected by file extension: TOML (.toml) and JSON (.json). Both decode
// into the same [Plan] structure and pass through the graph's validated
// mutation boundary, so a malformed activity (self-loop, negative duration,
// blank name) fails the load with a descriptive error.
package plan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mbertsch/critpath/pkg/graph"
)

// Activity is one directed dependency with a duration, as declared in a
// plan file.
type Activity struct {
	From     string  `toml:"from" json:"from"`
	To       string  `toml:"to" json:"to"`
	Duration float64 `toml:"duration" json:"duration"`
}

// Plan is the decoded plan file.
type Plan struct {
	Name string `toml:"name" json:"name"`
	// Nodes lists events with no activities attached (isolated milestones).
	// Events referenced by activities need not be listed.
	Nodes      []string   `toml:"nodes" json:"nodes,omitempty"`
	Activities []Activity `toml:"activities" json:"activities"`
}

// Load reads and decodes a plan file, then builds the graph it declares.
// The format is chosen by extension; anything but .toml or .json is an
// error.
func Load(path string) (*graph.Graph, *Plan, error) {
	var p Plan
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &p); err != nil {
			return nil, nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported plan format %q (want .toml or .json)", ext)
	}

	g, err := Build(&p)
	if err != nil {
		return nil, nil, err
	}
	return g, &p, nil
}

// Build constructs a graph from an in-memory plan, reporting the first
// invalid node or activity.
func Build(p *Plan) (*graph.Graph, error) {
	g := graph.New()
	for _, id := range p.Nodes {
		if err := g.AddNode(id); err != nil {
			return nil, fmt.Errorf("node %q: %w", id, err)
		}
	}
	for i, a := range p.Activities {
		if err := g.AddEdge(a.From, a.To, a.Duration); err != nil {
			return nil, fmt.Errorf("activity %d (%s→%s): %w", i, a.From, a.To, err)
		}
	}
	return g, nil
}

// FromSnapshot reconstructs a plan from a snapshot, for persisting a graph
// that was assembled interactively or over the API.
func FromSnapshot(name string, snap graph.Snapshot) *Plan {
	p := &Plan{Name: name}
	referenced := make(map[string]bool, len(snap.Nodes))
	for _, e := range snap.Edges {
		referenced[e.From] = true
		referenced[e.To] = true
		p.Activities = append(p.Activities, Activity{From: e.From, To: e.To, Duration: e.Weight})
	}
	for _, id := range snap.Nodes {
		if !referenced[id] {
			p.Nodes = append(p.Nodes, id)
		}
	}
	return p
}
