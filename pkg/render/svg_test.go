package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mbertsch/critpath/pkg/cpm"
	"github.com/mbertsch/critpath/pkg/layout"
)

func TestRenderSVG_Basic(t *testing.T) {
	snap := buildSnapshot(t)
	l := layout.Build(snap, nil, layout.Options{})

	svg := string(RenderSVG(l))

	if !strings.HasPrefix(svg, "<svg xmlns=") {
		t.Error("RenderSVG() missing svg root element")
	}
	for _, id := range []string{"node-a", "node-b", "node-c", "node-d"} {
		if !strings.Contains(svg, id) {
			t.Errorf("RenderSVG() missing circle for %s", id)
		}
	}
	if got := strings.Count(svg, "<path"); got != 4 {
		t.Errorf("RenderSVG() path count = %d, want 4", got)
	}
	if strings.Contains(svg, colorCritical) {
		t.Error("RenderSVG() without schedule should not use the critical color")
	}
}

func TestRenderSVG_CriticalHighlight(t *testing.T) {
	snap := buildSnapshot(t)
	sched, err := cpm.Compute(snap)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	l := layout.Build(snap, sched, layout.Options{})

	svg := string(RenderSVG(l, WithSchedule(sched)))

	// Two critical activities (a->b, b->d) plus three critical node strokes.
	if got := strings.Count(svg, colorCritical); got < 5 {
		t.Errorf("RenderSVG() critical color occurrences = %d, want >= 5", got)
	}
	// Event time annotations ride along with the layout.
	if !strings.Contains(svg, "5 | 5") {
		t.Error("RenderSVG() missing earliest/latest annotation for sink node")
	}
	// Weight labels.
	if !strings.Contains(svg, ">3</text>") {
		t.Error("RenderSVG() missing weight label for a->b")
	}
}

func TestRenderSVG_Deterministic(t *testing.T) {
	snap := buildSnapshot(t)
	sched, err := cpm.Compute(snap)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	l := layout.Build(snap, sched, layout.Options{})

	first := RenderSVG(l, WithSchedule(sched))
	second := RenderSVG(l, WithSchedule(sched))
	if !bytes.Equal(first, second) {
		t.Error("RenderSVG() output differs between identical calls")
	}
}

func TestRenderSVG_Background(t *testing.T) {
	snap := buildSnapshot(t)
	l := layout.Build(snap, nil, layout.Options{})

	svg := string(RenderSVG(l, WithBackground("#fafafa")))
	if !strings.Contains(svg, `<rect width="100%" height="100%" fill="#fafafa"/>`) {
		t.Error("RenderSVG() missing background rect")
	}
}

func TestRenderSVG_SlackLabels(t *testing.T) {
	snap := buildSnapshot(t)
	sched, err := cpm.Compute(snap)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	l := layout.Build(snap, sched, layout.Options{})

	svg := string(RenderSVG(l, WithSchedule(sched), WithSlackLabels()))

	// a->c has weight 1 and can slip by 3.
	if !strings.Contains(svg, "1 (+3)") {
		t.Errorf("RenderSVG() missing slack label:\n%s", svg)
	}
}

func TestTrimFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3, "3"},
		{2.5, "2.5"},
		{0.125, "0.125"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := trimFloat(tt.in); got != tt.want {
			t.Errorf("trimFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeText(t *testing.T) {
	if got := escapeText(`a<b>&"c`); got != "a&lt;b&gt;&amp;&quot;c" {
		t.Errorf("escapeText() = %q", got)
	}
}
