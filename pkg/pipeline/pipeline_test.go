package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mbertsch/critpath/pkg/cache"
	errs "github.com/mbertsch/critpath/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateEngine(t *testing.T) {
	tests := []struct {
		engine  string
		wantErr bool
	}{
		{"native", false},
		{"graphviz", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateEngine(tt.engine)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEngine(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("empty options should fail validation")
	}

	opts = Options{Path: "plan.toml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Engine != EngineNative {
		t.Errorf("Engine = %q, want native", opts.Engine)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults() error = %v", err)
	}
}

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write plan: %v", err)
	}
	return path
}

const testPlan = `
name = "kitchen"

[[activities]]
from = "start"
to = "demolition"
duration = 2

[[activities]]
from = "demolition"
to = "cabinets"
duration = 5

[[activities]]
from = "demolition"
to = "painting"
duration = 3

[[activities]]
from = "cabinets"
to = "done"
duration = 1

[[activities]]
from = "painting"
to = "done"
duration = 1
`

func TestRunnerExecute(t *testing.T) {
	path := writePlan(t, testPlan)
	runner := NewRunner(cache.NewNullCache(), nil)

	result, err := runner.Execute(context.Background(), Options{
		Path:    path,
		Formats: []string{FormatSVG, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Plan.Name != "kitchen" {
		t.Errorf("Plan.Name = %q, want kitchen", result.Plan.Name)
	}
	if result.Schedule.Duration != 8 {
		t.Errorf("Schedule.Duration = %v, want 8", result.Schedule.Duration)
	}
	if result.Fingerprint == "" {
		t.Error("Fingerprint should be set")
	}
	if result.Stats.NodeCount != 5 || result.Stats.EdgeCount != 5 {
		t.Errorf("Stats nodes/edges = %d/%d, want 5/5", result.Stats.NodeCount, result.Stats.EdgeCount)
	}

	for _, format := range []string{FormatSVG, FormatJSON, FormatDOT} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("Artifacts[%s] is empty", format)
		}
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("SVG artifact missing svg root")
	}
	if !strings.Contains(string(result.Artifacts[FormatDOT]), "digraph G") {
		t.Error("DOT artifact missing digraph declaration")
	}
}

func TestRunnerExecuteCycle(t *testing.T) {
	path := writePlan(t, `
name = "broken"

[[activities]]
from = "a"
to = "b"
duration = 1

[[activities]]
from = "b"
to = "a"
duration = 1
`)
	runner := NewRunner(nil, nil)

	_, err := runner.Execute(context.Background(), Options{Path: path})
	if err == nil {
		t.Fatal("Execute() should fail on a cyclic plan")
	}
	if !errs.Is(err, errs.ErrCodeGraphCycle) {
		t.Errorf("Execute() error = %v, want GRAPH_CYCLE code", err)
	}
}

func TestRunnerComputeCaching(t *testing.T) {
	path := writePlan(t, testPlan)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	runner := NewRunner(fc, nil)
	defer runner.Close()

	ctx := context.Background()
	opts := Options{Path: path, Formats: []string{FormatJSON}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.ComputeHit {
		t.Error("first run should not hit the compute cache")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.ComputeHit {
		t.Error("second run should hit the compute cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if second.Schedule.Duration != first.Schedule.Duration {
		t.Errorf("cached duration = %v, want %v", second.Schedule.Duration, first.Schedule.Duration)
	}

	// Refresh bypasses the cache
	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute() error = %v", err)
	}
	if third.CacheInfo.ComputeHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should bypass the cache")
	}
}

func TestRunnerExecuteSpacingAffectsCacheKey(t *testing.T) {
	path := writePlan(t, testPlan)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	runner := NewRunner(fc, nil)
	defer runner.Close()

	ctx := context.Background()

	if _, err := runner.Execute(ctx, Options{Path: path, Formats: []string{FormatJSON}}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	wide, err := runner.Execute(ctx, Options{Path: path, Formats: []string{FormatJSON}, LayerGap: 320})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if wide.CacheInfo.ComputeHit {
		t.Error("changed spacing should miss the compute cache")
	}
}
