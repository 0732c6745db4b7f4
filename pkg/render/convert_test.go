package render

import (
	"bytes"
	"os/exec"
	"strings"
	"testing"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10" fill="#3b4252"/></svg>`

func requireRsvg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(rsvgBinary); err != nil {
		t.Skipf("%s not installed", rsvgBinary)
	}
}

func TestToPNG(t *testing.T) {
	requireRsvg(t)

	png, err := ToPNG([]byte(testSVG), 1.0)
	if err != nil {
		t.Fatalf("ToPNG() error = %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("ToPNG() output missing PNG signature")
	}
}

func TestToPDF(t *testing.T) {
	requireRsvg(t)

	pdf, err := ToPDF([]byte(testSVG))
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("ToPDF() output missing PDF header")
	}
}

func TestConvertSVG_BadInput(t *testing.T) {
	requireRsvg(t)

	_, err := convertSVG([]byte("not svg"), "png")
	if err == nil {
		t.Fatal("convertSVG() expected error for malformed input")
	}
	if !strings.Contains(err.Error(), "convert png") {
		t.Errorf("convertSVG() error = %v, want conversion context", err)
	}
}
