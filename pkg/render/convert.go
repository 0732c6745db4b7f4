package render

import (
	"bytes"
	"fmt"
	"os/exec"
)

// rsvgBinary is the external converter both [ToPDF] and [ToPNG] rely on.
// Install via `brew install librsvg` (macOS) or `apt install librsvg2-bin`.
const rsvgBinary = "rsvg-convert"

// ToPDF converts a rendered SVG artifact to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return convertSVG(svg, "pdf")
}

// ToPNG rasterizes a rendered SVG artifact at the given zoom factor; 2.0
// doubles the pixel dimensions for high-DPI output.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convertSVG(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func convertSVG(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath(rsvgBinary); err != nil {
		return nil, fmt.Errorf("%s output needs %s on PATH (librsvg): %w", format, rsvgBinary, err)
	}

	cmd := exec.Command(rsvgBinary, append([]string{"-f", format}, extraArgs...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("convert %s: %w: %s", format, err, stderr.String())
	}
	return out.Bytes(), nil
}
