package render

import (
	"bytes"
	"os/exec"

	"github.com/matzehuels/featureviewer/pkg/capability"
	"github.com/matzehuels/featureviewer/pkg/errors"
)

const (
	rsvgBinary = "rsvg-convert"
	rsvgHint   = "install librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux)"
)

// RSVGRequirement is the capability needed by ToPDF.
func RSVGRequirement() capability.Requirement {
	return capability.Binary(rsvgBinary, rsvgHint)
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if err := capability.Probe(RSVGRequirement()); err != nil {
		return nil, err
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command(rsvgBinary, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
