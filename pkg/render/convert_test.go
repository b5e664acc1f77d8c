package render

import (
	"os/exec"
	"testing"

	"github.com/matzehuels/featureviewer/pkg/errors"
)

func TestToPDFRequiresRSVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"></svg>`)

	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		_, err := ToPDF(svg)
		if !errors.IsMissingDependency(err) {
			t.Errorf("ToPDF() without rsvg-convert error = %v, want MISSING_DEPENDENCY", err)
		}
		return
	}

	pdf, err := ToPDF(svg)
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		t.Errorf("ToPDF() output does not look like a PDF: %q", pdf[:min(len(pdf), 8)])
	}
}

func TestRSVGRequirement(t *testing.T) {
	r := RSVGRequirement()
	if r.Name != "rsvg-convert" || r.Hint == "" || r.Check == nil {
		t.Errorf("RSVGRequirement() = %+v", r)
	}
}
