package interactive

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/featureviewer/pkg/errors"
)

func TestRenderHTML(t *testing.T) {
	b := New()
	in := testInput()
	in.Record.Name = "demo </script>"
	doc, err := b.Build(in)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	runtime, err := b.Runtime()
	if err != nil {
		t.Fatalf("Runtime() error = %v", err)
	}

	out, err := RenderHTML(doc, runtime)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	page := string(out)

	for _, want := range []string{
		"featureViewer.render",
		`id="` + doc.DOMID() + `"`,
		`<canvas width="800" height="200">`,
		"<title>demo &lt;/script&gt;</title>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Count(page, "</script>") != 2 {
		t.Error("document data must not close the script element")
	}

	if _, err := RenderHTML(doc, nil); !errors.IsMissingDependency(err) {
		t.Errorf("RenderHTML(no runtime) error = %v, want MISSING_DEPENDENCY", err)
	}
}

func TestRenderJSON(t *testing.T) {
	doc, err := New().Build(testInput())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	data, err := RenderJSON(doc)
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var back Document
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.ID != doc.ID || back.YRange != doc.YRange || back.Patches.Source.Len() != 3 {
		t.Errorf("decoded document = %+v", back)
	}
	if back.Labels == nil || back.Labels.Source.Len() != 2 {
		t.Error("label layer lost in round trip")
	}
}
