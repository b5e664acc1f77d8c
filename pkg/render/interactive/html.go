package interactive

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/matzehuels/featureviewer/pkg/errors"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .Title}}{{.Title}}{{else}}feature map{{end}}</title>
<style>
  body { margin: 16px; font-family: arial, sans-serif; }
  .fv-plot { position: relative; display: inline-block; }
  .fv-tooltip { position: absolute; pointer-events: none; display: none; background: #fff; border: 1px solid #888; padding: 4px 6px; font-size: 12px; }
</style>
</head>
<body>
<div class="fv-plot" id="{{.DOMID}}">
  <canvas width="{{.Width}}" height="{{.Height}}"></canvas>
  <div class="fv-tooltip"></div>
</div>
<script>{{.Runtime}}</script>
<script>featureViewer.render(document.getElementById({{.DOMID}}), {{.Document}});</script>
</body>
</html>
`))

type page struct {
	Title    string
	DOMID    string
	Width    int
	Height   int
	Runtime  template.JS
	Document template.JS
}

// RenderHTML renders doc as a self-contained HTML page. runtime is the
// canvas script, usually Backend.Runtime.
func RenderHTML(doc *Document, runtime []byte) ([]byte, error) {
	if len(runtime) == 0 {
		return nil, errors.MissingDependency("interactive canvas runtime is empty")
	}
	data, err := RenderJSON(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, page{
		Title:    doc.Title,
		DOMID:    doc.DOMID(),
		Width:    doc.Width,
		Height:   doc.Height,
		Runtime:  template.JS(runtime),
		Document: template.JS(data),
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render html")
	}
	return buf.Bytes(), nil
}

// RenderJSON encodes doc.
func RenderJSON(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	return data, nil
}
