package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"sort"

	"github.com/hazyhaar/domdrift/drift"
)

// HTMLSink renders the result into a single self-contained HTML page with
// the three analysis tables and the integration snippet.
type HTMLSink struct {
	w io.Writer
}

// NewHTMLSink writes HTML to w. If w is nil, os.Stdout is used.
func NewHTMLSink(w io.Writer) *HTMLSink {
	if w == nil {
		w = os.Stdout
	}
	return &HTMLSink{w: w}
}

func (s *HTMLSink) Write(res *drift.Result) error {
	data := htmlData{
		Attributes: sortedAttributes(res),
		Changes:    res.ChangedSelectors,
		Anchors:    sortedAnchors(res),
		Snippet:    Snippet(res),
	}
	if err := reportTmpl.Execute(s.w, data); err != nil {
		return fmt.Errorf("report: render html: %w", err)
	}
	return nil
}

// WriteHTMLFile renders the HTML report to a file path.
func WriteHTMLFile(path string, res *drift.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()
	if err := NewHTMLSink(f).Write(res); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close %s: %w", path, err)
	}
	return nil
}

type htmlData struct {
	Attributes []drift.AttributeStability
	Changes    []drift.LandmarkChange
	Anchors    []drift.Anchor
	Snippet    string
}

func sortedAttributes(res *drift.Result) []drift.AttributeStability {
	out := make([]drift.AttributeStability, 0, len(res.StableAttributes))
	for _, rec := range res.StableAttributes {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Attribute < out[j].Attribute })
	return out
}

func sortedAnchors(res *drift.Result) []drift.Anchor {
	out := make([]drift.Anchor, 0, len(res.RecommendedAnchors))
	for _, a := range res.RecommendedAnchors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Feature < out[j].Feature })
	return out
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>domdrift report</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f0f0f0; }
.ok { color: #15803d; }
.warn { color: #b45309; }
.bad { color: #b91c1c; }
pre { background: #f6f6f6; padding: 1rem; overflow-x: auto; }
</style>
</head>
<body>
<h1>Selector stability report</h1>

<h2>Attribute stability</h2>
<table>
<tr><th>Attribute</th><th>Before</th><th>After</th><th>Common</th><th>Stability</th></tr>
{{range .Attributes}}
<tr>
  <td><code>{{.Attribute}}</code></td>
  <td>{{.BeforeCount}}</td>
  <td>{{.AfterCount}}</td>
  <td>{{.CommonCount}}</td>
  <td>{{printf "%.1f%%" .StabilityScore}}</td>
</tr>
{{end}}
</table>

<h2>Landmark changes</h2>
{{if .Changes}}
<table>
<tr><th>Landmark</th><th>Change</th><th>Before selector</th><th>After selector</th></tr>
{{range .Changes}}
<tr>
  <td>{{.Landmark}}</td>
  <td class="{{if eq .Kind "removed"}}bad{{else if eq .Kind "changed"}}warn{{else}}ok{{end}}">{{.Kind}}</td>
  <td><code>{{.Before.Selector}}</code></td>
  <td><code>{{.After.Selector}}</code></td>
</tr>
{{end}}
</table>
{{else}}
<p class="ok">No landmark drift detected.</p>
{{end}}

<h2>Recommended anchors</h2>
<table>
<tr><th>Feature</th><th>Primary selector</th><th>Alternatives</th><th>Score</th><th>Strategy</th><th>Reliable</th></tr>
{{range .Anchors}}
<tr>
  <td>{{.Feature}}</td>
  <td><code>{{.Primary}}</code></td>
  <td>{{range .Alternatives}}<code>{{.}}</code> {{end}}</td>
  <td>{{.Score}}</td>
  <td>{{.Strategy}}</td>
  <td class="{{if .Reliable}}ok{{else}}bad{{end}}">{{.Reliable}}</td>
</tr>
{{end}}
</table>

<h2>Integration snippet</h2>
<pre>{{.Snippet}}</pre>
</body>
</html>
`))
