package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hazyhaar/domdrift/drift"
)

func sampleResult(t *testing.T) *drift.Result {
	t.Helper()
	res, err := drift.Compare(
		`<body><div id="list" role="list" class="message-list">inbox message</div><div role="toolbar">actions</div></body>`,
		`<body><div id="list" role="list" class="message-list">inbox message</div></body>`,
	)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestJSONSink_FieldNames(t *testing.T) {
	// The JSON document is the machine-readable contract; field names are
	// pinned here so a rename shows up as a test failure, not a consumer bug.
	var buf bytes.Buffer
	if err := NewJSONSink(&buf).Write(sampleResult(t)); err != nil {
		t.Fatal(err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"stableAttributes", "changedSelectors", "recommendedAnchors"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
	for _, field := range []string{"attributeName", "beforeCount", "afterCount", "commonCount", "stabilityScorePercent", "stableValues", "changeKind", "landmarkName"} {
		if !strings.Contains(buf.String(), `"`+field+`"`) {
			t.Errorf("missing field %q in document", field)
		}
	}
}

func TestSnippet(t *testing.T) {
	res := sampleResult(t)
	snip := Snippet(res)
	if !strings.Contains(snip, "export const anchors") {
		t.Errorf("snippet header missing:\n%s", snip)
	}
	if !strings.Contains(snip, `"MessageList"`) {
		t.Errorf("MessageList missing from snippet:\n%s", snip)
	}
	for _, field := range []string{"primary:", "alternatives:", "stabilityScore:", "selectorType:"} {
		if !strings.Contains(snip, field) {
			t.Errorf("snippet missing %q", field)
		}
	}
	// Deterministic output.
	if Snippet(res) != snip {
		t.Error("snippet not deterministic")
	}
}

func TestHTMLSink(t *testing.T) {
	var buf bytes.Buffer
	if err := NewHTMLSink(&buf).Write(sampleResult(t)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Attribute stability", "Landmark changes", "Recommended anchors", "MainToolbar", "removed"} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML report missing %q", want)
		}
	}
}
