package drift

import (
	"testing"

	"github.com/hazyhaar/domdrift/treemodel"
)

func parseTree(t *testing.T, markup string) *treemodel.Tree {
	t.Helper()
	tree, err := treemodel.Parse(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return tree
}

func TestMatch_PrefersIdenticalAttributes(t *testing.T) {
	before := parseTree(t, `<body><div id="send" class="btn">Send</div></body>`)
	after := parseTree(t, `<body>
		<span class="btn">Other</span>
		<div id="send" class="btn">Send</div>
	</body>`)

	b := before.FindFirst("#send")
	got := Match(b, after.FindAll("body *"))
	if got == nil {
		t.Fatal("Match = nil")
	}
	if id, _ := got.Attr("id"); id != "send" {
		t.Errorf("matched id = %q, want send", id)
	}
}

func TestMatch_SubstringTolerance(t *testing.T) {
	// WHAT: A candidate whose attribute value contains the before value as a
	// substring still accumulates evidence.
	// WHY: Versioned/suffixed values ("btn" -> "btn btn-v2") are common drift.
	before := parseTree(t, `<body><div class="btn">Send</div></body>`)
	after := parseTree(t, `<body><div class="btn btn-v2">Send</div><p>x</p></body>`)

	b := before.FindFirst("div")
	got := Match(b, after.FindAll("body *"))
	if got == nil || got.Tag() != "div" {
		t.Fatalf("Match = %v, want the suffixed div", got)
	}
}

func TestMatch_TieBreaksToDocumentOrder(t *testing.T) {
	before := parseTree(t, `<body><section><div class="row">a</div></section></body>`)
	after := parseTree(t, `<body><section><div class="row">a</div></section><section><div class="row">a</div></section></body>`)

	b := before.FindFirst(".row")
	pool := after.FindAll(".row")

	// Both candidates carry identical attributes, tag, and sibling index, so
	// their scores tie exactly; the first in document order must win.
	first := Match(b, pool)
	second := Match(b, pool)
	if first != second {
		t.Fatal("Match is not deterministic across runs")
	}
	if first == nil || first.Index() != pool[0].Index() {
		t.Fatalf("tie resolved to index %v, want first candidate", first)
	}
}

func TestMatch_AllZeroPoolYieldsNoMatch(t *testing.T) {
	// WHAT: Zero-score pools return nil, never a spurious pick.
	before := parseTree(t, `<body><div id="a">x</div></body>`)
	after := parseTree(t, `<body><p>y</p><span>z</span></body>`)

	b := before.FindFirst("#a")
	pool := []*treemodel.Element{after.FindAll("span")[0]} // tag differs, sibling index differs, no shared attrs
	if got := Match(b, pool); got != nil {
		t.Fatalf("Match = %v, want nil", got)
	}
	if got := Match(b, nil); got != nil {
		t.Fatalf("Match on empty pool = %v, want nil", got)
	}
}

func TestMatchScore_Weights(t *testing.T) {
	before := parseTree(t, `<body><div id="send" class="btn">Send</div></body>`)
	after := parseTree(t, `<body><div id="send" class="btn">Send</div></body>`)

	b := before.FindFirst("div")
	c := after.FindFirst("div")
	// id identical (+2), class identical (+2), tag (+1), sibling index (+2).
	if got := matchScore(b, c); got != 7 {
		t.Errorf("matchScore = %d, want 7", got)
	}
}
