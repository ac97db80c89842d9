package drift

import (
	"math"
	"testing"
)

func TestAttributeStabilities_Overlap(t *testing.T) {
	before := parseTree(t, `<body>
		<div id="a"></div>
		<div id="b"></div>
		<div id="c"></div>
		<span class="x"></span>
		<span class="x"></span>
	</body>`)
	after := parseTree(t, `<body>
		<div id="a"></div>
		<div id="c"></div>
		<div id="d"></div>
	</body>`)

	recs := AttributeStabilities(before, after, []string{"id", "class"})
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}

	id := recs[0]
	if id.BeforeCount != 3 || id.AfterCount != 3 || id.CommonCount != 2 {
		t.Errorf("id counts = %d/%d/%d, want 3/3/2", id.BeforeCount, id.AfterCount, id.CommonCount)
	}
	if math.Abs(id.StabilityScore-66.666) > 0.01 {
		t.Errorf("id score = %f", id.StabilityScore)
	}
	if len(id.StableValues) != 2 || id.StableValues[0] != "a" || id.StableValues[1] != "c" {
		t.Errorf("stable values = %v, want [a c]", id.StableValues)
	}

	// Duplicate class values collapse into one set entry.
	cls := recs[1]
	if cls.BeforeCount != 1 {
		t.Errorf("class before count = %d, want 1", cls.BeforeCount)
	}
}

func TestAttributeStabilities_AbsentAttribute(t *testing.T) {
	// WHAT: An attribute missing from the before-tree scores 0.
	// WHY: Division by a zero before-count must not yield NaN or an error.
	before := parseTree(t, `<body><div></div></body>`)
	after := parseTree(t, `<body><div data-testid="x"></div></body>`)

	recs := AttributeStabilities(before, after, []string{"data-testid"})
	r := recs[0]
	if r.StabilityScore != 0 || math.IsNaN(r.StabilityScore) {
		t.Errorf("score = %f, want 0", r.StabilityScore)
	}
	if r.BeforeCount != 0 || r.AfterCount != 1 {
		t.Errorf("counts = %d/%d, want 0/1", r.BeforeCount, r.AfterCount)
	}
}

func TestAttributeStabilities_Invariants(t *testing.T) {
	before := parseTree(t, `<body><div id="a" class="p q" role="main" aria-label="Main"></div><div id="b"></div></body>`)
	after := parseTree(t, `<body><div id="a" role="main"></div></body>`)

	for _, r := range AttributeStabilities(before, after, DefaultCatalogs().Attributes) {
		if r.StabilityScore < 0 || r.StabilityScore > 100 {
			t.Errorf("%s: score %f out of range", r.Attribute, r.StabilityScore)
		}
		if r.CommonCount > r.BeforeCount || r.CommonCount > r.AfterCount {
			t.Errorf("%s: common %d exceeds min(%d,%d)", r.Attribute, r.CommonCount, r.BeforeCount, r.AfterCount)
		}
	}
}
