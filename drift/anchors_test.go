package drift

import (
	"strings"
	"testing"
)

func TestRecommendAnchors_IdAndRoleScenario(t *testing.T) {
	before := parseTree(t, `<body><div id="list" role="list">Inbox</div></body>`)
	after := parseTree(t, `<body><div id="list" role="list" data-testid="list">Inbox</div></body>`)

	anchors := RecommendAnchors(before, after, DefaultCatalogs().Features)
	a, ok := anchors["MessageList"]
	if !ok {
		t.Fatal("no MessageList anchor")
	}
	if a.Primary == "" {
		t.Fatal("no primary selector")
	}
	if a.Strategy != StrategyRole && a.Strategy != StrategyID {
		t.Errorf("strategy = %s, want role-based or id-based", a.Strategy)
	}
	if a.Score < 85 {
		t.Errorf("score = %d, want >= 85", a.Score)
	}
	if !a.Reliable {
		t.Error("anchor should be reliable")
	}
	// The id-based form must rank among primary or alternatives.
	if a.Primary != "#list" && !containsString(a.Alternatives, "#list") {
		t.Errorf("#list missing from recommendation: %+v", a)
	}
}

func TestRecommendAnchors_AlternativesCapped(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<body>")
	for _, s := range []string{"one", "two", "three", "four", "five"} {
		sb.WriteString(`<div id="item-` + s + `" class="item-` + s + `">item</div>`)
	}
	sb.WriteString("</body>")
	tree := parseTree(t, sb.String())

	anchors := RecommendAnchors(tree, tree, []Feature{{Name: "Item", KeyTerms: []string{"item"}}})
	a := anchors["Item"]
	if a.Primary == "" {
		t.Fatal("no primary selector")
	}
	if len(a.Alternatives) > 3 {
		t.Errorf("alternatives = %d, want <= 3", len(a.Alternatives))
	}
	if containsString(a.Alternatives, a.Primary) {
		t.Error("primary repeated in alternatives")
	}
}

func TestRecommendAnchors_NoCandidates(t *testing.T) {
	before := parseTree(t, `<body><div id="x">unrelated</div></body>`)
	after := parseTree(t, `<body><div id="x">unrelated</div></body>`)

	anchors := RecommendAnchors(before, after, []Feature{{Name: "Ghost", KeyTerms: []string{"zzzz"}}})
	a := anchors["Ghost"]
	if a.Primary != "" || a.Score != 0 || a.Reliable {
		t.Errorf("empty feature anchor = %+v", a)
	}
	if len(a.Alternatives) != 0 {
		t.Errorf("alternatives = %v, want empty", a.Alternatives)
	}
}

func TestRecommendAnchors_RequiresCounterpart(t *testing.T) {
	// WHAT: A candidate with no correspondence in the after-tree pool is
	// dropped even with strong key-term evidence.
	before := parseTree(t, `<body><div id="item">item</div></body>`)
	after := parseTree(t, `<body><p>nothing here</p></body>`)

	anchors := RecommendAnchors(before, after, []Feature{{Name: "Item", KeyTerms: []string{"item"}}})
	if a := anchors["Item"]; a.Primary != "" {
		t.Errorf("anchor = %+v, want no primary", a)
	}
}

func TestTermScore(t *testing.T) {
	tree := parseTree(t, `<body><div aria-label="Compose mail" class="compose-btn">Compose</div></body>`)
	e := tree.FindFirst("div")

	// "compose" in text (+1) and in attributes (+2).
	if got := termScore(e, []string{"compose"}); got != 3 {
		t.Errorf("termScore = %d, want 3", got)
	}
	// Three such terms would reach 9; the cap holds it at 5.
	tree2 := parseTree(t, `<body><div data-testid="alpha beta gamma">alpha beta gamma</div></body>`)
	e2 := tree2.FindFirst("div")
	if got := termScore(e2, []string{"alpha", "beta", "gamma"}); got != 5 {
		t.Errorf("capped termScore = %d, want 5", got)
	}
	if got := termScore(e, nil); got != 0 {
		t.Errorf("termScore with no terms = %d, want 0", got)
	}
}

func TestStrategySelectors(t *testing.T) {
	tree := parseTree(t, `<body><div role="list" class="mail list-main" data-kind="messages" id="lst">x</div></body>`)
	e := tree.FindFirst("div")

	cases := []struct {
		strat Strategy
		want  string
	}{
		{StrategyRole, `div[role="list"].list-main`},
		{StrategyID, "#lst"},
		{StrategyData, `[data-kind="messages"]`},
		{StrategyClass, ".list-main"},
	}
	for _, c := range cases {
		if got := strategySelector(e, c.strat, "list"); got != c.want {
			t.Errorf("%s selector = %q, want %q", c.strat, got, c.want)
		}
	}
}

func containsString(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
