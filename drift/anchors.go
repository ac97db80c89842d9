package drift

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hazyhaar/domdrift/treemodel"
)

// ReliabilityThreshold is the score above which an anchor is considered
// reliable. Any retained candidate scores at least 78 (class base 75 plus a
// minimum term contribution of 3), so a feature with one surviving candidate
// is always reliable.
const ReliabilityThreshold = 60

// maxAlternatives bounds the alternative selectors per anchor.
const maxAlternatives = 3

// termScoreCap bounds the key-term contribution to a candidate's score.
const termScoreCap = 5

type strategyDef struct {
	name   Strategy
	base   int
	weight int
}

// Strategy table: base score reflects intrinsic durability of the selector
// form, weight amplifies key-term evidence (role carries more semantic
// signal than raw attributes).
var strategies = []strategyDef{
	{StrategyRole, 85, 5},
	{StrategyID, 90, 3},
	{StrategyData, 85, 3},
	{StrategyClass, 75, 3},
}

// RecommendAnchors produces one ranked anchor recommendation per catalog
// feature. Candidates come from four selector-generation strategies over the
// before-tree; a candidate survives only when its key-term evidence is
// positive and the correspondence matcher finds it a counterpart in the
// after-tree pool of the same strategy.
func RecommendAnchors(before, after *treemodel.Tree, features []Feature) map[string]Anchor {
	anchors := make(map[string]Anchor, len(features))
	for _, f := range features {
		anchors[f.Name] = recommendFeature(before, after, f)
	}
	return anchors
}

func recommendFeature(before, after *treemodel.Tree, f Feature) Anchor {
	var cands []Candidate
	for _, d := range strategies {
		bpool := strategyPool(before, d.name, f.Role)
		if len(bpool) == 0 {
			continue
		}
		apool := strategyPool(after, d.name, f.Role)
		for _, e := range bpool {
			ts := termScore(e, f.KeyTerms)
			if ts == 0 {
				continue
			}
			if Match(e, apool) == nil {
				continue
			}
			sel := strategySelector(e, d.name, f.Role)
			if sel == "" {
				continue
			}
			score := d.base + ts*d.weight
			if score > 100 {
				score = 100
			}
			cands = append(cands, Candidate{Selector: sel, Score: score, Strategy: d.name})
		}
	}

	// Stable sort keeps document order among equal scores, so ranking is
	// deterministic across runs.
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })

	anchor := Anchor{Feature: f.Name, Alternatives: []string{}}
	seen := map[string]bool{}
	for _, c := range cands {
		if seen[c.Selector] {
			continue
		}
		seen[c.Selector] = true
		if anchor.Primary == "" {
			anchor.Primary = c.Selector
			anchor.Score = c.Score
			anchor.Strategy = c.Strategy
			continue
		}
		if len(anchor.Alternatives) == maxAlternatives {
			break
		}
		anchor.Alternatives = append(anchor.Alternatives, c.Selector)
	}
	anchor.Reliable = anchor.Primary != "" && anchor.Score > ReliabilityThreshold
	return anchor
}

// strategyPool selects the before/after element pool a strategy draws from.
func strategyPool(t *treemodel.Tree, strat Strategy, role string) []*treemodel.Element {
	switch strat {
	case StrategyRole:
		if role == "" {
			return nil
		}
		return t.FindAll(`[role="` + role + `"]`)
	case StrategyID:
		return t.FindAll("[id]")
	case StrategyData:
		return t.ElementsWithAttrPrefix("data-")
	case StrategyClass:
		return t.FindAll("[class]")
	}
	return nil
}

// strategySelector renders the selector text for one pool element.
func strategySelector(e *treemodel.Element, strat Strategy, role string) string {
	switch strat {
	case StrategyRole:
		return roleSelector(e, role)
	case StrategyID:
		if id, ok := e.Attr("id"); ok && id != "" {
			return "#" + id
		}
	case StrategyData:
		for _, name := range e.AttrNames() {
			if strings.HasPrefix(name, "data-") {
				v, _ := e.Attr(name)
				return `[` + name + `="` + v + `"]`
			}
		}
	case StrategyClass:
		if cls, ok := e.Attr("class"); ok {
			if tok := longestClassToken(cls); tok != "" {
				return "." + tok
			}
		}
	}
	return ""
}

// roleSelector qualifies the role selector with the element's tag and, when
// available, its most specific class token or type position.
func roleSelector(e *treemodel.Element, role string) string {
	sel := e.Tag() + `[role="` + role + `"]`
	if cls, ok := e.Attr("class"); ok {
		if tok := longestClassToken(cls); tok != "" {
			return sel + "." + tok
		}
	}
	if n := e.NthOfType(); n > 1 {
		return sel + fmt.Sprintf(":nth-of-type(%d)", n)
	}
	return sel
}

// longestClassToken picks the longest class token for specificity.
func longestClassToken(class string) string {
	best := ""
	for _, tok := range strings.Fields(class) {
		if len(tok) > len(best) {
			best = tok
		}
	}
	return best
}

// termScore measures key-term evidence on an element: +1 per term appearing
// case-insensitively in its text, +2 per term appearing in any attribute
// value, capped at termScoreCap.
func termScore(e *treemodel.Element, terms []string) int {
	score := 0
	text := strings.ToLower(e.Text())
	attrs := e.Attrs()
	for _, term := range terms {
		lt := strings.ToLower(term)
		if lt == "" {
			continue
		}
		if strings.Contains(text, lt) {
			score++
		}
		for _, v := range attrs {
			if strings.Contains(strings.ToLower(v), lt) {
				score += 2
				break
			}
		}
	}
	if score > termScoreCap {
		score = termScoreCap
	}
	return score
}
