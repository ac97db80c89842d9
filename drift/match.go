package drift

import (
	"strings"

	"github.com/hazyhaar/domdrift/treemodel"
)

// Match finds the most plausible counterpart of a before-tree element among
// a pool of after-tree candidates. There is no identifier guaranteed stable
// across versions, so correspondence is inferred from weighted similarity:
//
//	+2 per attribute whose value is byte-identical on the candidate
//	+1 per shared attribute whose candidate value contains the before value
//	+1 when tag names match exactly
//	+2 when both occupy the same element-sibling index
//
// The strictly highest score wins; ties resolve to the first candidate in
// document order. An empty pool, or a pool where nothing scores above zero,
// returns nil rather than a spurious low-confidence pick.
//
// The weights and the substring tolerance are a fixed contract. Matching is
// deliberately greedy, not a min-cost assignment; an inner scan per candidate
// makes callers quadratic in pool size, which is acceptable for bounded
// catalogs.
func Match(before *treemodel.Element, pool []*treemodel.Element) *treemodel.Element {
	var best *treemodel.Element
	bestScore := 0
	for _, cand := range pool {
		if s := matchScore(before, cand); s > bestScore {
			bestScore = s
			best = cand
		}
	}
	return best
}

func matchScore(before, cand *treemodel.Element) int {
	score := 0
	for _, name := range before.AttrNames() {
		bval, _ := before.Attr(name)
		cval, ok := cand.Attr(name)
		if !ok {
			continue
		}
		if cval == bval {
			score += 2
		} else if strings.Contains(cval, bval) {
			score++
		}
	}
	if before.Tag() == cand.Tag() {
		score++
	}
	if before.SiblingIndex() == cand.SiblingIndex() {
		score += 2
	}
	return score
}
