package drift

import (
	"sort"

	"github.com/hazyhaar/domdrift/treemodel"
)

// AttributeStabilities computes, for each attribute in catalog order, the
// overlap between the distinct value sets found in the two trees. Duplicate
// values collapse; an attribute absent from the before-tree scores 0.
func AttributeStabilities(before, after *treemodel.Tree, attributes []string) []AttributeStability {
	out := make([]AttributeStability, 0, len(attributes))
	for _, attr := range attributes {
		bvals := attributeValues(before, attr)
		avals := attributeValues(after, attr)

		var stable []string
		for v := range bvals {
			if _, ok := avals[v]; ok {
				stable = append(stable, v)
			}
		}
		sort.Strings(stable)

		score := 0.0
		if len(bvals) > 0 {
			score = float64(len(stable)) / float64(len(bvals)) * 100
		}

		out = append(out, AttributeStability{
			Attribute:      attr,
			BeforeCount:    len(bvals),
			AfterCount:     len(avals),
			CommonCount:    len(stable),
			StabilityScore: score,
			StableValues:   stable,
		})
	}
	return out
}

// attributeValues collects the set of distinct values of one attribute
// across all elements of a tree.
func attributeValues(t *treemodel.Tree, attr string) map[string]struct{} {
	vals := map[string]struct{}{}
	for _, e := range t.Elements() {
		if v, ok := e.Attr(attr); ok {
			vals[v] = struct{}{}
		}
	}
	return vals
}
