// Package drift is the DOM-diff and selector-stability engine. It compares
// two snapshots of an application's rendered markup and reports which
// structural identifiers stayed stable, which landmarks drifted, and which
// selectors are safe anchors for future automation.
//
// Every comparison is stateless: two trees in, one Result out. Catalogs are
// plain data passed into each call, and all heuristic weights are fixed
// contracts covered by tests — not tuning knobs.
package drift

import (
	"fmt"

	"github.com/hazyhaar/domdrift/treemodel"
)

// Compare parses both markup snapshots and analyses them with the default
// catalogs. It fails only when one of the inputs cannot be parsed at all.
func Compare(beforeMarkup, afterMarkup string) (*Result, error) {
	return CompareWith(beforeMarkup, afterMarkup, DefaultCatalogs())
}

// CompareWith is Compare with explicit catalogs.
func CompareWith(beforeMarkup, afterMarkup string, cat Catalogs) (*Result, error) {
	before, err := treemodel.Parse(beforeMarkup)
	if err != nil {
		return nil, fmt.Errorf("drift: parse before snapshot: %w", err)
	}
	after, err := treemodel.Parse(afterMarkup)
	if err != nil {
		return nil, fmt.Errorf("drift: parse after snapshot: %w", err)
	}
	return CompareTrees(before, after, cat), nil
}

// CompareTrees runs the three analyzers over two already-parsed trees.
// It cannot fail: per-selector and per-element problems degrade to empty or
// zero-score outcomes, because partial evidence is still useful.
func CompareTrees(before, after *treemodel.Tree, cat Catalogs) *Result {
	stabilities := AttributeStabilities(before, after, cat.Attributes)
	byAttr := make(map[string]AttributeStability, len(stabilities))
	for _, s := range stabilities {
		byAttr[s.Attribute] = s
	}

	return &Result{
		StableAttributes:   byAttr,
		ChangedSelectors:   LandmarkChanges(before, after, cat.Landmarks),
		RecommendedAnchors: RecommendAnchors(before, after, cat.Features),
	}
}
