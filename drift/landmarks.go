package drift

import "github.com/hazyhaar/domdrift/treemodel"

// LandmarkChanges resolves every catalog landmark against both trees and
// reports those whose resolution differs. A landmark resolving identically
// on both sides is unchanged and omitted.
func LandmarkChanges(before, after *treemodel.Tree, landmarks []Landmark) []LandmarkChange {
	var changes []LandmarkChange
	for _, lm := range landmarks {
		b := resolveLandmark(before, lm)
		a := resolveLandmark(after, lm)

		kind := classifyChange(b, a)
		if kind == ChangeUnchanged {
			continue
		}
		changes = append(changes, LandmarkChange{
			Landmark: lm.Name,
			Before:   b,
			After:    a,
			Kind:     kind,
		})
	}
	return changes
}

// resolveLandmark tries the landmark's candidate selectors in priority
// order and returns the first that matches at least one element. Invalid
// selectors are swallowed per candidate (FindFirst soft-fails), so one bad
// entry never sinks the landmark.
func resolveLandmark(t *treemodel.Tree, lm Landmark) MatchOutcome {
	for _, sel := range lm.Selectors {
		e := t.FindFirst(sel)
		if e == nil {
			continue
		}
		snap := e.Snapshot()
		return MatchOutcome{Found: true, Selector: sel, Element: &snap}
	}
	return MatchOutcome{}
}

func classifyChange(before, after MatchOutcome) ChangeKind {
	switch {
	case !before.Found && after.Found:
		return ChangeAdded
	case before.Found && !after.Found:
		return ChangeRemoved
	case before.Found && after.Found && before.Selector != after.Selector:
		return ChangeChanged
	default:
		return ChangeUnchanged
	}
}
