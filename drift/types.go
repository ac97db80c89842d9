package drift

import "github.com/hazyhaar/domdrift/treemodel"

// AttributeStability reports how much of an attribute's value set survived
// between the two snapshots.
type AttributeStability struct {
	Attribute      string   `json:"attributeName"`
	BeforeCount    int      `json:"beforeCount"`
	AfterCount     int      `json:"afterCount"`
	CommonCount    int      `json:"commonCount"`
	StabilityScore float64  `json:"stabilityScorePercent"`
	StableValues   []string `json:"stableValues"`
}

// ChangeKind classifies a landmark's transition between snapshots.
type ChangeKind string

const (
	ChangeAdded     ChangeKind = "added"
	ChangeRemoved   ChangeKind = "removed"
	ChangeChanged   ChangeKind = "changed"
	ChangeUnchanged ChangeKind = "unchanged"
)

// MatchOutcome is the result of resolving a landmark against one tree.
type MatchOutcome struct {
	Found    bool                       `json:"found"`
	Selector string                     `json:"selectorUsed,omitempty"`
	Element  *treemodel.ElementSnapshot `json:"elementSnapshot,omitempty"`
}

// LandmarkChange records a landmark whose resolution differs between the
// before and after trees. Unchanged landmarks are not reported.
type LandmarkChange struct {
	Landmark string       `json:"landmarkName"`
	Before   MatchOutcome `json:"beforeMatch"`
	After    MatchOutcome `json:"afterMatch"`
	Kind     ChangeKind   `json:"changeKind"`
}

// Strategy names a selector-generation strategy.
type Strategy string

const (
	StrategyRole  Strategy = "role-based"
	StrategyID    Strategy = "id-based"
	StrategyData  Strategy = "data-based"
	StrategyClass Strategy = "class-based"
)

// Candidate is one scored selector produced for a feature.
type Candidate struct {
	Selector string   `json:"selectorText"`
	Score    int      `json:"stabilityScore"`
	Strategy Strategy `json:"strategy"`
}

// Anchor is the ranked selector recommendation for one feature.
type Anchor struct {
	Feature      string   `json:"featureName"`
	Primary      string   `json:"primarySelector,omitempty"`
	Alternatives []string `json:"alternativeSelectors"`
	Score        int      `json:"stabilityScore"`
	Strategy     Strategy `json:"strategyUsed,omitempty"`
	Reliable     bool     `json:"isReliable"`
}

// Result is the root aggregate of one comparison. It is created fresh per
// invocation and never merged with a prior result.
type Result struct {
	StableAttributes   map[string]AttributeStability `json:"stableAttributes"`
	ChangedSelectors   []LandmarkChange              `json:"changedSelectors"`
	RecommendedAnchors map[string]Anchor             `json:"recommendedAnchors"`
}
