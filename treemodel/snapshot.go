package treemodel

// ElementSnapshot is a value copy of one matched element, captured for
// comparison and report display. It is never mutated after capture.
type ElementSnapshot struct {
	Tag        string            `json:"tag"`
	Attributes map[string]string `json:"attributes"`
	ChildCount int               `json:"childCount"`
	TextLength int               `json:"textLength"`
	Path       string            `json:"path"`
}

// Snapshot captures the element's descriptor.
func (e *Element) Snapshot() ElementSnapshot {
	return ElementSnapshot{
		Tag:        e.Tag(),
		Attributes: e.Attrs(),
		ChildCount: e.ChildCount(),
		TextLength: len(e.Text()),
		Path:       e.Path(),
	}
}
