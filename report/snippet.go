package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hazyhaar/domdrift/drift"
)

// Snippet renders the recommended anchors as a ready-to-paste JavaScript
// module for automation code. Features come out sorted by name so the
// snippet is stable across runs.
func Snippet(res *drift.Result) string {
	names := make([]string, 0, len(res.RecommendedAnchors))
	for name := range res.RecommendedAnchors {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("// Selector anchors verified against two snapshots.\n")
	b.WriteString("export const anchors = {\n")
	for _, name := range names {
		a := res.RecommendedAnchors[name]
		if a.Primary == "" {
			continue
		}
		fmt.Fprintf(&b, "  %q: {\n", name)
		fmt.Fprintf(&b, "    primary: %q,\n", a.Primary)
		fmt.Fprintf(&b, "    alternatives: [%s],\n", quoteList(a.Alternatives))
		fmt.Fprintf(&b, "    stabilityScore: %d,\n", a.Score)
		fmt.Fprintf(&b, "    selectorType: %q,\n", string(a.Strategy))
		b.WriteString("  },\n")
	}
	b.WriteString("};\n")
	return b.String()
}

func quoteList(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
