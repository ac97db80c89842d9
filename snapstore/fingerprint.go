package snapstore

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/hazyhaar/domdrift/treemodel"
)

// Fingerprint hashes the structural skeleton of a document: tag names and
// nesting depth, no attributes or text. Two snapshots with the same
// fingerprint have identical element structure, which lets callers skip a
// full comparison when nothing structural moved. Content-only edits do not
// change the fingerprint.
func Fingerprint(html []byte) string {
	tree, err := treemodel.Parse(string(html))
	if err != nil {
		// Untokenizable input: fall back to a content hash so the value is
		// still stable and unique.
		sum := sha256.Sum256(html)
		return fmt.Sprintf("%x", sum[:16])
	}

	var b strings.Builder
	for _, e := range tree.Elements() {
		fmt.Fprintf(&b, "%d:%s;", e.Depth(), e.Tag())
	}
	sum := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%x", sum[:16])
}
