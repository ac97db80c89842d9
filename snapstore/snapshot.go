package snapstore

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one captured markup document representing a UI state at a
// point in time.
type Snapshot struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	URL         string `json:"url"`
	HTML        []byte `json:"html,omitempty"`
	HTMLHash    string `json:"html_hash"`
	Fingerprint string `json:"fingerprint"`
	CreatedAt   int64  `json:"created_at"` // epoch milliseconds
}

// NewSnapshot builds a Snapshot from raw markup, computing its content hash
// and structural fingerprint.
func NewSnapshot(label, url string, html []byte) Snapshot {
	sum := sha256.Sum256(html)
	return Snapshot{
		ID:          uuid.NewString(),
		Label:       label,
		URL:         url,
		HTML:        html,
		HTMLHash:    fmt.Sprintf("%x", sum),
		Fingerprint: Fingerprint(html),
		CreatedAt:   time.Now().UnixMilli(),
	}
}
