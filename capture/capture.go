package capture

import (
	"context"
	"fmt"

	"github.com/hazyhaar/domdrift/snapstore"
)

// Mode selects the acquisition path.
type Mode int

const (
	ModeHTTP    Mode = iota // plain GET, no JS
	ModeBrowser             // headless Chrome render
)

// Options for a single capture.
type Options struct {
	Mode    Mode
	Browser BrowserConfig
	Fetcher *Fetcher // nil = NewFetcher() defaults
}

// Capture acquires the page at url and packages it as a store-ready
// snapshot under the given label.
func Capture(ctx context.Context, url, label string, opts Options) (snapstore.Snapshot, error) {
	var (
		html []byte
		err  error
	)
	switch opts.Mode {
	case ModeBrowser:
		html, err = Render(ctx, url, opts.Browser)
	default:
		f := opts.Fetcher
		if f == nil {
			f = NewFetcher()
		}
		html, err = f.Fetch(ctx, url)
	}
	if err != nil {
		return snapstore.Snapshot{}, fmt.Errorf("capture %s: %w", url, err)
	}
	return snapstore.NewSnapshot(label, url, html), nil
}
