package capture

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// BrowserConfig controls the headless Chrome render path.
type BrowserConfig struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string

	// NavTimeout bounds navigation plus load. Default: 30s.
	NavTimeout time.Duration

	// SettleDelay waits after load so late JS can finish building the DOM.
	// Default: 2s.
	SettleDelay time.Duration

	Logger *slog.Logger
}

func (c *BrowserConfig) defaults() {
	if c.NavTimeout <= 0 {
		c.NavTimeout = 30 * time.Second
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = 2 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Render navigates a stealth page to the URL in a headless Chrome and
// returns the serialized DOM after load. Chrome is launched and torn down
// per call — snapshot capture is an occasional operation, not a daemon.
func Render(ctx context.Context, pageURL string, cfg BrowserConfig) ([]byte, error) {
	cfg.defaults()
	log := cfg.Logger

	wsURL := cfg.RemoteURL
	var lnch *launcher.Launcher
	if wsURL == "" {
		lnch = launcher.New().
			Headless(true).
			Set("disable-blink-features", "AutomationControlled")
		u, err := lnch.Launch()
		if err != nil {
			return nil, fmt.Errorf("capture: launch chrome: %w", err)
		}
		wsURL = u
		log.Debug("capture: launched local chrome", "ws", wsURL)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("capture: connect: %w", err)
	}
	defer func() {
		b.Close()
		if lnch != nil {
			lnch.Cleanup()
		}
	}()

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("capture: create page: %w", err)
	}
	defer page.Close()

	navCtx, cancel := context.WithTimeout(ctx, cfg.NavTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("capture: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		log.Warn("capture: wait load timeout", "url", pageURL, "error", err)
	}
	time.Sleep(cfg.SettleDelay)

	res, err := page.Context(navCtx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return nil, fmt.Errorf("capture: serialize DOM: %w", err)
	}
	return []byte(res.Value.Str()), nil
}
