// Command domdrift compares two markup snapshots and reports selector
// stability, landmark drift, and recommended automation anchors.
//
// Usage:
//
//	domdrift -before old.html -after new.html            # compare two files
//	domdrift -mode release                               # compare stored labels release:before / release:after
//	domdrift -capture https://mail.example.com -label release:before
//	domdrift -serve :8085                                # HTTP upload surface
//	domdrift -mcp                                        # MCP stdio server
//
// Output defaults to a JSON document on stdout; -json and -html write report
// files. Exit status is non-zero on any failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/domdrift/capture"
	"github.com/hazyhaar/domdrift/drift"
	"github.com/hazyhaar/domdrift/httpapi"
	"github.com/hazyhaar/domdrift/report"
	"github.com/hazyhaar/domdrift/snapstore"
)

func main() {
	beforePath := flag.String("before", "", "path to the before snapshot")
	afterPath := flag.String("after", "", "path to the after snapshot")
	mode := flag.String("mode", "", "named comparison: compares stored labels <mode>:before and <mode>:after")
	captureURL := flag.String("capture", "", "capture a snapshot of this URL into the store")
	label := flag.String("label", "", "label for -capture")
	render := flag.Bool("render", false, "capture via headless Chrome instead of plain HTTP")
	serveAddr := flag.String("serve", "", "run the HTTP surface on this address")
	mcpMode := flag.Bool("mcp", false, "run as an MCP stdio server")
	dbPath := flag.String("db", "domdrift.db", "snapshot database path")
	catalogPath := flag.String("catalog", "", "YAML catalog overrides")
	jsonPath := flag.String("json", "", "write the JSON document to this file")
	htmlPath := flag.String("html", "", "write the HTML report to this file")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger := newLogger(*logLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat := drift.DefaultCatalogs()
	if *catalogPath != "" {
		var err error
		if cat, err = drift.LoadCatalogs(*catalogPath); err != nil {
			logger.Error("domdrift: catalog", "error", err)
			os.Exit(1)
		}
	}

	err := run(ctx, logger, options{
		beforePath: *beforePath,
		afterPath:  *afterPath,
		mode:       *mode,
		captureURL: *captureURL,
		label:      *label,
		render:     *render,
		serveAddr:  *serveAddr,
		mcpMode:    *mcpMode,
		dbPath:     *dbPath,
		jsonPath:   *jsonPath,
		htmlPath:   *htmlPath,
		catalogs:   cat,
	})
	if err != nil {
		logger.Error("domdrift: fatal", "error", err)
		os.Exit(1)
	}
}

type options struct {
	beforePath, afterPath string
	mode                  string
	captureURL, label     string
	render                bool
	serveAddr             string
	mcpMode               bool
	dbPath                string
	jsonPath, htmlPath    string
	catalogs              drift.Catalogs
}

func run(ctx context.Context, logger *slog.Logger, opts options) error {
	switch {
	case opts.captureURL != "":
		return runCapture(ctx, logger, opts)
	case opts.serveAddr != "":
		return runServe(ctx, logger, opts)
	case opts.mcpMode:
		return runMCP(ctx, logger, opts)
	case opts.beforePath != "" && opts.afterPath != "":
		return runCompareFiles(logger, opts)
	case opts.mode != "":
		return runCompareStored(ctx, logger, opts)
	}
	fmt.Fprintln(os.Stderr, "usage: domdrift -before <file> -after <file> | -mode <name> | -capture <url> -label <l> | -serve <addr> | -mcp")
	return fmt.Errorf("no operation selected")
}

func runCompareFiles(logger *slog.Logger, opts options) error {
	before, err := readSnapshotFile(opts.beforePath)
	if err != nil {
		return err
	}
	after, err := readSnapshotFile(opts.afterPath)
	if err != nil {
		return err
	}
	res, err := drift.CompareWith(before, after, opts.catalogs)
	if err != nil {
		return err
	}
	logger.Info("domdrift: compared",
		"changed", len(res.ChangedSelectors),
		"anchors", len(res.RecommendedAnchors))
	return emit(res, opts)
}

func runCompareStored(ctx context.Context, logger *slog.Logger, opts options) error {
	store, err := snapstore.Open(opts.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	before, err := store.GetByLabel(ctx, opts.mode+":before")
	if err != nil {
		return fmt.Errorf("before snapshot %q: %w", opts.mode+":before", err)
	}
	after, err := store.GetByLabel(ctx, opts.mode+":after")
	if err != nil {
		return fmt.Errorf("after snapshot %q: %w", opts.mode+":after", err)
	}

	res, err := drift.CompareWith(string(before.HTML), string(after.HTML), opts.catalogs)
	if err != nil {
		return err
	}
	logger.Info("domdrift: compared stored pair",
		"mode", opts.mode, "before", before.ID, "after", after.ID,
		"changed", len(res.ChangedSelectors))
	return emit(res, opts)
}

// emit writes the result to the requested sinks. A sink failure after a
// successful analysis must not lose the result: it falls back to stdout
// JSON before reporting the failure.
func emit(res *drift.Result, opts options) error {
	if opts.jsonPath == "" && opts.htmlPath == "" {
		return report.NewJSONSink(os.Stdout).Write(res)
	}

	var sinkErr error
	if opts.jsonPath != "" {
		if err := report.WriteJSONFile(opts.jsonPath, res); err != nil {
			sinkErr = err
		}
	}
	if opts.htmlPath != "" {
		if err := report.WriteHTMLFile(opts.htmlPath, res); err != nil && sinkErr == nil {
			sinkErr = err
		}
	}
	if sinkErr != nil {
		report.NewJSONSink(os.Stdout).Write(res)
		return sinkErr
	}
	return nil
}

func runCapture(ctx context.Context, logger *slog.Logger, opts options) error {
	if opts.label == "" {
		return fmt.Errorf("-capture requires -label")
	}
	store, err := snapstore.Open(opts.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	capOpts := capture.Options{Mode: capture.ModeHTTP}
	if opts.render {
		capOpts.Mode = capture.ModeBrowser
		capOpts.Browser = capture.BrowserConfig{Logger: logger}
	}
	snap, err := capture.Capture(ctx, opts.captureURL, opts.label, capOpts)
	if err != nil {
		return err
	}
	if err := store.Put(ctx, snap); err != nil {
		return err
	}
	logger.Info("domdrift: captured",
		"id", snap.ID, "label", snap.Label, "url", snap.URL,
		"bytes", len(snap.HTML), "fingerprint", snap.Fingerprint)
	fmt.Println(snap.ID)
	return nil
}

func runServe(ctx context.Context, logger *slog.Logger, opts options) error {
	store, err := snapstore.Open(opts.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := httpapi.New(httpapi.Config{
		Catalogs: opts.catalogs,
		Store:    store,
		Logger:   logger,
	})
	logger.Info("domdrift: http listening", "addr", opts.serveAddr)
	return serveHTTP(ctx, opts.serveAddr, srv)
}

func runMCP(ctx context.Context, logger *slog.Logger, opts options) error {
	store, err := snapstore.Open(opts.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "domdrift",
		Version: "1.0.0",
	}, nil)
	drift.RegisterMCP(srv, opts.catalogs)
	registerStoreTools(srv, store, opts.catalogs)

	logger.Info("domdrift: mcp stdio server starting")
	return srv.Run(ctx, &mcp.StdioTransport{})
}

func readSnapshotFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("snapshot source %s: %w", path, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("snapshot source %s: empty file", path)
	}
	return string(data), nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
