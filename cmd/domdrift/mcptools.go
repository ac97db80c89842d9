package main

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domdrift/capture"
	"github.com/hazyhaar/domdrift/drift"
	"github.com/hazyhaar/domdrift/kit"
	"github.com/hazyhaar/domdrift/snapstore"
)

// Store-backed MCP tools live here because the command owns the store
// handle; the pure comparison tool is registered by the drift package.

type compareStoredReq struct {
	BeforeLabel string `json:"before_label"`
	AfterLabel  string `json:"after_label"`
}

type captureReq struct {
	URL    string `json:"url"`
	Label  string `json:"label"`
	Render bool   `json:"render"`
}

func registerStoreTools(srv *mcp.Server, store *snapstore.Store, cat drift.Catalogs) {
	compareTool := &mcp.Tool{
		Name:        "domdrift_compare_stored",
		Description: "Compare two captured snapshots by store label and report selector drift.",
		InputSchema: kit.InputSchema(map[string]any{
			"before_label": map[string]any{"type": "string", "description": "Store label of the before snapshot"},
			"after_label":  map[string]any{"type": "string", "description": "Store label of the after snapshot"},
		}, []string{"before_label", "after_label"}),
	}
	kit.RegisterMCPTool(srv, compareTool,
		func(ctx context.Context, req any) (any, error) {
			r := req.(*compareStoredReq)
			before, err := store.GetByLabel(ctx, r.BeforeLabel)
			if err != nil {
				return nil, fmt.Errorf("before snapshot %q: %w", r.BeforeLabel, err)
			}
			after, err := store.GetByLabel(ctx, r.AfterLabel)
			if err != nil {
				return nil, fmt.Errorf("after snapshot %q: %w", r.AfterLabel, err)
			}
			return drift.CompareWith(string(before.HTML), string(after.HTML), cat)
		},
		func(req *mcp.CallToolRequest) (any, error) {
			return kit.DecodeJSON[compareStoredReq](req)
		})

	captureTool := &mcp.Tool{
		Name:        "domdrift_capture",
		Description: "Capture a page snapshot into the store under a label; returns the snapshot id.",
		InputSchema: kit.InputSchema(map[string]any{
			"url":    map[string]any{"type": "string", "description": "Page URL to capture"},
			"label":  map[string]any{"type": "string", "description": "Store label, e.g. release:before"},
			"render": map[string]any{"type": "boolean", "description": "Render via headless Chrome instead of plain HTTP"},
		}, []string{"url", "label"}),
	}
	kit.RegisterMCPTool(srv, captureTool,
		func(ctx context.Context, req any) (any, error) {
			r := req.(*captureReq)
			opts := capture.Options{Mode: capture.ModeHTTP}
			if r.Render {
				opts.Mode = capture.ModeBrowser
			}
			snap, err := capture.Capture(ctx, r.URL, r.Label, opts)
			if err != nil {
				return nil, err
			}
			if err := store.Put(ctx, snap); err != nil {
				return nil, err
			}
			return map[string]any{"id": snap.ID, "fingerprint": snap.Fingerprint}, nil
		},
		func(req *mcp.CallToolRequest) (any, error) {
			return kit.DecodeJSON[captureReq](req)
		})
}
