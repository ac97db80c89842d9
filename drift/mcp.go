package drift

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domdrift/kit"
)

type compareReq struct {
	BeforeHTML string `json:"before_html"`
	AfterHTML  string `json:"after_html"`
}

// RegisterMCP registers the comparison tool on an MCP server. Store-backed
// tools (captured snapshots by label) are registered by the command, which
// owns the store handle.
func RegisterMCP(srv *mcp.Server, cat Catalogs) {
	tool := &mcp.Tool{
		Name:        "domdrift_compare",
		Description: "Compare two HTML snapshots and report attribute stability, landmark drift, and recommended selectors.",
		InputSchema: kit.InputSchema(map[string]any{
			"before_html": map[string]any{"type": "string", "description": "Markup of the before snapshot"},
			"after_html":  map[string]any{"type": "string", "description": "Markup of the after snapshot"},
		}, []string{"before_html", "after_html"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*compareReq)
		return CompareWith(r.BeforeHTML, r.AfterHTML, cat)
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		return kit.DecodeJSON[compareReq](req)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
