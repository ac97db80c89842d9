package drift

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testMCPImpl = &mcp.Implementation{Name: "domdrift-test", Version: "0.1.0"}

func mcpSession(t *testing.T) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testMCPImpl, nil)
	RegisterMCP(srv, DefaultCatalogs())

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestMCP_Compare(t *testing.T) {
	session := mcpSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "domdrift_compare",
		Arguments: map[string]any{
			"before_html": `<body><div role="toolbar">x</div></body>`,
			"after_html":  `<body><p>y</p></body>`,
		},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %+v", result.Content)
	}

	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T, want TextContent", result.Content[0])
	}
	var res Result
	if err := json.Unmarshal([]byte(text.Text), &res); err != nil {
		t.Fatalf("bad result JSON: %v", err)
	}
	if len(res.ChangedSelectors) == 0 || res.ChangedSelectors[0].Kind != ChangeRemoved {
		t.Errorf("changed selectors = %+v", res.ChangedSelectors)
	}
}

func TestMCP_Compare_BadArguments(t *testing.T) {
	session := mcpSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "domdrift_compare",
		Arguments: map[string]any{
			"before_html": 42,
			"after_html":  "<div></div>",
		},
	})
	if err == nil && !result.IsError {
		t.Fatal("expected an error for non-string arguments")
	}
}
