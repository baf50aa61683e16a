// package mcpserver republishes the tool registry over the Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotools/internal/shared"
	"github.com/desertthunder/spotools/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps an [server.MCPServer] that exposes one MCP tool per [tools.Definition].
type Server struct {
	mcpServer *server.MCPServer
	logger    *log.Logger
}

// New registers every definition on a fresh MCP server.
//
// A definition that fails validation or schema generation aborts construction.
func New(name, version string, defs []tools.Definition, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = shared.NopLogger()
	}

	s := &Server{
		mcpServer: server.NewMCPServer(name, version, server.WithToolCapabilities(false), server.WithRecovery()),
		logger:    logger,
	}

	for _, d := range defs {
		tool, err := NewTool(d)
		if err != nil {
			return nil, err
		}
		s.mcpServer.AddTool(tool, Handler(d))
	}

	logger.Debug("registered MCP tools", "count", len(defs), "tools", tools.Names(defs))
	return s, nil
}

// MCP exposes the underlying server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcpServer
}

// Serve speaks MCP over in and out until ctx is cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}))

	s.logger.Info("serving MCP over stdio")
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

// NewTool converts a definition into an [mcp.Tool] with its reflected input schema and behaviour hints.
func NewTool(d tools.Definition) (mcp.Tool, error) {
	if err := d.Validate(); err != nil {
		return mcp.Tool{}, err
	}

	schema, err := d.Schema()
	if err != nil {
		return mcp.Tool{}, err
	}

	tool := mcp.NewToolWithRawSchema(d.Name, d.Description, schema)
	tool.Annotations = mcp.ToolAnnotation{
		Title:           d.Title,
		ReadOnlyHint:    mcp.ToBoolPtr(d.ReadOnly),
		DestructiveHint: mcp.ToBoolPtr(false),
		IdempotentHint:  mcp.ToBoolPtr(d.ReadOnly),
		OpenWorldHint:   mcp.ToBoolPtr(true),
	}
	return tool, nil
}

// Handler adapts a definition's Execute to an MCP tool handler.
//
// Operation failures are reported as tool results with IsError set so the model can read them; only a
// failure to encode the output is returned as a protocol error.
func Handler(d tools.Definition) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args json.RawMessage
		if req.Params.Arguments != nil {
			data, err := json.Marshal(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("%v: arguments are not valid JSON", shared.ErrInvalidInput)), nil
			}
			args = data
		}

		out, err := d.Execute(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s output: %w", d.Name, err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}
