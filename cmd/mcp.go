package main

import (
	"context"

	"github.com/desertthunder/spotools/internal/mcpserver"
	"github.com/urfave/cli/v3"
)

// MCPServe exposes the tools to an MCP client over stdin/stdout until the client disconnects.
func (r *Runner) MCPServe(ctx context.Context, cmd *cli.Command) error {
	defs, err := r.definitions()
	if err != nil {
		return err
	}

	srv, err := mcpserver.New(r.config.MCP.Name, r.config.MCP.Version, defs, r.logger)
	if err != nil {
		return err
	}

	return srv.Serve(ctx, r.input, r.output)
}
