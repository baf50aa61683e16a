// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:  "access-token",
			Usage: "Spotify bearer token (overrides the config file)",
		},
		&cli.StringFlag{
			Name:  "api-base-url",
			Usage: "Spotify Web API base URL (overrides the config file)",
		},
		&cli.StringFlag{
			Name:  "user",
			Usage: "Default account id for playlist creation (overrides the config file)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn or error",
		},
	}
}

// toolsCommand lists and invokes tools directly
func toolsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tools",
		Usage: "List and call Spotify tools",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List available tools and their arguments",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output tool definitions with input schemas as JSON",
					},
				},
				Action: r.ToolsList,
			},
			{
				Name:  "call",
				Usage: "Invoke a tool with JSON arguments",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "args",
						Aliases: []string{"a"},
						Usage:   "JSON object of tool arguments, or - to read from stdin",
						Value:   "{}",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "table",
						Usage: "Output list results as a table",
					},
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Output track search results as CSV",
					},
				},
				Action: r.ToolsCall,
			},
		},
	}
}

// mcpCommand serves the tools over the Model Context Protocol
func mcpCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Model Context Protocol server",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the tools over stdio",
				Action: r.MCPServe,
			},
		},
	}
}

// configCommand handles configuration files
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write an example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Where to write the file",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}
