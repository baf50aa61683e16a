package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/desertthunder/spotools/internal/formatter"
	"github.com/desertthunder/spotools/internal/services"
	"github.com/desertthunder/spotools/internal/shared"
	"github.com/desertthunder/spotools/internal/tools"
	"github.com/urfave/cli/v3"
)

// ToolsList prints every tool with its access mode and arguments.
func (r *Runner) ToolsList(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("json") {
		published, err := tools.New(r.options(), tools.WithLogger(r.logger))
		if err != nil {
			return err
		}
		return r.writeJSON(published, true)
	}

	defs, err := r.definitions()
	if err != nil {
		return err
	}

	r.writePlainHeader(fmt.Sprintf("%d tools", len(defs)))
	for _, d := range defs {
		schema, err := d.Schema()
		if err != nil {
			return err
		}

		access := r.palette.OK("read-only")
		if !d.ReadOnly {
			access = r.palette.Warn("modifies account")
		}

		r.writePlain("%s  %s\n", r.palette.Title(d.Name), access)
		r.writePlain("  %s\n", d.Description)
		if args := argumentSummary(schema); len(args) > 0 {
			r.writePlain("  %s %s\n", r.palette.Help("args:"), strings.Join(args, ", "))
		}
		r.writePlain("\n")
	}
	return nil
}

// ToolsCall runs one tool with the JSON arguments given by --args.
func (r *Runner) ToolsCall(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: tool name", shared.ErrMissingArgument)
	}

	raw := cmd.String("args")
	if raw == "-" {
		data, err := io.ReadAll(r.input)
		if err != nil {
			return fmt.Errorf("failed to read arguments: %w", err)
		}
		raw = string(data)
	}
	if !json.Valid([]byte(raw)) {
		return fmt.Errorf("%w: --args is not valid JSON", shared.ErrInvalidInput)
	}

	defs, err := r.definitions()
	if err != nil {
		return err
	}

	d, err := tools.Lookup(defs, name)
	if err != nil {
		return err
	}

	out, err := d.Execute(ctx, json.RawMessage(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(out, true)
	case cmd.Bool("table"):
		data, err := formatter.Table(out)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case cmd.Bool("csv"):
		search, ok := out.(*services.TrackSearch)
		if !ok {
			return fmt.Errorf("%w: --csv only applies to %s", shared.ErrInvalidArgument, services.OpSearchTracks)
		}
		data, err := formatter.TracksToCSV(search)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	default:
		data, err := formatter.Render(out)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}
}

// argumentSummary lists schema properties in declaration order, marking required ones with *.
func argumentSummary(schema []byte) []string {
	required := map[string]bool{}
	_, _ = jsonparser.ArrayEach(schema, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if dataType == jsonparser.String {
			required[string(value)] = true
		}
	}, "required")

	var args []string
	_ = jsonparser.ObjectEach(schema, func(key []byte, value []byte, _ jsonparser.ValueType, _ int) error {
		name := string(key)
		if required[name] {
			name += "*"
		}
		if typ, err := jsonparser.GetString(value, "type"); err == nil {
			name += " " + typ
		}
		args = append(args, name)
		return nil
	}, "properties")

	return args
}
