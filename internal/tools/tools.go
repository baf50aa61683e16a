// package tools publishes the Spotify operations as named, schema-described tools.
//
// [Definitions] is the single registry. [New] projects it into the framework-neutral [Tool] shape and the
// mcpserver package projects the same definitions into MCP tools.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotools/internal/services"
	"github.com/desertthunder/spotools/internal/shared"
	"github.com/invopop/jsonschema"
)

const maxToolNameLength = 64

// ExecuteFunc runs a tool against raw JSON arguments.
type ExecuteFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Definition describes one operation: its name, its input prototype and how to run it.
type Definition struct {
	Name        string
	Title       string
	Description string
	ReadOnly    bool
	// Input is a zero value of the operation's input struct, reflected into the input schema.
	Input   any
	Execute ExecuteFunc
}

// Tool is the contract consumed by agent frameworks.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
	ReadOnly    bool            `json:"readOnly"`
	Execute     ExecuteFunc     `json:"-"`
}

// Option customizes [Load] and [New].
type Option func(*settings)

type settings struct {
	logger  *log.Logger
	service []services.ServiceOption
}

// WithLogger sets the logger used for invocations and outbound requests.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithServiceOptions forwards options to the underlying [services.SpotifyService].
func WithServiceOptions(opts ...services.ServiceOption) Option {
	return func(s *settings) { s.service = append(s.service, opts...) }
}

// Load resolves the configuration and returns the registry bound to a new service.
//
// Configuration errors are returned here, before any tool can run.
func Load(opts services.Options, options ...Option) ([]Definition, error) {
	var s settings
	for _, opt := range options {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = shared.NopLogger()
	}

	cfg, err := services.ResolveConfig(opts)
	if err != nil {
		return nil, err
	}

	svcOpts := append([]services.ServiceOption{services.WithLogger(s.logger)}, s.service...)
	svc := services.NewSpotifyService(cfg, svcOpts...)

	return Definitions(svc, s.logger), nil
}

// New resolves the configuration and returns the four tools with their input schemas.
func New(opts services.Options, options ...Option) ([]Tool, error) {
	defs, err := Load(opts, options...)
	if err != nil {
		return nil, err
	}

	out := make([]Tool, 0, len(defs))
	for _, d := range defs {
		schema, err := d.Schema()
		if err != nil {
			return nil, err
		}
		out = append(out, Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: schema,
			ReadOnly:    d.ReadOnly,
			Execute:     d.Execute,
		})
	}
	return out, nil
}

// Definitions returns the registry for svc. Every Execute logs under a fresh invocation id.
func Definitions(svc *services.SpotifyService, logger *log.Logger) []Definition {
	if logger == nil {
		logger = shared.NopLogger()
	}

	defs := []Definition{
		{
			Name:        services.OpGetMe,
			Title:       "Get Spotify profile",
			Description: "Get the Spotify profile of the current user: id, display name, country, product tier and follower count.",
			ReadOnly:    true,
			Input:       services.GetMeInput{},
			Execute: func(ctx context.Context, args json.RawMessage) (any, error) {
				if _, err := services.DecodeGetMeInput(args); err != nil {
					return nil, err
				}
				return svc.GetMe(ctx)
			},
		},
		{
			Name:        services.OpSearchTracks,
			Title:       "Search Spotify tracks",
			Description: "Search the Spotify catalog for tracks. Returns one page of results with artists, album, duration and URI.",
			ReadOnly:    true,
			Input:       services.SearchTracksInput{},
			Execute: func(ctx context.Context, args json.RawMessage) (any, error) {
				in, err := services.DecodeSearchTracksInput(args)
				if err != nil {
					return nil, err
				}
				return svc.SearchTracks(ctx, in)
			},
		},
		{
			Name:        services.OpListMyPlaylists,
			Title:       "List my Spotify playlists",
			Description: "List one page of the playlists owned or followed by the current user.",
			ReadOnly:    true,
			Input:       services.ListMyPlaylistsInput{},
			Execute: func(ctx context.Context, args json.RawMessage) (any, error) {
				in, err := services.DecodeListMyPlaylistsInput(args)
				if err != nil {
					return nil, err
				}
				return svc.ListMyPlaylists(ctx, in)
			},
		},
		{
			Name:        services.OpCreatePlaylist,
			Title:       "Create Spotify playlist",
			Description: "Create a new playlist for a Spotify user. Modifies the account: requires confirm set to true.",
			ReadOnly:    false,
			Input:       services.CreatePlaylistInput{},
			Execute: func(ctx context.Context, args json.RawMessage) (any, error) {
				in, err := services.DecodeCreatePlaylistInput(args)
				if err != nil {
					return nil, err
				}
				return svc.CreatePlaylist(ctx, in)
			},
		},
	}

	for i := range defs {
		defs[i].Execute = traced(logger, defs[i].Name, defs[i].Execute)
	}
	return defs
}

// traced attaches an invocation id to every call of fn and logs its outcome.
func traced(logger *log.Logger, name string, fn ExecuteFunc) ExecuteFunc {
	return func(ctx context.Context, args json.RawMessage) (any, error) {
		l := shared.WithLogger(logger, "tool", name, "invocation", shared.GenerateID())
		start := time.Now()

		l.Debug("invoking tool")
		out, err := fn(ctx, args)
		if err != nil {
			l.Warn("tool failed", "error", err, "elapsed", time.Since(start))
			return nil, err
		}

		l.Debug("tool completed", "elapsed", time.Since(start))
		return out, nil
	}
}

// Schema reflects the input prototype into a JSON Schema object.
func (d Definition) Schema() (json.RawMessage, error) {
	r := &jsonschema.Reflector{DoNotReference: true, Anonymous: true}
	s := r.Reflect(d.Input)
	s.Version = ""

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema for %s: %w", d.Name, err)
	}
	return data, nil
}

// Validate checks that a definition can be published.
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: tool name cannot be empty", shared.ErrInvalidConfig)
	}
	if len(d.Name) > maxToolNameLength {
		return fmt.Errorf("%w: tool name %q exceeds %d characters", shared.ErrInvalidConfig, d.Name, maxToolNameLength)
	}
	for _, c := range d.Name {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return fmt.Errorf("%w: tool name %q must be lowercase snake_case", shared.ErrInvalidConfig, d.Name)
	}
	if d.Description == "" {
		return fmt.Errorf("%w: tool %s has no description", shared.ErrInvalidConfig, d.Name)
	}
	if d.Input == nil || d.Execute == nil {
		return fmt.Errorf("%w: tool %s is missing its input or handler", shared.ErrInvalidConfig, d.Name)
	}
	return nil
}

// Lookup finds a definition by name.
func Lookup(defs []Definition, name string) (Definition, error) {
	for _, d := range defs {
		if d.Name == name {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%w: %s", shared.ErrToolNotFound, name)
}

// Names lists the definition names in registry order.
func Names(defs []Definition) []string {
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}
