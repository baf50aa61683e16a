package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotools/internal/services"
	"github.com/desertthunder/spotools/internal/shared"
	"github.com/desertthunder/spotools/internal/tools"
	"github.com/desertthunder/spotools/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	lookup     services.LookupFunc
	logger     *log.Logger
	input      io.Reader
	output     io.Writer
	palette    *ui.Palette
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Lookup     services.LookupFunc
	Logger     *log.Logger
	Input      io.Reader
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		lookup:     opts.Lookup,
		logger:     opts.Logger,
		input:      opts.Input,
		output:     opts.Output,
		palette:    ui.Default,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		toolsCommand, mcpCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the config file, applies flag overrides and sets the log level.
//
// A missing file at the default path is not an error; an explicitly named one is.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.configPath = path
		r.logger.Debug("loaded config", "path", path)
	} else if cmd.IsSet("config") {
		return ctx, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
	}

	if v := cmd.String("access-token"); v != "" {
		r.config.Spotify.AccessToken = v
	}
	if v := cmd.String("api-base-url"); v != "" {
		r.config.Spotify.APIBaseURL = v
	}
	if v := cmd.String("user"); v != "" {
		r.config.Spotify.DefaultUserID = v
	}
	if v := cmd.String("log-level"); v != "" {
		r.config.Log.Level = v
	}

	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return ctx, fmt.Errorf("%w: log level %q", shared.ErrInvalidConfig, r.config.Log.Level)
	}
	shared.SetLogLevel(r.logger, level)

	return ctx, nil
}

// options maps the [spotify] table onto the tool layer's configuration surface.
func (r *Runner) options() services.Options {
	sp := r.config.Spotify
	return services.Options{
		AccessToken:     sp.AccessToken,
		TokenSourceName: sp.TokenEnv,
		APIBaseURL:      sp.APIBaseURL,
		DefaultUserID:   sp.DefaultUserID,
	}
}

func (r *Runner) definitions() ([]tools.Definition, error) {
	return tools.Load(r.options(),
		tools.WithLogger(r.logger),
		tools.WithServiceOptions(services.WithHTTPClient(r.httpClient), services.WithLookup(r.lookup)),
	)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("%s\n\n", r.palette.Title(title))
}
