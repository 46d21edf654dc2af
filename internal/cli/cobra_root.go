package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mood-tracker/internal/config"
	"mood-tracker/internal/logging"
)

// AppFactory builds the application once configuration is final
type AppFactory func(cfg *config.Config) (*App, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	factory AppFactory
	config  *config.Config
	app     *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(factory AppFactory) *RootCommand {
	root := &RootCommand{factory: factory}

	root.cmd = &cobra.Command{
		Use:   "mt",
		Short: "A deadline-driven mood tracker",
		Long: `Mood Tracker (mt) keeps a list of tasks with deadlines and sets a mood,
a playlist and a motivational quote from the nearest deadline.

MOODS:
  more than 48h left                       😌 Plenty of Time  (chill playlist)
  24h to 48h left                          ⚡ Time to Focus   (paced playlist)
  24h or less, or overdue                  🔥 Deadline Panic! (panic playlist)

EXAMPLES:
  mt serve                                 # Web page on :8080
  mt tui                                   # Interactive terminal board
  mt mood 2024-06-01T17:00                 # Classify one deadline
  mt playlist urgent                       # Show the playlist for a mood
  mt quote                                 # Print a motivational quote
  mt plan --task "Essay=2024-06-03" --task "Exam=2024-06-02T09:00" --format json

CONFIGURATION:
  Configuration follows this priority order:
    command-line flags > environment variables > .env file > config file > defaults

  Store Configuration:
    MT_STORE_BACKEND                       memory or sqlite (default: memory)
    MT_STORE_DSN                           In-memory SQLite DSN (default: :memory:)
    MT_STORE_QUERY_TIMEOUT                 Query timeout (default: 5s)

  Spotify Configuration:
    SPOTIFY_CLIENT_ID                      Client-credentials ID
    SPOTIFY_CLIENT_SECRET                  Client-credentials secret
    MT_SPOTIFY_TOKEN_URL                   Token endpoint
    MT_SPOTIFY_API_URL                     Web API base URL
    MT_SPOTIFY_TIMEOUT                     Request timeout (default: 10s)

  Quote Configuration:
    MT_QUOTES_URL                          Quote endpoint (default: https://api.quotable.io/random)
    MT_QUOTES_TIMEOUT                      Request timeout (default: 10s)
    MT_QUOTES_FALLBACK                     Text shown when no quote is available

  Server Configuration:
    MT_SERVER_ADDR                         Listen address (default: :8080)
    MT_SERVER_MODE                         debug, release or test (default: release)

  Time Configuration:
    MT_TIME_DISPLAY_FORMAT                 Due date format (default: 2006-01-02 15:04)
    MT_TIME_LOCATION                       Zone for deadlines without one (default: Local)

  Validation Configuration:
    MT_VALIDATION_TASK_NAME_MIN            Min task name length (default: 1)
    MT_VALIDATION_TASK_NAME_MAX            Max task name length (default: 255)

  Application Configuration:
    MT_CONFIG                              YAML config file
    MT_APP_TIMEOUT                         Timeout for one-shot commands (default: 60s)
    MT_APP_VERBOSE                         Enable verbose output (default: false)
    MT_PLAN_DEFAULT_FORMAT                 Default plan format (default: table)
    MT_DEBUG                               Print debug output

DEADLINE FORMATS:
  2006-01-02T15:04, 2006-01-02 15:04, 2006-01-02T15:04:05, 2006-01-02, RFC3339`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.initialize()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if root.app == nil {
				return nil
			}
			return root.app.Close()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every subcommand
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Command exposes the underlying cobra command, mainly for tests
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Configuration sources
	flags.String("config", "", "YAML config file (overrides MT_CONFIG)")
	flags.String("env-file", config.DefaultEnvFile, "dotenv file to load; empty disables")

	// Store configuration
	flags.String("store", "", "Task store backend: memory or sqlite (overrides MT_STORE_BACKEND)")

	// Quote configuration
	flags.String("quotes-url", "", "Quote endpoint (overrides MT_QUOTES_URL)")

	// Server configuration
	flags.String("addr", "", "Listen address (overrides MT_SERVER_ADDR)")
	flags.String("mode", "", "Server mode (overrides MT_SERVER_MODE)")

	// Time configuration
	flags.String("time-format", "", "Due date format (overrides MT_TIME_DISPLAY_FORMAT)")
	flags.String("time-location", "", "Zone for deadlines without one (overrides MT_TIME_LOCATION)")

	// Validation configuration
	flags.Int("task-name-min-length", 0, "Minimum task name length (overrides MT_VALIDATION_TASK_NAME_MIN)")
	flags.Int("task-name-max-length", 0, "Maximum task name length (overrides MT_VALIDATION_TASK_NAME_MAX)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Timeout for one-shot commands (overrides MT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides MT_APP_VERBOSE)")

	// Command configuration
	flags.String("plan-format", "", "Default plan format (overrides MT_PLAN_DEFAULT_FORMAT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web interface",
		Long:  "Serve the task board as a web page with a JSON API under /api.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServeCommand(r.appFor(cmd)).Execute(cmd.Context(), args)
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive terminal board",
		Long: `Run the task board in the terminal.

Keys:
  a        add a task
  d, x     delete the selected task
  r        fetch a new quote
  q        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewTUICommand(r.appFor(cmd)).Execute(cmd.Context(), args)
		},
	}

	moodCmd := &cobra.Command{
		Use:   "mood [deadline]",
		Short: "Classify a deadline",
		Long: `Show the mood a deadline would set, relative to now.

Examples:
  mt mood                        # Mood of an empty board
  mt mood 2024-06-01T17:00       # Mood for one deadline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewMoodCommand(r.appFor(cmd)).Execute(ctx, args)
		},
	}

	playlistCmd := &cobra.Command{
		Use:       "playlist [calm|focused|urgent]",
		Short:     "Show the playlist for a mood",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"calm", "focused", "urgent"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewPlaylistCommand(r.appFor(cmd)).Execute(ctx, args)
		},
	}

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Print a motivational quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewQuoteCommand(r.appFor(cmd)).Execute(ctx, args)
		},
	}

	var planTasks []string
	var planFormat string
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Sort a batch of tasks and report the mood",
		Long: `Sort the given tasks by deadline and report the mood and playlist of the
nearest one.

Supported formats: table, csv, json, yaml

Examples:
  mt plan --task "Essay=2024-06-03" --task "Exam=2024-06-02T09:00"
  mt plan --task "Essay=2024-06-03" --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
			defer cancel()

			return NewPlanCommand(r.appFor(cmd), planFormat).Execute(ctx, planTasks)
		},
	}
	planCmd.Flags().StringArrayVarP(&planTasks, "task", "t", nil, `Task as "name=deadline" (repeatable)`)
	planCmd.Flags().StringVarP(&planFormat, "format", "f", "", "Output format (overrides MT_PLAN_DEFAULT_FORMAT)")

	r.cmd.AddCommand(
		serveCmd,
		tuiCmd,
		moodCmd,
		playlistCmd,
		quoteCmd,
		planCmd,
	)
}

// appFor returns the application with output bound to the command's writer
func (r *RootCommand) appFor(cmd *cobra.Command) *App {
	r.app.SetOutput(cmd.OutOrStdout())
	return r.app
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// initialize loads configuration, applies flag overrides and builds the app
func (r *RootCommand) initialize() error {
	flags := r.cmd.PersistentFlags()

	loader := config.NewLoader()
	if configFile, _ := flags.GetString("config"); configFile != "" {
		loader = loader.WithConfigFile(configFile)
	}
	envFile, _ := flags.GetString("env-file")
	loader = loader.WithEnvFile(envFile)

	cfg, err := loader.LoadWithOverrides(r.getOverridesFromFlags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	r.config = cfg
	logging.SetVerbose(cfg.Application.Verbose)

	app, err := r.factory(cfg)
	if err != nil {
		return err
	}
	r.app = app
	return nil
}

// getOverridesFromFlags collects the flags that were explicitly set
func (r *RootCommand) getOverridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("store") {
		v, _ := flags.GetString("store")
		overrides.StoreBackend = &v
	}
	if flags.Changed("quotes-url") {
		v, _ := flags.GetString("quotes-url")
		overrides.QuotesURL = &v
	}
	if flags.Changed("addr") {
		v, _ := flags.GetString("addr")
		overrides.ServerAddr = &v
	}
	if flags.Changed("mode") {
		v, _ := flags.GetString("mode")
		overrides.ServerMode = &v
	}
	if flags.Changed("time-format") {
		v, _ := flags.GetString("time-format")
		overrides.TimeFormat = &v
	}
	if flags.Changed("time-location") {
		v, _ := flags.GetString("time-location")
		overrides.TimeLocation = &v
	}
	if flags.Changed("task-name-min-length") {
		v, _ := flags.GetInt("task-name-min-length")
		overrides.TaskNameMinLength = &v
	}
	if flags.Changed("task-name-max-length") {
		v, _ := flags.GetInt("task-name-max-length")
		overrides.TaskNameMaxLength = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	if flags.Changed("plan-format") {
		v, _ := flags.GetString("plan-format")
		overrides.PlanDefaultFormat = &v
	}

	return overrides
}
