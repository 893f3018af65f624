package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/s0up4200/muddle/config"
	"github.com/s0up4200/muddle/moodle"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *moodle.Client

	// Global flags
	serviceName string
	siteName    string
	debug       bool
	filterExpr  string

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "muddle",
	Short: "A command line client for the Moodle web-service API",
	Long: `muddle calls Moodle web-service functions over the REST protocol.
Connection details are read from a JSON config file (default ~/.mdl) holding
named services or sites, each with a base URL and a token.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// SetVersion records build information for the version command
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ~/.mdl)")
	flags.StringVarP(&serviceName, "service", "s", "", "named service from the config file (default is default_service)")
	flags.StringVar(&siteName, "site", "", "named site from the config file, used instead of a service")
	flags.BoolVarP(&debug, "debug", "d", false, "log every request")
	flags.StringVarP(&filterExpr, "filter", "f", "", "only print result records matching this expression")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(groupingCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(presentationCmd)
}

// initializeApp loads the configuration and sets up logging. The Moodle
// client is created on first use by connect.
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override debug from command line if specified
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debug
	}

	logger = setupLogger(cfg.Logging, cfg.Debug)
	client = nil

	return nil
}

// connect returns the client for the selected site or service
func connect() (*moodle.Client, error) {
	if client != nil {
		return client, nil
	}

	var (
		svc config.ServiceConfig
		err error
	)
	if siteName != "" {
		svc, err = cfg.GetSite(siteName)
	} else {
		svc, err = cfg.GetService(serviceName)
	}
	if err != nil {
		return nil, err
	}

	client, err = newClient(svc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Moodle client: %w", err)
	}
	return client, nil
}

// newClient creates a client from one service entry of the config file
func newClient(svc config.ServiceConfig) (*moodle.Client, error) {
	opts := []moodle.Option{
		moodle.WithUserAgent("muddle/" + version),
	}
	if svc.Timeout > 0 {
		opts = append(opts, moodle.WithTimeout(svc.Timeout))
	}
	if !svc.VerifyTLS() {
		logger.Warn().Str("url", svc.BaseURL).Msg("TLS certificate verification is disabled")
		opts = append(opts, moodle.WithInsecureSkipVerify())
	}
	return moodle.NewClient(svc.BaseURL, svc.Token, logger, opts...)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, debug bool) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	if debug {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	color := cfg.Color && isTerminal(os.Stderr)
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize, // megabytes
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
		}
		color = false
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// versionCmd prints build information. It needs no config file.
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print the muddle version",
	Args:              cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "muddle %s (built %s)\n", version, buildTime)
	},
}
