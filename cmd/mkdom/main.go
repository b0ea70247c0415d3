package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/mkdom/internal/config"
	"github.com/vango-dev/mkdom/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "mkdom",
		Short: "Query and mutate HTML documents",
		Long: `mkdom applies small DOM edits to HTML documents.

Documents can be local files, s3://bucket/key objects, a live page in a
headless browser, or a document held in memory by the live server.

Edits are written as scripts:

  steps:
    - all: ".item"
      op: addClass
      name: active`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to mkdom.json (default: nearest in working directory)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		applyCmd(opts),
		queryCmd(opts),
		serveCmd(opts),
		browseCmd(opts),
		versionCmd(),
	)
	return rootCmd
}

// load reads the configuration, applies flag overrides and installs the
// logger.
func (o *options) load(stderr io.Writer) error {
	var err error
	switch {
	case o.configPath != "":
		o.cfg, err = config.LoadFile(o.configPath)
	default:
		o.cfg, err = config.LoadFromWorkingDir()
		if e, ok := err.(*errors.Error); ok && e.Code == "E121" {
			o.cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return err
	}

	if o.logLevel != "" {
		o.cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		o.cfg.Log.Format = o.logFormat
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}

	handlerOpts := &slog.HandlerOptions{Level: o.cfg.LogLevel()}
	var handler slog.Handler
	if o.cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(stderr, handlerOpts)
	}
	o.logger = slog.New(handler)
	slog.SetDefault(o.logger)
	return nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
