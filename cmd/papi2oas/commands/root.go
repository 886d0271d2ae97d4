// Package commands provides the cobra command tree for papi2oas.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	isilonsdk "github.com/Isilon/isilon-sdk"
	"github.com/Isilon/isilon-sdk/internal/config"
	"github.com/Isilon/isilon-sdk/papi"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCommand builds the papi2oas command tree. Each call returns a fresh
// tree so flag state never leaks between executions.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "papi2oas",
		Short: "Compile OneFS PAPI describe metadata into Swagger 2.0",
		Long: `papi2oas reads a catalog of PAPI "describe" documents (one per endpoint URI,
as fetched from a OneFS cluster) and compiles it into a single Swagger 2.0
document with shared, deduplicated definitions.`,
		Version:       isilonsdk.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("papi2oas v{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "papi2oas YAML config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error (default from config)")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: text or json (default from config)")

	root.AddCommand(
		newCompileCommand(flags),
		newResolveCommand(flags),
		newMCPCommand(),
		newVersionCommand(),
	)
	return root
}

// loadConfig reads the config file and lets the logging flags override it.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.logLevel == "" && f.logFormat == "" {
		return cfg, nil
	}
	if f.logLevel != "" {
		cfg.LogLevel = strings.ToLower(f.logLevel)
	}
	if f.logFormat != "" {
		cfg.LogFormat = strings.ToLower(f.logFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a slog-backed logger writing to w.
func newLogger(w io.Writer, level, format string) (papi.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q: expected text or json", format)
	}
	return papi.NewSlogAdapter(slog.New(handler)), nil
}
