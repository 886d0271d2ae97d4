package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v4"

	"github.com/Isilon/isilon-sdk/compiler"
	"github.com/Isilon/isilon-sdk/internal/cliutil"
	"github.com/Isilon/isilon-sdk/papi"
	"github.com/Isilon/isilon-sdk/resolver"
)

// resolveReport is the structured output of the resolve command.
type resolveReport struct {
	Version  int             `json:"version" yaml:"version"`
	Pairs    []resolver.Pair `json:"pairs" yaml:"pairs"`
	Excluded []string        `json:"excluded,omitempty" yaml:"excluded,omitempty"`
	Errors   []string        `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func newResolveCommand(root *rootFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "resolve [flags] <catalog>",
		Short: "Print the endpoint pairs a compile would process, in order",
		Long: `Resolve selects the newest version of every endpoint in the catalog directory,
pairs collections with their items and prints them in processing order, one
"base item" pair per line ("-" marks a missing side). Exclusions from the
config are applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			cat, err := papi.LoadCatalog(args[0])
			if err != nil {
				return err
			}
			c, err := compiler.New(cfg.CompilerOptions()...)
			if err != nil {
				return err
			}
			return writeResolve(cmd, cat.Version, c.Resolve(cat), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, or yaml")
	return cmd
}

func writeResolve(cmd *cobra.Command, version int, res *resolver.Result, format string) error {
	out := cmd.OutOrStdout()
	report := resolveReport{Version: version, Pairs: res.Pairs, Excluded: res.Excluded}
	for _, err := range res.Errors {
		report.Errors = append(report.Errors, err.Error())
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case "text":
		for _, p := range res.Pairs {
			cliutil.Writef(out, "%s\n", p)
		}
		stderr := cmd.ErrOrStderr()
		for _, uri := range res.Excluded {
			cliutil.Writef(stderr, "excluded: %s\n", uri)
		}
		for _, e := range report.Errors {
			cliutil.Writef(stderr, "error: %s\n", e)
		}
		return nil
	case "json":
		data, err = json.MarshalIndent(report, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(report)
	default:
		return fmt.Errorf("invalid format '%s'. Valid formats: text, json, yaml", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}
	cliutil.Writef(out, "%s\n", data)
	return nil
}
