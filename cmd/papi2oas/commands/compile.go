package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Isilon/isilon-sdk/compiler"
	"github.com/Isilon/isilon-sdk/internal/cliutil"
	"github.com/Isilon/isilon-sdk/internal/fileutil"
	"github.com/Isilon/isilon-sdk/papi"
	"github.com/Isilon/isilon-sdk/swagger"
)

// compileFlags contains flags for the compile command
type compileFlags struct {
	output     string
	format     string
	validate   bool
	issues     bool
	noWarnings bool
	quiet      bool
}

func newCompileCommand(root *rootFlags) *cobra.Command {
	flags := &compileFlags{}

	cmd := &cobra.Command{
		Use:   "compile [flags] <catalog>",
		Short: "Compile a describe catalog into a Swagger 2.0 document",
		Example: `  papi2oas compile describe.json > swagger.json
  papi2oas compile -c papi2oas.yaml -o swagger.yaml describe.json
  papi2oas compile --validate --issues describe.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, root, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the document to this file instead of stdout")
	cmd.Flags().StringVar(&flags.format, "format", "", "document format: json or yaml (default from config, or the output extension)")
	cmd.Flags().BoolVar(&flags.validate, "validate", false, "validate the document through an OpenAPI 3 conversion")
	cmd.Flags().BoolVar(&flags.issues, "issues", false, "print the collected issues after the run")
	cmd.Flags().BoolVar(&flags.noWarnings, "no-warnings", false, "only print error issues")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "do not print the run summary")
	return cmd
}

func runCompile(cmd *cobra.Command, root *rootFlags, flags *compileFlags, catalogPath string) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	format, err := outputFormat(flags, cfg.OutputFormat, cmd.Flags().Changed("format"))
	if err != nil {
		return err
	}
	validate := cfg.Validate
	if cmd.Flags().Changed("validate") {
		validate = flags.validate
	}
	if flags.output != "" {
		if err := validateOutputPath(flags.output, catalogPath); err != nil {
			return err
		}
	}

	cat, err := papi.LoadCatalog(catalogPath)
	if err != nil {
		return err
	}
	seeds, err := cfg.Seeds()
	if err != nil {
		return err
	}
	opts := append(cfg.CompilerOptions(),
		compiler.WithSeedDefinitions(seeds...),
		compiler.WithLogger(logger),
	)
	c, err := compiler.New(opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := c.Compile(cat)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	stderr := cmd.ErrOrStderr()
	if flags.issues {
		cliutil.WriteIssues(stderr, result.Issues, !flags.noWarnings)
	}
	if !flags.quiet {
		cliutil.WriteStats(stderr, result.Stats, elapsed)
	}

	if validate {
		if err := swagger.Validate(cmd.Context(), result.Document); err != nil {
			return fmt.Errorf("validating document: %w", err)
		}
		if !flags.quiet {
			cliutil.Writef(stderr, "✓ Document is valid\n")
		}
	}

	data, err := swagger.Marshal(result.Document, format)
	if err != nil {
		return err
	}
	if flags.output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	path, err := fileutil.WriteOutput(flags.output, data)
	if err != nil {
		return err
	}
	if !flags.quiet {
		cliutil.Writef(stderr, "Output written to: %s\n", path)
	}
	return nil
}

// outputFormat picks the document format: the --format flag wins, then the
// output file extension, then the config.
func outputFormat(flags *compileFlags, configured string, explicit bool) (swagger.Format, error) {
	switch {
	case explicit:
		return swagger.ParseFormat(flags.format)
	case flags.output != "" && filepath.Ext(flags.output) != "":
		return swagger.FormatFromPath(flags.output), nil
	default:
		return swagger.ParseFormat(configured)
	}
}

// validateOutputPath checks that the output would not overwrite the catalog.
func validateOutputPath(outputPath, inputPath string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	absInputPath, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("invalid input path %s: %w", inputPath, err)
	}
	if absOutputPath == absInputPath {
		return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
	}
	return nil
}
