package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Isilon/isilon-sdk/compiler"
	"github.com/Isilon/isilon-sdk/internal/config"
	"github.com/Isilon/isilon-sdk/internal/fileutil"
	"github.com/Isilon/isilon-sdk/internal/issues"
	"github.com/Isilon/isilon-sdk/swagger"
)

type compileInput struct {
	Catalog         catalogInput `json:"catalog"                    jsonschema:"The describe catalog to compile"`
	Config          string       `json:"config,omitempty"           jsonschema:"Path to a papi2oas YAML config file"`
	Format          string       `json:"format,omitempty"           jsonschema:"Document format: json (default) or yaml"`
	Output          string       `json:"output,omitempty"           jsonschema:"Write the document to this file instead of returning it"`
	IncludeDocument bool         `json:"include_document,omitempty" jsonschema:"Return the document inline (ignored when output is set)"`
	Validate        *bool        `json:"validate,omitempty"         jsonschema:"Validate the document through an OpenAPI 3 conversion"`
	NoWarnings      bool         `json:"no_warnings,omitempty"      jsonschema:"Leave warnings out of the returned issues"`
	Offset          int          `json:"offset,omitempty"           jsonschema:"Skip the first N issues (for pagination)"`
	Limit           int          `json:"limit,omitempty"            jsonschema:"Maximum number of issues to return (default 100)"`
}

type compileIssue struct {
	Severity string `json:"severity"`
	Endpoint string `json:"endpoint,omitempty"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
}

type compileFailure struct {
	Endpoint  string `json:"endpoint"`
	Method    string `json:"method,omitempty"`
	Operation string `json:"operation,omitempty"`
	Error     string `json:"error"`
}

type compileOutput struct {
	Stats           compiler.Stats   `json:"stats"`
	Failed          []compileFailure `json:"failed,omitempty"`
	IssueCount      int              `json:"issue_count"`
	Returned        int              `json:"returned"`
	Issues          []compileIssue   `json:"issues,omitempty"`
	Valid           *bool            `json:"valid,omitempty"`
	ValidationError string           `json:"validation_error,omitempty"`
	WrittenTo       string           `json:"written_to,omitempty"`
	Document        string           `json:"document,omitempty"`
}

func handleCompile(ctx context.Context, _ *mcp.CallToolRequest, input compileInput) (*mcp.CallToolResult, compileOutput, error) {
	cat, err := input.Catalog.load()
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}

	configPath := input.Config
	if configPath == "" {
		configPath = cfg.ConfigFile
	}
	conf, err := config.Load(configPath)
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}
	format := conf.OutputFormat
	if input.Format != "" {
		format = input.Format
	}
	docFormat, err := swagger.ParseFormat(format)
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}
	validate := conf.Validate
	if input.Validate != nil {
		validate = *input.Validate
	}

	seeds, err := conf.Seeds()
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}
	opts := append(conf.CompilerOptions(), compiler.WithSeedDefinitions(seeds...))
	c, err := compiler.New(opts...)
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}
	result, err := c.Compile(cat)
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}

	output := compileOutput{Stats: result.Stats}
	output.Failed = makeSlice[compileFailure](len(result.Failed))
	for _, f := range result.Failed {
		output.Failed = append(output.Failed, compileFailure{
			Endpoint:  f.Endpoint,
			Method:    f.Method,
			Operation: f.Operation,
			Error:     sanitizeError(f.Cause),
		})
	}

	all := toIssues(result.Issues, input.NoWarnings)
	output.IssueCount = len(all)
	output.Issues = paginate(all, input.Offset, input.Limit)
	output.Returned = len(output.Issues)

	if validate {
		valid := true
		if err := swagger.Validate(ctx, result.Document); err != nil {
			valid = false
			output.ValidationError = sanitizeError(err)
		}
		output.Valid = &valid
	}

	data, err := swagger.Marshal(result.Document, docFormat)
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}
	switch {
	case input.Output != "":
		path, err := fileutil.WriteOutput(input.Output, data)
		if err != nil {
			return errResult(err), compileOutput{}, nil
		}
		output.WrittenTo = path
	case input.IncludeDocument:
		output.Document = string(data)
	}

	return nil, output, nil
}

func toIssues(list issues.List, noWarnings bool) []compileIssue {
	out := makeSlice[compileIssue](len(list))
	for _, i := range list {
		sev := i.Severity.String()
		if noWarnings && sev == "warning" {
			continue
		}
		out = append(out, compileIssue{Severity: sev, Endpoint: i.Endpoint, Path: i.Path, Message: i.Message})
	}
	return out
}
