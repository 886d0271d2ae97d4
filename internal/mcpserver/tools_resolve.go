package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Isilon/isilon-sdk/resolver"
)

type resolveInput struct {
	Catalog             catalogInput `json:"catalog"                          jsonschema:"The describe catalog to resolve"`
	Exclude             []string     `json:"exclude,omitempty"                jsonschema:"Additional endpoint URIs to skip"`
	NoDefaultExclusions bool         `json:"no_default_exclusions,omitempty"  jsonschema:"Do not apply the built-in exclusion set for the catalog's PAPI version"`
	Offset              int          `json:"offset,omitempty"                 jsonschema:"Skip the first N pairs (for pagination)"`
	Limit               int          `json:"limit,omitempty"                  jsonschema:"Maximum number of pairs to return (default 100)"`
}

type resolveOutput struct {
	Version  int             `json:"version"`
	Total    int             `json:"total"`
	Returned int             `json:"returned"`
	Pairs    []resolver.Pair `json:"pairs,omitempty"`
	Excluded []string        `json:"excluded,omitempty"`
	Errors   []string        `json:"errors,omitempty"`
}

func handleResolve(_ context.Context, _ *mcp.CallToolRequest, input resolveInput) (*mcp.CallToolResult, resolveOutput, error) {
	cat, err := input.Catalog.load()
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	var exclude []string
	if !input.NoDefaultExclusions {
		exclude = resolver.DefaultExclusions(cat.Version)
	}
	exclude = append(exclude, input.Exclude...)
	res := resolver.Resolve(cat.Directory, exclude)

	output := resolveOutput{
		Version:  cat.Version,
		Total:    len(res.Pairs),
		Excluded: res.Excluded,
	}
	output.Errors = makeSlice[string](len(res.Errors))
	for _, e := range res.Errors {
		output.Errors = append(output.Errors, e.Error())
	}
	output.Pairs = paginate(res.Pairs, input.Offset, input.Limit)
	output.Returned = len(output.Pairs)
	return nil, output, nil
}
