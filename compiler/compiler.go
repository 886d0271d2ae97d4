package compiler

import (
	"fmt"
	"strconv"

	"github.com/Isilon/isilon-sdk/builder"
	"github.com/Isilon/isilon-sdk/internal/issues"
	"github.com/Isilon/isilon-sdk/internal/severity"
	"github.com/Isilon/isilon-sdk/normalizer"
	"github.com/Isilon/isilon-sdk/papi"
	"github.com/Isilon/isilon-sdk/registry"
	"github.com/Isilon/isilon-sdk/resolver"
	"github.com/Isilon/isilon-sdk/swagger"
)

// Stats summarizes a compilation.
type Stats struct {
	// Processed counts endpoints built successfully.
	Processed int `json:"processed"`
	// Failed counts endpoints left out because of an error.
	Failed int `json:"failed"`
	// Excluded counts selected endpoints that were in the exclusion set.
	Excluded int `json:"excluded"`
	// Paths is the number of output paths.
	Paths int `json:"paths"`
	// Operations is the number of output operations.
	Operations int `json:"operations"`
	// Definitions is the number of output definitions, seeds included.
	Definitions int `json:"definitions"`
	// Rebased counts definitions rewritten by the extension pass.
	Rebased int `json:"rebased"`
}

// Result is the outcome of a compilation.
type Result struct {
	Document *swagger.Document
	// Pairs is the processing order.
	Pairs  []resolver.Pair
	Stats  Stats
	Issues issues.List
	// Failed lists the endpoints left out of Document.
	Failed []*builder.EndpointError
}

// Compiler compiles catalogs with a fixed configuration.
type Compiler struct {
	cfg *config
}

// New creates a Compiler.
func New(opts ...Option) (*Compiler, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("compiler: invalid options: %w", err)
		}
	}
	return &Compiler{cfg: cfg}, nil
}

// run is the state of one compilation.
type run struct {
	cfg    *config
	cat    *papi.Catalog
	reg    *registry.Registry
	norm   *normalizer.Normalizer
	build  *builder.Builder
	doc    *swagger.Document
	result *Result
}

// Compile compiles cat. The returned error is non-nil only when the run was
// aborted; endpoint failures are reported in Result.Failed.
func (c *Compiler) Compile(cat *papi.Catalog) (*Result, error) {
	if cat == nil {
		return nil, fmt.Errorf("compiler: nil catalog")
	}
	r := c.newRun(cat)
	if err := r.execute(); err != nil {
		return nil, fmt.Errorf("compiler: %w", err)
	}
	return r.result, nil
}

// Resolve returns the pairs Compile would process for cat, in order.
func (c *Compiler) Resolve(cat *papi.Catalog) *resolver.Result {
	return resolver.Resolve(cat.Directory, exclusions(c.cfg, cat))
}

func exclusions(cfg *config, cat *papi.Catalog) []string {
	var exclude []string
	if cfg.useDefaultExclusions {
		exclude = resolver.DefaultExclusions(cat.Version)
	}
	return append(exclude, cfg.exclude...)
}

func (c *Compiler) newRun(cat *papi.Catalog) *run {
	cfg := c.cfg
	reg := registry.New(registry.Options{MinParentProperties: cfg.minParentProperties})
	reg.Seed(registry.DefaultSeeds(limitIDLength(cat))...)
	reg.Seed(cfg.seeds...)

	norm := normalizer.New(reg, normalizer.Options{
		Logger:      cfg.logger,
		Fixups:      cfg.fixups,
		NonRequired: cfg.nonRequired,
	})
	b := builder.New(cat, norm, builder.Options{
		Logger:             cfg.logger,
		BasePath:           cfg.basePath,
		URLEncodeParams:    cfg.urlEncodeParams,
		ExtendedSuffix:     cfg.extendedSuffix,
		CreateParamsSuffix: cfg.createParamsSuffix,
	})
	return &run{
		cfg:    cfg,
		cat:    cat,
		reg:    reg,
		norm:   norm,
		build:  b,
		doc:    swagger.New(documentInfo(cfg.info, cat)),
		result: &Result{},
	}
}

// limitIDLength reports whether CreateResponse.id keeps its length limits.
// PAPI 2 and earlier, and the OneFS 7.2 and 8.0 releases, do not declare them.
func limitIDLength(cat *papi.Catalog) bool {
	if cat.Version > 0 && cat.Version <= 2 {
		return false
	}
	switch cat.OneFSVersion {
	case "7.2", "8.0":
		return false
	}
	return true
}

// DefaultInfo returns the document info used when none is configured. The
// version is left empty.
func DefaultInfo() swagger.Info {
	return swagger.Info{
		Title:          "Isilon PAPI",
		Description:    "Isilon Platform API.",
		TermsOfService: "http://emc.com",
		Contact:        &swagger.Contact{Name: "Isilon PAPI Team", Email: "papi@isilon.com", URL: "http://emc.com"},
		License:        &swagger.License{Name: "MIT"},
	}
}

// documentInfo fills an empty version with the catalog's PAPI generation.
func documentInfo(info *swagger.Info, cat *papi.Catalog) *swagger.Info {
	out := DefaultInfo()
	if info != nil {
		out = *info
	}
	if out.Version == "" {
		out.Version = strconv.Itoa(cat.Version)
	}
	return &out
}

func (r *run) execute() error {
	logger := r.cfg.logger
	res := r.result

	resolved := resolver.Resolve(r.cat.Directory, exclusions(r.cfg, r.cat))
	res.Pairs = resolved.Pairs
	res.Issues = append(res.Issues, resolved.Issues...)
	res.Stats.Excluded = len(resolved.Excluded)
	res.Stats.Failed = len(resolved.Errors)
	for _, uri := range resolved.Excluded {
		logger.Debug("excluded endpoint", "endpoint", uri)
	}
	for _, err := range resolved.Errors {
		logger.Error("skipping endpoint", "error", err)
	}

	for _, pair := range resolved.Pairs {
		built, err := r.build.Build(pair)
		if err != nil {
			logger.Error("aborting compilation", "pair", pair.String(), "error", err)
			return err
		}
		r.addPaths(built.Paths)
		res.Stats.Processed += len(built.Built)
		res.Stats.Failed += len(built.Failed)
		for _, f := range built.Failed {
			res.Failed = append(res.Failed, f)
			res.Issues.Add(severity.SeverityError, f.Endpoint, "", f.Error())
		}
	}

	if r.cfg.rebase {
		rebased := r.reg.Rebase()
		res.Stats.Rebased = len(rebased)
		for _, name := range rebased {
			logger.Debug("rebased definition", "definition", name)
		}
	}
	for _, ref := range r.reg.Dangling() {
		res.Issues.Warnf("", "definitions", "dangling reference %s", ref)
		logger.Warn("dangling reference", "reference", ref)
	}

	r.doc.Definitions = r.reg.Schemas()
	res.Document = r.doc
	res.Issues = append(res.Issues, r.norm.Issues()...)
	res.Issues = append(res.Issues, r.build.Issues()...)

	res.Stats.Paths = len(r.doc.Paths)
	for _, item := range r.doc.Paths {
		res.Stats.Operations += len(item.Operations())
	}
	res.Stats.Definitions = len(r.doc.Definitions)

	logger.Info(fmt.Sprintf("End points successfully processed: %d, failed to process: %d, excluded: %d.",
		res.Stats.Processed, res.Stats.Failed, res.Stats.Excluded))
	return nil
}

// addPaths merges path items into the document. Distinct pairs never share
// an operation, so merging only happens for paths that differ in method.
func (r *run) addPaths(paths map[string]*swagger.PathItem) {
	for path, item := range paths {
		existing, ok := r.doc.Paths[path]
		if !ok {
			r.doc.Paths[path] = item
			continue
		}
		for method, op := range item.Operations() {
			existing.Set(method, op)
		}
	}
}
