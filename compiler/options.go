package compiler

import (
	"strings"

	"github.com/Isilon/isilon-sdk/builder"
	"github.com/Isilon/isilon-sdk/normalizer"
	"github.com/Isilon/isilon-sdk/oaserrors"
	"github.com/Isilon/isilon-sdk/papi"
	"github.com/Isilon/isilon-sdk/quirks"
	"github.com/Isilon/isilon-sdk/registry"
	"github.com/Isilon/isilon-sdk/swagger"
)

// Option is a function that configures a Compiler.
type Option func(*config) error

// config holds the settings of a Compiler.
type config struct {
	logger               papi.Logger
	exclude              []string
	useDefaultExclusions bool
	nonRequired          map[string][]string
	urlEncodeParams      []string
	extendedSuffix       string
	createParamsSuffix   string
	minParentProperties  int
	rebase               bool
	fixups               normalizer.Fixups
	basePath             string
	info                 *swagger.Info
	seeds                []*registry.Definition
}

func defaultConfig() *config {
	return &config{
		logger:               papi.NopLogger{},
		useDefaultExclusions: true,
		nonRequired:          normalizer.DefaultNonRequiredProps(),
		urlEncodeParams:      builder.DefaultURLEncodeParams(),
		extendedSuffix:       builder.DefaultExtendedSuffix,
		createParamsSuffix:   builder.DefaultCreateParamsSuffix,
		minParentProperties:  registry.DefaultMinParentProperties,
		rebase:               true,
		fixups:               quirks.Default(),
		basePath:             builder.DefaultBasePath,
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l papi.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			l = papi.NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}

// WithExclusions adds URIs to skip. useDefaults controls whether the built-in
// exclusion set for the catalog's PAPI generation applies as well.
func WithExclusions(useDefaults bool, uris ...string) Option {
	return func(cfg *config) error {
		cfg.useDefaultExclusions = useDefaults
		cfg.exclude = append(cfg.exclude, uris...)
		return nil
	}
}

// WithNonRequiredProps replaces the per-definition list of response
// properties whose required flag is ignored.
func WithNonRequiredProps(props map[string][]string) Option {
	return func(cfg *config) error {
		cfg.nonRequired = props
		return nil
	}
}

// WithURLEncodeParams replaces the path parameters tagged for URL encoding.
func WithURLEncodeParams(names ...string) Option {
	return func(cfg *config) error {
		cfg.urlEncodeParams = append([]string{}, names...)
		return nil
	}
}

// WithExtendedSuffix sets the suffix appended to colliding definition names.
func WithExtendedSuffix(suffix string) Option {
	return func(cfg *config) error {
		if suffix == "" {
			return &oaserrors.ConfigError{Option: "extended suffix", Message: "must not be empty"}
		}
		cfg.extendedSuffix = suffix
		return nil
	}
}

// WithCreateParamsSuffix sets the suffix appended to colliding creation body names.
func WithCreateParamsSuffix(suffix string) Option {
	return func(cfg *config) error {
		if suffix == "" {
			return &oaserrors.ConfigError{Option: "create params suffix", Message: "must not be empty"}
		}
		cfg.createParamsSuffix = suffix
		return nil
	}
}

// WithMinParentProperties sets how many properties a definition needs before
// others may extend it. The default of 1 lets any non-empty definition be a
// parent.
func WithMinParentProperties(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return &oaserrors.ConfigError{Option: "min parent properties", Value: n, Message: "must be at least 1"}
		}
		cfg.minParentProperties = n
		return nil
	}
}

// WithRebase enables or disables the extension pass run after all endpoints
// are built. It is enabled by default.
func WithRebase(enabled bool) Option {
	return func(cfg *config) error {
		cfg.rebase = enabled
		return nil
	}
}

// WithFixups replaces the upstream schema corrections. Pass
// normalizer.NopFixups{} to disable them.
func WithFixups(f normalizer.Fixups) Option {
	return func(cfg *config) error {
		if f == nil {
			f = normalizer.NopFixups{}
		}
		cfg.fixups = f
		return nil
	}
}

// WithBasePath sets the prefix of every output path.
func WithBasePath(path string) Option {
	return func(cfg *config) error {
		trimmed := strings.TrimRight(path, "/")
		if !strings.HasPrefix(path, "/") || trimmed == "" {
			return &oaserrors.ConfigError{Option: "base path", Value: path, Message: "must start with '/' and name at least one segment"}
		}
		cfg.basePath = trimmed
		return nil
	}
}

// WithInfo sets the document info. An empty version is filled with the
// catalog's PAPI generation.
func WithInfo(info swagger.Info) Option {
	return func(cfg *config) error {
		cfg.info = &info
		return nil
	}
}

// WithSeedDefinitions registers extra definitions before any endpoint is
// built, after the built-in seeds. Seeds with a built-in name replace it.
func WithSeedDefinitions(defs ...*registry.Definition) Option {
	return func(cfg *config) error {
		for _, d := range defs {
			if d == nil || d.Name == "" {
				return &oaserrors.ConfigError{Option: "seed definitions", Message: "definition must have a name"}
			}
		}
		cfg.seeds = append(cfg.seeds, defs...)
		return nil
	}
}
