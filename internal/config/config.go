// Package config loads papi2oas settings from a YAML file and PAPI2OAS_*
// environment variables.
//
// Precedence, lowest to highest: built-in defaults, the file, the
// environment. Command-line flags are applied by the caller on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v4"

	"github.com/Isilon/isilon-sdk/builder"
	"github.com/Isilon/isilon-sdk/compiler"
	"github.com/Isilon/isilon-sdk/normalizer"
	"github.com/Isilon/isilon-sdk/oaserrors"
	"github.com/Isilon/isilon-sdk/registry"
	"github.com/Isilon/isilon-sdk/swagger"
)

// EnvPrefix starts every environment variable read by Load.
const EnvPrefix = "PAPI2OAS_"

// Contact is the info.contact block.
type Contact struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty" validate:"omitempty,email"`
	URL   string `yaml:"url,omitempty" validate:"omitempty,url"`
}

// License is the info.license block.
type License struct {
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url,omitempty" validate:"omitempty,url"`
}

// Info overrides the document info. Empty fields keep the defaults.
type Info struct {
	Title          string   `yaml:"title,omitempty"`
	Description    string   `yaml:"description,omitempty"`
	Version        string   `yaml:"version,omitempty"`
	TermsOfService string   `yaml:"terms_of_service,omitempty" validate:"omitempty,url"`
	Contact        *Contact `yaml:"contact,omitempty"`
	License        *License `yaml:"license,omitempty"`
}

// Config holds every setting of a compilation.
type Config struct {
	Info     *Info  `yaml:"info,omitempty"`
	BasePath string `yaml:"base_path" validate:"required,startswith=/,ne=/"`
	// Exclude lists URIs to skip in addition to the built-in set.
	Exclude              []string `yaml:"exclude,omitempty" validate:"dive,startswith=/"`
	UseDefaultExclusions bool     `yaml:"use_default_exclusions"`
	// NonRequiredProps extends the built-in list of response properties
	// whose required flag is ignored.
	NonRequiredProps    map[string][]string `yaml:"non_required_props,omitempty" validate:"dive,keys,required,endkeys,dive,required"`
	URLEncodeParams     []string            `yaml:"url_encode_params" validate:"dive,required,alphanum"`
	ExtendedSuffix      string              `yaml:"extended_suffix" validate:"required,alphanum"`
	CreateParamsSuffix  string              `yaml:"create_params_suffix" validate:"required,alphanum"`
	MinParentProperties int                 `yaml:"min_parent_properties" validate:"min=1"`
	Rebase              bool                `yaml:"rebase"`
	// SeedFile names a Swagger document whose definitions are registered
	// before compilation.
	SeedFile     string `yaml:"seed_file,omitempty"`
	OutputFormat string `yaml:"output_format" validate:"oneof=json yaml"`
	Validate     bool   `yaml:"validate"`
	LogLevel     string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat    string `yaml:"log_format" validate:"oneof=text json"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		BasePath:             builder.DefaultBasePath,
		UseDefaultExclusions: true,
		URLEncodeParams:      builder.DefaultURLEncodeParams(),
		ExtendedSuffix:       builder.DefaultExtendedSuffix,
		CreateParamsSuffix:   builder.DefaultCreateParamsSuffix,
		MinParentProperties:  registry.DefaultMinParentProperties,
		Rebase:               true,
		OutputFormat:         string(swagger.FormatJSON),
		LogLevel:             "info",
		LogFormat:            "text",
	}
}

// Load reads path (skipped when empty), applies the environment and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // G304: config path is user supplied
		if err != nil {
			return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: "reading file", Cause: err}
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: "decoding YAML", Cause: err}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error
	envString("BASE_PATH", &c.BasePath)
	envString("EXTENDED_SUFFIX", &c.ExtendedSuffix)
	envString("CREATE_PARAMS_SUFFIX", &c.CreateParamsSuffix)
	envString("SEED_FILE", &c.SeedFile)
	envString("OUTPUT_FORMAT", &c.OutputFormat)
	envString("LOG_LEVEL", &c.LogLevel)
	envString("LOG_FORMAT", &c.LogFormat)
	envList("EXCLUDE", &c.Exclude)
	envList("URL_ENCODE_PARAMS", &c.URLEncodeParams)
	errs = append(errs,
		envBool("USE_DEFAULT_EXCLUSIONS", &c.UseDefaultExclusions),
		envBool("REBASE", &c.Rebase),
		envBool("VALIDATE", &c.Validate),
		envInt("MIN_PARENT_PROPERTIES", &c.MinParentProperties),
	)

	var title, version string
	envString("INFO_TITLE", &title)
	envString("INFO_VERSION", &version)
	if title != "" || version != "" {
		if c.Info == nil {
			c.Info = &Info{}
		}
		if title != "" {
			c.Info.Title = title
		}
		if version != "" {
			c.Info.Version = version
		}
	}
	return errors.Join(errs...)
}

func envString(key string, dst *string) {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		*dst = v
	}
}

// envList reads a comma-separated list. Blank elements are dropped.
func envList(key string, dst *[]string) {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	*dst = out
}

func envBool(key string, dst *bool) error {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return &oaserrors.ConfigError{Option: EnvPrefix + key, Value: v, Message: "expected a boolean", Cause: err}
	}
	*dst = b
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(EnvPrefix + key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return &oaserrors.ConfigError{Option: EnvPrefix + key, Value: v, Message: "expected an integer", Cause: err}
	}
	*dst = n
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field. Each failing field becomes one
// *oaserrors.ConfigError; they are joined.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &oaserrors.ConfigError{Message: "validating", Cause: err}
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, &oaserrors.ConfigError{
			Option:  strings.TrimPrefix(fe.Namespace(), "Config."),
			Value:   fe.Value(),
			Message: describe(fe),
		})
	}
	return errors.Join(errs...)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "startswith":
		return fmt.Sprintf("must start with %q", fe.Param())
	case "ne":
		return fmt.Sprintf("must not be %q", fe.Param())
	}
	return "failed " + fe.Tag() + " check"
}

// NonRequired merges NonRequiredProps into the built-in list.
func (c *Config) NonRequired() map[string][]string {
	out := normalizer.DefaultNonRequiredProps()
	for def, props := range c.NonRequiredProps {
		out[def] = append(out[def], props...)
	}
	return out
}

// CompilerOptions maps the settings onto compiler options. Seeds are loaded
// by the caller because they need file access.
func (c *Config) CompilerOptions() []compiler.Option {
	opts := []compiler.Option{
		compiler.WithBasePath(c.BasePath),
		compiler.WithExclusions(c.UseDefaultExclusions, c.Exclude...),
		compiler.WithNonRequiredProps(c.NonRequired()),
		compiler.WithURLEncodeParams(c.URLEncodeParams...),
		compiler.WithExtendedSuffix(c.ExtendedSuffix),
		compiler.WithCreateParamsSuffix(c.CreateParamsSuffix),
		compiler.WithMinParentProperties(c.MinParentProperties),
		compiler.WithRebase(c.Rebase),
	}
	if info := c.swaggerInfo(); info != nil {
		opts = append(opts, compiler.WithInfo(*info))
	}
	return opts
}

// swaggerInfo returns nil when no info block is configured.
func (c *Config) swaggerInfo() *swagger.Info {
	if c.Info == nil {
		return nil
	}
	info := compiler.DefaultInfo()
	if c.Info.Title != "" {
		info.Title = c.Info.Title
	}
	if c.Info.Description != "" {
		info.Description = c.Info.Description
	}
	if c.Info.TermsOfService != "" {
		info.TermsOfService = c.Info.TermsOfService
	}
	info.Version = c.Info.Version
	if ct := c.Info.Contact; ct != nil {
		info.Contact = &swagger.Contact{Name: ct.Name, Email: ct.Email, URL: ct.URL}
	}
	if l := c.Info.License; l != nil {
		info.License = &swagger.License{Name: l.Name, URL: l.URL}
	}
	return &info
}

// Seeds reads the definitions of SeedFile. It returns nil when no seed file
// is configured. JSON files are read as YAML.
func (c *Config) Seeds() ([]*registry.Definition, error) {
	if c.SeedFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.SeedFile) //nolint:gosec // G304: seed path is user supplied
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: "seed_file", Value: c.SeedFile, Message: "reading file", Cause: err}
	}
	var doc swagger.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oaserrors.ConfigError{Option: "seed_file", Value: c.SeedFile, Message: "decoding document", Cause: err}
	}
	return registry.SeedsFromSchemas(doc.Definitions), nil
}
