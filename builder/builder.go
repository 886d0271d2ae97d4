package builder

import (
	"errors"
	"maps"

	"github.com/Isilon/isilon-sdk/internal/issues"
	"github.com/Isilon/isilon-sdk/internal/naming"
	"github.com/Isilon/isilon-sdk/normalizer"
	"github.com/Isilon/isilon-sdk/oaserrors"
	"github.com/Isilon/isilon-sdk/papi"
	"github.com/Isilon/isilon-sdk/registry"
	"github.com/Isilon/isilon-sdk/resolver"
	"github.com/Isilon/isilon-sdk/swagger"
)

// Defaults used when Options leaves a field empty.
const (
	DefaultBasePath           = "/platform"
	DefaultExtendedSuffix     = "Extended"
	DefaultCreateParamsSuffix = "CreateParams"
)

// DefaultURLEncodeParams lists the path parameters clients must URL-encode.
func DefaultURLEncodeParams() []string {
	return []string{"NfsAliasId"}
}

// Source supplies endpoint descriptors. *papi.Catalog implements it.
type Source interface {
	Descriptor(uri string) (*papi.EndpointDescriptor, error)
}

var _ Source = (*papi.Catalog)(nil)

// Options configures a Builder.
type Options struct {
	Logger papi.Logger
	// BasePath prefixes every output path.
	BasePath string
	// URLEncodeParams names path parameters tagged with the URL-encode extension.
	URLEncodeParams []string
	// ExtendedSuffix disambiguates colliding definition names.
	ExtendedSuffix string
	// CreateParamsSuffix disambiguates colliding names of creation bodies.
	CreateParamsSuffix string
}

// Result is what one pair produced.
type Result struct {
	// Paths maps output paths to their operations.
	Paths map[string]*swagger.PathItem
	// Built lists the endpoints built successfully.
	Built []string
	// Failed lists the endpoints that were skipped.
	Failed []*EndpointError
}

// Builder builds the path items of one compilation run.
//
// Concurrency: Builder instances are not safe for concurrent use.
type Builder struct {
	src    Source
	norm   *normalizer.Normalizer
	reg    *registry.Registry
	opts   Options
	logger papi.Logger
	issues issues.List

	// identities maps "api:namespace:object" to the output path that claimed it.
	identities map[string]string
}

// New creates a Builder reading descriptors from src and normalizing schemas
// with norm.
func New(src Source, norm *normalizer.Normalizer, opts Options) *Builder {
	if opts.Logger == nil {
		opts.Logger = papi.NopLogger{}
	}
	if opts.BasePath == "" {
		opts.BasePath = DefaultBasePath
	}
	if opts.URLEncodeParams == nil {
		opts.URLEncodeParams = DefaultURLEncodeParams()
	}
	if opts.ExtendedSuffix == "" {
		opts.ExtendedSuffix = DefaultExtendedSuffix
	}
	if opts.CreateParamsSuffix == "" {
		opts.CreateParamsSuffix = DefaultCreateParamsSuffix
	}
	return &Builder{
		src:        src,
		norm:       norm,
		reg:        norm.Registry(),
		opts:       opts,
		logger:     opts.Logger,
		identities: make(map[string]string),
	}
}

// Issues returns the diagnostics recorded while building.
func (b *Builder) Issues() issues.List {
	return b.issues
}

// resource is the naming of one pair.
type resource struct {
	api       string
	namespace string
	object    string
	// path is the output path of the collection.
	path string
}

func (b *Builder) resource(pair resolver.Pair) resource {
	uri := pair.Base
	if uri == "" {
		uri = naming.Parent(pair.Item)
	}
	_, segments := naming.Split(uri)
	api, ns, obj := naming.Names(segments)
	return resource{api: api, namespace: ns, object: obj, path: b.opts.BasePath + naming.SwaggerPath(uri)}
}

// Build builds both sides of pair, collection first. The only error returned
// is *oaserrors.DuplicateOperationError; endpoint failures are reported in
// Result.Failed.
func (b *Builder) Build(pair resolver.Pair) (*Result, error) {
	res := b.resource(pair)
	identity := res.api + ":" + res.namespace + ":" + res.object
	if first, taken := b.identities[identity]; taken {
		return nil, &oaserrors.DuplicateOperationError{Identity: identity, First: first, Second: res.path}
	}
	b.identities[identity] = res.path

	out := &Result{Paths: make(map[string]*swagger.PathItem)}
	if pair.Base != "" {
		b.guard(out, pair.Base, func(d *papi.EndpointDescriptor) (map[string]*swagger.PathItem, error) {
			return b.base(res, d)
		})
	}
	if pair.Item != "" {
		b.guard(out, pair.Item, func(d *papi.EndpointDescriptor) (map[string]*swagger.PathItem, error) {
			return b.item(res, d)
		})
	}
	return out, nil
}

// guard runs build for one endpoint and rolls back its definitions on failure.
func (b *Builder) guard(out *Result, uri string, build func(*papi.EndpointDescriptor) (map[string]*swagger.PathItem, error)) {
	b.logger.Info("processing endpoint", "endpoint", uri)
	mark := b.reg.Mark()

	d, err := b.src.Descriptor(uri)
	var paths map[string]*swagger.PathItem
	if err == nil {
		paths, err = build(d)
	}
	if err != nil {
		b.reg.Rollback(mark)
		var ee *EndpointError
		if !errors.As(err, &ee) {
			ee = &EndpointError{Endpoint: uri, Cause: err}
		}
		b.logger.Error("failed to process endpoint", "endpoint", uri, "error", ee.Cause)
		out.Failed = append(out.Failed, ee)
		return
	}

	if d.Has(papi.MethodHead) {
		b.issues.Warnf(uri, "", "HEAD_args present; HEAD is not emitted")
		b.logger.Warn("HEAD_args present", "endpoint", uri)
	}
	maps.Copy(out.Paths, paths)
	out.Built = append(out.Built, uri)
}
