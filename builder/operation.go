package builder

import (
	"slices"

	"github.com/Isilon/isilon-sdk/internal/naming"
	"github.com/Isilon/isilon-sdk/normalizer"
	"github.com/Isilon/isilon-sdk/papi"
	"github.com/Isilon/isilon-sdk/registry"
	"github.com/Isilon/isilon-sdk/swagger"
)

// Operation names.
const (
	OpCreate = "create"
	OpList   = "list"
	OpGet    = "get"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Response descriptions emitted for every operation.
const (
	NoContentDescription = "Success."
	ErrorDescription     = "Unexpected error"
)

// opSpec describes one operation to build.
type opSpec struct {
	endpoint  string
	method    papi.Method
	operation string
	namespace string
	// object names the operation and its schemas.
	object string
	// body overrides object as the name of the request body definition.
	body string
	// suffix disambiguates colliding definition names.
	suffix string
	args   papi.Args
	input  papi.Fragment
	output papi.Fragment
}

func (b *Builder) base(res resource, d *papi.EndpointDescriptor) (map[string]*swagger.PathItem, error) {
	item := &swagger.PathItem{}
	params := naming.PathParams(d.URI)

	if md := d.Method(papi.MethodPost); md != nil {
		one, _ := naming.Singular(res.object, "Item")
		op, err := b.operation(res.api, opSpec{
			endpoint: d.URI, method: papi.MethodPost, operation: OpCreate,
			namespace: res.namespace, object: one, suffix: b.opts.CreateParamsSuffix,
			args: md.Args, input: md.Input, output: md.Output,
		})
		if err != nil {
			return nil, err
		}
		item.Post = b.withPathParams(op, params, "")
	}
	if md := d.Method(papi.MethodGet); md != nil {
		name := OpGet
		if d.Has(papi.MethodPost) {
			name = OpList
		}
		op, err := b.operation(res.api, opSpec{
			endpoint: d.URI, method: papi.MethodGet, operation: name,
			namespace: res.namespace, object: res.object, suffix: b.opts.ExtendedSuffix,
			args: md.Args, output: md.Output,
		})
		if err != nil {
			return nil, err
		}
		item.Get = b.withPathParams(op, params, "")
	}
	if md := d.Method(papi.MethodPut); md != nil {
		op, err := b.operation(res.api, opSpec{
			endpoint: d.URI, method: papi.MethodPut, operation: OpUpdate,
			namespace: res.namespace, object: res.object, suffix: b.opts.ExtendedSuffix,
			args: md.Args, input: md.Input,
		})
		if err != nil {
			return nil, err
		}
		item.Put = b.withPathParams(op, params, "")
	}
	if md := d.Method(papi.MethodDelete); md != nil {
		op, err := b.operation(res.api, opSpec{
			endpoint: d.URI, method: papi.MethodDelete, operation: OpDelete,
			namespace: res.namespace, object: res.object, suffix: b.opts.ExtendedSuffix,
			args: md.Args,
		})
		if err != nil {
			return nil, err
		}
		item.Delete = b.withPathParams(op, params, "")
	}

	if len(item.Operations()) == 0 {
		return nil, nil
	}
	return map[string]*swagger.PathItem{res.path: item}, nil
}

func (b *Builder) item(res resource, d *papi.EndpointDescriptor) (map[string]*swagger.PathItem, error) {
	params := naming.PathParams(d.URI)
	if len(params) == 0 {
		return nil, &EndpointError{Endpoint: d.URI, Cause: errNotItem}
	}
	idParam := params[len(params)-1]
	ancestors := params[:len(params)-1]

	// The item id is named after the singular object, or after the
	// placeholder when the object name has no plural form.
	one, postfixed := naming.Singular(res.object, idParam.Name)
	idParam.Name = res.namespace + one + "Id"
	body := ""
	if postfixed {
		idParam.Name = res.namespace + one
		body = one + "Params"
	}
	path := res.path + "/{" + idParam.Name + "}"
	idParams := append([]naming.PathParam{idParam}, ancestors...)

	item := &swagger.PathItem{}
	if md := d.Method(papi.MethodPut); md != nil {
		op, err := b.operation(res.api, opSpec{
			endpoint: d.URI, method: papi.MethodPut, operation: OpUpdate,
			namespace: res.namespace, object: one, body: body, suffix: b.opts.ExtendedSuffix,
			args: md.Args, input: md.Input,
		})
		if err != nil {
			return nil, err
		}
		op.OperationID = naming.OperationID(OpUpdate, res.namespace, one)
		item.Put = b.withPathParams(op, idParams, md.Args.Description)
	}
	if md := d.Method(papi.MethodDelete); md != nil {
		op, err := b.operation(res.api, opSpec{
			endpoint: d.URI, method: papi.MethodDelete, operation: OpDelete,
			namespace: res.namespace, object: one, suffix: b.opts.ExtendedSuffix,
			args: md.Args,
		})
		if err != nil {
			return nil, err
		}
		op.OperationID = naming.OperationID(OpDelete, res.namespace, one)
		item.Delete = b.withPathParams(op, idParams, md.Args.Description)
	}
	if md := d.Method(papi.MethodGet); md != nil {
		// The response keeps the plural name so the collection GET response
		// can extend it.
		op, err := b.operation(res.api, opSpec{
			endpoint: d.URI, method: papi.MethodGet, operation: OpGet,
			namespace: res.namespace, object: res.object, suffix: b.opts.ExtendedSuffix,
			args: md.Args, output: md.Output,
		})
		if err != nil {
			return nil, err
		}
		op.OperationID = naming.OperationID(OpGet, res.namespace, one)
		item.Get = b.withPathParams(op, idParams, md.Args.Description)
	}
	if md := d.Method(papi.MethodPost); md != nil {
		op, err := b.operation(res.api, opSpec{
			endpoint: d.URI, method: papi.MethodPost, operation: OpCreate,
			namespace: res.namespace, object: one, suffix: b.opts.CreateParamsSuffix,
			args: md.Args, input: md.Input, output: md.Output,
		})
		if err != nil {
			return nil, err
		}
		op.OperationID = naming.OperationID(OpCreate, res.namespace, one)
		item.Post = b.withPathParams(op, idParams, md.Args.Description)
	}

	if len(item.Operations()) == 0 {
		return nil, nil
	}
	return map[string]*swagger.PathItem{path: item}, nil
}

// operation builds everything but the path parameters.
func (b *Builder) operation(api string, s opSpec) (*swagger.Operation, error) {
	ctx := normalizer.Context{Endpoint: s.endpoint, Suffix: s.suffix}
	op := &swagger.Operation{
		Tags:        []string{api},
		Description: s.args.Description,
		OperationID: s.operation + s.namespace + s.object,
		Parameters:  b.norm.Params(s.args, ctx),
		Responses:   make(map[string]*swagger.Response, 2),
	}

	respNamespace, respObject := s.namespace, s.object
	if s.input != nil {
		body := s.body
		if body == "" {
			body = s.object
		}
		t, err := b.norm.Object(s.namespace, body, s.input, ctx)
		if err != nil {
			return nil, b.fail(s, err)
		}
		op.Parameters = append(op.Parameters, &swagger.Parameter{
			Name:     s.namespace + body,
			In:       "body",
			Required: true,
			Schema:   t.Schema(),
		})
		// Responses of body-carrying verbs share one schema per operation.
		respNamespace = naming.Capitalize(s.operation) + s.namespace
		respObject = s.object + "Response"
	}

	if s.output == nil {
		op.Responses["204"] = &swagger.Response{Description: NoContentDescription}
	} else {
		ctx.Response = true
		resp, err := b.response(respNamespace, respObject, s.args.Description, s.output, ctx)
		if err != nil {
			return nil, b.fail(s, err)
		}
		op.Responses["200"] = resp
	}
	op.Responses["default"] = &swagger.Response{
		Description: ErrorDescription,
		Schema:      &swagger.Schema{Ref: swagger.RefTo(registry.ErrorDefinition)},
	}
	return op, nil
}

// response builds the 200 response. Objects and unions are registered as
// definitions; arrays and scalars are inlined.
func (b *Builder) response(namespace, object, description string, out papi.Fragment, ctx normalizer.Context) (*swagger.Response, error) {
	switch out.Kind() {
	case papi.KindObject, papi.KindUnion, papi.KindRef:
		t, err := b.norm.Object(namespace, object, out, ctx)
		if err != nil {
			return nil, err
		}
		return &swagger.Response{Description: description, Schema: t.Schema()}, nil
	}

	t, err := b.norm.Property(namespace, object, "items", out, ctx)
	if err != nil {
		return nil, err
	}
	if out.Common().Description != "" {
		description = out.Common().Description
	}
	t.Description = ""
	return &swagger.Response{Description: description, Schema: t.Schema()}, nil
}

// withPathParams appends one path parameter per placeholder. The first
// parameter takes description when it is not empty.
func (b *Builder) withPathParams(op *swagger.Operation, params []naming.PathParam, description string) *swagger.Operation {
	for i, p := range params {
		sp := &swagger.Parameter{Name: p.Name, In: "path", Required: true, Type: p.Type}
		if i == 0 {
			sp.Description = description
		}
		if slices.Contains(b.opts.URLEncodeParams, p.Name) {
			sp.Extra = map[string]any{swagger.URLEncodeExtension: true}
		}
		op.Parameters = append(op.Parameters, sp)
	}
	return op
}

func (b *Builder) fail(s opSpec, err error) error {
	return &EndpointError{Endpoint: s.endpoint, Method: string(s.method), Operation: s.operation, Cause: err}
}
