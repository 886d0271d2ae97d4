package swagger

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Isilon/isilon-sdk/oaserrors"
)

var pathTemplate = regexp.MustCompile(`\{([^}]+)\}`)

// Validate checks that doc is self-consistent and that it converts to a
// valid OpenAPI 3 document. The first problem found is returned as a
// *oaserrors.ValidationError.
func Validate(ctx context.Context, doc *Document) error {
	if doc == nil {
		return &oaserrors.ValidationError{Message: "document is nil"}
	}
	if err := checkRefs(doc); err != nil {
		return err
	}
	if err := checkOperations(doc); err != nil {
		return err
	}
	return checkConversion(ctx, doc)
}

func checkRefs(doc *Document) error {
	check := func(path string, s *Schema) error {
		for _, ref := range s.Refs() {
			name := RefName(ref)
			if _, ok := doc.Definitions[name]; name == "" || !ok {
				return &oaserrors.ValidationError{
					Path:    path,
					Message: fmt.Sprintf("unresolved reference %q", ref),
				}
			}
		}
		return nil
	}

	for _, name := range sortedKeys(doc.Definitions) {
		if err := check("definitions."+name, doc.Definitions[name]); err != nil {
			return err
		}
	}
	for _, path := range sortedKeys(doc.Paths) {
		ops := doc.Paths[path].Operations()
		for _, method := range sortedKeys(ops) {
			op := ops[method]
			where := fmt.Sprintf("paths.%s.%s", path, method)
			for _, p := range op.Parameters {
				if err := check(where+".parameters."+p.Name, p.Schema); err != nil {
					return err
				}
			}
			for _, code := range sortedKeys(op.Responses) {
				if err := check(where+".responses."+code, op.Responses[code].Schema); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkOperations(doc *Document) error {
	seen := make(map[string]string)
	for _, path := range sortedKeys(doc.Paths) {
		var want []string
		for _, m := range pathTemplate.FindAllStringSubmatch(path, -1) {
			want = append(want, m[1])
		}

		ops := doc.Paths[path].Operations()
		for _, method := range sortedKeys(ops) {
			op := ops[method]
			where := fmt.Sprintf("paths.%s.%s", path, method)

			if op.OperationID != "" {
				if prev, dup := seen[op.OperationID]; dup {
					return &oaserrors.ValidationError{
						Path:    where,
						Message: fmt.Sprintf("operationId %q already used by %s", op.OperationID, prev),
					}
				}
				seen[op.OperationID] = where
			}

			declared := make(map[string]bool)
			for _, p := range op.Parameters {
				if p.In == "path" {
					declared[p.Name] = true
				}
			}
			for _, name := range want {
				if !declared[name] {
					return &oaserrors.ValidationError{
						Path:    where,
						Message: fmt.Sprintf("path parameter %q is not declared", name),
					}
				}
			}
		}
	}
	return nil
}

// checkConversion round-trips doc through kin-openapi's Swagger 2 model and
// validates the OpenAPI 3 equivalent.
func checkConversion(ctx context.Context, doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return &oaserrors.ValidationError{Message: "encoding document", Cause: err}
	}
	var doc2 openapi2.T
	if err := json.Unmarshal(data, &doc2); err != nil {
		return &oaserrors.ValidationError{Message: "decoding as swagger 2.0", Cause: err}
	}
	doc3, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return &oaserrors.ValidationError{Message: "converting to openapi 3", Cause: err}
	}
	err = doc3.Validate(ctx,
		openapi3.AllowExtraSiblingFields("description"),
		openapi3.DisableSchemaDefaultsValidation(),
		openapi3.DisableExamplesValidation(),
	)
	if err != nil {
		return &oaserrors.ValidationError{Message: "openapi 3 validation failed", Cause: err}
	}
	return nil
}
