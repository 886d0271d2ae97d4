// Package testutil provides test utilities and describe fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Prop builds a scalar property fragment.
func Prop(typ, description string) map[string]any {
	p := map[string]any{"type": typ}
	if description != "" {
		p["description"] = description
	}
	return p
}

// Required marks a property fragment as required and returns it.
func Required(prop map[string]any) map[string]any {
	prop["required"] = true
	return prop
}

// Object builds an object fragment with the given properties.
func Object(props map[string]any) map[string]any {
	return map[string]any{"type": "object", "properties": props}
}

// ArrayOf builds an array fragment.
func ArrayOf(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

// Args builds a <VERB>_args fragment. props may be nil.
func Args(description string, props map[string]any) map[string]any {
	a := map[string]any{"description": description}
	if props != nil {
		a["properties"] = props
	}
	return a
}

// Endpoint is a describe blob under construction.
type Endpoint map[string]any

// Method adds a verb to the blob. input and output may be nil.
func (e Endpoint) Method(verb string, args, input, output map[string]any) Endpoint {
	e[verb+"_args"] = args
	if input != nil {
		e[verb+"_input_schema"] = input
	}
	if output != nil {
		e[verb+"_output_schema"] = output
	}
	return e
}

// Catalog builds a catalog document from a directory listing and the describe
// blobs keyed by URI.
func Catalog(version int, directory []string, blobs map[string]Endpoint) map[string]any {
	c := map[string]any{
		"version":   version,
		"directory": directory,
	}
	for uri, blob := range blobs {
		c[uri] = map[string]any(blob)
	}
	return c
}

// CreateResponse is the output schema PAPI returns from collection POSTs.
func CreateResponse() map[string]any {
	return Object(map[string]any{
		"id": map[string]any{
			"description": "ID of created item that can be used to refer to item in the collection-item resource path.",
			"type":        "string",
			"maxLength":   255,
			"minLength":   0,
			"required":    true,
		},
	})
}

// NFSExportFields returns the writable fields of an NFS export.
func NFSExportFields() map[string]any {
	return map[string]any{
		"description": Prop("string", "A human readable description of the export."),
		"paths":       Required(ArrayOf(Prop("string", ""))),
		"zone":        Prop("string", "The zone in which the export is valid."),
	}
}

// NFSExportItem returns an NFS export as the collection GET returns it.
func NFSExportItem() map[string]any {
	fields := NFSExportFields()
	fields["id"] = Required(Prop("integer", "The export ID number."))
	return Object(fields)
}

// NFSExportsCatalog is a small but complete catalog: the NFS exports
// collection (POST, GET) and item (GET, PUT, DELETE) at PAPI version 3.
func NFSExportsCatalog() map[string]any {
	base := Endpoint{}.
		Method("POST", Args("Create a new NFS export.", nil), Object(NFSExportFields()), CreateResponse()).
		Method("GET", Args("List all NFS exports.", map[string]any{
			"zone":  Prop("string", "Specifies which access zone to use."),
			"limit": map[string]any{"type": "int", "description": "Return no more than this many results.", "minimum": 1},
		}), nil, Object(map[string]any{
			"exports": ArrayOf(NFSExportItem()),
			"resume":  Prop("string", "Continue returning results from previous call."),
			"total":   Prop("integer", "Total number of items available."),
		}))

	item := Endpoint{}.
		Method("GET", Args("Retrieve export information.", nil), nil, Object(map[string]any{
			"exports": ArrayOf(NFSExportItem()),
		})).
		Method("PUT", Args("Modify the export.", nil), Object(NFSExportFields()), nil).
		Method("DELETE", Args("Delete the export.", nil), nil, nil)

	return Catalog(3, []string{
		"/1/protocols/nfs/exports",
		"/3/protocols/nfs/exports",
		"/1/protocols/nfs/exports/<EID>",
		"/3/protocols/nfs/exports/<EID>",
	}, map[string]Endpoint{
		"/3/protocols/nfs/exports":       base,
		"/3/protocols/nfs/exports/<EID>": item,
	})
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
