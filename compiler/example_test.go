package compiler_test

import (
	"fmt"
	"log"

	"github.com/Isilon/isilon-sdk/compiler"
	"github.com/Isilon/isilon-sdk/papi"
)

const clusterConfigCatalog = `{
  "version": 3,
  "directory": ["/1/cluster/config", "/3/cluster/config"],
  "/3/cluster/config": {
    "GET_args": {"description": "Retrieve the cluster configuration."},
    "GET_output_schema": {
      "type": "object",
      "properties": {"name": {"type": "string", "description": "Cluster name."}}
    },
    "PUT_args": {"description": "Modify the cluster configuration."},
    "PUT_input_schema": {
      "type": "object",
      "properties": {"name": {"type": "string", "description": "Cluster name."}}
    }
  }
}`

// Example compiles a one-endpoint catalog and lists the generated operations.
func Example() {
	cat, err := papi.ParseCatalog([]byte(clusterConfigCatalog), papi.FormatJSON)
	if err != nil {
		log.Fatalf("failed to parse catalog: %v", err)
	}

	c, err := compiler.New()
	if err != nil {
		log.Fatalf("failed to create compiler: %v", err)
	}
	result, err := c.Compile(cat)
	if err != nil {
		log.Fatalf("failed to compile: %v", err)
	}

	item := result.Document.Paths["/platform/3/cluster/config"]
	fmt.Printf("Processed: %d, failed: %d\n", result.Stats.Processed, result.Stats.Failed)
	fmt.Printf("GET: %s\n", item.Get.OperationID)
	fmt.Printf("PUT: %s\n", item.Put.OperationID)
	// Output:
	// Processed: 1, failed: 0
	// GET: getClusterConfig
	// PUT: updateClusterConfig
}

// Example_options compiles under a custom base path.
func Example_options() {
	cat, err := papi.ParseCatalog([]byte(clusterConfigCatalog), papi.FormatJSON)
	if err != nil {
		log.Fatalf("failed to parse catalog: %v", err)
	}

	c, err := compiler.New(
		compiler.WithBasePath("/api"),
		compiler.WithRebase(false),
	)
	if err != nil {
		log.Fatalf("failed to create compiler: %v", err)
	}
	result, err := c.Compile(cat)
	if err != nil {
		log.Fatalf("failed to compile: %v", err)
	}
	for path := range result.Document.Paths {
		fmt.Println(path)
	}
	// Output:
	// /api/3/cluster/config
}
