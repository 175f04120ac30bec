// Package oastypes turns OpenAPI 3.x documents into a canonical, de-duplicated Go type model
// and into Go client interfaces bound to that model.
//
// # Overview
//
// The module is organized as a pipeline:
//
//   - parser: load a document (file, URL, reader or bytes) into an order-preserving,
//     read-only tree with every $ref linked to its target
//   - typemodel: classify schema nodes, flatten compositions and resolve each node to a
//     stable named or inline type through a reserve/commit registry
//   - analyzer: group operations by tag and pick one request and one success response
//     representation per operation, resolving every schema they depend on
//   - generator: render Go source (types, one interface per group, metadata) from an
//     analyzer result
//
// Supported versions are OAS 3.0.x, 3.1.x and 3.2.x. Swagger 2.0 documents are rejected.
//
// # Quick Start
//
//	parsed, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := analyzer.AnalyzeWithOptions(analyzer.WithParseResult(parsed))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, n := range res.AllNamedTypes() {
//		fmt.Println(n.Name)
//	}
//
// Generate Go code:
//
//	out, err := generator.GenerateWithOptions(
//		generator.WithAnalysis(res),
//		generator.WithPackageName("petstore"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := out.WriteFiles("./petstore"); err != nil {
//		log.Fatal(err)
//	}
//
// # Command line
//
// The oastypes binary wraps the same pipeline:
//
//	oastypes generate -p petstore -o ./petstore openapi.yaml
//	oastypes generate --dry-run -l pets,store openapi.yaml
//	oastypes inspect --format yaml openapi.yaml
//	oastypes validate openapi.yaml
//	oastypes mcp
//
// The mcp command serves the validate, resolve_types, list_operations and generate tools
// over the Model Context Protocol on stdio.
package oastypes
