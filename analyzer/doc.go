// Package analyzer indexes the operations of an OpenAPI document and binds them to the
// type model built by package typemodel.
//
// Operations are grouped by tag in discovery order; an operation with several tags is
// listed under each, and untagged operations fall into the "default" group. For every
// operation the analyzer resolves its parameters, selects one request body media type and
// one success response, and resolves their schemas with a single Resolver shared by the
// whole run.
//
// # Quick Start
//
//	result, err := analyzer.AnalyzeWithOptions(
//		analyzer.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, g := range result.OperationsByGroup() {
//		for _, op := range g.Operations {
//			fmt.Println(g.Name, op.Name, op.Signature())
//		}
//	}
//	for _, n := range result.AllNamedTypes() {
//		fmt.Println(n)
//	}
//
// # Media Type Selection
//
// Request bodies prefer application/json, then other JSON types (+json), then
// multipart/form-data, then application/x-www-form-urlencoded, then the first declared
// type. Multipart and form bodies are exploded into fields; their schema must be an
// object. Responses prefer JSON and otherwise take the first declared type.
//
// The success response is 200, else the lowest other 2xx code, else 2XX, else default.
//
// Media types that were not selected are resolved too and listed as alternatives. A
// failure there is recorded as a warning and the alternative becomes any; a failure on a
// selected media type, a parameter or a component schema fails the run.
package analyzer
