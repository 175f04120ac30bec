// Package parser loads OpenAPI 3.0, 3.1 and 3.2 documents into read-only Document
// trees for type resolution.
//
// Documents may be YAML or JSON, read from files, URLs, readers or byte slices. The
// parser keeps mapping order as written, so properties, components and operations
// are visited in document order downstream. Swagger 2.0 documents are rejected.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, s := range result.Document.Components.Schemas {
//		fmt.Println(s.Name)
//	}
//
// Or create a reusable Parser instance:
//
//	p := parser.New()
//	p.ResolveHTTPRefs = true
//	result, _ := p.Parse("https://example.com/api.yaml")
//
// # References
//
// Schema $ref values are kept on the referencing Schema and linked to their target
// through Schema.Target. Targets are shared: every reference to the same canonical
// location yields the same *Schema, which is what makes component identity stable.
// Cyclic schemas are therefore representable without infinite expansion. A schema
// reference that cannot be resolved is recorded in ParseResult.Warnings and surfaces
// again as an error from Schema.Deref if a caller needs it.
//
// References on parameters, request bodies, responses and path items are followed
// while decoding; a failure there fails the parse.
//
// Relative file references resolve against the directory of the referencing document
// and may not leave the directory of the root document. HTTP references are only
// fetched when ResolveHTTPRefs is set. External documents are cached per parse and
// bounded by MaxCachedDocuments; every document is bounded by MaxFileSize.
//
// # JSON Fast Path
//
// JSON input is decoded with a streaming tokenizer rather than the YAML decoder.
// SourceLocations disables the fast path because only the YAML decoder records line
// and column numbers.
//
// # Version Differences
//
// OpenAPI 3.1 type arrays such as ["string", "null"] set Schema.Nullable, and const
// becomes a single-value Enum. Boolean schemas decode as empty schemas.
package parser
