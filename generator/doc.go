// Package generator renders Go declarations from an analyzed OpenAPI 3.x document.
//
// The generator emits the named types of the resolved type model and one interface per
// operation group. It produces declarations only: no HTTP client, no server and no
// serialization helpers.
//
// # Quick Start
//
// Generate using functional options:
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("openapi.yaml"),
//		generator.WithPackageName("petstore"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./petstore"); err != nil {
//		log.Fatal(err)
//	}
//
// Or use a reusable Generator instance:
//
//	g := generator.New()
//	g.PackageName = "petstore"
//	g.LimitGroups = []string{"pets"}
//	result, err := g.Generate("openapi.yaml")
//
// # Generated Files
//
//   - types.go: every named declaration, in first-discovery order
//   - <group>_api.go: one interface per operation group, e.g. PetsAPI in pets_api.go
//   - metadata.go: API title and version, generation provenance, server URLs and the
//     security schemes of each method
//
// # Type Mapping
//
// Objects become structs with json tags; optional fields carry omitempty. Enums become a
// defined type over their primitive base with one constant per value. Other named
// schemas become aliases (type X = T), or defined types when DefinedTypes is set or the
// alias refers to itself.
//
// Optional and nullable uses are pointers, except for slices, maps, []byte and any, whose
// zero value already means absent. A required field that would embed its own struct,
// directly or through other required fields, is also a pointer.
//
// # Methods
//
// Each method takes ctx first, then the operation parameters in declared order, then the
// body. Form bodies expand to one parameter per field with file parts as io.Reader;
// other non-JSON bodies are an io.Reader. JSON responses return (T, error), other
// responses (io.ReadCloser, error), and operations without a response body return error.
//
// # Writing
//
// WriteFiles stages every file under a temporary name and renames them into place only
// after all were written. Rendering happens concurrently; output is deterministic for a
// fixed document and GenerationInfo.
package generator
