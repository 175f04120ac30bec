// Package typemodel turns parsed schemas into a canonical, de-duplicated type model.
//
// A Resolver walks schemas on demand. Component schemas and inline objects and enums
// become named declarations (Named) recorded in a Registry; arrays, maps and primitives
// resolved inline become use-site Type values. Resolving the same schema twice returns the
// same Type, and cyclic schemas terminate because a declaration's identifier is reserved
// before its children are resolved.
//
// # Identity
//
// Component schemas are identified by their canonical pointer. Inline schemas are
// identified structurally (see internal/schemautil), so two identical anonymous objects
// share one declaration named after the first place it was discovered.
//
// # Naming
//
// Identifiers come from the component key, else the Hint passed by the caller, else the
// schema title, else "Type". Children derive hints from their parent: "<Parent> <Property>"
// for properties, "<Hint> Item" for array elements and "<Hint> Value" for map values. On a
// collision the hint's Scope is prefixed, then numeric suffixes are appended.
//
// # Composition
//
// allOf, anyOf and oneOf are flattened into a single object: branches are merged in that
// order, the schema's own properties last. When two branches define the same property
// the later definition wins and the property keeps its first position. A composition
// with a single referenced branch and no own properties resolves to that branch.
//
// # Example
//
//	r := typemodel.NewResolver()
//	t, err := r.Resolve(doc.Components.Schema("Pet"), typemodel.Hint{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, n := range r.Registry().All() {
//		fmt.Println(n.Name, n.Kind)
//	}
package typemodel
