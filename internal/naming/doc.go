// Package naming turns arbitrary human-readable strings (schema keys, titles, property
// names, enum literals, path segments) into valid Go identifiers.
//
// Words are split on any character outside letters and digits and on casing boundaries
// ("petName", "HTTPServer"), diacritics are folded to their base letters, and the words are
// re-joined in the convention of the identifier category:
//
//   - ToTypeIdentifier and ToFieldIdentifier: exported PascalCase
//   - ToConstantIdentifier: exported PascalCase that keeps single all-caps words ("OK")
//   - ToParamIdentifier: lowerCamelCase with Go keywords escaped
//   - ToMethodIdentifier: operationId, or method plus path when there is none
//
// Collision handling between different schemas is not done here; callers keep their own
// identifier tables and use Disambiguate to pick a free suffixed name.
package naming
