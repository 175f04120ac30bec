// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides JSON pointer and path helpers for OpenAPI documents.
//
// Every schema node carries the JSON pointer of its definition site. [Pointer] builds such
// pointers incrementally with escaping of "~" and "/" per RFC 6901:
//
//	p := pathutil.NewPointer("")
//	p = p.Append("paths").Append("/pets").Append("get")
//	p.String() // "#/paths/~1pets/get"
//
// [SplitRef] separates a $ref into its document location and fragment, and
// [ParseFragment] turns a fragment into unescaped reference tokens:
//
//	loc, frag := pathutil.SplitRef("pet.yaml#/components/schemas/Pet")
//	tokens, err := pathutil.ParseFragment(frag) // ["components", "schemas", "Pet"]
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] validates and cleans output paths. It resolves ".." components and
// rejects symlinks.
package pathutil
