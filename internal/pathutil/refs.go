// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

// IsHTTPRef reports whether ref points at a remote document.
func IsHTTPRef(ref string) bool {
	return len(ref) > 7 && (ref[:7] == "http://" || (len(ref) > 8 && ref[:8] == "https://"))
}
