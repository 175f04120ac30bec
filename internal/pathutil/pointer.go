package pathutil

import (
	"fmt"
	"net/url"
	"strings"
)

var (
	tokenEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	tokenUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// EscapeToken escapes a single reference token.
func EscapeToken(s string) string {
	return tokenEscaper.Replace(s)
}

// UnescapeToken reverses EscapeToken.
func UnescapeToken(s string) string {
	return tokenUnescaper.Replace(s)
}

// Pointer is an immutable JSON pointer anchored in a document location.
// An empty location means the root document.
type Pointer struct {
	location string
	fragment string
}

// NewPointer returns the root pointer of the document at location.
func NewPointer(location string) Pointer {
	return Pointer{location: location}
}

// Append returns a pointer one token deeper.
func (p Pointer) Append(token string) Pointer {
	return Pointer{location: p.location, fragment: p.fragment + "/" + EscapeToken(token)}
}

// AppendIndex returns a pointer to an array element.
func (p Pointer) AppendIndex(i int) Pointer {
	return Pointer{location: p.location, fragment: fmt.Sprintf("%s/%d", p.fragment, i)}
}

// Location returns the document location of the pointer.
func (p Pointer) Location() string {
	return p.location
}

// Fragment returns the fragment without the leading "#".
func (p Pointer) Fragment() string {
	return p.fragment
}

// String renders the pointer as "<location>#<fragment>".
func (p Pointer) String() string {
	return p.location + "#" + p.fragment
}

// SplitRef splits a $ref into document location and fragment (without "#").
// Example: "pet.yaml#/Pet" -> ("pet.yaml", "/Pet"); "#/a" -> ("", "/a")
func SplitRef(ref string) (location, fragment string) {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}

// ParseFragment converts a fragment such as "/components/schemas/Pet%20Owner" into
// unescaped tokens. An empty fragment addresses the whole document.
func ParseFragment(fragment string) ([]string, error) {
	if fragment == "" {
		return nil, nil
	}
	decoded, err := url.PathUnescape(fragment)
	if err != nil {
		return nil, fmt.Errorf("pathutil: invalid fragment %q: %w", fragment, err)
	}
	if !strings.HasPrefix(decoded, "/") {
		return nil, fmt.Errorf("pathutil: fragment %q must start with '/'", fragment)
	}
	tokens := strings.Split(decoded[1:], "/")
	for i, t := range tokens {
		tokens[i] = UnescapeToken(t)
	}
	return tokens, nil
}
