package naming

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// goKeywords contains the Go keywords. Predeclared identifiers such as "error" or
// "string" are not listed because they may be shadowed.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// IsKeyword reports whether s is a Go keyword.
func IsKeyword(s string) bool {
	return goKeywords[s]
}

// foldDiacritics maps "café" to "cafe" and "Ünïcödé" to "Unicode".
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// Words splits s into identifier words.
// Example: "get_userByID-v2" -> ["get", "user", "By", "ID", "v2"]
func Words(s string) []string {
	rs := []rune(foldDiacritics(s))
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func isAllUpper(w string) bool {
	hasLetter := false
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// pascal joins words in PascalCase. All-caps words are kept as acronyms when the source
// mixes cases, or when there is only one word; SCREAMING_SNAKE input is title-cased.
func pascal(raw string, words []string) string {
	hasLower := strings.IndexFunc(raw, unicode.IsLower) >= 0
	var b strings.Builder
	for _, w := range words {
		switch {
		case isAllUpper(w) && (hasLower || len(words) == 1):
			b.WriteString(w)
		case isAllUpper(w):
			b.WriteString(cases.Title(language.English).String(w))
		default:
			b.WriteString(cases.Title(language.English, cases.NoLower).String(w))
		}
	}
	return b.String()
}

func exported(id, prefix, empty string) string {
	if id == "" {
		return empty
	}
	first, _ := firstRune(id)
	if !unicode.IsUpper(first) {
		return prefix + id
	}
	return id
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

// ToTypeIdentifier converts raw into an exported Go type name.
// Example: "pet_status" -> "PetStatus", "404" -> "T404", "" -> "Type"
func ToTypeIdentifier(raw string) string {
	return exported(pascal(raw, Words(raw)), "T", "Type")
}

// ToFieldIdentifier converts a property name into an exported struct field name.
// Example: "first-name" -> "FirstName", "1" -> "Field1"
func ToFieldIdentifier(raw string) string {
	return exported(pascal(raw, Words(raw)), "Field", "Field")
}

// ToConstantIdentifier converts an enum literal into a constant name suffix.
// Example: "OK" -> "OK", "in-progress" -> "InProgress", "IN_PROGRESS" -> "InProgress",
// "-1" -> "Minus1", "1.5" -> "Value1Point5", "" -> "Empty"
func ToConstantIdentifier(raw string) string {
	text := raw
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		text = strings.ReplaceAll(raw, ".", " Point ")
	}
	id := pascal(text, Words(text))
	if strings.HasPrefix(raw, "-") && id != "" {
		if r, _ := firstRune(id); unicode.IsDigit(r) {
			return "Minus" + id
		}
	}
	return exported(id, "Value", "Empty")
}

// ToParamIdentifier converts raw into an unexported lowerCamelCase name suitable for a
// function parameter. Go keywords get a trailing underscore.
// Example: "X-Request-ID" -> "xRequestID", "type" -> "type_", "" -> "param"
func ToParamIdentifier(raw string) string {
	words := Words(raw)
	if len(words) == 0 {
		return "param"
	}
	id := strings.ToLower(words[0]) + pascal(raw, words[1:])
	if r, _ := firstRune(id); !unicode.IsLetter(r) {
		id = "param" + id
	}
	if goKeywords[id] {
		return id + "_"
	}
	return id
}

// ToMethodIdentifier names an operation. The operationId wins when present; otherwise
// the name is built from the HTTP method and path, with "{param}" segments read as
// "By Param".
// Example: ("", "get", "/pets/{petId}") -> "GetPetsByPetId"
func ToMethodIdentifier(operationID, method, path string) string {
	if strings.TrimSpace(operationID) != "" {
		return ToTypeIdentifier(operationID)
	}
	p := strings.ReplaceAll(path, "/", " ")
	p = strings.ReplaceAll(p, "{", " By ")
	p = strings.ReplaceAll(p, "}", " ")
	return ToTypeIdentifier(strings.ToLower(method) + " " + p)
}

// ToSnakeCase converts s to snake_case, for file names.
// Example: "PetStore" -> "pet_store", "HTTPServer" -> "http_server"
func ToSnakeCase(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// Disambiguate returns base when it is free, otherwise base2, base3, ... picking the
// first candidate for which taken reports false.
func Disambiguate(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}
	}
}
