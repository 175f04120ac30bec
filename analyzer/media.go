package analyzer

import (
	"errors"
	"mime"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/parser"
)

const (
	mediaJSON      = "application/json"
	mediaMultipart = "multipart/form-data"
	mediaForm      = "application/x-www-form-urlencoded"
)

// mediaEntry is a content entry with its parsed media type; base is empty when the
// name does not parse.
type mediaEntry struct {
	media *parser.MediaType
	base  string
	err   error
}

func parseContent(content []*parser.MediaType) []mediaEntry {
	out := make([]mediaEntry, 0, len(content))
	for _, m := range content {
		base, _, err := mime.ParseMediaType(m.Name)
		if err == nil && !strings.Contains(base, "/") {
			err = errors.New("media type has no subtype")
		}
		if err != nil {
			base = ""
		}
		out = append(out, mediaEntry{media: m, base: base, err: err})
	}
	return out
}

// isJSON reports whether base is application/json, a +json type or another */json type.
func isJSON(base string) bool {
	if base == "" {
		return false
	}
	_, sub, _ := strings.Cut(base, "/")
	return sub == "json" || strings.HasSuffix(sub, "+json")
}

func encodingOf(base string) Encoding {
	switch {
	case isJSON(base):
		return EncodingJSON
	case strings.HasPrefix(base, "multipart/"):
		return EncodingMultipart
	case base == mediaForm:
		return EncodingFormURLEncoded
	}
	return EncodingRaw
}

// requestRank orders request media: application/json, other JSON, multipart/form-data,
// form-urlencoded. Everything else ranks last and is picked in document order.
func requestRank(base string) int {
	switch {
	case base == mediaJSON:
		return 0
	case isJSON(base):
		return 1
	case base == mediaMultipart:
		return 2
	case base == mediaForm:
		return 3
	}
	return 4
}

// responseRank prefers JSON and otherwise keeps document order.
func responseRank(base string) int {
	switch {
	case base == mediaJSON:
		return 0
	case isJSON(base):
		return 1
	}
	return 2
}

// selectMedia returns the index of the preferred entry, or -1 for no content. A
// selected entry whose name does not parse is an unsupported construct.
func selectMedia(entries []mediaEntry, rank func(string) int) (int, error) {
	best, bestRank := -1, 0
	for i, e := range entries {
		r := rank(e.base)
		if best < 0 || r < bestRank {
			best, bestRank = i, r
		}
	}
	if best >= 0 && entries[best].err != nil {
		m := entries[best].media
		return -1, &oaserrors.UnsupportedError{
			Pointer:   m.Pointer,
			Construct: "media type",
			Value:     m.Name,
			Message:   entries[best].err.Error(),
		}
	}
	return best, nil
}

// successResponse picks 200, then the other explicit 2xx codes ascending, then 2XX, then
// default.
func successResponse(responses []*parser.Response) *parser.Response {
	var explicit []*parser.Response
	var wildcard, fallback *parser.Response
	for _, r := range responses {
		code := strings.ToUpper(r.StatusCode)
		switch {
		case code == "2XX":
			wildcard = r
		case code == "DEFAULT":
			fallback = r
		case len(code) == 3 && code[0] == '2':
			if _, err := strconv.Atoi(code); err == nil {
				explicit = append(explicit, r)
			}
		}
	}
	if len(explicit) > 0 {
		slices.SortStableFunc(explicit, func(a, b *parser.Response) int {
			return strings.Compare(a.StatusCode, b.StatusCode)
		})
		return explicit[0]
	}
	if wildcard != nil {
		return wildcard
	}
	return fallback
}
