package analyzer

import (
	"github.com/erraggy/oastypes/internal/issues"
	"github.com/erraggy/oastypes/parser"
	"github.com/erraggy/oastypes/typemodel"
)

// DefaultGroup is the group of operations that declare no tags.
const DefaultGroup = "default"

// Result is the indexed form of one document: its operations grouped by tag and the type
// model they are bound to. A Result owns the Resolver that built the model; ResolveType
// keeps using it, so later lookups agree with the indexed operations.
type Result struct {
	// Version is the declared openapi version string
	Version string `json:"version" yaml:"version"`
	// Info is passed through from the document
	Info parser.Info `json:"info" yaml:"info"`
	// Servers is passed through from the document
	Servers []*parser.Server `json:"servers,omitempty" yaml:"servers,omitempty"`
	// SecuritySchemes is passed through from the document components
	SecuritySchemes []*parser.SecurityScheme `json:"securitySchemes,omitempty" yaml:"securitySchemes,omitempty"`
	// Groups holds the operation groups in discovery order
	Groups []*Group `json:"groups" yaml:"groups"`

	resolver *typemodel.Resolver
	issues   issues.List
}

// OperationsByGroup returns the groups in discovery order, each with its operations in
// path order.
func (r *Result) OperationsByGroup() []*Group {
	return r.Groups
}

// Group returns the group with the given tag name, or nil.
func (r *Result) Group(name string) *Group {
	for _, g := range r.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// AllNamedTypes returns every named declaration in first-discovery order.
func (r *Result) AllNamedTypes() []*typemodel.Named {
	return r.resolver.Registry().All()
}

// Declaration returns the named declaration with the given identifier, or nil.
func (r *Result) Declaration(identifier string) *typemodel.Named {
	return r.resolver.Registry().Declaration(identifier)
}

// ResolveType returns the use-site type of s, declaring it first if it was never reached.
func (r *Result) ResolveType(s *parser.Schema) (typemodel.Type, error) {
	return r.resolver.ResolveType(s)
}

// Issues returns the findings of indexing followed by those of type resolution.
func (r *Result) Issues() issues.List {
	out := make(issues.List, 0, len(r.issues)+len(r.resolver.Issues()))
	out = append(out, r.issues...)
	return append(out, r.resolver.Issues()...)
}

// Group is the set of operations sharing a tag.
type Group struct {
	// Name is the tag as written in the document
	Name string `json:"name" yaml:"name"`
	// Identifier is the exported Go form of Name, e.g. "PetStore" for "pet-store"
	Identifier  string       `json:"identifier" yaml:"identifier"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Operations  []*Operation `json:"operations" yaml:"operations"`
}

// Operation describes one path and method bound to the type model.
//
// An operation with several tags appears in each of their groups; the copies share
// everything but Name, which is de-duplicated within each group.
type Operation struct {
	// Name is the method identifier, unique within the group
	Name        string `json:"name" yaml:"name"`
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	// Method is the upper-case HTTP method
	Method      string   `json:"method" yaml:"method"`
	Path        string   `json:"path" yaml:"path"`
	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	// Security lists the scheme names the operation may authenticate with, in document
	// order. Empty means no authentication.
	Security   []string     `json:"security,omitempty" yaml:"security,omitempty"`
	Parameters []*Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	// Body is nil when the operation takes no request body.
	Body *Body `json:"body,omitempty" yaml:"body,omitempty"`
	// Response is the selected success response, nil when the operation declares none.
	Response *Response `json:"response,omitempty" yaml:"response,omitempty"`

	Pointer string `json:"pointer" yaml:"pointer"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// Signature returns "METHOD /path".
func (o *Operation) Signature() string {
	return o.Method + " " + o.Path
}

// ParamLocation is where a parameter is sent.
type ParamLocation string

const (
	ParamPath   ParamLocation = "path"
	ParamQuery  ParamLocation = "query"
	ParamHeader ParamLocation = "header"
	ParamCookie ParamLocation = "cookie"
)

// Parameter is one resolved operation parameter.
type Parameter struct {
	// Name is the Go parameter identifier, unique within the operation
	Name string `json:"name" yaml:"name"`
	// WireName is the parameter name as written in the document
	WireName    string         `json:"wireName" yaml:"wireName"`
	In          ParamLocation  `json:"in" yaml:"in"`
	Type        typemodel.Type `json:"type" yaml:"type"`
	Required    bool           `json:"required" yaml:"required"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  bool           `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Encoding is how a selected body is serialized.
type Encoding int

const (
	// EncodingJSON is application/json or a +json media type.
	EncodingJSON Encoding = iota
	// EncodingMultipart is a multipart body, exploded into form fields.
	EncodingMultipart
	// EncodingFormURLEncoded is application/x-www-form-urlencoded, exploded into form fields.
	EncodingFormURLEncoded
	// EncodingRaw is any other media type, passed as a byte stream.
	EncodingRaw
)

var encodingNames = [...]string{"json", "multipart", "form", "raw"}

// String returns the lower-case encoding name.
func (e Encoding) String() string {
	if e >= 0 && int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (e Encoding) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// IsForm reports whether bodies of this encoding are sent as form fields.
func (e Encoding) IsForm() bool {
	return e == EncodingMultipart || e == EncodingFormURLEncoded
}

// Body is the selected request body of an operation.
type Body struct {
	MediaType string   `json:"mediaType" yaml:"mediaType"`
	Encoding  Encoding `json:"encoding" yaml:"encoding"`
	// Type is the resolved body schema. It is unset for form encodings, whose properties
	// are listed in Fields instead.
	Type        typemodel.Type `json:"type" yaml:"type"`
	Required    bool           `json:"required" yaml:"required"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []*FormField   `json:"fields,omitempty" yaml:"fields,omitempty"`
	// Alternatives lists the media types that were not selected, with their types.
	Alternatives []*Alternative `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
}

// FormField is one property of a multipart or form-encoded body.
type FormField struct {
	// Name is the Go parameter identifier, unique within the operation
	Name     string         `json:"name" yaml:"name"`
	WireName string         `json:"wireName" yaml:"wireName"`
	Type     typemodel.Type `json:"type" yaml:"type"`
	Required bool           `json:"required" yaml:"required"`
	// Binary marks a file part (format: binary).
	Binary      bool   `json:"binary,omitempty" yaml:"binary,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Response is the selected success response of an operation.
type Response struct {
	// StatusCode is the responses key: "200", "2XX" or "default"
	StatusCode  string `json:"statusCode" yaml:"statusCode"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// MediaType is empty when the response has no content.
	MediaType string `json:"mediaType,omitempty" yaml:"mediaType,omitempty"`
	// Encoding is EncodingJSON or EncodingRaw when MediaType is set.
	Encoding     Encoding       `json:"encoding" yaml:"encoding"`
	Type         typemodel.Type `json:"type" yaml:"type"`
	Alternatives []*Alternative `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
}

// HasBody reports whether the response carries content.
func (r *Response) HasBody() bool {
	return r != nil && r.MediaType != ""
}

// Alternative is a media type the operation accepts or returns besides the selected one.
// Its type is any when it could not be resolved.
type Alternative struct {
	MediaType string         `json:"mediaType" yaml:"mediaType"`
	Type      typemodel.Type `json:"type" yaml:"type"`
}
