package parser

// Document is a parsed OpenAPI 3.x document. Collections keep document order.
type Document struct {
	// Version is the declared openapi version string, e.g. "3.0.3".
	Version    string
	OASVersion Version

	Info    Info
	Servers []*Server
	Tags    []*Tag
	Paths   []*PathItem

	Components Components

	// Security is the document-level requirement list; nil when absent.
	Security []SecurityRequirement
}

// Info is the document info object.
type Info struct {
	Title       string
	Description string
	Version     string
}

// Server is an entry of the servers list.
type Server struct {
	URL         string
	Description string
	Variables   []*ServerVariable
}

// ServerVariable is a templated server URL variable.
type ServerVariable struct {
	Name        string
	Default     string
	Enum        []string
	Description string
}

// Tag is an entry of the top-level tags list.
type Tag struct {
	Name        string
	Description string
}

// Components holds the reusable objects of the document in document order.
type Components struct {
	Schemas         []*Schema
	Parameters      []*Parameter
	RequestBodies   []*RequestBody
	Responses       []*Response
	SecuritySchemes []*SecurityScheme
}

// Schema returns the component schema with the given key, or nil.
func (c *Components) Schema(name string) *Schema {
	for _, s := range c.Schemas {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SecurityScheme returns the named security scheme, or nil.
func (c *Components) SecurityScheme(name string) *SecurityScheme {
	for _, s := range c.SecuritySchemes {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// PathItem is one entry of the paths object.
type PathItem struct {
	Path        string
	Pointer     string
	Summary     string
	Description string
	Parameters  []*Parameter
	// Operations keeps the order the methods appear in under the path.
	Operations []*Operation
}

// Operation is one method of a path item.
type Operation struct {
	Method      string // lower-case HTTP method
	Path        string
	Pointer     string
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
	Parameters  []*Parameter
	RequestBody *RequestBody
	Responses   []*Response
	// Security is the operation-level requirement list. HasSecurity distinguishes an
	// explicit empty list (no auth) from an absent one (inherit the document's).
	Security    []SecurityRequirement
	HasSecurity bool

	Line   int
	Column int
}

// Response returns the response for a status code key, or nil.
func (o *Operation) Response(code string) *Response {
	for _, r := range o.Responses {
		if r.StatusCode == code {
			return r
		}
	}
	return nil
}

// Parameter is an operation or path-level parameter.
type Parameter struct {
	Name        string
	In          string
	Description string
	Required    bool
	Deprecated  bool
	Schema      *Schema
	// Content is used instead of Schema by parameters with complex serialization.
	Content []*MediaType
	Pointer string
	// Key is the component key for components/parameters entries.
	Key string
}

// RequestBody is an operation request body.
type RequestBody struct {
	Description string
	Required    bool
	Content     []*MediaType
	Pointer     string
	Key         string
}

// Response is one entry of an operation's responses.
type Response struct {
	// StatusCode is the responses key: "200", "2XX" or "default".
	StatusCode  string
	Description string
	Content     []*MediaType
	Pointer     string
	Key         string
}

// MediaType is one entry of a content map.
type MediaType struct {
	Name    string
	Schema  *Schema
	Pointer string
}

// SecurityScheme is a components/securitySchemes entry.
type SecurityScheme struct {
	Name         string
	Type         string
	Scheme       string
	In           string
	ParamName    string
	BearerFormat string
	Description  string
}

// SecurityRequirement is one alternative of a security list: the scheme names that must
// all be satisfied, in document order, with their scopes.
type SecurityRequirement struct {
	Names  []string
	Scopes map[string][]string
}
