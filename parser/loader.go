package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erraggy/oastypes/internal/pathutil"
	"github.com/erraggy/oastypes/oaserrors"
	"go.yaml.in/yaml/v4"
)

// maxSchemaDepth bounds schema nesting, which also stops YAML alias loops.
const maxSchemaDepth = 500

// httpMethods lists the operation keys of a path item.
var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true, "options": true,
	"head": true, "patch": true, "trace": true, "query": true,
}

// rawDoc is one loaded document: the root or an external file or URL.
type rawDoc struct {
	// location is "" for the root, a slash path relative to the root directory for
	// files, or an absolute URL.
	location string
	root     *yaml.Node
	dir      string // absolute directory for relative file refs
	url      string // base URL for relative refs of documents fetched over HTTP
	file     string // absolute path of the root document, when read from a file
}

type pendingRef struct {
	doc    *rawDoc
	schema *Schema
}

// loader decodes node trees into Document values. Every schema, parameter, request body
// and response is memoized by canonical pointer so that references share objects.
type loader struct {
	ctx       context.Context
	p         *Parser
	root      *rawDoc
	docs      map[string]*rawDoc
	schemas   map[string]*Schema
	params    map[string]*Parameter
	bodies    map[string]*RequestBody
	responses map[string]*Response
	pending   []pendingRef
	warnings  []string
	err       error
}

func newLoader(ctx context.Context, p *Parser, root *rawDoc) *loader {
	return &loader{
		ctx:       ctx,
		p:         p,
		root:      root,
		docs:      map[string]*rawDoc{"": root},
		schemas:   make(map[string]*Schema),
		params:    make(map[string]*Parameter),
		bodies:    make(map[string]*RequestBody),
		responses: make(map[string]*Response),
	}
}

// fail records the first fatal error.
func (l *loader) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

func (l *loader) load() (*Document, error) {
	r := l.root.root
	doc := &Document{
		Info:    decodeInfo(child(r, "info")),
		Servers: decodeServers(child(r, "servers")),
		Tags:    decodeTags(child(r, "tags")),
	}
	if sec := child(r, "security"); sec != nil {
		doc.Security = decodeSecurity(sec)
	}

	base := pathutil.NewPointer("")
	l.decodeComponents(l.root, base.Append("components"), child(r, "components"), &doc.Components)
	doc.Paths = l.decodePaths(l.root, base.Append("paths"), child(r, "paths"))
	l.linkRefs()

	if l.err != nil {
		return nil, l.err
	}
	return doc, nil
}

func decodeInfo(n *yaml.Node) Info {
	return Info{
		Title:       str(n, "title"),
		Description: str(n, "description"),
		Version:     str(n, "version"),
	}
}

func decodeServers(n *yaml.Node) []*Server {
	var out []*Server
	for _, sn := range items(n) {
		s := &Server{URL: str(sn, "url"), Description: str(sn, "description")}
		eachPair(child(sn, "variables"), func(name string, vn *yaml.Node) {
			s.Variables = append(s.Variables, &ServerVariable{
				Name:        name,
				Default:     str(vn, "default"),
				Enum:        stringList(child(vn, "enum")),
				Description: str(vn, "description"),
			})
		})
		out = append(out, s)
	}
	return out
}

func decodeTags(n *yaml.Node) []*Tag {
	var out []*Tag
	for _, tn := range items(n) {
		out = append(out, &Tag{Name: str(tn, "name"), Description: str(tn, "description")})
	}
	return out
}

// decodeSecurity returns a non-nil slice so that an explicit empty list stays
// distinguishable from an absent one.
func decodeSecurity(n *yaml.Node) []SecurityRequirement {
	out := []SecurityRequirement{}
	for _, rn := range items(n) {
		req := SecurityRequirement{Scopes: make(map[string][]string)}
		eachPair(rn, func(name string, scopes *yaml.Node) {
			req.Names = append(req.Names, name)
			req.Scopes[name] = stringList(scopes)
		})
		out = append(out, req)
	}
	return out
}

func (l *loader) decodeComponents(doc *rawDoc, ptr pathutil.Pointer, n *yaml.Node, c *Components) {
	eachPair(child(n, "schemas"), func(name string, sn *yaml.Node) {
		s := l.schema(doc, ptr.Append("schemas").Append(name), sn, 0)
		s.Name = name
		c.Schemas = append(c.Schemas, s)
	})
	eachPair(child(n, "parameters"), func(name string, pn *yaml.Node) {
		if p := l.parameter(doc, ptr.Append("parameters").Append(name), pn, 0); p != nil {
			if p.Key == "" {
				p.Key = name
			}
			c.Parameters = append(c.Parameters, p)
		}
	})
	eachPair(child(n, "requestBodies"), func(name string, bn *yaml.Node) {
		if b := l.requestBody(doc, ptr.Append("requestBodies").Append(name), bn, 0); b != nil {
			if b.Key == "" {
				b.Key = name
			}
			c.RequestBodies = append(c.RequestBodies, b)
		}
	})
	eachPair(child(n, "responses"), func(name string, rn *yaml.Node) {
		if r := l.response(doc, ptr.Append("responses").Append(name), rn, 0); r != nil {
			if r.Key == "" {
				r.Key = name
			}
			c.Responses = append(c.Responses, r)
		}
	})
	eachPair(child(n, "securitySchemes"), func(name string, sn *yaml.Node) {
		c.SecuritySchemes = append(c.SecuritySchemes, &SecurityScheme{
			Name:         name,
			Type:         str(sn, "type"),
			Scheme:       str(sn, "scheme"),
			In:           str(sn, "in"),
			ParamName:    str(sn, "name"),
			BearerFormat: str(sn, "bearerFormat"),
			Description:  str(sn, "description"),
		})
	})
}

func (l *loader) decodePaths(doc *rawDoc, ptr pathutil.Pointer, n *yaml.Node) []*PathItem {
	var out []*PathItem
	eachPair(n, func(path string, pn *yaml.Node) {
		if strings.HasPrefix(path, "x-") || l.err != nil {
			return
		}
		itemDoc, itemPtr := doc, ptr.Append(path)
		if ref := str(pn, "$ref"); ref != "" {
			d, p, target, err := l.locate(doc, ref)
			if err != nil {
				l.fail(err)
				return
			}
			itemDoc, itemPtr, pn = d, p, target
		}
		out = append(out, l.pathItem(itemDoc, itemPtr, path, pn))
	})
	return out
}

func (l *loader) pathItem(doc *rawDoc, ptr pathutil.Pointer, path string, n *yaml.Node) *PathItem {
	item := &PathItem{
		Path:        path,
		Pointer:     ptr.String(),
		Summary:     str(n, "summary"),
		Description: str(n, "description"),
		Parameters:  l.parameterList(doc, ptr.Append("parameters"), child(n, "parameters")),
	}
	eachPair(n, func(key string, on *yaml.Node) {
		if !httpMethods[key] {
			return
		}
		item.Operations = append(item.Operations, l.operation(doc, ptr.Append(key), key, path, on))
	})
	return item
}

func (l *loader) operation(doc *rawDoc, ptr pathutil.Pointer, method, path string, n *yaml.Node) *Operation {
	op := &Operation{
		Method:      method,
		Path:        path,
		Pointer:     ptr.String(),
		OperationID: str(n, "operationId"),
		Summary:     str(n, "summary"),
		Description: str(n, "description"),
		Tags:        stringList(child(n, "tags")),
		Deprecated:  boolean(n, "deprecated"),
		Parameters:  l.parameterList(doc, ptr.Append("parameters"), child(n, "parameters")),
	}
	if l.p.SourceLocations {
		op.Line, op.Column = n.Line, n.Column
	}
	if bn := child(n, "requestBody"); bn != nil {
		op.RequestBody = l.requestBody(doc, ptr.Append("requestBody"), bn, 0)
	}
	eachPair(child(n, "responses"), func(code string, rn *yaml.Node) {
		if strings.HasPrefix(code, "x-") {
			return
		}
		if r := l.response(doc, ptr.Append("responses").Append(code), rn, 0); r != nil {
			// Shared response components are copied so each use carries its own code.
			use := *r
			use.StatusCode = code
			op.Responses = append(op.Responses, &use)
		}
	})
	if sn := child(n, "security"); sn != nil {
		op.HasSecurity = true
		op.Security = decodeSecurity(sn)
	}
	return op
}

func (l *loader) parameterList(doc *rawDoc, ptr pathutil.Pointer, n *yaml.Node) []*Parameter {
	var out []*Parameter
	for i, pn := range items(n) {
		if p := l.parameter(doc, ptr.AppendIndex(i), pn, 0); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// follow resolves a $ref on a non-schema object, bounding the chain length.
func (l *loader) follow(doc *rawDoc, ref string, hops int) (*rawDoc, pathutil.Pointer, *yaml.Node, bool) {
	if hops >= l.p.maxRefDepth() {
		l.fail(&oaserrors.ResourceLimitError{
			ResourceType: "ref_depth",
			Limit:        int64(l.p.maxRefDepth()),
			Message:      "reference chain too long or circular at " + ref,
		})
		return nil, pathutil.Pointer{}, nil, false
	}
	d, p, n, err := l.locate(doc, ref)
	if err != nil {
		l.fail(err)
		return nil, pathutil.Pointer{}, nil, false
	}
	return d, p, n, true
}

func (l *loader) parameter(doc *rawDoc, ptr pathutil.Pointer, n *yaml.Node, hops int) *Parameter {
	if ref := str(n, "$ref"); ref != "" {
		d, p, target, ok := l.follow(doc, ref, hops)
		if !ok {
			return nil
		}
		return l.parameter(d, p, target, hops+1)
	}
	key := ptr.String()
	if p, ok := l.params[key]; ok {
		return p
	}
	p := &Parameter{
		Name:        str(n, "name"),
		In:          str(n, "in"),
		Description: str(n, "description"),
		Required:    boolean(n, "required"),
		Deprecated:  boolean(n, "deprecated"),
		Pointer:     key,
	}
	l.params[key] = p
	if sn := child(n, "schema"); sn != nil {
		p.Schema = l.schema(doc, ptr.Append("schema"), sn, 0)
	}
	p.Content = l.content(doc, ptr.Append("content"), child(n, "content"))
	return p
}

func (l *loader) requestBody(doc *rawDoc, ptr pathutil.Pointer, n *yaml.Node, hops int) *RequestBody {
	if ref := str(n, "$ref"); ref != "" {
		d, p, target, ok := l.follow(doc, ref, hops)
		if !ok {
			return nil
		}
		return l.requestBody(d, p, target, hops+1)
	}
	key := ptr.String()
	if b, ok := l.bodies[key]; ok {
		return b
	}
	b := &RequestBody{
		Description: str(n, "description"),
		Required:    boolean(n, "required"),
		Pointer:     key,
	}
	l.bodies[key] = b
	b.Content = l.content(doc, ptr.Append("content"), child(n, "content"))
	return b
}

func (l *loader) response(doc *rawDoc, ptr pathutil.Pointer, n *yaml.Node, hops int) *Response {
	if ref := str(n, "$ref"); ref != "" {
		d, p, target, ok := l.follow(doc, ref, hops)
		if !ok {
			return nil
		}
		return l.response(d, p, target, hops+1)
	}
	key := ptr.String()
	if r, ok := l.responses[key]; ok {
		return r
	}
	r := &Response{Description: str(n, "description"), Pointer: key}
	l.responses[key] = r
	r.Content = l.content(doc, ptr.Append("content"), child(n, "content"))
	return r
}

func (l *loader) content(doc *rawDoc, ptr pathutil.Pointer, n *yaml.Node) []*MediaType {
	var out []*MediaType
	eachPair(n, func(name string, mn *yaml.Node) {
		mt := &MediaType{Name: name, Pointer: ptr.Append(name).String()}
		if sn := child(mn, "schema"); sn != nil {
			mt.Schema = l.schema(doc, ptr.Append(name).Append("schema"), sn, 0)
		}
		out = append(out, mt)
	})
	return out
}

// schema decodes n into the memoized Schema for ptr. $ref values are queued and linked
// once the whole document is decoded.
func (l *loader) schema(doc *rawDoc, ptr pathutil.Pointer, n *yaml.Node, depth int) *Schema {
	key := ptr.String()
	if s, ok := l.schemas[key]; ok {
		return s
	}
	s := &Schema{Pointer: key}
	l.schemas[key] = s
	if n == nil {
		return s
	}
	if l.p.SourceLocations {
		s.Line, s.Column = n.Line, n.Column
	}
	if depth > maxSchemaDepth {
		l.fail(&oaserrors.ResourceLimitError{ResourceType: "nesting_depth", Limit: maxSchemaDepth, Message: key})
		return s
	}
	// Boolean schemas (3.1) and other non-mapping nodes stay untyped.
	if n.Kind != yaml.MappingNode {
		return s
	}

	var constValue any
	hasConst := false
	eachPair(n, func(k string, v *yaml.Node) {
		switch k {
		case "$ref":
			s.Ref = v.Value
			l.pending = append(l.pending, pendingRef{doc: doc, schema: s})
		case "type":
			l.decodeType(s, v)
		case "format":
			s.Format = v.Value
		case "title":
			s.Title = v.Value
		case "description":
			s.Description = v.Value
		case "nullable":
			s.Nullable = s.Nullable || v.Value == "true"
		case "deprecated":
			s.Deprecated = v.Value == "true"
		case "readOnly":
			s.ReadOnly = v.Value == "true"
		case "writeOnly":
			s.WriteOnly = v.Value == "true"
		case "default":
			s.Default = scalar(v)
		case "required":
			s.Required = stringList(v)
		case "enum":
			for _, e := range items(v) {
				s.Enum = append(s.Enum, scalar(e))
			}
		case "const":
			constValue, hasConst = scalar(v), true
		case "properties":
			eachPair(v, func(name string, pn *yaml.Node) {
				s.Properties = append(s.Properties, &Property{
					Name:   name,
					Schema: l.schema(doc, ptr.Append("properties").Append(name), pn, depth+1),
				})
			})
		case "items":
			if v.Kind == yaml.SequenceNode {
				// Tuple form: the first member stands for the element type.
				if elems := items(v); len(elems) > 0 {
					s.Items = l.schema(doc, ptr.Append("items").AppendIndex(0), elems[0], depth+1)
				}
				return
			}
			s.Items = l.schema(doc, ptr.Append("items"), v, depth+1)
		case "additionalProperties":
			if v.Kind == yaml.ScalarNode {
				allowed := v.Value == "true"
				s.AdditionalPropertiesAllowed = &allowed
				return
			}
			s.AdditionalProperties = l.schema(doc, ptr.Append("additionalProperties"), v, depth+1)
		case "allOf":
			s.AllOf = l.schemaList(doc, ptr.Append(k), v, depth+1)
		case "anyOf":
			s.AnyOf = l.schemaList(doc, ptr.Append(k), v, depth+1)
		case "oneOf":
			s.OneOf = l.schemaList(doc, ptr.Append(k), v, depth+1)
		}
	})
	if hasConst && len(s.Enum) == 0 {
		s.Enum = []any{constValue}
	}
	return s
}

func (l *loader) decodeType(s *Schema, v *yaml.Node) {
	var types []string
	if v.Kind == yaml.SequenceNode {
		types = stringList(v)
	} else if v.Value != "" {
		types = []string{v.Value}
	}
	for _, t := range types {
		if t == "null" {
			s.Nullable = true
			continue
		}
		s.Types = append(s.Types, t)
	}
}

func (l *loader) schemaList(doc *rawDoc, ptr pathutil.Pointer, n *yaml.Node, depth int) []*Schema {
	var out []*Schema
	for i, sn := range items(n) {
		out = append(out, l.schema(doc, ptr.AppendIndex(i), sn, depth))
	}
	return out
}

// linkRefs resolves queued schema references. Linking may load external documents,
// which queue more references, so the queue is walked by index.
func (l *loader) linkRefs() {
	for i := 0; i < len(l.pending) && l.err == nil; i++ {
		pr := l.pending[i]
		target, err := l.schemaRef(pr.doc, pr.schema.Ref)
		if err != nil {
			if isFatal(err) {
				l.fail(err)
				return
			}
			pr.schema.refErr = err
			l.warnings = append(l.warnings, fmt.Sprintf("%s: %v", pr.schema.Pointer, err))
			l.p.log().Warn("unresolved reference", "ref", pr.schema.Ref, "at", pr.schema.Pointer, "error", err)
			continue
		}
		pr.schema.Target = target
		l.p.log().Debug("linked reference", "ref", pr.schema.Ref, "target", target.Pointer)
	}
}

func isFatal(err error) bool {
	_, ok := err.(*oaserrors.ResourceLimitError)
	return ok
}

func (l *loader) schemaRef(from *rawDoc, ref string) (*Schema, error) {
	doc, ptr, n, err := l.locate(from, ref)
	if err != nil {
		return nil, err
	}
	s := l.schema(doc, ptr, n, 0)
	if s.Name == "" && doc != l.root {
		s.Name = externalName(doc, ptr)
	}
	return s, nil
}

// externalName names schemas that live in other documents: components/schemas and
// definitions entries by key, whole-document refs by file name.
func externalName(doc *rawDoc, ptr pathutil.Pointer) string {
	tokens, err := pathutil.ParseFragment(ptr.Fragment())
	if err != nil {
		return ""
	}
	switch {
	case len(tokens) == 0:
		base := doc.location
		if i := strings.LastIndexAny(base, "/"); i >= 0 {
			base = base[i+1:]
		}
		return strings.TrimSuffix(base, filepath.Ext(base))
	case len(tokens) == 3 && tokens[0] == "components" && tokens[1] == "schemas":
		return tokens[2]
	case len(tokens) == 2 && tokens[0] == "definitions":
		return tokens[1]
	}
	return ""
}
