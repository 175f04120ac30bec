package analyzer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oastypes/internal/naming"
	"github.com/erraggy/oastypes/internal/pathutil"
	"github.com/erraggy/oastypes/internal/severity"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/parser"
	"github.com/erraggy/oastypes/typemodel"
)

// indexer holds the state of one Analyze call.
type indexer struct {
	doc      *parser.Document
	resolver *typemodel.Resolver
	log      parser.Logger
	result   *Result

	groups map[string]*Group
	// groupNames tracks method identifiers per group.
	groupNames map[*Group]map[string]bool

	limit        map[string]string
	limitMatched map[string]bool

	operationCount int
}

func (ix *indexer) index() error {
	ix.groupNames = make(map[*Group]map[string]bool)
	ix.limitMatched = make(map[string]bool)

	for _, item := range ix.doc.Paths {
		for _, op := range item.Operations {
			tags := op.Tags
			if len(tags) == 0 {
				tags = []string{DefaultGroup}
			}
			tags = ix.keep(tags)
			if len(tags) == 0 {
				continue
			}

			// Scope names by the first group so collisions read "<Group><Name>".
			scope := naming.ToTypeIdentifier(tags[0])
			built, err := ix.operation(item, op, scope)
			if err != nil {
				return fmt.Errorf("analyzer: %s %s: %w", strings.ToUpper(op.Method), op.Path, err)
			}
			ix.operationCount++
			for _, tag := range tags {
				ix.addToGroup(tag, built)
			}
		}
	}
	return nil
}

// keep filters tags by the group limit, recording which limits matched.
func (ix *indexer) keep(tags []string) []string {
	if ix.limit == nil {
		return tags
	}
	var out []string
	for _, tag := range tags {
		name, ok := ix.limit[tag]
		if !ok {
			name, ok = ix.limit[naming.ToTypeIdentifier(tag)]
		}
		if ok {
			ix.limitMatched[name] = true
			out = append(out, tag)
		}
	}
	return out
}

func (ix *indexer) addToGroup(tag string, op *Operation) {
	g, ok := ix.groups[tag]
	if !ok {
		g = &Group{Name: tag, Identifier: naming.ToTypeIdentifier(tag)}
		for _, t := range ix.doc.Tags {
			if t.Name == tag {
				g.Description = t.Description
				break
			}
		}
		ix.groups[tag] = g
		ix.groupNames[g] = make(map[string]bool)
		ix.result.Groups = append(ix.result.Groups, g)
	}

	taken := ix.groupNames[g]
	name := naming.Disambiguate(op.Name, func(n string) bool { return taken[n] })
	taken[name] = true
	if name != op.Name {
		cp := *op
		cp.Name = name
		op = &cp
	}
	g.Operations = append(g.Operations, op)
}

func (ix *indexer) operation(item *parser.PathItem, op *parser.Operation, scope string) (*Operation, error) {
	out := &Operation{
		Name:        naming.ToMethodIdentifier(op.OperationID, op.Method, op.Path),
		OperationID: op.OperationID,
		Method:      strings.ToUpper(op.Method),
		Path:        op.Path,
		Summary:     op.Summary,
		Description: op.Description,
		Deprecated:  op.Deprecated,
		Tags:        op.Tags,
		Security:    ix.security(op),
		Pointer:     op.Pointer,
		Line:        op.Line,
		Column:      op.Column,
	}
	if out.Summary == "" {
		out.Summary = item.Summary
	}
	if out.Description == "" {
		out.Description = item.Description
	}

	taken := map[string]bool{"ctx": true, "body": true}
	params, err := ix.parameters(out, mergeParameters(item.Parameters, op.Parameters), scope, taken)
	if err != nil {
		return nil, err
	}
	out.Parameters = params
	ix.checkPathTemplate(out)

	if op.RequestBody != nil {
		if out.Body, err = ix.body(out, op.RequestBody, scope, taken); err != nil {
			return nil, err
		}
	}
	if r := successResponse(op.Responses); r != nil {
		if out.Response, err = ix.response(out, r, scope); err != nil {
			return nil, err
		}
	}

	ix.log.Debug("indexed operation", "operation", out.Signature(), "name", out.Name, "params", len(out.Parameters))
	return out, nil
}

// checkPathTemplate warns about template variables with no matching path parameter. The
// operation is still indexed; the variable is simply absent from the method signature.
func (ix *indexer) checkPathTemplate(op *Operation) {
	for _, name := range pathutil.PathParams(op.Path) {
		declared := slices.ContainsFunc(op.Parameters, func(p *Parameter) bool {
			return p.In == ParamPath && p.WireName == name
		})
		if !declared {
			ix.warn(op, op.Pointer, "path template variable {%s} has no path parameter", name)
		}
	}
}

// security flattens the effective requirement list into unique scheme names.
func (ix *indexer) security(op *parser.Operation) []string {
	reqs := ix.doc.Security
	if op.HasSecurity {
		reqs = op.Security
	}
	var names []string
	seen := make(map[string]bool)
	for _, req := range reqs {
		for _, n := range req.Names {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

// mergeParameters returns the path-item parameters with operation overrides applied in
// place, followed by the remaining operation parameters. Parameters match on name and
// location.
func mergeParameters(itemParams, opParams []*parser.Parameter) []*parser.Parameter {
	key := func(p *parser.Parameter) string { return p.In + "\x00" + p.Name }
	overrides := make(map[string]*parser.Parameter, len(opParams))
	for _, p := range opParams {
		overrides[key(p)] = p
	}
	out := make([]*parser.Parameter, 0, len(itemParams)+len(opParams))
	used := make(map[string]bool)
	for _, p := range itemParams {
		k := key(p)
		if o, ok := overrides[k]; ok {
			p = o
			used[k] = true
		}
		out = append(out, p)
	}
	for _, p := range opParams {
		if !used[key(p)] {
			out = append(out, p)
		}
	}
	return out
}

func (ix *indexer) parameters(op *Operation, params []*parser.Parameter, scope string, taken map[string]bool) ([]*Parameter, error) {
	out := make([]*Parameter, 0, len(params))
	for _, p := range params {
		loc := ParamLocation(strings.ToLower(p.In))
		switch loc {
		case ParamPath, ParamQuery, ParamHeader, ParamCookie:
		default:
			return nil, &oaserrors.UnsupportedError{
				Pointer:   p.Pointer,
				Construct: "parameter location",
				Value:     p.In,
				Message:   "parameter " + p.Name + " must be in path, query, header or cookie",
			}
		}

		schema := p.Schema
		if schema == nil && len(p.Content) > 0 {
			schema = p.Content[0].Schema
		}
		if schema == nil {
			ix.warn(op, p.Pointer, "parameter %s has no schema; it is untyped", p.Name)
		}
		t, err := ix.resolver.Resolve(schema, typemodel.Hint{Name: op.Name + " " + p.Name, Scope: scope})
		if err != nil {
			return nil, err
		}

		name := naming.Disambiguate(naming.ToParamIdentifier(p.Name), func(n string) bool { return taken[n] })
		taken[name] = true
		out = append(out, &Parameter{
			Name:        name,
			WireName:    p.Name,
			In:          loc,
			Type:        t,
			Required:    p.Required || loc == ParamPath,
			Description: p.Description,
			Deprecated:  p.Deprecated,
		})
	}
	return out, nil
}

func (ix *indexer) body(op *Operation, rb *parser.RequestBody, scope string, taken map[string]bool) (*Body, error) {
	entries := parseContent(rb.Content)
	idx, err := selectMedia(entries, requestRank)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		ix.warn(op, rb.Pointer, "request body has no content; ignored")
		return nil, nil
	}

	sel := entries[idx]
	out := &Body{
		MediaType:   sel.base,
		Encoding:    encodingOf(sel.base),
		Required:    rb.Required,
		Description: rb.Description,
	}
	hint := typemodel.Hint{Name: op.Name + " Request", Scope: scope}
	if out.Encoding.IsForm() {
		out.Fields, err = ix.formFields(op, sel.media, out, scope, taken)
	} else {
		out.Type, err = ix.resolver.Resolve(sel.media.Schema, hint)
	}
	if err != nil {
		return nil, err
	}

	out.Alternatives = ix.alternatives(op, entries, idx, hint)
	return out, nil
}

// formFields explodes a form body into one field per property. The schema must be an
// object, or a composition that flattens into one.
func (ix *indexer) formFields(op *Operation, m *parser.MediaType, b *Body, scope string, taken map[string]bool) ([]*FormField, error) {
	malformed := func(msg string) error {
		return &oaserrors.ResolutionError{Pointer: m.Pointer, Message: msg}
	}
	if m.Schema == nil {
		return nil, malformed(b.Encoding.String() + " body has no schema")
	}
	s, err := m.Schema.Deref()
	if err != nil {
		return nil, &oaserrors.ResolutionError{Pointer: m.Pointer, Message: "cannot resolve body schema", Cause: err}
	}
	switch typemodel.Classify(s) {
	case typemodel.SchemaObject:
	case typemodel.SchemaComposed:
		if s, err = typemodel.Flatten(s); err != nil {
			return nil, err
		}
	default:
		return nil, &oaserrors.ResolutionError{
			Pointer: s.Pointer,
			Line:    s.Line,
			Column:  s.Column,
			Message: fmt.Sprintf("%s body schema must be an object", b.Encoding),
		}
	}

	fields := make([]*FormField, 0, len(s.Properties))
	for _, p := range s.Properties {
		t, err := ix.resolver.Resolve(p.Schema, typemodel.Hint{Name: op.Name + " " + p.Name, Scope: scope})
		if err != nil {
			return nil, err
		}
		name := naming.Disambiguate(naming.ToParamIdentifier(p.Name), func(n string) bool { return taken[n] })
		taken[name] = true
		f := &FormField{
			Name:     name,
			WireName: p.Name,
			Type:     t,
			Required: b.Required && s.IsRequired(p.Name),
			Binary:   isBinary(p.Schema),
		}
		if p.Schema != nil {
			f.Description = p.Schema.Description
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// isBinary reports whether s is a string with format binary.
func isBinary(s *parser.Schema) bool {
	if s == nil {
		return false
	}
	d, err := s.Deref()
	if err != nil {
		return false
	}
	return d.PrimaryType() == "string" && d.Format == "binary"
}

func (ix *indexer) response(op *Operation, r *parser.Response, scope string) (*Response, error) {
	out := &Response{StatusCode: r.StatusCode, Description: r.Description}
	entries := parseContent(r.Content)
	idx, err := selectMedia(entries, responseRank)
	if err != nil || idx < 0 {
		return out, err
	}

	sel := entries[idx]
	out.MediaType = sel.base
	out.Encoding = EncodingRaw
	if isJSON(sel.base) {
		out.Encoding = EncodingJSON
	}
	hint := typemodel.Hint{Name: op.Name + " Response", Scope: scope}
	if out.Type, err = ix.resolver.Resolve(sel.media.Schema, hint); err != nil {
		return nil, err
	}
	out.Alternatives = ix.alternatives(op, entries, idx, hint)
	return out, nil
}

// alternatives resolves the media types that were not selected. They are not part of any
// signature, so failures degrade to any with a warning.
func (ix *indexer) alternatives(op *Operation, entries []mediaEntry, selected int, hint typemodel.Hint) []*Alternative {
	var out []*Alternative
	for i, e := range entries {
		if i == selected {
			continue
		}
		if e.err != nil {
			ix.warn(op, e.media.Pointer, "unsupported media type %q: %v", e.media.Name, e.err)
			continue
		}
		if e.media.Schema == nil {
			continue
		}
		t, err := ix.resolver.TryResolve(e.media.Schema, hint)
		if err != nil {
			ix.warn(op, e.media.Pointer, "%s resolved to any: %v", e.base, err)
			t = typemodel.Any()
		}
		out = append(out, &Alternative{MediaType: e.base, Type: t})
	}
	return out
}

func (ix *indexer) warn(op *Operation, pointer, format string, args ...any) {
	ix.result.issues.Add(severity.SeverityWarning, pointer, format, args...)
	ix.result.issues[len(ix.result.issues)-1].Operation = op.Signature()
	ix.log.Warn(fmt.Sprintf(format, args...), "operation", op.Signature(), "pointer", pointer)
}
