package typemodel

import (
	"fmt"
	"math"
	"strconv"

	"github.com/erraggy/oastypes/internal/issues"
	"github.com/erraggy/oastypes/internal/naming"
	"github.com/erraggy/oastypes/internal/schemautil"
	"github.com/erraggy/oastypes/internal/severity"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/parser"
)

// Resolver resolves schemas into types, declaring named types in its Registry as it
// goes. One Resolver serves one run and is not safe for concurrent use.
type Resolver struct {
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger parser.Logger

	registry   *Registry
	hasher     *schemautil.Hasher
	buckets    map[uint64][]bucketEntry
	identities map[*parser.Schema]string
	issues     issues.List
}

// bucketEntry separates inline schemas whose hashes collide.
type bucketEntry struct {
	fingerprint string
	identity    string
}

// NewResolver returns a Resolver with an empty registry.
func NewResolver() *Resolver {
	return &Resolver{
		registry:   NewRegistry(),
		hasher:     schemautil.NewHasher(),
		buckets:    make(map[uint64][]bucketEntry),
		identities: make(map[*parser.Schema]string),
	}
}

func (r *Resolver) log() parser.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return parser.NopLogger{}
}

// Registry returns the registry holding the declarations made so far.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Issues returns the non-fatal findings recorded while resolving.
func (r *Resolver) Issues() issues.List {
	return r.issues
}

// Identity returns the registry key of s: the canonical pointer for component schemas
// and a structural hash for everything else. Structurally identical inline schemas share
// an identity; colliding hashes of different structures do not.
func (r *Resolver) Identity(s *parser.Schema) string {
	if s.IsComponent() {
		return s.Pointer
	}
	if id, ok := r.identities[s]; ok {
		return id
	}
	sum := r.hasher.Hash(s)
	fp := r.hasher.Fingerprint(s)
	bucket := r.buckets[sum]
	for _, e := range bucket {
		if e.fingerprint == fp {
			r.identities[s] = e.identity
			return e.identity
		}
	}
	id := "hash:" + strconv.FormatUint(sum, 16)
	if len(bucket) > 0 {
		id += "/" + strconv.Itoa(len(bucket))
	}
	r.buckets[sum] = append(bucket, bucketEntry{fingerprint: fp, identity: id})
	r.identities[s] = id
	return id
}

// ResolveType resolves s without naming context.
func (r *Resolver) ResolveType(s *parser.Schema) (Type, error) {
	return r.Resolve(s, Hint{})
}

// Resolve resolves s to a use-site type, declaring named types as needed. A nil schema
// resolves to any. Errors are *oaserrors.ResolutionError for malformed input and
// *oaserrors.UnsupportedError for constructs without a mapping; both abort the run.
func (r *Resolver) Resolve(s *parser.Schema, hint Hint) (Type, error) {
	return r.resolve(s, hint)
}

// TryResolve resolves s like Resolve but leaves no trace on failure: declarations and
// issues recorded during the failed attempt are discarded. It must not be called while
// another resolution is in progress.
func (r *Resolver) TryResolve(s *parser.Schema, hint Hint) (Type, error) {
	mark, issueMark := r.registry.Len(), len(r.issues)
	t, err := r.resolve(s, hint)
	if err != nil {
		r.registry.truncate(mark)
		r.issues = r.issues[:issueMark]
		return Type{}, err
	}
	return t, nil
}

func (r *Resolver) resolve(s *parser.Schema, hint Hint) (Type, error) {
	if s == nil {
		return Any(), nil
	}
	if s.IsRef() && !s.IsComponent() {
		return r.resolveRef(s, hint)
	}

	kind := Classify(s)
	if s.IsComponent() || kind == SchemaObject || kind == SchemaEnum || kind == SchemaComposed {
		if t, ok := r.registry.Lookup(r.Identity(s)); ok {
			return t.WithNullable(siteNullable(s)), nil
		}
	}

	switch kind {
	case SchemaReference:
		return r.declareAlias(s, hint, func(name string) (Type, error) {
			return r.resolveRef(s, hint.Child(name, "Target"))
		})
	case SchemaArray:
		return r.array(s, hint)
	case SchemaMap:
		return r.mapOf(s, hint)
	case SchemaEnum:
		return r.declareEnum(s, hint)
	case SchemaObject:
		return r.declareObject(s, s, hint)
	case SchemaComposed:
		return r.composed(s, hint)
	}

	t := primitiveType(s)
	if !s.IsComponent() {
		return t, nil
	}
	return r.declareAlias(s, hint, func(string) (Type, error) { return t, nil })
}

// resolveRef follows one $ref hop. The site's nullable flag is added to the result.
func (r *Resolver) resolveRef(s *parser.Schema, hint Hint) (Type, error) {
	if _, err := s.Deref(); err != nil {
		return Type{}, &oaserrors.ResolutionError{
			Pointer: s.Pointer,
			Line:    s.Line,
			Column:  s.Column,
			Message: "cannot resolve $ref " + s.Ref,
			Cause:   err,
		}
	}
	t, err := r.resolve(s.Target, hint)
	if err != nil {
		return Type{}, err
	}
	return t.WithNullable(s.Nullable), nil
}

// rawName is the name children of an unnamed collection derive their hints from.
func rawName(s *parser.Schema, hint Hint) string {
	switch {
	case s.Name != "":
		return s.Name
	case hint.Name != "":
		return hint.Name
	}
	return s.Title
}

// chooseName picks a free identifier: component key, else hint, else title, else "Type".
// A taken name is retried with the hint scope prefixed, then with numeric suffixes.
func (r *Resolver) chooseName(s *parser.Schema, hint Hint) string {
	raw := rawName(s, hint)
	base := naming.ToTypeIdentifier(raw)
	if !r.registry.Taken(base) {
		return base
	}
	if hint.Scope != "" {
		scoped := naming.ToTypeIdentifier(hint.Scope + " " + raw)
		if !r.registry.Taken(scoped) {
			return scoped
		}
	}
	return naming.Disambiguate(base, r.registry.Taken)
}

func (r *Resolver) array(s *parser.Schema, hint Hint) (Type, error) {
	build := func(parent string) (Type, error) {
		if s.Items == nil {
			r.issues.Add(severity.SeverityWarning, s.Pointer, "array without items; elements are untyped")
			return ListOf(Any()), nil
		}
		elem, err := r.resolve(s.Items, hint.Child(parent, "Item"))
		if err != nil {
			return Type{}, err
		}
		return ListOf(elem), nil
	}
	if s.IsComponent() {
		return r.declareAlias(s, hint, build)
	}
	t, err := build(rawName(s, hint))
	if err != nil {
		return Type{}, err
	}
	return t.WithNullable(s.Nullable), nil
}

func (r *Resolver) mapOf(s *parser.Schema, hint Hint) (Type, error) {
	build := func(parent string) (Type, error) {
		if s.AdditionalProperties == nil {
			return MapOf(Any()), nil
		}
		elem, err := r.resolve(s.AdditionalProperties, hint.Child(parent, "Value"))
		if err != nil {
			return Type{}, err
		}
		return MapOf(elem), nil
	}
	if s.IsComponent() {
		return r.declareAlias(s, hint, build)
	}
	t, err := build(rawName(s, hint))
	if err != nil {
		return Type{}, err
	}
	return t.WithNullable(s.Nullable), nil
}

// declareAlias declares s as a named alias of the type built by target. target receives
// the chosen identifier so nested hints can derive from it.
func (r *Resolver) declareAlias(s *parser.Schema, hint Hint, target func(name string) (Type, error)) (Type, error) {
	id := r.Identity(s)
	name := r.chooseName(s, hint)
	placeholder := r.registry.Reserve(id, name, DeclAlias)

	t, err := target(name)
	if err != nil {
		return Type{}, err
	}
	t = t.NonNullable()
	r.registry.Commit(id, &Named{
		Name:        name,
		Kind:        DeclAlias,
		Identity:    id,
		Pointer:     s.Pointer,
		Description: s.Description,
		Deprecated:  s.Deprecated,
		Target:      &t,
	})
	r.log().Debug("declared alias", "name", name, "target", t.String(), "pointer", s.Pointer)
	return placeholder.WithNullable(s.Nullable), nil
}

// declareObject declares a struct. orig supplies identity and naming, body the fields;
// they differ when body is the flattened form of a composition.
func (r *Resolver) declareObject(orig, body *parser.Schema, hint Hint) (Type, error) {
	id := r.Identity(orig)
	name := r.chooseName(orig, hint)
	placeholder := r.registry.Reserve(id, name, DeclObject)

	named := &Named{
		Name:        name,
		Kind:        DeclObject,
		Identity:    id,
		Pointer:     orig.Pointer,
		Description: orig.Description,
		Deprecated:  orig.Deprecated,
		Fields:      make([]*Field, 0, len(body.Properties)),
	}
	taken := make(map[string]bool, len(body.Properties))
	for _, p := range body.Properties {
		ft, err := r.resolve(p.Schema, hint.Child(name, p.Name))
		if err != nil {
			return Type{}, err
		}
		required := body.IsRequired(p.Name)
		fieldName := naming.Disambiguate(naming.ToFieldIdentifier(p.Name), func(n string) bool { return taken[n] })
		taken[fieldName] = true

		f := &Field{
			Name:     fieldName,
			WireName: p.Name,
			Type:     ft,
			Required: required,
			Nullable: !required || ft.Nullable,
		}
		if p.Schema != nil {
			f.Description = p.Schema.Description
			f.Deprecated = p.Schema.Deprecated
		}
		named.Fields = append(named.Fields, f)
	}

	r.registry.Commit(id, named)
	r.log().Debug("declared object", "name", name, "fields", len(named.Fields), "pointer", orig.Pointer)
	return placeholder.WithNullable(siteNullable(orig)), nil
}

func (r *Resolver) composed(s *parser.Schema, hint Hint) (Type, error) {
	branches, _ := significantBranches(s)
	nullable := siteNullable(s)

	if len(s.Properties) == 0 {
		var pass func(name string) (Type, error)
		switch {
		case len(branches) == 0:
			pass = func(string) (Type, error) { return Any(), nil }
		case len(branches) == 1 && (branches[0].IsRef() || !schemautil.IsObjectLike(branches[0])):
			branch := branches[0]
			pass = func(name string) (Type, error) { return r.resolve(branch, Hint{Name: name, Scope: hint.Scope}) }
		case !anyObjectLike(branches):
			r.issues.Add(severity.SeverityInfo, s.Pointer, "composition of %d non-object schemas resolved to any", len(branches))
			pass = func(string) (Type, error) { return Any(), nil }
		}
		if pass != nil {
			if s.IsComponent() {
				t, err := r.declareAlias(s, hint, pass)
				if err != nil {
					return Type{}, err
				}
				return t.WithNullable(nullable), nil
			}
			t, err := pass(rawName(s, hint))
			if err != nil {
				return Type{}, err
			}
			return t.WithNullable(nullable), nil
		}
	}

	flat, err := Flatten(s)
	if err != nil {
		return Type{}, err
	}
	return r.declareObject(s, flat, hint)
}

// siteNullable reports whether uses of s admit null: the nullable flag, a null enum
// literal or a null-only composition branch.
func siteNullable(s *parser.Schema) bool {
	if s.Nullable {
		return true
	}
	for _, v := range s.Enum {
		if v == nil {
			return true
		}
	}
	for _, b := range s.Composition() {
		if isNullOnly(b) {
			return true
		}
	}
	return false
}

func anyObjectLike(branches []*parser.Schema) bool {
	for _, b := range branches {
		if schemautil.IsObjectLike(b) {
			return true
		}
	}
	return false
}

func (r *Resolver) declareEnum(s *parser.Schema, hint Hint) (Type, error) {
	base, literals, _, err := enumLiterals(s)
	if err != nil {
		return Type{}, err
	}

	id := r.Identity(s)
	name := r.chooseName(s, hint)
	placeholder := r.registry.Reserve(id, name, DeclEnum)

	named := &Named{
		Name:        name,
		Kind:        DeclEnum,
		Identity:    id,
		Pointer:     s.Pointer,
		Description: s.Description,
		Deprecated:  s.Deprecated,
		Base:        &base,
		Values:      make([]*EnumValue, 0, len(literals)),
	}
	taken := make(map[string]bool, len(literals))
	for _, v := range literals {
		constName := naming.Disambiguate(naming.ToConstantIdentifier(fmt.Sprint(v)), func(n string) bool { return taken[n] })
		taken[constName] = true
		named.Values = append(named.Values, &EnumValue{Name: constName, Value: v})
	}

	r.registry.Commit(id, named)
	r.log().Debug("declared enum", "name", name, "values", len(named.Values), "pointer", s.Pointer)
	return placeholder.WithNullable(siteNullable(s)), nil
}

// enumLiterals validates enum values and determines their base type. null values are
// dropped and reported through nullable.
func enumLiterals(s *parser.Schema) (base Type, literals []any, nullable bool, err error) {
	for _, v := range s.Enum {
		switch kind := schemautil.LiteralKind(v); kind {
		case schemautil.LiteralNull:
			nullable = true
		case schemautil.LiteralObject, schemautil.LiteralArray:
			return Type{}, nil, false, &oaserrors.ResolutionError{
				Pointer: s.Pointer,
				Line:    s.Line,
				Column:  s.Column,
				Message: fmt.Sprintf("enum value %v is an %s; only scalar values can be enum constants", v, kind),
			}
		default:
			literals = append(literals, v)
		}
	}

	name := ""
	if t := s.PrimaryType(); schemautil.IsScalarType(t) {
		name = primitiveName(t, s.Format)
	}
	if !isConstBase(name) {
		name = TypeString
		if len(literals) > 0 {
			name = literalBase(literals[0])
		}
	}

	for i, v := range literals {
		coerced, ok := coerceLiteral(v, name)
		if !ok {
			return Type{}, nil, false, &oaserrors.ResolutionError{
				Pointer: s.Pointer,
				Line:    s.Line,
				Column:  s.Column,
				Message: fmt.Sprintf("enum value %v does not match base type %s", v, name),
			}
		}
		literals[i] = coerced
	}
	return Primitive(name), literals, nullable, nil
}

func isConstBase(name string) bool {
	switch name {
	case TypeString, TypeInt32, TypeInt64, TypeFloat32, TypeFloat64, TypeBool:
		return true
	}
	return false
}

// coerceLiteral converts v to the Go value kind of base. Unquoted numbers and booleans
// in string enums become their text.
func coerceLiteral(v any, base string) (any, bool) {
	switch base {
	case TypeString:
		if s, ok := v.(string); ok {
			return s, true
		}
		return fmt.Sprint(v), true
	case TypeInt32, TypeInt64:
		switch n := v.(type) {
		case int64:
			return n, true
		case float64:
			if n == math.Trunc(n) {
				return int64(n), true
			}
		}
	case TypeFloat32, TypeFloat64:
		switch n := v.(type) {
		case int64:
			return float64(n), true
		case float64:
			return n, true
		}
	case TypeBool:
		b, ok := v.(bool)
		return b, ok
	}
	return nil, false
}
