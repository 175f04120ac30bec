package typemodel

import (
	"fmt"
	"strings"
)

// Kind distinguishes the shapes of a use-site Type.
type Kind int

const (
	// KindPrimitive is a built-in Go type such as string, int64 or time.Time.
	KindPrimitive Kind = iota
	// KindNamed refers to a declaration in the registry by identifier.
	KindNamed
	// KindList is a slice of Elem.
	KindList
	// KindMap is a map from string to Elem.
	KindMap
)

var kindNames = [...]string{"primitive", "named", "list", "map"}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Built-in type names produced by the resolver.
const (
	TypeAny     = "any"
	TypeString  = "string"
	TypeInt32   = "int32"
	TypeInt64   = "int64"
	TypeFloat32 = "float32"
	TypeFloat64 = "float64"
	TypeBool    = "bool"
	TypeTime    = "time.Time"
	TypeBytes   = "[]byte"
)

// Type is a reference to a resolved type at one use site. Nullable belongs to the use
// site and is never part of a declaration.
type Type struct {
	Kind Kind `json:"kind" yaml:"kind"`
	// Name is the built-in type name for primitives or the identifier of a declaration.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Format is the schema format a primitive was derived from, if any.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	// Elem is the element type of a list or the value type of a map.
	Elem     *Type `json:"elem,omitempty" yaml:"elem,omitempty"`
	Nullable bool  `json:"nullable,omitempty" yaml:"nullable,omitempty"`
}

// Primitive returns a primitive Type.
func Primitive(name string) Type {
	return Type{Kind: KindPrimitive, Name: name}
}

// Any returns the untyped primitive.
func Any() Type {
	return Primitive(TypeAny)
}

// ListOf returns a list of elem.
func ListOf(elem Type) Type {
	return Type{Kind: KindList, Elem: &elem}
}

// MapOf returns a string-keyed map of elem.
func MapOf(elem Type) Type {
	return Type{Kind: KindMap, Elem: &elem}
}

// NamedType returns a reference to the declaration with the given identifier.
func NamedType(identifier string) Type {
	return Type{Kind: KindNamed, Name: identifier}
}

// WithNullable returns a copy of t with Nullable set when nullable is true.
// It never clears an existing flag.
func (t Type) WithNullable(nullable bool) Type {
	t.Nullable = t.Nullable || nullable
	return t
}

// NonNullable returns a copy of t with Nullable cleared.
func (t Type) NonNullable() Type {
	t.Nullable = false
	return t
}

// IsAny reports whether t is the untyped primitive.
func (t Type) IsAny() bool {
	return t.Kind == KindPrimitive && t.Name == TypeAny
}

// String renders t in Go syntax without pointers: "[]Pet", "map[string]int64".
func (t Type) String() string {
	switch t.Kind {
	case KindList:
		return "[]" + t.elem().String()
	case KindMap:
		return "map[string]" + t.elem().String()
	}
	if t.Name == "" {
		return TypeAny
	}
	return t.Name
}

func (t Type) elem() Type {
	if t.Elem == nil {
		return Any()
	}
	return *t.Elem
}

// Equal reports whether two types are the same, nullability included.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Name != o.Name || t.Nullable != o.Nullable {
		return false
	}
	if t.Elem == nil || o.Elem == nil {
		return t.Elem == o.Elem
	}
	return t.Elem.Equal(*o.Elem)
}

// References calls fn for every declaration identifier t mentions.
func (t Type) References(fn func(identifier string)) {
	switch t.Kind {
	case KindNamed:
		fn(t.Name)
	case KindList, KindMap:
		if t.Elem != nil {
			t.Elem.References(fn)
		}
	}
}

// DeclKind distinguishes named declarations.
type DeclKind int

const (
	// DeclObject is a struct with ordered fields.
	DeclObject DeclKind = iota
	// DeclEnum is a defined type over a primitive base with named constants.
	DeclEnum
	// DeclAlias names another type.
	DeclAlias
)

var declKindNames = [...]string{"object", "enum", "alias"}

// String returns the lower-case name of the declaration kind.
func (k DeclKind) String() string {
	if int(k) < len(declKindNames) {
		return declKindNames[k]
	}
	return fmt.Sprintf("DeclKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k DeclKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Named is a declaration: NamedObject, NamedEnum or NamedAlias depending on Kind.
// Declarations are built once and never modified after they are committed.
type Named struct {
	Name     string   `json:"name" yaml:"name"`
	Kind     DeclKind `json:"kind" yaml:"kind"`
	Identity string   `json:"identity" yaml:"identity"`
	// Pointer is the definition site in the source document.
	Pointer     string `json:"pointer" yaml:"pointer"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// Fields of an object, in emission order.
	Fields []*Field `json:"fields,omitempty" yaml:"fields,omitempty"`
	// Values of an enum, in declaration order; Base is their primitive type.
	Values []*EnumValue `json:"values,omitempty" yaml:"values,omitempty"`
	Base   *Type        `json:"base,omitempty" yaml:"base,omitempty"`
	// Target of an alias.
	Target *Type `json:"target,omitempty" yaml:"target,omitempty"`
}

// Field returns the field with the given wire name, or nil.
func (n *Named) Field(wireName string) *Field {
	for _, f := range n.Fields {
		if f.WireName == wireName {
			return f
		}
	}
	return nil
}

// String returns a one-line summary, e.g. "object Pet {name, tag}".
func (n *Named) String() string {
	switch n.Kind {
	case DeclObject:
		names := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			names[i] = f.WireName
		}
		return fmt.Sprintf("object %s {%s}", n.Name, strings.Join(names, ", "))
	case DeclEnum:
		names := make([]string, len(n.Values))
		for i, v := range n.Values {
			names[i] = v.Name
		}
		return fmt.Sprintf("enum %s {%s}", n.Name, strings.Join(names, ", "))
	case DeclAlias:
		if n.Target != nil {
			return fmt.Sprintf("alias %s = %s", n.Name, n.Target)
		}
	}
	return n.Kind.String() + " " + n.Name
}

// Field is one property of a named object.
type Field struct {
	// Name is the Go identifier; WireName is the property name as written in the document.
	Name     string `json:"name" yaml:"name"`
	WireName string `json:"wireName" yaml:"wireName"`
	Type     Type   `json:"type" yaml:"type"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	// Nullable is true when the field is optional or its schema allows null.
	Nullable    bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// EnumValue is one constant of a named enum.
type EnumValue struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Hint carries naming context from the caller.
type Hint struct {
	// Name is the preferred raw name, e.g. "Pet owner" or "createPet request".
	Name string
	// Scope is prefixed to Name when the plain name is already taken.
	Scope string
}

// Child returns the hint for a nested schema: the parent identifier followed by suffix.
func (h Hint) Child(parent, suffix string) Hint {
	return Hint{Name: parent + " " + suffix, Scope: h.Scope}
}
