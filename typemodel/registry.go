package typemodel

import (
	"github.com/erraggy/oastypes/oaserrors"
)

type entry struct {
	identity   string
	identifier string
	kind       DeclKind
	named      *Named
}

// Registry maps schema identities to named declarations for one run.
//
// Reserve records an identifier before a declaration's children are resolved, so a
// schema that reaches itself resolves to the placeholder instead of recursing. Commit
// stores the finished declaration. Consistency faults are programming errors and panic
// with *oaserrors.RegistryError.
//
// A Registry has a single writer and is not safe for concurrent use.
type Registry struct {
	byIdentity   map[string]*entry
	byIdentifier map[string]*entry
	order        []*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byIdentity:   make(map[string]*entry),
		byIdentifier: make(map[string]*entry),
	}
}

// Lookup returns the named type for identity if it was reserved or committed.
func (r *Registry) Lookup(identity string) (Type, bool) {
	e, ok := r.byIdentity[identity]
	if !ok {
		return Type{}, false
	}
	return NamedType(e.identifier), true
}

// Reserve claims identifier for identity and returns the placeholder type.
func (r *Registry) Reserve(identity, identifier string, kind DeclKind) Type {
	if prev, ok := r.byIdentity[identity]; ok {
		panic(&oaserrors.RegistryError{
			Op:         "reserve",
			Identity:   identity,
			Identifier: identifier,
			Message:    "identity already reserved as " + prev.identifier,
		})
	}
	if holder, ok := r.byIdentifier[identifier]; ok {
		panic(&oaserrors.RegistryError{
			Op:         "reserve",
			Identity:   identity,
			Identifier: identifier,
			Message:    "identifier already held by " + holder.identity,
		})
	}
	e := &entry{identity: identity, identifier: identifier, kind: kind}
	r.byIdentity[identity] = e
	r.byIdentifier[identifier] = e
	r.order = append(r.order, e)
	return NamedType(identifier)
}

// Commit stores the finished declaration for a reserved identity.
func (r *Registry) Commit(identity string, named *Named) {
	e, ok := r.byIdentity[identity]
	switch {
	case !ok:
		panic(&oaserrors.RegistryError{Op: "commit", Identity: identity, Identifier: named.Name, Message: "no reservation"})
	case e.named != nil:
		panic(&oaserrors.RegistryError{Op: "commit", Identity: identity, Identifier: named.Name, Message: "already committed"})
	case named.Name != e.identifier:
		panic(&oaserrors.RegistryError{
			Op:         "commit",
			Identity:   identity,
			Identifier: named.Name,
			Message:    "reserved as " + e.identifier,
		})
	case named.Kind != e.kind:
		panic(&oaserrors.RegistryError{
			Op:         "commit",
			Identity:   identity,
			Identifier: named.Name,
			Message:    "reserved as " + e.kind.String() + ", committed as " + named.Kind.String(),
		})
	}
	e.named = named
}

// Taken reports whether identifier is reserved.
func (r *Registry) Taken(identifier string) bool {
	_, ok := r.byIdentifier[identifier]
	return ok
}

// Declaration returns the committed declaration for identifier, or nil.
func (r *Registry) Declaration(identifier string) *Named {
	if e, ok := r.byIdentifier[identifier]; ok {
		return e.named
	}
	return nil
}

// All returns the committed declarations in reservation order.
func (r *Registry) All() []*Named {
	out := make([]*Named, 0, len(r.order))
	for _, e := range r.order {
		if e.named != nil {
			out = append(out, e.named)
		}
	}
	return out
}

// Len returns the number of reserved identities.
func (r *Registry) Len() int {
	return len(r.order)
}

// truncate drops every entry reserved after the first n.
func (r *Registry) truncate(n int) {
	for _, e := range r.order[n:] {
		delete(r.byIdentity, e.identity)
		delete(r.byIdentifier, e.identifier)
	}
	r.order = r.order[:n]
}
