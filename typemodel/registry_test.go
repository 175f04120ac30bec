package typemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oastypes/oaserrors"
)

func TestRegistry_ReserveCommit(t *testing.T) {
	r := NewRegistry()
	placeholder := r.Reserve("#/components/schemas/Pet", "Pet", DeclObject)
	assert.Equal(t, NamedType("Pet"), placeholder)

	got, ok := r.Lookup("#/components/schemas/Pet")
	require.True(t, ok, "reserved identities are visible before commit")
	assert.Equal(t, placeholder, got)
	assert.True(t, r.Taken("Pet"))
	assert.Nil(t, r.Declaration("Pet"))
	assert.Empty(t, r.All())

	pet := &Named{Name: "Pet", Kind: DeclObject}
	r.Commit("#/components/schemas/Pet", pet)
	assert.Same(t, pet, r.Declaration("Pet"))
	assert.Equal(t, []*Named{pet}, r.All())
	assert.Equal(t, 1, r.Len())

	_, ok = r.Lookup("#/components/schemas/Other")
	assert.False(t, ok)
	assert.False(t, r.Taken("Other"))
}

func TestRegistry_AllKeepsReservationOrder(t *testing.T) {
	r := NewRegistry()
	r.Reserve("a", "A", DeclObject)
	r.Reserve("b", "B", DeclEnum)
	b := &Named{Name: "B", Kind: DeclEnum}
	a := &Named{Name: "A", Kind: DeclObject}
	r.Commit("b", b)
	r.Commit("a", a)
	assert.Equal(t, []*Named{a, b}, r.All())
}

func assertRegistryPanic(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		rec := recover()
		require.NotNil(t, rec, "expected panic")
		err, ok := rec.(*oaserrors.RegistryError)
		require.True(t, ok, "panic value %T", rec)
		assert.Equal(t, op, err.Op)
		assert.ErrorIs(t, err, oaserrors.ErrRegistry)
	}()
	fn()
}

func TestRegistry_Faults(t *testing.T) {
	t.Run("reserve identity twice", func(t *testing.T) {
		r := NewRegistry()
		r.Reserve("a", "A", DeclObject)
		assertRegistryPanic(t, "reserve", func() { r.Reserve("a", "A2", DeclObject) })
	})

	t.Run("identifier held by another identity", func(t *testing.T) {
		r := NewRegistry()
		r.Reserve("a", "A", DeclObject)
		assertRegistryPanic(t, "reserve", func() { r.Reserve("b", "A", DeclObject) })
	})

	t.Run("commit without reservation", func(t *testing.T) {
		r := NewRegistry()
		assertRegistryPanic(t, "commit", func() { r.Commit("a", &Named{Name: "A"}) })
	})

	t.Run("commit twice", func(t *testing.T) {
		r := NewRegistry()
		r.Reserve("a", "A", DeclObject)
		r.Commit("a", &Named{Name: "A"})
		assertRegistryPanic(t, "commit", func() { r.Commit("a", &Named{Name: "A"}) })
	})

	t.Run("commit under another name", func(t *testing.T) {
		r := NewRegistry()
		r.Reserve("a", "A", DeclObject)
		assertRegistryPanic(t, "commit", func() { r.Commit("a", &Named{Name: "B"}) })
	})

	t.Run("commit another kind", func(t *testing.T) {
		r := NewRegistry()
		r.Reserve("a", "A", DeclObject)
		assertRegistryPanic(t, "commit", func() { r.Commit("a", &Named{Name: "A", Kind: DeclEnum}) })
	})
}
