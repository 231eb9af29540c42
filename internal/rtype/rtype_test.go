package rtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binop-generator/internal/token"
)

func verbatim(t *testing.T, src string) *Verbatim {
	t.Helper()

	toks, err := token.Lex("", src)
	require.NoError(t, err)

	return &Verbatim{Toks: toks}
}

func TestWrapRef(t *testing.T) {
	dog := verbatim(t, "Dog")

	ref := WrapRef(dog)
	assert.True(t, IsRef(ref))
	assert.Equal(t, "&Dog", ref.String())
	assert.Equal(t, "&Dog", ref.Tokens().String())

	refref := WrapRef(ref)
	assert.Equal(t, "&&Dog", refref.String())
}

func TestStripRef(t *testing.T) {
	fish := verbatim(t, "Fish<T>")

	t.Run("reference", func(t *testing.T) {
		inner, ok := StripRef(WrapRef(fish))
		require.True(t, ok)
		assert.Same(t, fish, inner)
	})

	t.Run("owned", func(t *testing.T) {
		inner, ok := StripRef(fish)
		assert.False(t, ok)
		assert.Nil(t, inner)
	})

	t.Run("one level only", func(t *testing.T) {
		inner, ok := StripRef(WrapRef(WrapRef(fish)))
		require.True(t, ok)
		assert.True(t, IsRef(inner))
		assert.Equal(t, "&Fish<T>", inner.String())
	})
}

func TestRef_String(t *testing.T) {
	elem := verbatim(t, "[u8]")

	tests := []struct {
		name string
		ref  *Ref
		want string
	}{
		{"plain", &Ref{Elem: elem}, "&[u8]"},
		{"lifetime", &Ref{Lifetime: "'a", Elem: elem}, "&'a [u8]"},
		{"mut", &Ref{Mut: true, Elem: elem}, "&mut [u8]"},
		{"both", &Ref{Lifetime: "'a", Mut: true, Elem: elem}, "&'a mut [u8]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.String())
			assert.Equal(t, tt.want, tt.ref.Tokens().String())
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(verbatim(t, "Vec< T >"), verbatim(t, "Vec<T>")))
	assert.False(t, Equal(verbatim(t, "Vec<T>"), verbatim(t, "Vec<U>")))

	ref := WrapRef(verbatim(t, "Dog"))
	assert.True(t, Equal(ref, AsVerbatim(ref)))
	assert.True(t, Equal(ref, verbatim(t, "& Dog")))
	assert.False(t, IsRef(AsVerbatim(ref)))
}

func TestClone(t *testing.T) {
	orig := &Ref{Lifetime: "'a", Elem: verbatim(t, "Dog")}

	c := Clone(orig)
	require.IsType(t, &Ref{}, c)
	assert.NotSame(t, orig, c)
	assert.True(t, Equal(orig, c))
}
