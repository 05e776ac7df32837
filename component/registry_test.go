package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// NewRegistry / AddComponent
// -----------------------------------------------------------------------------

// TestNewRegistry_Empty verifies NewRegistry initializes a non-nil registry with an empty map.
func TestNewRegistry_Empty(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NotNil(t, r)
	require.NotNil(t, r.items)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Names())
}

// TestAddComponent_FirstWins verifies a second registration under the same name is ignored.
func TestAddComponent_FirstWins(t *testing.T) {
	t.Parallel()

	d1 := &Descriptor{Fields: map[string]any{"template": "one"}}
	d2 := &Descriptor{Fields: map[string]any{"template": "two"}}

	r := NewRegistry()
	assert.True(t, r.AddComponent("x", Unresolved(d1)))
	assert.False(t, r.AddComponent("x", Unresolved(d2)))

	got, ok := r.Get("x")
	require.True(t, ok)
	d, ok := got.Descriptor()
	require.True(t, ok)
	assert.Same(t, d1, d)
}

// TestAddComponent_ZeroEntryIgnored verifies an unset entry never occupies a name.
func TestAddComponent_ZeroEntryIgnored(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.False(t, r.AddComponent("x", Entry{}))

	_, ok := r.Get("x")
	assert.False(t, ok)

	assert.True(t, r.AddComponent("x", Unresolved(&Descriptor{})))
}

// TestAddComponent_ClassEntry verifies prebuilt classes are stored as-is.
func TestAddComponent_ClassEntry(t *testing.T) {
	t.Parallel()

	cls := NewClass("btn", nil, nil, nil)
	r := NewRegistry()
	require.True(t, r.AddComponent("btn", Resolved(cls)))

	got, ok := r.MustGet("btn").Class()
	require.True(t, ok)
	assert.Same(t, cls, got)
}

//
// -----------------------------------------------------------------------------
// AddComponents
// -----------------------------------------------------------------------------

// TestAddComponents_KeepsExisting verifies bulk registration never overwrites earlier names.
func TestAddComponents_KeepsExisting(t *testing.T) {
	t.Parallel()

	user := &Descriptor{Fields: map[string]any{"template": "user"}}
	r := NewRegistry()
	r.AddComponent("button", Unresolved(user))

	r.AddComponents(map[string]Entry{
		"button": Unresolved(&Descriptor{Fields: map[string]any{"template": "default"}}),
		"input":  Unresolved(&Descriptor{}),
		"label":  Unresolved(&Descriptor{}),
	})

	assert.Equal(t, []string{"button", "input", "label"}, r.Names())
	d, _ := r.MustGet("button").Descriptor()
	assert.Same(t, user, d)
}

//
// -----------------------------------------------------------------------------
// Get / MustGet
// -----------------------------------------------------------------------------

// TestGet_Missing verifies Get returns (zero,false) for missing names.
func TestGet_Missing(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	got, ok := r.Get("missing")
	assert.False(t, ok)
	assert.True(t, got.IsZero())
}

// TestMustGet_Missing verifies MustGet panics with a helpful message when the name is missing.
func TestMustGet_Missing(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	require.PanicsWithError(t, `component: registry missing name "missing"`, func() {
		_ = r.MustGet("missing")
	})
}
