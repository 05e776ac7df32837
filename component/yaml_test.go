package component_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sghaida/cfactory/component"
)

const treeYAML = `
components:
  tree:
    template: "<li>{{name}}</li>"
    depth: 3
    components:
      child: self
      leaf: leaf
      inline:
        template: "<b/>"
        components:
          back: tree
  leaf:
    template: "<i/>"
  empty:
`

func TestDecodeComponents(t *testing.T) {
	t.Parallel()

	entries, err := component.DecodeComponents(strings.NewReader(treeYAML))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	tree, ok := entries["tree"].Descriptor()
	require.True(t, ok)
	assert.Equal(t, map[string]any{"template": "<li>{{name}}</li>", "depth": 3}, tree.Fields)

	require.Len(t, tree.Components, 3)
	assert.Equal(t, component.RefSelf, tree.Components["child"].Kind())
	assert.Equal(t, component.RefName, tree.Components["leaf"].Kind())
	assert.Equal(t, "leaf", tree.Components["leaf"].Name())

	inline := tree.Components["inline"]
	require.Equal(t, component.RefLiteral, inline.Kind())
	assert.Equal(t, "<b/>", inline.Descriptor().Fields["template"])
	assert.Equal(t, "tree", inline.Descriptor().Components["back"].Name())

	empty, ok := entries["empty"].Descriptor()
	require.True(t, ok)
	assert.Empty(t, empty.Components)
}

func TestDecodeComponents_ResolvesEndToEnd(t *testing.T) {
	t.Parallel()

	entries, err := component.DecodeComponents(strings.NewReader(treeYAML))
	require.NoError(t, err)

	f := newFactory(entries)
	tree, err := f.GetComponentClass(context.Background(), "tree")
	require.NoError(t, err)

	child, _ := tree.Component("child")
	assert.Same(t, tree, child)

	leaf, _ := f.Cached("leaf")
	got, _ := tree.Component("leaf")
	assert.Same(t, leaf, got)

	inline, _ := tree.Component("inline")
	back, _ := inline.Component("back")
	assert.Same(t, tree, back)
}

func TestDecodeComponents_Empty(t *testing.T) {
	t.Parallel()

	entries, err := component.DecodeComponents(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = component.DecodeComponents(strings.NewReader("components:\n"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDecodeComponents_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		doc  string
		path string
	}{
		{
			name: "components not a mapping",
			doc:  "components: [a, b]\n",
			path: "components",
		},
		{
			name: "descriptor not a mapping",
			doc:  "components:\n  x: hello\n",
			path: "x",
		},
		{
			name: "child refs not a mapping",
			doc:  "components:\n  x:\n    components: self\n",
			path: "x.components",
		},
		{
			name: "child is a sequence",
			doc:  "components:\n  x:\n    components:\n      c: [1, 2]\n",
			path: "x.components.c",
		},
		{
			name: "empty child name",
			doc:  "components:\n  x:\n    components:\n      c: \"\"\n",
			path: "x.components.c",
		},
		{
			name: "nested inline error",
			doc:  "components:\n  x:\n    components:\n      c:\n        components:\n          d: [1]\n",
			path: "x.components.c.components.d",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := component.DecodeComponents(strings.NewReader(tc.doc))
			require.Error(t, err)

			var de component.DescriptorError
			require.True(t, errors.As(err, &de), "got %v", err)
			assert.Equal(t, tc.path, de.Path)
		})
	}
}

func TestDescriptor_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	var d component.Descriptor
	require.NoError(t, yaml.Unmarshal([]byte("template: x\ncomponents:\n  me: self\n"), &d))

	assert.Equal(t, "x", d.Fields["template"])
	assert.Equal(t, component.RefSelf, d.Components["me"].Kind())
}

func TestLoadComponents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "components.yaml")
	require.NoError(t, os.WriteFile(path, []byte(treeYAML), 0o600))

	entries, err := component.LoadComponents(path)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	_, err = component.LoadComponents(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
