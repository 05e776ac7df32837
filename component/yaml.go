package component

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the persisted component set:
//
//	components:
//	  tree:
//	    template: "<li>{{name}}</li>"
//	    components:
//	      child: self
//	      leaf: leaf
//	      inline:
//	        template: "<b/>"
type File struct {
	Components map[string]*Descriptor
}

// UnmarshalYAML decodes the file, naming each descriptor path after its
// component so errors point at the offending entry.
func (f *File) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Components yaml.Node `yaml:"components"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	f.Components = map[string]*Descriptor{}
	comps := &raw.Components
	if comps.Kind == 0 || comps.Tag == "!!null" {
		return nil
	}
	if comps.Kind != yaml.MappingNode {
		return DescriptorError{Path: componentsField, Reason: "expected a mapping of components"}
	}

	for i := 0; i+1 < len(comps.Content); i += 2 {
		name, val := comps.Content[i].Value, comps.Content[i+1]
		d := &Descriptor{Fields: map[string]any{}}
		if val.Tag != "!!null" {
			if err := d.decode(val, name); err != nil {
				return err
			}
		}
		f.Components[name] = d
	}
	return nil
}

// Entries converts the file into registry entries.
func (f File) Entries() map[string]Entry {
	out := make(map[string]Entry, len(f.Components))
	for name, d := range f.Components {
		if d == nil {
			d = &Descriptor{}
		}
		out[name] = Unresolved(d)
	}
	return out
}

// DecodeComponents reads a component file from r.
func DecodeComponents(r io.Reader) (map[string]Entry, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return map[string]Entry{}, nil
		}
		return nil, fmt.Errorf("component: decode components: %w", err)
	}
	return f.Entries(), nil
}

// LoadComponents reads a component file from path.
func LoadComponents(path string) (map[string]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("component: read %s: %w", path, err)
	}
	entries, err := DecodeComponents(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// UnmarshalYAML decodes a descriptor mapping. The "components" key holds child
// references: the string "self", another component name, or a nested mapping
// for an inline descriptor. Every other key is kept as a behavior field.
func (d *Descriptor) UnmarshalYAML(node *yaml.Node) error {
	return d.decode(node, "")
}

func (d *Descriptor) decode(node *yaml.Node, path string) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return DescriptorError{Path: path, Reason: "expected a mapping"}
	}

	d.Fields = map[string]any{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		if key != componentsField {
			var v any
			if err := val.Decode(&v); err != nil {
				return DescriptorError{Path: join(path, key), Reason: err.Error()}
			}
			d.Fields[key] = v
			continue
		}
		if val.Tag == "!!null" {
			continue
		}

		refs, err := decodeRefs(val, join(path, key))
		if err != nil {
			return err
		}
		d.Components = refs
	}
	return nil
}

func decodeRefs(node *yaml.Node, path string) (map[string]Ref, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return nil, DescriptorError{Path: path, Reason: "expected a mapping of child references"}
	}

	refs := make(map[string]Ref, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		if val.Kind == yaml.AliasNode {
			val = val.Alias
		}
		switch val.Kind {
		case yaml.ScalarNode:
			if val.Value == "" {
				return nil, DescriptorError{Path: join(path, key), Reason: "empty component name"}
			}
			refs[key] = Named(val.Value)
		case yaml.MappingNode:
			child := &Descriptor{}
			if err := child.decode(val, join(path, key)); err != nil {
				return nil, err
			}
			refs[key] = Literal(child)
		default:
			return nil, DescriptorError{Path: join(path, key), Reason: "expected a name or an inline descriptor"}
		}
	}
	return refs, nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
