package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sghaida/cfactory/component"
)

// classView is the printed form of one resolved class.
type classView struct {
	ID         string            `yaml:"id"`
	Fields     []string          `yaml:"fields,omitempty"`
	Components map[string]string `yaml:"components,omitempty"`
}

// graphView is the printed form of a resolution.
type graphView struct {
	Classes   map[string]classView `yaml:"classes"`
	Anonymous map[string]classView `yaml:"anonymous,omitempty"`
}

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [name...]",
		Short: "Resolve components (all when no names are given) and print the class graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.factory(cmd.Context())
			if err != nil {
				return err
			}

			classes := map[string]*component.Class{}
			if len(args) == 0 {
				classes, err = f.GetAllComponentClasses(cmd.Context())
				if err != nil {
					return err
				}
			}
			for _, name := range args {
				cls, err := f.GetComponentClass(cmd.Context(), name)
				if err != nil {
					return err
				}
				classes[name] = cls
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(buildGraph(classes)); err != nil {
				return fmt.Errorf("encode graph: %w", err)
			}
			return enc.Close()
		},
	}
}

// buildGraph renders classes and every anonymous class reachable from them.
// Named children are shown by name only; they are listed when requested.
func buildGraph(classes map[string]*component.Class) graphView {
	g := graphView{Classes: map[string]classView{}, Anonymous: map[string]classView{}}

	var visitAnon func(c *component.Class)
	visit := func(c *component.Class) classView {
		v := classView{ID: c.ID().String(), Fields: c.FieldKeys()}
		for _, key := range c.ComponentKeys() {
			child, _ := c.Component(key)
			if v.Components == nil {
				v.Components = map[string]string{}
			}
			v.Components[key] = child.String()
			if child.Anonymous() {
				visitAnon(child)
			}
		}
		return v
	}
	visitAnon = func(c *component.Class) {
		key := c.String()
		if _, seen := g.Anonymous[key]; seen {
			return
		}
		g.Anonymous[key] = classView{} // mark before walking self references
		g.Anonymous[key] = visit(c)
	}

	for name, cls := range classes {
		g.Classes[name] = visit(cls)
	}
	return g
}

// parseData turns k=v pairs into instance data.
func parseData(pairs []string) (map[string]any, error) {
	data := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --data %q, want key=value", p)
		}
		data[k] = v
	}
	return data, nil
}
