package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sghaida/cfactory/component"
	"github.com/sghaida/cfactory/runtime/basic"
)

type instanceView struct {
	Component string         `yaml:"component"`
	Template  string         `yaml:"template,omitempty"`
	Data      map[string]any `yaml:"data,omitempty"`
	Children  []string       `yaml:"children,omitempty"`
}

func newInstantiateCmd(a *app) *cobra.Command {
	var (
		pairs  []string
		inline string
	)

	cmd := &cobra.Command{
		Use:   "instantiate [name]",
		Short: "Create an instance of a component with the basic runtime and print it",
		Long: `Create an instance of a registered component, or of an inline descriptor
given with --inline. Exactly one of the two must be given; otherwise nothing is
created, or the command fails when --strict is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseData(pairs)
			if err != nil {
				return err
			}
			req := component.Request{Options: component.Options{Data: data}}
			if len(args) == 1 {
				req.Name = args[0]
			}
			if inline != "" {
				req.Literal = &component.Descriptor{}
				if err := yaml.Unmarshal([]byte(inline), req.Literal); err != nil {
					return fmt.Errorf("inline descriptor: %w", err)
				}
			}

			f, err := a.factory(cmd.Context())
			if err != nil {
				return err
			}
			inst, err := f.CreateInstance(cmd.Context(), req)
			if err != nil {
				return err
			}
			if inst == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no instance created")
				return nil
			}
			c, ok := inst.(*basic.Component)
			if !ok {
				return fmt.Errorf("unexpected instance type %T", inst)
			}

			view := instanceView{
				Component: c.Name(),
				Template:  c.Template(),
				Data:      c.Data(),
			}
			if req.Literal != nil {
				view.Children = slices.Sorted(maps.Keys(req.Literal.Components))
			} else if cls, ok := f.Cached(req.Name); ok {
				view.Children = cls.ComponentKeys()
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(view); err != nil {
				return fmt.Errorf("encode instance: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringArrayVar(&pairs, "data", nil, "initial data as key=value; repeatable")
	cmd.Flags().StringVar(&inline, "inline", "", "inline component descriptor (yaml) instead of a name")
	return cmd
}
