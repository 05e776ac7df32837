package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/sghaida/cfactory/component"
	"github.com/sghaida/cfactory/config"
	"github.com/sghaida/cfactory/runtime/basic"
)

var errNoFiles = errors.New("no component files given (use -f or files: in the config)")

// app carries state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *slog.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "cfactory",
		Short:         "Resolve component descriptor files into component classes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cfg.Logger()
			return nil
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (yaml)")
	pf.StringSliceP("file", "f", nil, "component file; repeatable, earlier files win")
	pf.String("log-level", "", "log level: debug|info|warn|error")
	pf.String("log-format", "", "log format: text|json")
	pf.Bool("strict", false, "fail on malformed instance requests")

	_ = a.v.BindPFlag("files", pf.Lookup("file"))
	_ = a.v.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log_format", pf.Lookup("log-format"))
	_ = a.v.BindPFlag("strict", pf.Lookup("strict"))

	root.AddCommand(
		newListCmd(a),
		newResolveCmd(a),
		newInstantiateCmd(a),
	)
	return root
}

// factory decodes the configured files concurrently and registers them in
// flag order, so the first file defining a name wins.
func (a *app) factory(ctx context.Context) (*component.Factory, error) {
	if len(a.cfg.Files) == 0 {
		return nil, errNoFiles
	}

	loaded := make([]map[string]component.Entry, len(a.cfg.Files))
	g, _ := errgroup.WithContext(ctx)
	for i, path := range a.cfg.Files {
		g.Go(func() error {
			entries, err := component.LoadComponents(path)
			if err != nil {
				return err
			}
			loaded[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts := []component.Option{component.WithLogger(a.logger)}
	if a.cfg.Strict {
		opts = append(opts, component.WithStrictRequests())
	}
	f := component.New(component.Config{Runtime: basic.New()}, opts...)
	for i, entries := range loaded {
		for name, entry := range entries {
			if !f.AddComponent(name, entry) {
				a.logger.Info("duplicate component ignored", "name", name, "file", a.cfg.Files[i])
			}
		}
	}
	a.logger.Debug("components registered", "count", len(f.Names()), "files", len(loaded))
	return f, nil
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the registered component names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.factory(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range f.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
