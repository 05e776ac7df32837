// Command cfactory resolves component descriptor files into component classes.
//
// Component files are YAML:
//
//	components:
//	  tree:
//	    template: "<li>{{name}}</li>"
//	    components:
//	      child: self
//	      leaf: leaf
//	  leaf:
//	    template: "<i/>"
//
// Usage:
//
//	cfactory list -f components.yaml
//	cfactory resolve -f defaults.yaml -f app.yaml tree
//	cfactory instantiate -f components.yaml tree --data name=root
//
// Settings can also come from a config file (-c) or CFACTORY_* environment
// variables (CFACTORY_FILES, CFACTORY_LOG_LEVEL, CFACTORY_LOG_FORMAT,
// CFACTORY_STRICT).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

func run(ctx context.Context, args []string, out io.Writer) error {
	root := newRootCmd(out)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "cfactory:", err)
		os.Exit(1)
	}
}
