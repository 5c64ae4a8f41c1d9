// Command restaurantctl seeds a restaurant store and produces stock, floor,
// financial and multi-location reports from it. Reports and QR images are
// exported to the configured blob store.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root, closeApp := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if closeErr := closeApp(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

type rootOptions struct {
	configFile string
	envFiles   []string
	demo       bool
	trace      bool
}

// newRootCmd builds the command tree. The returned func releases whatever
// the executed command opened.
func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, func() error) {
	opts := &rootOptions{}
	var a *app

	root := &cobra.Command{
		Use:           "restaurantctl",
		Short:         "Operate on the restaurant record store",
		Long:          `restaurantctl opens the configured store, runs one operation and exports the results. Settings come from --config, .env files and RESTAURANTCORE_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = openApp(cmd.Context(), opts, stdout, stderr)
			if err != nil {
				return err
			}
			if opts.demo {
				if _, err := a.svc.InitializeStore(cmd.Context()); err != nil {
					return fmt.Errorf("load demo dataset: %w", err)
				}
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (yaml, json or toml)")
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files to load before reading the environment")
	flags.BoolVar(&opts.demo, "demo", false, "load the sample dataset into this session before running")
	flags.BoolVar(&opts.trace, "trace", false, "write operation spans to stderr as JSON lines")

	appRef := func() *app { return a }
	root.AddCommand(
		newSeedCmd(appRef),
		newStockCmd(appRef),
		newTablesCmd(appRef),
		newReportCmd(appRef),
		newQRCmd(appRef),
	)
	closeApp := func() error {
		if a == nil {
			return nil
		}
		return a.Close()
	}
	return root, closeApp
}
