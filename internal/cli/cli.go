// Package cli implements the topoconf command-line interface.
//
// # Commands
//
//   - serve: run the HTTP topology service (the default command)
//   - layout: print the visualization layout of a topology file
//
// # Logging
//
// --debug switches every command to debug-level logging. Loggers are passed
// through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"topoconf/internal/config"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the topoconf CLI and returns an error if any command fails.
// Cancelling ctx shuts a running server down gracefully.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var debug bool
	serve := &serveOptions{}

	root := &cobra.Command{
		Use:          "topoconf",
		Short:        "Topology configuration server for simulated 5G networks",
		Long:         `topoconf stores a simulated 5G network topology (UPFs, gNBs, links, DNS connections) in memory and serves it, along with a derived 2-D layout, over HTTP.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := newLogger(os.Stderr, levelFor(config.LogLevelInfo, debug), config.LogFormatText)
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			serve.debug = debug
			return serve.run(cmd)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("topoconf %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	serve.bind(root)

	root.AddCommand(newServeCmd(&debug))
	root.AddCommand(newLayoutCmd())

	return root
}
