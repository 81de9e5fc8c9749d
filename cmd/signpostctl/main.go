// signpostctl runs Signpost's discovery engine against a cluster from the
// command line, without the HTTP server.
//
// Installation:
//
//	go build -o signpostctl ./cmd/signpostctl
//	mv signpostctl /usr/local/bin/
//
// Usage:
//
//	signpostctl list
//	signpostctl groups --tags ops
//	signpostctl get media sonarr -o yaml
//	signpostctl adapters
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	output     string
	configPath string
	namespaces []string
	instance   string
	adapters   []string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "signpostctl",
		Short: "List the applications Signpost discovers in a cluster",
		Long: `signpostctl runs the Signpost discovery engine against the cluster in
your kubeconfig and prints what a dashboard would show.

Adapter selection, namespace scope and the default instance come from the
Signpost configuration file when --config is given.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.output, "output", "o", "table", "Output format: table, json, yaml")
	pf.StringVar(&flags.configPath, "config", "", "Path to a Signpost configuration file")
	pf.StringSliceVarP(&flags.namespaces, "namespace", "n", nil, "Restrict discovery to these namespaces (repeatable)")
	pf.StringVar(&flags.instance, "instance", "", "Instance filter; defaults to the configured instance")
	pf.StringSliceVar(&flags.adapters, "adapters", nil, "Only run these adapters (repeatable)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log adapter failures and skipped objects to stderr")

	rootCmd.AddCommand(listCmd(flags))
	rootCmd.AddCommand(groupsCmd(flags))
	rootCmd.AddCommand(getCmd(flags))
	rootCmd.AddCommand(bookmarksCmd(flags))
	rootCmd.AddCommand(adaptersCmd(flags))

	return rootCmd
}
