package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func getCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get GROUP NAME",
		Short: "Show one application",
		Long: `Show one application by group and name. Both are matched
case-insensitively.

Examples:
  signpostctl get media sonarr
  signpostctl get Media Sonarr -o yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, flags, args[0], args[1])
		},
	}
}

func runGet(cmd *cobra.Command, flags *globalFlags, group, name string) error {
	s, err := newSession(flags)
	if err != nil {
		return err
	}

	q, ok := s.applicationQuery()
	if !ok {
		return fmt.Errorf("no application adapters are enabled")
	}
	d, found := s.engine.FindByGroupAndName(context.Background(), q, group, name)
	if !found {
		return fmt.Errorf("application %s/%s not found", group, name)
	}
	return outputResult(cmd.OutOrStdout(), d, flags.output)
}
