package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/potooio/signpost/internal/types"
)

// GroupsResult is the result of the groups command.
type GroupsResult struct {
	Groups []types.Group `json:"groups"`
}

func groupsCmd(flags *globalFlags) *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Show applications grouped the way a dashboard renders them",
		Long: `Show applications grouped by group name. Entries with tags are hidden
unless one of their tags is passed with --tags.

Examples:
  signpostctl groups
  signpostctl groups --tags ops,infra -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroups(cmd, flags, tags)
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Show tagged entries carrying any of these tags")
	return cmd
}

func runGroups(cmd *cobra.Command, flags *globalFlags, tags []string) error {
	s, err := newSession(flags)
	if err != nil {
		return err
	}

	groups := []types.Group{}
	if q, ok := s.applicationQuery(); ok {
		groups = s.engine.AggregateGroups(context.Background(), q, tags)
	}
	return outputResult(cmd.OutOrStdout(), GroupsResult{Groups: groups}, flags.output)
}
