package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/potooio/signpost/internal/adapters"
	"github.com/potooio/signpost/internal/types"
)

// ListResult is the result of the list and bookmarks commands.
type ListResult struct {
	Items []types.Descriptor `json:"items"`
	Total int                `json:"total"`
}

func listCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discovered applications in display order",
		Long: `List every application the active adapters discover, sorted by group,
location and name. Tagged entries are included; use "groups" for the
tag-filtered dashboard view.

Examples:
  # Everything
  signpostctl list

  # Only Ingresses in two namespaces
  signpostctl list --adapters ingress -n media -n docs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags)
		},
	}
}

func runList(cmd *cobra.Command, flags *globalFlags) error {
	s, err := newSession(flags)
	if err != nil {
		return err
	}

	items := []types.Descriptor{}
	if q, ok := s.applicationQuery(); ok {
		items = s.engine.Aggregate(context.Background(), q)
	}
	return outputResult(cmd.OutOrStdout(), ListResult{Items: items, Total: len(items)}, flags.output)
}

func bookmarksCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmarks",
		Short: "List bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBookmarks(cmd, flags)
		},
	}
}

func runBookmarks(cmd *cobra.Command, flags *globalFlags) error {
	s, err := newSession(flags)
	if err != nil {
		return err
	}
	if s.engine.Registry().ForName(adapters.BookmarkAdapter) == nil {
		return fmt.Errorf("the %s adapter is not enabled", adapters.BookmarkAdapter)
	}

	q := s.query
	q.Adapters = []string{adapters.BookmarkAdapter}
	items := s.engine.Aggregate(context.Background(), q)
	return outputResult(cmd.OutOrStdout(), ListResult{Items: items, Total: len(items)}, flags.output)
}
