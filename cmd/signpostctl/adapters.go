package main

import (
	"github.com/spf13/cobra"

	"github.com/potooio/signpost/internal/adapters"
)

// AdaptersResult is the result of the adapters command.
type AdaptersResult struct {
	Adapters []AdapterInfo `json:"adapters"`
}

// AdapterInfo describes one active adapter.
type AdapterInfo struct {
	Name     string `json:"name"`
	Resource string `json:"resource"`
	Kind     string `json:"kind"`
	Serves   string `json:"serves"`
}

func adaptersCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "adapters",
		Short: "List the adapters the configuration enables",
		Long: `List the adapters the configuration enables, in merge order. Does not
contact the cluster.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, registry, err := loadRegistry(flags)
			if err != nil {
				return err
			}

			var result AdaptersResult
			for _, a := range registry.All() {
				serves := "applications"
				if a.Name() == adapters.BookmarkAdapter {
					serves = "bookmarks"
				}
				result.Adapters = append(result.Adapters, AdapterInfo{
					Name:     a.Name(),
					Resource: a.Selector().GVR.GroupResource().String(),
					Kind:     a.Selector().Kind,
					Serves:   serves,
				})
			}
			return outputResult(cmd.OutOrStdout(), result, flags.output)
		},
	}
}
