package main

import (
	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List all snippet names",
		Long: `List the name of every stored snippet in ascending order,
hidden snippets included.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		Annotations: storeAnnotations(),
		RunE: func(cmd *cobra.Command, args []string) error {
			keywords, err := a.db.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return outputJSON(w, CatalogResponse{Keywords: keywords, Count: len(keywords)})
			}
			if len(keywords) == 0 {
				return outputHuman(w, msgCatalogEmpty)
			}
			for _, kw := range keywords {
				if err := outputHuman(w, "%s", kw); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
