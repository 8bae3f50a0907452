package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newPutCmd(a *app) *cobra.Command {
	var hide, show bool

	cmd := &cobra.Command{
		Use:   "put <name> <snippet>",
		Short: "Store a snippet",
		Long: `Store a snippet under a name. Storing under an existing name
replaces its text and hidden flag.

Hidden snippets can still be fetched with get but never appear in search.

Examples:
  snip put recipe "2 cups flour"
  snip put secret "classified" --hide`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return usageError(err)
			}
			if hide && show {
				return usageError(errors.New("--hide and --show are mutually exclusive"))
			}
			return nil
		},
		Annotations: storeAnnotations(),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := a.db.Put(cmd.Context(), args[0], args[1], hide)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return outputJSON(w, PutResponse{Status: "stored", Snippet: stored})
			}
			return outputHuman(w, msgStored, stored.Keyword, stored.Hidden)
		},
	}

	cmd.Flags().BoolVar(&hide, "hide", false, "Exclude the snippet from search results")
	cmd.Flags().BoolVar(&show, "show", false, "Include the snippet in search results (default)")
	return cmd
}
