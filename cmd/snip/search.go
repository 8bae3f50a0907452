package main

import (
	"github.com/matsen/snip/internal/snippet"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <string>",
		Short: "Search snippet text",
		Long: `Print every visible snippet whose text contains the given string.
Matching is case-sensitive. Snippets stored with --hide never match.

Example:
  snip search flour`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		Annotations: storeAnnotations(),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			found, err := a.db.Search(cmd.Context(), query)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				matches := found.Value
				if matches == nil {
					matches = []snippet.Snippet{}
				}
				return outputJSON(w, SearchResponse{Query: query, Found: found.Found, Snippets: matches})
			}
			if !found.Found {
				return outputHuman(w, msgSearchNotFound, query)
			}
			for _, s := range found.Value {
				if err := outputHuman(w, msgSearchMatch, s.Keyword, s.Message); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
