package main

import (
	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Retrieve a snippet",
		Long: `Print the snippet stored under a name.

A missing name is reported on stdout and is not an error.

Example:
  snip get recipe`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		Annotations: storeAnnotations(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			got, err := a.db.Get(cmd.Context(), name)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return outputJSON(w, GetResponse{Keyword: name, Found: got.Found, Message: got.Value})
			}
			if !got.Found {
				return outputHuman(w, msgNotFound, name)
			}
			return outputHuman(w, "%s", got.Value)
		},
	}
}
