package main

import (
	"fmt"
	"os"

	"github.com/matsen/snip/internal/storage"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write all snippets to a JSONL file",
		Long: `Write every snippet, hidden ones included, to a JSONL file
(one {"keyword","message","hidden"} object per line). The file is replaced.

Example:
  snip export backup.jsonl`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		Annotations: storeAnnotations(),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			snippets, err := a.db.Export(cmd.Context())
			if err != nil {
				return err
			}
			if err := storage.WriteAll(path, snippets); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return outputJSON(w, TransferResponse{Status: "exported", Path: path, Count: len(snippets)})
			}
			return outputHuman(w, msgExported, len(snippets), path)
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Store all snippets from a JSONL file",
		Long: `Store every snippet in a JSONL file written by export. Existing
names are overwritten. Nothing is stored if any line is invalid.

Example:
  snip import backup.jsonl`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		Annotations: storeAnnotations(),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}

			snippets, err := storage.ReadAll(path)
			if err != nil {
				return err
			}
			n, err := a.db.Import(cmd.Context(), snippets)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return outputJSON(w, TransferResponse{Status: "imported", Path: path, Count: n})
			}
			return outputHuman(w, msgImported, n, path)
		},
	}
}
