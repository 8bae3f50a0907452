package main

import (
	"github.com/matsen/snip/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show resolved settings",
		Long: `Show the database path, log file and log level this invocation
would use, and where the global config file is looked up.

Global config (~/.config/snip/config.yml):
  db_path: ~/notes/snippets.db
  log_file: ~/notes/snippets.log
  log_level: info`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}

			resp := ConfigResponse{
				DBPath:       a.cfg.DBPath,
				LogFile:      a.cfg.LogFile,
				LogLevel:     a.cfg.LogLevel.String(),
				GlobalConfig: config.GlobalConfigPath(),
			}

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				return outputJSON(w, resp)
			}
			lines := [][2]string{
				{"db_path:      ", resp.DBPath},
				{"log_file:     ", resp.LogFile},
				{"log_level:    ", resp.LogLevel},
				{"global_config:", resp.GlobalConfig},
			}
			for _, l := range lines {
				if err := outputHuman(w, "%s %s", l[0], l[1]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
