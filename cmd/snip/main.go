// Package main provides the snip CLI entry point.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matsen/snip/internal/config"
	"github.com/matsen/snip/internal/logging"
	"github.com/matsen/snip/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// errUsage marks malformed invocations; they exit with ExitUsage and print usage.
	errUsage = errors.New("usage error")
	// errConfig marks configuration failures; they exit with ExitConfigError.
	errConfig = errors.New("configuration error")
)

// annotationStore marks commands that need the database open before RunE.
const annotationStore = "snip/store"

// storeAnnotations is shared by every command that reads or writes snippets.
func storeAnnotations() map[string]string {
	return map[string]string{annotationStore: "true"}
}

func usageError(err error) error {
	return fmt.Errorf("%w: %w", errUsage, err)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one snip invocation and returns its exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if err == nil {
		return ExitSuccess
	}

	// Errors are silenced in cobra so the exit code and format stay ours.
	fmt.Fprintf(stderr, "Error: %s\n", err)
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	case errors.Is(err, errConfig):
		return ExitConfigError
	default:
		return ExitError
	}
}

// app carries the state of one invocation: flag values, the resolved
// configuration, and the open store.
type app struct {
	dbFlag      string
	logFileFlag string
	jsonOutput  bool

	cfg       *config.Config
	db        *storage.DB
	logCloser io.Closer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "snip",
		Short: "Store and retrieve snippets of text",
		Long: `snip stores short named text snippets in a SQLite database.

Commands:
  put      Store a snippet under a name (overwrites an existing one)
  get      Print the snippet stored under a name
  catalog  List every stored name
  search   Find visible snippets containing a string

Settings are resolved from flags, then SNIP_DB / SNIP_LOG_FILE /
SNIP_LOG_LEVEL (a .env file is honored), then ~/.config/snip/config.yml.`,
		// Args rejects every bare invocation so it fails before any hook runs.
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError(fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath()))
			}
			return usageError(errors.New("no command given"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationStore] != "true" {
				return nil
			}
			return a.open()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	root.PersistentFlags().StringVar(&a.dbFlag, "db", "", "Path to the snippets database (default "+config.DefaultDBPath+")")
	root.PersistentFlags().StringVar(&a.logFileFlag, "log-file", "", "Path to the diagnostic log (default "+config.DefaultLogFile+")")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output JSON instead of human-readable text")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	root.AddCommand(
		newPutCmd(a),
		newGetCmd(a),
		newCatalogCmd(a),
		newSearchCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newConfigCmd(a),
	)

	return root
}

// loadConfig resolves configuration without touching the database.
func (a *app) loadConfig() error {
	cfg, err := config.Resolve(config.Overrides{DBPath: a.dbFlag, LogFile: a.logFileFlag}, config.GlobalConfigPath())
	if err != nil {
		return fmt.Errorf("%w: %w", errConfig, err)
	}
	a.cfg = cfg
	return nil
}

// open resolves configuration, starts the log, and opens the store.
func (a *app) open() error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	logger, closer, err := logging.Open(a.cfg.LogFile, a.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", errConfig, err)
	}
	a.logCloser = closer

	db, err := storage.OpenDB(a.cfg.DBPath, logger)
	if err != nil {
		return err
	}
	a.db = db
	return nil
}

// close releases the store and the log file, whichever were opened.
func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}
