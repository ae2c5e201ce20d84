// Package cli implements the itinmd CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teamventure/itinmd/internal/config"
	"github.com/teamventure/itinmd/internal/logging"
	"github.com/teamventure/itinmd/internal/store"
)

var (
	dbPath     string
	configPath string
	verbose    bool

	cfg    = &config.Config{}
	logger = zap.NewNop()

	osExit = os.Exit
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "itinmd",
	Short: "Itinerary Markdown toolkit",
	Long:  "Parse, validate, clean up and version itinerary Markdown. Text in, text out. SQLite-backed, single binary.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			c.Log.Level = "debug"
		}
		l, err := logging.New(c.Log)
		if err != nil {
			return err
		}
		cfg, logger = c, l
		logger.Debug("config loaded", zap.String("command", cmd.Name()), zap.String("db", getDBPath()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $ITINMD_DB or ~/.itinmd/itinmd.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $CONFIG_PATH or ./itinmd.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging on stderr")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.Store.DBPath()
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath(), store.WithLogger(logger))
}

func exitErr(msg string, err error) {
	logger.Debug("command failed", zap.String("op", msg), zap.Error(err))
	_ = logger.Sync()
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	osExit(1)
}

// readInput returns the contents of the file named by the first argument, or stdin when
// there is no argument or it is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(b), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			return "", fmt.Errorf("input is required (file argument or stdin)")
		}
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func printJSON(cmd *cobra.Command, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		exitErr("encode json", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
