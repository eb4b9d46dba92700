// Package cli implements the attendancectl commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"face-logbook/internal/app"
	"face-logbook/internal/config"
	"face-logbook/internal/shared/clock"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "attendancectl",
	Short: "Operate the face attendance engine",
	Long:  "Inspect attendance, run the daily reset by hand and replay detections against the attendance database.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		if configPath != "" {
			_ = os.Setenv(config.EnvFileVar, configPath)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (default: $FACELOG_CONFIG)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log engine activity to stderr")
}

// openRuntime loads configuration and connects the database. Publishing
// follows kafka_broker so that rows written here are relayed by the worker.
func openRuntime(ctx context.Context) (*app.Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = app.NewLogger(cfg.Env); err != nil {
			return nil, err
		}
	}
	zap.ReplaceGlobals(logger)

	return app.BuildApp(ctx, cfg, logger, app.BuildOptions{})
}

// parseDate reads an ISO date flag in the engine's zone; empty means today.
func parseDate(rt *app.Runtime, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return clock.ParseDate(value, rt.Registry.Clock.Location())
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
