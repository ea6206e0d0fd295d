// cmd/ingestq/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rosterdata/ingest-quality/pkg/config"
	"github.com/rosterdata/ingest-quality/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := newRootCmd(cfg, logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "ingestq",
		Short:         "Data-quality analysis and cleaning for delimited employee files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newAnalyzeCmd(cfg, logger),
		newCleanCmd(cfg, logger),
		newBatchCmd(cfg, logger),
	)
	return root
}
