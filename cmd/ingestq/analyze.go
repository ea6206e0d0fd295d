// cmd/ingestq/analyze.go
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rosterdata/ingest-quality/pkg/analyzer"
	"github.com/rosterdata/ingest-quality/pkg/config"
	"github.com/rosterdata/ingest-quality/pkg/store"
)

func newAnalyzeCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var profilePath string
	var persist bool

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a delimited file and print the quality report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			analyzeOpts, _, err := resolveOptions(cfg, profilePath)
			if err != nil {
				return err
			}

			report := analyzer.New(logger).AnalyzeFile(data, analyzeOpts)

			if persist {
				if cfg.DatabaseURL == "" {
					return errors.New("--persist requires DATABASE_URL to be configured")
				}
				st, err := store.New(cmd.Context(), cfg.DatabaseURL, logger)
				if err != nil {
					return err
				}
				defer st.Close()

				jobID, err := st.SaveAnalysis(cmd.Context(), filepath.Base(args[0]), report)
				if err != nil {
					return err
				}
				logger.Info("report persisted", zap.String("jobID", jobID.String()))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "YAML job profile with column mapping and cleaning settings")
	cmd.Flags().BoolVar(&persist, "persist", false, "persist the report to Postgres (requires DATABASE_URL)")
	return cmd
}
