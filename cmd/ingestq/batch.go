// cmd/ingestq/batch.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rosterdata/ingest-quality/pkg/config"
	"github.com/rosterdata/ingest-quality/pkg/pipeline"
	"github.com/rosterdata/ingest-quality/pkg/store"
)

func newBatchCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var profilePath string
	var persist bool

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Analyze and clean every CSV in a directory using the worker pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := loadJobs(args[0])
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				return fmt.Errorf("no .csv files found in %s", args[0])
			}

			analyzeOpts, cleanOpts, err := resolveOptions(cfg, profilePath)
			if err != nil {
				return err
			}

			var st *store.Store
			if persist {
				if cfg.DatabaseURL == "" {
					return fmt.Errorf("--persist requires DATABASE_URL to be configured")
				}
				st, err = store.New(cmd.Context(), cfg.DatabaseURL, logger)
				if err != nil {
					return err
				}
				defer st.Close()
			}

			runner := pipeline.NewRunner(logger, cfg.WorkerPoolSize)
			results, metrics := runner.Run(cmd.Context(), jobs, analyzeOpts, cleanOpts)

			for _, result := range results {
				if result.Err != nil {
					logger.Warn("file abandoned",
						zap.String("file", result.Job.Name),
						zap.Error(result.Err))
					continue
				}
				logger.Info("file processed",
					zap.String("file", result.Job.Name),
					zap.Int("totalIssues", result.Report.Summary.TotalIssues),
					zap.Int("rejectedRows", result.Clean.Summary.RejectedRows),
					zap.Duration("elapsed", result.Elapsed))

				if st != nil {
					jobID, err := st.SaveAnalysis(cmd.Context(), result.Job.Name, result.Report)
					if err != nil {
						return fmt.Errorf("failed to persist report for %s: %w", result.Job.Name, err)
					}
					if err := st.SaveCleanSummary(cmd.Context(), jobID, result.Clean.Summary); err != nil {
						return fmt.Errorf("failed to persist clean summary for %s: %w", result.Job.Name, err)
					}
				}
			}

			metrics.LogSummary(logger)
			return nil
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "YAML job profile with column mapping and cleaning settings")
	cmd.Flags().BoolVar(&persist, "persist", false, "persist reports and clean summaries to Postgres (requires DATABASE_URL)")
	return cmd
}

func loadJobs(dir string) ([]pipeline.FileJob, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var jobs []pipeline.FileJob
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		jobs = append(jobs, pipeline.FileJob{
			ID:   uuid.New(),
			Name: entry.Name(),
			Data: data,
		})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Name < jobs[j].Name })
	return jobs, nil
}
