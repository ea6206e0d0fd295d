// cmd/ingestq/clean.go
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rosterdata/ingest-quality/pkg/analyzer"
	"github.com/rosterdata/ingest-quality/pkg/charset"
	"github.com/rosterdata/ingest-quality/pkg/cleaner"
	"github.com/rosterdata/ingest-quality/pkg/config"
	"github.com/rosterdata/ingest-quality/pkg/csvparse"
	"github.com/rosterdata/ingest-quality/pkg/model"
)

func newCleanCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var profilePath string
	var outDir string

	cmd := &cobra.Command{
		Use:   "clean <file>",
		Short: "Analyze and clean a delimited file, writing cleaned and rejected CSVs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			analyzeOpts, cleanOpts, err := resolveOptions(cfg, profilePath)
			if err != nil {
				return err
			}

			report := analyzer.New(logger).AnalyzeFile(data, analyzeOpts)

			parsed := csvparse.Parse(string(charset.StripBOM(data)), csvparse.Options{
				Delimiter:  analyzeOpts.Delimiter,
				HasHeaders: analyzeOpts.HasHeaders,
			})
			rows := parsed.Rows
			if analyzeOpts.MaxRows > 0 && len(rows) > analyzeOpts.MaxRows {
				rows = rows[:analyzeOpts.MaxRows]
			}

			result := cleaner.New(logger).CleanData(rows, parsed.Headers, report, cleanOpts)

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))

			cleanedPath := filepath.Join(outDir, base+".cleaned.csv")
			if err := writeCSV(cleanedPath, result.Headers, result.CleanedRows); err != nil {
				return err
			}
			logger.Info("wrote cleaned rows",
				zap.String("path", cleanedPath),
				zap.Int("rows", len(result.CleanedRows)))

			if len(result.RejectedRows) > 0 {
				rejectedPath := filepath.Join(outDir, base+".rejected.csv")
				if err := writeCSV(rejectedPath, rejectedHeaders(result.Headers), rejectedRecords(result.RejectedRows)); err != nil {
					return err
				}
				logger.Info("wrote rejected rows",
					zap.String("path", rejectedPath),
					zap.Int("rows", len(result.RejectedRows)))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result.Summary)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "YAML job profile with column mapping and cleaning settings")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory for cleaned and rejected output files")
	return cmd
}

// writeCSV serializes rows for download. Output serialization lives in
// the CLI; the core only ever parses.
func writeCSV(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	w.Flush()
	return w.Error()
}

func rejectedHeaders(headers []string) []string {
	return append([]string{"Reject Reasons"}, headers...)
}

func rejectedRecords(rejected []model.RejectedRow) [][]string {
	records := make([][]string, len(rejected))
	for i, r := range rejected {
		records[i] = append([]string{strings.Join(r.Reasons, "; ")}, r.Row...)
	}
	return records
}
