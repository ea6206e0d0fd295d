// pkg/store/store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/rosterdata/ingest-quality/pkg/model"
)

// Store persists import jobs, their issues, and cleaning summaries to
// PostgreSQL. The core analysis and cleaning packages never touch it;
// only the upload-side caller does.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// New connects to Postgres and ensures the tracking tables exist.
func New(ctx context.Context, databaseURL string, logger *zap.Logger) (*Store, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.setupTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup tracking tables: %w", err)
	}
	return s, nil
}

// setupTables ensures the import tracking tables exist.
func (s *Store) setupTables(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	ddl := `
		CREATE TABLE IF NOT EXISTS import_jobs (
			id UUID PRIMARY KEY,
			file_name TEXT NOT NULL,
			encoding TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			has_bom BOOLEAN NOT NULL,
			total_rows INT NOT NULL,
			total_columns INT NOT NULL,
			error_count INT NOT NULL,
			warning_count INT NOT NULL,
			info_count INT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS import_issues (
			id SERIAL PRIMARY KEY,
			job_id UUID NOT NULL REFERENCES import_jobs(id),
			row_number INT NOT NULL,
			column_number INT NOT NULL,
			issue_type TEXT NOT NULL,
			severity TEXT NOT NULL,
			original_value TEXT,
			suggested_fix TEXT,
			description TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS clean_runs (
			id SERIAL PRIMARY KEY,
			job_id UUID NOT NULL REFERENCES import_jobs(id),
			total_rows INT NOT NULL,
			cleaned_rows INT NOT NULL,
			rejected_rows INT NOT NULL,
			unchanged_rows INT NOT NULL,
			cells_modified INT NOT NULL,
			operation_counts JSONB NOT NULL,
			cleaned_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create tracking tables: %w", err)
	}

	s.logger.Info("Ensured import tracking tables exist")
	return nil
}

// SaveAnalysis records an analysis report under a fresh job ID and
// batch-inserts every issue inside one transaction.
func (s *Store) SaveAnalysis(ctx context.Context, fileName string, report *model.AnalysisReport) (uuid.UUID, error) {
	if report == nil {
		return uuid.Nil, errors.New("analysis report cannot be nil")
	}

	jobID := uuid.New()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("Failed to rollback transaction",
					zap.Error(rbErr),
					zap.Error(err))
			}
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO import_jobs
		(id, file_name, encoding, confidence, has_bom, total_rows, total_columns,
		 error_count, warning_count, info_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		jobID,
		fileName,
		report.Encoding.Encoding,
		report.Encoding.Confidence,
		report.Encoding.HasBOM,
		report.FileInfo.TotalRows,
		report.FileInfo.TotalColumns,
		report.Summary.ErrorCount,
		report.Summary.WarningCount,
		report.Summary.InfoCount,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert import job: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO import_issues
		(job_id, row_number, column_number, issue_type, severity,
		 original_value, suggested_fix, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, issue := range report.Issues {
		_, err = stmt.ExecContext(ctx,
			jobID,
			issue.Row,
			issue.Column,
			issue.Type,
			issue.Severity,
			issue.OriginalValue,
			issue.SuggestedFix,
			issue.Description,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert issue: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Recorded analysis report",
		zap.String("jobID", jobID.String()),
		zap.String("file", fileName),
		zap.Int("issues", len(report.Issues)))
	return jobID, nil
}

// SaveCleanSummary records the outcome of one cleaning run for a job.
func (s *Store) SaveCleanSummary(ctx context.Context, jobID uuid.UUID, summary model.CleanSummary) error {
	opCounts, err := json.Marshal(summary.OperationCounts)
	if err != nil {
		return fmt.Errorf("failed to encode operation counts: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO clean_runs
		(job_id, total_rows, cleaned_rows, rejected_rows, unchanged_rows,
		 cells_modified, operation_counts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		jobID,
		summary.TotalRows,
		summary.CleanedRows,
		summary.RejectedRows,
		summary.UnchangedRows,
		summary.TotalCellsModified,
		opCounts,
	)
	if err != nil {
		return fmt.Errorf("failed to insert clean run: %w", err)
	}

	s.logger.Info("Recorded cleaning summary",
		zap.String("jobID", jobID.String()),
		zap.Int("cleaned", summary.CleanedRows),
		zap.Int("rejected", summary.RejectedRows))
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
