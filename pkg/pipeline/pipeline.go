// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rosterdata/ingest-quality/pkg/analyzer"
	"github.com/rosterdata/ingest-quality/pkg/charset"
	"github.com/rosterdata/ingest-quality/pkg/cleaner"
	"github.com/rosterdata/ingest-quality/pkg/csvparse"
	"github.com/rosterdata/ingest-quality/pkg/model"
)

// FileJob is one uploaded file to push through analysis and cleaning.
type FileJob struct {
	ID   uuid.UUID
	Name string
	Data []byte
}

// FileResult pairs a job with its report and cleaning outcome. Err is
// only set when the job was cancelled; the core itself never fails on
// malformed data.
type FileResult struct {
	Job     FileJob
	Report  *model.AnalysisReport
	Clean   *model.CleanResult
	Elapsed time.Duration
	Err     error
}

// Runner processes independent files concurrently, one worker per file
// at a time. Rows within a file are still handled by the single-pass
// core, so per-row semantics are unaffected by the parallelism.
type Runner struct {
	analyzer *analyzer.Analyzer
	cleaner  *cleaner.Cleaner
	logger   *zap.Logger
	workers  int
}

// NewRunner creates a Runner; workers <= 0 selects runtime.NumCPU().
func NewRunner(logger *zap.Logger, workers int) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{
		analyzer: analyzer.New(logger),
		cleaner:  cleaner.New(logger),
		logger:   logger,
		workers:  workers,
	}
}

// Run analyzes and cleans every job with the shared options, returning
// results in completion order together with batch metrics. Cancelling
// the context abandons queued jobs; in-flight files finish.
func (r *Runner) Run(ctx context.Context, jobs []FileJob, analyzeOpts analyzer.Options, cleanOpts cleaner.Options) ([]FileResult, *BatchMetrics) {
	metrics := NewBatchMetrics()
	jobCh := make(chan FileJob)
	resultCh := make(chan FileResult, len(jobs))

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			logger := r.logger.With(zap.Int("workerID", workerID))
			for job := range jobCh {
				resultCh <- r.processFile(logger, job, analyzeOpts, cleanOpts)
			}
		}(w)
	}

	go func() {
		defer close(jobCh)
		for i, job := range jobs {
			select {
			case jobCh <- job:
			case <-ctx.Done():
				for _, abandoned := range jobs[i:] {
					resultCh <- FileResult{Job: abandoned, Err: ctx.Err()}
				}
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]FileResult, 0, len(jobs))
	for result := range resultCh {
		metrics.record(result)
		results = append(results, result)
	}
	metrics.finish()

	return results, metrics
}

func (r *Runner) processFile(logger *zap.Logger, job FileJob, analyzeOpts analyzer.Options, cleanOpts cleaner.Options) FileResult {
	start := time.Now()
	logger.Debug("processing file",
		zap.String("file", job.Name),
		zap.Int("bytes", len(job.Data)))

	report := r.analyzer.AnalyzeFile(job.Data, analyzeOpts)

	// The cleaner consumes raw rows, so tokenize once more off the
	// BOM-stripped text with the same options the analyzer used.
	parsed := csvparse.Parse(string(charset.StripBOM(job.Data)), csvparse.Options{
		Delimiter:  analyzeOpts.Delimiter,
		HasHeaders: analyzeOpts.HasHeaders,
	})
	rows := parsed.Rows
	if analyzeOpts.MaxRows > 0 && len(rows) > analyzeOpts.MaxRows {
		rows = rows[:analyzeOpts.MaxRows]
	}
	clean := r.cleaner.CleanData(rows, parsed.Headers, report, cleanOpts)

	return FileResult{
		Job:     job,
		Report:  report,
		Clean:   clean,
		Elapsed: time.Since(start),
	}
}
