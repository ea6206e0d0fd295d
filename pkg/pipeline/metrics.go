// pkg/pipeline/metrics.go
package pipeline

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// BatchMetrics tracks aggregate counts for one batch run. Workers update
// it concurrently, so all writes go through record.
type BatchMetrics struct {
	mu sync.Mutex

	StartTime      time.Time
	EndTime        time.Time
	FilesProcessed int
	FilesFailed    int
	RowsAnalyzed   int
	RowsRejected   int
	IssuesFound    int
}

// NewBatchMetrics creates a metrics tracker with the clock started.
func NewBatchMetrics() *BatchMetrics {
	return &BatchMetrics{StartTime: time.Now()}
}

// Duration returns the elapsed batch time.
func (m *BatchMetrics) Duration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

func (m *BatchMetrics) record(result FileResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if result.Err != nil {
		m.FilesFailed++
		return
	}
	m.FilesProcessed++
	m.RowsAnalyzed += result.Report.FileInfo.TotalRows
	m.IssuesFound += result.Report.Summary.TotalIssues
	if result.Clean != nil {
		m.RowsRejected += result.Clean.Summary.RejectedRows
	}
}

func (m *BatchMetrics) finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EndTime = time.Now()
}

// LogSummary emits the final batch totals.
func (m *BatchMetrics) LogSummary(logger *zap.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()

	logger.Info("batch run complete",
		zap.Int("filesProcessed", m.FilesProcessed),
		zap.Int("filesFailed", m.FilesFailed),
		zap.Int("rowsAnalyzed", m.RowsAnalyzed),
		zap.Int("rowsRejected", m.RowsRejected),
		zap.Int("issuesFound", m.IssuesFound),
		zap.Duration("duration", m.EndTime.Sub(m.StartTime)))
}
