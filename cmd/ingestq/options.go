// cmd/ingestq/options.go
package main

import (
	"github.com/rosterdata/ingest-quality/pkg/analyzer"
	"github.com/rosterdata/ingest-quality/pkg/cleaner"
	"github.com/rosterdata/ingest-quality/pkg/config"
)

// resolveOptions builds analyzer and cleaner options from an optional
// job profile, falling back to defaults with the configured row guard.
func resolveOptions(cfg *config.Config, profilePath string) (analyzer.Options, cleaner.Options, error) {
	analyzeOpts := analyzer.DefaultOptions()
	analyzeOpts.MaxRows = cfg.MaxRows
	cleanOpts := cleaner.DefaultOptions()

	if profilePath == "" {
		return analyzeOpts, cleanOpts, nil
	}

	profile, err := config.LoadProfile(profilePath)
	if err != nil {
		return analyzeOpts, cleanOpts, err
	}

	analyzeOpts = profile.AnalyzerOptions()
	if analyzeOpts.MaxRows == 0 {
		analyzeOpts.MaxRows = cfg.MaxRows
	}
	cleanOpts = profile.CleanerOptions()
	return analyzeOpts, cleanOpts, nil
}
