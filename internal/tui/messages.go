package tui

import "github.com/optimach/optimach/internal/domain"

// analysisCompleteMsg carries the outcome of a background analysis run.
type analysisCompleteMsg struct {
	Result *domain.AnalysisResult
	Err    error
}
