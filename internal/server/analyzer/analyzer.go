// Package analyzer derives highlight intervals from an uploaded video file.
//
// The Analyzer interface is the seam where a real computer-vision analyzer
// can be substituted later; the shipped implementation estimates a frame
// count from the probed duration and samples random intervals.
package analyzer

import (
	"context"

	"github.com/sportclip/highlightd/internal/server/models"
)

// Analyzer produces highlight intervals from one video file on disk.
type Analyzer interface {
	Analyze(ctx context.Context, videoPath string) (*models.AnalysisResult, error)
}

// DurationProber derives a video's duration in seconds from its file.
type DurationProber interface {
	Duration(ctx context.Context, videoPath string) (float64, error)
}
