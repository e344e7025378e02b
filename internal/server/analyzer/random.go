package analyzer

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/sportclip/highlightd/internal/common"
	"github.com/sportclip/highlightd/internal/server/models"
)

// Frame-estimation and sampling constants. Frame count is estimated at a
// fixed 30 fps from the probed duration; at least 300 frames are needed to
// place three intervals.
const (
	FramesPerSecond = 30
	MinTotalFrames  = 300

	intervalCount  = 3
	startMargin    = 60
	minIntervalLen = 30
	maxIntervalLen = 60
)

// RandomSampler is the stand-in highlight generator: it picks
// intervalCount uniformly random intervals within the estimated frame
// range. Intervals may overlap and are returned unsorted; no ordering or
// disjointness guarantee is made.
type RandomSampler struct {
	probe DurationProber
}

func NewRandomSampler(probe DurationProber) *RandomSampler {
	return &RandomSampler{probe: probe}
}

func (s *RandomSampler) Analyze(ctx context.Context, videoPath string) (*models.AnalysisResult, error) {

	duration, err := s.probe.Duration(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: non-positive duration %f", common.ErrorMediaUnreadable, duration)
	}

	totalFrames := int(duration * FramesPerSecond)
	if totalFrames < MinTotalFrames {
		return nil, fmt.Errorf("%w: %d frames, need at least %d", common.ErrorMediaTooShort, totalFrames, MinTotalFrames)
	}

	intervals := make([]models.HighlightInterval, 0, intervalCount)
	for i := 0; i < intervalCount; i++ {
		start := 1 + rand.IntN(totalFrames-startMargin)
		end := start + minIntervalLen + rand.IntN(maxIntervalLen-minIntervalLen+1)
		if end > totalFrames {
			end = totalFrames
		}
		intervals = append(intervals, models.HighlightInterval{StartFrame: start, EndFrame: end})
	}

	return &models.AnalysisResult{
		DurationSeconds: duration,
		TotalFrames:     totalFrames,
		Intervals:       intervals,
	}, nil
}
