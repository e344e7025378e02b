package models

import "time"

// HighlightInterval identifies a candidate segment of interest by frame
// indices. Field names follow the wire format consumed by clients.
type HighlightInterval struct {
	StartFrame int `json:"startFrame"`
	EndFrame   int `json:"endFrame"`
}

// HighlightRecord is the durable result of one upload-and-analyze cycle.
// A record belongs to exactly one account and is immutable once created.
type HighlightRecord struct {
	ID              string              `json:"id"`
	AccountID       string              `json:"accountId"`
	Title           string              `json:"title"`
	SourceName      string              `json:"sourceName"`
	Location        string              `json:"location"`
	DurationSeconds float64             `json:"duration"`
	Intervals       []HighlightInterval `json:"highlights"`
	StorageKey      string              `json:"-"`
	PlaybackURL     string              `json:"playbackUrl,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// AnalysisResult is what an analyzer derives from one video payload.
type AnalysisResult struct {
	DurationSeconds float64
	TotalFrames     int
	Intervals       []HighlightInterval
}
