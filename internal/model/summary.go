package model

import "time"

// FileStats captures what was read from a single EF file.
type FileStats struct {
	Path        string
	SHA256      string
	SizeBytes   int64
	Encoding    string
	RowsRead    int64
	RowsSkipped int64
	Facts       int64
	Markers     int64
	Duration    time.Duration
}

// Summary captures metrics from a single evaluation batch.
type Summary struct {
	BatchID           string
	Files             []FileStats
	Cases             int
	Eligible          int
	ByReason          map[string]int
	DurationRead      time.Duration
	DurationAggregate time.Duration
	DurationEvaluate  time.Duration
	DurationTotal     time.Duration
}
