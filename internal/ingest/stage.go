package ingest

import (
	"fmt"
	"time"

	"github.com/gyeh/tanshu3/internal/aggregate"
	"github.com/gyeh/tanshu3/internal/efread"
)

// StageResult holds the folded cases and metrics of one source.
type StageResult struct {
	Cases    *aggregate.Aggregator
	Stats    efread.Stats
	Duration time.Duration
}

// Stage streams one source through the extractor and folds its facts.
func Stage(src Source, enc efread.Encoding, opts aggregate.Options) (*StageResult, error) {
	start := time.Now()

	r, err := openReader(src, enc)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	agg := aggregate.New(opts)
	for {
		f, ok := r.Next()
		if !ok {
			break
		}
		agg.Add(f)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("stage read: %w", err)
	}

	return &StageResult{
		Cases:    agg,
		Stats:    r.Stats(),
		Duration: time.Since(start),
	}, nil
}

// openReader opens disk sources by path and everything else through Open.
func openReader(src Source, enc efread.Encoding) (*efread.Reader, error) {
	if src.Path != "" {
		r, err := efread.Open(src.Path, enc)
		if err != nil {
			return nil, fmt.Errorf("stage open: %w", err)
		}
		return r, nil
	}
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("stage open: %w", err)
	}
	r, err := efread.NewReader(rc, enc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("stage reader: %w", err)
	}
	r.OwnCloser(rc)
	return r, nil
}
