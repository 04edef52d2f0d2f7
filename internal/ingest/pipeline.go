package ingest

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/tanshu3/internal/aggregate"
	"github.com/gyeh/tanshu3/internal/config"
	"github.com/gyeh/tanshu3/internal/efread"
	"github.com/gyeh/tanshu3/internal/evaluate"
	"github.com/gyeh/tanshu3/internal/model"
	"github.com/gyeh/tanshu3/internal/report"
	"github.com/gyeh/tanshu3/internal/rules"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Options controls one batch.
type Options struct {
	Encoding    efread.Encoding
	Aggregate   aggregate.Options
	Output      model.OutputSettings
	Header      string
	Rules       *rules.RuleSet
	ParquetPath string // skip the export when empty
}

// OptionsFromConfig parses the batch options out of cfg. cfg.Rules must
// already be resolved.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	enc, err := cfg.FileEncoding()
	if err != nil {
		return Options{}, err
	}
	aggOpts, err := cfg.AggregateOptions()
	if err != nil {
		return Options{}, err
	}
	out, err := cfg.OutputSettings()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Encoding:    enc,
		Aggregate:   aggOpts,
		Output:      out,
		Header:      cfg.Header,
		Rules:       cfg.Rules,
		ParquetPath: cfg.ParquetPath,
	}, nil
}

// Result is the outcome of one batch.
type Result struct {
	Report  string
	Cases   []*model.CaseData // every evaluated case, sorted, unfiltered
	Summary *model.Summary
}

// Run executes the batch: preflight → read → aggregate → evaluate → format,
// plus the optional Parquet export.
func Run(log zerolog.Logger, sources []Source, opts Options) (*Result, error) {
	totalStart := time.Now()
	summary := &model.Summary{BatchID: uuid.New().String()}
	log = log.With().Str("batch_id", summary.BatchID).Logger()

	// Phase 1: Preflight
	files, err := Preflight(sources)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}
	summary.Files = files

	// Phase 2: Read and fold each file in upload order
	readStart := time.Now()
	staged := make([]*aggregate.Aggregator, len(sources))
	for i, src := range sources {
		res, err := Stage(src, opts.Encoding, opts.Aggregate)
		if err != nil {
			return nil, &PipelineError{Phase: "read", Err: fmt.Errorf("%s: %w", src.Name, err)}
		}
		staged[i] = res.Cases
		fillStats(&summary.Files[i], res)

		log.Info().
			Str("file", src.Name).
			Str("encoding", string(res.Stats.Encoding)).
			Int64("rows_read", res.Stats.RowsRead).
			Int64("rows_skipped", res.Stats.RowsSkipped).
			Int64("facts", res.Stats.Facts).
			Int("cases", res.Cases.Len()).
			Dur("duration", res.Duration).
			Msg("file read")
	}
	summary.DurationRead = time.Since(readStart)

	// Phase 3: Merge across files
	aggStart := time.Now()
	cases := aggregate.MergeAll(opts.Aggregate, staged...).Cases()
	summary.DurationAggregate = time.Since(aggStart)

	// Phase 4: Evaluate
	evalStart := time.Now()
	evaluated := evaluate.New(opts.Rules).Evaluate(cases)
	for _, c := range evaluated {
		if c.Reason.Code == model.ReasonEvaluationError {
			log.Warn().Str("case_id", c.ID).Str("error", c.Reason.Detail).Msg("case evaluation failed")
		}
	}
	summary.DurationEvaluate = time.Since(evalStart)
	report.Tally(summary, evaluated)

	// Phase 5: Format
	text := report.Format(evaluated, opts.Output, opts.Header)

	// Phase 6: Export
	if opts.ParquetPath != "" {
		n, err := report.WriteParquetFile(opts.ParquetPath, evaluated, opts.Output)
		if err != nil {
			return nil, &PipelineError{Phase: "export", Err: err}
		}
		log.Info().Str("path", opts.ParquetPath).Int("rows", n).Msg("parquet export written")
	}

	summary.DurationTotal = time.Since(totalStart)
	log.Info().
		Int("files", len(sources)).
		Int("cases", summary.Cases).
		Int("eligible", summary.Eligible).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("evaluation complete")

	return &Result{Report: text, Cases: evaluated, Summary: summary}, nil
}

// RunFiles runs a batch over the files named in cfg.
func RunFiles(log zerolog.Logger, cfg *config.Config) (*Result, error) {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}
	return Run(log, FileSources(cfg.Files), opts)
}

func fillStats(fs *model.FileStats, res *StageResult) {
	fs.Encoding = string(res.Stats.Encoding)
	fs.RowsRead = res.Stats.RowsRead
	fs.RowsSkipped = res.Stats.RowsSkipped
	fs.Facts = res.Stats.Facts
	fs.Markers = res.Stats.Markers
	fs.Duration = res.Duration
}
