package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/tanshu3/internal/exitcode"
	"github.com/gyeh/tanshu3/internal/ingest"
	"github.com/gyeh/tanshu3/internal/logging"
	"github.com/gyeh/tanshu3/internal/model"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run: file stats and eligibility tally, no report",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringArrayVar(&cfg.Files, "file", nil, "EF file path, repeat in upload order (required)")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	loadRules(log)

	res, err := ingest.RunFiles(log, &cfg)
	if err != nil {
		if pe, ok := err.(*ingest.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("plan failed")
			os.Exit(phaseExitCode(pe.Phase))
		}
		log.Error().Err(err).Msg("plan failed")
		os.Exit(exitcode.EvaluateError)
	}

	s := res.Summary
	fmt.Println("=== tanshu3 plan ===")
	fmt.Printf("Batch:      %s\n", s.BatchID)
	for _, f := range s.Files {
		fmt.Println()
		fmt.Printf("File:       %s\n", f.Path)
		fmt.Printf("SHA-256:    %s\n", f.SHA256)
		fmt.Printf("Size:       %d bytes\n", f.SizeBytes)
		fmt.Printf("Encoding:   %s\n", f.Encoding)
		fmt.Printf("Rows:       %d read, %d skipped\n", f.RowsRead, f.RowsSkipped)
		fmt.Printf("Facts:      %d (%d markers)\n", f.Facts, f.Markers)
	}
	fmt.Println()
	fmt.Printf("Cases:      %d\n", s.Cases)
	fmt.Printf("Eligible:   %d\n", s.Eligible)
	fmt.Println("By reason:")
	for _, code := range model.AllReasonCodes {
		if n := s.ByReason[code.String()]; n > 0 {
			fmt.Printf("  %-28s %d\n", code.String(), n)
		}
	}
	fmt.Printf("\nRead %.2fs, aggregate %.2fs, evaluate %.2fs\n",
		s.DurationRead.Seconds(), s.DurationAggregate.Seconds(), s.DurationEvaluate.Seconds())
	return nil
}
