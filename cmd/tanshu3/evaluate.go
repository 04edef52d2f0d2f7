package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/tanshu3/internal/exitcode"
	"github.com/gyeh/tanshu3/internal/ingest"
	"github.com/gyeh/tanshu3/internal/logging"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate EF files and print the eligibility report",
	RunE:  runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.StringArrayVar(&cfg.Files, "file", nil, "EF file path, repeat in upload order (required)")
	f.StringVar(&cfg.OutputMode, "output-mode", "eligibleOnly", "Report rows: eligibleOnly or allCases")
	f.StringVar(&cfg.DateFormat, "date-format", "yyyymmdd", "Report dates: yyyymmdd or yyyy/mm/dd")
	f.StringVar(&cfg.Header, "header", "", "Override the report header line")
	f.StringVar(&cfg.OutputPath, "out", "", "Write the report here instead of stdout")
	f.StringVar(&cfg.ParquetPath, "parquet", "", "Also export evaluated cases as Parquet")
	_ = evaluateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	loadRules(log)

	res, err := ingest.RunFiles(log, &cfg)
	if err != nil {
		var pe *ingest.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("evaluation failed")
			os.Exit(phaseExitCode(pe.Phase))
		}
		log.Error().Err(err).Msg("evaluation failed")
		os.Exit(exitcode.EvaluateError)
	}

	if err := writeReport(cfg.OutputPath, res.Report); err != nil {
		log.Error().Err(err).Msg("failed to write report")
		os.Exit(exitcode.OutputError)
	}

	log.Info().
		Str("batch_id", res.Summary.BatchID).
		Int("cases", res.Summary.Cases).
		Int("eligible", res.Summary.Eligible).
		Msg("report written")
	return nil
}

func phaseExitCode(phase string) int {
	switch phase {
	case "preflight":
		return exitcode.InputError
	case "read":
		return exitcode.ParseError
	case "export":
		return exitcode.OutputError
	default:
		return exitcode.EvaluateError
	}
}

func writeReport(path, text string) error {
	if path == "" {
		_, err := fmt.Println(text)
		return err
	}
	return os.WriteFile(path, []byte(text+"\n"), 0o644)
}
