package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/tanshu3/internal/config"
	"github.com/gyeh/tanshu3/internal/exitcode"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "tanshu3",
	Short: "Basic fee 3 (短手3) eligibility checker for EF files",
	Long: "Reads EF-format DPC billing files, groups them into hospitalization cases " +
		"and reports which cases qualify for the basic fee 3 short-stay surgery fee.",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&cfg.RulesFile, "rules", os.Getenv("TANSHU3_RULES"), "YAML rule overlay (or set TANSHU3_RULES)")
	pf.StringVar(&cfg.Encoding, "encoding", "auto", "EF file encoding: auto, utf-8 or shift_jis")
	pf.StringVar(&cfg.Grouping, "grouping", "id", "Case grouping: id or id+admission")
	pf.StringVar(&cfg.Dedup, "dedup", "tuple", "Procedure de-duplication: tuple or code")
}

// loadRules resolves the rule set or exits with a usage error.
func loadRules(log zerolog.Logger) {
	if err := cfg.ResolveRules(); err != nil {
		log.Error().Err(err).Str("rules", cfg.RulesFile).Msg("failed to load rules")
		os.Exit(exitcode.UsageError)
	}
}
