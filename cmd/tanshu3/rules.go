package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/tanshu3/internal/logging"
	"github.com/gyeh/tanshu3/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the active rule set",
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	loadRules(log)
	printRules(os.Stdout, cfg.Rules)
	return nil
}

func printRules(w io.Writer, rs *rules.RuleSet) {
	fmt.Fprintln(w, "=== tanshu3 rules ===")
	if cfg.RulesFile != "" {
		fmt.Fprintf(w, "Overlay:            %s\n", cfg.RulesFile)
	}
	fmt.Fprintf(w, "Max hospital days:  %d\n", rs.MaxHospitalDays)
	fmt.Fprintf(w, "Surgery prefix:     %s\n", rs.SurgeryPrefix)
	fmt.Fprintf(w, "Addition marker:    %s\n", rs.AdditionMarker)
	fmt.Fprintf(w, "Colonoscopy codes:  %s\n", strings.Join(rules.SortedCodes(rs.ColonoscopyCodes), ", "))
	fmt.Fprintf(w, "Special additions:  %s\n", strings.Join(rules.SortedCodes(rs.SpecialAdditionCodes), ", "))

	targets := rs.Targets()
	fmt.Fprintf(w, "\nTarget codes (%d):\n", len(targets))
	for _, p := range targets {
		name := p.Name
		if name == "" {
			name = "(" + rs.GenericLabel + ")"
		}
		fmt.Fprintf(w, "  %s  %s\n", p.Code, name)
	}
}
