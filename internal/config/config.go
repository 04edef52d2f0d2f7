package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/tanshu3/internal/aggregate"
	"github.com/gyeh/tanshu3/internal/efread"
	"github.com/gyeh/tanshu3/internal/model"
	"github.com/gyeh/tanshu3/internal/rules"
)

// Config holds all runtime configuration for a tanshu3 run.
type Config struct {
	Files       []string // EF files, in upload order
	OutputMode  string   // "eligibleOnly" or "allCases"
	DateFormat  string   // "yyyymmdd" or "yyyy/mm/dd"
	Header      string   // report header override
	OutputPath  string   // report destination; stdout when empty
	ParquetPath string   // optional Parquet export
	Encoding    string   // "auto", "utf-8" or "shift_jis"
	Grouping    string   // "id" or "id+admission"
	Dedup       string   // "tuple" or "code"
	RulesFile   string   // YAML rule overlay
	LogFormat   string   // "text" or "json"
	LogLevel    string
	Listen      string // serve only

	Rules *rules.RuleSet
}

// yamlConfig is the on-disk YAML structure. Absent keys keep the defaults.
type yamlConfig struct {
	MaxHospitalDays      *int              `yaml:"max_hospital_days"`
	SurgeryPrefix        *string           `yaml:"surgery_prefix"`
	AdditionMarker       *string           `yaml:"addition_marker"`
	GenericLabel         *string           `yaml:"generic_label"`
	TargetCodes          []rules.Procedure `yaml:"target_codes"`
	ColonoscopyCodes     []string          `yaml:"colonoscopy_codes"`
	SpecialAdditionCodes []string          `yaml:"special_addition_codes"`
	ProcedureNames       map[string]string `yaml:"procedure_names"`
}

// LoadFromFile reads a YAML rule overlay and merges it into c.Rules,
// starting from rules.Default() when no rule set is loaded yet.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rules file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse rules file: %w", err)
	}
	if c.Rules == nil {
		c.Rules = rules.Default()
	}
	yc.apply(c.Rules)
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("rules file %s: %w", path, err)
	}
	return nil
}

func (yc *yamlConfig) apply(rs *rules.RuleSet) {
	if yc.MaxHospitalDays != nil {
		rs.MaxHospitalDays = *yc.MaxHospitalDays
	}
	if yc.SurgeryPrefix != nil {
		rs.SurgeryPrefix = *yc.SurgeryPrefix
	}
	if yc.AdditionMarker != nil {
		rs.AdditionMarker = *yc.AdditionMarker
	}
	if yc.GenericLabel != nil {
		rs.GenericLabel = *yc.GenericLabel
	}
	if yc.TargetCodes != nil {
		rs.SetTargets(yc.TargetCodes)
	}
	if yc.ColonoscopyCodes != nil {
		rs.ColonoscopyCodes = codeSet(yc.ColonoscopyCodes)
	}
	if yc.SpecialAdditionCodes != nil {
		rs.SpecialAdditionCodes = codeSet(yc.SpecialAdditionCodes)
	}
	for code, name := range yc.ProcedureNames {
		rs.ProcedureNames[code] = name
	}
}

// ResolveRules loads RulesFile when set, or the built-in rule set otherwise.
func (c *Config) ResolveRules() error {
	if c.RulesFile == "" {
		c.Rules = rules.Default()
		return nil
	}
	c.Rules = nil
	return c.LoadFromFile(c.RulesFile)
}

// OutputSettings parses the formatter settings.
func (c *Config) OutputSettings() (model.OutputSettings, error) {
	s := model.DefaultOutputSettings()
	var err error
	if c.OutputMode != "" {
		if s.OutputMode, err = model.ParseOutputMode(c.OutputMode); err != nil {
			return s, err
		}
	}
	if c.DateFormat != "" {
		if s.DateFormat, err = model.ParseDateFormat(c.DateFormat); err != nil {
			return s, err
		}
	}
	return s, nil
}

// AggregateOptions parses the grouping and de-duplication settings.
func (c *Config) AggregateOptions() (aggregate.Options, error) {
	opts := aggregate.DefaultOptions()
	var err error
	if c.Grouping != "" {
		if opts.Grouping, err = model.ParseGrouping(c.Grouping); err != nil {
			return opts, err
		}
	}
	if c.Dedup != "" {
		if opts.Dedup, err = model.ParseDedupKey(c.Dedup); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// FileEncoding parses the EF file encoding.
func (c *Config) FileEncoding() (efread.Encoding, error) {
	return efread.ParseEncoding(c.Encoding)
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if len(c.Files) == 0 {
		return fmt.Errorf("at least one --file is required")
	}
	for _, f := range c.Files {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("file not accessible: %w", err)
		}
	}
	return c.validateOptions()
}

// ValidateForServe checks the options the HTTP server needs.
func (c *Config) ValidateForServe() error {
	if c.Listen == "" {
		return fmt.Errorf("--listen or TANSHU3_LISTEN is required")
	}
	return c.validateOptions()
}

func (c *Config) validateOptions() error {
	if _, err := c.OutputSettings(); err != nil {
		return err
	}
	if _, err := c.AggregateOptions(); err != nil {
		return err
	}
	if _, err := c.FileEncoding(); err != nil {
		return err
	}
	return nil
}

func codeSet(codes []string) map[string]struct{} {
	m := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		m[code] = struct{}{}
	}
	return m
}
