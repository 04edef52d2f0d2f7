// Package rules holds the reference data the eligibility evaluator runs
// against. Nothing here is consulted implicitly: callers build a RuleSet
// (usually from Default plus an optional YAML overlay) and pass it in.
package rules

import (
	"fmt"
	"sort"
)

// Procedure pairs a receipt computer code with its display name.
type Procedure struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// RuleSet parameterizes the basic fee 3 eligibility rules.
type RuleSet struct {
	MaxHospitalDays      int
	SurgeryPrefix        string // codes with this prefix are facility surgeries
	AdditionMarker       string // name substring of addition line items
	GenericLabel         string // eligible reason when a target has no display name
	TargetCodes          map[string]struct{}
	ColonoscopyCodes     map[string]struct{}
	SpecialAdditionCodes map[string]struct{}
	ProcedureNames       map[string]string
}

// Default returns a fresh copy of the built-in rule set. Callers may mutate
// the result freely.
func Default() *RuleSet {
	rs := &RuleSet{
		MaxHospitalDays:      DefaultMaxHospitalDays,
		SurgeryPrefix:        DefaultSurgeryPrefix,
		AdditionMarker:       DefaultAdditionMarker,
		GenericLabel:         DefaultGenericLabel,
		TargetCodes:          make(map[string]struct{}, len(defaultTargets)),
		ColonoscopyCodes:     toSet(defaultColonoscopyCodes),
		SpecialAdditionCodes: toSet(defaultSpecialAdditionCodes),
		ProcedureNames:       make(map[string]string, len(defaultTargets)),
	}
	rs.SetTargets(defaultTargets)
	return rs
}

// SetTargets replaces the target code set. Entries with a name also update
// the display-name table.
func (rs *RuleSet) SetTargets(targets []Procedure) {
	rs.TargetCodes = make(map[string]struct{}, len(targets))
	if rs.ProcedureNames == nil {
		rs.ProcedureNames = make(map[string]string, len(targets))
	}
	for _, p := range targets {
		rs.TargetCodes[p.Code] = struct{}{}
		if p.Name != "" {
			rs.ProcedureNames[p.Code] = p.Name
		}
	}
}

// IsTarget reports whether code can trigger basic fee 3 eligibility.
func (rs *RuleSet) IsTarget(code string) bool {
	_, ok := rs.TargetCodes[code]
	return ok
}

// IsColonoscopy reports whether code is one of the colonoscopic polypectomy codes.
func (rs *RuleSet) IsColonoscopy(code string) bool {
	_, ok := rs.ColonoscopyCodes[code]
	return ok
}

// IsSpecialAddition reports whether code is an addition that disqualifies a colonoscopy.
func (rs *RuleSet) IsSpecialAddition(code string) bool {
	_, ok := rs.SpecialAdditionCodes[code]
	return ok
}

// DisplayName returns the report name for a target code, or GenericLabel.
func (rs *RuleSet) DisplayName(code string) string {
	if name, ok := rs.ProcedureNames[code]; ok && name != "" {
		return name
	}
	return rs.GenericLabel
}

// Targets returns the target codes sorted, paired with their display names.
func (rs *RuleSet) Targets() []Procedure {
	out := make([]Procedure, 0, len(rs.TargetCodes))
	for code := range rs.TargetCodes {
		out = append(out, Procedure{Code: code, Name: rs.ProcedureNames[code]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Validate checks that the rule set can drive an evaluation.
func (rs *RuleSet) Validate() error {
	if rs.MaxHospitalDays < 1 {
		return fmt.Errorf("max_hospital_days must be at least 1, got %d", rs.MaxHospitalDays)
	}
	if len(rs.TargetCodes) == 0 {
		return fmt.Errorf("target_codes must not be empty")
	}
	if rs.SurgeryPrefix == "" {
		return fmt.Errorf("surgery_prefix must not be empty")
	}
	if rs.AdditionMarker == "" {
		return fmt.Errorf("addition_marker must not be empty")
	}
	for code := range rs.ColonoscopyCodes {
		if !rs.IsTarget(code) {
			return fmt.Errorf("colonoscopy code %s is not a target code", code)
		}
	}
	return nil
}

// SortedCodes returns the members of a code set in ascending order.
func SortedCodes(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func toSet(codes []string) map[string]struct{} {
	m := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		m[c] = struct{}{}
	}
	return m
}
