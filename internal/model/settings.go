package model

import "fmt"

// OutputMode selects which evaluated cases reach the report.
type OutputMode string

const (
	OutputEligibleOnly OutputMode = "eligibleOnly"
	OutputAllCases     OutputMode = "allCases"
)

// DateFormat selects how admission/discharge dates are rendered.
type DateFormat string

const (
	DateCompact DateFormat = "yyyymmdd"
	DateSlashed DateFormat = "yyyy/mm/dd"
)

// OutputSettings is the only configuration the formatter consumes.
type OutputSettings struct {
	OutputMode OutputMode
	DateFormat DateFormat
}

// DefaultOutputSettings lists eligible cases with compact dates.
func DefaultOutputSettings() OutputSettings {
	return OutputSettings{OutputMode: OutputEligibleOnly, DateFormat: DateCompact}
}

// ParseOutputMode accepts "eligibleOnly" or "allCases".
func ParseOutputMode(s string) (OutputMode, error) {
	switch OutputMode(s) {
	case OutputEligibleOnly, OutputAllCases:
		return OutputMode(s), nil
	}
	return "", fmt.Errorf("unknown output mode %q (want %s or %s)", s, OutputEligibleOnly, OutputAllCases)
}

// ParseDateFormat accepts "yyyymmdd" or "yyyy/mm/dd".
func ParseDateFormat(s string) (DateFormat, error) {
	switch DateFormat(s) {
	case DateCompact, DateSlashed:
		return DateFormat(s), nil
	}
	return "", fmt.Errorf("unknown date format %q (want %s or %s)", s, DateCompact, DateSlashed)
}

// Grouping selects the aggregation key.
type Grouping string

const (
	GroupByID          Grouping = "id"
	GroupByIDAdmission Grouping = "id+admission"
)

// DedupKey selects which procedure lines count as duplicates.
type DedupKey string

const (
	// DedupTuple keeps every distinct (code, date, sequence number).
	DedupTuple DedupKey = "tuple"
	// DedupCode keeps only the first line seen for each code.
	DedupCode DedupKey = "code"
)

func ParseGrouping(s string) (Grouping, error) {
	switch Grouping(s) {
	case GroupByID, GroupByIDAdmission:
		return Grouping(s), nil
	}
	return "", fmt.Errorf("unknown grouping %q (want %s or %s)", s, GroupByID, GroupByIDAdmission)
}

func ParseDedupKey(s string) (DedupKey, error) {
	switch DedupKey(s) {
	case DedupTuple, DedupCode:
		return DedupKey(s), nil
	}
	return "", fmt.Errorf("unknown dedup key %q (want %s or %s)", s, DedupTuple, DedupCode)
}
