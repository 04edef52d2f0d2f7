package report

import (
	"strings"

	"github.com/gyeh/tanshu3/internal/model"
	"github.com/gyeh/tanshu3/internal/normalize"
)

const (
	// DefaultHeader is the column header of the tab-separated report.
	DefaultHeader = "データ識別番号\t入院年月日\t退院年月日\t短手３対象症例\t理由"
	// NoMatches is the whole report when no case survives the filter.
	NoMatches = "該当する症例はありません。"
)

// Filter returns the cases selected by mode, preserving order.
func Filter(cases []*model.CaseData, mode model.OutputMode) []*model.CaseData {
	if mode != model.OutputEligibleOnly {
		return cases
	}
	out := make([]*model.CaseData, 0, len(cases))
	for _, c := range cases {
		if c.IsEligible {
			out = append(out, c)
		}
	}
	return out
}

// Format renders evaluated cases as a tab-separated report. An empty header
// selects DefaultHeader.
func Format(cases []*model.CaseData, settings model.OutputSettings, header string) string {
	selected := Filter(cases, settings.OutputMode)
	if len(selected) == 0 {
		return NoMatches
	}
	if header == "" {
		header = DefaultHeader
	}

	var b strings.Builder
	b.WriteString(header)
	for _, c := range selected {
		b.WriteByte('\n')
		b.WriteString(strings.Join(Row(c, settings.DateFormat), "\t"))
	}
	return b.String()
}

// Row returns the report columns for one case.
func Row(c *model.CaseData, f model.DateFormat) []string {
	return []string{
		c.ID,
		normalize.FormatDate(c.Admission, f),
		normalize.FormatDate(c.Discharge, f),
		yesNo(c.IsEligible),
		c.Reason.Text(),
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
