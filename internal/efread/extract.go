package efread

import (
	"strings"

	"github.com/gyeh/tanshu3/internal/model"
	"github.com/gyeh/tanshu3/internal/normalize"
)

// Zero-based EF column positions.
const (
	colID           = 1
	colDischarge    = 2
	colAdmission    = 3
	colDetailNumber = 6
	colCode         = 8
	colName         = 10
	colServiceDate  = 24

	minColumns = colAdmission + 1

	// markerDetailNumber tags the action row that precedes detail lines.
	markerDetailNumber = "000"
)

// ExtractLine turns one EF data line into a billing fact.
// ok is false when the line is not a billing fact at all: fewer than four
// columns or an empty identifier. Marker rows come back with Marker set and
// no procedure; only their dates are meaningful.
func ExtractLine(line string) (model.Fact, bool) {
	cols := splitColumns(strings.TrimRight(line, "\r"))
	if len(cols) < minColumns {
		return model.Fact{}, false
	}
	id := strings.TrimSpace(cols[colID])
	if id == "" {
		return model.Fact{}, false
	}

	f := model.Fact{
		ID:        id,
		Discharge: dateField(cols, colDischarge),
		Admission: dateField(cols, colAdmission),
	}

	detail := field(cols, colDetailNumber)
	if detail == markerDetailNumber {
		f.Marker = true
		return f, true
	}

	if code := normalize.NormalizeCode(field(cols, colCode)); code != "" {
		f.Procedure = &model.ProcedureDetail{
			Code:           code,
			Name:           normalize.NormalizeName(field(cols, colName)),
			Date:           normalize.NormalizeCode(field(cols, colServiceDate)),
			SequenceNumber: detail,
		}
	}
	return f, true
}

// splitColumns splits on tabs. Some exports prefix the payload with
// "<source>|"; the prefix is dropped and the remainder re-split.
func splitColumns(line string) []string {
	cols := strings.Split(line, "\t")
	if i := strings.IndexByte(cols[0], '|'); i >= 0 {
		cols = strings.Split(line[i+1:], "\t")
	}
	return cols
}

func field(cols []string, idx int) string {
	if idx >= len(cols) {
		return ""
	}
	return strings.TrimSpace(cols[idx])
}

// dateField reads a date column; a blank value is treated as undetermined.
func dateField(cols []string, idx int) string {
	s := normalize.NormalizeCode(field(cols, idx))
	if s == "" {
		return model.SentinelDate
	}
	return s
}
