package report

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/tanshu3/internal/model"
)

// ResultRow is the Parquet schema of an evaluated case.
type ResultRow struct {
	ID             string `parquet:"id"`
	Admission      string `parquet:"admission"`
	Discharge      string `parquet:"discharge"`
	Eligible       bool   `parquet:"eligible"`
	ReasonCode     string `parquet:"reason_code"`
	Reason         string `parquet:"reason"`
	ProcedureCount int32  `parquet:"procedure_count"`
}

// ResultRows converts the cases selected by settings into Parquet rows.
func ResultRows(cases []*model.CaseData, settings model.OutputSettings) []ResultRow {
	selected := Filter(cases, settings.OutputMode)
	rows := make([]ResultRow, 0, len(selected))
	for _, c := range selected {
		cols := Row(c, settings.DateFormat)
		rows = append(rows, ResultRow{
			ID:             cols[0],
			Admission:      cols[1],
			Discharge:      cols[2],
			Eligible:       c.IsEligible,
			ReasonCode:     c.Reason.Code.String(),
			Reason:         cols[4],
			ProcedureCount: int32(len(c.Procedures)),
		})
	}
	return rows
}

// WriteParquet writes the selected cases to w as a Parquet file.
func WriteParquet(w io.Writer, cases []*model.CaseData, settings model.OutputSettings) (int, error) {
	rows := ResultRows(cases, settings)
	pw := parquet.NewGenericWriter[ResultRow](w)
	n, err := pw.Write(rows)
	if err != nil {
		pw.Close()
		return n, fmt.Errorf("write parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return n, fmt.Errorf("close parquet writer: %w", err)
	}
	return n, nil
}

// WriteParquetFile creates path and writes the selected cases into it.
func WriteParquetFile(path string, cases []*model.CaseData, settings model.OutputSettings) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create parquet output: %w", err)
	}
	n, err := WriteParquet(f, cases, settings)
	if err != nil {
		f.Close()
		return n, err
	}
	return n, f.Close()
}
