package model

// SentinelDate marks a date that has not been determined yet. It is never a
// real calendar date.
const SentinelDate = "00000000"

// ProcedureDetail is one billed procedure line belonging to an admission.
type ProcedureDetail struct {
	Code           string // receipt computer code, e.g. "150285010"
	Name           string // billed description; only used for the addition marker
	Date           string // service date, yyyymmdd
	SequenceNumber string // action-detail number; groups lines of one session
}

// CaseData is one admission aggregated across every uploaded file.
// IsEligible and Reason are zero until Evaluated is set.
type CaseData struct {
	ID         string
	Admission  string
	Discharge  string
	Procedures []ProcedureDetail

	Evaluated  bool
	IsEligible bool
	Reason     Reason
}

// DischargeKnown reports whether the discharge date is a real date.
func (c *CaseData) DischargeKnown() bool {
	return c.Discharge != SentinelDate && c.Discharge != ""
}

// Clone returns a deep copy so callers never share the procedure slice.
func (c *CaseData) Clone() *CaseData {
	out := *c
	out.Procedures = make([]ProcedureDetail, len(c.Procedures))
	copy(out.Procedures, c.Procedures)
	return &out
}

// Fact is the billing fact extracted from one EF line.
type Fact struct {
	ID        string
	Admission string
	Discharge string
	// Marker is set for "000" action rows. They only seed dates for an id
	// the aggregator has not seen yet.
	Marker    bool
	Procedure *ProcedureDetail
}
