// Package aggregate folds billing facts into one CaseData per admission.
//
// Facts from a single file are folded in line order; folded files are then
// merged left to right in upload order. A confirmed discharge date always
// beats an undetermined one, a later real date beats an earlier one, and
// nothing ever moves a discharge backwards.
package aggregate

import (
	"github.com/gyeh/tanshu3/internal/model"
)

// Options controls the aggregation key and procedure de-duplication.
type Options struct {
	Grouping model.Grouping
	Dedup    model.DedupKey
}

// DefaultOptions groups by identifier and keeps distinct (code, date,
// sequence number) tuples.
func DefaultOptions() Options {
	return Options{Grouping: model.GroupByID, Dedup: model.DedupTuple}
}

// Aggregator accumulates cases. The zero value is not usable; call New.
type Aggregator struct {
	opts  Options
	cases map[string]*model.CaseData
	order []string
	procs map[string]map[string]struct{} // case key -> procedure keys
}

// New returns an empty Aggregator.
func New(opts Options) *Aggregator {
	if opts.Grouping == "" {
		opts.Grouping = model.GroupByID
	}
	if opts.Dedup == "" {
		opts.Dedup = model.DedupTuple
	}
	return &Aggregator{
		opts:  opts,
		cases: make(map[string]*model.CaseData),
		procs: make(map[string]map[string]struct{}),
	}
}

// Len returns the number of cases accumulated so far.
func (a *Aggregator) Len() int {
	return len(a.order)
}

// Add folds one fact into the aggregate.
func (a *Aggregator) Add(f model.Fact) {
	k := a.caseKey(f.ID, f.Admission)
	c, ok := a.cases[k]
	if !ok {
		c = &model.CaseData{ID: f.ID, Admission: f.Admission, Discharge: f.Discharge}
		a.insert(k, c)
	} else {
		if f.Marker {
			return
		}
		c.Discharge = ResolveDischarge(c.Discharge, f.Discharge)
	}
	if f.Procedure != nil && !f.Marker {
		a.addProcedure(k, c, *f.Procedure)
	}
}

// Cases returns deep copies of the accumulated cases in first-seen order.
func (a *Aggregator) Cases() []*model.CaseData {
	out := make([]*model.CaseData, 0, len(a.order))
	for _, k := range a.order {
		out = append(out, a.cases[k].Clone())
	}
	return out
}

// ResolveDischarge applies the forward-only discharge rule: incoming wins
// only when it is a real date and current is undetermined or earlier.
func ResolveDischarge(current, incoming string) string {
	if incoming == model.SentinelDate || incoming == "" {
		return current
	}
	if current == model.SentinelDate || current == "" || incoming > current {
		return incoming
	}
	return current
}

// Merge returns a new aggregate holding left followed by right. Neither
// input is modified. Admission dates and procedure details already in left
// win over right.
func Merge(left, right *Aggregator) *Aggregator {
	out := left.clone()
	for _, k := range right.order {
		rc := right.cases[k]
		c, ok := out.cases[k]
		if !ok {
			c = &model.CaseData{ID: rc.ID, Admission: rc.Admission, Discharge: rc.Discharge}
			out.insert(k, c)
		} else {
			c.Discharge = ResolveDischarge(c.Discharge, rc.Discharge)
		}
		for _, p := range rc.Procedures {
			out.addProcedure(k, c, p)
		}
	}
	return out
}

// MergeAll merges per-file aggregates in upload order. The result uses the
// options of opts, even when parts is empty.
func MergeAll(opts Options, parts ...*Aggregator) *Aggregator {
	merged := New(opts)
	for _, a := range parts {
		merged = Merge(merged, a)
	}
	return merged
}

func (a *Aggregator) caseKey(id, admission string) string {
	if a.opts.Grouping == model.GroupByIDAdmission {
		return id + "\x00" + admission
	}
	return id
}

func (a *Aggregator) procKey(p model.ProcedureDetail) string {
	if a.opts.Dedup == model.DedupCode {
		return p.Code
	}
	return p.Code + "\x00" + p.Date + "\x00" + p.SequenceNumber
}

func (a *Aggregator) insert(k string, c *model.CaseData) {
	a.cases[k] = c
	a.order = append(a.order, k)
	a.procs[k] = make(map[string]struct{})
}

func (a *Aggregator) addProcedure(k string, c *model.CaseData, p model.ProcedureDetail) {
	pk := a.procKey(p)
	if _, dup := a.procs[k][pk]; dup {
		return
	}
	a.procs[k][pk] = struct{}{}
	c.Procedures = append(c.Procedures, p)
}

func (a *Aggregator) clone() *Aggregator {
	out := New(a.opts)
	for _, k := range a.order {
		out.insert(k, a.cases[k].Clone())
		for pk := range a.procs[k] {
			out.procs[k][pk] = struct{}{}
		}
	}
	return out
}
