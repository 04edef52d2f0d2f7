package aggregate

import (
	"testing"

	"github.com/gyeh/tanshu3/internal/model"
)

func fact(id, adm, dis string) model.Fact {
	return model.Fact{ID: id, Admission: adm, Discharge: dis}
}

func procFact(id, adm, dis, code, date, seq string) model.Fact {
	f := fact(id, adm, dis)
	f.Procedure = &model.ProcedureDetail{Code: code, Date: date, SequenceNumber: seq}
	return f
}

func marker(id, adm, dis string) model.Fact {
	f := fact(id, adm, dis)
	f.Marker = true
	return f
}

func TestResolveDischarge(t *testing.T) {
	tests := []struct {
		cur, in, want string
	}{
		{model.SentinelDate, "20240110", "20240110"},
		{"20240110", model.SentinelDate, "20240110"},
		{"20240110", "20240105", "20240110"},
		{"20240105", "20240110", "20240110"},
		{"20240110", "20240110", "20240110"},
		{model.SentinelDate, model.SentinelDate, model.SentinelDate},
	}
	for _, tt := range tests {
		if got := ResolveDischarge(tt.cur, tt.in); got != tt.want {
			t.Errorf("ResolveDischarge(%s, %s) = %s, want %s", tt.cur, tt.in, got, tt.want)
		}
	}
}

func TestMerge_DischargeNeverRegresses(t *testing.T) {
	undetermined := foldFile([]model.Fact{fact("A", "20240101", model.SentinelDate)}, DefaultOptions())
	confirmed := foldFile([]model.Fact{fact("A", "20240101", "20240110")}, DefaultOptions())

	for name, m := range map[string]*Aggregator{
		"forward": Merge(undetermined, confirmed),
		"reverse": Merge(confirmed, undetermined),
	} {
		cases := m.Cases()
		if len(cases) != 1 {
			t.Fatalf("%s: expected 1 case, got %d", name, len(cases))
		}
		if cases[0].Discharge != "20240110" {
			t.Errorf("%s: discharge = %s", name, cases[0].Discharge)
		}
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	left := foldFile([]model.Fact{procFact("A", "20240101", model.SentinelDate, "150274010", "20240101", "001")}, DefaultOptions())
	right := foldFile([]model.Fact{procFact("A", "20240101", "20240103", "150285010", "20240102", "001")}, DefaultOptions())

	merged := Merge(left, right)

	lc := left.Cases()[0]
	if lc.Discharge != model.SentinelDate || len(lc.Procedures) != 1 {
		t.Errorf("left was mutated: %+v", lc)
	}
	mc := merged.Cases()[0]
	if mc.Discharge != "20240103" || len(mc.Procedures) != 2 {
		t.Errorf("unexpected merge result: %+v", mc)
	}
}

func TestAdd_AdmissionFirstSeenWins(t *testing.T) {
	a := foldFile([]model.Fact{
		fact("A", "20240101", model.SentinelDate),
		fact("A", "20240102", "20240103"),
	}, DefaultOptions())
	c := a.Cases()[0]
	if c.Admission != "20240101" {
		t.Errorf("admission = %s", c.Admission)
	}
	if c.Discharge != "20240103" {
		t.Errorf("discharge = %s", c.Discharge)
	}
}

func TestAdd_MarkerSeedsOnlyNewCases(t *testing.T) {
	a := foldFile([]model.Fact{
		marker("A", "20240101", "20240104"),
		procFact("A", "20240101", "20240104", "150274010", "20240101", "001"),
		marker("A", "20240101", "20240120"),
	}, DefaultOptions())
	c := a.Cases()[0]
	if c.Discharge != "20240104" {
		t.Errorf("marker on known case changed discharge: %s", c.Discharge)
	}
	if len(c.Procedures) != 1 {
		t.Errorf("expected 1 procedure, got %d", len(c.Procedures))
	}
}

func TestAdd_MarkerOnlyCaseKeepsDates(t *testing.T) {
	a := foldFile([]model.Fact{marker("B", "20240201", "20240203")}, DefaultOptions())
	cases := a.Cases()
	if len(cases) != 1 || cases[0].Admission != "20240201" || cases[0].Discharge != "20240203" {
		t.Fatalf("unexpected cases: %+v", cases)
	}
}

func TestDedup_Tuple(t *testing.T) {
	a := foldFile([]model.Fact{
		procFact("A", "20240101", "20240103", "150274010", "20240101", "001"),
		procFact("A", "20240101", "20240103", "150274010", "20240101", "001"),
		procFact("A", "20240101", "20240103", "150274010", "20240102", "001"),
	}, DefaultOptions())
	if n := len(a.Cases()[0].Procedures); n != 2 {
		t.Errorf("expected 2 distinct tuples, got %d", n)
	}
}

func TestDedup_CodeFirstSeenWins(t *testing.T) {
	opts := Options{Grouping: model.GroupByID, Dedup: model.DedupCode}
	left := foldFile([]model.Fact{procFact("A", "20240101", "20240103", "150274010", "20240101", "001")}, opts)
	right := foldFile([]model.Fact{procFact("A", "20240101", "20240103", "150274010", "20240102", "002")}, opts)
	procs := Merge(left, right).Cases()[0].Procedures
	if len(procs) != 1 {
		t.Fatalf("expected 1 procedure, got %d", len(procs))
	}
	if procs[0].Date != "20240101" || procs[0].SequenceNumber != "001" {
		t.Errorf("earliest detail should win: %+v", procs[0])
	}
}

func TestGrouping_IDAdmission(t *testing.T) {
	facts := []model.Fact{
		fact("A", "20240101", "20240103"),
		fact("A", "20240301", "20240302"),
	}
	if n := foldFile(facts, DefaultOptions()).Len(); n != 1 {
		t.Errorf("id grouping: expected 1 case, got %d", n)
	}
	byAdm := foldFile(facts, Options{Grouping: model.GroupByIDAdmission, Dedup: model.DedupTuple})
	if n := byAdm.Len(); n != 2 {
		t.Fatalf("id+admission grouping: expected 2 cases, got %d", n)
	}
	if byAdm.Cases()[1].Discharge != "20240302" {
		t.Errorf("second admission discharge = %s", byAdm.Cases()[1].Discharge)
	}
}

func TestMergeAll_UploadOrder(t *testing.T) {
	jan := foldFile([]model.Fact{fact("B", "20240101", model.SentinelDate), fact("A", "20240101", "20240102")}, DefaultOptions())
	feb := foldFile([]model.Fact{fact("B", "20240101", "20240104"), fact("C", "20240105", "20240105")}, DefaultOptions())
	cases := MergeAll(DefaultOptions(), jan, feb).Cases()
	if len(cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(cases))
	}
	if cases[0].ID != "B" || cases[1].ID != "A" || cases[2].ID != "C" {
		t.Errorf("unexpected order: %s %s %s", cases[0].ID, cases[1].ID, cases[2].ID)
	}
	if cases[0].Discharge != "20240104" {
		t.Errorf("B discharge = %s", cases[0].Discharge)
	}
}

func TestMergeAll_Empty(t *testing.T) {
	if n := MergeAll(DefaultOptions()).Len(); n != 0 {
		t.Errorf("expected empty aggregate, got %d cases", n)
	}
}

func TestCases_ReturnsCopies(t *testing.T) {
	a := foldFile([]model.Fact{procFact("A", "20240101", "20240103", "150274010", "20240101", "001")}, DefaultOptions())
	c := a.Cases()[0]
	c.Discharge = "20991231"
	c.Procedures[0].Code = "x"
	again := a.Cases()[0]
	if again.Discharge != "20240103" || again.Procedures[0].Code != "150274010" {
		t.Errorf("Cases leaked internal state: %+v", again)
	}
}

func foldFile(facts []model.Fact, opts Options) *Aggregator {
	a := New(opts)
	for _, f := range facts {
		a.Add(f)
	}
	return a
}
