// Package evaluate decides basic fee 3 eligibility for aggregated cases.
package evaluate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gyeh/tanshu3/internal/model"
	"github.com/gyeh/tanshu3/internal/normalize"
	"github.com/gyeh/tanshu3/internal/rules"
)

// caseView is the per-case state shared by the rules. targets is filled in
// by the target-procedure rule and read by every rule after it.
type caseView struct {
	c       *model.CaseData
	targets []model.ProcedureDetail
}

// A check returns the rejecting reason and true when the case fails it.
type check func(rs *rules.RuleSet, v *caseView) (model.Reason, bool)

// pipeline is applied in order; the first failing check decides the case.
var pipeline = []check{
	checkDischarged,
	checkTargetPresent,
	checkStayLength,
	checkSingleTargetType,
	checkColonoscopyAddition,
	checkOtherSurgery,
}

// Evaluator applies the eligibility rules of one RuleSet.
type Evaluator struct {
	rules  *rules.RuleSet
	checks []check
}

// New returns an Evaluator for rs. A nil rs uses rules.Default().
func New(rs *rules.RuleSet) *Evaluator {
	if rs == nil {
		rs = rules.Default()
	}
	return &Evaluator{rules: rs, checks: pipeline}
}

// EvaluateCase runs the rule pipeline on c without modifying it.
// A panic inside a rule is reported as an evaluation error reason.
func (e *Evaluator) EvaluateCase(c *model.CaseData) (reason model.Reason) {
	defer func() {
		if r := recover(); r != nil {
			reason = model.Reason{Code: model.ReasonEvaluationError, Detail: fmt.Sprint(r)}
		}
	}()

	v := &caseView{c: c}
	for _, chk := range e.checks {
		if r, failed := chk(e.rules, v); failed {
			return r
		}
	}
	return model.Reason{Code: model.ReasonEligible, Detail: e.rules.DisplayName(v.targets[0].Code)}
}

// Evaluate returns evaluated copies of cases sorted by id, then admission.
// Input cases are left untouched and one failing case never stops the batch.
func (e *Evaluator) Evaluate(cases []*model.CaseData) []*model.CaseData {
	out := make([]*model.CaseData, 0, len(cases))
	for _, c := range cases {
		if c == nil {
			continue
		}
		ec := c.Clone()
		ec.Reason = e.EvaluateCase(ec)
		ec.IsEligible = ec.Reason.Code == model.ReasonEligible
		ec.Evaluated = true
		out = append(out, ec)
	}
	SortCases(out)
	return out
}

// SortCases orders cases by id then admission, comparing both as strings.
func SortCases(cases []*model.CaseData) {
	sort.SliceStable(cases, func(i, j int) bool {
		if cases[i].ID != cases[j].ID {
			return cases[i].ID < cases[j].ID
		}
		return cases[i].Admission < cases[j].Admission
	})
}

func fail(code model.ReasonCode) (model.Reason, bool) {
	return model.Reason{Code: code}, true
}

func pass() (model.Reason, bool) {
	return model.Reason{}, false
}

func checkDischarged(_ *rules.RuleSet, v *caseView) (model.Reason, bool) {
	if !v.c.DischargeKnown() {
		return fail(model.ReasonUndischarged)
	}
	return pass()
}

func checkTargetPresent(rs *rules.RuleSet, v *caseView) (model.Reason, bool) {
	for _, p := range v.c.Procedures {
		if rs.IsTarget(p.Code) {
			v.targets = append(v.targets, p)
		}
	}
	if len(v.targets) == 0 {
		return fail(model.ReasonNoTargetProcedure)
	}
	return pass()
}

func checkStayLength(rs *rules.RuleSet, v *caseView) (model.Reason, bool) {
	days, ok := normalize.StayDays(v.c.Admission, v.c.Discharge)
	if !ok || days > rs.MaxHospitalDays {
		return model.Reason{
			Code:   model.ReasonHospitalDaysExceeded,
			Detail: fmt.Sprintf("入院期間が%d日を超える", rs.MaxHospitalDays),
		}, true
	}
	return pass()
}

// Repeating the same target code is allowed; two different codes are not.
func checkSingleTargetType(_ *rules.RuleSet, v *caseView) (model.Reason, bool) {
	first := v.targets[0].Code
	for _, p := range v.targets[1:] {
		if p.Code != first {
			return fail(model.ReasonMultipleTargetProcedures)
		}
	}
	return pass()
}

// Looks at every procedure, not just the targets: the additions are never
// targets themselves.
func checkColonoscopyAddition(rs *rules.RuleSet, v *caseView) (model.Reason, bool) {
	var colonoscopy, addition bool
	for _, p := range v.c.Procedures {
		colonoscopy = colonoscopy || rs.IsColonoscopy(p.Code)
		addition = addition || rs.IsSpecialAddition(p.Code)
	}
	if colonoscopy && addition {
		return fail(model.ReasonSpecialAddition)
	}
	return pass()
}

// An other surgery disqualifies when it was billed on a different day than
// a target, or in the same session (same day and sequence number). Same day
// with a different sequence number is allowed.
func checkOtherSurgery(rs *rules.RuleSet, v *caseView) (model.Reason, bool) {
	others := otherSurgeries(rs, v.c.Procedures)
	for _, t := range v.targets {
		for _, o := range others {
			if t.Date != o.Date || t.SequenceNumber == o.SequenceNumber {
				return fail(model.ReasonOtherSurgery)
			}
		}
	}
	return pass()
}

func otherSurgeries(rs *rules.RuleSet, procs []model.ProcedureDetail) []model.ProcedureDetail {
	var out []model.ProcedureDetail
	for _, p := range procs {
		if rs.IsTarget(p.Code) {
			continue
		}
		if !strings.HasPrefix(p.Code, rs.SurgeryPrefix) {
			continue
		}
		if strings.Contains(p.Name, rs.AdditionMarker) {
			continue
		}
		out = append(out, p)
	}
	return out
}
