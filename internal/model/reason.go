package model

// ReasonCode tags the outcome of the eligibility pipeline. Every rule that
// can reject a case has exactly one code.
type ReasonCode int

const (
	ReasonEligible ReasonCode = iota
	ReasonUndischarged
	ReasonNoTargetProcedure
	ReasonHospitalDaysExceeded
	ReasonMultipleTargetProcedures
	ReasonSpecialAddition
	ReasonOtherSurgery
	ReasonEvaluationError
)

// AllReasonCodes lists every reason code in rule order.
var AllReasonCodes = []ReasonCode{
	ReasonEligible,
	ReasonUndischarged,
	ReasonNoTargetProcedure,
	ReasonHospitalDaysExceeded,
	ReasonMultipleTargetProcedures,
	ReasonSpecialAddition,
	ReasonOtherSurgery,
	ReasonEvaluationError,
}

var reasonNames = map[ReasonCode]string{
	ReasonEligible:                 "ELIGIBLE",
	ReasonUndischarged:             "UNDISCHARGED",
	ReasonNoTargetProcedure:        "NO_TARGET_PROCEDURE",
	ReasonHospitalDaysExceeded:     "HOSPITAL_DAYS_EXCEEDED",
	ReasonMultipleTargetProcedures: "MULTIPLE_TARGET_PROCEDURES",
	ReasonSpecialAddition:          "SPECIAL_ADDITION",
	ReasonOtherSurgery:             "OTHER_SURGERY",
	ReasonEvaluationError:          "EVALUATION_ERROR",
}

// Report text for each rejecting rule.
var reasonTexts = map[ReasonCode]string{
	ReasonUndischarged:             "退院日未確定",
	ReasonNoTargetProcedure:        "対象手術等なし",
	ReasonHospitalDaysExceeded:     "入院期間が5日を超える",
	ReasonMultipleTargetProcedures: "複数の対象手術等あり",
	ReasonSpecialAddition:          "内視鏡的大腸ポリープ・粘膜切除術に特定の加算あり",
	ReasonOtherSurgery:             "対象手術等以外の手術あり",
}

func (c ReasonCode) String() string {
	if s, ok := reasonNames[c]; ok {
		return s
	}
	return "UNKNOWN"
}

// Reason is the evaluated outcome of one case. Detail carries the display
// name for eligible cases, the message for evaluation errors, and an
// optional text override for the rejecting rules.
type Reason struct {
	Code   ReasonCode
	Detail string
}

// Text renders the reason as it appears in the report.
func (r Reason) Text() string {
	switch r.Code {
	case ReasonEligible:
		return r.Detail
	case ReasonEvaluationError:
		return "evaluation error: " + r.Detail
	}
	if r.Detail != "" {
		return r.Detail
	}
	return reasonTexts[r.Code]
}
