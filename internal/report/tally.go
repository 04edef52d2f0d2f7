package report

import "github.com/gyeh/tanshu3/internal/model"

// Tally fills the case counters of s from evaluated cases.
func Tally(s *model.Summary, cases []*model.CaseData) {
	s.Cases = len(cases)
	s.Eligible = 0
	s.ByReason = make(map[string]int)
	for _, c := range cases {
		if c.IsEligible {
			s.Eligible++
		}
		s.ByReason[c.Reason.Code.String()]++
	}
}
