package evaluation

import "fmt"

// QualityGate holds the minimum scores a matcher change must keep.
type QualityGate struct {
	MinRecall            float64
	MinMRR               float64
	MinSpecialtyAccuracy float64
	MaxFailed            int
}

// Check returns one message per threshold the summary misses.
func (g QualityGate) Check(s *Summary) []string {
	var violations []string
	if s.AvgRecall < g.MinRecall {
		violations = append(violations, fmt.Sprintf("recall@%d %.3f below %.3f", s.K, s.AvgRecall, g.MinRecall))
	}
	if s.AvgMRR < g.MinMRR {
		violations = append(violations, fmt.Sprintf("mrr@%d %.3f below %.3f", s.K, s.AvgMRR, g.MinMRR))
	}
	if s.SpecialtyAccuracy < g.MinSpecialtyAccuracy {
		violations = append(violations, fmt.Sprintf("specialty accuracy %.3f below %.3f", s.SpecialtyAccuracy, g.MinSpecialtyAccuracy))
	}
	if s.Failed > g.MaxFailed {
		violations = append(violations, fmt.Sprintf("%d cases errored, at most %d allowed", s.Failed, g.MaxFailed))
	}
	return violations
}
