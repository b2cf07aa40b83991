package evaluation

import (
	"context"
	"time"

	"github.com/carecompass/backend/internal/domain/entities"
)

// DefaultK is the cutoff used when the runner is built with k <= 0.
const DefaultK = 3

// Analyzer is the matcher under evaluation.
type Analyzer interface {
	AnalyzeWithOutcome(concern string, selectedTags []string) (*entities.AnalysisResult, entities.AnalysisOutcome, error)
}

// Runner runs evaluation across a set of golden cases.
type Runner struct {
	analyzer Analyzer
	k        int
}

func NewRunner(analyzer Analyzer, k int) *Runner {
	if k <= 0 {
		k = DefaultK
	}
	return &Runner{analyzer: analyzer, k: k}
}

// Run scores every case. A case whose analysis errors counts as a miss on
// every metric; it does not abort the run.
func (r *Runner) Run(ctx context.Context, cases []GoldenCase) (*Summary, error) {
	summary := &Summary{
		K:            r.k,
		TotalCases:   len(cases),
		ByDifficulty: make(map[Difficulty]*DifficultySummary),
		Results:      make([]CaseResult, 0, len(cases)),
	}
	specialtyHits := 0
	hitsByDifficulty := make(map[Difficulty]int)

	for _, gc := range cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		result, outcome, err := r.analyzer.AnalyzeWithOutcome(gc.Concern, gc.SelectedSymptoms)
		res := CaseResult{
			CaseID:     gc.ID,
			Difficulty: gc.Difficulty,
			Latency:    time.Since(start),
		}

		if err != nil {
			res.Err = err.Error()
			summary.Failed++
		} else {
			res.Detected = result.DetectedSymptoms
			res.Specialty = result.RecommendedSpecialty
			res.Outcome = string(outcome)
			res.Recall = RecallAtK(gc.ExpectedSymptoms, result.DetectedSymptoms, r.k)
			res.MRR = MRRAtK(gc.ExpectedSymptoms, result.DetectedSymptoms, r.k)
			res.SpecialtyCorrect = result.RecommendedSpecialty == gc.ExpectedSpecialty
		}

		summary.AvgRecall += res.Recall
		summary.AvgMRR += res.MRR
		summary.AvgLatency += res.Latency

		ds, ok := summary.ByDifficulty[gc.Difficulty]
		if !ok {
			ds = &DifficultySummary{}
			summary.ByDifficulty[gc.Difficulty] = ds
		}
		ds.Count++
		ds.AvgRecall += res.Recall
		ds.AvgMRR += res.MRR

		if res.SpecialtyCorrect {
			specialtyHits++
			hitsByDifficulty[gc.Difficulty]++
		}

		summary.Results = append(summary.Results, res)
	}

	if n := summary.TotalCases; n > 0 {
		summary.AvgRecall /= float64(n)
		summary.AvgMRR /= float64(n)
		summary.AvgLatency /= time.Duration(n)
		summary.SpecialtyAccuracy = Accuracy(specialtyHits, n)
	}
	for d, ds := range summary.ByDifficulty {
		n := float64(ds.Count)
		ds.AvgRecall /= n
		ds.AvgMRR /= n
		ds.SpecialtyAccuracy = Accuracy(hitsByDifficulty[d], ds.Count)
	}

	return summary, nil
}
