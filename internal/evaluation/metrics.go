package evaluation

// topK returns the first k items and the set of relevant ones, or nil when
// there is nothing to score.
func topK(relevant, retrieved []string, k int) ([]string, map[string]struct{}) {
	if len(relevant) == 0 {
		return nil, nil
	}
	set := make(map[string]struct{}, len(relevant))
	for _, r := range relevant {
		set[r] = struct{}{}
	}
	if k >= 0 && k < len(retrieved) {
		retrieved = retrieved[:k]
	}
	return retrieved, set
}

// RecallAtK is the fraction of expected symptoms found among the first k detected.
// An empty expectation scores 1 when nothing was detected and 0 otherwise, so
// generic-result cases are still graded.
func RecallAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 {
		if len(retrieved) == 0 {
			return 1.0
		}
		return 0.0
	}

	top, set := topK(relevant, retrieved, k)
	found := 0
	for _, r := range top {
		if _, ok := set[r]; ok {
			found++
		}
	}
	return float64(found) / float64(len(relevant))
}

// MRRAtK is the reciprocal rank of the first expected symptom within the first k
// detected. Empty expectations follow the same convention as RecallAtK.
func MRRAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 {
		if len(retrieved) == 0 {
			return 1.0
		}
		return 0.0
	}

	top, set := topK(relevant, retrieved, k)
	for i, r := range top {
		if _, ok := set[r]; ok {
			return 1.0 / float64(i+1)
		}
	}
	return 0.0
}

// Accuracy is correct/total, 0 for an empty set.
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(correct) / float64(total)
}
