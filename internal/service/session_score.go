package service

// RecomputeSessionScore decides a session's aggregate state from the current
// answer scores. It is a pure function invoked after every answer write,
// including resubmissions on already-complete sessions, so the stored mean is
// always recomputed from the rows rather than updated incrementally.
//
// The session completes only on strict equality between the question count and
// the answer count; a session with zero questions never completes here.
func RecomputeSessionScore(totalQuestions int, scores []float64) (*float64, bool) {
	if totalQuestions == 0 || len(scores) != totalQuestions {
		return nil, false
	}

	sum := 0.0
	for _, score := range scores {
		sum += score
	}
	mean := sum / float64(len(scores))
	return &mean, true
}
