package fastrtext

import (
	"github.com/bananemure/fastrtext/core"
)

// HammingLoss measures the disagreement between true and predicted label
// sets. For every document the symmetric difference of the two sets is
// counted against the label universe observed across all documents; the
// per-document fractions are averaged.
//
// 0 means every label set was predicted exactly; 1 means complete
// disagreement.
func HammingLoss(truth, predictions [][]string) (float64, error) {
	if len(truth) == 0 {
		return 0, core.ErrEmptyInput
	}
	if len(truth) != len(predictions) {
		return 0, core.ErrLengthMismatch
	}

	universe := make(map[string]struct{})
	for i := range truth {
		for _, label := range truth[i] {
			universe[label] = struct{}{}
		}
		for _, label := range predictions[i] {
			universe[label] = struct{}{}
		}
	}
	if len(universe) == 0 {
		return 0, core.ErrEmptyTags
	}

	var total float64
	for i := range truth {
		trueSet := labelSet(truth[i])
		predSet := labelSet(predictions[i])

		mismatches := 0
		for label := range universe {
			_, inTruth := trueSet[label]
			_, inPred := predSet[label]
			if inTruth != inPred {
				mismatches++
			}
		}
		total += float64(mismatches) / float64(len(universe))
	}
	return total / float64(len(truth)), nil
}

func labelSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		set[label] = struct{}{}
	}
	return set
}
