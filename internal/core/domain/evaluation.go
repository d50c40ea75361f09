package domain

// EvaluationItem is one named component of a course's grade composition.
// A full set of items describes how the final grade is computed and must
// sum to exactly 100 once normalized.
type EvaluationItem struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// WeightSum returns the total of all item percentages.
func WeightSum(items []EvaluationItem) int {
	sum := 0
	for _, it := range items {
		sum += it.Percentage
	}
	return sum
}

// ValidWeightSum reports whether a non-empty item set sums to 100 within
// the ±2 tolerance allowed before normalization.
func ValidWeightSum(items []EvaluationItem) bool {
	if len(items) == 0 {
		return false
	}
	sum := WeightSum(items)
	return sum >= 98 && sum <= 102
}

// NormalizeWeights rebalances item percentages to sum to exactly 100.
//
// A set already at 100 is returned unchanged. An all-zero set is split
// evenly with the floor-division remainder assigned to the first item.
// Any other set is scaled by floor(p/sum*100) and the residual is added
// to the item with the largest scaled value (first occurrence on ties).
// The result is deterministic for identical input.
func NormalizeWeights(items []EvaluationItem) []EvaluationItem {
	if len(items) == 0 {
		return nil
	}

	out := make([]EvaluationItem, len(items))
	copy(out, items)

	sum := WeightSum(out)
	if sum == 100 {
		return out
	}

	if sum == 0 {
		share := 100 / len(out)
		remainder := 100 - share*len(out)
		for i := range out {
			out[i].Percentage = share
		}
		out[0].Percentage += remainder
		return out
	}

	scaledSum := 0
	largest := 0
	for i := range out {
		scaled := out[i].Percentage * 100 / sum
		out[i].Percentage = scaled
		scaledSum += scaled
		if scaled > out[largest].Percentage {
			largest = i
		}
	}

	// Integer flooring can leave the total short of 100; the entire
	// residual goes to the largest scaled item.
	out[largest].Percentage += 100 - scaledSum
	return out
}
