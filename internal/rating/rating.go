// Package rating holds the pure scale and averaging math shared by the review
// service and the aggregation code. UI sliders produce integers on a 1-10 scale;
// persisted overall ratings live on a 0.5-5.0 scale with one decimal place.
package rating

import (
	"math"
)

const (
	SliderMin = 1
	SliderMax = 10

	// DefaultWeight applies when an attribute has no explicit weight.
	DefaultWeight = 1.0

	// DefaultSliderValue is what the review form pre-selects per attribute.
	DefaultSliderValue = 8
)

// ClampSlider forces a raw slider value into the valid 1-10 range.
func ClampSlider(v int) int {
	if v < SliderMin {
		return SliderMin
	}
	if v > SliderMax {
		return SliderMax
	}
	return v
}

// Round1 rounds half-up to one decimal place.
func Round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// ComputeOverallRating derives a review's single overall rating from its
// per-attribute slider values. Each rating is clamped to [1,10], weighted by the
// attribute's weight, averaged, then halved onto the storage scale and rounded
// to one decimal. A missing or negative weight falls back to 1.0; a weight of
// zero excludes the attribute from the average. An empty ratings map, or one
// whose weights are all zero, yields 0.
func ComputeOverallRating(ratings map[uint]int, weights map[uint]float64) float64 {
	if len(ratings) == 0 {
		return 0
	}

	var weightedSum, weightSum float64
	for attributeID, value := range ratings {
		weight := DefaultWeight
		if w, ok := weights[attributeID]; ok && w >= 0 {
			// Zero is a real weight: the attribute drops out of the average.
			weight = w
		}
		weightedSum += float64(ClampSlider(value)) * weight
		weightSum += weight
	}
	if weightSum == 0 {
		return 0
	}

	weightedAvg10 := weightedSum / weightSum
	return Round1(weightedAvg10 / 2)
}

// ToDisplayScale maps a stored 0.5-5.0 rating back onto the 1-10 slider scale.
func ToDisplayScale(stored float64) float64 {
	return stored * 2
}

// AverageStored averages persisted overall ratings, rounded to one decimal.
// Rows written before the storage scale was settled carry 1-10 values; when any
// value exceeds 5 the whole set is treated as legacy and halved before
// averaging. Returns 0 for an empty set.
func AverageStored(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	legacy := false
	for _, v := range values {
		if v > 5 {
			legacy = true
			break
		}
	}

	var sum float64
	for _, v := range values {
		if legacy {
			v /= 2
		}
		sum += v
	}
	return Round1(sum / float64(len(values)))
}
