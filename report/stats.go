package report

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyInput is returned when statistics are requested for no values
var ErrEmptyInput = errors.New("no values to compute statistics from")

// Statistics summarizes the values of one metric
type Statistics struct {
	Median            float64
	Average           float64
	StandardDeviation float64
}

// Compute returns the upper median, the arithmetic mean and the population
// standard deviation of values. For an even number of values the median is
// the element at len/2 of the sorted values, not the mean of the two middle
// elements. values is not modified.
func Compute(values []float64) (Statistics, error) {
	if len(values) == 0 {
		return Statistics{}, ErrEmptyInput
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	avg := average(sorted)
	return Statistics{
		Median:            sorted[len(sorted)/2],
		Average:           avg,
		StandardDeviation: standardDeviation(sorted, avg),
	}, nil
}

func average(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func standardDeviation(values []float64, avg float64) float64 {
	var variance float64
	for _, v := range values {
		d := v - avg
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(values)))
}

// Scale divides all statistics by divisor, e.g. to convert bits to megabits
func (s Statistics) Scale(divisor float64) Statistics {
	return Statistics{
		Median:            s.Median / divisor,
		Average:           s.Average / divisor,
		StandardDeviation: s.StandardDeviation / divisor,
	}
}

// Round rounds all statistics to the given number of decimal places
func (s Statistics) Round(places int) Statistics {
	return Statistics{
		Median:            round(s.Median, places),
		Average:           round(s.Average, places),
		StandardDeviation: round(s.StandardDeviation, places),
	}
}

func round(v float64, places int) float64 {
	m := math.Pow(10, float64(places))
	return math.Round(v*m) / m
}
