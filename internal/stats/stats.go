// Package stats computes summary statistics over replicate metrics using
// Welford's online algorithm.
package stats

import "math"

// z95 is the normal quantile used for the 95% confidence half-width.
const z95 = 1.96

// Result is an immutable snapshot of an Accumulator.
type Result struct {
	N              int
	Sum            float64
	Mean           float64
	SampleVariance float64
	SampleStdev    float64
	Stderr         float64
	CI95           float64
}

// Accumulator collects samples one at a time. The zero value is ready to use.
type Accumulator struct {
	n    int
	mean float64
	m2   float64
	sum  float64
}

// Add records a sample. NaN and ±Inf are ignored.
func (a *Accumulator) Add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	a.n++
	a.sum += v
	delta := v - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (v - a.mean)
}

// Merge folds other into a, as if all of its samples had been added.
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil || other.n == 0 {
		return
	}
	if a.n == 0 {
		*a = *other
		return
	}
	na, nb := float64(a.n), float64(other.n)
	n := na + nb
	delta := other.mean - a.mean
	a.mean += delta * nb / n
	a.m2 += other.m2 + delta*delta*na*nb/n
	a.n += other.n
	a.sum += other.sum
}

// N returns the number of samples added.
func (a *Accumulator) N() int { return a.n }

// Result finalizes the current state.
func (a *Accumulator) Result() Result {
	r := Result{N: a.n, Sum: a.sum}
	if a.n > 0 {
		r.Mean = a.mean
	}
	if a.n > 1 {
		r.SampleVariance = a.m2 / float64(a.n-1)
		r.SampleStdev = math.Sqrt(r.SampleVariance)
		r.Stderr = r.SampleStdev / math.Sqrt(float64(a.n))
	}
	r.CI95 = z95 * r.Stderr
	return r
}

// Compute is a one-shot helper over a slice.
func Compute(values []float64) Result {
	var a Accumulator
	for _, v := range values {
		a.Add(v)
	}
	return a.Result()
}
