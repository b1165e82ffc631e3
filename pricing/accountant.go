package pricing

import "time"

// Well-known accounting buckets used by the audio pipeline.
const (
	BucketSarvam      = "sarvam"
	BucketGemini      = "gemini"
	BucketTranslation = "translation"
)

// Totals is the accumulated cost and latency for one bucket.
type Totals struct {
	Cost    float64
	Latency time.Duration
	Calls   int
}

// Accountant accumulates per-call cost and latency across a batch.
// It is owned exclusively by the batch driver and mutated from a single
// goroutine, so it carries no locking.
type Accountant struct {
	buckets map[string]Totals
}

// NewAccountant creates an empty accountant.
func NewAccountant() *Accountant {
	return &Accountant{buckets: make(map[string]Totals)}
}

// Add records one call's cost and latency against a bucket.
func (a *Accountant) Add(bucket string, cost float64, latency time.Duration) {
	t := a.buckets[bucket]
	t.Cost += cost
	t.Latency += latency
	t.Calls++
	a.buckets[bucket] = t
}

// Totals returns the accumulated totals for a bucket. The zero Totals is
// returned for buckets that never received an Add.
func (a *Accountant) Totals(bucket string) Totals {
	return a.buckets[bucket]
}

// GrandTotalCost returns the cost summed across every bucket.
func (a *Accountant) GrandTotalCost() float64 {
	var sum float64
	for _, t := range a.buckets {
		sum += t.Cost
	}
	return sum
}
