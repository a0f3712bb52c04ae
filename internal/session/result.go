package session

import "time"

// Aggregation selects how per-round scores combine into the session score.
// The policy is fixed at configuration time and applied to every round of
// the session; mixing policies per round is not expressible.
type Aggregation string

const (
	// AggregateSumNormalized sums the normalized [0,1] round scores.
	AggregateSumNormalized Aggregation = "sum_normalized"

	// AggregateRawRatio divides the summed raw scores by the summed
	// maximums, yielding a single [0,1] ratio for the whole session.
	AggregateRawRatio Aggregation = "raw_ratio"
)

// RoundRecord is the terminal accounting of one resolved round.
type RoundRecord struct {
	Index      int
	ModuleID   string
	RawScore   int
	MaxScore   int
	Normalized float64
	Grade      string
}

// Result accumulates across rounds: one record per resolved round, in
// order, plus the completion flags. It is owned exclusively by the session
// controller; rounds reach it only through the resolution callback.
type Result struct {
	Records       []RoundRecord
	RoundsPlanned int
	StartedAt     time.Time
	FinishedAt    time.Time
	Complete      bool
	Abandoned     bool
}

// RoundsPlayed returns the number of rounds resolved so far.
func (r *Result) RoundsPlayed() int {
	return len(r.Records)
}

// TotalNormalized returns the sum of normalized round scores.
func (r *Result) TotalNormalized() float64 {
	var total float64
	for _, rec := range r.Records {
		total += rec.Normalized
	}
	return total
}

// RawTotals returns the summed raw scores and maximums.
func (r *Result) RawTotals() (raw, max int) {
	for _, rec := range r.Records {
		raw += rec.RawScore
		max += rec.MaxScore
	}
	return raw, max
}

// Total returns the session score under the given aggregation policy.
func (r *Result) Total(policy Aggregation) float64 {
	switch policy {
	case AggregateRawRatio:
		raw, max := r.RawTotals()
		return Normalize(raw, max)
	default:
		return r.TotalNormalized()
	}
}

// Average returns the session score reduced to a single [0,1] value, the
// input to session grading. For the sum policy this is the mean normalized
// round score; for the raw-ratio policy the ratio already is one.
func (r *Result) Average(policy Aggregation) float64 {
	if len(r.Records) == 0 {
		return 0
	}
	switch policy {
	case AggregateRawRatio:
		raw, max := r.RawTotals()
		return Normalize(raw, max)
	default:
		return r.TotalNormalized() / float64(len(r.Records))
	}
}
