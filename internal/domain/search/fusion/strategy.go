package fusion

// Strategy selects a rank-fusion method.
type Strategy string

// Supported fusion strategies.
const (
	// WeightedSum combines independently normalized scores with configured weights.
	WeightedSum Strategy = "weighted_sum"
	// ReciprocalRankFusion sums signalWeight/(k+rank) contributions per ranked list.
	ReciprocalRankFusion Strategy = "reciprocal_rank_fusion"
	// CombSum adds normalized scores with equal implicit weighting.
	CombSum Strategy = "comb_sum"
	// CombMax takes the maximum normalized score across signals.
	CombMax Strategy = "comb_max"
	// BordaCount converts rank positions to points and sums weighted points.
	BordaCount Strategy = "borda_count"
)

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	switch s {
	case WeightedSum, ReciprocalRankFusion, CombSum, CombMax, BordaCount:
		return true
	}
	return false
}
