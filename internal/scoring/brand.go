package scoring

import "github.com/adlume/spotrank/pkg/models"

// Brand dimensions are equal-weighted at 25% each and all max-relative,
// so scoring is a batch operation: the maxima must be computed over the
// qualified candidates only, never the raw superset.

// ScoredBrand pairs a candidate with its computed scores.
type ScoredBrand struct {
	Candidate models.BrandCandidate
	SubScores models.BrandSubScores
	Composite float64
}

// ScoreBrands normalizes and aggregates a qualified brand batch. An
// empty batch returns an empty slice.
func ScoreBrands(batch []models.BrandCandidate) []ScoredBrand {
	if len(batch) == 0 {
		return nil
	}

	campaigns := make([]float64, len(batch))
	niches := make([]float64, len(batch))
	selected := make([]float64, len(batch))
	payout := make([]float64, len(batch))
	for i, b := range batch {
		campaigns[i] = float64(b.Metrics.Campaigns)
		niches[i] = float64(b.Metrics.UniqueNiches)
		selected[i] = float64(b.Metrics.SelectedInfluencers)
		payout[i] = b.Metrics.AvgPayout
	}

	campaignNorm := NewMaxRelativeNormalizer(batchMax(campaigns))
	nicheNorm := NewMaxRelativeNormalizer(batchMax(niches))
	selectedNorm := NewMaxRelativeNormalizer(batchMax(selected))
	payoutNorm := NewMaxRelativeNormalizer(batchMax(payout))

	scored := make([]ScoredBrand, len(batch))
	for i, b := range batch {
		sub := models.BrandSubScores{
			Campaigns:           round1(campaignNorm.Normalize(campaigns[i])),
			UniqueNiches:        round1(nicheNorm.Normalize(niches[i])),
			SelectedInfluencers: round1(selectedNorm.Normalize(selected[i])),
			AvgPayout:           round1(payoutNorm.Normalize(payout[i])),
		}
		composite := (sub.Campaigns*25 + sub.UniqueNiches*25 +
			sub.SelectedInfluencers*25 + sub.AvgPayout*25) / 100

		scored[i] = ScoredBrand{
			Candidate: b,
			SubScores: sub,
			Composite: round2(composite),
		}
	}
	return scored
}
