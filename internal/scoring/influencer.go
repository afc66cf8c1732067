package scoring

import (
	"github.com/google/uuid"

	"github.com/adlume/spotrank/internal/config"
	"github.com/adlume/spotrank/pkg/models"
)

// Sub-score defaults for dimensions that cannot be measured for a given
// request. These are never surfaced as errors; a missing signal scores
// neutral rather than disqualifying the candidate.
const (
	nicheScoreNoTargets   = 70.0
	nicheScoreNoOverlap   = 30.0
	locationScoreMismatch = 50.0
	chargesScoreUnsetRate = 50.0
	chargesScoreNoBudget  = 70.0
	chargesScoreOffRange  = 70.0
	chargesScoreFloor     = 30.0
	performanceBase       = 50.0
)

// InfluencerContext is the request-side half of influencer scoring: the
// targeting the caller supplied, against which every candidate in the
// batch is compared.
type InfluencerContext struct {
	TargetNicheIDs []uuid.UUID
	TargetCityIDs  []uuid.UUID
	PanIndia       bool
	MinBudget      *float64
	MaxBudget      *float64
}

// InfluencerScorer computes the six sub-scores and the weighted composite
// for influencer candidates.
type InfluencerScorer struct {
	audience   Normalizer
	engagement Normalizer
	tiers      config.RecommendationTierBands
}

func NewInfluencerScorer(tiers config.RecommendationTierBands) *InfluencerScorer {
	return &InfluencerScorer{
		audience:   NewAudienceSizeNormalizer(),
		engagement: NewEngagementRateNormalizer(),
		tiers:      tiers,
	}
}

// Score computes the sub-scores and composite for one candidate. The two
// tier-bucket dimensions are batch-independent, so influencers need no
// batch maxima and each candidate can be scored alone.
func (s *InfluencerScorer) Score(
	m models.InfluencerMetrics,
	rc InfluencerContext,
	w models.InfluencerWeights,
) (models.InfluencerSubScores, float64) {
	sub := models.InfluencerSubScores{
		NicheMatch:        round1(nicheMatchScore(m.NicheIDs, rc.TargetNicheIDs)),
		EngagementRate:    round1(s.engagement.Normalize(m.EngagementRate)),
		AudienceRelevance: round1(s.audience.Normalize(float64(m.Followers))),
		LocationMatch:     round1(locationMatchScore(m.CityID, rc.TargetCityIDs, rc.PanIndia)),
		PastPerformance:   round1(pastPerformanceScore(m.CompletedCampaigns, m.Applications, m.Selected)),
		ChargesMatch:      round1(chargesMatchScore(m.RatePerPost, rc.MinBudget, rc.MaxBudget)),
	}

	// The divisor is a flat 100, not the weight sum. Caller-supplied
	// weights that do not sum to 100 shift the composite range with them.
	composite := sub.NicheMatch*w.NicheMatch +
		sub.EngagementRate*w.EngagementRate +
		sub.AudienceRelevance*w.AudienceRelevance +
		sub.LocationMatch*w.LocationMatch +
		sub.PastPerformance*w.PastPerformance +
		sub.ChargesMatch*w.ChargesMatch

	return sub, round2(composite / 100)
}

// Tier labels a composite score. Boundaries come from configuration, not
// inline literals.
func (s *InfluencerScorer) Tier(composite float64) models.RecommendationTier {
	switch {
	case composite >= s.tiers.HighlyRecommended:
		return models.TierHighlyRecommended
	case composite >= s.tiers.Recommended:
		return models.TierRecommended
	case composite >= s.tiers.Consider:
		return models.TierConsider
	default:
		return models.TierNotRecommended
	}
}

// nicheMatchScore: 70 when the caller targets no niches, 30 when nothing
// overlaps, otherwise 50 plus up to 50 for full coverage of the target set.
func nicheMatchScore(have, want []uuid.UUID) float64 {
	if len(want) == 0 {
		return nicheScoreNoTargets
	}

	haveSet := make(map[uuid.UUID]struct{}, len(have))
	for _, id := range have {
		haveSet[id] = struct{}{}
	}

	matches := 0
	for _, id := range want {
		if _, ok := haveSet[id]; ok {
			matches++
		}
	}

	if matches == 0 {
		return nicheScoreNoOverlap
	}
	return clampScore(50 + float64(matches)/float64(len(want))*50)
}

// locationMatchScore: location is a non-factor for pan-India requests or
// when no target cities are given; otherwise in-set scores 100 and
// out-of-set (or unknown city) scores 50.
func locationMatchScore(cityID *uuid.UUID, targetCities []uuid.UUID, panIndia bool) float64 {
	if panIndia || len(targetCities) == 0 {
		return 100
	}
	if cityID != nil {
		for _, id := range targetCities {
			if *cityID == id {
				return 100
			}
		}
	}
	return locationScoreMismatch
}

// chargesMatchScore compares the influencer's per-post rate against the
// caller's budget range. Five cases: rate unset, no budget given, min
// only, max only, and both bounds. Overshooting the max decays linearly
// with the overshoot ratio and floors at 30.
func chargesMatchScore(rate float64, minBudget, maxBudget *float64) float64 {
	if rate <= 0 {
		return chargesScoreUnsetRate
	}

	hasMin := minBudget != nil && *minBudget > 0
	hasMax := maxBudget != nil && *maxBudget > 0

	switch {
	case !hasMin && !hasMax:
		return chargesScoreNoBudget
	case hasMin && !hasMax:
		if rate >= *minBudget {
			return 100
		}
		return chargesScoreOffRange
	case !hasMin && hasMax:
		if rate <= *maxBudget {
			return 100
		}
		return overshootScore(rate, *maxBudget)
	default:
		if rate >= *minBudget && rate <= *maxBudget {
			return 100
		}
		if rate < *minBudget {
			return chargesScoreOffRange
		}
		return overshootScore(rate, *maxBudget)
	}
}

func overshootScore(rate, maxBudget float64) float64 {
	over := (rate - maxBudget) / maxBudget
	s := 100 - over*70
	if s < chargesScoreFloor {
		return chargesScoreFloor
	}
	return s
}

// pastPerformanceScore starts at a neutral 50, adds up to 30 for
// completed-campaign experience and up to 20 for application success
// rate, capped at 100. Influencers with no history keep the base.
func pastPerformanceScore(completed, applications, selected int) float64 {
	score := performanceBase

	switch {
	case completed >= 20:
		score += 30
	case completed >= 10:
		score += 25
	case completed >= 5:
		score += 20
	case completed >= 2:
		score += 10
	case completed >= 1:
		score += 5
	}

	if applications > 0 {
		rate := float64(selected) / float64(applications)
		switch {
		case rate >= 0.75:
			score += 20
		case rate >= 0.5:
			score += 15
		case rate >= 0.25:
			score += 10
		case rate > 0:
			score += 5
		}
	}

	return clampScore(score)
}

// ResolveInfluencerWeights merges caller overrides onto the configured
// defaults. Bounds checking happened at the request boundary.
func ResolveInfluencerWeights(defaults config.InfluencerWeightConfig, req *models.InfluencerRankingRequest) models.InfluencerWeights {
	w := models.InfluencerWeights{
		NicheMatch:        defaults.NicheMatch,
		EngagementRate:    defaults.EngagementRate,
		AudienceRelevance: defaults.AudienceRelevance,
		LocationMatch:     defaults.LocationMatch,
		PastPerformance:   defaults.PastPerformance,
		ChargesMatch:      defaults.ChargesMatch,
	}
	if req == nil {
		return w
	}
	if req.NicheMatchWeight != nil {
		w.NicheMatch = *req.NicheMatchWeight
	}
	if req.EngagementRateWeight != nil {
		w.EngagementRate = *req.EngagementRateWeight
	}
	if req.AudienceRelevanceWeight != nil {
		w.AudienceRelevance = *req.AudienceRelevanceWeight
	}
	if req.LocationMatchWeight != nil {
		w.LocationMatch = *req.LocationMatchWeight
	}
	if req.PastPerformanceWeight != nil {
		w.PastPerformance = *req.PastPerformanceWeight
	}
	if req.ChargesMatchWeight != nil {
		w.ChargesMatch = *req.ChargesMatchWeight
	}
	return w
}
