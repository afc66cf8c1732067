package models

import "github.com/google/uuid"

// InfluencerCandidate is one influencer in a ranking batch: display fields
// plus the raw metric bundle gathered by the repository. Immutable for the
// duration of one scoring request.
type InfluencerCandidate struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url,omitempty"`
	Verified bool      `json:"verified"`
	Metrics  InfluencerMetrics
}

// InfluencerMetrics is the raw counter bundle for one influencer. Counters
// that could not be fetched are left at their zero values.
type InfluencerMetrics struct {
	Followers          int64
	PostCount          int64
	AvgLikes           float64 // mean likes over the last k posts
	EngagementRate     float64 // avg likes / followers, as a percentage
	NicheIDs           []uuid.UUID
	CityID             *uuid.UUID
	RatePerPost        float64 // 0 = collaboration cost unset
	CompletedCampaigns int
	Applications       int
	Selected           int
}

// InfluencerSubScores holds the six normalized dimensions, each in [0,100]
// and rounded to one decimal.
type InfluencerSubScores struct {
	NicheMatch        float64 `json:"nicheMatch"`
	EngagementRate    float64 `json:"engagementRate"`
	AudienceRelevance float64 `json:"audienceRelevance"`
	LocationMatch     float64 `json:"locationMatch"`
	PastPerformance   float64 `json:"pastPerformance"`
	ChargesMatch      float64 `json:"chargesMatch"`
}

// InfluencerWeights is the caller-overridable weight vector. Weights are
// individually bounded to [0,100] but are not required to sum to 100; the
// aggregator divides by 100 regardless.
type InfluencerWeights struct {
	NicheMatch        float64 `json:"nicheMatchWeight"`
	EngagementRate    float64 `json:"engagementRateWeight"`
	AudienceRelevance float64 `json:"audienceRelevanceWeight"`
	LocationMatch     float64 `json:"locationMatchWeight"`
	PastPerformance   float64 `json:"pastPerformanceWeight"`
	ChargesMatch      float64 `json:"chargesMatchWeight"`
}

// RankedInfluencer is one page entry of an influencer ranking.
type RankedInfluencer struct {
	ID             uuid.UUID           `json:"id"`
	Name           string              `json:"name"`
	ImageURL       string              `json:"image_url,omitempty"`
	Verified       bool                `json:"verified"`
	Followers      int64               `json:"followers"`
	EngagementRate float64             `json:"engagement_rate"`
	RatePerPost    float64             `json:"rate_per_post,omitempty"`
	SubScores      InfluencerSubScores `json:"sub_scores"`
	CompositeScore float64             `json:"composite_score"`
	Tier           RecommendationTier  `json:"recommendation"`
}
