package models

// CandidateKind identifies which scoring pipeline a candidate belongs to.
type CandidateKind string

const (
	KindInfluencer CandidateKind = "influencer"
	KindBrand      CandidateKind = "brand"
	KindCampaign   CandidateKind = "campaign"
)

// RecommendationTier is the discrete label derived from an influencer's
// composite score. Brands and campaigns are ranked but not tiered.
type RecommendationTier string

const (
	TierHighlyRecommended RecommendationTier = "highly_recommended"
	TierRecommended       RecommendationTier = "recommended"
	TierConsider          RecommendationTier = "consider"
	TierNotRecommended    RecommendationTier = "not_recommended"
)

// Pagination carries page metadata for a ranked result set.
type Pagination struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}
