package models

import "github.com/google/uuid"

// Sort keys accepted by the ranking endpoints. Unknown values fall back
// to SortByScore.
const (
	SortByScore        = "score"
	SortByFollowers    = "followers"
	SortByCampaigns    = "campaigns"
	SortByApplications = "applications"
)

// InfluencerRankingRequest is the filter set for a top-influencers query.
// Nil numeric filters mean "not supplied"; nil weight fields fall back to
// the configured defaults.
type InfluencerRankingRequest struct {
	SearchQuery    string      `json:"searchQuery,omitempty"`
	LocationSearch string      `json:"locationSearch,omitempty"`
	NicheSearch    string      `json:"nicheSearch,omitempty"`
	NicheIDs       []uuid.UUID `json:"nicheIds,omitempty"`
	CityIDs        []uuid.UUID `json:"cityIds,omitempty"`
	IsPanIndia     bool        `json:"isPanIndia,omitempty"`
	MinFollowers   *int64      `json:"minFollowers,omitempty" validate:"omitempty,min=0"`
	MaxFollowers   *int64      `json:"maxFollowers,omitempty" validate:"omitempty,min=0"`
	MinBudget      *float64    `json:"minBudget,omitempty" validate:"omitempty,min=0"`
	MaxBudget      *float64    `json:"maxBudget,omitempty" validate:"omitempty,min=0"`
	MinScore       *float64    `json:"minScore,omitempty" validate:"omitempty,min=0,max=100"`
	SortBy         string      `json:"sortBy,omitempty"`
	Page           int         `json:"page" validate:"omitempty,min=1"`
	Limit          int         `json:"limit" validate:"omitempty,min=1,max=100"`

	// Per-dimension weight overrides, each bounded to [0,100].
	NicheMatchWeight        *float64 `json:"nicheMatchWeight,omitempty" validate:"omitempty,min=0,max=100"`
	EngagementRateWeight    *float64 `json:"engagementRateWeight,omitempty" validate:"omitempty,min=0,max=100"`
	AudienceRelevanceWeight *float64 `json:"audienceRelevanceWeight,omitempty" validate:"omitempty,min=0,max=100"`
	LocationMatchWeight     *float64 `json:"locationMatchWeight,omitempty" validate:"omitempty,min=0,max=100"`
	PastPerformanceWeight   *float64 `json:"pastPerformanceWeight,omitempty" validate:"omitempty,min=0,max=100"`
	ChargesMatchWeight      *float64 `json:"chargesMatchWeight,omitempty" validate:"omitempty,min=0,max=100"`
}

type BrandRankingRequest struct {
	SearchQuery  string   `json:"searchQuery,omitempty"`
	VerifiedOnly bool     `json:"verifiedOnly,omitempty"`
	MinCampaigns *int     `json:"minCampaigns,omitempty" validate:"omitempty,min=0"`
	MinScore     *float64 `json:"minScore,omitempty" validate:"omitempty,min=0,max=100"`
	SortBy       string   `json:"sortBy,omitempty"`
	Page         int      `json:"page" validate:"omitempty,min=1"`
	Limit        int      `json:"limit" validate:"omitempty,min=1,max=100"`
}

type CampaignRankingRequest struct {
	SearchQuery  string      `json:"searchQuery,omitempty"`
	NicheIDs     []uuid.UUID `json:"nicheIds,omitempty"`
	CityIDs      []uuid.UUID `json:"cityIds,omitempty"`
	IsPanIndia   *bool       `json:"isPanIndia,omitempty"`
	VerifiedOnly bool        `json:"verifiedOnly,omitempty"`
	MinBudget    *float64    `json:"minBudget,omitempty" validate:"omitempty,min=0"`
	MaxBudget    *float64    `json:"maxBudget,omitempty" validate:"omitempty,min=0"`
	MinScore     *float64    `json:"minScore,omitempty" validate:"omitempty,min=0,max=100"`
	SortBy       string      `json:"sortBy,omitempty"`
	Page         int         `json:"page" validate:"omitempty,min=1"`
	Limit        int         `json:"limit" validate:"omitempty,min=1,max=100"`
}

// RankingSearchRequest is the POST body form: exactly one kind-specific
// request must be present.
type RankingSearchRequest struct {
	Kind       CandidateKind             `json:"kind" validate:"required,oneof=influencer brand campaign"`
	Influencer *InfluencerRankingRequest `json:"influencer,omitempty"`
	Brand      *BrandRankingRequest      `json:"brand,omitempty"`
	Campaign   *CampaignRankingRequest   `json:"campaign,omitempty"`
}

// Responses inline the page metadata so clients see a flat
// {items, total, page, limit, totalPages, hasNext, hasPrevious} object.
type InfluencerRankingResponse struct {
	Items []RankedInfluencer `json:"items"`
	Pagination
	AppliedWeights InfluencerWeights `json:"appliedWeights"`
}

type BrandRankingResponse struct {
	Items []RankedBrand `json:"items"`
	Pagination
}

type CampaignRankingResponse struct {
	Items []RankedCampaign `json:"items"`
	Pagination
}
