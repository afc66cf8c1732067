package models

import "github.com/google/uuid"

// BrandCandidate is one brand in a ranking batch. The repository only
// returns brands that pass the pre-score gates (verified, active,
// profile-complete).
type BrandCandidate struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url,omitempty"`
	Verified bool      `json:"verified"`
	Metrics  BrandMetrics
}

// BrandMetrics is the raw counter bundle for one brand.
type BrandMetrics struct {
	Campaigns           int
	UniqueNiches        int
	SelectedInfluencers int
	AvgPayout           float64
	Posts               int64
	Followers           int64
	Following           int64
}

// BrandSubScores holds the four equal-weighted dimensions, all
// max-relative against the qualified batch.
type BrandSubScores struct {
	Campaigns           float64 `json:"campaigns"`
	UniqueNiches        float64 `json:"uniqueNiches"`
	SelectedInfluencers float64 `json:"selectedInfluencers"`
	AvgPayout           float64 `json:"avgPayout"`
}

type RankedBrand struct {
	ID                  uuid.UUID      `json:"id"`
	Name                string         `json:"name"`
	ImageURL            string         `json:"image_url,omitempty"`
	Verified            bool           `json:"verified"`
	Campaigns           int            `json:"campaigns"`
	UniqueNiches        int            `json:"unique_niches"`
	SelectedInfluencers int            `json:"selected_influencers"`
	AvgPayout           float64        `json:"avg_payout"`
	Followers           int64          `json:"followers"`
	SubScores           BrandSubScores `json:"sub_scores"`
	CompositeScore      float64        `json:"composite_score"`
}
