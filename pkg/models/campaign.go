package models

import "github.com/google/uuid"

// CampaignCandidate is one campaign in a ranking batch. Cancelled
// campaigns never reach scoring; the repository filters them out.
type CampaignCandidate struct {
	ID        uuid.UUID `json:"id"`
	BrandID   uuid.UUID `json:"brand_id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url,omitempty"`
	BrandName string    `json:"brand_name,omitempty"`
	Metrics   CampaignMetrics
}

// CampaignMetrics is the raw counter bundle for one campaign. Recency
// values are in whole days at extraction time.
type CampaignMetrics struct {
	Applications          int
	Selected              int
	TotalBudget           float64
	Deliverables          int
	RequiredInfluencers   int
	CityCount             int
	PanIndia              bool
	NicheCount            int
	DaysSinceLaunch       float64
	DaysSinceLastActivity float64 // days since the most recent application
	AvgApplicantFollowers float64
}

// CampaignSubScores holds the eleven weighted dimensions.
type CampaignSubScores struct {
	Applications         float64 `json:"applications"`
	ConversionRate       float64 `json:"conversionRate"`
	ApplicantQuality     float64 `json:"applicantQuality"`
	TotalBudget          float64 `json:"totalBudget"`
	BudgetPerDeliverable float64 `json:"budgetPerDeliverable"`
	GeographicReach      float64 `json:"geographicReach"`
	Niches               float64 `json:"niches"`
	SelectedInfluencers  float64 `json:"selectedInfluencers"`
	CompletionRate       float64 `json:"completionRate"`
	LaunchRecency        float64 `json:"launchRecency"`
	ActivityRecency      float64 `json:"activityRecency"`
}

type RankedCampaign struct {
	ID             uuid.UUID         `json:"id"`
	BrandID        uuid.UUID         `json:"brand_id"`
	Title          string            `json:"title"`
	ImageURL       string            `json:"image_url,omitempty"`
	BrandName      string            `json:"brand_name,omitempty"`
	Applications   int               `json:"applications"`
	Selected       int               `json:"selected"`
	TotalBudget    float64           `json:"total_budget"`
	Deliverables   int               `json:"deliverables"`
	PanIndia       bool              `json:"pan_india"`
	SubScores      CampaignSubScores `json:"sub_scores"`
	CompositeScore float64           `json:"composite_score"`
}
