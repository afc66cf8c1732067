package scoring

import (
	"github.com/adlume/spotrank/internal/config"
	"github.com/adlume/spotrank/pkg/models"
)

// neutral score for campaigns with no required-influencer target
const completionScoreUnknown = 50.0

type ScoredCampaign struct {
	Candidate models.CampaignCandidate
	SubScores models.CampaignSubScores
	Composite float64
}

// CampaignScorer aggregates the eleven campaign dimensions with a fixed,
// unequal weight vector.
type CampaignScorer struct {
	weights        config.CampaignWeightConfig
	activityWindow int
}

func NewCampaignScorer(weights config.CampaignWeightConfig, activityWindowDays int) *CampaignScorer {
	return &CampaignScorer{weights: weights, activityWindow: activityWindowDays}
}

// ScoreBatch normalizes and aggregates a qualified campaign batch. Seven
// dimensions are max-relative against this batch, two are recency-based,
// and conversion/completion rates are ratios scored per candidate.
func (s *CampaignScorer) ScoreBatch(batch []models.CampaignCandidate) []ScoredCampaign {
	if len(batch) == 0 {
		return nil
	}

	apps := make([]float64, len(batch))
	quality := make([]float64, len(batch))
	budget := make([]float64, len(batch))
	budgetPerDeliverable := make([]float64, len(batch))
	cities := make([]float64, len(batch))
	niches := make([]float64, len(batch))
	selected := make([]float64, len(batch))
	launchAge := make([]float64, len(batch))
	for i, c := range batch {
		m := c.Metrics
		apps[i] = float64(m.Applications)
		quality[i] = m.AvgApplicantFollowers
		budget[i] = m.TotalBudget
		if m.Deliverables > 0 {
			budgetPerDeliverable[i] = m.TotalBudget / float64(m.Deliverables)
		}
		cities[i] = float64(m.CityCount)
		niches[i] = float64(m.NicheCount)
		selected[i] = float64(m.Selected)
		launchAge[i] = m.DaysSinceLaunch
	}

	appsNorm := NewMaxRelativeNormalizer(batchMax(apps))
	qualityNorm := NewMaxRelativeNormalizer(batchMax(quality))
	budgetNorm := NewMaxRelativeNormalizer(batchMax(budget))
	perDeliverableNorm := NewMaxRelativeNormalizer(batchMax(budgetPerDeliverable))
	cityNorm := NewMaxRelativeNormalizer(batchMax(cities))
	nicheNorm := NewMaxRelativeNormalizer(batchMax(niches))
	selectedNorm := NewMaxRelativeNormalizer(batchMax(selected))
	launchNorm := NewRecencyNormalizer(batchMax(launchAge))
	activityNorm := NewActivityRecencyNormalizer(s.activityWindow)

	scored := make([]ScoredCampaign, len(batch))
	for i, c := range batch {
		m := c.Metrics

		geo := 100.0
		if !m.PanIndia {
			geo = cityNorm.Normalize(cities[i])
		}

		sub := models.CampaignSubScores{
			Applications:         round1(appsNorm.Normalize(apps[i])),
			ConversionRate:       round1(conversionRateScore(m.Applications, m.Selected)),
			ApplicantQuality:     round1(qualityNorm.Normalize(quality[i])),
			TotalBudget:          round1(budgetNorm.Normalize(budget[i])),
			BudgetPerDeliverable: round1(perDeliverableNorm.Normalize(budgetPerDeliverable[i])),
			GeographicReach:      round1(geo),
			Niches:               round1(nicheNorm.Normalize(niches[i])),
			SelectedInfluencers:  round1(selectedNorm.Normalize(selected[i])),
			CompletionRate:       round1(completionRateScore(m.Selected, m.RequiredInfluencers)),
			LaunchRecency:        round1(launchNorm.Normalize(m.DaysSinceLaunch)),
			ActivityRecency:      round1(activityNorm.Normalize(m.DaysSinceLastActivity)),
		}

		w := s.weights
		composite := sub.Applications*w.Applications +
			sub.ConversionRate*w.ConversionRate +
			sub.ApplicantQuality*w.ApplicantQuality +
			sub.TotalBudget*w.TotalBudget +
			sub.BudgetPerDeliverable*w.BudgetPerDeliverable +
			sub.GeographicReach*w.GeographicReach +
			sub.Niches*w.Niches +
			sub.SelectedInfluencers*w.SelectedInfluencers +
			sub.CompletionRate*w.CompletionRate +
			sub.LaunchRecency*w.LaunchRecency +
			sub.ActivityRecency*w.ActivityRecency

		scored[i] = ScoredCampaign{
			Candidate: c,
			SubScores: sub,
			Composite: round2(composite / 100),
		}
	}
	return scored
}

// conversionRateScore is the selected-to-applications ratio on a 0-100
// scale. Qualified campaigns always have applications > 0, but a zero
// count still scores 0 rather than dividing by zero.
func conversionRateScore(applications, selected int) float64 {
	if applications <= 0 {
		return 0
	}
	return clampScore(float64(selected) / float64(applications) * 100)
}

// completionRateScore measures progress toward the campaign's required
// influencer count. Campaigns with no stated requirement score neutral.
func completionRateScore(selected, required int) float64 {
	if required <= 0 {
		return completionScoreUnknown
	}
	return clampScore(float64(selected) / float64(required) * 100)
}
