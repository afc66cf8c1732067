package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlume/spotrank/internal/config"
	"github.com/adlume/spotrank/pkg/models"
)

func campaignWeights() config.CampaignWeightConfig {
	return config.CampaignWeightConfig{
		Applications:         10,
		ConversionRate:       15,
		ApplicantQuality:     5,
		TotalBudget:          10,
		BudgetPerDeliverable: 10,
		GeographicReach:      8,
		Niches:               7,
		SelectedInfluencers:  15,
		CompletionRate:       10,
		LaunchRecency:        5,
		ActivityRecency:      5,
	}
}

func campaignGates() config.CampaignQualification {
	return config.CampaignQualification{MinApplications: 3, MinDeliverables: 1}
}

func campaignWith(m models.CampaignMetrics) models.CampaignCandidate {
	return models.CampaignCandidate{ID: uuid.New(), Title: "campaign", Metrics: m}
}

func TestQualifyCampaigns(t *testing.T) {
	t.Run("two applications is excluded no matter the rest", func(t *testing.T) {
		rich := campaignWith(models.CampaignMetrics{
			Applications: 2,
			Deliverables: 10,
			TotalBudget:  1_000_000,
			Selected:     2,
			NicheCount:   8,
		})
		modest := campaignWith(models.CampaignMetrics{Applications: 3, Deliverables: 1})

		qualified := QualifyCampaigns([]models.CampaignCandidate{rich, modest}, campaignGates())

		require.Len(t, qualified, 1)
		assert.Equal(t, modest.ID, qualified[0].ID)
	})

	t.Run("zero deliverables disqualifies", func(t *testing.T) {
		c := campaignWith(models.CampaignMetrics{Applications: 10, Deliverables: 0})
		assert.Empty(t, QualifyCampaigns([]models.CampaignCandidate{c}, campaignGates()))
	})
}

func TestConversionRateScore(t *testing.T) {
	assert.Equal(t, 0.0, conversionRateScore(0, 0))
	assert.Equal(t, 50.0, conversionRateScore(10, 5))
	assert.Equal(t, 100.0, conversionRateScore(4, 4))
	assert.Equal(t, 100.0, conversionRateScore(2, 5), "over-selection clamps")
}

func TestCompletionRateScore(t *testing.T) {
	assert.Equal(t, 50.0, completionRateScore(3, 0), "no requirement is neutral")
	assert.Equal(t, 60.0, completionRateScore(3, 5))
	assert.Equal(t, 100.0, completionRateScore(5, 5))
	assert.Equal(t, 100.0, completionRateScore(8, 5))
}

func TestCampaignScorer_ScoreBatch(t *testing.T) {
	scorer := NewCampaignScorer(campaignWeights(), 30)

	t.Run("pan india pins geographic reach at 100", func(t *testing.T) {
		pan := campaignWith(models.CampaignMetrics{
			Applications: 5, Deliverables: 2, PanIndia: true, CityCount: 0,
		})
		local := campaignWith(models.CampaignMetrics{
			Applications: 5, Deliverables: 2, CityCount: 3,
		})

		scored := scorer.ScoreBatch([]models.CampaignCandidate{pan, local})
		require.Len(t, scored, 2)
		assert.Equal(t, 100.0, scored[0].SubScores.GeographicReach)
		assert.Equal(t, 100.0, scored[1].SubScores.GeographicReach, "local max of batch")
	})

	t.Run("activity recency caps at the window", func(t *testing.T) {
		fresh := campaignWith(models.CampaignMetrics{
			Applications: 5, Deliverables: 1, DaysSinceLastActivity: 0,
		})
		stale := campaignWith(models.CampaignMetrics{
			Applications: 5, Deliverables: 1, DaysSinceLastActivity: 200,
		})

		scored := scorer.ScoreBatch([]models.CampaignCandidate{fresh, stale})
		assert.Equal(t, 100.0, scored[0].SubScores.ActivityRecency)
		assert.Equal(t, 0.0, scored[1].SubScores.ActivityRecency)
	})

	t.Run("launch recency is batch-relative", func(t *testing.T) {
		newer := campaignWith(models.CampaignMetrics{
			Applications: 5, Deliverables: 1, DaysSinceLaunch: 10,
		})
		older := campaignWith(models.CampaignMetrics{
			Applications: 5, Deliverables: 1, DaysSinceLaunch: 40,
		})

		scored := scorer.ScoreBatch([]models.CampaignCandidate{newer, older})
		assert.Greater(t, scored[0].SubScores.LaunchRecency, scored[1].SubScores.LaunchRecency)
		assert.Equal(t, 0.0, scored[1].SubScores.LaunchRecency, "batch max scores zero")
	})

	t.Run("composite bounded when weights sum to 100", func(t *testing.T) {
		c := campaignWith(models.CampaignMetrics{
			Applications: 20, Selected: 20, Deliverables: 4, RequiredInfluencers: 5,
			TotalBudget: 500_000, PanIndia: true, NicheCount: 6,
			AvgApplicantFollowers: 80_000,
		})
		scored := scorer.ScoreBatch([]models.CampaignCandidate{c})
		require.Len(t, scored, 1)
		assert.LessOrEqual(t, scored[0].Composite, 100.0)
		assert.Greater(t, scored[0].Composite, 0.0)
	})

	t.Run("empty batch", func(t *testing.T) {
		assert.Nil(t, scorer.ScoreBatch(nil))
	})
}
