package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlume/spotrank/internal/config"
	"github.com/adlume/spotrank/pkg/models"
)

func brandGates() config.BrandQualification {
	return config.BrandQualification{
		MinCampaigns:           2,
		MinUniqueNiches:        2,
		MinSelectedInfluencers: 1,
	}
}

func brandWith(campaigns, niches, selected int, payout float64) models.BrandCandidate {
	return models.BrandCandidate{
		ID:   uuid.New(),
		Name: "brand",
		Metrics: models.BrandMetrics{
			Campaigns:           campaigns,
			UniqueNiches:        niches,
			SelectedInfluencers: selected,
			AvgPayout:           payout,
		},
	}
}

func TestQualifyBrands(t *testing.T) {
	t.Run("thresholds are strict minimums", func(t *testing.T) {
		oneCampaign := brandWith(1, 5, 10, 9000)
		exactlyAtGate := brandWith(2, 2, 1, 100)

		qualified := QualifyBrands([]models.BrandCandidate{oneCampaign, exactlyAtGate}, brandGates())

		require.Len(t, qualified, 1)
		assert.Equal(t, exactlyAtGate.ID, qualified[0].ID)
	})

	t.Run("single niche disqualifies", func(t *testing.T) {
		qualified := QualifyBrands([]models.BrandCandidate{brandWith(5, 1, 3, 5000)}, brandGates())
		assert.Empty(t, qualified)
	})

	t.Run("empty input yields empty, not nil panic", func(t *testing.T) {
		assert.Empty(t, QualifyBrands(nil, brandGates()))
	})
}

func TestScoreBrands(t *testing.T) {
	t.Run("equal weights, max-relative per dimension", func(t *testing.T) {
		top := brandWith(10, 4, 8, 10000)
		mid := brandWith(5, 2, 4, 5000)

		scored := ScoreBrands([]models.BrandCandidate{top, mid})
		require.Len(t, scored, 2)

		assert.Equal(t, 100.0, scored[0].SubScores.Campaigns)
		assert.Equal(t, 100.0, scored[0].SubScores.AvgPayout)
		assert.Equal(t, 100.0, scored[0].Composite)

		assert.Equal(t, 50.0, scored[1].SubScores.Campaigns)
		assert.Equal(t, 50.0, scored[1].SubScores.UniqueNiches)
		assert.Equal(t, 50.0, scored[1].Composite)
	})

	t.Run("uniform batch scores everyone 100", func(t *testing.T) {
		batch := []models.BrandCandidate{
			brandWith(3, 3, 2, 4000),
			brandWith(3, 3, 2, 4000),
		}
		for _, s := range ScoreBrands(batch) {
			assert.Equal(t, 100.0, s.Composite)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		assert.Nil(t, ScoreBrands(nil))
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		batch := []models.BrandCandidate{
			brandWith(7, 3, 5, 8000),
			brandWith(2, 2, 1, 1500),
		}
		first := ScoreBrands(batch)
		second := ScoreBrands(batch)
		assert.Equal(t, first, second)
	})
}
