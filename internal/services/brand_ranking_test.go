package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlume/spotrank/internal/repository"
	"github.com/adlume/spotrank/pkg/models"
)

type fakeBrandLister struct {
	candidates []models.BrandCandidate
	gotFilters repository.BrandFilters
}

func (f *fakeBrandLister) List(_ context.Context, filters repository.BrandFilters) ([]models.BrandCandidate, error) {
	f.gotFilters = filters
	return f.candidates, nil
}

func brandCandidate(name string, campaigns, niches, selected int, payout float64) models.BrandCandidate {
	return models.BrandCandidate{
		ID:       uuid.New(),
		Name:     name,
		Verified: true,
		Metrics: models.BrandMetrics{
			Campaigns:           campaigns,
			UniqueNiches:        niches,
			SelectedInfluencers: selected,
			AvgPayout:           payout,
		},
	}
}

func TestBrandRankingService_Rank(t *testing.T) {
	cfg := rankingTestConfig()

	t.Run("unqualified brands are excluded before scoring", func(t *testing.T) {
		// One campaign only: fails the two-campaign gate.
		lister := &fakeBrandLister{candidates: []models.BrandCandidate{
			brandCandidate("qualified", 5, 3, 8, 50000),
			brandCandidate("one-shot", 1, 3, 8, 900000),
		}}
		svc := NewBrandRankingService(lister, cfg, &fakeAudit{}, nil, quietLogger())

		resp, err := svc.Rank(context.Background(), &models.BrandRankingRequest{})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "qualified", resp.Items[0].Name)

		// The only qualified brand holds all four maxima.
		assert.Equal(t, 100.0, resp.Items[0].SubScores.Campaigns)
		assert.Equal(t, 100.0, resp.Items[0].CompositeScore)
	})

	t.Run("batch maxima computed over qualified set only", func(t *testing.T) {
		lister := &fakeBrandLister{candidates: []models.BrandCandidate{
			brandCandidate("leader", 10, 4, 20, 80000),
			brandCandidate("runner-up", 5, 2, 10, 40000),
			brandCandidate("disqualified-giant", 1, 10, 100, 999999),
		}}
		svc := NewBrandRankingService(lister, cfg, &fakeAudit{}, nil, quietLogger())

		resp, err := svc.Rank(context.Background(), &models.BrandRankingRequest{})
		require.NoError(t, err)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "leader", resp.Items[0].Name)
		assert.Equal(t, 100.0, resp.Items[0].CompositeScore)
		assert.InDelta(t, 50.0, resp.Items[1].SubScores.Campaigns, 0.1)
	})

	t.Run("min campaigns filter applies after scoring", func(t *testing.T) {
		lister := &fakeBrandLister{candidates: []models.BrandCandidate{
			brandCandidate("big", 10, 4, 20, 80000),
			brandCandidate("small", 2, 3, 5, 30000),
		}}
		svc := NewBrandRankingService(lister, cfg, &fakeAudit{}, nil, quietLogger())

		minCampaigns := 5
		resp, err := svc.Rank(context.Background(), &models.BrandRankingRequest{
			MinCampaigns: &minCampaigns,
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "big", resp.Items[0].Name)
	})

	t.Run("sort by campaigns", func(t *testing.T) {
		lister := &fakeBrandLister{candidates: []models.BrandCandidate{
			brandCandidate("fewer-richer", 3, 5, 30, 500000),
			brandCandidate("more-campaigns", 12, 2, 4, 10000),
		}}
		svc := NewBrandRankingService(lister, cfg, &fakeAudit{}, nil, quietLogger())

		resp, err := svc.Rank(context.Background(), &models.BrandRankingRequest{
			SortBy: models.SortByCampaigns,
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "more-campaigns", resp.Items[0].Name)
	})

	t.Run("search filter reaches the repository", func(t *testing.T) {
		lister := &fakeBrandLister{}
		svc := NewBrandRankingService(lister, cfg, &fakeAudit{}, nil, quietLogger())

		_, err := svc.Rank(context.Background(), &models.BrandRankingRequest{SearchQuery: "lume"})
		require.NoError(t, err)
		assert.Equal(t, "lume", lister.gotFilters.Search)
	})

	t.Run("verified only flag reaches the repository", func(t *testing.T) {
		lister := &fakeBrandLister{}
		svc := NewBrandRankingService(lister, cfg, &fakeAudit{}, nil, quietLogger())

		_, err := svc.Rank(context.Background(), &models.BrandRankingRequest{VerifiedOnly: true})
		require.NoError(t, err)
		assert.True(t, lister.gotFilters.VerifiedOnly)

		_, err = svc.Rank(context.Background(), &models.BrandRankingRequest{})
		require.NoError(t, err)
		assert.False(t, lister.gotFilters.VerifiedOnly)
	})
}
