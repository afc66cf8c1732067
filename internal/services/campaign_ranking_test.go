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

type fakeCampaignLister struct {
	candidates []models.CampaignCandidate
	gotFilters repository.CampaignFilters
}

func (f *fakeCampaignLister) List(_ context.Context, filters repository.CampaignFilters) ([]models.CampaignCandidate, error) {
	f.gotFilters = filters
	return f.candidates, nil
}

func campaignCandidate(title string, m models.CampaignMetrics) models.CampaignCandidate {
	return models.CampaignCandidate{
		ID:      uuid.New(),
		BrandID: uuid.New(),
		Title:   title,
		Metrics: m,
	}
}

func TestCampaignRankingService_Rank(t *testing.T) {
	cfg := rankingTestConfig()

	strong := models.CampaignMetrics{
		Applications:          20,
		Selected:              8,
		TotalBudget:           500000,
		Deliverables:          5,
		RequiredInfluencers:   8,
		CityCount:             10,
		NicheCount:            4,
		PanIndia:              true,
		DaysSinceLaunch:       5,
		DaysSinceLastActivity: 1,
		AvgApplicantFollowers: 80000,
	}

	t.Run("gates drop thin campaigns before scoring", func(t *testing.T) {
		thin := strong
		thin.Applications = 2 // below the three-application gate
		lister := &fakeCampaignLister{candidates: []models.CampaignCandidate{
			campaignCandidate("strong", strong),
			campaignCandidate("thin", thin),
		}}
		svc := NewCampaignRankingService(lister, cfg, &fakeAudit{}, nil, quietLogger())

		resp, err := svc.Rank(context.Background(), &models.CampaignRankingRequest{})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "strong", resp.Items[0].Title)
	})

	t.Run("pan india filter", func(t *testing.T) {
		regional := strong
		regional.PanIndia = false
		lister := &fakeCampaignLister{candidates: []models.CampaignCandidate{
			campaignCandidate("national", strong),
			campaignCandidate("regional", regional),
		}}
		svc := NewCampaignRankingService(lister, cfg, &fakeAudit{}, nil, quietLogger())

		panIndia := true
		resp, err := svc.Rank(context.Background(), &models.CampaignRankingRequest{
			IsPanIndia: &panIndia,
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "national", resp.Items[0].Title)
	})

	t.Run("sort by applications", func(t *testing.T) {
		busier := strong
		busier.Applications = 50
		busier.AvgApplicantFollowers = 100 // low quality, lower composite
		lister := &fakeCampaignLister{candidates: []models.CampaignCandidate{
			campaignCandidate("premium", strong),
			campaignCandidate("busy", busier),
		}}
		svc := NewCampaignRankingService(lister, cfg, &fakeAudit{}, nil, quietLogger())

		resp, err := svc.Rank(context.Background(), &models.CampaignRankingRequest{
			SortBy: models.SortByApplications,
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "busy", resp.Items[0].Title)
	})

	t.Run("budget filters reach the repository", func(t *testing.T) {
		lister := &fakeCampaignLister{}
		svc := NewCampaignRankingService(lister, cfg, &fakeAudit{}, nil, quietLogger())

		minBudget := 10000.0
		_, err := svc.Rank(context.Background(), &models.CampaignRankingRequest{
			MinBudget:    &minBudget,
			VerifiedOnly: true,
		})
		require.NoError(t, err)
		require.NotNil(t, lister.gotFilters.MinBudget)
		assert.Equal(t, 10000.0, *lister.gotFilters.MinBudget)
		assert.True(t, lister.gotFilters.VerifiedOnly)
	})

	t.Run("pagination metadata", func(t *testing.T) {
		var candidates []models.CampaignCandidate
		for i := 0; i < 25; i++ {
			candidates = append(candidates, campaignCandidate("c", strong))
		}
		lister := &fakeCampaignLister{candidates: candidates}
		svc := NewCampaignRankingService(lister, cfg, &fakeAudit{}, nil, quietLogger())

		resp, err := svc.Rank(context.Background(), &models.CampaignRankingRequest{
			Page:  2,
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Items, 10)
		assert.Equal(t, 25, resp.Pagination.Total)
		assert.Equal(t, 3, resp.Pagination.TotalPages)
		assert.True(t, resp.Pagination.HasNext)
		assert.True(t, resp.Pagination.HasPrevious)
	})
}
