package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestInfluencerRepository_List(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	// Counter queries run concurrently, so expectation order cannot be
	// relied on past the superset query.
	mockDB.MatchExpectationsInOrder(false)

	logger := testLogger()
	repo := NewInfluencerRepository(mockDB, logger, 12)

	id1 := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	id2 := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	city := uuid.New()

	mockDB.ExpectQuery("FROM influencers i").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "image_url", "verified", "city_id", "rate_per_post"}).
			AddRow(id1, "Asha", "https://cdn/a.jpg", true, &city, 5000.0).
			AddRow(id2, "Bela", "", false, (*uuid.UUID)(nil), 0.0))

	mockDB.ExpectQuery("FROM followers f").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"influencer_id", "count"}).
			AddRow(id1, int64(50000)).
			AddRow(id2, int64(800)))

	mockDB.ExpectQuery(`SELECT p\.influencer_id, COUNT`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"influencer_id", "count"}).
			AddRow(id1, 40).
			AddRow(id2, 3))

	mockDB.ExpectQuery("ROW_NUMBER").
		WithArgs(pgxmock.AnyArg(), 12).
		WillReturnRows(pgxmock.NewRows([]string{"influencer_id", "likes"}).
			AddRow(id1, 2400.0).
			AddRow(id1, 2600.0).
			AddRow(id2, 10.0))

	mockDB.ExpectQuery("FROM campaign_applications ca").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"influencer_id", "applied", "selected", "completed"}).
			AddRow(id1, 12, 6, 5))

	mockDB.ExpectQuery("FROM influencer_niches inn").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"influencer_id", "niche_id"}).
			AddRow(id1, uuid.New()).
			AddRow(id1, uuid.New()))

	candidates, err := repo.List(context.Background(), InfluencerFilters{})
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	first := candidates[0]
	assert.Equal(t, id1, first.ID)
	assert.Equal(t, int64(50000), first.Metrics.Followers)
	assert.Equal(t, int64(40), first.Metrics.PostCount)
	assert.InDelta(t, 2500.0, first.Metrics.AvgLikes, 0.001)
	assert.InDelta(t, 5.0, first.Metrics.EngagementRate, 0.001)
	assert.Equal(t, 5, first.Metrics.CompletedCampaigns)
	assert.Equal(t, 12, first.Metrics.Applications)
	assert.Equal(t, 6, first.Metrics.Selected)
	assert.Len(t, first.Metrics.NicheIDs, 2)

	second := candidates[1]
	assert.Equal(t, int64(800), second.Metrics.Followers)
	assert.InDelta(t, 10.0, second.Metrics.AvgLikes, 0.001)
	assert.InDelta(t, 1.25, second.Metrics.EngagementRate, 0.001)
	assert.Zero(t, second.Metrics.CompletedCampaigns)
	assert.Empty(t, second.Metrics.NicheIDs)

	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestInfluencerRepository_List_FilterBinding(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewInfluencerRepository(mockDB, testLogger(), 0)

	cityID := uuid.New()
	mockDB.ExpectQuery("FROM influencers i").
		WithArgs("%asha%", []uuid.UUID{cityID}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "image_url", "verified", "city_id", "rate_per_post"}))

	candidates, err := repo.List(context.Background(), InfluencerFilters{
		Search:  "Asha",
		CityIDs: []uuid.UUID{cityID},
	})
	require.NoError(t, err)
	assert.Empty(t, candidates)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestInfluencerRepository_List_CounterFailureLeavesZeros(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()
	mockDB.MatchExpectationsInOrder(false)

	repo := NewInfluencerRepository(mockDB, testLogger(), 12)
	id := uuid.New()

	mockDB.ExpectQuery("FROM influencers i").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "image_url", "verified", "city_id", "rate_per_post"}).
			AddRow(id, "Asha", "", true, (*uuid.UUID)(nil), 0.0))

	mockDB.ExpectQuery("FROM followers f").
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))
	mockDB.ExpectQuery(`SELECT p\.influencer_id, COUNT`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"influencer_id", "count"}).AddRow(id, 7))
	mockDB.ExpectQuery("ROW_NUMBER").
		WithArgs(pgxmock.AnyArg(), 12).
		WillReturnRows(pgxmock.NewRows([]string{"influencer_id", "likes"}))
	mockDB.ExpectQuery("FROM campaign_applications ca").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"influencer_id", "applied", "selected", "completed"}))
	mockDB.ExpectQuery("FROM influencer_niches inn").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"influencer_id", "niche_id"}))

	candidates, err := repo.List(context.Background(), InfluencerFilters{})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Zero(t, candidates[0].Metrics.Followers)
	assert.Equal(t, int64(7), candidates[0].Metrics.PostCount)
	assert.Zero(t, candidates[0].Metrics.EngagementRate)

	require.NoError(t, mockDB.ExpectationsWereMet())
}
