package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandRepository_List(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()
	mockDB.MatchExpectationsInOrder(false)

	repo := NewBrandRepository(mockDB, testLogger())

	id1 := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	id2 := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	mockDB.ExpectQuery("FROM brands b").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "image_url", "verified"}).
			AddRow(id1, "Adlume", "https://cdn/logo.png", true).
			AddRow(id2, "Freshly", "", true))

	mockDB.ExpectQuery("SELECT ca.brand_id, ca.total_budget").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"brand_id", "total_budget"}).
			AddRow(id1, 100000.0).
			AddRow(id1, 50000.0).
			AddRow(id2, 20000.0))

	mockDB.ExpectQuery("COUNT\\(DISTINCT cn.niche_id\\)").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"brand_id", "count"}).AddRow(id1, 4))

	mockDB.ExpectQuery("JOIN campaign_applications app").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"brand_id", "count"}).AddRow(id1, 9))

	mockDB.ExpectQuery("FROM brand_posts bp").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"brand_id", "count"}).AddRow(id1, 120))

	mockDB.ExpectQuery("FROM brand_followers bf").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"brand_id", "count"}).AddRow(id1, int64(15000)))

	mockDB.ExpectQuery("FROM brand_follows bf").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"brand_id", "count"}).AddRow(id1, int64(300)))

	candidates, err := repo.List(context.Background(), BrandFilters{})
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	first := candidates[0]
	assert.Equal(t, "Adlume", first.Name)
	assert.Equal(t, 2, first.Metrics.Campaigns)
	assert.InDelta(t, 75000.0, first.Metrics.AvgPayout, 0.001)
	assert.Equal(t, 4, first.Metrics.UniqueNiches)
	assert.Equal(t, 9, first.Metrics.SelectedInfluencers)
	assert.Equal(t, int64(120), first.Metrics.Posts)
	assert.Equal(t, int64(15000), first.Metrics.Followers)
	assert.Equal(t, int64(300), first.Metrics.Following)

	second := candidates[1]
	assert.Equal(t, 1, second.Metrics.Campaigns)
	assert.InDelta(t, 20000.0, second.Metrics.AvgPayout, 0.001)
	assert.Zero(t, second.Metrics.UniqueNiches)

	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestBrandRepository_List_VerifiedOnlyToggle(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewBrandRepository(mockDB, testLogger())

	mockDB.ExpectQuery(`b\.profile_complete = true AND b\.verified = true`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "image_url", "verified"}))

	_, err = repo.List(context.Background(), BrandFilters{VerifiedOnly: true})
	require.NoError(t, err)
	require.NoError(t, mockDB.ExpectationsWereMet())

	mockDB.ExpectQuery(`b\.profile_complete = true ORDER BY b\.id`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "image_url", "verified"}))

	_, err = repo.List(context.Background(), BrandFilters{})
	require.NoError(t, err)
	require.NoError(t, mockDB.ExpectationsWereMet())
}

func TestBrandRepository_List_SearchBinding(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewBrandRepository(mockDB, testLogger())

	mockDB.ExpectQuery("FROM brands b").
		WithArgs("%lume%").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "image_url", "verified"}))

	candidates, err := repo.List(context.Background(), BrandFilters{Search: "Lume"})
	require.NoError(t, err)
	assert.Empty(t, candidates)
	require.NoError(t, mockDB.ExpectationsWereMet())
}
