package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/adlume/spotrank/pkg/models"
)

// BrandFilters narrows the brand superset. The active and
// profile-complete gates are always applied in SQL; verification is a
// caller-controlled toggle.
type BrandFilters struct {
	Search       string
	VerifiedOnly bool
}

type BrandRepository struct {
	db     Querier
	logger *logrus.Logger
}

func NewBrandRepository(db Querier, logger *logrus.Logger) *BrandRepository {
	return &BrandRepository{db: db, logger: logger}
}

// List returns the gated brand superset with scoring counters attached.
func (r *BrandRepository) List(ctx context.Context, filters BrandFilters) ([]models.BrandCandidate, error) {
	query := `
		SELECT b.id, b.name, b.image_url, b.verified
		FROM brands b
		WHERE b.active = true AND b.profile_complete = true`
	args := []interface{}{}

	if filters.VerifiedOnly {
		query += " AND b.verified = true"
	}
	if filters.Search != "" {
		args = append(args, likePattern(filters.Search))
		query += fmt.Sprintf(" AND LOWER(b.name) LIKE $%d", len(args))
	}
	query += " ORDER BY b.id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("brand superset query: %w", err)
	}
	defer rows.Close()

	var candidates []models.BrandCandidate
	for rows.Next() {
		var c models.BrandCandidate
		if err := rows.Scan(&c.ID, &c.Name, &c.ImageURL, &c.Verified); err != nil {
			return nil, fmt.Errorf("brand superset scan: %w", err)
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	ids := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}

	counters := r.fetchCounters(ctx, ids)

	for i := range candidates {
		id := candidates[i].ID
		m := &candidates[i].Metrics
		if budgets := counters.budgets[id]; len(budgets) > 0 {
			m.Campaigns = len(budgets)
			m.AvgPayout = stat.Mean(budgets, nil)
		}
		m.UniqueNiches = counters.niches[id]
		m.SelectedInfluencers = counters.selected[id]
		m.Posts = int64(counters.posts[id])
		m.Followers = counters.followers[id]
		m.Following = counters.following[id]
	}
	return candidates, nil
}

type brandCounters struct {
	budgets   map[uuid.UUID][]float64
	niches    map[uuid.UUID]int
	selected  map[uuid.UUID]int
	posts     map[uuid.UUID]int
	followers map[uuid.UUID]int64
	following map[uuid.UUID]int64
}

func (r *BrandRepository) fetchCounters(ctx context.Context, ids []uuid.UUID) brandCounters {
	c := brandCounters{
		budgets:   make(map[uuid.UUID][]float64),
		niches:    make(map[uuid.UUID]int),
		selected:  make(map[uuid.UUID]int),
		posts:     make(map[uuid.UUID]int),
		followers: make(map[uuid.UUID]int64),
		following: make(map[uuid.UUID]int64),
	}

	intCount := func(m map[uuid.UUID]int) func(pgx.Rows) error {
		return func(rows pgx.Rows) error {
			for rows.Next() {
				var id uuid.UUID
				var n int
				if err := rows.Scan(&id, &n); err != nil {
					return err
				}
				m[id] = n
			}
			return rows.Err()
		}
	}
	int64Count := func(m map[uuid.UUID]int64) func(pgx.Rows) error {
		return func(rows pgx.Rows) error {
			for rows.Next() {
				var id uuid.UUID
				var n int64
				if err := rows.Scan(&id, &n); err != nil {
					return err
				}
				m[id] = n
			}
			return rows.Err()
		}
	}

	var wg sync.WaitGroup
	wg.Add(6)

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "brand_campaign_budgets", `
			SELECT ca.brand_id, ca.total_budget
			FROM campaigns ca
			WHERE ca.brand_id = ANY($1) AND ca.status <> 'cancelled'`,
			func(rows pgx.Rows) error {
				for rows.Next() {
					var id uuid.UUID
					var budget float64
					if err := rows.Scan(&id, &budget); err != nil {
						return err
					}
					c.budgets[id] = append(c.budgets[id], budget)
				}
				return rows.Err()
			}, ids)
	}()

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "brand_unique_niches", `
			SELECT ca.brand_id, COUNT(DISTINCT cn.niche_id)
			FROM campaigns ca
			JOIN campaign_niches cn ON cn.campaign_id = ca.id
			WHERE ca.brand_id = ANY($1) AND ca.status <> 'cancelled'
			GROUP BY ca.brand_id`,
			intCount(c.niches), ids)
	}()

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "brand_selected_influencers", `
			SELECT ca.brand_id, COUNT(*)
			FROM campaigns ca
			JOIN campaign_applications app ON app.campaign_id = ca.id
			WHERE ca.brand_id = ANY($1) AND app.status IN ('selected', 'completed')
			GROUP BY ca.brand_id`,
			intCount(c.selected), ids)
	}()

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "brand_posts", `
			SELECT bp.brand_id, COUNT(*)
			FROM brand_posts bp
			WHERE bp.brand_id = ANY($1)
			GROUP BY bp.brand_id`,
			intCount(c.posts), ids)
	}()

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "brand_followers", `
			SELECT bf.brand_id, COUNT(*)
			FROM brand_followers bf
			WHERE bf.brand_id = ANY($1)
			GROUP BY bf.brand_id`,
			int64Count(c.followers), ids)
	}()

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "brand_following", `
			SELECT bf.brand_id, COUNT(*)
			FROM brand_follows bf
			WHERE bf.brand_id = ANY($1)
			GROUP BY bf.brand_id`,
			int64Count(c.following), ids)
	}()

	wg.Wait()
	return c
}
