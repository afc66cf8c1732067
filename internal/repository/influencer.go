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

// recentPostWindow is the number of latest posts averaged for the
// engagement counters.
const defaultRecentPostWindow = 12

// InfluencerFilters narrows the candidate superset at the SQL level.
// Nil or empty fields impose no constraint.
type InfluencerFilters struct {
	Search         string
	LocationSearch string
	NicheSearch    string
	NicheIDs       []uuid.UUID
	CityIDs        []uuid.UUID
}

type InfluencerRepository struct {
	db               Querier
	logger           *logrus.Logger
	recentPostWindow int
}

func NewInfluencerRepository(db Querier, logger *logrus.Logger, recentPostWindow int) *InfluencerRepository {
	if recentPostWindow <= 0 {
		recentPostWindow = defaultRecentPostWindow
	}
	return &InfluencerRepository{db: db, logger: logger, recentPostWindow: recentPostWindow}
}

// List returns the active influencer superset matching filters, with
// all scoring counters attached. Counter queries run concurrently and
// any that fail leave their counters at zero.
func (r *InfluencerRepository) List(ctx context.Context, filters InfluencerFilters) ([]models.InfluencerCandidate, error) {
	query := `
		SELECT i.id, i.name, i.image_url, i.verified, i.city_id, i.rate_per_post
		FROM influencers i
		WHERE i.active = true`
	args := []interface{}{}

	if filters.Search != "" {
		args = append(args, likePattern(filters.Search))
		query += fmt.Sprintf(" AND LOWER(i.name) LIKE $%d", len(args))
	}
	if filters.LocationSearch != "" {
		args = append(args, likePattern(filters.LocationSearch))
		query += fmt.Sprintf(` AND i.city_id IN (
			SELECT c.id FROM cities c WHERE LOWER(c.name) LIKE $%d)`, len(args))
	}
	if filters.NicheSearch != "" {
		args = append(args, likePattern(filters.NicheSearch))
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM influencer_niches inn
			JOIN niches n ON n.id = inn.niche_id
			WHERE inn.influencer_id = i.id AND LOWER(n.name) LIKE $%d)`, len(args))
	}
	if len(filters.CityIDs) > 0 {
		args = append(args, filters.CityIDs)
		query += fmt.Sprintf(" AND i.city_id = ANY($%d)", len(args))
	}
	if len(filters.NicheIDs) > 0 {
		args = append(args, filters.NicheIDs)
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM influencer_niches inn
			WHERE inn.influencer_id = i.id AND inn.niche_id = ANY($%d))`, len(args))
	}
	query += " ORDER BY i.id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("influencer superset query: %w", err)
	}
	defer rows.Close()

	var candidates []models.InfluencerCandidate
	for rows.Next() {
		var c models.InfluencerCandidate
		if err := rows.Scan(&c.ID, &c.Name, &c.ImageURL, &c.Verified, &c.Metrics.CityID, &c.Metrics.RatePerPost); err != nil {
			return nil, fmt.Errorf("influencer superset scan: %w", err)
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
		m.Followers = counters.followers[id]
		m.PostCount = int64(counters.posts[id])
		m.CompletedCampaigns = counters.completed[id]
		m.Applications = counters.applications[id]
		m.Selected = counters.selected[id]
		m.NicheIDs = counters.niches[id]
		if likes := counters.recentLikes[id]; len(likes) > 0 {
			m.AvgLikes = stat.Mean(likes, nil)
		}
		if m.Followers > 0 {
			m.EngagementRate = m.AvgLikes / float64(m.Followers) * 100
		}
	}
	return candidates, nil
}

type influencerCounters struct {
	followers    map[uuid.UUID]int64
	posts        map[uuid.UUID]int
	recentLikes  map[uuid.UUID][]float64
	applications map[uuid.UUID]int
	selected     map[uuid.UUID]int
	completed    map[uuid.UUID]int
	niches       map[uuid.UUID][]uuid.UUID
}

// fetchCounters fans out the grouped counter queries and waits on a
// single barrier. Each goroutine owns one result map, so no locking is
// needed.
func (r *InfluencerRepository) fetchCounters(ctx context.Context, ids []uuid.UUID) influencerCounters {
	c := influencerCounters{
		followers:    make(map[uuid.UUID]int64),
		posts:        make(map[uuid.UUID]int),
		recentLikes:  make(map[uuid.UUID][]float64),
		applications: make(map[uuid.UUID]int),
		selected:     make(map[uuid.UUID]int),
		completed:    make(map[uuid.UUID]int),
		niches:       make(map[uuid.UUID][]uuid.UUID),
	}

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "influencer_followers", `
			SELECT f.influencer_id, COUNT(*)
			FROM followers f
			WHERE f.influencer_id = ANY($1)
			GROUP BY f.influencer_id`,
			func(rows pgx.Rows) error {
				for rows.Next() {
					var id uuid.UUID
					var n int64
					if err := rows.Scan(&id, &n); err != nil {
						return err
					}
					c.followers[id] = n
				}
				return rows.Err()
			}, ids)
	}()

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "influencer_posts", `
			SELECT p.influencer_id, COUNT(*)
			FROM posts p
			WHERE p.influencer_id = ANY($1)
			GROUP BY p.influencer_id`,
			func(rows pgx.Rows) error {
				for rows.Next() {
					var id uuid.UUID
					var n int
					if err := rows.Scan(&id, &n); err != nil {
						return err
					}
					c.posts[id] = n
				}
				return rows.Err()
			}, ids)
	}()

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "influencer_recent_likes", `
			SELECT ranked.influencer_id, ranked.likes
			FROM (
				SELECT p.influencer_id, p.likes,
				       ROW_NUMBER() OVER (PARTITION BY p.influencer_id ORDER BY p.created_at DESC) AS rn
				FROM posts p
				WHERE p.influencer_id = ANY($1)
			) ranked
			WHERE ranked.rn <= $2`,
			func(rows pgx.Rows) error {
				for rows.Next() {
					var id uuid.UUID
					var likes float64
					if err := rows.Scan(&id, &likes); err != nil {
						return err
					}
					c.recentLikes[id] = append(c.recentLikes[id], likes)
				}
				return rows.Err()
			}, ids, r.recentPostWindow)
	}()

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "influencer_campaign_stats", `
			SELECT ca.influencer_id,
			       COUNT(*),
			       COUNT(*) FILTER (WHERE ca.status = 'selected'),
			       COUNT(*) FILTER (WHERE ca.status = 'completed')
			FROM campaign_applications ca
			WHERE ca.influencer_id = ANY($1)
			GROUP BY ca.influencer_id`,
			func(rows pgx.Rows) error {
				for rows.Next() {
					var id uuid.UUID
					var applied, selected, completed int
					if err := rows.Scan(&id, &applied, &selected, &completed); err != nil {
						return err
					}
					c.applications[id] = applied
					c.selected[id] = selected
					c.completed[id] = completed
				}
				return rows.Err()
			}, ids)
	}()

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "influencer_niches", `
			SELECT inn.influencer_id, inn.niche_id
			FROM influencer_niches inn
			WHERE inn.influencer_id = ANY($1)`,
			func(rows pgx.Rows) error {
				for rows.Next() {
					var id, nicheID uuid.UUID
					if err := rows.Scan(&id, &nicheID); err != nil {
						return err
					}
					c.niches[id] = append(c.niches[id], nicheID)
				}
				return rows.Err()
			}, ids)
	}()

	wg.Wait()
	return c
}
