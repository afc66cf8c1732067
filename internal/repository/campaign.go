package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/adlume/spotrank/pkg/models"
)

// CampaignFilters narrows the campaign superset. Cancelled campaigns
// are always excluded.
type CampaignFilters struct {
	Search       string
	VerifiedOnly bool
	BrandIDs     []uuid.UUID
	NicheIDs     []uuid.UUID
	CityIDs      []uuid.UUID
	MinBudget    *float64
	MaxBudget    *float64
}

type CampaignRepository struct {
	db     Querier
	logger *logrus.Logger
	now    func() time.Time
}

func NewCampaignRepository(db Querier, logger *logrus.Logger) *CampaignRepository {
	return &CampaignRepository{db: db, logger: logger, now: time.Now}
}

// List returns the campaign superset with scoring counters attached.
// Launch and activity recency are converted to whole days here so the
// scoring layer never touches timestamps.
func (r *CampaignRepository) List(ctx context.Context, filters CampaignFilters) ([]models.CampaignCandidate, error) {
	query := `
		SELECT c.id, c.brand_id, c.title, c.image_url, b.name,
		       c.total_budget, c.required_influencers, c.pan_india, c.launched_at
		FROM campaigns c
		JOIN brands b ON b.id = c.brand_id
		WHERE c.status <> 'cancelled'`
	args := []interface{}{}

	if filters.VerifiedOnly {
		query += " AND b.verified = true"
	}
	if filters.Search != "" {
		args = append(args, likePattern(filters.Search))
		query += fmt.Sprintf(" AND (LOWER(c.title) LIKE $%d OR LOWER(b.name) LIKE $%d)", len(args), len(args))
	}
	if len(filters.BrandIDs) > 0 {
		args = append(args, filters.BrandIDs)
		query += fmt.Sprintf(" AND c.brand_id = ANY($%d)", len(args))
	}
	if filters.MinBudget != nil {
		args = append(args, *filters.MinBudget)
		query += fmt.Sprintf(" AND c.total_budget >= $%d", len(args))
	}
	if filters.MaxBudget != nil {
		args = append(args, *filters.MaxBudget)
		query += fmt.Sprintf(" AND c.total_budget <= $%d", len(args))
	}
	if len(filters.CityIDs) > 0 {
		args = append(args, filters.CityIDs)
		query += fmt.Sprintf(` AND (c.pan_india = true OR EXISTS (
			SELECT 1 FROM campaign_cities cc
			WHERE cc.campaign_id = c.id AND cc.city_id = ANY($%d)))`, len(args))
	}
	if len(filters.NicheIDs) > 0 {
		args = append(args, filters.NicheIDs)
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM campaign_niches cn
			WHERE cn.campaign_id = c.id AND cn.niche_id = ANY($%d))`, len(args))
	}
	query += " ORDER BY c.id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("campaign superset query: %w", err)
	}
	defer rows.Close()

	now := r.now()
	var candidates []models.CampaignCandidate
	for rows.Next() {
		var c models.CampaignCandidate
		var launchedAt *time.Time
		if err := rows.Scan(&c.ID, &c.BrandID, &c.Title, &c.ImageURL, &c.BrandName,
			&c.Metrics.TotalBudget, &c.Metrics.RequiredInfluencers, &c.Metrics.PanIndia, &launchedAt); err != nil {
			return nil, fmt.Errorf("campaign superset scan: %w", err)
		}
		if launchedAt != nil {
			c.Metrics.DaysSinceLaunch = daysSince(now, *launchedAt)
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
		m.Applications = counters.applications[id]
		m.Selected = counters.selected[id]
		m.Deliverables = counters.deliverables[id]
		m.CityCount = counters.cities[id]
		m.NicheCount = counters.niches[id]
		if last, ok := counters.lastActivity[id]; ok {
			m.DaysSinceLastActivity = daysSince(now, last)
		} else {
			// No applications yet, fall back to launch age so the
			// activity recency score decays from launch.
			m.DaysSinceLastActivity = m.DaysSinceLaunch
		}
		if followers := counters.applicantFollowers[id]; len(followers) > 0 {
			m.AvgApplicantFollowers = stat.Mean(followers, nil)
		}
	}
	return candidates, nil
}

func daysSince(now, t time.Time) float64 {
	d := now.Sub(t).Hours() / 24
	if d < 0 {
		return 0
	}
	return float64(int(d))
}

type campaignCounters struct {
	applications       map[uuid.UUID]int
	selected           map[uuid.UUID]int
	lastActivity       map[uuid.UUID]time.Time
	deliverables       map[uuid.UUID]int
	cities             map[uuid.UUID]int
	niches             map[uuid.UUID]int
	applicantFollowers map[uuid.UUID][]float64
}

func (r *CampaignRepository) fetchCounters(ctx context.Context, ids []uuid.UUID) campaignCounters {
	c := campaignCounters{
		applications:       make(map[uuid.UUID]int),
		selected:           make(map[uuid.UUID]int),
		lastActivity:       make(map[uuid.UUID]time.Time),
		deliverables:       make(map[uuid.UUID]int),
		cities:             make(map[uuid.UUID]int),
		niches:             make(map[uuid.UUID]int),
		applicantFollowers: make(map[uuid.UUID][]float64),
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

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "campaign_applications", `
			SELECT ca.campaign_id,
			       COUNT(*),
			       COUNT(*) FILTER (WHERE ca.status IN ('selected', 'completed')),
			       MAX(ca.created_at)
			FROM campaign_applications ca
			WHERE ca.campaign_id = ANY($1)
			GROUP BY ca.campaign_id`,
			func(rows pgx.Rows) error {
				for rows.Next() {
					var id uuid.UUID
					var applied, selected int
					var last time.Time
					if err := rows.Scan(&id, &applied, &selected, &last); err != nil {
						return err
					}
					c.applications[id] = applied
					c.selected[id] = selected
					c.lastActivity[id] = last
				}
				return rows.Err()
			}, ids)
	}()

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "campaign_applicant_followers", `
			SELECT ca.campaign_id, ca.influencer_id, COUNT(f.influencer_id)
			FROM campaign_applications ca
			LEFT JOIN followers f ON f.influencer_id = ca.influencer_id
			WHERE ca.campaign_id = ANY($1)
			GROUP BY ca.campaign_id, ca.influencer_id`,
			func(rows pgx.Rows) error {
				for rows.Next() {
					var id, influencerID uuid.UUID
					var n float64
					if err := rows.Scan(&id, &influencerID, &n); err != nil {
						return err
					}
					c.applicantFollowers[id] = append(c.applicantFollowers[id], n)
				}
				return rows.Err()
			}, ids)
	}()

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "campaign_deliverables", `
			SELECT cd.campaign_id, COUNT(*)
			FROM campaign_deliverables cd
			WHERE cd.campaign_id = ANY($1)
			GROUP BY cd.campaign_id`,
			intCount(c.deliverables), ids)
	}()

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "campaign_cities", `
			SELECT cc.campaign_id, COUNT(*)
			FROM campaign_cities cc
			WHERE cc.campaign_id = ANY($1)
			GROUP BY cc.campaign_id`,
			intCount(c.cities), ids)
	}()

	go func() {
		defer wg.Done()
		counterQuery(ctx, r.db, r.logger, "campaign_niches", `
			SELECT cn.campaign_id, COUNT(*)
			FROM campaign_niches cn
			WHERE cn.campaign_id = ANY($1)
			GROUP BY cn.campaign_id`,
			intCount(c.niches), ids)
	}()

	wg.Wait()
	return c
}
