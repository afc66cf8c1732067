package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/adlume/spotrank/internal/config"
	"github.com/adlume/spotrank/internal/messaging"
	"github.com/adlume/spotrank/internal/repository"
	"github.com/adlume/spotrank/internal/scoring"
	"github.com/adlume/spotrank/pkg/models"
)

type influencerLister interface {
	List(ctx context.Context, filters repository.InfluencerFilters) ([]models.InfluencerCandidate, error)
}

// InfluencerRankingService runs the top-influencers pipeline: extract,
// score, filter, rank, paginate.
type InfluencerRankingService struct {
	repo    influencerLister
	scorer  *scoring.InfluencerScorer
	weights config.InfluencerWeightConfig
	audit   auditPublisher
	metrics *RankingMetrics
	logger  *logrus.Logger
}

func NewInfluencerRankingService(
	repo influencerLister,
	cfg *config.Config,
	audit auditPublisher,
	metrics *RankingMetrics,
	logger *logrus.Logger,
) *InfluencerRankingService {
	return &InfluencerRankingService{
		repo:    repo,
		scorer:  scoring.NewInfluencerScorer(cfg.Scoring.Tiers),
		weights: cfg.Scoring.InfluencerWeights,
		audit:   audit,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *InfluencerRankingService) Rank(ctx context.Context, req *models.InfluencerRankingRequest) (*models.InfluencerRankingResponse, error) {
	start := time.Now()
	page, limit := normalizePaging(req.Page, req.Limit)
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = models.SortByScore
	}

	candidates, err := s.repo.List(ctx, repository.InfluencerFilters{
		Search:         req.SearchQuery,
		LocationSearch: req.LocationSearch,
		NicheSearch:    req.NicheSearch,
		NicheIDs:       req.NicheIDs,
		CityIDs:        req.CityIDs,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveFailure(string(models.KindInfluencer))
		}
		return nil, fmt.Errorf("influencer ranking: %w", err)
	}
	extracted := len(candidates)

	// Follower bounds come from a counter table, so they cannot be
	// pushed into the superset query.
	candidates = filterFollowerRange(candidates, req.MinFollowers, req.MaxFollowers)

	weights := scoring.ResolveInfluencerWeights(s.weights, req)
	rc := scoring.InfluencerContext{
		TargetNicheIDs: req.NicheIDs,
		TargetCityIDs:  req.CityIDs,
		PanIndia:       req.IsPanIndia,
		MinBudget:      req.MinBudget,
		MaxBudget:      req.MaxBudget,
	}

	ranked := make([]models.RankedInfluencer, 0, len(candidates))
	for _, c := range candidates {
		sub, composite := s.scorer.Score(c.Metrics, rc, weights)
		if req.MinScore != nil && composite < *req.MinScore {
			continue
		}
		ranked = append(ranked, models.RankedInfluencer{
			ID:             c.ID,
			Name:           c.Name,
			ImageURL:       c.ImageURL,
			Verified:       c.Verified,
			Followers:      c.Metrics.Followers,
			EngagementRate: c.Metrics.EngagementRate,
			RatePerPost:    c.Metrics.RatePerPost,
			SubScores:      sub,
			CompositeScore: composite,
			Tier:           s.scorer.Tier(composite),
		})
	}

	scoring.SortRanked(ranked,
		func(r models.RankedInfluencer) float64 {
			switch sortBy {
			case models.SortByFollowers:
				return float64(r.Followers)
			default:
				return r.CompositeScore
			}
		},
		func(r models.RankedInfluencer) string { return r.ID.String() },
	)

	items, pagination := scoring.Paginate(ranked, page, limit)

	duration := time.Since(start)
	s.logger.WithFields(logrus.Fields{
		"kind":      models.KindInfluencer,
		"extracted": extracted,
		"ranked":    len(ranked),
		"page":      page,
		"duration":  duration,
	}).Debug("Influencer ranking served")

	if s.metrics != nil {
		s.metrics.ObserveRequest(string(models.KindInfluencer), extracted, len(ranked), pagination.Total, duration)
	}
	if s.audit != nil {
		s.audit.Publish(ctx, messaging.RankingAuditEvent{
			Kind:        string(models.KindInfluencer),
			RequestID:   uuid.New().String(),
			SortBy:      sortBy,
			Page:        page,
			Limit:       limit,
			ResultTotal: pagination.Total,
			DurationMs:  duration.Milliseconds(),
		})
	}

	return &models.InfluencerRankingResponse{
		Items:          items,
		Pagination:     pagination,
		AppliedWeights: weights,
	}, nil
}

func filterFollowerRange(candidates []models.InfluencerCandidate, min, max *int64) []models.InfluencerCandidate {
	if min == nil && max == nil {
		return candidates
	}
	filtered := candidates[:0]
	for _, c := range candidates {
		if min != nil && c.Metrics.Followers < *min {
			continue
		}
		if max != nil && c.Metrics.Followers > *max {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}
