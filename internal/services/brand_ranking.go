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

type brandLister interface {
	List(ctx context.Context, filters repository.BrandFilters) ([]models.BrandCandidate, error)
}

// BrandRankingService runs the top-brands pipeline. Brands are gated by
// qualification minimums before scoring, so the max-relative maxima are
// computed over qualified candidates only.
type BrandRankingService struct {
	repo    brandLister
	gates   config.BrandQualification
	audit   auditPublisher
	metrics *RankingMetrics
	logger  *logrus.Logger
}

func NewBrandRankingService(
	repo brandLister,
	cfg *config.Config,
	audit auditPublisher,
	metrics *RankingMetrics,
	logger *logrus.Logger,
) *BrandRankingService {
	return &BrandRankingService{
		repo:    repo,
		gates:   cfg.Scoring.BrandGates,
		audit:   audit,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *BrandRankingService) Rank(ctx context.Context, req *models.BrandRankingRequest) (*models.BrandRankingResponse, error) {
	start := time.Now()
	page, limit := normalizePaging(req.Page, req.Limit)
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = models.SortByScore
	}

	candidates, err := s.repo.List(ctx, repository.BrandFilters{
		Search:       req.SearchQuery,
		VerifiedOnly: req.VerifiedOnly,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveFailure(string(models.KindBrand))
		}
		return nil, fmt.Errorf("brand ranking: %w", err)
	}
	extracted := len(candidates)

	qualified := scoring.QualifyBrands(candidates, s.gates)
	scored := scoring.ScoreBrands(qualified)

	ranked := make([]models.RankedBrand, 0, len(scored))
	for _, sb := range scored {
		if req.MinScore != nil && sb.Composite < *req.MinScore {
			continue
		}
		if req.MinCampaigns != nil && sb.Candidate.Metrics.Campaigns < *req.MinCampaigns {
			continue
		}
		ranked = append(ranked, models.RankedBrand{
			ID:                  sb.Candidate.ID,
			Name:                sb.Candidate.Name,
			ImageURL:            sb.Candidate.ImageURL,
			Verified:            sb.Candidate.Verified,
			Campaigns:           sb.Candidate.Metrics.Campaigns,
			UniqueNiches:        sb.Candidate.Metrics.UniqueNiches,
			SelectedInfluencers: sb.Candidate.Metrics.SelectedInfluencers,
			AvgPayout:           sb.Candidate.Metrics.AvgPayout,
			Followers:           sb.Candidate.Metrics.Followers,
			SubScores:           sb.SubScores,
			CompositeScore:      sb.Composite,
		})
	}

	scoring.SortRanked(ranked,
		func(r models.RankedBrand) float64 {
			switch sortBy {
			case models.SortByCampaigns:
				return float64(r.Campaigns)
			case models.SortByFollowers:
				return float64(r.Followers)
			default:
				return r.CompositeScore
			}
		},
		func(r models.RankedBrand) string { return r.ID.String() },
	)

	items, pagination := scoring.Paginate(ranked, page, limit)

	duration := time.Since(start)
	s.logger.WithFields(logrus.Fields{
		"kind":      models.KindBrand,
		"extracted": extracted,
		"qualified": len(qualified),
		"ranked":    len(ranked),
		"duration":  duration,
	}).Debug("Brand ranking served")

	if s.metrics != nil {
		s.metrics.ObserveRequest(string(models.KindBrand), extracted, len(qualified), pagination.Total, duration)
	}
	if s.audit != nil {
		s.audit.Publish(ctx, messaging.RankingAuditEvent{
			Kind:        string(models.KindBrand),
			RequestID:   uuid.New().String(),
			SortBy:      sortBy,
			Page:        page,
			Limit:       limit,
			ResultTotal: pagination.Total,
			DurationMs:  duration.Milliseconds(),
		})
	}

	return &models.BrandRankingResponse{
		Items:      items,
		Pagination: pagination,
	}, nil
}
