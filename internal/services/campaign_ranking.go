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

type campaignLister interface {
	List(ctx context.Context, filters repository.CampaignFilters) ([]models.CampaignCandidate, error)
}

// CampaignRankingService runs the top-campaigns pipeline: extract,
// qualify, batch-score, filter, rank, paginate.
type CampaignRankingService struct {
	repo    campaignLister
	scorer  *scoring.CampaignScorer
	gates   config.CampaignQualification
	audit   auditPublisher
	metrics *RankingMetrics
	logger  *logrus.Logger
}

func NewCampaignRankingService(
	repo campaignLister,
	cfg *config.Config,
	audit auditPublisher,
	metrics *RankingMetrics,
	logger *logrus.Logger,
) *CampaignRankingService {
	return &CampaignRankingService{
		repo:    repo,
		scorer:  scoring.NewCampaignScorer(cfg.Scoring.CampaignWeights, cfg.Scoring.ActivityWindow),
		gates:   cfg.Scoring.CampaignGates,
		audit:   audit,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *CampaignRankingService) Rank(ctx context.Context, req *models.CampaignRankingRequest) (*models.CampaignRankingResponse, error) {
	start := time.Now()
	page, limit := normalizePaging(req.Page, req.Limit)
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = models.SortByScore
	}

	candidates, err := s.repo.List(ctx, repository.CampaignFilters{
		Search:       req.SearchQuery,
		VerifiedOnly: req.VerifiedOnly,
		NicheIDs:     req.NicheIDs,
		CityIDs:      req.CityIDs,
		MinBudget:    req.MinBudget,
		MaxBudget:    req.MaxBudget,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveFailure(string(models.KindCampaign))
		}
		return nil, fmt.Errorf("campaign ranking: %w", err)
	}
	extracted := len(candidates)

	if req.IsPanIndia != nil {
		filtered := candidates[:0]
		for _, c := range candidates {
			if c.Metrics.PanIndia == *req.IsPanIndia {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}

	qualified := scoring.QualifyCampaigns(candidates, s.gates)
	scored := s.scorer.ScoreBatch(qualified)

	ranked := make([]models.RankedCampaign, 0, len(scored))
	for _, sc := range scored {
		if req.MinScore != nil && sc.Composite < *req.MinScore {
			continue
		}
		ranked = append(ranked, models.RankedCampaign{
			ID:             sc.Candidate.ID,
			BrandID:        sc.Candidate.BrandID,
			Title:          sc.Candidate.Title,
			ImageURL:       sc.Candidate.ImageURL,
			BrandName:      sc.Candidate.BrandName,
			Applications:   sc.Candidate.Metrics.Applications,
			Selected:       sc.Candidate.Metrics.Selected,
			TotalBudget:    sc.Candidate.Metrics.TotalBudget,
			Deliverables:   sc.Candidate.Metrics.Deliverables,
			PanIndia:       sc.Candidate.Metrics.PanIndia,
			SubScores:      sc.SubScores,
			CompositeScore: sc.Composite,
		})
	}

	scoring.SortRanked(ranked,
		func(r models.RankedCampaign) float64 {
			switch sortBy {
			case models.SortByApplications:
				return float64(r.Applications)
			default:
				return r.CompositeScore
			}
		},
		func(r models.RankedCampaign) string { return r.ID.String() },
	)

	items, pagination := scoring.Paginate(ranked, page, limit)

	duration := time.Since(start)
	s.logger.WithFields(logrus.Fields{
		"kind":      models.KindCampaign,
		"extracted": extracted,
		"qualified": len(qualified),
		"ranked":    len(ranked),
		"duration":  duration,
	}).Debug("Campaign ranking served")

	if s.metrics != nil {
		s.metrics.ObserveRequest(string(models.KindCampaign), extracted, len(qualified), pagination.Total, duration)
	}
	if s.audit != nil {
		s.audit.Publish(ctx, messaging.RankingAuditEvent{
			Kind:        string(models.KindCampaign),
			RequestID:   uuid.New().String(),
			SortBy:      sortBy,
			Page:        page,
			Limit:       limit,
			ResultTotal: pagination.Total,
			DurationMs:  duration.Milliseconds(),
		})
	}

	return &models.CampaignRankingResponse{
		Items:      items,
		Pagination: pagination,
	}, nil
}
