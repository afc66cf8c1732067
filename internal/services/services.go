package services

import (
	"github.com/sirupsen/logrus"

	"github.com/adlume/spotrank/internal/config"
	"github.com/adlume/spotrank/internal/database"
	"github.com/adlume/spotrank/internal/messaging"
	"github.com/adlume/spotrank/internal/repository"
)

type Services struct {
	Auth              *AuthService
	Health            *HealthService
	RateLimit         *RateLimitService
	Audit             *messaging.RankingAuditPublisher
	InfluencerRanking *InfluencerRankingService
	BrandRanking      *BrandRankingService
	CampaignRanking   *CampaignRankingService
}

func New(cfg *config.Config, logger *logrus.Logger, db *database.Database) (*Services, error) {
	authService := NewAuthService(cfg, logger, db.Redis)
	healthService := NewHealthService(cfg, logger, db)
	rateLimitService := NewRateLimitService(cfg, logger, db.Redis)

	audit := messaging.NewRankingAuditPublisher(cfg, logger)
	metrics := NewRankingMetrics(logger)

	influencerRepo := repository.NewInfluencerRepository(db.PG, logger, cfg.Scoring.RecentPostWindow)
	brandRepo := repository.NewBrandRepository(db.PG, logger)
	campaignRepo := repository.NewCampaignRepository(db.PG, logger)

	return &Services{
		Auth:              authService,
		Health:            healthService,
		RateLimit:         rateLimitService,
		Audit:             audit,
		InfluencerRanking: NewInfluencerRankingService(influencerRepo, cfg, audit, metrics, logger),
		BrandRanking:      NewBrandRankingService(brandRepo, cfg, audit, metrics, logger),
		CampaignRanking:   NewCampaignRankingService(campaignRepo, cfg, audit, metrics, logger),
	}, nil
}
