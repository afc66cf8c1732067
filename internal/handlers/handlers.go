package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/adlume/spotrank/internal/services"
)

type Handlers struct {
	Health   *HealthHandler
	Rankings *RankingsHandler
}

func New(logger *logrus.Logger, services *services.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(logger, services.Health),
		Rankings: NewRankingsHandler(
			services.InfluencerRanking,
			services.BrandRanking,
			services.CampaignRanking,
			logger,
		),
	}
}
