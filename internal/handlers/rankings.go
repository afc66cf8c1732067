package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/adlume/spotrank/pkg/models"
)

type influencerRanker interface {
	Rank(ctx context.Context, req *models.InfluencerRankingRequest) (*models.InfluencerRankingResponse, error)
}

type brandRanker interface {
	Rank(ctx context.Context, req *models.BrandRankingRequest) (*models.BrandRankingResponse, error)
}

type campaignRanker interface {
	Rank(ctx context.Context, req *models.CampaignRankingRequest) (*models.CampaignRankingResponse, error)
}

// RankingsHandler serves the three ranking surfaces plus the combined
// POST search endpoint.
type RankingsHandler struct {
	influencers influencerRanker
	brands      brandRanker
	campaigns   campaignRanker
	validate    *validator.Validate
	logger      *logrus.Logger
}

func NewRankingsHandler(
	influencers influencerRanker,
	brands brandRanker,
	campaigns campaignRanker,
	logger *logrus.Logger,
) *RankingsHandler {
	return &RankingsHandler{
		influencers: influencers,
		brands:      brands,
		campaigns:   campaigns,
		validate:    validator.New(),
		logger:      logger,
	}
}

// GetInfluencers handles GET /api/v1/rankings/influencers.
func (h *RankingsHandler) GetInfluencers(c *gin.Context) {
	req := &models.InfluencerRankingRequest{
		SearchQuery:    c.Query("searchQuery"),
		LocationSearch: c.Query("locationSearch"),
		NicheSearch:    c.Query("nicheSearch"),
		IsPanIndia:     c.Query("isPanIndia") == "true",
		SortBy:         c.Query("sortBy"),
		Page:           parseIntQuery(c, "page"),
		Limit:          parseIntQuery(c, "limit"),
	}

	var ok bool
	if req.NicheIDs, ok = parseUUIDList(c, "nicheIds"); !ok {
		return
	}
	if req.CityIDs, ok = parseUUIDList(c, "cityIds"); !ok {
		return
	}

	req.MinFollowers = parseInt64Query(c, "minFollowers")
	req.MaxFollowers = parseInt64Query(c, "maxFollowers")
	req.MinBudget = parseFloatQuery(c, "minBudget")
	req.MaxBudget = parseFloatQuery(c, "maxBudget")
	req.MinScore = parseFloatQuery(c, "minScore")

	req.NicheMatchWeight = parseFloatQuery(c, "nicheMatchWeight")
	req.EngagementRateWeight = parseFloatQuery(c, "engagementRateWeight")
	req.AudienceRelevanceWeight = parseFloatQuery(c, "audienceRelevanceWeight")
	req.LocationMatchWeight = parseFloatQuery(c, "locationMatchWeight")
	req.PastPerformanceWeight = parseFloatQuery(c, "pastPerformanceWeight")
	req.ChargesMatchWeight = parseFloatQuery(c, "chargesMatchWeight")

	if !h.validateRequest(c, req) {
		return
	}

	resp, err := h.influencers.Rank(c.Request.Context(), req)
	if err != nil {
		h.logger.WithError(err).Error("Influencer ranking failed")
		h.rankingError(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetBrands handles GET /api/v1/rankings/brands.
func (h *RankingsHandler) GetBrands(c *gin.Context) {
	req := &models.BrandRankingRequest{
		SearchQuery:  c.Query("searchQuery"),
		VerifiedOnly: c.Query("verifiedOnly") == "true",
		SortBy:       c.Query("sortBy"),
		Page:         parseIntQuery(c, "page"),
		Limit:        parseIntQuery(c, "limit"),
	}

	if minCampaignsStr := c.Query("minCampaigns"); minCampaignsStr != "" {
		if v, err := strconv.Atoi(minCampaignsStr); err == nil && v >= 0 {
			req.MinCampaigns = &v
		}
	}
	req.MinScore = parseFloatQuery(c, "minScore")

	if !h.validateRequest(c, req) {
		return
	}

	resp, err := h.brands.Rank(c.Request.Context(), req)
	if err != nil {
		h.logger.WithError(err).Error("Brand ranking failed")
		h.rankingError(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCampaigns handles GET /api/v1/rankings/campaigns.
func (h *RankingsHandler) GetCampaigns(c *gin.Context) {
	req := &models.CampaignRankingRequest{
		SearchQuery:  c.Query("searchQuery"),
		VerifiedOnly: c.Query("verifiedOnly") == "true",
		SortBy:       c.Query("sortBy"),
		Page:         parseIntQuery(c, "page"),
		Limit:        parseIntQuery(c, "limit"),
	}

	var ok bool
	if req.NicheIDs, ok = parseUUIDList(c, "nicheIds"); !ok {
		return
	}
	if req.CityIDs, ok = parseUUIDList(c, "cityIds"); !ok {
		return
	}

	if panIndiaStr := c.Query("isPanIndia"); panIndiaStr != "" {
		panIndia := panIndiaStr == "true"
		req.IsPanIndia = &panIndia
	}
	req.MinBudget = parseFloatQuery(c, "minBudget")
	req.MaxBudget = parseFloatQuery(c, "maxBudget")
	req.MinScore = parseFloatQuery(c, "minScore")

	if !h.validateRequest(c, req) {
		return
	}

	resp, err := h.campaigns.Rank(c.Request.Context(), req)
	if err != nil {
		h.logger.WithError(err).Error("Campaign ranking failed")
		h.rankingError(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Search handles POST /api/v1/rankings/search. The body has already
// passed schema validation in middleware.
func (h *RankingsHandler) Search(c *gin.Context) {
	var searchReq models.RankingSearchRequest
	if err := c.ShouldBindJSON(&searchReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": "Invalid request body format",
			},
		})
		return
	}

	switch searchReq.Kind {
	case models.KindInfluencer:
		req := searchReq.Influencer
		if req == nil {
			req = &models.InfluencerRankingRequest{}
		}
		resp, err := h.influencers.Rank(c.Request.Context(), req)
		if err != nil {
			h.logger.WithError(err).Error("Influencer ranking failed")
			h.rankingError(c)
			return
		}
		c.JSON(http.StatusOK, resp)

	case models.KindBrand:
		req := searchReq.Brand
		if req == nil {
			req = &models.BrandRankingRequest{}
		}
		resp, err := h.brands.Rank(c.Request.Context(), req)
		if err != nil {
			h.logger.WithError(err).Error("Brand ranking failed")
			h.rankingError(c)
			return
		}
		c.JSON(http.StatusOK, resp)

	case models.KindCampaign:
		req := searchReq.Campaign
		if req == nil {
			req = &models.CampaignRankingRequest{}
		}
		resp, err := h.campaigns.Rank(c.Request.Context(), req)
		if err != nil {
			h.logger.WithError(err).Error("Campaign ranking failed")
			h.rankingError(c)
			return
		}
		c.JSON(http.StatusOK, resp)

	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_KIND",
				"message": "kind must be one of influencer, brand, campaign",
			},
		})
	}
}

func (h *RankingsHandler) validateRequest(c *gin.Context, req interface{}) bool {
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return false
	}
	return true
}

func (h *RankingsHandler) rankingError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    "RANKING_FAILED",
			"message": "Failed to compute ranking",
		},
	})
}

func parseIntQuery(c *gin.Context, name string) int {
	if s := c.Query(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return 0
}

func parseInt64Query(c *gin.Context, name string) *int64 {
	if s := c.Query(name); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &v
		}
	}
	return nil
}

func parseFloatQuery(c *gin.Context, name string) *float64 {
	if s := c.Query(name); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return &v
		}
	}
	return nil
}

// parseUUIDList reads a comma-separated uuid list. Malformed entries
// fail the whole request rather than silently narrowing the filter.
func parseUUIDList(c *gin.Context, name string) ([]uuid.UUID, bool) {
	s := c.Query(name)
	if s == "" {
		return nil, true
	}

	parts := strings.Split(s, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "INVALID_QUERY_PARAM",
					"message": name + " must be a comma-separated list of UUIDs",
				},
			})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
