package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Security   SecurityConfig   `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int           `mapstructure:"max_connections"`
	MaxIdleTime    time.Duration `mapstructure:"max_idle_time"`
	MaxLifetime    time.Duration `mapstructure:"max_lifetime"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	URL        string        `mapstructure:"url"`
	MaxRetries int           `mapstructure:"max_retries"`
	PoolSize   int           `mapstructure:"pool_size"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topics  struct {
		RankingAudit string `mapstructure:"ranking_audit"`
	} `mapstructure:"topics"`
}

type AuthConfig struct {
	JWTSecret string          `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration   `mapstructure:"token_ttl"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Default int           `mapstructure:"default"`
	Admin   int           `mapstructure:"admin"`
	Window  time.Duration `mapstructure:"window"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ScoringConfig names every policy constant the scoring engine uses, so
// qualification gates and tier boundaries are tunable without touching
// the algorithm.
type ScoringConfig struct {
	InfluencerWeights InfluencerWeightConfig  `mapstructure:"influencer_weights"`
	CampaignWeights   CampaignWeightConfig    `mapstructure:"campaign_weights"`
	BrandGates        BrandQualification      `mapstructure:"brand_gates"`
	CampaignGates     CampaignQualification   `mapstructure:"campaign_gates"`
	Tiers             RecommendationTierBands `mapstructure:"tiers"`
	ActivityWindow    int                     `mapstructure:"activity_window_days"`
	RecentPostWindow  int                     `mapstructure:"recent_post_window"`
}

// InfluencerWeightConfig holds the default six-dimension weight vector.
// Callers may override any weight per request.
type InfluencerWeightConfig struct {
	NicheMatch        float64 `mapstructure:"niche_match"`
	EngagementRate    float64 `mapstructure:"engagement_rate"`
	AudienceRelevance float64 `mapstructure:"audience_relevance"`
	LocationMatch     float64 `mapstructure:"location_match"`
	PastPerformance   float64 `mapstructure:"past_performance"`
	ChargesMatch      float64 `mapstructure:"charges_match"`
}

// CampaignWeightConfig holds the fixed eleven-dimension weight vector.
type CampaignWeightConfig struct {
	Applications         float64 `mapstructure:"applications"`
	ConversionRate       float64 `mapstructure:"conversion_rate"`
	ApplicantQuality     float64 `mapstructure:"applicant_quality"`
	TotalBudget          float64 `mapstructure:"total_budget"`
	BudgetPerDeliverable float64 `mapstructure:"budget_per_deliverable"`
	GeographicReach      float64 `mapstructure:"geographic_reach"`
	Niches               float64 `mapstructure:"niches"`
	SelectedInfluencers  float64 `mapstructure:"selected_influencers"`
	CompletionRate       float64 `mapstructure:"completion_rate"`
	LaunchRecency        float64 `mapstructure:"launch_recency"`
	ActivityRecency      float64 `mapstructure:"activity_recency"`
}

// BrandQualification is the post-score gate a brand must pass before it
// enters the top-brands batch.
type BrandQualification struct {
	MinCampaigns           int `mapstructure:"min_campaigns"`
	MinUniqueNiches        int `mapstructure:"min_unique_niches"`
	MinSelectedInfluencers int `mapstructure:"min_selected_influencers"`
}

// CampaignQualification is the post-score gate for top-campaigns.
type CampaignQualification struct {
	MinApplications int `mapstructure:"min_applications"`
	MinDeliverables int `mapstructure:"min_deliverables"`
}

// RecommendationTierBands are the composite-score boundaries for the
// influencer recommendation labels.
type RecommendationTierBands struct {
	HighlyRecommended float64 `mapstructure:"highly_recommended"`
	Recommended       float64 `mapstructure:"recommended"`
	Consider          float64 `mapstructure:"consider"`
}

type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "development")

	// Database defaults
	viper.SetDefault("database.max_connections", 25)
	viper.SetDefault("database.max_idle_time", "15m")
	viper.SetDefault("database.max_lifetime", "1h")
	viper.SetDefault("database.connect_timeout", "10s")

	// Redis defaults
	viper.SetDefault("redis.url", "localhost:6379")
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.timeout", "5s")

	// Kafka defaults
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.topics.ranking_audit", "ranking-audit")

	// Auth defaults
	viper.SetDefault("auth.token_ttl", "24h")
	viper.SetDefault("auth.rate_limit.default", 1000)
	viper.SetDefault("auth.rate_limit.admin", 10000)
	viper.SetDefault("auth.rate_limit.window", "1h")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Influencer weight defaults
	viper.SetDefault("scoring.influencer_weights.niche_match", 30.0)
	viper.SetDefault("scoring.influencer_weights.engagement_rate", 25.0)
	viper.SetDefault("scoring.influencer_weights.audience_relevance", 15.0)
	viper.SetDefault("scoring.influencer_weights.location_match", 15.0)
	viper.SetDefault("scoring.influencer_weights.past_performance", 10.0)
	viper.SetDefault("scoring.influencer_weights.charges_match", 5.0)

	// Campaign weight defaults, fixed vector summing to 100
	viper.SetDefault("scoring.campaign_weights.applications", 10.0)
	viper.SetDefault("scoring.campaign_weights.conversion_rate", 15.0)
	viper.SetDefault("scoring.campaign_weights.applicant_quality", 5.0)
	viper.SetDefault("scoring.campaign_weights.total_budget", 10.0)
	viper.SetDefault("scoring.campaign_weights.budget_per_deliverable", 10.0)
	viper.SetDefault("scoring.campaign_weights.geographic_reach", 8.0)
	viper.SetDefault("scoring.campaign_weights.niches", 7.0)
	viper.SetDefault("scoring.campaign_weights.selected_influencers", 15.0)
	viper.SetDefault("scoring.campaign_weights.completion_rate", 10.0)
	viper.SetDefault("scoring.campaign_weights.launch_recency", 5.0)
	viper.SetDefault("scoring.campaign_weights.activity_recency", 5.0)

	// Qualification gates
	viper.SetDefault("scoring.brand_gates.min_campaigns", 2)
	viper.SetDefault("scoring.brand_gates.min_unique_niches", 2)
	viper.SetDefault("scoring.brand_gates.min_selected_influencers", 1)
	viper.SetDefault("scoring.campaign_gates.min_applications", 3)
	viper.SetDefault("scoring.campaign_gates.min_deliverables", 1)

	// Recommendation tier boundaries
	viper.SetDefault("scoring.tiers.highly_recommended", 80.0)
	viper.SetDefault("scoring.tiers.recommended", 60.0)
	viper.SetDefault("scoring.tiers.consider", 40.0)

	// Activity recency lookback cap and engagement post sample size
	viper.SetDefault("scoring.activity_window_days", 30)
	viper.SetDefault("scoring.recent_post_window", 10)

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")

	// Security defaults
	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"*"})
}
