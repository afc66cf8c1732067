package scoring

import (
	"github.com/adlume/spotrank/internal/config"
	"github.com/adlume/spotrank/pkg/models"
)

// Post-score qualification gates. These run after raw metrics are
// gathered but before the batch maxima are computed, so a disqualified
// candidate never inflates a max-relative divisor. Pre-score gates
// (verified, active, not cancelled) live in the repository queries.

// QualifyBrands keeps brands meeting the minimum campaign, niche and
// selection thresholds. Thresholds are strict minimums: a brand with
// exactly MinCampaigns campaigns qualifies.
func QualifyBrands(batch []models.BrandCandidate, gates config.BrandQualification) []models.BrandCandidate {
	qualified := make([]models.BrandCandidate, 0, len(batch))
	for _, b := range batch {
		if b.Metrics.Campaigns < gates.MinCampaigns {
			continue
		}
		if b.Metrics.UniqueNiches < gates.MinUniqueNiches {
			continue
		}
		if b.Metrics.SelectedInfluencers < gates.MinSelectedInfluencers {
			continue
		}
		qualified = append(qualified, b)
	}
	return qualified
}

// QualifyCampaigns keeps campaigns with enough applications and at least
// one deliverable. A campaign failing either gate is excluded no matter
// how strong its other metrics are.
func QualifyCampaigns(batch []models.CampaignCandidate, gates config.CampaignQualification) []models.CampaignCandidate {
	qualified := make([]models.CampaignCandidate, 0, len(batch))
	for _, c := range batch {
		if c.Metrics.Applications < gates.MinApplications {
			continue
		}
		if c.Metrics.Deliverables < gates.MinDeliverables {
			continue
		}
		qualified = append(qualified, c)
	}
	return qualified
}
