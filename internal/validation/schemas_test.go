package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidator_RankingSearch(t *testing.T) {
	sv, err := NewSchemaValidator()
	require.NoError(t, err)

	t.Run("valid influencer search", func(t *testing.T) {
		body := `{
			"kind": "influencer",
			"influencer": {
				"searchQuery": "fitness",
				"nicheIds": ["4fa85f64-5717-4562-b3fc-2c963f66afa6"],
				"minFollowers": 1000,
				"sortBy": "score",
				"page": 1,
				"limit": 20,
				"engagementRateWeight": 40
			}
		}`
		result := sv.ValidateRankingSearch(body)
		assert.True(t, result.Valid, "errors: %v", result.Errors)
	})

	t.Run("missing kind", func(t *testing.T) {
		result := sv.ValidateRankingSearch(`{"influencer": {}}`)
		assert.False(t, result.Valid)
	})

	t.Run("unknown kind", func(t *testing.T) {
		result := sv.ValidateRankingSearch(`{"kind": "agency"}`)
		assert.False(t, result.Valid)
	})

	t.Run("weight out of range", func(t *testing.T) {
		result := sv.ValidateRankingSearch(`{
			"kind": "influencer",
			"influencer": {"nicheMatchWeight": 120}
		}`)
		assert.False(t, result.Valid)
	})

	t.Run("malformed uuid in filter", func(t *testing.T) {
		result := sv.ValidateRankingSearch(`{
			"kind": "campaign",
			"campaign": {"nicheIds": ["not-a-uuid"]}
		}`)
		assert.False(t, result.Valid)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		result := sv.ValidateRankingSearch(`{
			"kind": "brand",
			"brand": {"unexpected": true}
		}`)
		assert.False(t, result.Valid)
	})

	t.Run("limit above cap", func(t *testing.T) {
		result := sv.ValidateRankingSearch(`{
			"kind": "brand",
			"brand": {"limit": 500}
		}`)
		assert.False(t, result.Valid)
	})

	t.Run("api error envelope carries field errors", func(t *testing.T) {
		result := sv.ValidateRankingSearch(`{"kind": "agency"}`)
		require.False(t, result.Valid)

		apiErr := result.ToAPIError()
		require.NotNil(t, apiErr)
		errBody, ok := apiErr["error"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
	})
}
