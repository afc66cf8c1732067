// Package validation holds the JSON schema for the ranking search body.
// Struct tags handle the simple GET endpoints; the POST body is nested
// and schema validation gives callers field-level errors in one pass.
package validation

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const uuidPattern = `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`

var rankingSearchSchema = fmt.Sprintf(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["kind"],
	"additionalProperties": false,
	"properties": {
		"kind": {"type": "string", "enum": ["influencer", "brand", "campaign"]},
		"influencer": {"$ref": "#/definitions/influencerRequest"},
		"brand": {"$ref": "#/definitions/brandRequest"},
		"campaign": {"$ref": "#/definitions/campaignRequest"}
	},
	"definitions": {
		"uuid": {"type": "string", "pattern": "%[1]s"},
		"weight": {"type": "number", "minimum": 0, "maximum": 100},
		"score": {"type": "number", "minimum": 0, "maximum": 100},
		"paging": {
			"page": {"type": "integer", "minimum": 1},
			"limit": {"type": "integer", "minimum": 1, "maximum": 100}
		},
		"influencerRequest": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"searchQuery": {"type": "string", "maxLength": 200},
				"locationSearch": {"type": "string", "maxLength": 200},
				"nicheSearch": {"type": "string", "maxLength": 200},
				"nicheIds": {"type": "array", "items": {"$ref": "#/definitions/uuid"}},
				"cityIds": {"type": "array", "items": {"$ref": "#/definitions/uuid"}},
				"isPanIndia": {"type": "boolean"},
				"minFollowers": {"type": "integer", "minimum": 0},
				"maxFollowers": {"type": "integer", "minimum": 0},
				"minBudget": {"type": "number", "minimum": 0},
				"maxBudget": {"type": "number", "minimum": 0},
				"minScore": {"$ref": "#/definitions/score"},
				"sortBy": {"type": "string", "enum": ["score", "followers"]},
				"page": {"type": "integer", "minimum": 1},
				"limit": {"type": "integer", "minimum": 1, "maximum": 100},
				"nicheMatchWeight": {"$ref": "#/definitions/weight"},
				"engagementRateWeight": {"$ref": "#/definitions/weight"},
				"audienceRelevanceWeight": {"$ref": "#/definitions/weight"},
				"locationMatchWeight": {"$ref": "#/definitions/weight"},
				"pastPerformanceWeight": {"$ref": "#/definitions/weight"},
				"chargesMatchWeight": {"$ref": "#/definitions/weight"}
			}
		},
		"brandRequest": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"searchQuery": {"type": "string", "maxLength": 200},
				"verifiedOnly": {"type": "boolean"},
				"minCampaigns": {"type": "integer", "minimum": 0},
				"minScore": {"$ref": "#/definitions/score"},
				"sortBy": {"type": "string", "enum": ["score", "campaigns", "followers"]},
				"page": {"type": "integer", "minimum": 1},
				"limit": {"type": "integer", "minimum": 1, "maximum": 100}
			}
		},
		"campaignRequest": {
			"type": "object",
			"additionalProperties": false,
			"properties": {
				"searchQuery": {"type": "string", "maxLength": 200},
				"nicheIds": {"type": "array", "items": {"$ref": "#/definitions/uuid"}},
				"cityIds": {"type": "array", "items": {"$ref": "#/definitions/uuid"}},
				"isPanIndia": {"type": "boolean"},
				"verifiedOnly": {"type": "boolean"},
				"minBudget": {"type": "number", "minimum": 0},
				"maxBudget": {"type": "number", "minimum": 0},
				"minScore": {"$ref": "#/definitions/score"},
				"sortBy": {"type": "string", "enum": ["score", "applications"]},
				"page": {"type": "integer", "minimum": 1},
				"limit": {"type": "integer", "minimum": 1, "maximum": 100}
			}
		}
	}
}`, uuidPattern)

// SchemaValidator compiles the request schemas once at startup.
type SchemaValidator struct {
	schemas map[string]*gojsonschema.Schema
}

func NewSchemaValidator() (*SchemaValidator, error) {
	sv := &SchemaValidator{schemas: make(map[string]*gojsonschema.Schema)}

	sources := map[string]string{
		"ranking-search": rankingSearchSchema,
	}
	for name, source := range sources {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		sv.schemas[name] = schema
	}

	return sv, nil
}

// ValidateRankingSearch validates a POST ranking search body.
func (sv *SchemaValidator) ValidateRankingSearch(data interface{}) *ValidationResult {
	return sv.validate("ranking-search", data)
}

func (sv *SchemaValidator) validate(schemaName string, data interface{}) *ValidationResult {
	schema, exists := sv.schemas[schemaName]
	if !exists {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "schema",
				Message: fmt.Sprintf("Schema '%s' not found", schemaName),
				Code:    "SCHEMA_NOT_FOUND",
			}},
		}
	}

	var documentLoader gojsonschema.JSONLoader
	switch v := data.(type) {
	case string:
		documentLoader = gojsonschema.NewStringLoader(v)
	case []byte:
		documentLoader = gojsonschema.NewBytesLoader(v)
	default:
		jsonBytes, err := json.Marshal(data)
		if err != nil {
			return &ValidationResult{
				Valid: false,
				Errors: []ValidationError{{
					Field:   "data",
					Message: fmt.Sprintf("Failed to marshal data to JSON: %v", err),
					Code:    "JSON_MARSHAL_ERROR",
				}},
			}
		}
		documentLoader = gojsonschema.NewBytesLoader(jsonBytes)
	}

	result, err := schema.Validate(documentLoader)
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "validation",
				Message: fmt.Sprintf("Validation error: %v", err),
				Code:    "VALIDATION_ERROR",
			}},
		}
	}

	validationResult := &ValidationResult{
		Valid:  result.Valid(),
		Errors: make([]ValidationError, 0),
	}

	if !result.Valid() {
		for _, err := range result.Errors() {
			validationResult.Errors = append(validationResult.Errors, ValidationError{
				Field:   err.Field(),
				Message: err.Description(),
				Code:    "VALIDATION_ERROR",
				Value:   err.Value(),
			})
		}
	}

	return validationResult
}

// ValidationResult represents the result of a validation operation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Code    string      `json:"code"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", ve.Field, ve.Message)
}

// ToAPIError converts validation errors to the API error envelope.
func (vr *ValidationResult) ToAPIError() map[string]interface{} {
	if vr.Valid {
		return nil
	}

	fieldErrors := make(map[string][]string)
	for _, err := range vr.Errors {
		if err.Field != "" {
			fieldErrors[err.Field] = append(fieldErrors[err.Field], err.Message)
		}
	}

	return map[string]interface{}{
		"error": map[string]interface{}{
			"code":    "VALIDATION_ERROR",
			"message": "Request validation failed",
			"details": map[string]interface{}{
				"validationErrors": vr.Errors,
				"fieldErrors":      fieldErrors,
			},
		},
	}
}
