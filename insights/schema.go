// ABOUTME: Declared response schema for audit replies
// ABOUTME: Sent to the model as a genai.Schema and reused for local validation
package insights

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"
)

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func arrayOf(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

func scalar(t genai.Type) *genai.Schema {
	return &genai.Schema{Type: t}
}

func rateSchema() *genai.Schema {
	return object(map[string]*genai.Schema{
		"currentValue":    scalar(genai.TypeNumber),
		"comparisonValue": scalar(genai.TypeString),
		"isPositive":      scalar(genai.TypeBoolean),
	}, "currentValue", "comparisonValue", "isPositive")
}

func personaSchema() *genai.Schema {
	return object(map[string]*genai.Schema{
		"traits":     arrayOf(scalar(genai.TypeString)),
		"background": scalar(genai.TypeString),
		"seniority":  scalar(genai.TypeString),
		"summary":    scalar(genai.TypeString),
	})
}

// ResponseSchema returns a fresh copy of the audit reply schema.
func ResponseSchema() *genai.Schema {
	return object(map[string]*genai.Schema{
		"funnel": object(map[string]*genai.Schema{
			"sent":         scalar(genai.TypeInteger),
			"responded":    scalar(genai.TypeInteger),
			"coffee":       scalar(genai.TypeInteger),
			"responseRate": rateSchema(),
			"coffeeRate":   rateSchema(),
		}, "sent", "responded", "coffee", "responseRate", "coffeeRate"),
		"personas": object(map[string]*genai.Schema{
			"success":       personaSchema(),
			"failure":       personaSchema(),
			"driftAnalysis": scalar(genai.TypeString),
		}),
		"featureHitRates": arrayOf(object(map[string]*genai.Schema{
			"name":        scalar(genai.TypeString),
			"percentage":  scalar(genai.TypeNumber),
			"description": scalar(genai.TypeString),
		})),
		"keywords": object(map[string]*genai.Schema{
			"myThoughts":     arrayOf(scalar(genai.TypeString)),
			"theirInfo":      arrayOf(scalar(genai.TypeString)),
			"evolutionNotes": scalar(genai.TypeString),
		}),
		"altruism": object(map[string]*genai.Schema{
			"helpCount":              scalar(genai.TypeInteger),
			"momentumScore":          scalar(genai.TypeInteger),
			"summary":                scalar(genai.TypeString),
			"topRecipientCategories": arrayOf(scalar(genai.TypeString)),
		}),
	}, "funnel", "personas", "featureHitRates", "keywords", "altruism")
}

// JSONSchema converts a genai schema into a JSON Schema document.
func JSONSchema(s *genai.Schema) map[string]any {
	out := map[string]any{}
	if s == nil {
		return out
	}
	if s.Type != "" {
		out["type"] = strings.ToLower(string(s.Type))
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = JSONSchema(p)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		required := make([]any, len(s.Required))
		for i, r := range s.Required {
			required[i] = r
		}
		out["required"] = required
	}
	if s.Items != nil {
		out["items"] = JSONSchema(s.Items)
	}
	return out
}

var (
	replySchemaOnce sync.Once
	replySchema     *gojsonschema.Schema
	replySchemaErr  error
)

func compiledReplySchema() (*gojsonschema.Schema, error) {
	replySchemaOnce.Do(func() {
		loader := gojsonschema.NewGoLoader(JSONSchema(ResponseSchema()))
		replySchema, replySchemaErr = gojsonschema.NewSchema(loader)
	})
	return replySchema, replySchemaErr
}

// ValidateReply checks raw reply text against the response schema.
func ValidateReply(text string) error {
	schema, err := compiledReplySchema()
	if err != nil {
		return fmt.Errorf("failed to compile response schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(text))
	if err != nil {
		return fmt.Errorf("reply is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		msgs = append(msgs, field+": "+desc.Description())
	}
	return fmt.Errorf("reply violates response schema: %s", strings.Join(msgs, "; "))
}
