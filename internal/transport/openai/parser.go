package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/carprompt/carsearch/internal/domain"
	"github.com/carprompt/carsearch/internal/domain/search/filter"
	"github.com/carprompt/carsearch/internal/metrics"
)

// parseSystemPrompt instructs the model to turn a car query into structured
// filters. The schema mirrors the filter record; the model may use singular
// or plural field names and the decoder accepts both.
const parseSystemPrompt = `You are an expert car search assistant with deep knowledge of automotive
markets and practical car-buying considerations.

Parse the user's natural language car query into structured filters.
Return a JSON object with these fields, omitting any that are not
mentioned or implied:

{
  "make": "Toyota",              // manufacturer
  "model": "Corolla",            // specific model
  "min_year": 2015,
  "max_year": 2023,
  "min_price": 0,
  "max_price": 10000,            // infer from "budget", "cheap", "luxury"
  "max_mileage": 50000,
  "fuel_type": "petrol",         // petrol, diesel, electric, hybrid
  "transmission": "manual",      // manual, automatic
  "body_type": "hatchback",      // hatchback, saloon, suv, estate, coupe, convertible
  "keywords": ["reliable", "fuel efficient"]  // qualities for semantic search
}

Be smart about inferences: "cheap" implies max_price around 8000, "new"
implies min_year of the current year minus 3, "low mileage" implies
max_mileage 30000, "family car" implies keywords like "spacious" and
"practical". Assume the UK market with prices in GBP.

Return only the JSON object.`

// Parser turns free-text prompts into filters via a chat completion in
// JSON mode.
type Parser struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewParser creates an OpenAI-compatible prompt parser.
func NewParser(cfg *Config) *Parser {
	return &Parser{
		client: newClient(cfg),
		model:  cfg.ParseModel,
		logger: cfg.Logger,
	}
}

// Parse implements filter.PromptParser. An empty prompt short-circuits to an
// empty filter without a provider call.
func (p *Parser) Parse(ctx context.Context, text string) (filter.Filter, error) {
	if strings.TrimSpace(text) == "" {
		return filter.Filter{}, nil
	}

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: parseSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.1,
	}

	start := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues("parse", p.model, "error").Inc()
		return filter.Filter{}, fmt.Errorf("parse prompt: %w: %w", domain.ErrParserUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		metrics.AIRequestsTotal.WithLabelValues("parse", p.model, "error").Inc()
		return filter.Filter{}, fmt.Errorf("empty parse response: %w", domain.ErrParserUnavailable)
	}

	metrics.AIRequestsTotal.WithLabelValues("parse", p.model, "success").Inc()
	metrics.AIRequestDuration.WithLabelValues("parse", p.model).Observe(duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		metrics.AITokensTotal.WithLabelValues("parse", p.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.AITokensTotal.WithLabelValues("parse", p.model, "total").Add(float64(resp.Usage.TotalTokens))
	}

	f, err := decodeFilter(resp.Choices[0].Message.Content)
	if err != nil {
		return filter.Filter{}, fmt.Errorf("decode parse response: %w: %w", domain.ErrParserUnavailable, err)
	}
	return f, nil
}

// HealthCheck verifies API availability.
func (p *Parser) HealthCheck(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// filterDTO tolerates the model's schema drift: singular or plural field
// names, numbers where strings belong. Plural arrays contribute their first
// element.
type filterDTO struct {
	Make          string   `json:"make"`
	Makes         []string `json:"makes"`
	Model         string   `json:"model"`
	Models        []string `json:"models"`
	MinYear       *int     `json:"min_year"`
	MaxYear       *int     `json:"max_year"`
	MinPrice      *float64 `json:"min_price"`
	MaxPrice      *float64 `json:"max_price"`
	MaxMileage    *float64 `json:"max_mileage"`
	FuelType      string   `json:"fuel_type"`
	FuelTypes     []string `json:"fuel_types"`
	Transmission  string   `json:"transmission"`
	Transmissions []string `json:"transmissions"`
	BodyType      string   `json:"body_type"`
	BodyTypes     []string `json:"body_types"`
	Keywords      []string `json:"keywords"`
}

// decodeFilter parses the model's JSON answer into a domain filter.
func decodeFilter(content string) (filter.Filter, error) {
	var dto filterDTO
	if err := json.Unmarshal([]byte(content), &dto); err != nil {
		return filter.Filter{}, err
	}

	keywords := make([]string, 0, len(dto.Keywords))
	for _, kw := range dto.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	return filter.Filter{
		Make:         filter.StringPtr(firstOf(dto.Make, dto.Makes)),
		Model:        filter.StringPtr(firstOf(dto.Model, dto.Models)),
		MinPrice:     dto.MinPrice,
		MaxPrice:     dto.MaxPrice,
		MinYear:      dto.MinYear,
		MaxYear:      dto.MaxYear,
		MaxMileage:   dto.MaxMileage,
		FuelType:     filter.StringPtr(firstOf(dto.FuelType, dto.FuelTypes)),
		Transmission: filter.StringPtr(firstOf(dto.Transmission, dto.Transmissions)),
		BodyType:     filter.StringPtr(firstOf(dto.BodyType, dto.BodyTypes)),
		Keywords:     keywords,
	}, nil
}

func firstOf(singular string, plural []string) string {
	if singular != "" {
		return singular
	}
	if len(plural) > 0 {
		return plural[0]
	}
	return ""
}
