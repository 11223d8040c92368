package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

var tracer = otel.Tracer("agromarket-service/genai")

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Suggester asks Gemini for structured selling terms.
type Suggester struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	logger  *logger.Logger
}

var _ domain.SuggestionGenerator = (*Suggester)(nil)

func NewSuggester(ctx context.Context, apiKey, model string, timeout time.Duration, log *logger.Logger) (*Suggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newSuggester(client.Models, model, timeout, log), nil
}

func newSuggester(models contentGenerator, model string, timeout time.Duration, log *logger.Logger) *Suggester {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Suggester{models: models, model: model, timeout: timeout, logger: log.Named("GenAISuggester")}
}

func suggestionSchema() *genai.Schema {
	str := func(desc string) *genai.Schema { return &genai.Schema{Type: genai.TypeString, Description: desc} }
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestions": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"price":    str("suggested selling price"),
					"quantity": str("suggested quantity to sell"),
					"place":    str("suggested place to sell"),
				},
				Required: []string{"price", "quantity", "place"},
			},
			"reasoning": str("short explanation for the farmer"),
		},
		Required: []string{"suggestions", "reasoning"},
	}
}

func buildPrompt(req domain.SuggestionRequest) string {
	var b strings.Builder
	b.WriteString("You are a pricing advisor for small farmers selling produce in local markets.\n")
	fmt.Fprintf(&b, "The farmer's current asking price is: %s.\n", req.CurrentPrice)
	if len(req.Inventory) > 0 {
		b.WriteString("Their most recent inventory entries are:\n")
		for _, item := range req.Inventory {
			fmt.Fprintf(&b, "- %s: %g %s at market price %g (profitable: %t)\n",
				item.CropName, item.Quantity, item.Unit, item.MarketPrice, item.IsProfitable)
		}
	}
	b.WriteString("Suggest a selling price, a quantity to sell and a place to sell, and explain why.")
	return b.String()
}

// GenerateSuggestion returns the decoded model reply. A reply that is not the
// expected JSON object is an integrity error; transport failures are returned as is.
func (s *Suggester) GenerateSuggestion(ctx context.Context, req domain.SuggestionRequest) (*domain.PricingSuggestion, error) {
	ctx, span := tracer.Start(ctx, "GenAI.GenerateSuggestion")
	defer span.End()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(buildPrompt(req)), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.2),
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionSchema(),
	})
	if err != nil {
		span.RecordError(err)
		s.logger.Error("GenerateContent failed", zap.String("model", s.model), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, domain.NewIntegrityError("model returned an empty reply", nil)
	}
	var out domain.PricingSuggestion
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		s.logger.Warn("Model reply is not valid suggestion JSON", zap.Int("bytes", len(text)), zap.Error(err))
		return nil, domain.NewIntegrityError("model reply is not valid JSON", err)
	}
	s.logger.Info("Suggestion generated", zap.String("model", s.model), zap.Duration("elapsed", time.Since(start)))
	return &out, nil
}

// ErrNotConfigured is returned by Unconfigured.
var ErrNotConfigured = errors.New("GEMINI_API_KEY is not configured")

// Unconfigured stands in for the Suggester when no API key is set.
type Unconfigured struct{}

func (Unconfigured) GenerateSuggestion(context.Context, domain.SuggestionRequest) (*domain.PricingSuggestion, error) {
	return nil, ErrNotConfigured
}
