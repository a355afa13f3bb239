package suggest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AlexTLDR/bringwhat/internal/config"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// suggestionSchema constrains list replies to [{itemName, reason}].
var suggestionSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"itemName": {Type: genai.TypeString},
			"reason":   {Type: genai.TypeString},
		},
		Required: []string{"itemName", "reason"},
	},
}

// Gemini is the schema-constrained provider backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, cfg config.AI) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string {
	return config.ProviderGemini
}

func (g *Gemini) GenerateList(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionSchema,
	})
}

func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, nil)
}

func (g *Gemini) generate(ctx context.Context, prompt string, gc *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), gc)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	return resp.Text(), nil
}
