package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/AlexTLDR/bringwhat/internal/config"
	"golang.org/x/oauth2"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
)

// OpenAI talks to any chat-completions compatible endpoint. Without an API
// key requests go out unauthenticated, which suits self-hosted servers.
type OpenAI struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewOpenAI(cfg config.AI) *OpenAI {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.APIKey != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey}))
	}

	return &OpenAI{baseURL: baseURL, model: model, httpClient: httpClient}
}

func (o *OpenAI) Name() string {
	return config.ProviderOpenAI
}

func (o *OpenAI) GenerateList(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, []chatMessage{
		{Role: "system", Content: "You reply with a JSON array only, without commentary."},
		{Role: "user", Content: prompt},
	})
}

func (o *OpenAI) GenerateText(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, []chatMessage{{Role: "user", Content: prompt}})
}

func (o *OpenAI) complete(ctx context.Context, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{Model: o.model, Messages: messages, Temperature: 0.7})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	return parsed.Choices[0].Message.Content, nil
}
