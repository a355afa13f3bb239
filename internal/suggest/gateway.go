// Package suggest asks a text-generation provider which items an event is
// still missing. Every failure degrades to a fixed fallback list; callers
// never see an error.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/AlexTLDR/bringwhat/internal/config"
	"github.com/AlexTLDR/bringwhat/internal/database"
	"go.uber.org/zap"
)

const maxSuggestions = 3

// Welcome messages used when no provider reply is available.
const (
	MissingKeyWelcome = "Let's get this party started!"
	FailureWelcome    = "Join the celebration!"
	EmptyWelcome      = "Join us!"
)

// Suggestion is one item the provider thinks the event is missing.
type Suggestion struct {
	ItemName string `json:"itemName"`
	Reason   string `json:"reason"`
}

var (
	// Returned without any network I/O when no credential is configured.
	missingKeySuggestions = []Suggestion{
		{ItemName: "Ice", Reason: "AI features require an API Key."},
		{ItemName: "Cups", Reason: "Standard party necessity."},
	}

	// Returned when the provider call or the reply parsing fails.
	failureSuggestions = []Suggestion{
		{ItemName: "Napkins", Reason: "Always useful to have more."},
		{ItemName: "Snacks", Reason: "Nobody says no to snacks."},
	}
)

var errMalformedReply = errors.New("malformed suggestion reply")

// Provider is a text-generation backend.
type Provider interface {
	Name() string
	// GenerateList returns a reply expected to contain a JSON array of suggestions.
	GenerateList(ctx context.Context, prompt string) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Gateway builds prompts, calls the provider and parses its replies.
type Gateway struct {
	provider Provider
	logger   *zap.Logger
}

// New builds the gateway for cfg.Provider. A gemini provider without a key
// leaves the gateway without a provider, so it answers with fixed fallbacks.
func New(ctx context.Context, cfg config.AI, logger *zap.Logger) (*Gateway, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if cfg.APIKey == "" {
			logger.Warn("No API key provided for Gemini, AI suggestions are disabled")
			return NewGateway(nil, logger), nil
		}
		p, err := NewGemini(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewGateway(p, logger), nil
	case config.ProviderOpenAI:
		return NewGateway(NewOpenAI(cfg), logger), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}

// NewGateway wraps an already built provider. A nil provider means no
// credential is configured.
func NewGateway(provider Provider, logger *zap.Logger) *Gateway {
	return &Gateway{provider: provider, logger: logger}
}

// ProviderName reports the active provider, or "none".
func (g *Gateway) ProviderName() string {
	if g.provider == nil {
		return "none"
	}
	return g.provider.Name()
}

// Fallback returns the list used when a provider call fails.
func Fallback() []Suggestion {
	return slices.Clone(failureSuggestions)
}

// Suggest returns up to three items the event is missing.
func (g *Gateway) Suggest(ctx context.Context, event database.Event, items []database.Item) []Suggestion {
	if g.provider == nil {
		return slices.Clone(missingKeySuggestions)
	}

	reply, err := g.provider.GenerateList(ctx, buildPrompt(event, items))
	if err != nil {
		g.logger.Warn("Suggestion provider call failed",
			zap.String("provider", g.provider.Name()),
			zap.Error(err))
		return Fallback()
	}

	suggestions, err := parseSuggestions(reply)
	if err != nil {
		g.logger.Warn("Could not parse suggestion reply",
			zap.String("provider", g.provider.Name()),
			zap.Error(err))
		return Fallback()
	}

	return suggestions
}

// Welcome returns a one-sentence subtitle for the invitation page.
func (g *Gateway) Welcome(ctx context.Context, title string) string {
	if g.provider == nil {
		return MissingKeyWelcome
	}

	prompt := fmt.Sprintf("Write a very short, exciting, one-sentence subtitle for a party invitation called %q. No quotes.", title)
	reply, err := g.provider.GenerateText(ctx, prompt)
	if err != nil {
		g.logger.Warn("Welcome message generation failed",
			zap.String("provider", g.provider.Name()),
			zap.Error(err))
		return FailureWelcome
	}

	msg := strings.TrimSpace(strings.Trim(strings.TrimSpace(reply), "\"'“”"))
	if msg == "" {
		return EmptyWelcome
	}
	return msg
}

func buildPrompt(event database.Event, items []database.Item) string {
	listing := "No items yet."
	if len(items) > 0 {
		lines := make([]string, 0, len(items))
		for _, item := range items {
			lines = append(lines, fmt.Sprintf("- %s (%s)", item.ItemName, item.GuestName))
		}
		listing = strings.Join(lines, "\n")
	}

	var b strings.Builder
	b.WriteString("I am planning a party/event.\n")
	fmt.Fprintf(&b, "Event Title: %q\n", event.Title)
	fmt.Fprintf(&b, "Event Description: %q\n", event.Description)
	fmt.Fprintf(&b, "Host: %s\n\n", event.HostName)
	b.WriteString("Here is the list of items guests are already bringing:\n")
	b.WriteString(listing)
	b.WriteString("\n\n")
	b.WriteString("Based on the event details and what is already on the list, suggest exactly 3 distinct items that are missing or would be great additions.\n")
	b.WriteString("Keep the reason short and fun (under 10 words).\n")
	b.WriteString(`Respond only with a JSON array of objects shaped like {"itemName": "...", "reason": "..."}.`)
	return b.String()
}

// parseSuggestions decodes a provider reply, tolerating markdown code fences
// and surrounding prose.
func parseSuggestions(reply string) ([]Suggestion, error) {
	cleaned := cleanJSONResponse(reply)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty reply", errMalformedReply)
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(cleaned), &suggestions); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedReply, err)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("%w: no suggestions", errMalformedReply)
	}

	for i := range suggestions {
		suggestions[i].ItemName = strings.TrimSpace(suggestions[i].ItemName)
		suggestions[i].Reason = strings.TrimSpace(suggestions[i].Reason)
		if suggestions[i].ItemName == "" {
			return nil, fmt.Errorf("%w: suggestion %d has no itemName", errMalformedReply, i)
		}
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions, nil
}

func cleanJSONResponse(reply string) string {
	s := strings.TrimSpace(reply)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if !strings.HasPrefix(s, "[") {
		start := strings.Index(s, "[")
		end := strings.LastIndex(s, "]")
		if start >= 0 && end > start {
			s = s[start : end+1]
		}
	}
	return s
}
