package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AlexTLDR/bringwhat/internal/config"
	"github.com/AlexTLDR/bringwhat/internal/database"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) GenerateList(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeProvider) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

var bbq = database.Event{ID: "e1", Title: "BBQ", Description: "Backyard grill", Date: "2025-07-04", HostName: "Ana"}

func TestSuggestWithoutKeyReturnsFixedList(t *testing.T) {
	g, err := New(context.Background(), config.AI{Provider: config.ProviderGemini}, zap.NewNop())
	require.NoError(t, err)

	got := g.Suggest(context.Background(), bbq, nil)
	if diff := cmp.Diff(missingKeySuggestions, got); diff != "" {
		t.Errorf("Suggest() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "none", g.ProviderName())
	assert.Equal(t, MissingKeyWelcome, g.Welcome(context.Background(), "BBQ"))
}

func TestSuggestReplies(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  []Suggestion
	}{
		{
			name:  "plain json",
			reply: `[{"itemName":"Ice","reason":"Keeps drinks cold"},{"itemName":"Tongs","reason":"Flip those burgers"},{"itemName":"Buns","reason":"Burgers need homes"}]`,
			want: []Suggestion{
				{ItemName: "Ice", Reason: "Keeps drinks cold"},
				{ItemName: "Tongs", Reason: "Flip those burgers"},
				{ItemName: "Buns", Reason: "Burgers need homes"},
			},
		},
		{
			name:  "fenced json",
			reply: "```json\n[{\"itemName\":\"Salad\",\"reason\":\"Something green\"}]\n```",
			want:  []Suggestion{{ItemName: "Salad", Reason: "Something green"}},
		},
		{
			name:  "prose around array",
			reply: "Sure! Here you go:\n[{\"itemName\":\"Plates\",\"reason\":\"For the food\"}]\nEnjoy!",
			want:  []Suggestion{{ItemName: "Plates", Reason: "For the food"}},
		},
		{
			name:  "more than three is truncated",
			reply: `[{"itemName":"A","reason":"a"},{"itemName":"B","reason":"b"},{"itemName":"C","reason":"c"},{"itemName":"D","reason":"d"}]`,
			want: []Suggestion{
				{ItemName: "A", Reason: "a"},
				{ItemName: "B", Reason: "b"},
				{ItemName: "C", Reason: "c"},
			},
		},
		{name: "provider error", err: errors.New("boom"), want: failureSuggestions},
		{name: "empty reply", reply: "", want: failureSuggestions},
		{name: "not json", reply: "I think you need ice", want: failureSuggestions},
		{name: "wrong shape", reply: `{"itemName":"Ice"}`, want: failureSuggestions},
		{name: "empty array", reply: `[]`, want: failureSuggestions},
		{name: "blank item name", reply: `[{"itemName":"  ","reason":"x"}]`, want: failureSuggestions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGateway(&fakeProvider{reply: tt.reply, err: tt.err}, zap.NewNop())
			got := g.Suggest(context.Background(), bbq, nil)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Suggest() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFallbackListsAreNotShared(t *testing.T) {
	g := NewGateway(&fakeProvider{err: errors.New("down")}, zap.NewNop())

	got := g.Suggest(context.Background(), bbq, nil)
	got[0].ItemName = "changed"

	assert.Equal(t, "Napkins", g.Suggest(context.Background(), bbq, nil)[0].ItemName)
}

func TestBuildPrompt(t *testing.T) {
	t.Run("no items", func(t *testing.T) {
		prompt := buildPrompt(bbq, nil)
		assert.Contains(t, prompt, `Event Title: "BBQ"`)
		assert.Contains(t, prompt, `Event Description: "Backyard grill"`)
		assert.Contains(t, prompt, "Host: Ana")
		assert.Contains(t, prompt, "No items yet.")
		assert.Contains(t, prompt, "exactly 3 distinct items")
		assert.Contains(t, prompt, "under 10 words")
	})

	t.Run("with items", func(t *testing.T) {
		prompt := buildPrompt(bbq, []database.Item{
			{GuestName: "Bo", ItemName: "Chips"},
			{GuestName: "Cy", ItemName: "Soda"},
		})
		assert.Contains(t, prompt, "- Chips (Bo)\n- Soda (Cy)")
		assert.NotContains(t, prompt, "No items yet.")
	})
}

func TestWelcome(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{name: "trims quotes", reply: "  \"Grill, chill and thrill!\"\n", want: "Grill, chill and thrill!"},
		{name: "empty reply", reply: "   ", want: EmptyWelcome},
		{name: "provider error", err: errors.New("boom"), want: FailureWelcome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{reply: tt.reply, err: tt.err}
			g := NewGateway(p, zap.NewNop())
			assert.Equal(t, tt.want, g.Welcome(context.Background(), "BBQ"))
			require.Len(t, p.prompts, 1)
			assert.Contains(t, p.prompts[0], `"BBQ"`)
		})
	}
}

func TestOpenAIProvider(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"`+
			"```json\\n[{\\\"itemName\\\":\\\"Ice\\\",\\\"reason\\\":\\\"Cold drinks\\\"}]\\n```"+`"}}]}`)
	}))
	defer srv.Close()

	g, err := New(context.Background(), config.AI{
		Provider: config.ProviderOpenAI,
		APIKey:   "sk-test",
		BaseURL:  srv.URL + "/v1/",
		Model:    "local-model",
		Timeout:  5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)

	got := g.Suggest(context.Background(), bbq, nil)
	if diff := cmp.Diff([]Suggestion{{ItemName: "Ice", Reason: "Cold drinks"}}, got); diff != "" {
		t.Errorf("Suggest() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "local-model", gotReq.Model)
	assert.Equal(t, "openai", g.ProviderName())
}

func TestOpenAIProviderWithoutKey(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"Fire up the grill!"}}]}`)
	}))
	defer srv.Close()

	p := NewOpenAI(config.AI{BaseURL: srv.URL, Timeout: 5 * time.Second})
	got, err := p.GenerateText(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Fire up the grill!", got)
	assert.Empty(t, gotAuth)
}

func TestOpenAIProviderFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":{"message":"overloaded"}}`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "garbage", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			g := NewGateway(NewOpenAI(config.AI{BaseURL: srv.URL, Timeout: 5 * time.Second}), zap.NewNop())
			got := g.Suggest(context.Background(), bbq, nil)
			if diff := cmp.Diff(failureSuggestions, got); diff != "" {
				t.Errorf("Suggest() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGeminiProvider(t *testing.T) {
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"[{\"itemName\":\"Charcoal\",\"reason\":\"No fire without it\"}]"}]}}]}`)
	}))
	defer srv.Close()

	g, err := New(context.Background(), config.AI{
		Provider: config.ProviderGemini,
		APIKey:   "gm-test",
		BaseURL:  srv.URL + "/",
		Timeout:  5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)

	got := g.Suggest(context.Background(), bbq, []database.Item{{GuestName: "Bo", ItemName: "Chips"}})
	if diff := cmp.Diff([]Suggestion{{ItemName: "Charcoal", Reason: "No fire without it"}}, got); diff != "" {
		t.Errorf("Suggest() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "gm-test", gotKey)
	assert.True(t, strings.HasSuffix(gotPath, "models/"+defaultGeminiModel+":generateContent"), gotPath)
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.AI{Provider: "llama"}, zap.NewNop())
	assert.Error(t, err)
}
