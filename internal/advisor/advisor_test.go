package advisor_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/wealthwise/internal/advisor"
	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
	"github.com/MrJamesThe3rd/wealthwise/internal/goal"
	"github.com/MrJamesThe3rd/wealthwise/internal/stats"
)

func summary() stats.Summary {
	return stats.Summary{
		TotalIncome:      decimal.NewFromInt(6500),
		TotalExpenses:    decimal.NewFromInt(1900),
		Balance:          decimal.NewFromInt(4600),
		FixedExpenses:    decimal.NewFromInt(1500),
		VariableExpenses: decimal.NewFromInt(400),
	}
}

func TestBuildPrompt(t *testing.T) {
	deadline := calendar.NewDate(2026, time.December, 31)
	goals := []goal.Goal{
		{ID: "a", Name: "A", Target: decimal.NewFromInt(100), Current: decimal.NewFromInt(50), Deadline: deadline},
		{ID: "b", Name: "B", Target: decimal.NewFromInt(100), Current: decimal.NewFromInt(100), Deadline: deadline},
	}

	prompt := advisor.BuildPrompt(summary(), goals)

	assert.Contains(t, prompt, "Financial Health Score (out of 100)")
	assert.Contains(t, prompt, `"Prosperity Move"`)
	assert.Contains(t, prompt, "- Income: 6500 Dh")
	assert.Contains(t, prompt, "- Expenses: 1900 Dh (Fixed: 1500, Variable: 400)")
	assert.Contains(t, prompt, "- Current Balance: 4600 Dh")
	assert.Contains(t, prompt, "- Active Goals: 2 (Total progress: 75%)")
}

func TestBuildPrompt_NoGoals(t *testing.T) {
	assert.Contains(t, advisor.BuildPrompt(summary(), nil), "- Active Goals: 0 (Total progress: 0%)")
}

func TestNewClient(t *testing.T) {
	_, err := advisor.NewClient(advisor.Config{Provider: "gemini"})
	assert.ErrorIs(t, err, advisor.ErrNoAPIKey)

	_, err = advisor.NewClient(advisor.Config{Provider: "oracle", APIKey: "k"})
	assert.Error(t, err)

	for _, provider := range []string{"", "gemini", "Anthropic"} {
		c, err := advisor.NewClient(advisor.Config{Provider: provider, APIKey: "k"})
		require.NoError(t, err, provider)
		assert.NotNil(t, c)
	}
}

func TestGeminiClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-3-flash-preview:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Score: 82"},{"text":"/100"}]}}]}`))
	}))
	defer srv.Close()

	client, err := advisor.NewClient(advisor.Config{Provider: "gemini", APIKey: "secret", BaseURL: srv.URL})
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Score: 82/100", text)
}

func TestGeminiClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"ServerError", http.StatusInternalServerError, `{"error":"boom"}`, nil},
		{"Unauthorized", http.StatusUnauthorized, `{}`, nil},
		{"NoCandidates", http.StatusOK, `{"candidates":[]}`, advisor.ErrEmptyResponse},
		{"BadJSON", http.StatusOK, `not json`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := advisor.NewClient(advisor.Config{APIKey: "k", BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = client.Generate(context.Background(), "p")
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAnthropicClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "custom-model", body.Model)
		assert.Equal(t, "user", body.Messages[0].Role)

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Keep saving."}],"stop_reason":"end_turn"}`))
	}))
	defer srv.Close()

	client, err := advisor.NewClient(advisor.Config{
		Provider: "anthropic", APIKey: "secret", Model: "custom-model", BaseURL: srv.URL,
	})
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "Keep saving.", text)
}

func TestService_Advise(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := advisor.NewMockClient(ctrl)

		client.EXPECT().
			Generate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, prompt string) (string, error) {
				assert.Contains(t, prompt, "DATA:")
				return "  Health: 90/100  ", nil
			})

		advice := advisor.NewService(client, "gemini").Advise(context.Background(), summary(), nil)

		assert.Equal(t, advisor.Advice{Text: "Health: 90/100"}, advice)
	})

	t.Run("ClientErrorFallsBack", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := advisor.NewMockClient(ctrl)

		client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", errors.New("dial tcp: no route to host"))

		advice := advisor.NewService(client, "gemini").Advise(context.Background(), summary(), nil)

		assert.True(t, advice.Fallback)
		assert.Equal(t, advisor.FallbackMessage, advice.Text)
	})

	t.Run("EmptyReplyFallsBack", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := advisor.NewMockClient(ctrl)

		client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("   ", nil)

		advice := advisor.NewService(client, "gemini").Advise(context.Background(), summary(), nil)

		assert.True(t, advice.Fallback)
	})

	t.Run("NoClientFallsBack", func(t *testing.T) {
		advice := advisor.NewService(nil, "gemini").Advise(context.Background(), summary(), nil)

		assert.Equal(t, advisor.Advice{Text: advisor.FallbackMessage, Fallback: true}, advice)
	})
}
