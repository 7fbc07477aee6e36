package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/compound/plan"
)

func rows() []plan.Checkpoint {
	return plan.Generate(plan.Settings{StartAmount: 20, RiskPercentage: 20, RewardRatio: 1, LotDivisor: 1000, Steps: 3})
}

func fakeCompletions(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"invalid_request_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := New(Config{}, nil)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Contains(t, DisplayError(err), "API Key is missing")
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	p := BuildPrompt(rows(), 20, 1)
	assert.Contains(t, p, "Plan Start: $20.00")
	assert.Contains(t, p, "Plan End (Step 3): $28.80")
	assert.Contains(t, p, "Risk per trade: 20%")
	assert.Contains(t, p, "Reward Ratio: 1:1")
	assert.Contains(t, p, "(like 0.03 lots)")
	assert.Contains(t, p, "under 100 words")
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	srv := fakeCompletions(t, "  Steady growth, stay disciplined.  ", http.StatusOK)
	c, err := New(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "test-model"}, nil)
	require.NoError(t, err)

	got, err := c.Analyze(context.Background(), rows(), 20, 1)
	require.NoError(t, err)
	assert.Equal(t, "Steady growth, stay disciplined.", got)
}

func TestAnalyzeEmptyReply(t *testing.T) {
	t.Parallel()

	srv := fakeCompletions(t, "", http.StatusOK)
	c, err := New(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "test-model"}, nil)
	require.NoError(t, err)

	got, err := c.Analyze(context.Background(), rows(), 20, 1)
	require.NoError(t, err)
	assert.Equal(t, NoAnalysis, got)
}

func TestAnalyzeFailure(t *testing.T) {
	t.Parallel()

	srv := fakeCompletions(t, "", http.StatusUnauthorized)
	c, err := New(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "test-model"}, nil)
	require.NoError(t, err)

	_, err = c.Analyze(context.Background(), rows(), 20, 1)
	require.Error(t, err)
	assert.Equal(t, "Could not generate analysis at this time.", DisplayError(err))
}

func TestAnalyzeEmptyPlan(t *testing.T) {
	t.Parallel()

	c, err := New(Config{APIKey: "k"}, nil)
	require.NoError(t, err)
	_, err = c.Analyze(context.Background(), nil, 20, 1)
	assert.ErrorIs(t, err, ErrEmptyPlan)
	assert.Empty(t, DisplayError(nil))
	assert.NotEmpty(t, DisplayError(errors.New("x")))
}
