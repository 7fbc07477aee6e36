// Package analysis asks a chat-completion model for a short assessment of a
// compounding plan. The result is display-only.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rustyeddy/compound/internal/logger"
	"github.com/rustyeddy/compound/plan"
)

var (
	ErrMissingAPIKey = errors.New("analysis: API key is missing")
	ErrEmptyPlan     = errors.New("analysis: plan has no steps")
)

const NoAnalysis = "No analysis generated."

type Config struct {
	APIKey  string        `json:"api_key" yaml:"api_key"`
	BaseURL string        `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model   string        `json:"model" yaml:"model"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *logger.Logger
}

// New returns a client, or ErrMissingAPIKey when no key is configured.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if log == nil {
		log = logger.Discard()
	}

	ocfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		ocfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		client:  openai.NewClientWithConfig(ocfg),
		model:   model,
		timeout: timeout,
		logger:  log,
	}, nil
}

// BuildPrompt summarizes the plan ends rather than sending every row.
func BuildPrompt(rows []plan.Checkpoint, risk, reward float64) string {
	start, end := rows[0], rows[len(rows)-1]

	var b strings.Builder
	b.WriteString("Analyze this compounding trading plan:\n\n")
	b.WriteString(fmt.Sprintf("Plan Start: $%.2f\n", start.Amount))
	b.WriteString(fmt.Sprintf("Plan End (Step %d): $%.2f\n", end.ID, end.Amount))
	b.WriteString(fmt.Sprintf("Risk per trade: %g%%\n", risk))
	b.WriteString(fmt.Sprintf("Reward Ratio: 1:%g\n\n", reward))
	b.WriteString("Please provide a brief, motivating, yet realistic assessment of this growth curve.\n")
	b.WriteString(fmt.Sprintf(
		"Mention the psychological difficulty of handling larger lot sizes (like %.2f lots) at the end compared to the start.\n",
		end.LotSize))
	b.WriteString("Keep it under 100 words.")
	return b.String()
}

func (c *Client) Analyze(ctx context.Context, rows []plan.Checkpoint, risk, reward float64) (string, error) {
	if len(rows) == 0 {
		return "", ErrEmptyPlan
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Info("sending plan analysis request", "model", c.model, "steps", len(rows))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(rows, risk, reward)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return NoAnalysis, nil
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return NoAnalysis, nil
	}

	c.logger.Debug("analysis response", "length", len(text))
	return text, nil
}

// DisplayError turns an analysis failure into the message shown in place of
// the analysis.
func DisplayError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingAPIKey):
		return "API Key is missing. Please configure it in your environment variables."
	case errors.Is(err, ErrEmptyPlan):
		return "Nothing to analyze: the plan has no steps."
	default:
		return "Could not generate analysis at this time."
	}
}
