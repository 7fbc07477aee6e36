package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/compound/currency"
	"github.com/rustyeddy/compound/plan"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, plan.DefaultSettings(), cfg.Plan)
	assert.Equal(t, currency.USD, cfg.DisplayCurrency())
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "compound.yaml", `
plan:
  start_amount: 50
  risk_percentage: 10
  reward_ratio: 2
  lot_divisor: 1000
  steps: 12
store:
  type: memory
analysis:
  timeout: 5s
currency: NGN
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, plan.Settings{StartAmount: 50, RiskPercentage: 10, RewardRatio: 2, LotDivisor: 1000, Steps: 12}, cfg.Plan)
	assert.Equal(t, "memory", cfg.Store.Type)
	assert.Equal(t, 5*time.Second, cfg.Analysis.Timeout)
	assert.Equal(t, "gpt-4o-mini", cfg.Analysis.Model)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, currency.NGN, cfg.DisplayCurrency())
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "compound.json", `{"store": {"type": "sqlite", "path": "x.db"}, "server": {"addr": ":9000"}}`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, plan.DefaultSettings(), cfg.Plan)
	assert.Equal(t, "x.db", cfg.Store.Path)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"bad plan", "plan:\n  start_amount: -1\n  risk_percentage: 20\n  reward_ratio: 1\n  lot_divisor: 1000\n  steps: 3\n"},
		{"bad store", "store:\n  type: redis\n"},
		{"bad currency", "currency: EUR\n"},
		{"telegram without chat", "telegram:\n  enabled: true\n"},
		{"garbage", "{{{"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFromFile(writeFile(t, "c.yaml", tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"c.yaml", "c.json"} {
		path := filepath.Join(t.TempDir(), name)
		cfg := Default()
		cfg.Plan.Steps = 7
		cfg.Currency = "NGN"
		require.NoError(t, cfg.SaveToFile(path))

		got, err := LoadFromFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, cfg, got, name)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("COMPOUND_API_KEY=from-dotenv\n"), 0o644))

	t.Setenv("COMPOUND_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	require.NoError(t, os.Unsetenv("COMPOUND_API_KEY"))

	cfg := Default()
	cfg.LoadEnv(envFile)
	assert.Equal(t, "from-dotenv", cfg.Analysis.APIKey)
	assert.Equal(t, "tok", cfg.Telegram.BotToken)

	// Values from the config file win.
	cfg = Default()
	cfg.Analysis.APIKey = "from-file"
	cfg.LoadEnv(envFile)
	assert.Equal(t, "from-file", cfg.Analysis.APIKey)
}
