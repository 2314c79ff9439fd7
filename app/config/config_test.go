package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is t.Chdir for toolchains before Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.Classify.BaseURL)
	assert.False(t, cfg.OpenAI.Classify.Enabled())
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "secret")
	t.Setenv("OPENAI_API_KEY", "token")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("SERVER_ADDR", ":9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.supabase.co", cfg.Store.URL)
	assert.Equal(t, "secret", cfg.Store.Key)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.True(t, cfg.OpenAI.Classify.Enabled())

	// The answer model inherits the classify settings unless set apart.
	assert.Equal(t, "token", cfg.OpenAI.Answer.Token)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Answer.Model)
}

func TestModelConfigEnabled(t *testing.T) {
	assert.False(t, ModelConfig{Token: "t"}.Enabled())
	assert.False(t, ModelConfig{Model: "m"}.Enabled())
	assert.True(t, ModelConfig{Token: "t", Model: "m"}.Enabled())
}
