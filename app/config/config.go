package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	Store  Store  `yaml:"store"`
	OpenAI OpenAI `yaml:"openai"`
}

type Server struct {
	// Listen address of the HTTP API
	Addr string `yaml:"addr" example:":8000" validate:"required"`
}

// Store points at the PostgREST-style row store holding the nine
// operational tables. Both fields are optional: without them every
// read degrades to an empty result instead of failing startup.
type Store struct {
	// Base REST url of the row store
	URL string `yaml:"url" example:"https://abcdefgh.supabase.co"`
	// Service role or anon API key
	Key string `yaml:"key"`
}

type OpenAI struct {
	// Model used for intent classification
	Classify ModelConfig `yaml:"classify"`
	// Model used for final answer phrasing
	Answer ModelConfig `yaml:"answer"`
}

type ModelConfig struct {
	// OpenAI-compatible base url
	BaseURL string `yaml:"base_url" example:"https://openrouter.ai/api/v1"`
	// API token; empty token disables the completion capability
	Token string `yaml:"token"`
	// Model name
	Model string `yaml:"model" example:"gpt-4o-mini"`
}

func (m ModelConfig) Enabled() bool {
	return m.Token != "" && m.Model != ""
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id"`
}

func Load() (*Config, error) {
	// .env is optional, like every other secret source
	_ = godotenv.Load()

	var result Config

	data, err := os.ReadFile("config.yaml")
	if err == nil {
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.Errorf("failed to parse YAML config: %w", err)
		}
	}

	applyEnv(&result)

	if result.Server.Addr == "" {
		result.Server.Addr = ":8000"
	}
	if result.OpenAI.Classify.BaseURL == "" {
		result.OpenAI.Classify.BaseURL = "https://api.openai.com/v1"
	}
	if result.OpenAI.Answer.BaseURL == "" {
		result.OpenAI.Answer.BaseURL = result.OpenAI.Classify.BaseURL
	}
	if result.OpenAI.Answer.Token == "" {
		result.OpenAI.Answer.Token = result.OpenAI.Classify.Token
	}
	if result.OpenAI.Answer.Model == "" {
		result.OpenAI.Answer.Model = result.OpenAI.Classify.Model
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

// applyEnv lets environment variables override or fill the YAML values.
// The variable names match what the deployment platforms already export.
func applyEnv(cfg *Config) {
	if v := firstEnv("STORE_URL", "SUPABASE_URL", "SUPABASE_REST_URL", "SUPABASE_PROJECT_URL"); v != "" {
		cfg.Store.URL = v
	}
	if v := firstEnv("STORE_KEY", "SUPABASE_SERVICE_ROLE_KEY", "SUPABASE_ANON_KEY", "SUPABASE_KEY"); v != "" {
		cfg.Store.Key = v
	}
	if v := firstEnv("OPENAI_TOKEN", "OPENAI_API_KEY", "API_KEY"); v != "" {
		if cfg.OpenAI.Classify.Token == "" {
			cfg.OpenAI.Classify.Token = v
		}
		if cfg.OpenAI.Answer.Token == "" {
			cfg.OpenAI.Answer.Token = v
		}
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		if cfg.OpenAI.Classify.Model == "" {
			cfg.OpenAI.Classify.Model = v
		}
		if cfg.OpenAI.Answer.Model == "" {
			cfg.OpenAI.Answer.Model = v
		}
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
