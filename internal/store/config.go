package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ModeLive   = "LIVE"
	ModeDryRun = "DRY_RUN"

	ProviderGemini = "GEMINI"
	ProviderOpenAI = "OPENAI"
	ProviderClaude = "CLAUDE"
	ProviderStatic = "STATIC"
)

const (
	DefaultPrompt   = "AIが時間の観測者として、1年の進行度に寄り添う短い一文を日本語で生成して。哲学的な表現で、句読点含めて40文字以内にして。"
	DefaultFallback = "時間は静かに流れ続けます。"
)

type Config struct {
	Mode     string `yaml:"mode"`
	Timezone string `yaml:"timezone"`
	Bar      struct {
		Width  int    `yaml:"width"`
		Filled string `yaml:"filled"`
		Empty  string `yaml:"empty"`
	} `yaml:"bar"`
	LLM struct {
		Provider       string  `yaml:"provider"`
		Model          string  `yaml:"model"`
		Endpoint       string  `yaml:"endpoint"`
		Prompt         string  `yaml:"prompt"`
		Fallback       string  `yaml:"fallback"`
		MaxTokens      int32   `yaml:"max_tokens"`
		Temperature    float32 `yaml:"temperature"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"llm"`
	X struct {
		Endpoint          string `yaml:"endpoint"`
		MaxWeightedLength int    `yaml:"max_weighted_length"`
		TimeoutSeconds    int    `yaml:"timeout_seconds"`
	} `yaml:"x"`

	// Secrets never come from the config file.
	Credentials Credentials `yaml:"-"`
}

// Credentials holds the secrets read from the environment at startup.
type Credentials struct {
	XAPIKey            string
	XAPISecret         string
	XAccessToken       string
	XAccessTokenSecret string
	GeminiAPIKey       string
	OpenAIAPIKey       string
	ClaudeAPIKey       string
}

// MissingEnvError lists every required environment variable that was empty.
type MissingEnvError struct {
	Keys []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("required environment variables not set: %s", strings.Join(e.Keys, ", "))
}

func (c *Config) DryRun() bool {
	return c.Mode == ModeDryRun
}

func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

func (c *Config) XTimeout() time.Duration {
	return time.Duration(c.X.TimeoutSeconds) * time.Second
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c *Config) Validate() error {
	if c.Mode != ModeLive && c.Mode != ModeDryRun {
		return fmt.Errorf("invalid mode '%s': must be '%s' or '%s'", c.Mode, ModeLive, ModeDryRun)
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderClaude, ProviderStatic:
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be one of %s, %s, %s, %s",
			c.LLM.Provider, ProviderGemini, ProviderOpenAI, ProviderClaude, ProviderStatic)
	}
	if c.Bar.Width <= 0 || c.Bar.Width > 50 {
		return fmt.Errorf("bar.width must be between 1-50, got %d", c.Bar.Width)
	}
	if c.Bar.Filled == "" || c.Bar.Empty == "" {
		return errors.New("bar.filled and bar.empty cannot be empty")
	}
	if strings.TrimSpace(c.LLM.Fallback) == "" {
		return errors.New("llm.fallback cannot be empty")
	}
	if c.X.MaxWeightedLength <= 0 {
		return fmt.Errorf("x.max_weighted_length must be positive, got %d", c.X.MaxWeightedLength)
	}

	var missing []string
	if !c.DryRun() {
		if c.Credentials.XAPIKey == "" {
			missing = append(missing, "X_API_KEY")
		}
		if c.Credentials.XAPISecret == "" {
			missing = append(missing, "X_API_SECRET")
		}
		if c.Credentials.XAccessToken == "" {
			missing = append(missing, "X_ACCESS_TOKEN")
		}
		if c.Credentials.XAccessTokenSecret == "" {
			missing = append(missing, "X_ACCESS_TOKEN_SECRET")
		}
	}
	if c.LLM.Provider == ProviderGemini && c.Credentials.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.LLM.Provider == ProviderOpenAI && c.Credentials.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.LLM.Provider == ProviderClaude && c.Credentials.ClaudeAPIKey == "" {
		missing = append(missing, "CLAUDE_API_KEY")
	}
	if len(missing) > 0 {
		return &MissingEnvError{Keys: missing}
	}
	return nil
}

// Load reads the YAML file at path (a missing file is fine), applies environment overrides and
// defaults, but does not validate.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	c.applyEnvOverrides()
	c.applyDefaults()
	return &c, nil
}

// LoadConfig is Load followed by Validate.
func LoadConfig(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnvOverrides() {
	c.Credentials = Credentials{
		XAPIKey:            os.Getenv("X_API_KEY"),
		XAPISecret:         os.Getenv("X_API_SECRET"),
		XAccessToken:       os.Getenv("X_ACCESS_TOKEN"),
		XAccessTokenSecret: os.Getenv("X_ACCESS_TOKEN_SECRET"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		ClaudeAPIKey:       os.Getenv("CLAUDE_API_KEY"),
	}

	if v := os.Getenv("CHRONA_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("CHRONA_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("X_API_ENDPOINT"); v != "" {
		c.X.Endpoint = v
	}
	// provider specific endpoints, mainly for proxies and tests
	switch strings.ToUpper(c.LLM.Provider) {
	case ProviderOpenAI:
		if v := os.Getenv("OPENAI_API_ENDPOINT"); v != "" {
			c.LLM.Endpoint = v
		}
	case ProviderClaude:
		if v := os.Getenv("CLAUDE_API_ENDPOINT"); v != "" {
			c.LLM.Endpoint = v
		}
	case ProviderGemini, "":
		if v := os.Getenv("GEMINI_API_ENDPOINT"); v != "" {
			c.LLM.Endpoint = v
		}
	}
}

func (c *Config) applyDefaults() {
	c.Mode = strings.ToUpper(c.Mode)
	if c.Mode == "" {
		c.Mode = ModeLive
	}
	if c.Timezone == "" {
		c.Timezone = "Asia/Tokyo"
	}
	if c.Bar.Width == 0 {
		c.Bar.Width = 10
	}
	if c.Bar.Filled == "" {
		c.Bar.Filled = "🟩"
	}
	if c.Bar.Empty == "" {
		c.Bar.Empty = "⬜"
	}

	c.LLM.Provider = strings.ToUpper(c.LLM.Provider)
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderGemini
	}
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case ProviderOpenAI:
			c.LLM.Model = "gpt-4o-mini"
		case ProviderClaude:
			c.LLM.Model = "claude-3-5-haiku-latest"
		default:
			c.LLM.Model = "gemini-2.0-flash"
		}
	}
	if c.LLM.Prompt == "" {
		c.LLM.Prompt = DefaultPrompt
	}
	if c.LLM.Fallback == "" {
		c.LLM.Fallback = DefaultFallback
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 100
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 30
	}

	if c.X.Endpoint == "" {
		c.X.Endpoint = "https://api.twitter.com"
	}
	if c.X.MaxWeightedLength == 0 {
		c.X.MaxWeightedLength = 280
	}
	if c.X.TimeoutSeconds == 0 {
		c.X.TimeoutSeconds = 30
	}
}
