package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	GitHub  GitHubConfig  `mapstructure:"github"`
	Wrapped WrappedConfig `mapstructure:"wrapped"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
}

// GitHubConfig holds the data source settings. Token is a last resort; the
// env var named by TokenEnv and the secrets store are checked first.
type GitHubConfig struct {
	Username   string        `mapstructure:"username"`
	TokenEnv   string        `mapstructure:"token_env"`
	Token      string        `mapstructure:"token"`
	GraphQLURL string        `mapstructure:"graphql_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// WrappedConfig tunes the slideshow and the stats merge.
type WrappedConfig struct {
	StepDelay         time.Duration `mapstructure:"step_delay"`
	JumpDelay         time.Duration `mapstructure:"jump_delay"`
	CounterDuration   time.Duration `mapstructure:"counter_duration"`
	NotificationDelay time.Duration `mapstructure:"notification_delay"`
	TopN              int           `mapstructure:"top_n"`
	CommitAdjustment  int           `mapstructure:"commit_adjustment"`
	PRAdjustment      int           `mapstructure:"pr_adjustment"`
	AdjustmentRepo    string        `mapstructure:"adjustment_repo"`
	LiveLanguages     bool          `mapstructure:"live_languages"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

type LogConfig struct {
	Path string `mapstructure:"path"`
}

const (
	ThemePlayer = "player"
	ThemeEditor = "editor"
)

// Load reads configuration from file and env. Env var overrides use prefix PORTFOLIO_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PORTFOLIO_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "portfolio"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine, a broken one is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.Theme != ThemePlayer && c.UI.Theme != ThemeEditor {
		return Config{}, fmt.Errorf("ui.theme: unknown theme %q", c.UI.Theme)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("github.username", "saai151")
	v.SetDefault("github.token_env", "GITHUB_TOKEN")
	v.SetDefault("github.token", "")
	v.SetDefault("github.graphql_url", "https://api.github.com/graphql")
	v.SetDefault("github.timeout", "15s")
	v.SetDefault("wrapped.step_delay", "400ms")
	v.SetDefault("wrapped.jump_delay", "300ms")
	v.SetDefault("wrapped.counter_duration", "1500ms")
	v.SetDefault("wrapped.notification_delay", "2s")
	v.SetDefault("wrapped.top_n", 5)
	v.SetDefault("wrapped.commit_adjustment", 30)
	v.SetDefault("wrapped.pr_adjustment", 10)
	v.SetDefault("wrapped.adjustment_repo", "shopify/checkout")
	v.SetDefault("wrapped.live_languages", false)
	v.SetDefault("ui.theme", ThemePlayer)
	v.SetDefault("log.path", "")
}

// Path is where Save writes.
func Path() string {
	if path := os.Getenv("PORTFOLIO_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "portfolio", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
// The token is written in plain text; prefer the env var or the secrets store.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("github.username", cfg.GitHub.Username)
	v.Set("github.token_env", cfg.GitHub.TokenEnv)
	v.Set("github.token", cfg.GitHub.Token)
	v.Set("github.graphql_url", cfg.GitHub.GraphQLURL)
	v.Set("github.timeout", cfg.GitHub.Timeout.String())
	v.Set("wrapped.step_delay", cfg.Wrapped.StepDelay.String())
	v.Set("wrapped.jump_delay", cfg.Wrapped.JumpDelay.String())
	v.Set("wrapped.counter_duration", cfg.Wrapped.CounterDuration.String())
	v.Set("wrapped.notification_delay", cfg.Wrapped.NotificationDelay.String())
	v.Set("wrapped.top_n", cfg.Wrapped.TopN)
	v.Set("wrapped.commit_adjustment", cfg.Wrapped.CommitAdjustment)
	v.Set("wrapped.pr_adjustment", cfg.Wrapped.PRAdjustment)
	v.Set("wrapped.adjustment_repo", cfg.Wrapped.AdjustmentRepo)
	v.Set("wrapped.live_languages", cfg.Wrapped.LiveLanguages)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
