package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/saai151/portfolio/internal/config"
	"github.com/saai151/portfolio/internal/content"
	"github.com/saai151/portfolio/internal/github"
	"github.com/saai151/portfolio/internal/secrets"
	"github.com/saai151/portfolio/internal/tui"
	"github.com/saai151/portfolio/internal/wrapped"
)

const tokenService = "github"

func main() {
	// a missing .env is the common case
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Saai Arora's portfolio in the terminal",
		Long: `Browse the portfolio as a music player or a code editor, and play the
2025 Wrapped slideshow built from GitHub activity.

Without a GitHub token the Wrapped slides use built-in stats.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			runTUI(cmd.Context(), "")
		},
		SilenceUsage: true,
	}
	root.AddCommand(playerCmd, editorCmd, wrappedCmd, tokenCmd, configCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Open the music player theme",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runTUI(cmd.Context(), config.ThemePlayer)
	},
}

var editorCmd = &cobra.Command{
	Use:   "editor",
	Short: "Open the code editor theme",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runTUI(cmd.Context(), config.ThemeEditor)
	},
}

func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// runTUI starts the Bubble Tea program. theme overrides the configured
// theme when set. Setup failures are reported before the terminal is
// handed over, and a failed run exits non-zero.
func runTUI(ctx context.Context, theme string) {
	if err := run(ctx, theme); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, theme string) error {
	cfg := loadConfig()
	if theme != "" {
		cfg.UI.Theme = theme
	}

	resume, err := content.Load()
	if err != nil {
		return fmt.Errorf("content: %w", err)
	}
	model := tui.New(ctx, cfg, resume, newLoader(cfg))

	closeLog, err := redirectLog(cfg.Log.Path)
	if err != nil {
		return err
	}
	defer closeLog()

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// redirectLog moves the standard logger off the terminal, which belongs to
// Bubble Tea once the program starts. An empty path discards the output.
// The returned func restores the previous writer.
func redirectLog(path string) (func(), error) {
	prev, prefix := log.Writer(), log.Prefix()
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(prev) }, nil
	}
	f, err := tea.LogToFile(path, "portfolio")
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return func() {
		log.SetOutput(prev)
		log.SetPrefix(prefix)
		f.Close()
	}, nil
}

func newLoader(cfg config.Config) *wrapped.Loader {
	token := resolveToken(cfg)
	client, err := github.New(github.Options{
		Username:   cfg.GitHub.Username,
		Token:      token,
		GraphQLURL: cfg.GitHub.GraphQLURL,
		Timeout:    cfg.GitHub.Timeout,
	})
	if err != nil {
		log.Printf("warn: github client unavailable, Wrapped will use built-in stats: %v", err)
		return wrapped.NewLoader(nil, false, wrapped.Options{})
	}
	return wrapped.NewLoader(client, client.HasToken(), wrapped.Options{
		CommitAdjustment: cfg.Wrapped.CommitAdjustment,
		PRAdjustment:     cfg.Wrapped.PRAdjustment,
		TopN:             cfg.Wrapped.TopN,
		AdjustmentRepo:   cfg.Wrapped.AdjustmentRepo,
		LiveLanguages:    cfg.Wrapped.LiveLanguages,
	})
}

// resolveToken checks the env var, then the secrets store, then the plain
// config value.
func resolveToken(cfg config.Config) string {
	env := strings.TrimSpace(cfg.GitHub.TokenEnv)
	if env == "" {
		env = "GITHUB_TOKEN"
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	if t, err := secrets.FetchToken(tokenService); err == nil {
		return t
	}
	return strings.TrimSpace(cfg.GitHub.Token)
}
