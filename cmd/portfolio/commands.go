package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/saai151/portfolio/internal/config"
	"github.com/saai151/portfolio/internal/secrets"
	"github.com/saai151/portfolio/internal/wrapped"
)

var wrappedJSON bool

var wrappedCmd = &cobra.Command{
	Use:   "wrapped",
	Short: "Load the Wrapped stats and print them",
	Long: `Load the Wrapped stats the same way the slideshow does and print a
summary. Use --json for the full dataset.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		res := newLoader(cfg).Load(cmd.Context())
		out := cmd.OutOrStdout()
		if wrappedJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printSummary(cmd, res)
		return nil
	},
}

func printSummary(cmd *cobra.Command, res wrapped.Result) {
	p := message.NewPrinter(language.English)
	s := res.Stats
	source := "built-in"
	if res.Live {
		source = "live (" + string(res.Path) + ")"
	}
	w := cmd.OutOrStdout()
	p.Fprintf(w, "stats:       %s\n", source)
	p.Fprintf(w, "commits:     %d\n", s.TotalCommits)
	p.Fprintf(w, "prs:         %d\n", s.TotalPRs)
	p.Fprintf(w, "repos:       %d\n", s.RepoCount)
	p.Fprintf(w, "active days: %d\n", s.ActiveDays)
	if top, ok := s.TopLanguage(); ok {
		p.Fprintf(w, "top genre:   %s (%d%%)\n", top.Name, top.Percentage)
	}
	p.Fprintf(w, "personality: %s\n", s.Personality())
	for i, r := range s.TopRepos {
		p.Fprintf(w, "%d. %s  %d commits\n", i+1, r.Name, r.Commits)
	}
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the stored GitHub token",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Store a GitHub token (reads stdin when no argument is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var token string
		if len(args) == 1 {
			token = args[0]
		} else {
			fmt.Fprint(cmd.ErrOrStderr(), "GitHub token: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read token: %w", err)
			}
			token = line
		}
		token = strings.TrimSpace(token)
		if err := secrets.StoreToken(tokenService, token); err != nil {
			return err
		}

		// the stored token supersedes any plain-text copy in the config file
		cfg := loadConfig()
		if cfg.GitHub.Token != "" {
			cfg.GitHub.Token = ""
			if err := config.Save(cfg); err != nil {
				log.Printf("warn: could not scrub token from %s: %v", config.Path(), err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "token stored")
		return nil
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored GitHub token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		err := secrets.DeleteToken(tokenService)
		if errors.Is(err, secrets.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "no token stored")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "token removed")
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or write the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", config.Path())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print where the config file lives",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.Path())
	},
}

func init() {
	wrappedCmd.Flags().BoolVar(&wrappedJSON, "json", false, "print the full dataset as JSON")
	tokenCmd.AddCommand(tokenSetCmd, tokenClearCmd)
	configCmd.AddCommand(configInitCmd, configPathCmd)
}
