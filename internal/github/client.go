package github

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/sync/errgroup"

	"github.com/saai151/portfolio/internal/wrapped"
)

const (
	DefaultUsername   = "saai151"
	DefaultGraphQLURL = "https://api.github.com/graphql"
	DefaultTimeout    = 15 * time.Second

	reposPerPage   = 100
	maxConcurrency = 6
)

var ErrNoToken = errors.New("github: token not configured")

// Options configures a Client. Zero values take the defaults.
type Options struct {
	Username   string
	Token      string
	GraphQLURL string
	Timeout    time.Duration
	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *http.Client
	// BaseURL points REST calls somewhere other than api.github.com.
	BaseURL string
}

// Client reads contribution data for a single GitHub account. It serves as
// the Wrapped loader's data source.
type Client struct {
	username   string
	token      string
	graphqlURL string
	timeout    time.Duration
	rest       *gh.Client

	reposMu sync.Mutex
	repos   []*gh.Repository

	countsMu sync.Mutex
	counts   []wrapped.RepoStat
}

var _ wrapped.Source = (*Client)(nil)

func New(opts Options) (*Client, error) {
	c := &Client{
		username:   strings.TrimSpace(opts.Username),
		token:      strings.TrimSpace(opts.Token),
		graphqlURL: strings.TrimSpace(opts.GraphQLURL),
		timeout:    opts.Timeout,
	}
	if c.username == "" {
		c.username = DefaultUsername
	}
	if c.graphqlURL == "" {
		c.graphqlURL = DefaultGraphQLURL
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}

	c.rest = gh.NewClient(opts.HTTPClient)
	if c.token != "" {
		c.rest = c.rest.WithAuthToken(c.token)
	}
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := c.rest.BaseURL.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("github: parse base url: %w", err)
		}
		c.rest.BaseURL = u
	}
	return c, nil
}

func (c *Client) Username() string { return c.username }

// HasToken reports whether GraphQL queries can be made.
func (c *Client) HasToken() bool { return c.token != "" }

// Repositories lists the account's owned repositories, most recently
// updated first. The listing is fetched once and reused.
func (c *Client) Repositories(ctx context.Context) ([]wrapped.Repository, error) {
	repos, err := c.listRepos(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]wrapped.Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, wrapped.Repository{
			Name:     r.GetName(),
			Language: r.GetLanguage(),
			Fork:     r.GetFork(),
		})
	}
	return out, nil
}

func (c *Client) listRepos(ctx context.Context) ([]*gh.Repository, error) {
	c.reposMu.Lock()
	defer c.reposMu.Unlock()
	if c.repos != nil {
		return c.repos, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	repos, _, err := c.rest.Repositories.ListByUser(ctx, c.username, &gh.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: reposPerPage},
	})
	if err != nil {
		return nil, fmt.Errorf("github: list repos for %s: %w", c.username, err)
	}
	if repos == nil {
		repos = []*gh.Repository{}
	}
	c.repos = repos
	return repos, nil
}

// RepoCommitCount counts commits on a repository's default branch. A page
// size of one makes the last page number equal the commit count.
func (c *Client) RepoCommitCount(ctx context.Context, owner, repo string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	commits, resp, err := c.rest.Repositories.ListCommits(ctx, owner, repo, &gh.CommitsListOptions{
		ListOptions: gh.ListOptions{PerPage: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("github: commits for %s/%s: %w", owner, repo, err)
	}
	if resp != nil && resp.LastPage > 0 {
		return resp.LastPage, nil
	}
	return len(commits), nil
}

// commitCounts counts commits for every owned repo. Per-repo failures are
// logged and count as zero. The scan runs once per Client; callers get
// their own copy.
func (c *Client) commitCounts(ctx context.Context) ([]wrapped.RepoStat, error) {
	c.countsMu.Lock()
	defer c.countsMu.Unlock()
	if c.counts == nil {
		counts, err := c.scanCommitCounts(ctx)
		if err != nil {
			return nil, err
		}
		c.counts = counts
	}
	return append([]wrapped.RepoStat(nil), c.counts...), nil
}

func (c *Client) scanCommitCounts(ctx context.Context) ([]wrapped.RepoStat, error) {
	repos, err := c.listRepos(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]wrapped.RepoStat, len(repos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, r := range repos {
		i := i
		name := r.GetName()
		out[i].Name = name
		g.Go(func() error {
			n, err := c.RepoCommitCount(gctx, c.username, name)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				log.Printf("github: %v", err)
				return nil
			}
			out[i].Commits = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// TotalCommitCount sums commits across owned repositories.
func (c *Client) TotalCommitCount(ctx context.Context) (int, error) {
	counts, err := c.commitCounts(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, r := range counts {
		total += r.Commits
	}
	return total, nil
}

// TopReposByCommits returns the n owned repositories with the most commits.
func (c *Client) TopReposByCommits(ctx context.Context, n int) ([]wrapped.RepoStat, error) {
	counts, err := c.commitCounts(ctx)
	if err != nil {
		return nil, err
	}
	sortByCommits(counts)
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts, nil
}

// LanguagePercentages weights languages by bytes across owned repos.
// Repos whose language call fails are skipped.
func (c *Client) LanguagePercentages(ctx context.Context) ([]wrapped.LanguageShare, error) {
	repos, err := c.listRepos(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		bytes = map[string]int{}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for _, r := range repos {
		name := r.GetName()
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, c.timeout)
			defer cancel()
			langs, _, err := c.rest.Repositories.ListLanguages(cctx, c.username, name)
			if err != nil {
				log.Printf("github: languages for %s: %v", name, err)
				return nil
			}
			mu.Lock()
			for lang, n := range langs {
				bytes[lang] += n
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return shares(bytes), nil
}
