package github

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/saai151/portfolio/internal/wrapped"
)

const contributionsQuery = `query($username: String!) {
  user(login: $username) {
    contributionsCollection {
      totalCommitContributions
      totalPullRequestContributions
      totalIssueContributions
      totalRepositoryContributions
      restrictedContributionsCount
    }
  }
}`

const contributionsByRepoQuery = `query($username: String!, $max: Int!) {
  user(login: $username) {
    contributionsCollection {
      commitContributionsByRepository(maxRepositories: $max) {
        repository {
          name
          owner { login }
        }
        contributions { totalCount }
      }
    }
  }
}`

const maxContributedRepos = 10

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// GraphQLError carries the errors array of a GraphQL response that
// otherwise succeeded at the HTTP level.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "github: graphql: " + strings.Join(e.Messages, "; ")
}

// graphql posts a query through the authenticated REST client so both share
// a transport and rate-limit handling.
func (c *Client) graphql(ctx context.Context, query string, vars map[string]any, out any) error {
	if c.token == "" {
		return ErrNoToken
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.rest.NewRequest(http.MethodPost, c.graphqlURL, graphqlRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("github: build graphql request: %w", err)
	}
	var resp graphqlResponse
	if _, err := c.rest.Do(ctx, req, &resp); err != nil {
		return fmt.Errorf("github: graphql: %w", err)
	}
	if len(resp.Errors) > 0 {
		gerr := &GraphQLError{}
		for _, e := range resp.Errors {
			gerr.Messages = append(gerr.Messages, e.Message)
		}
		return gerr
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return fmt.Errorf("github: graphql: empty data")
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("github: decode graphql data: %w", err)
	}
	return nil
}

// UserContributions returns the contribution totals for the account across
// every repository, including ones it does not own.
func (c *Client) UserContributions(ctx context.Context) (wrapped.Contributions, error) {
	var data struct {
		User *struct {
			ContributionsCollection struct {
				TotalCommitContributions      int `json:"totalCommitContributions"`
				TotalPullRequestContributions int `json:"totalPullRequestContributions"`
				TotalIssueContributions       int `json:"totalIssueContributions"`
				TotalRepositoryContributions  int `json:"totalRepositoryContributions"`
				RestrictedContributionsCount  int `json:"restrictedContributionsCount"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	}
	if err := c.graphql(ctx, contributionsQuery, map[string]any{"username": c.username}, &data); err != nil {
		return wrapped.Contributions{}, err
	}
	if data.User == nil {
		return wrapped.Contributions{}, fmt.Errorf("github: user %s not found", c.username)
	}
	cc := data.User.ContributionsCollection
	return wrapped.Contributions{
		Commits:      cc.TotalCommitContributions,
		PullRequests: cc.TotalPullRequestContributions,
		Issues:       cc.TotalIssueContributions,
		Repositories: cc.TotalRepositoryContributions,
		Restricted:   cc.RestrictedContributionsCount,
	}, nil
}

// ContributionsByRepo returns commit counts per contributed repository,
// named owner/name.
func (c *Client) ContributionsByRepo(ctx context.Context) ([]wrapped.RepoStat, error) {
	var data struct {
		User *struct {
			ContributionsCollection struct {
				ByRepository []struct {
					Repository struct {
						Name  string `json:"name"`
						Owner struct {
							Login string `json:"login"`
						} `json:"owner"`
					} `json:"repository"`
					Contributions struct {
						TotalCount int `json:"totalCount"`
					} `json:"contributions"`
				} `json:"commitContributionsByRepository"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	}
	vars := map[string]any{"username": c.username, "max": maxContributedRepos}
	if err := c.graphql(ctx, contributionsByRepoQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, fmt.Errorf("github: user %s not found", c.username)
	}
	items := data.User.ContributionsCollection.ByRepository
	out := make([]wrapped.RepoStat, 0, len(items))
	for _, it := range items {
		out = append(out, wrapped.RepoStat{
			Name:    it.Repository.Owner.Login + "/" + it.Repository.Name,
			Commits: it.Contributions.TotalCount,
		})
	}
	return out, nil
}

func sortByCommits(repos []wrapped.RepoStat) {
	sort.SliceStable(repos, func(i, j int) bool { return repos[i].Commits > repos[j].Commits })
}

// shares turns byte counts into rounded percentages, largest first. Ties
// break by name so output is stable.
func shares(bytes map[string]int) []wrapped.LanguageShare {
	total := 0
	for _, n := range bytes {
		total += n
	}
	if total == 0 {
		return nil
	}
	out := make([]wrapped.LanguageShare, 0, len(bytes))
	for name, n := range bytes {
		pct := math.Round(float64(n) / float64(total) * 100)
		out = append(out, wrapped.LanguageShare{Name: name, Percentage: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return out[i].Name < out[j].Name
	})
	return out
}
