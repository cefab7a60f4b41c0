package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/saai151/portfolio/internal/wrapped"
)

func newTestClient(t *testing.T, token string, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c, err := New(Options{
		Username:   "octo",
		Token:      token,
		BaseURL:    srv.URL,
		GraphQLURL: srv.URL + "/graphql",
		Timeout:    2 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func repoMux(t *testing.T, commits map[string]int) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo/repos", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "updated", r.URL.Query().Get("sort"))
		writeJSON(t, w, []map[string]any{
			{"name": "alpha", "language": "Go"},
			{"name": "beta", "language": "TypeScript"},
			{"name": "gamma", "language": nil, "fork": true},
		})
	})
	mux.HandleFunc("/repos/octo/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/repos/octo/"), "/")
		require.Len(t, parts, 2)
		name, kind := parts[0], parts[1]
		switch kind {
		case "commits":
			n, ok := commits[name]
			if !ok {
				http.Error(w, `{"message":"Git Repository is empty."}`, http.StatusConflict)
				return
			}
			if n > 1 {
				w.Header().Set("Link", fmt.Sprintf(`<%s?per_page=1&page=2>; rel="next", <%s?per_page=1&page=%d>; rel="last"`, r.URL.Path, r.URL.Path, n))
			}
			writeJSON(t, w, []map[string]any{{"sha": "abc"}})
		case "languages":
			switch name {
			case "alpha":
				writeJSON(t, w, map[string]int{"Go": 7000, "Makefile": 500})
			case "beta":
				writeJSON(t, w, map[string]int{"TypeScript": 2000, "CSS": 500})
			default:
				http.Error(w, "nope", http.StatusInternalServerError)
			}
		default:
			http.NotFound(w, r)
		}
	})
	return mux
}

func TestRepositories(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "", repoMux(t, nil))
	repos, err := c.Repositories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []wrapped.Repository{
		{Name: "alpha", Language: "Go"},
		{Name: "beta", Language: "TypeScript"},
		{Name: "gamma", Fork: true},
	}, repos)
}

func TestCommitCountsFromLinkHeader(t *testing.T) {
	t.Parallel()

	// gamma is empty and answers 409; it counts as zero
	c := newTestClient(t, "", repoMux(t, map[string]int{"alpha": 42, "beta": 1}))
	ctx := context.Background()

	n, err := c.RepoCommitCount(ctx, "octo", "alpha")
	require.NoError(t, err)
	require.Equal(t, 42, n)

	n, err = c.RepoCommitCount(ctx, "octo", "beta")
	require.NoError(t, err)
	require.Equal(t, 1, n, "without a Link header the page length is the count")

	total, err := c.TotalCommitCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 43, total)

	top, err := c.TopReposByCommits(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []wrapped.RepoStat{{Name: "alpha", Commits: 42}, {Name: "beta", Commits: 1}}, top)
}

func TestLanguagePercentages(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, "", repoMux(t, nil))
	got, err := c.LanguagePercentages(context.Background())
	require.NoError(t, err)
	require.Equal(t, []wrapped.LanguageShare{
		{Name: "Go", Percentage: 70},
		{Name: "TypeScript", Percentage: 20},
		{Name: "CSS", Percentage: 5},
		{Name: "Makefile", Percentage: 5},
	}, got)
}

func TestRepositoryListingIsCached(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo/repos", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(t, w, []map[string]any{})
	})
	c := newTestClient(t, "", mux)
	for i := 0; i < 3; i++ {
		repos, err := c.Repositories(context.Background())
		require.NoError(t, err)
		require.Empty(t, repos)
	}
	require.Equal(t, int32(1), hits.Load())
}

func graphqlHandler(t *testing.T, respond func(req graphqlRequest) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req graphqlRequest
		require.NoError(t, json.Unmarshal(body, &req))
		writeJSON(t, w, respond(req))
	}
}

func TestUserContributions(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", graphqlHandler(t, func(req graphqlRequest) any {
		require.Contains(t, req.Query, "totalCommitContributions")
		require.Equal(t, "octo", req.Variables["username"])
		return map[string]any{"data": map[string]any{"user": map[string]any{
			"contributionsCollection": map[string]any{
				"totalCommitContributions":      812,
				"totalPullRequestContributions": 64,
				"totalIssueContributions":       9,
				"totalRepositoryContributions":  4,
				"restrictedContributionsCount":  120,
			},
		}}}
	}))
	c := newTestClient(t, "secret", mux)

	got, err := c.UserContributions(context.Background())
	require.NoError(t, err)
	require.Equal(t, wrapped.Contributions{Commits: 812, PullRequests: 64, Issues: 9, Repositories: 4, Restricted: 120}, got)
}

func TestContributionsByRepo(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", graphqlHandler(t, func(req graphqlRequest) any {
		require.EqualValues(t, maxContributedRepos, req.Variables["max"])
		entry := func(owner, name string, n int) map[string]any {
			return map[string]any{
				"repository":    map[string]any{"name": name, "owner": map[string]any{"login": owner}},
				"contributions": map[string]any{"totalCount": n},
			}
		}
		return map[string]any{"data": map[string]any{"user": map[string]any{
			"contributionsCollection": map[string]any{
				"commitContributionsByRepository": []any{
					entry("octo", "alpha", 300),
					entry("Shopify", "checkout", 31),
				},
			},
		}}}
	}))
	c := newTestClient(t, "secret", mux)

	got, err := c.ContributionsByRepo(context.Background())
	require.NoError(t, err)
	require.Equal(t, []wrapped.RepoStat{{Name: "octo/alpha", Commits: 300}, {Name: "Shopify/checkout", Commits: 31}}, got)
}

func TestGraphQLErrors(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", graphqlHandler(t, func(graphqlRequest) any {
		return map[string]any{
			"data":   nil,
			"errors": []map[string]any{{"message": "Could not resolve to a User", "type": "NOT_FOUND"}},
		}
	}))
	c := newTestClient(t, "secret", mux)

	_, err := c.UserContributions(context.Background())
	var gerr *GraphQLError
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, []string{"Could not resolve to a User"}, gerr.Messages)
}

func TestGraphQLNeedsToken(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) { hits.Add(1) })
	c := newTestClient(t, "", mux)

	_, err := c.UserContributions(context.Background())
	require.True(t, errors.Is(err, ErrNoToken))
	_, err = c.ContributionsByRepo(context.Background())
	require.ErrorIs(t, err, ErrNoToken)
	require.Zero(t, hits.Load())
	require.False(t, c.HasToken())
}

func TestGraphQLHTTPFailure(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
	})
	c := newTestClient(t, "secret", mux)

	_, err := c.ContributionsByRepo(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}

func TestNewDefaults(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	require.Equal(t, DefaultUsername, c.Username())
	require.Equal(t, DefaultGraphQLURL, c.graphqlURL)
	require.Equal(t, DefaultTimeout, c.timeout)
}
