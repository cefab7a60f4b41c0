package wrapped

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Contributions is the aggregate contribution summary for the account,
// counted across every repository it contributed to.
type Contributions struct {
	Commits      int
	PullRequests int
	Issues       int
	Repositories int
	Restricted   int
}

// Repository is one repository owned by the account.
type Repository struct {
	Name     string
	Language string
	Fork     bool
}

// LanguageShare is a language's share of the owned code, in percent.
type LanguageShare struct {
	Name       string
	Percentage float64
}

// Source provides the raw GitHub data the loader merges.
type Source interface {
	UserContributions(ctx context.Context) (Contributions, error)
	ContributionsByRepo(ctx context.Context) ([]RepoStat, error)
	Repositories(ctx context.Context) ([]Repository, error)
	TotalCommitCount(ctx context.Context) (int, error)
	TopReposByCommits(ctx context.Context, n int) ([]RepoStat, error)
	LanguagePercentages(ctx context.Context) ([]LanguageShare, error)
}

// Path records which data path produced a Result.
type Path string

const (
	PathPrimary   Path = "primary"
	PathSecondary Path = "secondary"
	PathFallback  Path = "fallback"
)

const (
	DefaultCommitAdjustment = 30
	DefaultPRAdjustment     = 10
	DefaultTopN             = 5
	DefaultAdjustmentRepo   = "shopify/checkout"

	commitsPerPR     = 20
	maxTopProjects   = 3
	maxLiveLanguages = 5
)

var projectDescriptions = [maxTopProjects]string{"Most commits", "Second most active", "Third most active"}

// Options tunes the merge. A zero adjustment or an empty AdjustmentRepo
// turns that adjustment off; DefaultOptions carries the usual values.
type Options struct {
	CommitAdjustment int
	PRAdjustment     int
	TopN             int
	AdjustmentRepo   string
	LiveLanguages    bool
}

func DefaultOptions() Options {
	return Options{
		CommitAdjustment: DefaultCommitAdjustment,
		PRAdjustment:     DefaultPRAdjustment,
		TopN:             DefaultTopN,
		AdjustmentRepo:   DefaultAdjustmentRepo,
	}
}

func (o Options) withDefaults() Options {
	o.CommitAdjustment = max(o.CommitAdjustment, 0)
	o.PRAdjustment = max(o.PRAdjustment, 0)
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	o.AdjustmentRepo = strings.TrimSpace(o.AdjustmentRepo)
	return o
}

// Result is the single value a load resolves to.
type Result struct {
	Stats Stats `json:"stats"`
	Live  bool  `json:"live"`
	Path  Path  `json:"path"`
}

// Loader resolves the Wrapped dataset. Load never fails: any problem on
// the live path ends in the static fallback.
type Loader struct {
	Source        Source
	HasCredential bool
	Options       Options
}

func NewLoader(src Source, hasCredential bool, opts Options) *Loader {
	return &Loader{Source: src, HasCredential: hasCredential, Options: opts}
}

func (l *Loader) Load(ctx context.Context) Result {
	attempt := uuid.NewString()[:8]
	if !l.HasCredential || l.Source == nil {
		log.Printf("wrapped[%s]: no github credential, using static stats", attempt)
		return fallbackResult()
	}

	stats, path, err := l.live(ctx, attempt)
	if err != nil {
		log.Printf("wrapped[%s]: live load failed, using static stats: %v", attempt, err)
		return fallbackResult()
	}
	log.Printf("wrapped[%s]: loaded via %s path (%d commits, %d repos)", attempt, path, stats.TotalCommits, stats.RepoCount)
	return Result{Stats: stats, Live: true, Path: path}
}

func fallbackResult() Result {
	return Result{Stats: Fallback(), Path: PathFallback}
}

func (l *Loader) live(ctx context.Context, attempt string) (Stats, Path, error) {
	opts := l.Options.withDefaults()

	path := PathPrimary
	contrib, ranking, err := l.primary(ctx)
	if err != nil {
		log.Printf("wrapped[%s]: contribution query failed, scanning owned repos: %v", attempt, err)
		path = PathSecondary
		contrib = Contributions{}
		if contrib.Commits, ranking, err = l.secondary(ctx, opts.TopN); err != nil {
			return Stats{}, "", err
		}
	}

	repos, err := l.Source.Repositories(ctx)
	if err != nil {
		return Stats{}, "", fmt.Errorf("list repositories: %w", err)
	}

	languages := curatedLanguages()
	if opts.LiveLanguages {
		shares, err := l.Source.LanguagePercentages(ctx)
		if err != nil {
			return Stats{}, "", fmt.Errorf("language breakdown: %w", err)
		}
		languages = liveLanguages(shares)
	}

	ranking = rankRepos(ranking, opts.TopN)
	projects := topProjects(ranking, repos)

	commits := contrib.Commits + opts.CommitAdjustment
	prs := contrib.PullRequests
	if prs == 0 {
		prs = commits / commitsPerPR
	}
	prs += opts.PRAdjustment

	ranking = withAdjustmentRepo(ranking, opts.AdjustmentRepo, opts.CommitAdjustment, opts.TopN)

	return Stats{
		TotalCommits:  commits,
		TotalPRs:      prs,
		ProdIncidents: defaultProdIncidents,
		RepoCount:     len(repos),
		Contributions: commits + prs,
		ActiveDays:    ActiveDays(len(repos)),
		PeakDay:       defaultPeakDay,
		PeakTime:      defaultPeakTime,
		Languages:     languages,
		TopRepos:      ranking,
		TopProjects:   projects,
	}, path, nil
}

// primary runs both contribution queries together. Either failing discards
// the pair.
func (l *Loader) primary(ctx context.Context) (Contributions, []RepoStat, error) {
	var (
		contrib Contributions
		byRepo  []RepoStat
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := l.Source.UserContributions(gctx)
		if err != nil {
			return fmt.Errorf("user contributions: %w", err)
		}
		contrib = c
		return nil
	})
	g.Go(func() error {
		r, err := l.Source.ContributionsByRepo(gctx)
		if err != nil {
			return fmt.Errorf("contributions by repo: %w", err)
		}
		byRepo = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return Contributions{}, nil, err
	}
	return contrib, byRepo, nil
}

func (l *Loader) secondary(ctx context.Context, topN int) (int, []RepoStat, error) {
	var (
		total int
		top   []RepoStat
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := l.Source.TotalCommitCount(gctx)
		if err != nil {
			return fmt.Errorf("total commit count: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		r, err := l.Source.TopReposByCommits(gctx, topN)
		if err != nil {
			return fmt.Errorf("top repos: %w", err)
		}
		top = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, nil, err
	}
	return total, top, nil
}

// rankRepos returns a sorted copy, most commits first, of at most n repos.
func rankRepos(repos []RepoStat, n int) []RepoStat {
	out := append([]RepoStat(nil), repos...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Commits > out[j].Commits })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// withAdjustmentRepo adds the adjustment repository to the ranking unless
// a ranked repo already refers to it, keeping the ranking sorted.
func withAdjustmentRepo(ranking []RepoStat, repo string, commits, n int) []RepoStat {
	if repo == "" || commits <= 0 {
		return ranking
	}
	keywords := strings.FieldsFunc(strings.ToLower(repo), func(r rune) bool { return r == '/' })
	for _, r := range ranking {
		name := strings.ToLower(r.Name)
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				return ranking
			}
		}
	}
	return rankRepos(append(ranking, RepoStat{Name: repo, Commits: commits}), n)
}

func topProjects(ranking []RepoStat, repos []Repository) []ProjectStat {
	out := make([]ProjectStat, 0, maxTopProjects)
	for i, r := range ranking {
		if i == maxTopProjects {
			break
		}
		name := r.Name
		if _, short, ok := strings.Cut(name, "/"); ok {
			name = short
		}
		tech := []string{"Various"}
		if lang := repoLanguage(r.Name, repos); lang != "" {
			tech = []string{lang}
		}
		out = append(out, ProjectStat{
			Name:        name,
			Metric:      fmt.Sprintf("%d commits", r.Commits),
			Description: projectDescriptions[i],
			Tech:        tech,
		})
	}
	return out
}

// repoLanguage finds the owned repo a ranked name refers to. Ranked names
// may be qualified as owner/name.
func repoLanguage(ranked string, repos []Repository) string {
	for _, repo := range repos {
		if repo.Name == "" {
			continue
		}
		if repo.Name == ranked || strings.Contains(ranked, repo.Name) {
			return repo.Language
		}
	}
	return ""
}

func liveLanguages(shares []LanguageShare) []LanguageStat {
	sorted := append([]LanguageShare(nil), shares...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Percentage > sorted[j].Percentage })
	if len(sorted) > maxLiveLanguages {
		sorted = sorted[:maxLiveLanguages]
	}
	out := make([]LanguageStat, 0, len(sorted))
	for _, s := range sorted {
		out = append(out, LanguageStat{
			Name:       s.Name,
			Percentage: int(s.Percentage + 0.5),
			Color:      LanguageColor(s.Name),
		})
	}
	return out
}
