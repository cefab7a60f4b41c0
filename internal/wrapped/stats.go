package wrapped

// Stats is the complete dataset behind the Wrapped slides. A value is
// either a full live merge or the static fallback; callers never see a
// partially filled one.
type Stats struct {
	TotalCommits  int            `json:"total_commits"`
	TotalPRs      int            `json:"total_prs"`
	ProdIncidents int            `json:"prod_incidents"`
	RepoCount     int            `json:"repo_count"`
	Contributions int            `json:"contributions"`
	ActiveDays    int            `json:"active_days"`
	PeakDay       string         `json:"peak_day"`
	PeakTime      string         `json:"peak_time"`
	Languages     []LanguageStat `json:"languages"`
	TopRepos      []RepoStat     `json:"top_repos"`
	TopProjects   []ProjectStat  `json:"top_projects"`
}

type LanguageStat struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}

type RepoStat struct {
	Name    string `json:"name"`
	Commits int    `json:"commits"`
}

type ProjectStat struct {
	Name        string   `json:"name"`
	Metric      string   `json:"metric"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
}

// TopLanguage returns the first language, or false when there are none.
func (s Stats) TopLanguage() (LanguageStat, bool) {
	if len(s.Languages) == 0 {
		return LanguageStat{}, false
	}
	return s.Languages[0], true
}

const (
	defaultPeakDay       = "Tuesday"
	defaultPeakTime      = "11 PM"
	defaultProdIncidents = 3
	maxActiveDays        = 365
	activeDaysPerRepo    = 15
)

// Fallback is the static dataset shown whenever live data is unavailable.
func Fallback() Stats {
	return Stats{
		TotalCommits:  1280,
		TotalPRs:      73,
		ProdIncidents: defaultProdIncidents,
		RepoCount:     16,
		Contributions: 1353,
		ActiveDays:    210,
		PeakDay:       defaultPeakDay,
		PeakTime:      defaultPeakTime,
		Languages: []LanguageStat{
			{Name: "TypeScript", Percentage: 26, Color: "#3178c6"},
			{Name: "Go", Percentage: 24, Color: "#00add8"},
			{Name: "Ruby", Percentage: 22, Color: "#cc342d"},
			{Name: "Java", Percentage: 12, Color: "#ed8b00"},
			{Name: "JavaScript", Percentage: 10, Color: "#f7df1e"},
			{Name: "Python", Percentage: 6, Color: "#3776ab"},
		},
		TopRepos: []RepoStat{
			{Name: "squeak-backend", Commits: 423},
			{Name: "modaflows", Commits: 312},
			{Name: "squeak-frontend", Commits: 271},
			{Name: "pickup-app", Commits: 189},
			{Name: "shopify/checkout", Commits: 30},
		},
		TopProjects: []ProjectStat{
			{Name: "Squeak", Metric: "700+ users", Description: "Revenue-generating platform", Tech: []string{"React", "Go", "Supabase", "AWS"}},
			{Name: "Modaflows", Metric: "Private project", Description: "Enterprise workflow automation", Tech: []string{"TypeScript", "React"}},
			{Name: "PickUp", Metric: "Full-stack MVP", Description: "Social sports platform", Tech: []string{"Express.js", "React", "AWS"}},
		},
	}
}

// curatedLanguages is the hand-tuned breakdown used on the live path
// unless live language percentages are enabled.
func curatedLanguages() []LanguageStat {
	names := []struct {
		name string
		pct  int
	}{
		{"Python", 30},
		{"Ruby", 20},
		{"TypeScript", 18},
		{"Go", 15},
		{"Java", 10},
		{"JavaScript", 7},
	}
	out := make([]LanguageStat, 0, len(names))
	for _, n := range names {
		out = append(out, LanguageStat{Name: n.name, Percentage: n.pct, Color: LanguageColor(n.name)})
	}
	return out
}

// ActiveDays estimates days with activity from the repository count.
func ActiveDays(repoCount int) int {
	if repoCount < 0 {
		return 0
	}
	return min(maxActiveDays, repoCount*activeDaysPerRepo)
}

const defaultLanguageColor = "#1ED760"

var languageColors = map[string]string{
	"TypeScript": "#3178c6",
	"JavaScript": "#f7df1e",
	"Go":         "#00add8",
	"Python":     "#3776ab",
	"Java":       "#ed8b00",
	"C++":        "#00599c",
	"C":          "#a8b9cc",
	"Rust":       "#000000",
	"Ruby":       "#cc342d",
	"PHP":        "#777bb4",
	"Swift":      "#fa7343",
	"Kotlin":     "#7f52ff",
	"Dart":       "#0175c2",
	"HTML":       "#e34c26",
	"CSS":        "#1572b6",
	"Shell":      "#89e051",
	"Dockerfile": "#384d54",
	"Makefile":   "#427819",
}

// LanguageColor returns the display colour for a language name.
func LanguageColor(name string) string {
	if c, ok := languageColors[name]; ok {
		return c
	}
	return defaultLanguageColor
}

var personalities = map[string]string{
	"TypeScript": "THE ARCHITECT",
	"Ruby":       "THE OPTIMIZER",
	"Go":         "THE MINIMALIST",
	"Python":     "THE SCIENTIST",
	"Java":       "THE ENTERPRISE",
}

// Personality names the coding personality for the top language.
func (s Stats) Personality() string {
	top, ok := s.TopLanguage()
	if !ok {
		return "THE BUILDER"
	}
	if p, ok := personalities[top.Name]; ok {
		return p
	}
	return "THE BUILDER"
}

// GenreQuote is the one-liner shown under the top language.
func (s Stats) GenreQuote() string {
	top, _ := s.TopLanguage()
	switch top.Name {
	case "TypeScript":
		return `"If it doesn't have types, I don't want it."`
	case "Python":
		return `"Indentations are my love language."`
	case "Go":
		return `"Simplicity is the ultimate sophistication."`
	default:
		return "You have great taste in syntax."
	}
}
