package slides

// Kind tags what a slide shows. The renderer switches on it.
type Kind int

const (
	Intro Kind = iota
	Hook
	Genres
	Lineup
	Habits
	Moments
	TopRepos
	Personality
	Share
)

func (k Kind) String() string {
	switch k {
	case Intro:
		return "intro"
	case Hook:
		return "hook"
	case Genres:
		return "genres"
	case Lineup:
		return "lineup"
	case Habits:
		return "habits"
	case Moments:
		return "moments"
	case TopRepos:
		return "top_repos"
	case Personality:
		return "personality"
	case Share:
		return "share"
	default:
		return "unknown"
	}
}

// Slide describes one panel of the deck. Label is the small heading over
// the slide; Accent is the hex colour its background and highlights use.
type Slide struct {
	Kind   Kind
	Label  string
	Accent string
}

// Deck returns the Wrapped slides in presentation order.
func Deck() []Slide {
	return []Slide{
		{Kind: Intro, Label: "WRAPPED", Accent: "#1ED760"},
		{Kind: Hook, Label: "YOUR YEAR IN CODE", Accent: "#00D4FF"},
		{Kind: Genres, Label: "TOP GENRE", Accent: "#8B5CF6"},
		{Kind: Lineup, Label: "TOP ARTISTS", Accent: "#F97316"},
		{Kind: Habits, Label: "LISTENING HABITS", Accent: "#EAB308"},
		{Kind: Moments, Label: "YOUR TOP MOMENTS", Accent: "#EC4899"},
		{Kind: TopRepos, Label: "ON REPEAT", Accent: "#10B981"},
		{Kind: Personality, Label: "YOUR CODING PERSONALITY", Accent: "#A855F7"},
		{Kind: Share, Label: "MY WRAPPED", Accent: "#1ED760"},
	}
}
