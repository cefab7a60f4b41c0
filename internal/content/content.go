// Package content holds the résumé text rendered by both themes.
package content

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed resume.yaml
var resumeYAML []byte

type Resume struct {
	Profile     Profile      `yaml:"profile"`
	About       []Section    `yaml:"about"`
	Interests   []string     `yaml:"interests"`
	Experiences []Experience `yaml:"experiences"`
	Projects    []Project    `yaml:"projects"`
	Skills      []SkillGroup `yaml:"skills"`
	Education   Education    `yaml:"education"`
	Wrapped     WrappedCopy  `yaml:"wrapped"`
	Blog        string       `yaml:"blog"`
}

type Profile struct {
	Name     string   `yaml:"name"`
	Initials string   `yaml:"initials"`
	Headline string   `yaml:"headline"`
	Location string   `yaml:"location"`
	Status   string   `yaml:"status"`
	Greeting []string `yaml:"greeting"`
	Links    []Link   `yaml:"links"`
}

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

type Section struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type Experience struct {
	Company      string   `yaml:"company"`
	Role         string   `yaml:"role"`
	Period       string   `yaml:"period"`
	Duration     string   `yaml:"duration"`
	Achievements []string `yaml:"achievements"`
}

// Project is a side project. Progress is a percentage the player's
// now-playing bar climbs to.
type Project struct {
	Name         string   `yaml:"name"`
	Technologies []string `yaml:"technologies"`
	Progress     int      `yaml:"progress"`
	Description  string   `yaml:"description"`
}

type SkillGroup struct {
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

type Education struct {
	School   string   `yaml:"school"`
	Location string   `yaml:"location"`
	Degree   string   `yaml:"degree"`
	Expected string   `yaml:"expected"`
	Courses  []string `yaml:"courses"`
}

// WrappedCopy is the hand-written text on the Wrapped slides that does not
// come from GitHub.
type WrappedCopy struct {
	Lineup  []Artist `yaml:"lineup"`
	Moments []Moment `yaml:"moments"`
}

type Artist struct {
	Name   string `yaml:"name"`
	Role   string `yaml:"role"`
	Period string `yaml:"period"`
}

type Moment struct {
	Title  string `yaml:"title"`
	Detail string `yaml:"detail"`
}

// Load decodes the embedded résumé.
func Load() (Resume, error) {
	return Parse(resumeYAML)
}

// Parse decodes a résumé document and checks the fields the views index
// into.
func Parse(data []byte) (Resume, error) {
	var r Resume
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Resume{}, fmt.Errorf("content: decode resume: %w", err)
	}
	if r.Profile.Name == "" {
		return Resume{}, fmt.Errorf("content: resume has no profile name")
	}
	if len(r.Projects) == 0 {
		return Resume{}, fmt.Errorf("content: resume has no projects")
	}
	for _, p := range r.Projects {
		if p.Progress < 0 || p.Progress > 100 {
			return Resume{}, fmt.Errorf("content: project %q progress %d out of range", p.Name, p.Progress)
		}
	}
	return r, nil
}
