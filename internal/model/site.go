package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidContent wraps every validation failure reported by Site.Validate.
var ErrInvalidContent = errors.New("invalid content")

// UseCase is one way the project's tool can be applied.
// Titles are unique within a site.
type UseCase struct {
	Title    string   `yaml:"title" json:"title"`
	Subtitle string   `yaml:"subtitle" json:"subtitle"`
	Tags     []string `yaml:"tags" json:"tags"`
	Points   []string `yaml:"points" json:"points"`
}

// Highlight is a short titled statement shown under the hero.
type Highlight struct {
	Title string `yaml:"title" json:"title"`
	Desc  string `yaml:"desc" json:"desc"`
}

type Project struct {
	Name       string      `yaml:"name" json:"name"`
	Tagline    string      `yaml:"tagline" json:"tagline"`
	OneLiner   string      `yaml:"one_liner" json:"one_liner"`
	Areas      []string    `yaml:"areas" json:"areas"`
	Highlights []Highlight `yaml:"highlights" json:"highlights"`
	Fit        []string    `yaml:"fit" json:"fit"`
}

type Links struct {
	Website  string `yaml:"website" json:"website"`
	GitHub   string `yaml:"github" json:"github"`
	Preprint string `yaml:"preprint" json:"preprint"`
}

// Note is the coordination note on the contact section.
type Note struct {
	Title      string   `yaml:"title" json:"title"`
	Desc       string   `yaml:"desc" json:"desc"`
	Paragraphs []string `yaml:"paragraphs" json:"paragraphs"`
}

type Contact struct {
	Emails      []string `yaml:"emails" json:"emails"`
	Affiliation string   `yaml:"affiliation" json:"affiliation"`
	Location    string   `yaml:"location" json:"location"`
	Links       Links    `yaml:"links" json:"links"`
	Note        Note     `yaml:"note" json:"note"`
}

// Section is a titled bullet card.
type Section struct {
	Title   string   `yaml:"title" json:"title"`
	Bullets []string `yaml:"bullets" json:"bullets"`
}

type Sections struct {
	About      Section `yaml:"about" json:"about"`
	Why        Section `yaml:"why" json:"why"`
	Principles Section `yaml:"principles" json:"principles"`
}

// All returns the sections in page order.
func (s Sections) All() []Section {
	return []Section{s.About, s.Why, s.Principles}
}

// Artifact is a labelled resource link. An empty URL is a placeholder that
// renders as the label alone.
type Artifact struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// Artifacts is the call-out under the use cases.
type Artifacts struct {
	Title string     `yaml:"title" json:"title"`
	Desc  string     `yaml:"desc" json:"desc"`
	Links []Artifact `yaml:"links" json:"links"`
}

type Opportunity struct {
	Title   string   `yaml:"title" json:"title"`
	Who     string   `yaml:"who" json:"who"`
	Desc    string   `yaml:"desc" json:"desc"`
	Bullets []string `yaml:"bullets" json:"bullets"`
}

// Step is a titled line of a process timeline or outcome grid.
type Step struct {
	Title string `yaml:"title" json:"title"`
	Desc  string `yaml:"desc" json:"desc"`
}

type Process struct {
	Title    string `yaml:"title" json:"title"`
	Desc     string `yaml:"desc" json:"desc"`
	Steps    []Step `yaml:"steps" json:"steps"`
	Outcomes []Step `yaml:"outcomes" json:"outcomes"`
}

type Checklist struct {
	Title string   `yaml:"title" json:"title"`
	Desc  string   `yaml:"desc" json:"desc"`
	Items []string `yaml:"items" json:"items"`
}

type FAQ struct {
	Q string `yaml:"q" json:"q"`
	A string `yaml:"a" json:"a"`
}

// NavItem is an in-page anchor.
type NavItem struct {
	Label  string `yaml:"label" json:"label"`
	Anchor string `yaml:"anchor" json:"anchor"`
}

// Site is the full static content of the overview page.
type Site struct {
	Project       Project       `yaml:"project" json:"project"`
	Contact       Contact       `yaml:"contact" json:"contact"`
	Sections      Sections      `yaml:"sections" json:"sections"`
	UseCases      []UseCase     `yaml:"use_cases" json:"use_cases"`
	Artifacts     Artifacts     `yaml:"artifacts" json:"artifacts"`
	Opportunities []Opportunity `yaml:"opportunities" json:"opportunities"`
	Process       Process       `yaml:"process" json:"process"`
	Requirements  []Checklist   `yaml:"requirements" json:"requirements"`
	FAQ           []FAQ         `yaml:"faq" json:"faq"`
}

// Anchors of the page, in navigation order.
const (
	AnchorOverview      = "overview"
	AnchorUseCases      = "use-cases"
	AnchorCollaboration = "collaboration"
	AnchorFAQ           = "faq"
	AnchorContact       = "contact"
)

// Nav is fixed; content files cannot change the page structure.
func Nav() []NavItem {
	return []NavItem{
		{Label: "Overview", Anchor: AnchorOverview},
		{Label: "Use cases", Anchor: AnchorUseCases},
		{Label: "Collaboration", Anchor: AnchorCollaboration},
		{Label: "FAQ", Anchor: AnchorFAQ},
		{Label: "Contact", Anchor: AnchorContact},
	}
}

// Validate checks the invariants the renderers rely on.
func (s *Site) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Project.Name) == "" {
		errs = append(errs, errors.New("project name is required"))
	}
	seen := make(map[string]int, len(s.UseCases))
	for i, uc := range s.UseCases {
		title := strings.TrimSpace(uc.Title)
		if title == "" {
			errs = append(errs, fmt.Errorf("use case %d: title is required", i+1))
			continue
		}
		if prev, dup := seen[title]; dup {
			errs = append(errs, fmt.Errorf("use case %d: duplicate title %q (first at %d)", i+1, title, prev+1))
			continue
		}
		seen[title] = i
	}
	for i, l := range s.Artifacts.Links {
		if strings.TrimSpace(l.Label) == "" {
			errs = append(errs, fmt.Errorf("artifact %d: label is required", i+1))
		}
	}
	for i, f := range s.FAQ {
		if strings.TrimSpace(f.Q) == "" {
			errs = append(errs, fmt.Errorf("faq %d: question is required", i+1))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidContent, errors.Join(errs...))
	}
	return nil
}

// Clone returns a deep copy so callers can never mutate shared content.
func (s *Site) Clone() *Site {
	c := *s
	c.Project.Areas = slices.Clone(s.Project.Areas)
	c.Project.Highlights = slices.Clone(s.Project.Highlights)
	c.Project.Fit = slices.Clone(s.Project.Fit)
	c.Contact.Emails = slices.Clone(s.Contact.Emails)
	c.Contact.Note.Paragraphs = slices.Clone(s.Contact.Note.Paragraphs)
	c.Sections.About.Bullets = slices.Clone(s.Sections.About.Bullets)
	c.Sections.Why.Bullets = slices.Clone(s.Sections.Why.Bullets)
	c.Sections.Principles.Bullets = slices.Clone(s.Sections.Principles.Bullets)
	c.UseCases = make([]UseCase, len(s.UseCases))
	for i, uc := range s.UseCases {
		c.UseCases[i] = UseCase{
			Title:    uc.Title,
			Subtitle: uc.Subtitle,
			Tags:     slices.Clone(uc.Tags),
			Points:   slices.Clone(uc.Points),
		}
	}
	c.Artifacts.Links = slices.Clone(s.Artifacts.Links)
	c.Opportunities = make([]Opportunity, len(s.Opportunities))
	for i, o := range s.Opportunities {
		o.Bullets = slices.Clone(o.Bullets)
		c.Opportunities[i] = o
	}
	c.Process.Steps = slices.Clone(s.Process.Steps)
	c.Process.Outcomes = slices.Clone(s.Process.Outcomes)
	c.Requirements = make([]Checklist, len(s.Requirements))
	for i, r := range s.Requirements {
		r.Items = slices.Clone(r.Items)
		c.Requirements[i] = r
	}
	c.FAQ = slices.Clone(s.FAQ)
	return &c
}
