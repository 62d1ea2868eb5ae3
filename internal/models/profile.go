package models

import "strings"

// NavItem is a single in-page navigation link
type NavItem struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

// Anchor returns the fragment identifier the link targets, without the '#'
func (n NavItem) Anchor() string {
	return strings.TrimPrefix(n.Href, "#")
}

// Profile holds the personal copy shown across the hero, about, contact and
// footer sections
type Profile struct {
	Name           string   `json:"name"`
	FullName       string   `json:"full_name"`
	Roles          []string `json:"roles"`
	Tagline        string   `json:"tagline"`
	About          string   `json:"about"` // Markdown
	Specialization string   `json:"specialization"`
	Focus          string   `json:"focus"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Location       string   `json:"location"`
	LinkedInURL    string   `json:"linkedin_url"`
	GitHubURL      string   `json:"github_url"`
	Footer         string   `json:"footer"`
	Year           int      `json:"year"`
}

// Portfolio is the complete set of page content
type Portfolio struct {
	Profile     Profile         `json:"profile"`
	Nav         []NavItem       `json:"nav"`
	Skills      []SkillCategory `json:"skills"`
	Projects    []Project       `json:"projects"`
	Internships []Internship    `json:"internships"`
}
