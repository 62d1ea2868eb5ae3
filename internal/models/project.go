package models

// Project represents a portfolio project card
type Project struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
	Technologies  []string `json:"technologies"`
	LiveDemoURL   string   `json:"live_demo_url"`
	RepositoryURL string   `json:"repository_url"`
	Features      []string `json:"features"`
}

// ProjectList wraps the array of projects
type ProjectList struct {
	Projects []Project `json:"projects"`
}

// Internship represents one internship entry
type Internship struct {
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Duration     string   `json:"duration"`
	Description  string   `json:"description"`
	SkillsGained []string `json:"skills_gained"`
}

// Initials returns the badge letters for the company: the first letter of
// each of its first two words.
func (i Internship) Initials() string {
	var out []rune
	word := true
	for _, r := range i.Company {
		if r == ' ' {
			word = true
			continue
		}
		if word {
			out = append(out, r)
			word = false
			if len(out) == 2 {
				break
			}
		}
	}
	return string(out)
}

// SkillCategory is a named, ordered list of skills
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}
