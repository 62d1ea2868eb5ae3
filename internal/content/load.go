package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"mukesh.dev/internal/models"
)

//go:embed schema.json
var schema []byte

// SchemaError reports a content file that does not match the content schema
type SchemaError struct {
	Path   string
	Errors []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("content file %s is invalid: %s", e.Path, strings.Join(e.Errors, "; "))
}

// Load reads a JSON content file. An empty path returns the built-in content.
func Load(path string) (*models.Portfolio, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	return Parse(path, data)
}

// Parse validates raw JSON content against the schema and decodes it.
// name is only used in error messages.
func Parse(name string, data []byte) (*models.Portfolio, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate content file %s: %w", name, err)
	}
	if !result.Valid() {
		se := &SchemaError{Path: name}
		for _, desc := range result.Errors() {
			se.Errors = append(se.Errors, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return nil, se
	}

	var portfolio models.Portfolio
	if err := json.Unmarshal(data, &portfolio); err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", name, err)
	}

	return &portfolio, nil
}

// Clone returns a deep copy so callers cannot mutate shared fixtures
func Clone(p *models.Portfolio) *models.Portfolio {
	out := *p
	out.Profile.Roles = cloneStrings(p.Profile.Roles)
	out.Nav = append([]models.NavItem(nil), p.Nav...)

	out.Skills = make([]models.SkillCategory, len(p.Skills))
	for i, s := range p.Skills {
		out.Skills[i] = models.SkillCategory{Name: s.Name, Skills: cloneStrings(s.Skills)}
	}

	out.Projects = make([]models.Project, len(p.Projects))
	for i, pr := range p.Projects {
		pr.Technologies = cloneStrings(pr.Technologies)
		pr.Features = cloneStrings(pr.Features)
		out.Projects[i] = pr
	}

	out.Internships = make([]models.Internship, len(p.Internships))
	for i, in := range p.Internships {
		in.SkillsGained = cloneStrings(in.SkillsGained)
		out.Internships[i] = in
	}

	return &out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
