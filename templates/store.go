package templates

import (
	_ "embed"
	"os"

	"flyer/models"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var builtin []byte

type file struct {
	Templates []models.Template            `yaml:"templates"`
	SlotRules map[string][]models.SlotRule `yaml:"slotRules"`
}

// Store is a read-only, ordered set of flyer templates.
type Store struct {
	templates []models.Template
	byID      map[string]int
	slotRules map[string][]models.SlotRule
}

// Builtin returns the templates compiled into the binary.
func Builtin() *Store {
	s, err := Parse(builtin)
	if err != nil {
		panic(errors.Wrap(err, "builtin templates"))
	}
	return s
}

// Load reads templates from a YAML file. An empty path yields the builtin set.
func Load(path string) (*Store, error) {
	if path == "" {
		return Builtin(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read templates file %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "templates file %s", path)
	}
	return s, nil
}

func Parse(data []byte) (*Store, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	if len(f.Templates) == 0 {
		return nil, errors.New("no templates defined")
	}

	s := &Store{
		templates: f.Templates,
		byID:      make(map[string]int, len(f.Templates)),
		slotRules: f.SlotRules,
	}
	for i, t := range f.Templates {
		if t.ID == "" {
			return nil, errors.Errorf("template %d has no id", i)
		}
		if _, dup := s.byID[t.ID]; dup {
			return nil, errors.Errorf("duplicate template id %q", t.ID)
		}
		seen := make(map[string]bool, len(t.Layout.Elements))
		for _, el := range t.Layout.Elements {
			if el.ID == "" || seen[el.ID] {
				return nil, errors.Errorf("template %q: missing or duplicate element id %q", t.ID, el.ID)
			}
			seen[el.ID] = true
		}
		s.byID[t.ID] = i
	}
	return s, nil
}

// All returns the templates in file order.
func (s *Store) All() []models.Template {
	out := make([]models.Template, len(s.templates))
	copy(out, s.templates)
	return out
}

func (s *Store) Find(id string) (models.Template, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Template{}, false
	}
	return s.templates[i], true
}

func (s *Store) ByCategory(category string) []models.Template {
	var out []models.Template
	for _, t := range s.templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Categories returns each category once, in order of first appearance.
func (s *Store) Categories() []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range s.templates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// SlotRules returns the extra slot rules configured for a category.
func (s *Store) SlotRules(category string) []models.SlotRule {
	return s.slotRules[category]
}
