package engine

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template is a path archetype. Templates are read-only input to path creation.
type Template struct {
	Key              string           `json:"key,omitempty"`
	Name             string           `json:"name"`
	Icon             string           `json:"icon"`
	Color            string           `json:"color,omitempty"`
	Attributes       []Attribute      `json:"attributes"`
	PrimaryAttribute Attribute        `json:"primaryAttribute"`
	Titles           []string         `json:"titles"`
	Perk             *Perk            `json:"perk,omitempty"`
	Tasks            []TaskDefinition `json:"tasks"`
}

var defaultTitles = []string{"Novice", "Adept", "Master"}

const defaultIcon = "⭐"

// Validate checks the structural rules every path relies on.
func (t Template) Validate() error {
	fail := func(format string, args ...any) error {
		return &TemplateError{Key: t.Key, Reason: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(t.Name) == "" {
		return fail("name is required")
	}
	if len(t.Attributes) == 0 {
		return fail("at least one attribute is required")
	}
	inSet := make(map[Attribute]bool, len(t.Attributes))
	for _, a := range t.Attributes {
		if !a.IsValid() {
			return fail("unknown attribute %q", a)
		}
		if inSet[a] {
			return fail("duplicate attribute %q", a)
		}
		inSet[a] = true
	}
	if !inSet[t.PrimaryAttribute] {
		return fail("primary attribute %q is not one of the path attributes", t.PrimaryAttribute)
	}
	if len(t.Titles) == 0 {
		return fail("at least one title is required")
	}
	if len(t.Tasks) == 0 {
		return fail("at least one task is required")
	}
	for i, d := range t.Tasks {
		if strings.TrimSpace(d.Name) == "" {
			return fail("task %d: name is required", i+1)
		}
		switch d.Frequency {
		case FrequencyDaily:
			if d.TimesPerWeek != 0 {
				return fail("task %q: timesPerWeek only applies to weekly tasks", d.Name)
			}
		case FrequencyWeekly:
			if d.TimesPerWeek < 1 || d.TimesPerWeek > 7 {
				return fail("task %q: timesPerWeek must be 1..7, got %d", d.Name, d.TimesPerWeek)
			}
		default:
			return fail("task %q: invalid frequency %q", d.Name, d.Frequency)
		}
		if d.XPReward <= 0 {
			return fail("task %q: xpReward must be positive", d.Name)
		}
		for a, v := range d.AttributeRewards {
			if !inSet[a] {
				return fail("task %q: reward attribute %q is not one of the path attributes", d.Name, a)
			}
			if v <= 0 {
				return fail("task %q: reward for %q must be positive", d.Name, a)
			}
		}
	}
	if t.Perk != nil {
		if !inSet[t.Perk.Attribute] {
			return fail("perk attribute %q is not one of the path attributes", t.Perk.Attribute)
		}
		if t.Perk.Percent < 1 || t.Perk.Percent > 100 {
			return fail("perk percent must be 1..100, got %d", t.Perk.Percent)
		}
	}
	return nil
}

// Catalog is a keyed, read-only set of templates.
type Catalog struct {
	templates map[string]Template
}

func NewCatalog(templates ...Template) (Catalog, error) {
	c := Catalog{templates: make(map[string]Template, len(templates))}
	for _, t := range templates {
		key := normalizeTemplateKey(t.Key)
		if key == "" {
			return Catalog{}, &TemplateError{Reason: "template key is required"}
		}
		t.Key = key
		if err := t.Validate(); err != nil {
			return Catalog{}, err
		}
		c.templates[key] = t
	}
	return c, nil
}

func normalizeTemplateKey(key string) string {
	return strings.TrimSpace(strings.ToLower(key))
}

// Lookup returns the template for key.
func (c Catalog) Lookup(key string) (Template, error) {
	t, ok := c.templates[normalizeTemplateKey(key)]
	if !ok {
		return Template{}, &UnknownTemplateError{Key: key}
	}
	return t, nil
}

// Keys returns every template key in sorted order.
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c.templates))
	for k := range c.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c Catalog) Len() int { return len(c.templates) }

// Merge returns a catalog with other's templates layered over c's.
func (c Catalog) Merge(other Catalog) Catalog {
	out := Catalog{templates: make(map[string]Template, len(c.templates)+len(other.templates))}
	for k, t := range c.templates {
		out.templates[k] = t
	}
	for k, t := range other.templates {
		out.templates[k] = t
	}
	return out
}

// yamlTemplate is the on-disk shape. Attribute names are parsed leniently
// and converted before validation.
type yamlTemplate struct {
	Name             string         `yaml:"name"`
	Icon             string         `yaml:"icon"`
	Color            string         `yaml:"color"`
	Attributes       []string       `yaml:"attributes"`
	PrimaryAttribute string         `yaml:"primaryAttribute"`
	Titles           []string       `yaml:"titles"`
	Perk             *yamlPerk      `yaml:"perk"`
	Tasks            []yamlTaskSpec `yaml:"tasks"`
}

type yamlPerk struct {
	Attribute   string `yaml:"attribute"`
	Percent     int    `yaml:"percent"`
	Description string `yaml:"description"`
}

type yamlTaskSpec struct {
	Name             string         `yaml:"name"`
	Frequency        string         `yaml:"frequency"`
	TimesPerWeek     int            `yaml:"timesPerWeek"`
	XPReward         int            `yaml:"xpReward"`
	AttributeRewards map[string]int `yaml:"attributeRewards"`
}

type yamlCatalog struct {
	Templates map[string]yamlTemplate `yaml:"templates"`
}

// LoadCatalogYAML reads a catalog document of the form `templates: {key: {...}}`.
func LoadCatalogYAML(r io.Reader) (Catalog, error) {
	var doc yamlCatalog
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewCatalog()
		}
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	templates := make([]Template, 0, len(doc.Templates))
	for key, yt := range doc.Templates {
		t, err := yt.toTemplate(key)
		if err != nil {
			return Catalog{}, err
		}
		templates = append(templates, t)
	}
	return NewCatalog(templates...)
}

// LoadTemplateYAML reads a single inline path definition, as used for custom
// paths. Missing icon, titles, attributes and rewards get the defaults of the
// custom path form.
func LoadTemplateYAML(r io.Reader) (Template, error) {
	var yt yamlTemplate
	if err := yaml.NewDecoder(r).Decode(&yt); err != nil {
		return Template{}, fmt.Errorf("decode template: %w", err)
	}
	t, err := yt.toTemplate("")
	if err != nil {
		return Template{}, err
	}
	t = WithCustomDefaults(t)
	if err := t.Validate(); err != nil {
		return Template{}, err
	}
	return t, nil
}

// WithCustomDefaults fills the gaps a hand-written path usually leaves:
// icon, title ladder, attribute set and per-task primary attribute rewards
// (1 for daily tasks, 2 for weekly ones).
func WithCustomDefaults(t Template) Template {
	if t.Icon == "" {
		t.Icon = defaultIcon
	}
	if len(t.Titles) == 0 {
		t.Titles = append([]string(nil), defaultTitles...)
	}
	if t.PrimaryAttribute == "" && len(t.Attributes) > 0 {
		t.PrimaryAttribute = t.Attributes[0]
	}
	if len(t.Attributes) == 0 && t.PrimaryAttribute != "" {
		t.Attributes = []Attribute{t.PrimaryAttribute}
	}
	tasks := make([]TaskDefinition, len(t.Tasks))
	for i, d := range t.Tasks {
		d = cloneDefinition(d)
		if d.Frequency == "" {
			d.Frequency = FrequencyDaily
		}
		if len(d.AttributeRewards) == 0 && t.PrimaryAttribute != "" {
			amount := 1
			if d.Frequency == FrequencyWeekly {
				amount = 2
			}
			d.AttributeRewards[t.PrimaryAttribute] = amount
		}
		tasks[i] = d
	}
	t.Tasks = tasks
	return t
}

func (yt yamlTemplate) toTemplate(key string) (Template, error) {
	fail := func(format string, args ...any) error {
		return &TemplateError{Key: key, Reason: fmt.Sprintf(format, args...)}
	}

	t := Template{
		Key:    key,
		Name:   strings.TrimSpace(yt.Name),
		Icon:   yt.Icon,
		Color:  yt.Color,
		Titles: yt.Titles,
	}
	for _, s := range yt.Attributes {
		a, err := ParseAttribute(s)
		if err != nil {
			return Template{}, fail("%v", err)
		}
		t.Attributes = append(t.Attributes, a)
	}
	if yt.PrimaryAttribute != "" {
		a, err := ParseAttribute(yt.PrimaryAttribute)
		if err != nil {
			return Template{}, fail("primary: %v", err)
		}
		t.PrimaryAttribute = a
	}
	if yt.Perk != nil {
		a, err := ParseAttribute(yt.Perk.Attribute)
		if err != nil {
			return Template{}, fail("perk: %v", err)
		}
		t.Perk = &Perk{Attribute: a, Percent: yt.Perk.Percent, Description: yt.Perk.Description}
	}
	for _, ys := range yt.Tasks {
		d := TaskDefinition{
			Name:             strings.TrimSpace(ys.Name),
			TimesPerWeek:     ys.TimesPerWeek,
			XPReward:         ys.XPReward,
			AttributeRewards: make(map[Attribute]int, len(ys.AttributeRewards)),
		}
		if ys.Frequency != "" {
			f, err := ParseFrequency(ys.Frequency)
			if err != nil {
				return Template{}, fail("task %q: %v", d.Name, err)
			}
			d.Frequency = f
		}
		for s, v := range ys.AttributeRewards {
			a, err := ParseAttribute(s)
			if err != nil {
				return Template{}, fail("task %q: %v", d.Name, err)
			}
			d.AttributeRewards[a] += v
		}
		t.Tasks = append(t.Tasks, d)
	}
	return t, nil
}
