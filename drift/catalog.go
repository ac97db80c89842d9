package drift

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Landmark is one entry of the landmark catalog: a named UI element category
// identified by an ordered priority list of candidate selectors. Earlier
// selectors are tried first; the first one that matches wins.
type Landmark struct {
	Name      string   `yaml:"name" json:"name"`
	Selectors []string `yaml:"selectors" json:"selectors"`
	Role      string   `yaml:"role,omitempty" json:"role,omitempty"`
	KeyTerms  []string `yaml:"key_terms,omitempty" json:"keyTerms,omitempty"`
}

// Feature is one entry of the anchor-recommendation catalog.
type Feature struct {
	Name     string   `yaml:"name" json:"name"`
	Role     string   `yaml:"role,omitempty" json:"role,omitempty"`
	KeyTerms []string `yaml:"key_terms" json:"keyTerms"`
}

// Catalogs bundles the read-only configuration tables the analyzers consume.
// They are passed explicitly into every analysis call — never ambient state —
// so the core stays referentially transparent.
type Catalogs struct {
	Attributes []string   `yaml:"attributes"`
	Landmarks  []Landmark `yaml:"landmarks"`
	Features   []Feature  `yaml:"features"`
}

// DefaultCatalogs returns the built-in webmail-oriented catalogs.
func DefaultCatalogs() Catalogs {
	return Catalogs{
		Attributes: []string{"id", "class", "data-testid", "role", "aria-label", "name"},
		Landmarks: []Landmark{
			{
				Name:      "MessageList",
				Selectors: []string{`[data-testid="message-list"]`, `[role="list"]`, `.message-list`, `#message-list`},
				Role:      "list",
				KeyTerms:  []string{"message", "inbox", "list"},
			},
			{
				Name:      "ComposeButton",
				Selectors: []string{`[data-testid="compose"]`, `[aria-label="Compose"]`, `.compose-button`, `#compose`},
				Role:      "button",
				KeyTerms:  []string{"compose", "new", "write"},
			},
			{
				Name:      "SearchBox",
				Selectors: []string{`[role="search"] input`, `input[type="search"]`, `[data-testid="search"]`, `#search`},
				Role:      "searchbox",
				KeyTerms:  []string{"search"},
			},
			{
				Name:      "MainToolbar",
				Selectors: []string{`[role="toolbar"]`, `.toolbar`, `#toolbar`},
				Role:      "toolbar",
				KeyTerms:  []string{"toolbar", "actions"},
			},
			{
				Name:      "NavigationSidebar",
				Selectors: []string{`[role="navigation"]`, `nav`, `.sidebar`, `#sidebar`},
				Role:      "navigation",
				KeyTerms:  []string{"inbox", "folders", "nav"},
			},
			{
				Name:      "MessageView",
				Selectors: []string{`[data-testid="message-view"]`, `[role="main"]`, `main`, `.message-view`},
				Role:      "main",
				KeyTerms:  []string{"message", "subject", "body"},
			},
			{
				Name:      "SettingsMenu",
				Selectors: []string{`[data-testid="settings"]`, `[aria-label="Settings"]`, `.settings`, `#settings`},
				Role:      "menu",
				KeyTerms:  []string{"settings", "preferences"},
			},
		},
		Features: []Feature{
			{Name: "MessageList", Role: "list", KeyTerms: []string{"message", "inbox", "list"}},
			{Name: "ComposeButton", Role: "button", KeyTerms: []string{"compose", "new", "write"}},
			{Name: "SearchBox", Role: "searchbox", KeyTerms: []string{"search"}},
			{Name: "MainToolbar", Role: "toolbar", KeyTerms: []string{"toolbar", "actions"}},
			{Name: "NavigationSidebar", Role: "navigation", KeyTerms: []string{"inbox", "folders", "nav"}},
			{Name: "MessageView", Role: "main", KeyTerms: []string{"message", "subject", "body"}},
			{Name: "SettingsMenu", Role: "menu", KeyTerms: []string{"settings", "preferences"}},
		},
	}
}

// LoadCatalogs reads catalog overrides from a YAML file. Sections left empty
// in the file fall back to the built-in defaults, so a file may override just
// the feature list.
func LoadCatalogs(path string) (Catalogs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalogs{}, fmt.Errorf("drift: read catalog: %w", err)
	}

	var cat Catalogs
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalogs{}, fmt.Errorf("drift: parse catalog: %w", err)
	}

	def := DefaultCatalogs()
	if len(cat.Attributes) == 0 {
		cat.Attributes = def.Attributes
	}
	if len(cat.Landmarks) == 0 {
		cat.Landmarks = def.Landmarks
	}
	if len(cat.Features) == 0 {
		cat.Features = def.Features
	}
	return cat, nil
}
