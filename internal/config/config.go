package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item is one thing to search for: a marketplace section, a display name
// and the keywords that get combined into search terms.
type Item struct {
	Section string   `json:"section" yaml:"section"`
	Terms   []string `json:"terms" yaml:"terms"`
	Name    string   `json:"name" yaml:"name"`
}

// Config is the search configuration for a single run.
type Config struct {
	Location    string      `json:"location" yaml:"location"`
	HasPic      FilterValue `json:"has_pic" yaml:"has_pic"`
	PostedToday FilterValue `json:"posted_today" yaml:"posted_today"`
	Distance    FilterValue `json:"distance" yaml:"distance"`
	Postal      FilterValue `json:"postal" yaml:"postal"`
	Items       []Item      `json:"items" yaml:"items"`
}

// FilterValue keeps a query filter exactly as it was written in the
// configuration file, whether it was a string, a number or a bool. It also
// remembers whether the key was present at all.
type FilterValue struct {
	value string
	set   bool
	null  bool
}

// Filter returns a present, non-null filter value.
func Filter(value string) FilterValue {
	return FilterValue{value: value, set: true}
}

func (v *FilterValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*v = FilterValue{set: true, null: true}
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Filter(s)
		return nil
	}

	*v = Filter(raw)
	return nil
}

// UnmarshalYAML is not called for null nodes, so a null YAML value reads
// as a missing key.
func (v *FilterValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: filter value must be a scalar", node.Line)
	}
	*v = Filter(node.Value)
	return nil
}

func (v FilterValue) String() string {
	return v.value
}

// IsSet reports whether the key appeared in the configuration.
func (v FilterValue) IsSet() bool {
	return v.set
}

// IsNull reports whether the key was given an explicit null.
func (v FilterValue) IsNull() bool {
	return v.null
}

// ConfigurationError reports a missing or malformed configuration field.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Load reads a search configuration from path. Files ending in .yaml or .yml
// are decoded as YAML, anything else as JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates configuration data. ext selects the format.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := &Config{}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode json: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields every run depends on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Location) == "" {
		return &ConfigurationError{Field: "location", Reason: "is required"}
	}
	if len(c.Items) == 0 {
		return &ConfigurationError{Field: "items", Reason: "at least one item is required"}
	}

	filters := []struct {
		field string
		value FilterValue
	}{
		{"has_pic", c.HasPic},
		{"posted_today", c.PostedToday},
		{"distance", c.Distance},
		{"postal", c.Postal},
	}
	for _, f := range filters {
		if !f.value.IsSet() {
			return &ConfigurationError{Field: f.field, Reason: "is required"}
		}
	}

	for i, item := range c.Items {
		if strings.TrimSpace(item.Section) == "" {
			return &ConfigurationError{Field: fmt.Sprintf("items[%d].section", i), Reason: "is required"}
		}
		if strings.TrimSpace(item.Name) == "" {
			return &ConfigurationError{Field: fmt.Sprintf("items[%d].name", i), Reason: "is required"}
		}
		if item.Terms == nil {
			return &ConfigurationError{Field: fmt.Sprintf("items[%d].terms", i), Reason: "is required"}
		}
	}
	return nil
}
