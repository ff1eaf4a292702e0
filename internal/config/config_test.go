package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
	"location": "sfbay",
	"has_pic": 1,
	"posted_today": true,
	"distance": "25",
	"postal": 94110,
	"items": [
		{"section": "bia", "terms": ["bike", "road", "red"], "name": "Bob"},
		{"section": "sss", "terms": ["desk"], "name": "Alice"}
	]
}`

const sampleYAML = `
location: sfbay
has_pic: 1
posted_today: 1
distance: 25
postal: "94110"
items:
  - section: bia
    name: Bob
    terms: [bike, road, red]
`

func TestParseJSON(t *testing.T) {
	cfg, err := Parse([]byte(sampleJSON), ".json")
	require.NoError(t, err)

	assert.Equal(t, "sfbay", cfg.Location)
	assert.Equal(t, Filter("1"), cfg.HasPic)
	assert.Equal(t, Filter("true"), cfg.PostedToday)
	assert.Equal(t, Filter("25"), cfg.Distance)
	assert.Equal(t, "94110", cfg.Postal.String())

	require.Len(t, cfg.Items, 2)
	assert.Equal(t, Item{Section: "bia", Terms: []string{"bike", "road", "red"}, Name: "Bob"}, cfg.Items[0])
	assert.Equal(t, "Alice", cfg.Items[1].Name)
}

func TestParseYAML(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML), ".yml")
	require.NoError(t, err)

	assert.Equal(t, "sfbay", cfg.Location)
	assert.Equal(t, Filter("25"), cfg.Distance)
	assert.Equal(t, Filter("94110"), cfg.Postal)
	require.Len(t, cfg.Items, 1)
	assert.Equal(t, []string{"bike", "road", "red"}, cfg.Items[0].Terms)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"location": `), ".json")
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.False(t, errors.As(err, &cfgErr))
}

func validConfig() Config {
	return Config{
		Location:    "sfbay",
		HasPic:      Filter("1"),
		PostedToday: Filter("0"),
		Distance:    Filter("25"),
		Postal:      Filter("94110"),
		Items:       []Item{{Section: "sss", Name: "a", Terms: []string{}}},
	}
}

func TestValidate(t *testing.T) {
	base := validConfig()
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"missing location", func(c *Config) { c.Location = "" }, "location"},
		{"no items", func(c *Config) { c.Items = nil }, "items"},
		{"missing has_pic", func(c *Config) { c.HasPic = FilterValue{} }, "has_pic"},
		{"missing posted_today", func(c *Config) { c.PostedToday = FilterValue{} }, "posted_today"},
		{"missing distance", func(c *Config) { c.Distance = FilterValue{} }, "distance"},
		{"missing postal", func(c *Config) { c.Postal = FilterValue{} }, "postal"},
		{"missing section", func(c *Config) { c.Items = []Item{{Name: "a", Terms: []string{}}} }, "items[0].section"},
		{"missing name", func(c *Config) { c.Items = []Item{{Section: "sss", Terms: []string{}}} }, "items[0].name"},
		{"missing terms", func(c *Config) { c.Items = []Item{{Section: "sss", Name: "a"}} }, "items[0].terms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestParseMissingFilterKeys(t *testing.T) {
	data := `{"location": "sfbay", "items": [{"section": "sss", "terms": ["a", "b"], "name": "Bob"}]}`

	_, err := Parse([]byte(data), ".json")

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
	assert.Equal(t, "has_pic", cfgErr.Field)

	yamlData := "location: sfbay\nhas_pic: 1\nposted_today: 0\ndistance: 25\nitems:\n  - {section: sss, name: Bob, terms: [a, b]}\n"
	_, err = Parse([]byte(yamlData), ".yaml")
	require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
	assert.Equal(t, "postal", cfgErr.Field)
}

func TestParseNullFilter(t *testing.T) {
	data := `{"location": "sfbay", "has_pic": 1, "posted_today": 0, "distance": 25, "postal": null,
		"items": [{"section": "sss", "terms": ["a", "b"], "name": "Bob"}]}`

	cfg, err := Parse([]byte(data), ".json")
	require.NoError(t, err)
	assert.True(t, cfg.Postal.IsSet())
	assert.True(t, cfg.Postal.IsNull())
	assert.False(t, cfg.Distance.IsNull())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Items, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("HUNTER_CONFIG", "/tmp/hunter.yaml")
	t.Setenv("KAFKA_BROKERS", "kafka1:9092, kafka2:9092,")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("BOT_CHAT_ID", "12345")

	env := LoadEnv()
	assert.Equal(t, "/tmp/hunter.yaml", env.ConfigPath)
	assert.Equal(t, []string{"kafka1:9092", "kafka2:9092"}, env.KafkaBrokers)
	assert.Equal(t, "craigslist-listings", env.KafkaTopic)
	assert.True(t, env.KafkaEnabled())
	assert.True(t, env.BotEnabled())
	assert.Equal(t, int64(12345), env.BotChatID)
}

func TestLoadEnvDisabledSinks(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("BOT_CHAT_ID", "not-a-number")

	env := LoadEnv()
	assert.False(t, env.KafkaEnabled())
	assert.False(t, env.BotEnabled())
}
