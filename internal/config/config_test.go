package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mirrorpick/internal/config"
	"mirrorpick/internal/dashboard"
	"mirrorpick/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary config file with the given extension
func createTestConfig(t *testing.T, ext, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "mirrorpick-*"+ext)
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

const (
	validYAML = `
outfile: /etc/pacman.d/mirrorlist
export: 20
filters: [https, in-sync]
view: mirror-count
sort: percentage
countries: ["Germany", "f*"]
cache-ttl: 6
theme:
  name: ocean
  border: "99"
`
	validTOML = `
export = 10
filters = ["rsync"]
view = "alphabetical"
sort = "delay"
cache-ttl = 12
url = "https://mirrors.example.org/status/json/"
`
	validJSON = `{
  "export": 5,
  "filters": [],
  "sort": "duration"
}`
	invalidSyntaxYAML = `
export: [50
filters: https
`
	invalidValueYAML = `
filters: [https, ftp]
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid yaml", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestConfig(t, ".yaml", validYAML))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "/etc/pacman.d/mirrorlist", cfg.Outfile)
		assert.Equal(t, 20, cfg.Export)
		assert.Equal(t, []string{"https", "in-sync"}, cfg.Filters)
		assert.Equal(t, "mirror-count", cfg.View)
		assert.Equal(t, "percentage", cfg.Sort)
		assert.Equal(t, []string{"Germany", "f*"}, cfg.Countries)
		assert.Equal(t, 6*time.Hour, cfg.TTL())
		assert.Equal(t, "https://archlinux.org/mirrors/status/json/", cfg.URL, "unset values keep defaults")

		assert.Equal(t, "ocean", cfg.Theme.Name)
		assert.Equal(t, "99", cfg.Theme.Border)
		assert.Equal(t, config.GetTheme("ocean").Primary, cfg.Theme.Primary)
	})

	t.Run("load valid toml", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestConfig(t, ".toml", validTOML))
		require.NoError(t, err)

		assert.Equal(t, 10, cfg.Export)
		assert.Equal(t, []string{"rsync"}, cfg.Filters)
		assert.Equal(t, "delay", cfg.Sort)
		assert.Equal(t, 12, cfg.CacheTTL)
		assert.Equal(t, "https://mirrors.example.org/status/json/", cfg.URL)
	})

	t.Run("load valid json", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestConfig(t, ".json", validJSON))
		require.NoError(t, err)

		assert.Equal(t, 5, cfg.Export)
		assert.Equal(t, []string{}, cfg.Filters, "an explicit empty list disables every filter")
		assert.Equal(t, "duration", cfg.Sort)
		assert.Equal(t, "alphabetical", cfg.View)
	})

	t.Run("explicit zeros are kept", func(t *testing.T) {
		tests := []struct {
			ext     string
			content string
		}{
			{".yaml", "export: 0\ncache-ttl: 0\n"},
			{".toml", "export = 0\ncache-ttl = 0\n"},
			{".json", `{"export": 0, "cache-ttl": 0}`},
		}
		for _, tt := range tests {
			cfg, err := config.LoadConfigFile(createTestConfig(t, tt.ext, tt.content))
			require.NoError(t, err, tt.ext)
			assert.Equal(t, 0, cfg.Export, tt.ext)
			assert.Equal(t, 0, cfg.CacheTTL, tt.ext)
			assert.Equal(t, time.Duration(0), cfg.TTL(), tt.ext)
			assert.Equal(t, "score", cfg.Sort, "%s: omitted keys keep defaults", tt.ext)
			assert.Equal(t, []string{"https", "http"}, cfg.Filters, tt.ext)
		}
	})

	t.Run("load non-existent file", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "does_not_exist.yaml"))
		require.NoError(t, err, "Loading non-existent file should return default config, not an error")
		assert.Equal(t, config.New(), cfg)
	})

	t.Run("load file with invalid YAML syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestConfig(t, ".yaml", invalidSyntaxYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("load file with invalid filter", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestConfig(t, ".yml", invalidValueYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "ftp")

		var configErr *errors.ConfigError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "filters", configErr.Param())
	})

	t.Run("load unreadable path", func(t *testing.T) {
		_, err := config.LoadConfigFile(t.TempDir())
		require.Error(t, err)
		assert.Equal(t, errors.FileAccessDenied, errors.KindOf(err))
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 50, cfg.Export)
	assert.Equal(t, []string{"https", "http"}, cfg.Filters)
	assert.Equal(t, "alphabetical", cfg.View)
	assert.Equal(t, "score", cfg.Sort)
	assert.Equal(t, 24*time.Hour, cfg.TTL())
	assert.Equal(t, "default", cfg.Theme.Name)

	opts, err := cfg.DashboardOptions()
	require.NoError(t, err)
	assert.Equal(t, dashboard.DefaultFilters(), opts.Filters)
	assert.Equal(t, dashboard.SortAlphabetical, opts.Sort)
	assert.Equal(t, dashboard.ExportByScore, opts.ExportSort)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
		param  string
	}{
		{"negative export", func(c *config.Config) { c.Export = -1 }, "export"},
		{"negative ttl", func(c *config.Config) { c.CacheTTL = -3 }, "cache-ttl"},
		{"unknown view", func(c *config.Config) { c.View = "random" }, "view"},
		{"unknown sort", func(c *config.Config) { c.Sort = "age" }, "sort"},
		{"bad url", func(c *config.Config) { c.URL = "ftp://example.org" }, "url"},
		{"empty url", func(c *config.Config) { c.URL = "" }, "url"},
		{"blank country", func(c *config.Config) { c.Countries = []string{" "} }, "countries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalidConfig(err))

			var configErr *errors.ConfigError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tt.param, configErr.Param())
		})
	}

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, config.FormatYAML, config.FormatOf("a/b.yaml"))
	assert.Equal(t, config.FormatYAML, config.FormatOf("a/b.YML"))
	assert.Equal(t, config.FormatTOML, config.FormatOf("b.toml"))
	assert.Equal(t, config.FormatJSON, config.FormatOf("b.json"))
	assert.Equal(t, config.FormatYAML, config.FormatOf("noext"))
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Export = 7
	cfg.Countries = []string{"se"}

	for _, format := range []config.Format{config.FormatYAML, config.FormatTOML, config.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, cfg.Encode(&buf, format))

			path := filepath.Join(t.TempDir(), "mirrorpick."+string(format))
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			loaded, err := config.LoadConfigFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestThemes(t *testing.T) {
	for _, name := range config.ListThemes() {
		theme := config.GetTheme(name)
		assert.Equal(t, name, theme.Name)
		assert.NotEmpty(t, theme.Primary, name)
		assert.NotEmpty(t, theme.Border, name)
	}

	unknown := config.GetTheme("does-not-exist")
	assert.Equal(t, "default", unknown.Name)
	assert.Equal(t, config.GetTheme("default"), unknown)

	cfg := config.New()
	cfg.ApplyTheme("dark")
	assert.Equal(t, config.GetTheme("dark"), cfg.Theme)
}

func TestSchema(t *testing.T) {
	schema := config.Schema()
	require.NotNil(t, schema.Properties)

	for _, key := range []string{"outfile", "export", "filters", "view", "sort", "countries", "cache-ttl", "url", "theme"} {
		_, ok := schema.Properties.Get(key)
		assert.True(t, ok, key)
	}
	assert.Empty(t, schema.Required)

	view, _ := schema.Properties.Get("view")
	assert.ElementsMatch(t, []any{"alphabetical", "mirror-count"}, view.Enum)
}
