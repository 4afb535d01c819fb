package config

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mirrorpick/internal/dashboard"
	"mirrorpick/internal/errors"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// Every field can also be set from the command line.
type Config struct {
	Outfile   string   `yaml:"outfile,omitempty" toml:"outfile,omitempty" json:"outfile,omitempty" jsonschema:"description=File to write the mirrorlist to"`
	Export    int      `yaml:"export" toml:"export" json:"export" jsonschema:"description=Number of mirrors to export,minimum=0,default=50"`
	Filters   []string `yaml:"filters" toml:"filters" json:"filters" jsonschema:"description=Filters enabled at start,enum=https,enum=http,enum=rsync,enum=in-sync"`
	View      string   `yaml:"view" toml:"view" json:"view" jsonschema:"description=Order of the country list,enum=alphabetical,enum=mirror-count"`
	Sort      string   `yaml:"sort" toml:"sort" json:"sort" jsonschema:"description=Order of exported mirrors,enum=score,enum=delay,enum=duration,enum=completion,enum=percentage"`
	Countries []string `yaml:"countries,omitempty" toml:"countries,omitempty" json:"countries,omitempty" jsonschema:"description=Country name or code glob patterns to load"`
	CacheTTL  int      `yaml:"cache-ttl" toml:"cache-ttl" json:"cache-ttl" jsonschema:"description=Hours to reuse the cached mirror status,minimum=0,default=24"`
	URL       string   `yaml:"url" toml:"url" json:"url" jsonschema:"description=Mirror status endpoint"`
	Theme     Theme    `yaml:"theme" toml:"theme" json:"theme" jsonschema:"description=Dashboard colors"`
}

// Theme holds the dashboard colors as lipgloss color strings.
type Theme struct {
	Name     string `yaml:"name" toml:"name" json:"name"`
	Primary  string `yaml:"primary,omitempty" toml:"primary,omitempty" json:"primary,omitempty"`
	Success  string `yaml:"success,omitempty" toml:"success,omitempty" json:"success,omitempty"`
	Warning  string `yaml:"warning,omitempty" toml:"warning,omitempty" json:"warning,omitempty"`
	Error    string `yaml:"error,omitempty" toml:"error,omitempty" json:"error,omitempty"`
	Muted    string `yaml:"muted,omitempty" toml:"muted,omitempty" json:"muted,omitempty"`
	Emphasis string `yaml:"emphasis,omitempty" toml:"emphasis,omitempty" json:"emphasis,omitempty"`
	Border   string `yaml:"border,omitempty" toml:"border,omitempty" json:"border,omitempty"`
}

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from a file extension; anything unknown is YAML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/mirrorpick/mirrorpick.yaml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locating config directory")
	}
	return filepath.Join(dir, "mirrorpick", "mirrorpick.yaml"), nil
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewFileError("error reading config file", path, errors.FileAccessDenied, err)
	}

	// keys missing from the file keep their defaults, so an explicit 0 is kept
	fileCfg := *cfg
	fileCfg.Filters, fileCfg.Countries, fileCfg.Theme = nil, nil, Theme{}
	if err := decode(FormatOf(path), data, &fileCfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	cfg.merge(&fileCfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func decode(format Format, data []byte, into *Config) error {
	switch format {
	case FormatTOML:
		_, err := toml.Decode(string(data), into)
		return err
	case FormatJSON:
		return json.Unmarshal(data, into)
	default:
		return yaml.Unmarshal(data, into)
	}
}

// merge copies other over c. Themes are resolved by name first, then overridden
// color by color; empty strings and nil lists leave c unchanged.
func (c *Config) merge(other *Config) {
	if other.Outfile != "" {
		c.Outfile = other.Outfile
	}
	c.Export = other.Export
	c.CacheTTL = other.CacheTTL
	if other.Filters != nil {
		c.Filters = other.Filters
	}
	if other.View != "" {
		c.View = other.View
	}
	if other.Sort != "" {
		c.Sort = other.Sort
	}
	if other.Countries != nil {
		c.Countries = other.Countries
	}
	if other.URL != "" {
		c.URL = other.URL
	}
	if other.Theme.Name != "" {
		c.ApplyTheme(other.Theme.Name)
	}
	c.Theme.override(other.Theme)
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{
		Export:   50,
		Filters:  []string{"https", "http"},
		View:     "alphabetical",
		Sort:     "score",
		CacheTTL: 24,
		URL:      "https://archlinux.org/mirrors/status/json/",
	}
	cfg.ApplyTheme("default")
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}
	if c.Export < 0 {
		return errors.NewConfigError(fmt.Sprintf("export must be >= 0, got %d", c.Export), "export", errors.InvalidConfig, nil)
	}
	if c.CacheTTL < 0 {
		return errors.NewConfigError(fmt.Sprintf("cache-ttl must be >= 0, got %d", c.CacheTTL), "cache-ttl", errors.InvalidConfig, nil)
	}
	if _, err := dashboard.ParseFilters(c.Filters); err != nil {
		return errors.NewConfigError("invalid filters", "filters", errors.InvalidConfig, err)
	}
	if _, err := dashboard.ParseViewSort(c.View); err != nil {
		return errors.NewConfigError("invalid view", "view", errors.InvalidConfig, err)
	}
	if _, err := dashboard.ParseExportSort(c.Sort); err != nil {
		return errors.NewConfigError("invalid sort", "sort", errors.InvalidConfig, err)
	}
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewConfigError(fmt.Sprintf("url must be an http(s) address, got %q", c.URL), "url", errors.InvalidConfig, err)
	}
	for _, p := range c.Countries {
		if strings.TrimSpace(p) == "" {
			return errors.NewConfigError("empty country pattern", "countries", errors.InvalidConfig, nil)
		}
	}
	return nil
}

// DashboardOptions converts the filter and sort settings. Call Validate first.
func (c *Config) DashboardOptions() (dashboard.Options, error) {
	filters, err := dashboard.ParseFilters(c.Filters)
	if err != nil {
		return dashboard.Options{}, errors.NewConfigError("invalid filters", "filters", errors.InvalidConfig, err)
	}
	view, err := dashboard.ParseViewSort(c.View)
	if err != nil {
		return dashboard.Options{}, errors.NewConfigError("invalid view", "view", errors.InvalidConfig, err)
	}
	sort, err := dashboard.ParseExportSort(c.Sort)
	if err != nil {
		return dashboard.Options{}, errors.NewConfigError("invalid sort", "sort", errors.InvalidConfig, err)
	}
	return dashboard.Options{Filters: filters, Sort: view, ExportSort: sort}, nil
}

// TTL is the cache lifetime.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.CacheTTL) * time.Hour
}

// Encode writes the configuration in the given format.
func (c *Config) Encode(w io.Writer, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(c)
		data = buf.Bytes()
	case FormatJSON:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return errors.NewConfigError("failed to marshal config", string(format), errors.InvalidConfig, err)
	}
	_, err = w.Write(data)
	return err
}

var themes = map[string]Theme{
	"default":    {Primary: "213", Success: "114", Warning: "220", Error: "196", Muted: "245", Emphasis: "212", Border: "213"},
	"dark":       {Primary: "105", Success: "78", Warning: "214", Error: "160", Muted: "240", Emphasis: "147", Border: "105"},
	"light":      {Primary: "135", Success: "28", Warning: "136", Error: "124", Muted: "244", Emphasis: "90", Border: "135"},
	"monochrome": {Primary: "252", Success: "255", Warning: "250", Error: "255", Muted: "242", Emphasis: "255", Border: "245"},
	"ocean":      {Primary: "31", Success: "36", Warning: "220", Error: "196", Muted: "67", Emphasis: "51", Border: "31"},
}

// GetTheme returns a predefined theme by name, or the default theme.
func GetTheme(name string) Theme {
	t, ok := themes[name]
	if !ok {
		name = "default"
		t = themes[name]
	}
	t.Name = name
	return t
}

// ApplyTheme replaces every color with the named theme.
func (c *Config) ApplyTheme(name string) {
	c.Theme = GetTheme(name)
}

// ListThemes returns the available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome", "ocean"}
}

// override copies the colors set in o.
func (t *Theme) override(o Theme) {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&t.Primary, o.Primary},
		{&t.Success, o.Success},
		{&t.Warning, o.Warning},
		{&t.Error, o.Error},
		{&t.Muted, o.Muted},
		{&t.Emphasis, o.Emphasis},
		{&t.Border, o.Border},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
}
