package config

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Publish PublishConfig `yaml:"publish"`
	History HistoryConfig `yaml:"history"`
	Daemon  *DaemonConfig `yaml:"daemon,omitempty"`
}

// SiteConfig describes the styleguide file layout being published.
type SiteConfig struct {
	DocsDir string `yaml:"docs_dir"` // documentation directory containing the demo site
	Entry   string `yaml:"entry"`    // entry HTML file inside docs_dir
	CSSDir  string `yaml:"css_dir"`  // stylesheet subdirectory inside docs_dir
	ImgDir  string `yaml:"img_dir"`  // image subdirectory inside docs_dir
	Readme  string `yaml:"readme"`   // README file at the repository root
}

// PublishConfig controls how files are published to the hosting branch.
type PublishConfig struct {
	RemoteURL   string       `yaml:"remote_url,omitempty"` // defaults to the origin URL of the local repository
	Remote      string       `yaml:"remote"`               // remote name used for URL resolution and push
	Branch      string       `yaml:"branch"`               // hosting branch
	DocsMessage string       `yaml:"docs_message"`         // commit message for the documentation step
	DemoMessage string       `yaml:"demo_message"`         // commit message for the README step
	Author      AuthorConfig `yaml:"author"`
	Auth        *AuthConfig  `yaml:"auth,omitempty"`
}

// AuthorConfig is the commit signature used on the hosting branch.
type AuthorConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// HistoryConfig controls the publish-run journal.
type HistoryConfig struct {
	Path string `yaml:"path"` // SQLite database path; empty disables the journal
}

// DaemonConfig controls continuous republish mode.
type DaemonConfig struct {
	Interval Duration `yaml:"interval,omitempty"` // periodic republish; zero disables the schedule
	Debounce Duration `yaml:"debounce"`           // file-change debounce window
	Port     int      `yaml:"port"`               // preview/metrics HTTP port
	Metrics  bool     `yaml:"metrics"`            // expose Prometheus metrics on /metrics
}

// Duration wraps time.Duration so YAML values like "30m" parse naturally.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Go duration strings.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if present. Existing process env takes precedence.
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment variables from .env")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns a configuration with all defaults applied and no file read.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Site.DocsDir == "" {
		c.Site.DocsDir = "docs"
	}
	if c.Site.Entry == "" {
		c.Site.Entry = "index.html"
	}
	if c.Site.CSSDir == "" {
		c.Site.CSSDir = "css"
	}
	if c.Site.ImgDir == "" {
		c.Site.ImgDir = "img"
	}
	if c.Site.Readme == "" {
		c.Site.Readme = "README.md"
	}
	if c.Publish.Remote == "" {
		c.Publish.Remote = "origin"
	}
	if c.Publish.Branch == "" {
		c.Publish.Branch = "gh-pages"
	}
	if c.Publish.DocsMessage == "" {
		c.Publish.DocsMessage = "Publish styleguide documentation"
	}
	if c.Publish.DemoMessage == "" {
		c.Publish.DemoMessage = "Publish styleguide README"
	}
	if c.Publish.Author.Name == "" {
		c.Publish.Author.Name = "stylepub"
	}
	if c.Publish.Author.Email == "" {
		c.Publish.Author.Email = "stylepub@localhost"
	}
	if c.Daemon != nil {
		if c.Daemon.Debounce == 0 {
			c.Daemon.Debounce = Duration(2 * time.Second)
		}
		if c.Daemon.Port == 0 {
			c.Daemon.Port = 1316
		}
	}
}

// Validate checks configuration consistency beyond what defaults can repair.
func (c *Config) Validate() error {
	if c.Publish.Auth != nil {
		if err := c.Publish.Auth.Validate(); err != nil {
			return fmt.Errorf("invalid auth configuration: %w", err)
		}
	}
	if c.Daemon != nil && c.Daemon.Interval < 0 {
		return fmt.Errorf("daemon interval must not be negative")
	}
	return nil
}

// DocsPatterns returns the include patterns for the documentation publish step:
// the entry HTML file, all stylesheets recursively, and images one level deep.
func (c *Config) DocsPatterns() []string {
	return []string{
		c.Site.Entry,
		path.Join(c.Site.CSSDir, "**", "*.css"),
		path.Join(c.Site.ImgDir, "*"),
	}
}

// DemoPatterns returns the include patterns for the README publish step.
func (c *Config) DemoPatterns() []string {
	return []string{c.Site.Readme}
}
