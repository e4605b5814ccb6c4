// Package config provides YAML configuration parsing for chartboard.
//
// This package enables running chartboard as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
// Every field is optional; an empty file describes the built-in Wigest
// dashboard served on port 1122.
//
// Example configuration:
//
//	title: Wigest
//	root: .
//	base: ./
//
//	build:
//	  out_dir: dist
//	  empty_out_dir: true
//
//	server:
//	  port: 1122
//	  open: true
//
//	missing_containers: fail
//
//	charts:
//	  - container: chartSync
//	    type: pie
//	    labels: [Synchronisés, En échec]
//	    legend: bottom
//	    datasets:
//	      - label: Synchronisation
//	        data: [87, 13]
//	        background: ["#1cc88a", "#e74a3b"]
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wigest/chartboard"
)

// Defaults applied by [Parse] and [Default].
const (
	DefaultTitle  = "Wigest"
	DefaultRoot   = "."
	DefaultBase   = "./"
	DefaultOutDir = "dist"
	DefaultPort   = 1122
)

// Config is the root configuration structure for chartboard.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the dashboard title. Defaults to "Wigest".
	Title string `yaml:"title"`

	// Root is the directory holding index.html and src/main.js.
	// When those files are absent the embedded dashboard is used.
	// Defaults to ".".
	Root string `yaml:"root"`

	// Base is the public path prefix of asset URLs. Must end with "/".
	// Defaults to "./".
	Base string `yaml:"base"`

	// Build configures the static build output.
	Build BuildConfig `yaml:"build"`

	// Server configures the development server.
	Server ServerConfig `yaml:"server"`

	// MissingContainers is "fail" (default) or "skip".
	MissingContainers string `yaml:"missing_containers"`

	// Charts replaces the built-in dashboard charts when non-empty.
	Charts []ChartConfig `yaml:"charts,omitempty"`
}

// BuildConfig controls the output of the build command.
type BuildConfig struct {
	// OutDir is the build output directory, relative to the working
	// directory. Defaults to "dist".
	OutDir string `yaml:"out_dir"`

	// EmptyOutDir clears OutDir before writing. Defaults to true.
	EmptyOutDir *bool `yaml:"empty_out_dir"`

	// Minify minifies the bundled script.
	Minify bool `yaml:"minify"`

	// Sourcemap writes main.js.map next to the bundle.
	Sourcemap bool `yaml:"sourcemap"`
}

// ServerConfig controls the development server.
type ServerConfig struct {
	// Port is the HTTP server port. Defaults to 1122.
	Port int `yaml:"port"`

	// Open launches the dashboard in a browser on start. Defaults to true.
	Open *bool `yaml:"open"`
}

// ShouldEmptyOutDir reports whether the output directory is cleared before
// a build. A nil flag means the default (true).
func (b BuildConfig) ShouldEmptyOutDir() bool {
	return b.EmptyOutDir == nil || *b.EmptyOutDir
}

// ShouldOpen reports whether the browser is opened on start.
// A nil flag means the default (true).
func (s ServerConfig) ShouldOpen() bool {
	return s.Open == nil || *s.Open
}

// ChartConfig defines one chart and the container it is mounted into.
type ChartConfig struct {
	// Container is the id of the page element the chart is drawn into.
	Container string `yaml:"container"`

	// Type is the chart kind: line, doughnut, bar or pie.
	Type string `yaml:"type"`

	// Title is displayed above the chart when set.
	Title string `yaml:"title,omitempty"`

	// Labels are the category labels, one per data point.
	Labels []string `yaml:"labels"`

	// Legend controls the legend. See [LegendConfig].
	Legend LegendConfig `yaml:"legend,omitempty"`

	// Datasets hold the values. Each must have one value per label.
	Datasets []DatasetConfig `yaml:"datasets"`
}

// DatasetConfig defines one series of values.
type DatasetConfig struct {
	Label string    `yaml:"label"`
	Data  []float64 `yaml:"data"`

	// Background is one colour for the whole dataset or one per label.
	// Accepts a single string or a list.
	Background Colors `yaml:"background,omitempty"`

	Border  string  `yaml:"border,omitempty"`
	Fill    bool    `yaml:"fill,omitempty"`
	Tension float64 `yaml:"tension,omitempty"`
}

// LegendConfig specifies how the legend is displayed.
//
// It supports two formats in YAML:
//
// Shorthand string:
//
//	legend: bottom
//	legend: hidden
//
// Structured object:
//
//	legend:
//	  display: true
//	  position: left
type LegendConfig struct {
	// Hidden hides the legend.
	Hidden bool

	// Position is top, bottom, left or right. Empty means top.
	Position string
}

// UnmarshalYAML implements yaml.Unmarshaler for LegendConfig.
func (l *LegendConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		return l.parseShorthand(s)
	}

	if node.Kind == yaml.MappingNode {
		// temporary struct to avoid infinite recursion
		var raw struct {
			Display  *bool  `yaml:"display"`
			Position string `yaml:"position"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		l.Hidden = raw.Display != nil && !*raw.Display
		l.Position = raw.Position
		return nil
	}

	return fmt.Errorf("legend must be a string or object, got %v", node.Kind)
}

// parseShorthand parses legend shorthand syntax.
//
// Supported formats:
//   - "hidden" → no legend
//   - "top", "bottom", "left", "right" → displayed at that position
func (l *LegendConfig) parseShorthand(s string) error {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return nil
	case "hidden":
		l.Hidden = true
	case "top", "bottom", "left", "right":
		l.Position = s
	default:
		return fmt.Errorf("unknown legend %q (expected 'top', 'bottom', 'left', 'right', or 'hidden')", s)
	}
	return nil
}

// MarshalYAML writes the legend back in shorthand form, or as a mapping
// when a hidden legend also carries a position.
func (l LegendConfig) MarshalYAML() (any, error) {
	if l.Hidden && l.Position != "" {
		return struct {
			Display  bool   `yaml:"display"`
			Position string `yaml:"position"`
		}{Display: false, Position: l.Position}, nil
	}
	if l.Hidden {
		return "hidden", nil
	}
	return l.Position, nil
}

// IsZero reports whether the legend uses the defaults, so that omitempty
// drops it.
func (l LegendConfig) IsZero() bool {
	return !l.Hidden && l.Position == ""
}

// Colors is a list of colour strings that also accepts a single scalar.
type Colors []string

// UnmarshalYAML implements yaml.Unmarshaler for Colors.
func (c *Colors) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*c = Colors{s}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*c = list
		return nil
	}
	return fmt.Errorf("background must be a string or list, got %v", node.Kind)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Default returns the configuration of an empty file: the built-in
// dashboard with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in title, root, base and
// build.out_dir. Defaults are applied to every unset field, then the
// configuration and its charts are validated.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.expand(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal encodes the configuration as YAML.
// Parsing the result yields an equal configuration.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return data, nil
}

func (c *Config) expand() error {
	fields := []struct {
		name string
		ptr  *string
	}{
		{"title", &c.Title},
		{"root", &c.Root},
		{"base", &c.Base},
		{"build.out_dir", &c.Build.OutDir},
	}

	for _, f := range fields {
		expanded, err := expandEnvVars(*f.ptr)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.ptr = expanded
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if c.Base == "" {
		c.Base = DefaultBase
	}
	if c.Build.OutDir == "" {
		c.Build.OutDir = DefaultOutDir
	}
	if c.Build.EmptyOutDir == nil {
		c.Build.EmptyOutDir = boolPtr(true)
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Open == nil {
		c.Server.Open = boolPtr(true)
	}
	if c.MissingContainers == "" {
		c.MissingContainers = chartboard.FailFast.String()
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if !strings.HasSuffix(c.Base, "/") {
		return fmt.Errorf("base must end with \"/\", got %q", c.Base)
	}

	if strings.TrimSpace(c.Build.OutDir) == "" {
		return errors.New("build.out_dir cannot be blank")
	}
	if filepath.Clean(c.Build.OutDir) == filepath.Clean(c.Root) {
		return fmt.Errorf("build.out_dir %q cannot be the source root", c.Build.OutDir)
	}

	if _, err := chartboard.ParseMissingPolicy(c.MissingContainers); err != nil {
		return fmt.Errorf("missing_containers: %w", err)
	}

	// fail fast before the board or the build sees an invalid chart
	if _, err := BuildCharts(c); err != nil {
		return err
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
