package internal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDays is the retention window used when nothing else is configured
const DefaultDays = 7

// Config carries everything the parser, classifier and prompt need. It is
// passed explicitly; nothing in this package reads global configuration.
type Config struct {
	Days         int      `yaml:"days"`
	SystemSender string   `yaml:"system_sender"`
	SelfAliases  []string `yaml:"self_aliases"`
	DateLayouts  []string `yaml:"date_layouts,omitempty"`
	Prompt       string   `yaml:"prompt,omitempty"`
	RulesFile    string   `yaml:"rules_file,omitempty"`
	Rules        []Rule   `yaml:"rules,omitempty"`

	path string
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Days:         DefaultDays,
		SystemSender: DefaultSystemSender,
		SelfAliases:  []string{"You"},
	}
}

// Path returns the file the config was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

// DetectConfigPath returns the default config file location and whether a
// file exists there.
func DetectConfigPath() (string, bool) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		base = filepath.Join(home, ".config")
	}
	path := filepath.Join(base, "chatfilter", "config.yaml")
	info, err := os.Stat(path)
	return path, err == nil && !info.IsDir()
}

// LoadConfig reads a YAML config file on top of DefaultConfig
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	defer f.Close()

	cfg, err := LoadConfigFromReader(f)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	cfg.path = path
	return cfg, nil
}

// LoadConfigFromReader decodes YAML from r on top of DefaultConfig and
// validates the result. An empty document yields the defaults.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	cfg.SystemSender = cfg.Sentinel()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config for coherent values and returns every
// problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Days < 0 {
		errs = append(errs, &ConfigError{Field: "days", Err: fmt.Errorf("must be >= 0 (0 keeps all time), got %d", c.Days)})
	}
	for i, layout := range c.DateLayouts {
		if layout == "" {
			errs = append(errs, &ConfigError{Field: fmt.Sprintf("date_layouts[%d]", i), Err: errors.New("layout is empty")})
		}
	}
	if c.Prompt != "" {
		if _, err := parsePromptTemplate(c.Prompt); err != nil {
			errs = append(errs, &ConfigError{Field: "prompt", Err: err})
		}
	}
	if c.RulesFile != "" && len(c.Rules) > 0 {
		errs = append(errs, &ConfigError{Field: "rules", Err: errors.New("set either rules or rules_file, not both")})
	}
	if len(c.Rules) > 0 {
		if err := ValidateRules(c.Rules); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ResolveRules returns the active rule table: the rules file, inline
// rules, or the built-in table, in that order of preference. A relative
// rules_file is resolved against the config file's directory.
func (c *Config) ResolveRules() ([]Rule, error) {
	if c.RulesFile != "" {
		path := c.RulesFile
		if !filepath.IsAbs(path) && c.path != "" {
			path = filepath.Join(filepath.Dir(c.path), path)
		}
		return LoadRules(path)
	}
	if len(c.Rules) > 0 {
		rules := append([]Rule(nil), c.Rules...)
		nameRules(rules)
		return rules, nil
	}
	return DefaultRules(), nil
}

// NewClassifier builds a classifier from the active rule table
func (c *Config) NewClassifier() (*Classifier, error) {
	rules, err := c.ResolveRules()
	if err != nil {
		return nil, err
	}
	return NewClassifier(rules, c.Sentinel(), c.SelfAliases)
}

// Sentinel returns the sender used for unattributed lines. A blank
// system_sender falls back to DefaultSystemSender.
func (c *Config) Sentinel() string {
	if s := strings.TrimSpace(c.SystemSender); s != "" {
		return s
	}
	return DefaultSystemSender
}

// NewParser builds a parser for the configured date layouts
func (c *Config) NewParser() *Parser {
	return NewParser(c.DateLayouts)
}

// PromptTemplate returns the configured prompt template or the default
func (c *Config) PromptTemplate() string {
	if c.Prompt != "" {
		return c.Prompt
	}
	return DefaultPromptTemplate
}
