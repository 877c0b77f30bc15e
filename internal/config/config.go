// Package config handles site configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one site: where the BibTeX database and HTML template
// live, where the generated page goes, and which placeholder token in the
// template is replaced by the publication listing.
type Config struct {
	BibFile      string `yaml:"bib_file"`
	TemplateFile string `yaml:"template_file"`
	OutputFile   string `yaml:"output_file"`
	Placeholder  string `yaml:"placeholder"`
	IndexFile    string `yaml:"index_file,omitempty"`
}

const (
	// ConfigFile is the default config file name in the site directory.
	ConfigFile = "pubsite.yml"

	// DefaultPlaceholder is the token replaced in the template.
	DefaultPlaceholder = "PLACEHOLDER"
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		BibFile:      "files/references.bib",
		TemplateFile: "publications_template.html",
		OutputFile:   "publications.html",
		Placeholder:  DefaultPlaceholder,
		IndexFile:    ".pubsite/index.db",
	}
}

// Load reads configuration from path. A missing file yields the defaults,
// not an error; a present but malformed file is an error. PUBSITE_*
// environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.fillDefaults()
	cfg.applyEnv()
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// fillDefaults replaces empty fields with default values, so a partial
// config file only overrides what it names.
func (c *Config) fillDefaults() {
	d := Default()
	if c.BibFile == "" {
		c.BibFile = d.BibFile
	}
	if c.TemplateFile == "" {
		c.TemplateFile = d.TemplateFile
	}
	if c.OutputFile == "" {
		c.OutputFile = d.OutputFile
	}
	if c.Placeholder == "" {
		c.Placeholder = d.Placeholder
	}
	if c.IndexFile == "" {
		c.IndexFile = d.IndexFile
	}
}

// applyEnv applies PUBSITE_* environment overrides. Values typically come
// from a .env file loaded by the command.
func (c *Config) applyEnv() {
	if v := os.Getenv("PUBSITE_BIB"); v != "" {
		c.BibFile = v
	}
	if v := os.Getenv("PUBSITE_TEMPLATE"); v != "" {
		c.TemplateFile = v
	}
	if v := os.Getenv("PUBSITE_OUTPUT"); v != "" {
		c.OutputFile = v
	}
	if v := os.Getenv("PUBSITE_PLACEHOLDER"); v != "" {
		c.Placeholder = v
	}
	if v := os.Getenv("PUBSITE_INDEX"); v != "" {
		c.IndexFile = v
	}
}
