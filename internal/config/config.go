package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the default configuration file name.
const FileName = "recon.yaml"

// Config represents the top-level recon.yaml configuration.
type Config struct {
	BaseDir         string           `yaml:"base_dir"`
	Currency        string           `yaml:"currency"`   // ISO 4217 code used to display amounts
	Similarity      float64          `yaml:"similarity"` // minimum note similarity for suggestions, 0 disables
	Sources         []Source         `yaml:"sources"`
	Reconciliations []Reconciliation `yaml:"reconciliations"`
}

// Source is one export file and the dialect it is written in.
type Source struct {
	Name    string `yaml:"name"`
	Dialect string `yaml:"dialect"`
	File    string `yaml:"file"` // relative to BaseDir unless absolute
}

// Reconciliation compares a bank source against one app account.
type Reconciliation struct {
	Name    string `yaml:"name"`
	Bank    string `yaml:"bank"`    // source name
	App     string `yaml:"app"`     // source name
	Account string `yaml:"account"` // value of the app's Account column
}

// Load reads a recon.yaml file from disk. Currency and similarity keep their
// default values when the file omits them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	def := Default("")
	cfg := Config{Currency: def.Currency, Similarity: def.Similarity}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration for the usual monthly check: the ING
// current account against the app's "Accounts" account, and the AMEX card
// against "AMEX FB card".
func Default(baseDir string) *Config {
	return &Config{
		BaseDir:    baseDir,
		Currency:   "EUR",
		Similarity: 0.6,
		Sources: []Source{
			{Name: "app", Dialect: "app", File: "mm.csv"},
			{Name: "amex", Dialect: "amex", File: "ofx.csv"},
			{Name: "ing", Dialect: "ing", File: "ing.csv"},
		},
		Reconciliations: []Reconciliation{
			{Name: "ing", Bank: "ing", App: "app", Account: "Accounts"},
			{Name: "amex", Bank: "amex", App: "app", Account: "AMEX FB card"},
		},
	}
}

// Source returns the named source.
func (c *Config) Source(name string) (Source, bool) {
	for _, s := range c.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}

// Path resolves a source file against BaseDir.
func (c *Config) Path(s Source) string {
	if filepath.IsAbs(s.File) {
		return s.File
	}
	return filepath.Join(c.BaseDir, s.File)
}

// Validate checks that every reconciliation refers to declared sources and
// that every source uses a known dialect.
func (c *Config) Validate(knownDialect func(string) bool) error {
	var errs []error

	seen := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		switch {
		case s.Name == "":
			errs = append(errs, fmt.Errorf("sources[%d]: missing name", i))
		case seen[s.Name]:
			errs = append(errs, fmt.Errorf("sources[%d]: duplicate name %q", i, s.Name))
		}
		seen[s.Name] = true
		if s.File == "" {
			errs = append(errs, fmt.Errorf("source %q: missing file", s.Name))
		}
		if !knownDialect(s.Dialect) {
			errs = append(errs, fmt.Errorf("source %q: unknown dialect %q", s.Name, s.Dialect))
		}
	}

	if len(c.Reconciliations) == 0 {
		errs = append(errs, errors.New("no reconciliations configured"))
	}
	for i, r := range c.Reconciliations {
		label := r.Name
		if label == "" {
			label = fmt.Sprintf("reconciliations[%d]", i)
		}
		if !seen[r.Bank] {
			errs = append(errs, fmt.Errorf("%s: unknown bank source %q", label, r.Bank))
		}
		if !seen[r.App] {
			errs = append(errs, fmt.Errorf("%s: unknown app source %q", label, r.App))
		}
		if r.Account == "" {
			errs = append(errs, fmt.Errorf("%s: missing account", label))
		}
	}

	if c.Similarity < 0 || c.Similarity > 1 {
		errs = append(errs, fmt.Errorf("similarity %v outside [0, 1]", c.Similarity))
	}
	return errors.Join(errs...)
}
