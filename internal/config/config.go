// Package config holds the explicit run configuration of salarystats.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables (including those loaded from .env files).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingToken is returned when SuperJob is enabled without an access token
var ErrMissingToken = errors.New("superjob access token is not set (SJ_TOKEN)")

// Environment variables that override file values
const (
	EnvSuperJobToken  = "SJ_TOKEN"
	EnvHeadHunterArea = "HH_AREA"
	EnvSuperJobTown   = "SJ_TOWN"
	EnvCatalogue      = "SJ_CATALOGUE"
	EnvPeriodDays     = "PERIOD_DAYS"
	EnvProxyURL       = "HTTP_PROXY_URL"
)

// Config is the full run configuration
type Config struct {
	Languages  []string         `yaml:"languages"`
	HTTP       HTTPConfig       `yaml:"http"`
	HeadHunter HeadHunterConfig `yaml:"headhunter"`
	SuperJob   SuperJobConfig   `yaml:"superjob"`
}

type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	Proxy     string        `yaml:"proxy"`
	UserAgent string        `yaml:"user_agent"`
}

type HeadHunterConfig struct {
	Enabled          bool     `yaml:"enabled"`
	BaseURL          string   `yaml:"base_url"`
	Title            string   `yaml:"title"`
	Area             string   `yaml:"area"`
	ProfessionalRole string   `yaml:"professional_role"`
	SearchField      string   `yaml:"search_field"`
	PageSize         int      `yaml:"page_size"`
	PeriodDays       int      `yaml:"period_days"`
	QueryTemplates   []string `yaml:"query_templates"`
	MaxPages         int      `yaml:"max_pages"`
}

type SuperJobConfig struct {
	Enabled    bool   `yaml:"enabled"`
	BaseURL    string `yaml:"base_url"`
	Title      string `yaml:"title"`
	Token      string `yaml:"token"`
	Town       string `yaml:"town"`
	Catalogue  string `yaml:"catalogue"`
	PageSize   int    `yaml:"page_size"`
	PeriodDays int    `yaml:"period_days"`
	MaxPages   int    `yaml:"max_pages"`
}

// DefaultLanguages is the fixed list of languages the report covers
var DefaultLanguages = []string{
	"Python",
	"Java",
	"JavaScript",
	"Rust",
	"C#",
	"C++",
	"Go",
	"Kotlin",
	"C",
	"PHP",
}

// Default returns the configuration for Moscow vacancies over the last 30 days
func Default() *Config {
	return &Config{
		Languages: append([]string(nil), DefaultLanguages...),
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "salarystats/1.0 (+https://github.com/fr4nk3nst1ner/salarystats)",
		},
		HeadHunter: HeadHunterConfig{
			Enabled:        true,
			BaseURL:        "https://api.hh.ru",
			Title:          "HeadHunter Moscow",
			Area:           "1",
			SearchField:    "name",
			PageSize:       20,
			PeriodDays:     30,
			QueryTemplates: []string{"Разработчик %s"},
		},
		SuperJob: SuperJobConfig{
			Enabled:    true,
			BaseURL:    "https://api.superjob.ru",
			Title:      "SuperJob Moscow",
			Town:       "4",
			Catalogue:  "48",
			PageSize:   20,
			PeriodDays: 30,
		},
	}
}

// LoadEnvFiles loads variables from the given .env file, or from .env.local and .env
// when envFile is empty. Missing files are ignored; variables already set in the
// process environment win.
func LoadEnvFiles(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// Load builds the configuration from defaults, the YAML file at path (optional,
// skipped when empty) and the environment. It does not validate.
func Load(path, envFile string) (*Config, error) {
	if err := LoadEnvFiles(envFile); err != nil {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookup(EnvSuperJobToken); ok {
		c.SuperJob.Token = v
	}
	if v, ok := lookup(EnvHeadHunterArea); ok {
		c.HeadHunter.Area = v
	}
	if v, ok := lookup(EnvSuperJobTown); ok {
		c.SuperJob.Town = v
	}
	if v, ok := lookup(EnvCatalogue); ok {
		c.SuperJob.Catalogue = v
	}
	if v, ok := lookup(EnvProxyURL); ok {
		c.HTTP.Proxy = v
	}
	if v, ok := lookup(EnvPeriodDays); ok {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvPeriodDays, err)
		}
		c.HeadHunter.PeriodDays = days
		c.SuperJob.PeriodDays = days
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Validate checks the configuration before any network call is made
func (c *Config) Validate() error {
	if len(c.Languages) == 0 {
		return errors.New("languages list is empty")
	}
	seen := make(map[string]bool, len(c.Languages))
	for _, lang := range c.Languages {
		if strings.TrimSpace(lang) == "" {
			return errors.New("languages list contains an empty entry")
		}
		if seen[lang] {
			return fmt.Errorf("language %q is listed twice", lang)
		}
		seen[lang] = true
	}

	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http timeout must not be negative, got %s", c.HTTP.Timeout)
	}

	if c.HeadHunter.Enabled {
		if c.HeadHunter.PageSize <= 0 {
			return fmt.Errorf("headhunter page_size must be positive, got %d", c.HeadHunter.PageSize)
		}
		if c.HeadHunter.PeriodDays <= 0 {
			return fmt.Errorf("headhunter period_days must be positive, got %d", c.HeadHunter.PeriodDays)
		}
		if len(c.HeadHunter.QueryTemplates) == 0 {
			return errors.New("headhunter query_templates is empty")
		}
		for _, tmpl := range c.HeadHunter.QueryTemplates {
			if !strings.Contains(tmpl, "%s") {
				return fmt.Errorf("headhunter query template %q has no %%s placeholder", tmpl)
			}
		}
	}

	if c.SuperJob.Enabled {
		if c.SuperJob.Token == "" {
			return ErrMissingToken
		}
		if c.SuperJob.PageSize <= 0 {
			return fmt.Errorf("superjob page_size must be positive, got %d", c.SuperJob.PageSize)
		}
		if c.SuperJob.PeriodDays <= 0 {
			return fmt.Errorf("superjob period_days must be positive, got %d", c.SuperJob.PeriodDays)
		}
	}

	if !c.HeadHunter.Enabled && !c.SuperJob.Enabled {
		return errors.New("no provider is enabled")
	}
	return nil
}
