package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultYAML []byte

type Link struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href,omitempty" json:"href,omitempty"`
}

type Category struct {
	Label string `yaml:"label" json:"label"`
	Query string `yaml:"query" json:"query"`
}

type Config struct {
	App struct {
		Host string `yaml:"host" json:"host"`
		Port int    `yaml:"port" json:"port"`
	} `yaml:"app" json:"app"`

	Log struct {
		Level  string `yaml:"level" json:"level"`
		Pretty bool   `yaml:"pretty" json:"pretty"`
	} `yaml:"log" json:"log"`

	Store struct {
		Driver      string `yaml:"driver" json:"driver"` // sqlite | memory
		Path        string `yaml:"path" json:"path"`     // relative to the data dir
		SeedPath    string `yaml:"seed_path" json:"seed_path"`
		SeedOnEmpty bool   `yaml:"seed_on_empty" json:"seed_on_empty"`
	} `yaml:"store" json:"store"`

	Site struct {
		Name        string `yaml:"name" json:"name"`
		Title       string `yaml:"title" json:"title"`
		Description string `yaml:"description" json:"description"`
		Tagline     string `yaml:"tagline" json:"tagline"`
		HeroHeading string `yaml:"hero_heading" json:"hero_heading"`
		HeroText    string `yaml:"hero_text" json:"hero_text"`
		Contact     struct {
			Email   string `yaml:"email" json:"email"`
			Phone   string `yaml:"phone" json:"phone"`
			Address string `yaml:"address" json:"address"`
		} `yaml:"contact" json:"contact"`
		Nav        []Link     `yaml:"nav" json:"nav"`
		QuickLinks []Link     `yaml:"quick_links" json:"quick_links"`
		Resources  []Link     `yaml:"resources" json:"resources"`
		Categories []Category `yaml:"categories" json:"categories"`
	} `yaml:"site" json:"site"`

	Listing struct {
		FeaturedCount int `yaml:"featured_count" json:"featured_count"`
		SimilarCount  int `yaml:"similar_count" json:"similar_count"`
	} `yaml:"listing" json:"listing"`

	Logos struct {
		Enabled           bool     `yaml:"enabled" json:"enabled"`
		AllowHosts        []string `yaml:"allow_hosts" json:"allow_hosts"`
		RequestsPerSecond float64  `yaml:"requests_per_second" json:"requests_per_second"`
		Burst             int      `yaml:"burst" json:"burst"`
		MaxBytes          int64    `yaml:"max_bytes" json:"max_bytes"`
		TimeoutSeconds    int      `yaml:"timeout_seconds" json:"timeout_seconds"`
		Concurrency       int      `yaml:"concurrency" json:"concurrency"`
		GCMinutes         int      `yaml:"gc_minutes" json:"gc_minutes"`
	} `yaml:"logos" json:"logos"`

	Assets struct {
		Placeholder string `yaml:"placeholder" json:"placeholder"`
	} `yaml:"assets" json:"assets"`

	Maintenance struct {
		CheckpointMinutes int `yaml:"checkpoint_minutes" json:"checkpoint_minutes"`
	} `yaml:"maintenance" json:"maintenance"`
}

// Default is the configuration shipped with the binary.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return cfg
}

// Load reads path over the defaults, so a partial file is enough. Unknown
// keys are an error.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	cfg, err := Parse(b)
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a full document over the defaults, rejecting unknown keys.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.App.Host, strconv.Itoa(c.App.Port))
}

func (c Config) LogoTimeout() time.Duration {
	return time.Duration(c.Logos.TimeoutSeconds) * time.Second
}

func (c Config) LogoGCInterval() time.Duration {
	return time.Duration(c.Logos.GCMinutes) * time.Minute
}

func (c Config) CheckpointInterval() time.Duration {
	return time.Duration(c.Maintenance.CheckpointMinutes) * time.Minute
}
