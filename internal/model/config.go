package model

import "time"

// Config is the complete runtime configuration. Field tags serve both
// viper (mapstructure) and the YAML written by `clarity config init`.
type Config struct {
	Grammar     GrammarConfig     `yaml:"grammar" mapstructure:"grammar"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Rules       RulesConfig       `yaml:"rules" mapstructure:"rules"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// GrammarConfig configures the remote grammar service and its fallback
type GrammarConfig struct {
	Remote            bool          `yaml:"remote" mapstructure:"remote"`
	ServiceURL        string        `yaml:"service_url" mapstructure:"service_url"`
	Language          string        `yaml:"language" mapstructure:"language"`
	Style             string        `yaml:"style" mapstructure:"style"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxRetries        int           `yaml:"max_retries" mapstructure:"max_retries"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
	HTTPProxy         string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy           string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig configures caching of remote grammar responses
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	Dir       string        `yaml:"dir,omitempty" mapstructure:"dir"` // disk layer disabled when empty
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RulesConfig points at an optional vocabulary extension file
type RulesConfig struct {
	File string `yaml:"file,omitempty" mapstructure:"file"`
}

// ConcurrencyConfig bounds batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr           string        `yaml:"addr" mapstructure:"addr"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Grammar: GrammarConfig{
			Remote:            true,
			ServiceURL:        "https://api.languagetool.org/v2/check",
			Language:          "en-US",
			Timeout:           10 * time.Second,
			MaxRetries:        3,
			UserAgent:         "clarity/0.1 (+https://github.com/ppiankov/clarity)",
			RequestsPerSecond: 0.33, // public LanguageTool API allows 20 requests/minute
			BurstSize:         3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxBodyBytes:   1 << 20,
			RequestTimeout: 15 * time.Second,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
