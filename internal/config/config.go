package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/atlas-it/atlas-agent/internal/infra/paths"
)

// Build-time variables injected via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const (
	envPrefix      = "ATLAS"
	configName     = "atlas"
	DefaultAPIURL  = "https://helpdesk.atlas-it.com/api"
	defaultTimeout = 10 * time.Second
)

// Config holds the agent configuration.
type Config struct {
	// APIURL is the base URL of the helpdesk API, without a trailing slash.
	APIURL string `mapstructure:"api_url"`

	HTTP  HTTPConfig  `mapstructure:"http"`
	Probe ProbeConfig `mapstructure:"probe"`
	Local LocalConfig `mapstructure:"local"`
	Log   LogConfig   `mapstructure:"log"`

	// DataDir holds the local API token. Empty means the user config dir.
	DataDir string `mapstructure:"data_dir"`
}

type HTTPConfig struct {
	Timeout       time.Duration `mapstructure:"timeout"`
	HealthTimeout time.Duration `mapstructure:"health_timeout"`
}

type ProbeConfig struct {
	// Timeout bounds every shell-out made while collecting device context.
	Timeout time.Duration `mapstructure:"timeout"`
}

type LocalConfig struct {
	// Port for the loopback API; 0 picks an ephemeral port.
	Port int `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("http.timeout", defaultTimeout)
	v.SetDefault("http.health_timeout", 5*time.Second)
	v.SetDefault("probe.timeout", 5*time.Second)
	v.SetDefault("local.port", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("data_dir", paths.DefaultDataDir())
}

// Load reads defaults, then the config file, then ATLAS_* environment
// variables. An explicit path must exist; without one, atlas.yaml in the
// user config dir or the working directory is read when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		if dir := paths.DefaultDataDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api_url %q must be an absolute http(s) URL", c.APIURL)
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = defaultTimeout
	}
	if c.HTTP.HealthTimeout <= 0 {
		c.HTTP.HealthTimeout = 5 * time.Second
	}
	if c.Probe.Timeout <= 0 {
		c.Probe.Timeout = 5 * time.Second
	}
	if c.Local.Port < 0 || c.Local.Port > 65535 {
		return fmt.Errorf("local.port %d out of range", c.Local.Port)
	}
	return nil
}

// ClientVersion is sent with each ticket and in the User-Agent header.
func ClientVersion() string {
	return Version
}
