package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/limaJavier/regatta/internal/cache"
	"github.com/limaJavier/regatta/internal/metrics"
	"github.com/limaJavier/regatta/internal/publish"
)

const envPrefix = "REGATTA_"

type Config struct {
	Regatta RegattaConfig  `json:"regatta"`
	Solver  SolverConfig   `json:"solver"`
	Logging LoggingConfig  `json:"logging"`
	Metrics metrics.Config `json:"metrics"`
	MQTT    publish.Config `json:"mqtt"`
	Server  ServerConfig   `json:"server"`
	Cache   cache.Config   `json:"cache"`
}

// Load reads the configuration file, when given, and applies REGATTA_ environment overrides where a double
// underscore separates nesting levels (REGATTA_SOLVER__BACKEND=kissat).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when neither a file nor the environment says otherwise.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

func (c *Config) SetDefaults() {
	c.Regatta.SetDefaults()
	c.Solver.SetDefaults()
	c.Logging.SetDefaults()
	c.Server.SetDefaults()
	c.Cache.SetDefaults()
	if c.MQTT.Enabled() {
		c.MQTT.SetDefaults()
	}
}

func (c *Config) Validate() error {
	if err := c.Regatta.Validate(); err != nil {
		return fmt.Errorf("regatta: %w", err)
	}
	if err := c.Solver.Validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.MQTT.Validate(); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	return nil
}

// Environment lists the override variables currently set, for diagnostics.
func Environment() []string {
	variables := make([]string, 0)
	for _, variable := range os.Environ() {
		if strings.HasPrefix(variable, envPrefix) {
			variables = append(variables, strings.SplitN(variable, "=", 2)[0])
		}
	}
	return variables
}
