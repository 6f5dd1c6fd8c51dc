package config

import (
	"errors"
	"io/fs"
	"time"
)

// Default configuration values.
const (
	defaultServiceName      = "triage"
	defaultServiceVersion   = "1.0.0"
	defaultServicePort      = 8085
	defaultReadTimeoutSec   = 30
	defaultWriteTimeoutSec  = 60
	defaultIdleTimeoutSec   = 120
	defaultShutdownSec      = 10
	defaultLogLevel         = "info"
	defaultCorpusPath       = "data/civic_policies.json"
	defaultPolicyThreshold  = 0.05
	defaultClusterEpsMeters = 50.0
	defaultClusterMinPoints = 2
)

// Config holds all configuration for the triage service.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Logging LoggingConfig `yaml:"logging"`
	Policy  PolicyConfig  `yaml:"policy"`
	Geo     GeoConfig     `yaml:"geo"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name            string        `yaml:"name"`
	Version         string        `yaml:"version"`
	Port            int           `env:"TRIAGE_PORT" yaml:"port"`
	Debug           bool          `env:"APP_DEBUG"   yaml:"debug"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" yaml:"level"`
}

// PolicyConfig holds policy retrieval configuration.
type PolicyConfig struct {
	// CorpusPath is the location of the civic policy corpus. A missing file
	// yields an empty corpus, not a startup failure.
	CorpusPath string `env:"POLICY_CORPUS_PATH" yaml:"corpus_path"`
	// Threshold is the minimum similarity score for a policy match.
	Threshold float64 `env:"POLICY_THRESHOLD" yaml:"threshold"`
}

// GeoConfig holds geospatial clustering defaults.
type GeoConfig struct {
	// ClusterEpsMeters is the DBSCAN neighborhood radius in meters.
	ClusterEpsMeters float64 `env:"GEO_CLUSTER_EPS_METERS" yaml:"cluster_eps_meters"`
	// ClusterMinPoints is the DBSCAN density threshold (point itself included).
	ClusterMinPoints int `env:"GEO_CLUSTER_MIN_POINTS" yaml:"cluster_min_points"`
}

// Load loads configuration from the specified path. A missing config file is
// not an error: the service runs on defaults plus environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := loadWithDefaults[Config](path, setDefaults)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{}
		setDefaults(cfg)
		applyEnvOverrides(cfg)
		return cfg, nil
	}
	return cfg, err
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	s := &cfg.Service
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = defaultReadTimeoutSec * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = defaultWriteTimeoutSec * time.Second
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = defaultIdleTimeoutSec * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = defaultShutdownSec * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}

	if cfg.Policy.CorpusPath == "" {
		cfg.Policy.CorpusPath = defaultCorpusPath
	}
	if cfg.Policy.Threshold == 0 {
		cfg.Policy.Threshold = defaultPolicyThreshold
	}

	if cfg.Geo.ClusterEpsMeters == 0 {
		cfg.Geo.ClusterEpsMeters = defaultClusterEpsMeters
	}
	if cfg.Geo.ClusterMinPoints == 0 {
		cfg.Geo.ClusterMinPoints = defaultClusterMinPoints
	}
}
