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

const (
	DefaultFloors   = 20
	DefaultCapacity = 10
	MaxArrivals     = 5
	StepDelay       = 100 * time.Millisecond
	RunIDLength     = 6
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the runtime configuration of one comparison.
type Config struct {
	Floors      int           `yaml:"floors"`
	Capacity    int           `yaml:"capacity"`
	MaxArrivals int           `yaml:"max_arrivals"`
	Seed        int64         `yaml:"seed"`
	StepDelay   time.Duration `yaml:"step_delay"`
	MaxSteps    int           `yaml:"max_steps"` // 0 derives a bound from the generated demand
	Parallel    bool          `yaml:"parallel"`
	Policies    []string      `yaml:"policies"`
	LogLevel    string        `yaml:"log_level"`
	LogFile     string        `yaml:"log_file"`
}

func Default() Config {
	return Config{
		Floors:      DefaultFloors,
		Capacity:    DefaultCapacity,
		MaxArrivals: MaxArrivals,
		Seed:        time.Now().UnixNano(),
		StepDelay:   StepDelay,
		Policies:    []string{"baseline", "improved"},
		LogLevel:    "info",
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with LIFTSIM_* keys. Process environment wins over the env file.
// A missing env file is not an error.
func ApplyEnv(cfg Config, envFile string) (Config, error) {
	values := map[string]string{}
	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}
	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok {
			values[key] = v
		}
	}

	for key, raw := range values {
		if err := setFromEnv(&cfg, key, strings.TrimSpace(raw)); err != nil {
			return cfg, fmt.Errorf("%s=%q: %w", key, raw, err)
		}
	}
	return cfg, nil
}

var envKeys = []string{
	"LIFTSIM_FLOORS",
	"LIFTSIM_CAPACITY",
	"LIFTSIM_MAX_ARRIVALS",
	"LIFTSIM_SEED",
	"LIFTSIM_STEP_DELAY",
	"LIFTSIM_MAX_STEPS",
	"LIFTSIM_PARALLEL",
	"LIFTSIM_POLICIES",
	"LIFTSIM_LOG_LEVEL",
	"LIFTSIM_LOG_FILE",
}

func setFromEnv(cfg *Config, key, raw string) error {
	var err error
	switch key {
	case "LIFTSIM_FLOORS":
		cfg.Floors, err = strconv.Atoi(raw)
	case "LIFTSIM_CAPACITY":
		cfg.Capacity, err = strconv.Atoi(raw)
	case "LIFTSIM_MAX_ARRIVALS":
		cfg.MaxArrivals, err = strconv.Atoi(raw)
	case "LIFTSIM_SEED":
		cfg.Seed, err = strconv.ParseInt(raw, 10, 64)
	case "LIFTSIM_STEP_DELAY":
		cfg.StepDelay, err = time.ParseDuration(raw)
	case "LIFTSIM_MAX_STEPS":
		cfg.MaxSteps, err = strconv.Atoi(raw)
	case "LIFTSIM_PARALLEL":
		cfg.Parallel, err = strconv.ParseBool(raw)
	case "LIFTSIM_POLICIES":
		cfg.Policies = nil
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Policies = append(cfg.Policies, p)
			}
		}
	case "LIFTSIM_LOG_LEVEL":
		cfg.LogLevel = raw
	case "LIFTSIM_LOG_FILE":
		cfg.LogFile = raw
	}
	return err
}

func (cfg Config) Validate() error {
	switch {
	case cfg.Floors < 2:
		return fmt.Errorf("%w: floors must be at least 2, got %d", ErrInvalidConfig, cfg.Floors)
	case cfg.Capacity < 1:
		return fmt.Errorf("%w: capacity must be at least 1, got %d", ErrInvalidConfig, cfg.Capacity)
	case cfg.MaxArrivals < 0:
		return fmt.Errorf("%w: max_arrivals must not be negative, got %d", ErrInvalidConfig, cfg.MaxArrivals)
	case cfg.StepDelay < 0:
		return fmt.Errorf("%w: step_delay must not be negative, got %s", ErrInvalidConfig, cfg.StepDelay)
	case cfg.MaxSteps < 0:
		return fmt.Errorf("%w: max_steps must not be negative, got %d", ErrInvalidConfig, cfg.MaxSteps)
	case len(cfg.Policies) == 0:
		return fmt.Errorf("%w: at least one policy is required", ErrInvalidConfig)
	}
	return nil
}
