package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/timesheets/internal/calendar"
	"github.com/alexanderramin/timesheets/internal/engine"
	"gopkg.in/yaml.v3"
)

const (
	dirName        = ".timesheets"
	configFileName = "config.yaml"
	dbFileName     = "timesheets.db"

	// DefaultLookbackDays makes the default range the last seven days.
	DefaultLookbackDays = 6
)

// RulesConfig holds the validation rules in their file form.
type RulesConfig struct {
	IncrementHours float64  `yaml:"increment_hours"`
	DailyCapHours  float64  `yaml:"daily_cap_hours"`
	Workdays       []string `yaml:"workdays"`
}

// Config holds all runtime configuration.
type Config struct {
	DBPath          string      `yaml:"db_path"`
	DefaultEmployee string      `yaml:"default_employee"`
	LookbackDays    int         `yaml:"lookback_days"`
	LogUseCases     bool        `yaml:"log_use_cases"`
	Rules           RulesConfig `yaml:"rules"`
}

// DefaultConfig returns a Config with the standard rules: 1.9 hour
// increments, a 7.6 hour daily cap and a Monday to Friday week.
func DefaultConfig() Config {
	rules := engine.DefaultRules()
	return Config{
		DBPath:       filepath.Join(homeDir(), dirName, dbFileName),
		LookbackDays: DefaultLookbackDays,
		Rules: RulesConfig{
			IncrementHours: rules.IncrementHours,
			DailyCapHours:  rules.DailyCapHours,
			Workdays:       rules.Workdays.Names(),
		},
	}
}

// DefaultPath is the config file read when TIMESHEETS_CONFIG is unset.
func DefaultPath() string {
	return filepath.Join(homeDir(), dirName, configFileName)
}

// LoadConfig reads configuration from the YAML file named by
// TIMESHEETS_CONFIG (or DefaultPath), then applies environment overrides.
// A missing default file is not an error; a missing explicit file is.
func LoadConfig() (Config, error) {
	path := os.Getenv("TIMESHEETS_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(bytes.NewReader(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Parse decodes YAML over the defaults without consulting the environment.
func Parse(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := decode(r, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv overrides fields from TIMESHEETS_* variables. Unparseable values
// are ignored and the file or default value stands.
func applyEnv(cfg *Config) {
	if v := os.Getenv("TIMESHEETS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TIMESHEETS_EMPLOYEE"); v != "" {
		cfg.DefaultEmployee = v
	}
	if v := os.Getenv("TIMESHEETS_LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.LookbackDays = n
		}
	}
	if v := os.Getenv("TIMESHEETS_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TIMESHEETS_INCREMENT_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Rules.IncrementHours = f
		}
	}
	if v := os.Getenv("TIMESHEETS_DAILY_CAP_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Rules.DailyCapHours = f
		}
	}
	if v := os.Getenv("TIMESHEETS_WORKDAYS"); v != "" {
		cfg.Rules.Workdays = strings.Split(v, ",")
	}
}

// EngineRules converts the file form into engine rules.
func (c Config) EngineRules() (engine.Rules, error) {
	days, err := calendar.ParseWeekdays(c.Rules.Workdays)
	if err != nil {
		return engine.Rules{}, fmt.Errorf("rules.workdays: %w", err)
	}
	return engine.Rules{
		IncrementHours: c.Rules.IncrementHours,
		DailyCapHours:  c.Rules.DailyCapHours,
		Workdays:       days,
	}, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.LookbackDays < 0 {
		return fmt.Errorf("lookback_days must not be negative, got %d", c.LookbackDays)
	}
	rules, err := c.EngineRules()
	if err != nil {
		return err
	}
	if err := rules.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
