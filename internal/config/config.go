package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pendulum/internal/models"
)

const (
	appDirName       = "pendulum"
	settingsFileName = "settings.yaml"
)

// Config holds the user-facing preferences. Durations are minutes here;
// the engine works in seconds (see Settings).
type Config struct {
	WorkMinutes            int
	BreakMinutes           int
	LongBreakMinutes       int
	SessionsUntilLongBreak int
	DailyGoal              int
	Sound                  bool
	DebugLog               bool
}

func Default() Config {
	return Config{
		WorkMinutes:            25,
		BreakMinutes:           5,
		LongBreakMinutes:       15,
		SessionsUntilLongBreak: 4,
		DailyGoal:              8,
		Sound:                  true,
		DebugLog:               false,
	}
}

// Settings converts the minute-based preferences to engine settings.
func (c Config) Settings() models.Settings {
	return models.Settings{
		WorkSeconds:            c.WorkMinutes * 60,
		BreakSeconds:           c.BreakMinutes * 60,
		LongBreakSeconds:       c.LongBreakMinutes * 60,
		SessionsUntilLongBreak: c.SessionsUntilLongBreak,
	}.Normalized()
}

type yamlConfig struct {
	WorkMinutes            int  `yaml:"work_minutes"`
	BreakMinutes           int  `yaml:"break_minutes"`
	LongBreakMinutes       int  `yaml:"long_break_minutes"`
	SessionsUntilLongBreak int  `yaml:"sessions_until_long_break"`
	DailyGoal              int  `yaml:"daily_goal"`
	Sound                  bool `yaml:"sound"`
	DebugLog               bool `yaml:"debug_log"`
}

// Load reads the settings file. If it does not exist yet, defaults are
// returned.
func Load() (Config, error) {
	cfg := Default()
	path, err := Path()
	if err != nil {
		return cfg, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return cfg, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyFileConfig(&cfg, fileData)
	return cfg, nil
}

// Save writes the settings file, creating the config directory on the way.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlConfig{
		WorkMinutes:            cfg.WorkMinutes,
		BreakMinutes:           cfg.BreakMinutes,
		LongBreakMinutes:       cfg.LongBreakMinutes,
		SessionsUntilLongBreak: cfg.SessionsUntilLongBreak,
		DailyGoal:              cfg.DailyGoal,
		Sound:                  cfg.Sound,
		DebugLog:               cfg.DebugLog,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// Path resolves the settings file location under the user config dir.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appDirName, settingsFileName), nil
}

// IsFirstRun reports whether no settings file has been written yet.
func IsFirstRun() bool {
	path, err := Path()
	if err != nil {
		return false
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return true
	}
	return false
}

// Non-positive numbers in the file fall back to the defaults.
func applyFileConfig(cfg *Config, fileData yamlConfig) {
	if fileData.WorkMinutes > 0 {
		cfg.WorkMinutes = fileData.WorkMinutes
	}
	if fileData.BreakMinutes > 0 {
		cfg.BreakMinutes = fileData.BreakMinutes
	}
	if fileData.LongBreakMinutes > 0 {
		cfg.LongBreakMinutes = fileData.LongBreakMinutes
	}
	if fileData.SessionsUntilLongBreak > 0 {
		cfg.SessionsUntilLongBreak = fileData.SessionsUntilLongBreak
	}
	if fileData.DailyGoal > 0 {
		cfg.DailyGoal = fileData.DailyGoal
	}

	cfg.Sound = fileData.Sound
	cfg.DebugLog = fileData.DebugLog
}
