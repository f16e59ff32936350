package config

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"lifetrack/internal/heap"
	"lifetrack/internal/tracker"
)

const (
	defaultLogLevel = "info"

	envRootType     = "LIFETRACK_ROOT_TYPE"
	envReservedName = "LIFETRACK_RESERVED_NAME"
	envTrackTypes   = "LIFETRACK_TRACK_TYPES"
	envTrackNames   = "LIFETRACK_TRACK_NAMES"
	envLogLevel     = "LIFETRACK_LOG_LEVEL"
	envSnapshotPath = "LIFETRACK_SNAPSHOT_PATH"
)

// Config aggregates the daemon's tracking rules and diagnostics settings.
type Config struct {
	// RootType is the class whose instances (and subclasses) are always
	// tracked. Empty disables the rule.
	RootType string `validate:"omitempty,classname"`
	// ReservedName is the always-tracked name substring. Empty disables it.
	ReservedName string
	TrackTypes   []string `validate:"dive,required,classname"`
	TrackNames   []string `validate:"dive,required"`
	LogLevel     string   `validate:"oneof=debug info warn error"`
	// SnapshotPath, when set, receives a JSON dump of tracked records on
	// shutdown.
	SnapshotPath string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("classname", func(fl validator.FieldLevel) bool {
		return isClassName(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// isClassName accepts letters, digits, '.', '-' and '_'.
func isClassName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		switch r {
		case '-', '_', '.':
		default:
			return false
		}
	}
	return true
}

// Load builds a Config from an optional JSON file path plus environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{
		RootType:     heap.ClassGameModeBase,
		ReservedName: tracker.DefaultReservedName,
		LogLevel:     defaultLogLevel,
	}

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel onto slog.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv(envRootType); ok {
		cfg.RootType = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(envReservedName); ok {
		cfg.ReservedName = v
	}
	if v := os.Getenv(envTrackTypes); v != "" {
		cfg.TrackTypes = splitList(v)
	}
	if v := os.Getenv(envTrackNames); v != "" {
		cfg.TrackNames = splitList(v)
	}
	if v := os.Getenv(envLogLevel); v != "" {
		level := strings.ToLower(strings.TrimSpace(v))
		if validate.Var(level, "oneof=debug info warn error") == nil {
			cfg.LogLevel = level
		} else {
			log.Printf("invalid %s value %q, keeping %q", envLogLevel, v, cfg.LogLevel)
		}
	}
	if v := os.Getenv(envSnapshotPath); v != "" {
		cfg.SnapshotPath = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type fileConfig struct {
	RootType     *string  `json:"root_type"`
	ReservedName *string  `json:"reserved_name"`
	TrackTypes   []string `json:"track_types"`
	TrackNames   []string `json:"track_names"`
	LogLevel     string   `json:"log_level"`
	SnapshotPath string   `json:"snapshot_path"`
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.RootType != nil {
		cfg.RootType = strings.TrimSpace(*raw.RootType)
	}
	if raw.ReservedName != nil {
		cfg.ReservedName = *raw.ReservedName
	}
	if raw.TrackTypes != nil {
		cfg.TrackTypes = raw.TrackTypes
	}
	if raw.TrackNames != nil {
		cfg.TrackNames = raw.TrackNames
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(raw.LogLevel)
	}
	if raw.SnapshotPath != "" {
		cfg.SnapshotPath = raw.SnapshotPath
	}
	return nil
}
