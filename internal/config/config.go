package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Match       MatchConfig       `mapstructure:"match"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// MatchConfig describes one match. It is snapshotted at match start, so a
// hot reload only affects matches created afterwards.
type MatchConfig struct {
	BoardRadius      int                        `mapstructure:"board_radius"`
	Objectives       []HexConfig                `mapstructure:"objectives"`
	Teams            []TeamConfig               `mapstructure:"teams"`
	Objects          []ObjectConfig             `mapstructure:"objects"`
	Timer            TimerConfig                `mapstructure:"timer"`
	AbilityStacking  bool                       `mapstructure:"ability_stacking"`
	AbilityOverrides map[string]AbilityOverride `mapstructure:"ability_overrides"`
}

// HexConfig is an axial board coordinate
type HexConfig struct {
	Q int `mapstructure:"q"`
	R int `mapstructure:"r"`
}

// TeamConfig lists the starting units of one team. Teams are numbered by
// their position in the list.
type TeamConfig struct {
	Units []UnitPlacement `mapstructure:"units"`
}

// UnitPlacement puts one catalog unit on the board
type UnitPlacement struct {
	Unit int `mapstructure:"unit"`
	Q    int `mapstructure:"q"`
	R    int `mapstructure:"r"`
}

// ObjectConfig places a tile object
type ObjectConfig struct {
	Kind          string `mapstructure:"kind"`
	Q             int    `mapstructure:"q"`
	R             int    `mapstructure:"r"`
	CanBeOccupied bool   `mapstructure:"can_be_occupied"`
	CanBeJumped   bool   `mapstructure:"can_be_jumped"`
}

// TimerConfig holds the per-turn timer
type TimerConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	TurnSeconds int  `mapstructure:"turn_seconds"`
}

// AbilityOverride replaces catalog values for the ability with the map key's
// name. Nil fields keep the catalog value.
type AbilityOverride struct {
	Enabled  *bool `mapstructure:"enabled"`
	Duration *int  `mapstructure:"duration"`
	Cooldown *int  `mapstructure:"cooldown"`
}

// CatalogConfig selects the unit and ability catalog
type CatalogConfig struct {
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging  bool `mapstructure:"verbose_logging"`
	VerifyMoveTrees bool `mapstructure:"verify_move_trees"`
	ShowCoordinates bool `mapstructure:"show_coordinates"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Match defaults: a small two team skirmish
	v.SetDefault("match.board_radius", 4)
	v.SetDefault("match.objectives", []map[string]any{
		{"q": 0, "r": -4},
		{"q": 0, "r": 4},
	})
	v.SetDefault("match.teams", []map[string]any{
		{"units": []map[string]any{
			{"unit": 1, "q": 0, "r": 3},
			{"unit": 2, "q": -1, "r": 3},
			{"unit": 2, "q": 1, "r": 2},
			{"unit": 3, "q": 0, "r": 2},
		}},
		{"units": []map[string]any{
			{"unit": 1, "q": 0, "r": -3},
			{"unit": 2, "q": 1, "r": -3},
			{"unit": 2, "q": -1, "r": -2},
			{"unit": 4, "q": 0, "r": -2},
		}},
	})
	v.SetDefault("match.objects", []map[string]any{
		{"kind": "boulder", "q": 0, "r": 0, "can_be_jumped": true},
	})
	v.SetDefault("match.timer.enabled", false)
	v.SetDefault("match.timer.turn_seconds", 60)
	v.SetDefault("match.ability_stacking", true)

	// Catalog defaults
	v.SetDefault("catalog.source", "yaml")
	v.SetDefault("catalog.path", "catalog.yaml")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Development defaults
	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.verify_move_trees", false)
	v.SetDefault("development.show_coordinates", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/hextactics")
	}

	v.SetEnvPrefix("HEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// no config file in the default locations, use defaults
		case configPath != "" && errors.Is(err, fs.ErrNotExist):
			// requested file is missing, use defaults
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = c
	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetFloat64 gets a float64 value from config
func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. A reloaded config
// that fails validation is reported to onChange and not installed.
func WatchConfig(onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			cfg = next
		}
		if onChange != nil {
			onChange(next, err)
		}
	})
	v.WatchConfig()
}

// Snapshot returns a deep copy of the match configuration
func (m MatchConfig) Snapshot() MatchConfig {
	out := m
	out.Objectives = append([]HexConfig(nil), m.Objectives...)
	out.Objects = append([]ObjectConfig(nil), m.Objects...)
	out.Teams = make([]TeamConfig, len(m.Teams))
	for i, t := range m.Teams {
		out.Teams[i] = TeamConfig{Units: append([]UnitPlacement(nil), t.Units...)}
	}
	if m.AbilityOverrides != nil {
		out.AbilityOverrides = make(map[string]AbilityOverride, len(m.AbilityOverrides))
		for name, o := range m.AbilityOverrides {
			out.AbilityOverrides[name] = AbilityOverride{
				Enabled:  copyPtr(o.Enabled),
				Duration: copyPtr(o.Duration),
				Cooldown: copyPtr(o.Cooldown),
			}
		}
	}
	return out
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
