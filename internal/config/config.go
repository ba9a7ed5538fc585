package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Server      ServerConfig      `mapstructure:"server"`
	Verifier    VerifierConfig    `mapstructure:"verifier"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds game session settings
type GameConfig struct {
	OpponentName string          `mapstructure:"opponent_name"`
	TurnDelayMs  int             `mapstructure:"turn_delay_ms"`
	Placement    PlacementConfig `mapstructure:"placement"`
	Targeting    TargetingConfig `mapstructure:"targeting"`
}

// TurnDelay is the pause before the opponent answers a player shot
func (g GameConfig) TurnDelay() time.Duration {
	return time.Duration(g.TurnDelayMs) * time.Millisecond
}

// PlacementConfig holds fleet generation settings
type PlacementConfig struct {
	MaxAttemptsPerShip int `mapstructure:"max_attempts_per_ship"`
	MaxRestarts        int `mapstructure:"max_restarts"`
}

// TargetingConfig holds opponent strategy settings
type TargetingConfig struct {
	FollowUpHits bool `mapstructure:"follow_up_hits"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	LogFormat  string           `mapstructure:"log_format"`
	GRPCServer GRPCServerConfig `mapstructure:"grpc_server"`
}

// GRPCServerConfig holds gRPC server configuration
type GRPCServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	LogLevel              string `mapstructure:"log_level"`
	MaxGames              int    `mapstructure:"max_games"`
	EnableReflection      bool   `mapstructure:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
	FinishedGameTTLSec    int    `mapstructure:"finished_game_ttl_s"`
	AbandonedGameTimeout  int    `mapstructure:"abandoned_game_timeout_s"`
	CleanupIntervalSec    int    `mapstructure:"cleanup_interval_s"`
}

// VerifierConfig holds settings for the external result verification service
type VerifierConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	BaseURL   string `mapstructure:"base_url"`
	Path      string `mapstructure:"path"`
	TimeoutMs int    `mapstructure:"timeout_ms"`
}

// Timeout is the per-request deadline of a submission
func (vc VerifierConfig) Timeout() time.Duration {
	return time.Duration(vc.TimeoutMs) * time.Millisecond
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging bool `mapstructure:"verbose_logging"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
	mu  sync.RWMutex
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.opponent_name", "Ferris")
	v.SetDefault("game.turn_delay_ms", 800)
	v.SetDefault("game.placement.max_attempts_per_ship", 1000)
	v.SetDefault("game.placement.max_restarts", 5)
	v.SetDefault("game.targeting.follow_up_hits", false)

	// Server defaults
	v.SetDefault("server.log_format", "console")

	// gRPC server defaults
	v.SetDefault("server.grpc_server.host", "0.0.0.0")
	v.SetDefault("server.grpc_server.port", 50051)
	v.SetDefault("server.grpc_server.log_level", "info")
	v.SetDefault("server.grpc_server.max_games", 100)
	v.SetDefault("server.grpc_server.enable_reflection", true)
	v.SetDefault("server.grpc_server.graceful_shutdown_delay", 5)
	v.SetDefault("server.grpc_server.finished_game_ttl_s", 300)
	v.SetDefault("server.grpc_server.abandoned_game_timeout_s", 1800)
	v.SetDefault("server.grpc_server.cleanup_interval_s", 60)

	// Verifier defaults
	v.SetDefault("verifier.enabled", false)
	v.SetDefault("verifier.base_url", "http://localhost:3001")
	v.SetDefault("verifier.path", "/battleship/generate-proof")
	v.SetDefault("verifier.timeout_ms", 30000)

	// Development defaults
	v.SetDefault("development.verbose_logging", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	mu.Lock()
	defer mu.Unlock()

	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/battleship")
	}

	// BSHIP_GAME_TURN_DELAY_MS overrides game.turn_delay_ms
	v.SetEnvPrefix("BSHIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			// Specific file requested but not found - that's ok, use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	cfg = next
	return nil
}

// Get returns the global config instance
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c != nil {
		return c
	}

	// Initialize with defaults if not already initialized
	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	return reload()
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	mu.Lock()
	defer mu.Unlock()

	v.Set(key, value)
	_ = reload()
}

// reload re-decodes the viper state into a fresh struct. Callers hold mu.
func reload() error {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = next
	return nil
}

// GetString gets a string value from config
func GetString(key string) string {
	return GetViper().GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return GetViper().GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return GetViper().GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return GetViper().ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. An invalid edit keeps the previous config.
func WatchConfig(onChange func(error)) {
	vp := GetViper()
	vp.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		err := reload()
		mu.Unlock()
		if onChange != nil {
			onChange(err)
		}
	})
	vp.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if strings.TrimSpace(c.Game.OpponentName) == "" {
		return fmt.Errorf("game.opponent_name must not be empty")
	}
	if c.Game.TurnDelayMs < 0 {
		return fmt.Errorf("game.turn_delay_ms must be non-negative")
	}
	if c.Game.Placement.MaxAttemptsPerShip <= 0 {
		return fmt.Errorf("game.placement.max_attempts_per_ship must be positive")
	}
	if c.Game.Placement.MaxRestarts < 0 {
		return fmt.Errorf("game.placement.max_restarts must be non-negative")
	}

	switch c.Server.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("server.log_format must be console or json")
	}

	if c.Server.GRPCServer.Port <= 0 || c.Server.GRPCServer.Port > 65535 {
		return fmt.Errorf("server.grpc_server.port must be between 1 and 65535")
	}
	if c.Server.GRPCServer.MaxGames <= 0 {
		return fmt.Errorf("server.grpc_server.max_games must be positive")
	}
	if c.Server.GRPCServer.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.grpc_server.graceful_shutdown_delay must be non-negative")
	}
	if c.Server.GRPCServer.FinishedGameTTLSec <= 0 {
		return fmt.Errorf("server.grpc_server.finished_game_ttl_s must be positive")
	}
	if c.Server.GRPCServer.AbandonedGameTimeout <= 0 {
		return fmt.Errorf("server.grpc_server.abandoned_game_timeout_s must be positive")
	}
	if c.Server.GRPCServer.CleanupIntervalSec <= 0 {
		return fmt.Errorf("server.grpc_server.cleanup_interval_s must be positive")
	}

	if c.Verifier.Enabled && c.Verifier.BaseURL == "" {
		return fmt.Errorf("verifier.base_url is required when the verifier is enabled")
	}
	if c.Verifier.Path != "" && !strings.HasPrefix(c.Verifier.Path, "/") {
		return fmt.Errorf("verifier.path must start with /")
	}
	if c.Verifier.TimeoutMs <= 0 {
		return fmt.Errorf("verifier.timeout_ms must be positive")
	}

	return nil
}
