package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/security-system/internal/logger"
)

// Config holds the settings of the security-system server and its clients.
type Config struct {
	// Name is the accessory name shown to controllers and used in logs.
	Name string `yaml:"name"`
	// ArmSeconds is the delay before an arm command becomes the current state.
	ArmSeconds int `yaml:"arm_seconds"`
	// TriggerSeconds is the delay before the siren switch turning on becomes an alarm.
	TriggerSeconds int `yaml:"trigger_seconds"`
	// ServerAddress is the gRPC address the server listens on and clients dial.
	ServerAddress string `yaml:"server_addr"`
	// HTTPAddress is the listen address of the HTTP API; empty disables it.
	HTTPAddress string `yaml:"http_addr"`
	// Timeout is the duration for network operations and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the minimum level of log messages.
	LogLevel string `yaml:"log_level"`
	// MQTT configures the optional MQTT bridge.
	MQTT MQTTConfig `yaml:"mqtt"`
	// Sounds configures audio cues.
	Sounds SoundsConfig `yaml:"sounds"`
	// Siren configures the optional GPIO siren relay.
	Siren SirenConfig `yaml:"siren"`
}

// MQTTConfig holds the MQTT bridge settings.
type MQTTConfig struct {
	// Broker is the broker URL, e.g. tcp://127.0.0.1:1883. Empty disables the bridge.
	Broker string `yaml:"broker"`
	// TopicPrefix is prepended to every state and command topic.
	TopicPrefix string `yaml:"topic_prefix"`
	// ClientID identifies this client at the broker.
	ClientID string `yaml:"client_id"`
	// Username is optional broker credentials.
	Username string `yaml:"username"`
	// Password is optional broker credentials.
	Password string `yaml:"password"`
}

// SoundsConfig lists the audio files played for each cue.
type SoundsConfig struct {
	// Player is the executable used to play a file.
	Player string `yaml:"player"`
	// PlayerArgs are passed to Player before the file name.
	PlayerArgs []string `yaml:"player_args"`
	// Siren is played in a loop while the alarm is triggered.
	Siren string `yaml:"siren"`
	// Armed is played once when an armed mode takes effect.
	Armed string `yaml:"armed"`
	// Disarmed is played once when the system is disarmed.
	Disarmed string `yaml:"disarmed"`
}

// SirenConfig selects the GPIO line that drives a siren relay.
type SirenConfig struct {
	// Chip is the GPIO character device name.
	Chip string `yaml:"chip"`
	// Line is the line offset on the chip; a negative value disables the relay.
	Line int `yaml:"line"`
	// ActiveLow inverts the output level.
	ActiveLow bool `yaml:"active_low"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "security-system.yaml"

	// DefaultEnvFilename is the default dotenv file with overrides.
	DefaultEnvFilename = ".env"

	// DefaultName is the accessory name used when none is configured.
	DefaultName = "Security system"

	// DefaultServerAddress is the gRPC address used when none is configured.
	DefaultServerAddress = "127.0.0.1:50051"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultTopicPrefix is the MQTT topic prefix used when none is configured.
	DefaultTopicPrefix = "security-system"

	// DefaultPlayer is the audio player used when none is configured.
	DefaultPlayer = "mpg123"

	// DefaultSirenSound, DefaultArmedSound and DefaultDisarmedSound are the cue
	// files, relative to the directory of the settings file.
	DefaultSirenSound    = "sounds/siren.mp3"
	DefaultArmedSound    = "sounds/armed.mp3"
	DefaultDisarmedSound = "sounds/disarmed.mp3"

	// DefaultGPIOChip is the GPIO chip used when a siren line is configured.
	DefaultGPIOChip = "gpiochip0"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeDelay is returned when a delay setting is below zero.
	errNegativeDelay = errors.New("delay must not be negative")
	// errUnknownLogLevel is returned for log levels zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{
		Siren: SirenConfig{Line: -1},
	}

	// Defaults never fail validation.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path, applies environment
// overrides and validates the result.
// A missing file at the default path yields the default configuration.
func Load(path string) (*Config, error) {
	explicit := path != "" && path != DefaultConfigFilename
	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// Keep defaults.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	env, err := ReadEnv(filepath.Join(filepath.Dir(path), DefaultEnvFilename))
	if err != nil {
		return nil, err
	}

	if err = ApplyEnv(cfg, env); err != nil {
		return nil, err
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	resolveSounds(&cfg.Sounds, filepath.Dir(path))

	return cfg, nil
}

// resolveSounds makes relative cue paths relative to dir.
func resolveSounds(sounds *SoundsConfig, dir string) {
	for _, path := range []*string{&sounds.Siren, &sounds.Armed, &sounds.Disarmed} {
		if !filepath.IsAbs(*path) {
			*path = filepath.Join(dir, *path)
		}
	}
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions, MQTT credentials may live here.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ArmSeconds < 0 {
		return fmt.Errorf("arm_seconds %d: %w", cfg.ArmSeconds, errNegativeDelay)
	}

	if cfg.TriggerSeconds < 0 {
		return fmt.Errorf("trigger_seconds %d: %w", cfg.TriggerSeconds, errNegativeDelay)
	}

	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = DefaultName
	}

	if cfg.ServerAddress == "" {
		cfg.ServerAddress = DefaultServerAddress
	}

	if _, _, err := net.SplitHostPort(cfg.ServerAddress); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}

	if cfg.HTTPAddress != "" {
		if _, _, err := net.SplitHostPort(cfg.HTTPAddress); err != nil {
			return fmt.Errorf("invalid http address: %w", err)
		}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	if cfg.MQTT.TopicPrefix == "" {
		cfg.MQTT.TopicPrefix = DefaultTopicPrefix
	}

	cfg.MQTT.TopicPrefix = strings.TrimSuffix(cfg.MQTT.TopicPrefix, "/")

	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = DefaultTopicPrefix
	}

	if cfg.Sounds.Player == "" {
		cfg.Sounds.Player = DefaultPlayer

		if len(cfg.Sounds.PlayerArgs) == 0 {
			cfg.Sounds.PlayerArgs = []string{"-q"}
		}
	}

	if cfg.Sounds.Siren == "" {
		cfg.Sounds.Siren = DefaultSirenSound
	}

	if cfg.Sounds.Armed == "" {
		cfg.Sounds.Armed = DefaultArmedSound
	}

	if cfg.Sounds.Disarmed == "" {
		cfg.Sounds.Disarmed = DefaultDisarmedSound
	}

	if cfg.Siren.Chip == "" {
		cfg.Siren.Chip = DefaultGPIOChip
	}

	return nil
}

// ArmDelay returns the arm delay as a duration.
func (c *Config) ArmDelay() time.Duration {
	return time.Duration(c.ArmSeconds) * time.Second
}

// TriggerDelay returns the trigger delay as a duration.
func (c *Config) TriggerDelay() time.Duration {
	return time.Duration(c.TriggerSeconds) * time.Second
}
