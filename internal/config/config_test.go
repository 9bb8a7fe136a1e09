package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields, format validations and defaults.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Negative delays.
	require.ErrorIs(t, Validate(&Config{ArmSeconds: -1}), errNegativeDelay)
	require.ErrorIs(t, Validate(&Config{TriggerSeconds: -5}), errNegativeDelay)

	// Bad addresses.
	require.Error(t, Validate(&Config{ServerAddress: "no-port"}))
	require.Error(t, Validate(&Config{HTTPAddress: "no-port"}))

	// Bad log level.
	require.ErrorIs(t, Validate(&Config{LogLevel: "loud"}), errUnknownLogLevel)

	// Defaults.
	cfg := &Config{MQTT: MQTTConfig{TopicPrefix: "home/alarm/"}}
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultName, cfg.Name)
	require.Equal(t, DefaultServerAddress, cfg.ServerAddress)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, "home/alarm", cfg.MQTT.TopicPrefix)
	require.Equal(t, DefaultPlayer, cfg.Sounds.Player)
	require.Equal(t, "sounds/siren.mp3", cfg.Sounds.Siren)
	require.Equal(t, "sounds/armed.mp3", cfg.Sounds.Armed)
	require.Equal(t, "sounds/disarmed.mp3", cfg.Sounds.Disarmed)
	require.Equal(t, DefaultGPIOChip, cfg.Siren.Chip)
}

// TestDefault verifies delays default to zero and the siren relay is disabled.
func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.Zero(t, cfg.ArmDelay())
	require.Zero(t, cfg.TriggerDelay())
	require.Negative(t, cfg.Siren.Line)
	require.Empty(t, cfg.MQTT.Broker)
	require.Empty(t, cfg.HTTPAddress)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := &Config{
		Name:           "Garage",
		ArmSeconds:     30,
		TriggerSeconds: 10,
		ServerAddress:  "127.0.0.1:50051",
		HTTPAddress:    ":8080",
		Timeout:        3 * time.Second,
		Siren:          SirenConfig{Line: 17},
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Garage", loaded.Name)
	require.Equal(t, 30*time.Second, loaded.ArmDelay())
	require.Equal(t, 10*time.Second, loaded.TriggerDelay())
	require.Equal(t, ":8080", loaded.HTTPAddress)
	require.Equal(t, 3*time.Second, loaded.Timeout)
	require.Equal(t, 17, loaded.Siren.Line)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(DefaultFilePermissions), info.Mode().Perm())
}

// TestLoad_MissingExplicitFile asserts that an explicitly named file must exist.
func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

// TestLoad_EnvFileOverrides checks that the dotenv file next to the settings wins over YAML.
func TestLoad_EnvFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	require.NoError(t, Save(path, &Config{ArmSeconds: 5}))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, DefaultEnvFilename),
		[]byte(EnvArmSeconds+"=12\n"+EnvMQTTBroker+"=tcp://broker:1883\n"),
		DefaultFilePermissions,
	))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 12, loaded.ArmSeconds)
	require.Equal(t, "tcp://broker:1883", loaded.MQTT.Broker)
}

// TestApplyEnv verifies parsing and error reporting of overrides.
func TestApplyEnv(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, map[string]string{
		EnvTriggerSeconds: "7",
		EnvHTTPAddress:    "127.0.0.1:8081",
		EnvLogLevel:       "debug",
	}))
	require.Equal(t, 7, cfg.TriggerSeconds)
	require.Equal(t, "127.0.0.1:8081", cfg.HTTPAddress)
	require.Equal(t, "debug", cfg.LogLevel)

	require.Error(t, ApplyEnv(cfg, map[string]string{EnvArmSeconds: "soon"}))
	require.Error(t, ApplyEnv(nil, nil))
}

// TestReadEnv_ProcessWins ensures process variables override the dotenv file.
//
//nolint:paralleltest // t.Setenv cannot be used in parallel tests.
func TestReadEnv_ProcessWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultEnvFilename)

	require.NoError(t, os.WriteFile(path, []byte(EnvLogLevel+"=warn\n"), DefaultFilePermissions))
	t.Setenv(EnvLogLevel, "error")

	env, err := ReadEnv(path)
	require.NoError(t, err)
	require.Equal(t, "error", env[EnvLogLevel])

	env, err = ReadEnv(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "error", env[EnvLogLevel])
}

// TestLoad_DefaultSoundsNextToSettings resolves the default cue files against the settings directory.
func TestLoad_DefaultSoundsNextToSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFilename)
	absolute := filepath.Join(t.TempDir(), "custom.mp3")

	require.NoError(t, Save(path, &Config{Sounds: SoundsConfig{Armed: absolute}}))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "sounds", "siren.mp3"), cfg.Sounds.Siren)
	require.Equal(t, absolute, cfg.Sounds.Armed)
	require.Equal(t, filepath.Join(dir, "sounds", "disarmed.mp3"), cfg.Sounds.Disarmed)
}
