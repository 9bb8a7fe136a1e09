package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override values from the YAML file.
const (
	EnvArmSeconds     = "SECURITY_SYSTEM_ARM_SECONDS"
	EnvTriggerSeconds = "SECURITY_SYSTEM_TRIGGER_SECONDS"
	EnvServerAddress  = "SECURITY_SYSTEM_SERVER_ADDR"
	EnvHTTPAddress    = "SECURITY_SYSTEM_HTTP_ADDR"
	EnvLogLevel       = "SECURITY_SYSTEM_LOG_LEVEL"
	EnvMQTTBroker     = "SECURITY_SYSTEM_MQTT_BROKER"
)

// overridable lists every variable ApplyEnv understands.
//
//nolint:gochecknoglobals // Read-only list.
var overridable = []string{
	EnvArmSeconds,
	EnvTriggerSeconds,
	EnvServerAddress,
	EnvHTTPAddress,
	EnvLogLevel,
	EnvMQTTBroker,
}

// ReadEnv returns the overrides found in the dotenv file at path merged with
// the process environment. Process variables win over the file.
// A missing file is not an error.
func ReadEnv(path string) (map[string]string, error) {
	env := make(map[string]string, len(overridable))

	fileEnv, err := godotenv.Read(filepath.Clean(path))
	switch {
	case err == nil:
		for key, value := range fileEnv {
			env[key] = value
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read env file: %w", err)
	}

	for _, key := range overridable {
		if value, ok := os.LookupEnv(key); ok {
			env[key] = value
		}
	}

	return env, nil
}

// ApplyEnv overrides configuration values with the recognised variables in env.
func ApplyEnv(cfg *Config, env map[string]string) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := applyInt(env, EnvArmSeconds, &cfg.ArmSeconds); err != nil {
		return err
	}

	if err := applyInt(env, EnvTriggerSeconds, &cfg.TriggerSeconds); err != nil {
		return err
	}

	applyString(env, EnvServerAddress, &cfg.ServerAddress)
	applyString(env, EnvHTTPAddress, &cfg.HTTPAddress)
	applyString(env, EnvLogLevel, &cfg.LogLevel)
	applyString(env, EnvMQTTBroker, &cfg.MQTT.Broker)

	return nil
}

func applyString(env map[string]string, key string, dst *string) {
	if value, ok := env[key]; ok {
		*dst = value
	}
}

func applyInt(env map[string]string, key string, dst *int) error {
	value, ok := env[key]
	if !ok {
		return nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}

	*dst = parsed

	return nil
}
