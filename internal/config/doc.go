// Package config defines the security-system settings and provides helpers
// to load, validate and save them in YAML format.
//
// Values from an optional dotenv file next to the settings file and from the
// process environment override the YAML values.
package config
