// Package config provides configuration loading and validation for
// applications embedding the capability framework.
//
// It uses Viper to load settings from files and environment variables.
// The settings choose the constraint-checking policy (eager or lazy) and
// configure logging for the wiring phase.
//
// # Usage
//
//	settings, err := config.Load(config.WithConfigFile("capkit.yml"))
//
// Environment variables override file values using the CAPKIT_ prefix
// (e.g., CAPKIT_VALIDATION=eager).
package config
