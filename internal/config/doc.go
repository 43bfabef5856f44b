// Package config manages user-level settings stored at ~/.depot/config.yaml.
// It loads the file and DEPOT_* environment overrides through Viper and
// resolves them into an explicit Paths value that the registry is built from.
package config
