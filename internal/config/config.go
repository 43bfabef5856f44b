package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/depot-labs/depot/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by Resolve. Each can also be set through the environment,
// e.g. install_dir -> DEPOT_INSTALL_DIR.
const (
	KeyInstallDir = "install_dir"
	KeyStagingDir = "staging_dir"
	KeyDBFile     = "db_file"
	KeyReposFile  = "repos_file"
	KeyReleaseURL = "release_url"
	KeyBinaryURL  = "binary_url"
	KeyLogLevel   = "log_level"
	KeyGit        = "git"
)

// Keys returns every key Resolve reads, in a stable order.
func Keys() []string {
	return []string{
		KeyInstallDir, KeyStagingDir, KeyDBFile, KeyReposFile,
		KeyReleaseURL, KeyBinaryURL, KeyLogLevel, KeyGit,
	}
}

// Default file and directory names under the home directory.
const (
	InstalledDir = "installed"
	StagingDir   = "downloads"
	DBFile       = "db.yaml"
	ReposFile    = "repos.yaml"
)

// Paths is the resolved configuration handed to the registry and updater.
type Paths struct {
	Home       string
	InstallDir string
	StagingDir string
	DBFile     string
	ReposFile  string
	ReleaseURL string
	BinaryURL  string
	LogLevel   string
	Git        string
}

// Dir returns the Depot home directory. DEPOT_HOME wins over ~/.depot.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.depot/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	dir := Dir()
	viper.SetDefault(KeyInstallDir, filepath.Join(dir, InstalledDir))
	viper.SetDefault(KeyStagingDir, filepath.Join(dir, StagingDir))
	viper.SetDefault(KeyDBFile, filepath.Join(dir, DBFile))
	viper.SetDefault(KeyReposFile, filepath.Join(dir, ReposFile))
	viper.SetDefault(KeyReleaseURL, branding.ReleaseURL())
	viper.SetDefault(KeyBinaryURL, branding.BinaryURL())
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyGit, "git")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Resolve loads the configuration and returns absolute paths for every
// location Depot touches.
func Resolve() (Paths, error) {
	Load()

	p := Paths{
		Home:       Dir(),
		InstallDir: Get(KeyInstallDir),
		StagingDir: Get(KeyStagingDir),
		DBFile:     Get(KeyDBFile),
		ReposFile:  Get(KeyReposFile),
		ReleaseURL: Get(KeyReleaseURL),
		BinaryURL:  Get(KeyBinaryURL),
		LogLevel:   Get(KeyLogLevel),
		Git:        Get(KeyGit),
	}

	for _, ptr := range []*string{&p.Home, &p.InstallDir, &p.StagingDir, &p.DBFile, &p.ReposFile} {
		abs, err := filepath.Abs(*ptr)
		if err != nil {
			return Paths{}, fmt.Errorf("resolving %s: %w", *ptr, err)
		}
		*ptr = abs
	}
	return p, nil
}
