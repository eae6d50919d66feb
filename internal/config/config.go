package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/JohnBarton27/flask-generator/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognised configuration keys.
const (
	KeyDefaultLocation = "default_location"
	KeyIncludeTests    = "include_tests"
	KeyInitGit         = "init_git"
	KeyPythonVersion   = "python_version"
)

// ErrUnknownKey is returned by Set for keys outside the recognised set.
var ErrUnknownKey = errors.New("unknown config key")

// defaults holds the value used for every key when neither the file nor the
// environment sets it.
var defaults = map[string]any{
	KeyDefaultLocation: "",
	KeyIncludeTests:    true,
	KeyInitGit:         true,
	KeyPythonVersion:   "3",
}

var boolKeys = map[string]bool{
	KeyIncludeTests: true,
	KeyInitGit:      true,
}

// Dir returns the path to the config directory. FLASKGEN_HOME overrides the
// default of ~/.flaskgen.
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

// FilePath returns the full path to the config file (~/.flaskgen/config.yaml).
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
// Any previously loaded state is discarded.
func Load() {
	viper.Reset()
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Keys returns the recognised configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnown reports whether key is a recognised configuration key.
func IsKnown(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value by key.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// DefaultLocation returns the configured default parent directory for new
// projects, or "" when none is set.
func DefaultLocation() string { return Get(KeyDefaultLocation) }

// IncludeTests reports whether new projects get a test harness.
func IncludeTests() bool { return GetBool(KeyIncludeTests) }

// InitGit reports whether new projects get a git repository.
func InitGit() bool { return GetBool(KeyInitGit) }

// PythonVersion returns the Python version advertised in generated readmes.
func PythonVersion() string { return Get(KeyPythonVersion) }

// Set writes a config key-value pair and saves the config file. Boolean keys
// accept anything strconv.ParseBool does.
func Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("%w %q (known keys: %v)", ErrUnknownKey, key, Keys())
	}

	var typed any = value
	if boolKeys[key] {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("value for %s must be true or false, got %q", key, value)
		}
		typed = b
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, typed)

	configFile := FilePath()

	// Create the file if it doesn't exist.
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
