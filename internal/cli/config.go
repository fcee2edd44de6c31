// Config loading for the drum CLI.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/drum/internal/game"
	"github.com/mesh-intelligence/drum/internal/paths"
	"github.com/mesh-intelligence/drum/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyDefaultBalance = "default_balance"
	cfgKeyRecord         = "record"

	// envPrefix namespaces environment overrides, e.g. DRUM_DEFAULT_BALANCE.
	envPrefix = "DRUM"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend        string `yaml:"backend"`
	DefaultBalance uint64 `yaml:"default_balance"`
	Record         bool   `yaml:"record"`
	DataDir        string `yaml:"data_dir,omitempty"`
}

// settings is the resolved configuration for one command run.
type settings struct {
	configDir      paths.Dir
	dataDir        paths.Dir
	backend        string
	defaultBalance uint64
	record         bool
}

// defaultSettings is used when configuration cannot be loaded at all.
func defaultSettings() settings {
	return settings{
		backend:        types.BackendSQLite,
		defaultBalance: game.DefaultBalance,
	}
}

// ledgerConfig returns the Ledger.Attach configuration for s.
func (s settings) ledgerConfig() types.Config {
	return types.Config{
		Backend: s.backend,
		DataDir: s.dataDir.Path,
	}
}

// loadSettings resolves directories from flags, env, and config.yaml.
// A default_balance or record value that does not parse is reported on
// stderr and replaced by its default.
func loadSettings(stderr io.Writer) (settings, error) {
	configDir, err := paths.ConfigDir(flags.configDir)
	if err != nil {
		return settings{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir.Path)
	if err != nil {
		return settings{}, err
	}

	dataDir, err := paths.DataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, fmt.Errorf("resolve data dir: %w", err)
	}

	s := settings{
		configDir:      configDir,
		dataDir:        dataDir,
		backend:        v.GetString(cfgKeyBackend),
		defaultBalance: game.DefaultBalance,
		record:         true,
	}

	if n, err := cast.ToUint64E(v.Get(cfgKeyDefaultBalance)); err != nil {
		warn(stderr, fmt.Errorf("%s: %w; using %d", cfgKeyDefaultBalance, err, game.DefaultBalance))
	} else {
		s.defaultBalance = n
	}

	if b, err := cast.ToBoolE(v.Get(cfgKeyRecord)); err != nil {
		warn(stderr, fmt.Errorf("%s: %w; using true", cfgKeyRecord, err))
	} else {
		s.record = b
	}

	return s, nil
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// config directory and a default config.yaml on first run. A config.yaml
// that disappears between creation and reading is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyDefaultBalance, game.DefaultBalance)
	v.SetDefault(cfgKeyRecord, true)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyDefaultBalance, cfgKeyRecord} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes config.yaml with default values if the file
// does not exist. An existing file is left untouched.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&configFile{
		Backend:        types.BackendSQLite,
		DefaultBalance: game.DefaultBalance,
		Record:         true,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
