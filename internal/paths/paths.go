// Package paths owns drum's on-disk layout: where the configuration and the
// game ledger live, and which files each directory holds.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user configuration and data directories.
const AppName = "drum"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "DRUM_CONFIG_DIR"
	EnvDataDir   = "DRUM_DATA_DIR"
)

// File names inside the configuration and data directories.
const (
	ConfigFileName   = "config.yaml"
	GamesFileName    = "games.jsonl"
	DatabaseFileName = "drum.db"
)

// Origin records which setting chose a directory.
type Origin string

const (
	OriginFlag    Origin = "flag"
	OriginConfig  Origin = "config.yaml"
	OriginEnv     Origin = "env"
	OriginDefault Origin = "default"
)

// Dir is a resolved absolute directory and the setting that chose it.
type Dir struct {
	Path   string
	Origin Origin
}

func (d Dir) String() string {
	return d.Path + " (" + string(d.Origin) + ")"
}

// Ledger lists the files that make up the game ledger in one data directory.
// Games is the source of truth; Database is rebuilt from it.
type Ledger struct {
	Dir      string
	Games    string
	Database string
}

// LedgerFiles returns the ledger layout inside dataDir. An empty dataDir
// means the working directory.
func LedgerFiles(dataDir string) Ledger {
	if dataDir == "" {
		dataDir = "."
	}
	return Ledger{
		Dir:      dataDir,
		Games:    filepath.Join(dataDir, GamesFileName),
		Database: filepath.Join(dataDir, DatabaseFileName),
	}
}

// ConfigFile returns the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// userDir describes one per-user base directory: the XDG variable that
// overrides it on Linux and the home-relative fallback.
type userDir struct {
	xdgEnv   string
	fallback []string
}

var (
	configHome = userDir{xdgEnv: "XDG_CONFIG_HOME", fallback: []string{".config"}}
	dataHome   = userDir{xdgEnv: "XDG_DATA_HOME", fallback: []string{".local", "share"}}
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// appDir returns drum's directory under u. Outside Linux both configuration
// and data live in os.UserConfigDir (Application Support, %APPDATA%).
func (u userDir) appDir() (string, error) {
	if platformDir.goos != "linux" {
		base, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(base, AppName), nil
	}

	if xdg := os.Getenv(u.xdgEnv); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	elems := append([]string{home}, u.fallback...)
	return filepath.Join(append(elems, AppName)...), nil
}

// candidate is one step of a precedence chain.
type candidate struct {
	value  string
	origin Origin
}

// resolve returns the first non-empty candidate made absolute, or the
// platform default of u.
func resolve(u userDir, chain ...candidate) (Dir, error) {
	for _, c := range chain {
		if c.value == "" {
			continue
		}
		abs, err := filepath.Abs(c.value)
		if err != nil {
			return Dir{}, err
		}
		return Dir{Path: abs, Origin: c.origin}, nil
	}

	def, err := u.appDir()
	if err != nil {
		return Dir{}, err
	}
	return Dir{Path: def, Origin: OriginDefault}, nil
}

// ConfigDir resolves the configuration directory:
// flag > DRUM_CONFIG_DIR > platform default.
func ConfigDir(flag string) (Dir, error) {
	return resolve(configHome,
		candidate{flag, OriginFlag},
		candidate{os.Getenv(EnvConfigDir), OriginEnv},
	)
}

// DataDir resolves the ledger directory:
// flag > data_dir in config.yaml > DRUM_DATA_DIR > platform default.
func DataDir(flag, configValue string) (Dir, error) {
	return resolve(dataHome,
		candidate{flag, OriginFlag},
		candidate{configValue, OriginConfig},
		candidate{os.Getenv(EnvDataDir), OriginEnv},
	)
}
