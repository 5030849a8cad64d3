package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "deadlines.db"
	DefaultToastSeconds   = 3

	configEnv = "COUNTDOWN_CONFIG"
	appDir    = "countdown"
)

type Keymap struct {
	Quit           string `toml:"quit"`
	SwitchTab      string `toml:"switch_tab"`
	Refresh        string `toml:"refresh"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Add            string `toml:"add"`
	Delete         string `toml:"delete"`
	Grab           string `toml:"grab"`
	DeleteCategory string `toml:"delete_category"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
}

type Config struct {
	DBPath       string `toml:"db_path"`
	LogDir       string `toml:"log_dir"`
	Debug        bool   `toml:"debug"`
	ToastSeconds int    `toml:"toast_seconds"`
	Keys         Keymap `toml:"keys"`
}

// ResolveConfigPath prefers $COUNTDOWN_CONFIG and falls back to the user
// config directory.
func ResolveConfigPath() string {
	if p := os.Getenv(configEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDir, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first
// when the file does not exist. Relative data paths are resolved against the
// config file's directory.
func LoadOrCreate(path string) (Config, error) {
	base := filepath.Dir(path)
	cfg := defaultConfig(base)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(base, cfg.DBPath)
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "logs"
	}
	if !filepath.IsAbs(cfg.LogDir) {
		cfg.LogDir = filepath.Join(base, cfg.LogDir)
	}
	if cfg.ToastSeconds <= 0 {
		cfg.ToastSeconds = DefaultToastSeconds
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return defaultConfig(".")
}

func defaultConfig(base string) Config {
	return Config{
		DBPath:       filepath.Join(base, DefaultDBName),
		LogDir:       filepath.Join(base, "logs"),
		ToastSeconds: DefaultToastSeconds,
		Keys: Keymap{
			Quit:           "q",
			SwitchTab:      "tab",
			Refresh:        "r",
			Up:             "k",
			Down:           "j",
			Add:            "a",
			Delete:         "d",
			Grab:           "m",
			DeleteCategory: "x",
			Confirm:        "enter",
			Cancel:         "esc",
		},
	}
}
