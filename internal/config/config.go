package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"simpletodo/internal/theme"
	"simpletodo/internal/todo"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultLogName        = "todo.log"
	DefaultStorageKey     = "todos"
	DefaultTheme          = "light"
	DefaultNoticeSeconds  = 3

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "TODO_CONFIG"
	appDir        = "todo"
)

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	Edit           string `toml:"edit"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
	CycleFilter    string `toml:"cycle_filter"`
	ClearCompleted string `toml:"clear_completed"`
	ToggleTheme    string `toml:"toggle_theme"`
	Help           string `toml:"help"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	StorageKey    string `toml:"storage_key"`
	Theme         string `toml:"theme"`
	NoticeSeconds int    `toml:"notice_seconds"`
	LogPath       string `toml:"log_path"`
	LogLevel      string `toml:"log_level"`
	Keys          Keymap `toml:"keys"`
}

// NoticeDuration is how long a notice stays on screen.
func (c Config) NoticeDuration() time.Duration {
	return time.Duration(c.NoticeSeconds) * time.Second
}

// ResolveConfigPath returns $TODO_CONFIG when set, otherwise
// <user config dir>/todo/config.toml, falling back to the working directory.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDir, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. Relative db and log paths resolve against the
// config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.backfill()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) Validate() error {
	if _, err := theme.Parse(c.Theme); err != nil {
		return fmt.Errorf("theme must be light or dark, got %q", c.Theme)
	}
	if reservedKey(c.StorageKey) {
		return fmt.Errorf("storage_key %q collides with the theme slot %q", c.StorageKey, theme.Key)
	}
	if c.NoticeSeconds <= 0 {
		return fmt.Errorf("notice_seconds must be positive, got %d", c.NoticeSeconds)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// reservedKey reports whether the todo snapshot stored under key, or its
// backup copy, would share a slot with the theme.
func reservedKey(key string) bool {
	return key == theme.Key || todo.BackupKey(key) == theme.Key
}

func (c *Config) backfill() {
	def := defaultConfig()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.StorageKey == "" {
		c.StorageKey = def.StorageKey
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	k, d := &c.Keys, def.Keys
	fill(&k.Quit, d.Quit)
	fill(&k.Add, d.Add)
	fill(&k.Up, d.Up)
	fill(&k.Down, d.Down)
	fill(&k.Toggle, d.Toggle)
	fill(&k.Delete, d.Delete)
	fill(&k.Edit, d.Edit)
	fill(&k.Confirm, d.Confirm)
	fill(&k.Cancel, d.Cancel)
	fill(&k.CycleFilter, d.CycleFilter)
	fill(&k.ClearCompleted, d.ClearCompleted)
	fill(&k.ToggleTheme, d.ToggleTheme)
	fill(&k.Help, d.Help)
}

func (c Config) resolve(base string) Config {
	if !filepath.IsAbs(c.DBPath) && !strings.HasPrefix(c.DBPath, "file:") {
		c.DBPath = filepath.Join(base, c.DBPath)
	}
	if !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(base, c.LogPath)
	}
	return c
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:        DefaultDBName,
		StorageKey:    DefaultStorageKey,
		Theme:         DefaultTheme,
		NoticeSeconds: DefaultNoticeSeconds,
		LogPath:       DefaultLogName,
		LogLevel:      "info",
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Delete:         "d",
			Edit:           "e",
			Confirm:        "enter",
			Cancel:         "esc",
			CycleFilter:    "f",
			ClearCompleted: "c",
			ToggleTheme:    "t",
			Help:           "?",
		},
	}
}
