package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings
const (
	EnvConfig     = "GROOTMAN_CONFIG"
	EnvCatalogURL = "GROOTMAN_CATALOG_URL"
	EnvAlbum      = "GROOTMAN_ALBUM"
	EnvLogLevel   = "GROOTMAN_LOG_LEVEL"
)

// Config holds application configuration
type Config struct {
	CatalogURL    string  `json:"catalog_url" yaml:"catalog_url"`
	Album         string  `json:"album" yaml:"album"`
	DefaultVolume int     `json:"default_volume" yaml:"default_volume"`
	LogFile       string  `json:"log_file" yaml:"log_file"`
	LogLevel      string  `json:"log_level" yaml:"log_level"`
	DataDir       string  `json:"data_dir" yaml:"data_dir"`
	Featured      []Panel `json:"featured" yaml:"featured"`
	KeyBindings   KeyMap  `json:"key_bindings" yaml:"key_bindings"`
}

// Panel is one page of the home screen slideshow
type Panel struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// KeyMap defines keyboard shortcuts
type KeyMap struct {
	PlayPause   string `json:"play_pause" yaml:"play_pause"`
	Next        string `json:"next" yaml:"next"`
	Previous    string `json:"previous" yaml:"previous"`
	Shuffle     string `json:"shuffle" yaml:"shuffle"`
	Repeat      string `json:"repeat" yaml:"repeat"`
	Mute        string `json:"mute" yaml:"mute"`
	VolumeUp    string `json:"volume_up" yaml:"volume_up"`
	VolumeDown  string `json:"volume_down" yaml:"volume_down"`
	SeekForward string `json:"seek_forward" yaml:"seek_forward"`
	SeekBack    string `json:"seek_back" yaml:"seek_back"`
	Quit        string `json:"quit" yaml:"quit"`
}

// GetDefaultConfig returns default configuration
func GetDefaultConfig() *Config {
	return &Config{
		CatalogURL:    "http://localhost:8080",
		DefaultVolume: 75,
		LogLevel:      "info",
		DataDir:       "./data",
		Featured: []Panel{
			{Title: "I am Groot", Body: "Pick a song from the Songs tab to start listening."},
			{Title: "Albums", Body: "Start with `grootman <album>` to load another collection."},
			{Title: "Shuffle and repeat", Body: "Press s to shuffle and r to cycle the repeat mode."},
		},
		KeyBindings: KeyMap{
			PlayPause:   " ",
			Next:        "n",
			Previous:    "p",
			Shuffle:     "s",
			Repeat:      "r",
			Mute:        "m",
			VolumeUp:    "+",
			VolumeDown:  "-",
			SeekForward: "right",
			SeekBack:    "left",
			Quit:        "q",
		},
	}
}

// LoadConfig reads configuration from a JSON or YAML file. Settings missing
// from the file keep their defaults; a missing file yields the defaults.
// Call Validate once overrides have been applied.
func LoadConfig(path string) (*Config, error) {
	config := GetDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		d := yaml.NewDecoder(bytes.NewReader(data))
		d.KnownFields(true)
		if err := d.Decode(config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	} else if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}

// Validate reports settings that cannot be used
func (c *Config) Validate() error {
	if c.DefaultVolume < 0 || c.DefaultVolume > 100 {
		return fmt.Errorf("config: default_volume %d is outside 0-100", c.DefaultVolume)
	}
	if strings.TrimSpace(c.CatalogURL) == "" {
		return fmt.Errorf("config: catalog_url is required")
	}
	return nil
}

// ApplyEnv loads a .env file from the working directory if there is one and
// applies environment overrides on top of c.
func (c *Config) ApplyEnv() {
	// A missing .env file is fine
	_ = godotenv.Load()

	if v := os.Getenv(EnvCatalogURL); v != "" {
		c.CatalogURL = v
	}
	if v := os.Getenv(EnvAlbum); v != "" {
		c.Album = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// LogPath returns the log file, which defaults to grootman.log in DataDir
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "grootman.log")
}

// SaveConfig marshals and saves configuration to file
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "grootman", "config.yaml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}
	return filepath.Join(home, ".config", "grootman", "config.yaml")
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
