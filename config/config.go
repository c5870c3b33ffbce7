package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultAddr         = ":8080"
	DefaultDatabasePath = "./data/snapbooth.db"
	DefaultPhotoDir     = "./data/photos"
	DefaultLogDir       = "log"
	DefaultMsysBin      = `C:\msys64\mingw64\bin` // msys2 gphoto2 install on Windows
)

type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Debug bool   `yaml:"debug"` // gin debug mode
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// GphotoConfig describes how to reach the gphoto2 executable
type GphotoConfig struct {
	Executable string   `yaml:"executable"`  // name or path, default "gphoto2"
	SearchDirs []string `yaml:"search_dirs"` // prepended to PATH on Windows
	TempDir    string   `yaml:"temp_dir"`    // for ephemeral captures, default os.TempDir()
}

type PhotosConfig struct {
	Dir string `yaml:"dir"` // event photos are saved under <dir>/event_<id>/
}

type LogConfig struct {
	Dir        string `yaml:"dir"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Config aggregates all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Gphoto   GphotoConfig   `yaml:"gphoto"`
	Photos   PhotosConfig   `yaml:"photos"`
	Log      LogConfig      `yaml:"log"`
}

// Load reads a YAML file and returns the configuration. A missing file
// is not an error: defaults are used. Environment overrides apply last.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("unmarshal yaml: %w", err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("SNAPBOOTH_ADDR", c.Server.Addr)
	c.Database.Path = getEnv("SNAPBOOTH_DB", c.Database.Path)
	c.Gphoto.Executable = getEnv("SNAPBOOTH_GPHOTO2", c.Gphoto.Executable)
	c.Photos.Dir = getEnv("SNAPBOOTH_PHOTO_DIR", c.Photos.Dir)
}

func (c *Config) applyDefaults() error {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Gphoto.SearchDirs == nil && runtime.GOOS == "windows" {
		c.Gphoto.SearchDirs = []string{DefaultMsysBin}
	}
	if c.Photos.Dir == "" {
		c.Photos.Dir = DefaultPhotoDir
	}
	if c.Log.Dir == "" {
		c.Log.Dir = DefaultLogDir
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 5
	}
	if c.Log.MaxAgeDays <= 0 {
		c.Log.MaxAgeDays = 30
	}

	if c.Gphoto.TempDir != "" {
		if info, err := os.Stat(c.Gphoto.TempDir); err != nil || !info.IsDir() {
			return fmt.Errorf("gphoto.temp_dir %q is not a directory", c.Gphoto.TempDir)
		}
	}
	return nil
}

// LogPath returns the rotating log file location
func (c *Config) LogPath() string {
	return filepath.Join(c.Log.Dir, "snapbooth.log")
}

// getEnv gets environment variable with fallback default
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
