// common/config_manager.go
// Package common implements shared functionality used across the MediaConverter application.
// This file contains configuration management functionality.

package common

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Settings holds every persisted user preference.
type Settings struct {
	Language    string `json:"language"`
	FFmpegPath  string `json:"ffmpeg_path"`
	FFprobePath string `json:"ffprobe_path"`

	// MenuIcon sets the executable as the icon of the context menu
	MenuIcon bool `json:"menu_icon"`

	JPEGQuality  int  `json:"jpeg_quality"`
	WebPLossless bool `json:"webp_lossless"`
	WebPQuality  int  `json:"webp_quality"`

	LastImageFormat    string `json:"last_image_format"`
	LastAudioFormat    string `json:"last_audio_format"`
	LastVideoFormat    string `json:"last_video_format"`
	LastImageRecursive bool   `json:"last_image_recursive"`
	LastAudioRecursive bool   `json:"last_audio_recursive"`
	LastVideoRecursive bool   `json:"last_video_recursive"`

	LogMaxSizeMB  int  `json:"log_max_size_mb"`
	LogMaxAgeDays int  `json:"log_max_age_days"`
	LogMaxBackups int  `json:"log_max_backups"`
	DebugLog      bool `json:"debug_log"`
}

// DefaultSettings returns the settings used when no configuration file exists
func DefaultSettings() Settings {
	return Settings{
		MenuIcon:        true,
		JPEGQuality:     90,
		WebPLossless:    true,
		WebPQuality:     90,
		LastImageFormat: "png",
		LastAudioFormat: "mp3",
		LastVideoFormat: "mp4",
		LogMaxSizeMB:    10,
		LogMaxAgeDays:   7,
		LogMaxBackups:   5,
	}
}

// applyDefaults fills zero numeric fields with their defaults and clamps qualities
func (s *Settings) applyDefaults() {
	def := DefaultSettings()
	if s.JPEGQuality <= 0 || s.JPEGQuality > 100 {
		s.JPEGQuality = def.JPEGQuality
	}
	if s.WebPQuality <= 0 || s.WebPQuality > 100 {
		s.WebPQuality = def.WebPQuality
	}
	if s.LogMaxSizeMB <= 0 {
		s.LogMaxSizeMB = def.LogMaxSizeMB
	}
	if s.LogMaxAgeDays <= 0 {
		s.LogMaxAgeDays = def.LogMaxAgeDays
	}
	if s.LogMaxBackups <= 0 {
		s.LogMaxBackups = def.LogMaxBackups
	}
	if s.LastImageFormat == "" {
		s.LastImageFormat = def.LastImageFormat
	}
	if s.LastAudioFormat == "" {
		s.LastAudioFormat = def.LastAudioFormat
	}
	if s.LastVideoFormat == "" {
		s.LastVideoFormat = def.LastVideoFormat
	}
	if debug, err := strconv.ParseBool(os.Getenv(EnvDebug)); err == nil && debug {
		s.DebugLog = true
	}
}

// LastFormat returns the remembered output format of a category
func (s Settings) LastFormat(category Category) string {
	switch category {
	case CategoryAudio:
		return s.LastAudioFormat
	case CategoryVideo:
		return s.LastVideoFormat
	}
	return s.LastImageFormat
}

// LastRecursive returns the remembered recursion flag of a category
func (s Settings) LastRecursive(category Category) bool {
	switch category {
	case CategoryAudio:
		return s.LastAudioRecursive
	case CategoryVideo:
		return s.LastVideoRecursive
	}
	return s.LastImageRecursive
}

// Remember stores the last used format and recursion flag of a category
func (s *Settings) Remember(category Category, format string, recursive bool) {
	switch category {
	case CategoryAudio:
		s.LastAudioFormat, s.LastAudioRecursive = format, recursive
	case CategoryVideo:
		s.LastVideoFormat, s.LastVideoRecursive = format, recursive
	default:
		s.LastImageFormat, s.LastImageRecursive = format, recursive
	}
}

// ConfigManager handles loading and saving the application settings.
// It provides thread-safe access to the settings.
type ConfigManager struct {
	configPath string
	settings   Settings
	mutex      sync.Mutex
}

// NewConfigManager loads the configuration at configPath. A missing or empty file yields
// the defaults, a malformed file is reported and replaced by defaults.
func NewConfigManager(configPath string) (*ConfigManager, error) {
	mgr := &ConfigManager{
		configPath: configPath,
		settings:   DefaultSettings(),
	}

	if err := mgr.load(); err != nil {
		mgr.settings.applyDefaults()
		return mgr, err
	}
	return mgr, nil
}

// OpenConfigManager locates the configuration file: an existing file in the working
// directory first, then APPDATA (created when missing), then the working directory.
func OpenConfigManager() (*ConfigManager, error) {
	rootConfigPath := FileNameSettings
	if FileExists(rootConfigPath) {
		return NewConfigManager(rootConfigPath)
	}

	if appDir := AppDataDir(); appDir != "" {
		appDataConfigPath := JoinPaths(appDir, FileNameSettings)
		if FileExists(appDataConfigPath) {
			return NewConfigManager(appDataConfigPath)
		}
		if err := CreateConfigFile(appDataConfigPath); err == nil {
			return NewConfigManager(appDataConfigPath)
		} else {
			CaptureEarlyLog(SeverityWarning, "Failed to create config file in APPDATA: %v", err)
		}
	}

	if err := CreateConfigFile(rootConfigPath); err != nil {
		mgr := &ConfigManager{configPath: rootConfigPath, settings: DefaultSettings()}
		return mgr, fmt.Errorf("failed to create config file in root directory: %w", err)
	}
	return NewConfigManager(rootConfigPath)
}

// Path returns the configuration file path
func (mgr *ConfigManager) Path() string {
	return mgr.configPath
}

// Settings returns a copy of the current settings
func (mgr *ConfigManager) Settings() Settings {
	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()

	return mgr.settings
}

// Update applies fn to a copy of the settings and persists the result
func (mgr *ConfigManager) Update(fn func(*Settings)) error {
	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()

	next := mgr.settings
	fn(&next)
	next.applyDefaults()
	mgr.settings = next
	return mgr.writeLocked()
}

func (mgr *ConfigManager) load() error {
	mgr.mutex.Lock()
	defer mgr.mutex.Unlock()

	data, err := os.ReadFile(mgr.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			mgr.settings.applyDefaults()
			return nil
		}
		return fmt.Errorf("ConfigManager.load: failed to read %s: %w", mgr.configPath, err)
	}

	if len(data) == 0 {
		mgr.settings.applyDefaults()
		return nil
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("ConfigManager.load: failed to unmarshal config data from %s: %w", mgr.configPath, err)
	}
	settings.applyDefaults()
	mgr.settings = settings
	return nil
}

func (mgr *ConfigManager) writeLocked() error {
	data, err := json.MarshalIndent(mgr.settings, "", "  ")
	if err != nil {
		return fmt.Errorf("ConfigManager.save: failed to marshal config data: %w", err)
	}
	if err := os.WriteFile(mgr.configPath, data, 0644); err != nil {
		return fmt.Errorf("ConfigManager.save: failed to write config file %s: %w", mgr.configPath, err)
	}
	return nil
}

// CreateConfigFile creates a configuration file with default settings
func CreateConfigFile(cfgPath string) error {
	dir := filepath.Dir(cfgPath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return fmt.Errorf("CreateConfigFile: failed to ensure directory %s exists: %w", dir, err)
	}

	data, err := json.MarshalIndent(DefaultSettings(), "", "  ")
	if err != nil {
		return fmt.Errorf("CreateConfigFile: failed to marshal default config data: %w", err)
	}

	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		return fmt.Errorf("CreateConfigFile: failed to write default config file %s: %w", cfgPath, err)
	}
	return nil
}
