/*
Package config manages the TOML config of tagserve.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/bastiangx/tagserve/internal/utils"
	"github.com/bastiangx/tagserve/pkg/control"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Control ControlConfig `toml:"control"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
}

// ControlConfig holds the tag input behaviour.
type ControlConfig struct {
	MaxTags         int      `toml:"max_tags"`
	AllowDuplicates bool     `toml:"allow_duplicates"`
	Placeholder     string   `toml:"placeholder"`
	InfoMessage     string   `toml:"info_message"`
	ErrorDisplayMs  int      `toml:"error_display_ms"`
	InitialValues   []string `toml:"initial_values"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit int `toml:"max_limit"`
}

// CliConfig holds interactive prompt options.
type CliConfig struct {
	PageSize int `toml:"page_size"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", utils.AppName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/tagserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Control: ControlConfig{
			MaxTags:         5,
			AllowDuplicates: false,
			Placeholder:     control.DefaultPlaceholder,
			InfoMessage:     "You can add {{.MaxTags}} tags",
			ErrorDisplayMs:  int(control.DefaultErrorDisplay / time.Millisecond),
			InitialValues:   []string{},
		},
		Server: ServerConfig{
			MaxLimit: 64,
		},
		CLI: CliConfig{
			PageSize: 8,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. A file that does not decode cleanly is
// parsed loosely and every well-typed key is kept.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "control"); ok {
		extractControlConfig(section, &config.Control)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		if val, ok := utils.ExtractInt64(section, "max_limit"); ok {
			config.Server.MaxLimit = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		if val, ok := utils.ExtractInt64(section, "page_size"); ok {
			config.CLI.PageSize = val
		}
	}
	return config, nil
}

// extractControlConfig extracts control configuration from a map
func extractControlConfig(data map[string]any, ctrl *ControlConfig) {
	if val, ok := utils.ExtractInt64(data, "max_tags"); ok {
		ctrl.MaxTags = val
	}
	if val, ok := utils.ExtractBool(data, "allow_duplicates"); ok {
		ctrl.AllowDuplicates = val
	}
	if val, ok := utils.ExtractString(data, "placeholder"); ok {
		ctrl.Placeholder = val
	}
	if val, ok := utils.ExtractString(data, "info_message"); ok {
		ctrl.InfoMessage = val
	}
	if val, ok := utils.ExtractInt64(data, "error_display_ms"); ok {
		ctrl.ErrorDisplayMs = val
	}
	if val, ok := utils.ExtractStrings(data, "initial_values"); ok {
		ctrl.InitialValues = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Settings converts the [control] section into controller settings.
// Range checks are left to control.Settings.Validate; a malformed info
// template is reported as ErrInvalidConfiguration here.
func (c *Config) Settings() (control.Settings, error) {
	ctrl := c.Control
	settings := control.Settings{
		MaxTags:         ctrl.MaxTags,
		AllowDuplicates: ctrl.AllowDuplicates,
		Placeholder:     ctrl.Placeholder,
		ErrorDisplay:    time.Duration(ctrl.ErrorDisplayMs) * time.Millisecond,
		InitialValues:   append([]string(nil), ctrl.InitialValues...),
	}
	if strings.TrimSpace(ctrl.InfoMessage) != "" {
		info, err := infoTemplate(ctrl.InfoMessage)
		if err != nil {
			return control.Settings{}, fmt.Errorf("%w: info_message: %v", control.ErrInvalidConfiguration, err)
		}
		settings.InfoMessage = info
	}
	if err := settings.Validate(); err != nil {
		return control.Settings{}, err
	}
	return settings, nil
}

// infoTemplate compiles a text/template rendering the capacity message.
// The template sees {{.MaxTags}}.
func infoTemplate(text string) (func(int) string, error) {
	tmpl, err := template.New("info").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, err
	}
	return func(maxTags int) string {
		var sb strings.Builder
		if err := tmpl.Execute(&sb, struct{ MaxTags int }{maxTags}); err != nil {
			log.Warnf("Info message template failed: %v", err)
			return ""
		}
		return sb.String()
	}, nil
}
