package update

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sandeepkv93/cycletimer/internal/model"
	"gopkg.in/yaml.v3"
)

const (
	appName        = "cycletimer"
	configFileName = "config.yaml"
)

type RuntimeConfig struct {
	DesktopNotifications bool
	TaskSuggestions      []string
	PollerBuffer         int
	HistoryDBPath        string
	LogFile              string
	LogLevel             string
	WindowTitle          bool
	AppTitle             string
}

func DefaultRuntimeConfig() RuntimeConfig {
	suggestions := make([]string, len(model.TaskSuggestions))
	copy(suggestions, model.TaskSuggestions)
	return RuntimeConfig{
		DesktopNotifications: false,
		TaskSuggestions:      suggestions,
		PollerBuffer:         8,
		HistoryDBPath:        "",
		LogFile:              "",
		LogLevel:             "info",
		WindowTitle:          true,
		AppTitle:             appName,
	}
}

type yamlConfig struct {
	DesktopNotifications *bool    `yaml:"desktop_notifications"`
	TaskSuggestions      []string `yaml:"task_suggestions"`
	PollerBuffer         int      `yaml:"poller_buffer"`
	HistoryDB            string   `yaml:"history_db"`
	LogFile              string   `yaml:"log_file"`
	LogLevel             string   `yaml:"log_level"`
	WindowTitle          *bool    `yaml:"window_title"`
	AppTitle             string   `yaml:"app_title"`
}

// DefaultConfigPath resolves the config file under the user config dir.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

// RuntimeConfigFromFile overlays the YAML file at path on base.
// A missing file leaves base untouched.
func RuntimeConfigFromFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	cfg := base
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	var fileData yamlConfig
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}
	applyYamlConfig(&cfg, fileData)
	return cfg, nil
}

func applyYamlConfig(cfg *RuntimeConfig, fileData yamlConfig) {
	if fileData.DesktopNotifications != nil {
		cfg.DesktopNotifications = *fileData.DesktopNotifications
	}
	if suggestions := cleanSuggestions(fileData.TaskSuggestions); len(suggestions) > 0 {
		cfg.TaskSuggestions = suggestions
	}
	if fileData.PollerBuffer > 0 && fileData.PollerBuffer <= 1024 {
		cfg.PollerBuffer = fileData.PollerBuffer
	}
	if v := strings.TrimSpace(fileData.HistoryDB); v != "" {
		cfg.HistoryDBPath = v
	}
	if v := strings.TrimSpace(fileData.LogFile); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(fileData.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if fileData.WindowTitle != nil {
		cfg.WindowTitle = *fileData.WindowTitle
	}
	if v := strings.TrimSpace(fileData.AppTitle); v != "" {
		cfg.AppTitle = v
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvBool("CYCLETIMER_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if raw := strings.TrimSpace(os.Getenv("CYCLETIMER_TASK_SUGGESTIONS")); raw != "" {
		if suggestions := cleanSuggestions(strings.Split(raw, ",")); len(suggestions) > 0 {
			cfg.TaskSuggestions = suggestions
		}
	}
	if v, ok := getEnvInt("CYCLETIMER_POLLER_BUFFER"); ok && v > 0 {
		cfg.PollerBuffer = v
	}
	if v := strings.TrimSpace(os.Getenv("CYCLETIMER_HISTORY_DB")); v != "" {
		cfg.HistoryDBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("CYCLETIMER_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("CYCLETIMER_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v, ok := getEnvBool("CYCLETIMER_WINDOW_TITLE"); ok {
		cfg.WindowTitle = v
	}
	if v := strings.TrimSpace(os.Getenv("CYCLETIMER_APP_TITLE")); v != "" {
		cfg.AppTitle = v
	}
	return cfg
}

func cleanSuggestions(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
