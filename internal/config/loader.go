package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/stackctl"
	projectConfigDir = ".stackctl"
	configFileName   = "config.yaml"

	// NamespaceEnvVar overrides the namespace from every file layer.
	NamespaceEnvVar = "STACKCTL_NAMESPACE"
)

// LoadConfig loads the stackctl configuration by layering default, user,
// and project settings, then applying the namespace environment override.
func LoadConfig() (StackConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. Determine user-specific configuration path
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// Log this error but don't fail; user config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userConfig, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return StackConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			config = mergeConfigs(config, userConfig)
		}
	}

	// 3. Determine project-specific configuration path
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		// Log this error but don't fail; project config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			projectConfig, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return StackConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			config = mergeConfigs(config, projectConfig)
		}
	}

	// 4. Environment override wins over every file layer
	if ns := os.Getenv(NamespaceEnvVar); ns != "" {
		config.Namespace = ns
	}

	if err := config.Validate(); err != nil {
		return StackConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd() // Use mockable variable
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a StackConfig from a YAML file.
func loadConfigFromFile(filePath string) (StackConfig, error) {
	var config StackConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return StackConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return StackConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
// Services are merged by name: an overlay service replaces the base service
// with the same name and new names are appended, preserving base order first.
func mergeConfigs(base, overlay StackConfig) StackConfig {
	merged := base

	if overlay.Namespace != "" {
		merged.Namespace = overlay.Namespace
	}

	if overlay.Defaults.ProbeTimeout != 0 {
		merged.Defaults.ProbeTimeout = overlay.Defaults.ProbeTimeout
	}
	if overlay.Defaults.ProbeInterval != 0 {
		merged.Defaults.ProbeInterval = overlay.Defaults.ProbeInterval
	}
	if overlay.Defaults.StartTimeout != 0 {
		merged.Defaults.StartTimeout = overlay.Defaults.StartTimeout
	}

	if len(overlay.Services) > 0 {
		replaced := make(map[string]ServiceDefinition, len(overlay.Services))
		for _, svc := range overlay.Services {
			replaced[svc.Name] = svc
		}

		services := make([]ServiceDefinition, 0, len(merged.Services)+len(overlay.Services))
		seen := make(map[string]bool, len(merged.Services))
		for _, svc := range merged.Services {
			if override, ok := replaced[svc.Name]; ok {
				services = append(services, override)
			} else {
				services = append(services, svc)
			}
			seen[svc.Name] = true
		}
		for _, svc := range overlay.Services {
			if !seen[svc.Name] {
				services = append(services, svc)
			}
		}
		merged.Services = services
	}

	return merged
}

// GetUserConfigDir returns the user configuration directory path.
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
