package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, filename string, content string) string {
	t.Helper()
	tempFilePath := filepath.Join(dir, filename)
	err := os.WriteFile(tempFilePath, []byte(content), 0644)
	require.NoError(t, err)
	return tempFilePath
}

// mockConfigPaths points the loader at paths inside dir for the duration of
// the test. Missing files are simply skipped by the loader.
func mockConfigPaths(t *testing.T, userPath, projectPath string) {
	t.Helper()
	originalGetUserConfigPath := getUserConfigPath
	originalGetProjectConfigPath := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalGetUserConfigPath
		getProjectConfigPath = originalGetProjectConfigPath
	})
	getUserConfigPath = func() (string, error) { return userPath, nil }
	getProjectConfigPath = func() (string, error) { return projectPath, nil }
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	tempDir := t.TempDir()
	mockConfigPaths(t,
		filepath.Join(tempDir, "non-existent-user-config.yaml"),
		filepath.Join(tempDir, "non-existent-project-config.yaml"),
	)
	t.Setenv(NamespaceEnvVar, "")

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, GetDefaultConfig(), loadedConfig)
	assert.Equal(t, DefaultNamespace, loadedConfig.Namespace)
	assert.Len(t, loadedConfig.Services, 4)
}

func TestLoadConfig_ProjectOverridesService(t *testing.T) {
	tempDir := t.TempDir()
	projectPath := createTempConfigFile(t, tempDir, "project.yaml", `
namespace: staging
services:
  - name: "db"
    priorityTier: 1
    probeTimeout: 90s
    healthCheck:
      kind: database
      target: "db.staging.svc.cluster.local:5432"
`)
	mockConfigPaths(t, filepath.Join(tempDir, "missing-user.yaml"), projectPath)
	t.Setenv(NamespaceEnvVar, "")

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "staging", loadedConfig.Namespace)
	// Overridden db keeps its position, the rest of the default stack survives.
	assert.Len(t, loadedConfig.Services, 4)
	assert.Equal(t, "db", loadedConfig.Services[0].Name)
	assert.Equal(t, "db.staging.svc.cluster.local:5432", loadedConfig.Services[0].HealthCheck.Target)
	assert.Equal(t, 90*time.Second, loadedConfig.EffectiveProbeTimeout(loadedConfig.Services[0]))
	assert.Equal(t, DefaultProbeTimeout, loadedConfig.EffectiveProbeTimeout(loadedConfig.Services[1]))
}

func TestLoadConfig_UserThenProjectLayering(t *testing.T) {
	tempDir := t.TempDir()
	userPath := createTempConfigFile(t, tempDir, "user.yaml", `
defaults:
  probeInterval: 5s
`)
	projectPath := createTempConfigFile(t, tempDir, "project.yaml", `
defaults:
  probeTimeout: 30s
services:
  - name: "worker"
    priorityTier: 4
    dependsOn: ["app"]
    healthCheck:
      kind: http
      target: "http://worker.dev.svc.cluster.local:8082/healthz"
`)
	mockConfigPaths(t, userPath, projectPath)
	t.Setenv(NamespaceEnvVar, "")

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, loadedConfig.Defaults.ProbeInterval.Std())
	assert.Equal(t, 30*time.Second, loadedConfig.Defaults.ProbeTimeout.Std())

	// The new service is appended after the default stack.
	require.Len(t, loadedConfig.Services, 5)
	assert.Equal(t, "worker", loadedConfig.Services[4].Name)
	assert.Equal(t, []string{"app"}, loadedConfig.Services[4].DependsOn)
}

func TestLoadConfig_NamespaceEnvOverride(t *testing.T) {
	tempDir := t.TempDir()
	projectPath := createTempConfigFile(t, tempDir, "project.yaml", `
namespace: staging
`)
	mockConfigPaths(t, filepath.Join(tempDir, "missing-user.yaml"), projectPath)
	t.Setenv(NamespaceEnvVar, "prod-eu")

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "prod-eu", loadedConfig.Namespace)
}

func TestLoadConfig_InvalidHealthCheckKind(t *testing.T) {
	tempDir := t.TempDir()
	projectPath := createTempConfigFile(t, tempDir, "project.yaml", `
services:
  - name: "db"
    healthCheck:
      kind: carrier-pigeon
      target: "db:5432"
`)
	mockConfigPaths(t, filepath.Join(tempDir, "missing-user.yaml"), projectPath)
	t.Setenv(NamespaceEnvVar, "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown health check kind")
}

func TestLoadConfig_NegativeDurationRejected(t *testing.T) {
	tempDir := t.TempDir()
	projectPath := createTempConfigFile(t, tempDir, "project.yaml", `
services:
  - name: "db"
    probeInterval: -5s
    healthCheck:
      kind: database
      target: "db:5432"
`)
	mockConfigPaths(t, filepath.Join(tempDir, "missing-user.yaml"), projectPath)
	t.Setenv(NamespaceEnvVar, "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `service "db": probeInterval must not be negative`)
}

func TestValidate_NegativeDefaultDuration(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Defaults.ProbeTimeout = Duration(-time.Second)

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probeTimeout must not be negative")
}

func TestDuration_YAMLRoundTrip(t *testing.T) {
	type holder struct {
		D Duration `yaml:"d"`
	}

	var h holder
	require.NoError(t, yaml.Unmarshal([]byte("d: 90s\n"), &h))
	assert.Equal(t, 90*time.Second, h.D.Std())

	out, err := yaml.Marshal(holder{D: Duration(2 * time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, "d: 2m0s\n", string(out))

	err = yaml.Unmarshal([]byte("d: not-a-duration\n"), &h)
	require.Error(t, err)
}
