package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsOnly(t *testing.T) {
	req := require.New(t)

	cfg, err := Load("")
	req.NoError(err)

	req.Equal("0.0.0.0", cfg.HTTP.Host)
	req.Equal(uint16(8080), cfg.HTTP.Port)
	req.Equal("./data/messages", cfg.Store.Path)
	req.Equal("https://api.openai.com/v1", cfg.Assistant.BaseURL)
	req.Equal(30*time.Second, cfg.Assistant.Timeout)
	req.Empty(cfg.Assistant.DefaultKey)
}

func TestLoad_FromYAML(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
http:
  port: 9090
store:
  path: "/var/lib/hearth"
assistant:
  model: "gpt-4o"
  timeout: 5s
`)
	req.NoError(os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	req.NoError(err)

	req.Equal(uint16(9090), cfg.HTTP.Port)
	req.Equal("/var/lib/hearth", cfg.Store.Path)
	req.Equal("gpt-4o", cfg.Assistant.Model)
	req.Equal(5*time.Second, cfg.Assistant.Timeout)
	// untouched keys keep defaults
	req.Equal("0.0.0.0", cfg.HTTP.Host)
}

func TestLoad_EnvOverrides(t *testing.T) {
	req := require.New(t)

	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("STORE_PATH", "/tmp/hearth-test")
	t.Setenv("HEARTH_ASSISTANT_KEY", "sk-default")

	cfg, err := Load("")
	req.NoError(err)

	req.Equal(uint16(7070), cfg.HTTP.Port)
	req.Equal("/tmp/hearth-test", cfg.Store.Path)
	req.Equal("sk-default", cfg.Assistant.DefaultKey)
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}
