package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFileTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
days = 14
currency = "EUR"
output_path = "data/report.json"
max_videos = 10
`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.Days)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, "data/report.json", cfg.OutputPath)
	assert.Equal(t, int64(10), cfg.MaxVideos)
}

func TestLoadConfigFileYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
days: 7
s3_bucket: my-dashboard-bucket
s3_key: data/youtube_monetization.json
listen_addr: ":9090"
poll_interval: 120
`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Days)
	assert.Equal(t, "my-dashboard-bucket", cfg.S3Bucket)
	assert.Equal(t, "data/youtube_monetization.json", cfg.S3Key)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 120, cfg.PollInterval)
}

func TestLoadConfigFileJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "days": 30,
  "report_name": "monetization",
  "report_type": ["csv", "pdf"]
}`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Days)
	assert.Equal(t, "monetization", cfg.ReportName)
	assert.Equal(t, []string{"csv", "pdf"}, cfg.ReportType)
}

func TestLoadConfigFileUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "config.ini", "days = 30")

	_, err := NewConfigRepository().LoadConfigFile(path)
	assert.ErrorContains(t, err, "unsupported config file format")
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := NewConfigRepository().LoadConfigFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
