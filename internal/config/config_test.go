package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/jt/internal/domain"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
api_endpoint = "https://jira.example.com"
worker = "JIRAUSER100"
reviewer = "JIRAUSER200"
daily_target_time_spent_minutes = 450
default_time_spent_minutes = 90

[[static_tasks]]
key = "ADM-1"
description = "Meetings"

  [[static_tasks.attributes]]
  key = "_Type_"
  name = "Type"
  work_attribute_id = 4
  value = "Admin"

[[static_attributes]]
key = "_Location_"
name = "Location"
work_attribute_id = 2
value = "Remote"

[[dynamic_attributes]]
key = "_Account_"
name = "Account"
work_attribute_id = 3
value = "/customfield_100"
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	cfg, err := Load(writeFile(t, sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, "https://jira.example.com", cfg.APIEndpoint)
	assert.Equal(t, "JIRAUSER100", cfg.Worker)
	assert.Equal(t, "JIRAUSER200", cfg.Reviewer)
	assert.Equal(t, 450*time.Minute, cfg.DailyTarget())
	assert.Equal(t, 90*time.Minute, cfg.DefaultDuration())

	tasks := cfg.Tasks()
	require.Len(t, tasks, 1)
	static, ok := tasks[0].(*domain.StaticTask)
	require.True(t, ok)
	assert.Equal(t, "ADM-1", static.Key())
	assert.Equal(t, "Meetings", static.Description)
	assert.Equal(t, []domain.WorkAttribute{{Key: "_Type_", Name: "Type", WorkAttributeID: 4, Value: "Admin"}}, static.Attributes)

	assert.Equal(t, []domain.WorkAttribute{{Key: "_Location_", Name: "Location", WorkAttributeID: 2, Value: "Remote"}}, cfg.StaticAttributeTemplates())
	assert.Equal(t, []domain.WorkAttribute{{Key: "_Account_", Name: "Account", WorkAttributeID: 3, Value: "/customfield_100"}}, cfg.DynamicAttributeTemplates())

	u, err := cfg.Endpoint()
	require.NoError(t, err)
	assert.Equal(t, "https://jira.example.com/", u.String())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "api_endpoint = \"https://jira.example.com/jira\"\nworker = \"w\"\n"))
	require.NoError(t, err)

	assert.Equal(t, 8*time.Hour, cfg.DailyTarget())
	assert.Zero(t, cfg.DefaultDuration())
	assert.Empty(t, cfg.Reviewer)
	assert.Empty(t, cfg.Tasks())

	u, err := cfg.Endpoint()
	require.NoError(t, err)
	assert.Equal(t, "/jira/", u.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	assert.True(t, errors.Is(err, ErrConfigNotFound))
	assert.Contains(t, errors.FlattenHints(err), "jt init")
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(writeFile(t, "api_endpoint = [unterminated"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestValidate(t *testing.T) {
	valid := func() *Config { return &Config{APIEndpoint: "https://jira.example.com", Worker: "w"} }

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing endpoint", func(c *Config) { c.APIEndpoint = "" }},
		{"relative endpoint", func(c *Config) { c.APIEndpoint = "jira.example.com" }},
		{"unsupported scheme", func(c *Config) { c.APIEndpoint = "ftp://jira.example.com" }},
		{"missing worker", func(c *Config) { c.Worker = "" }},
		{"negative target", func(c *Config) { c.DailyTargetTimeSpentMinutes = -1 }},
		{"negative default", func(c *Config) { c.DefaultTimeSpentMinutes = -5 }},
		{"static task without key", func(c *Config) { c.StaticTasks = []StaticTask{{Description: "x"}} }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := &Config{
		APIEndpoint:                 "https://jira.example.com",
		Worker:                      "JIRAUSER100",
		DailyTargetTimeSpentMinutes: 480,
		StaticTasks:                 []StaticTask{{Key: "ADM-1", Description: "Meetings"}},
		DynamicAttributes:           []WorkAttribute{{Key: "_Account_", Name: "Account", WorkAttributeID: 3, Value: "/customfield_100"}},
	}

	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "reviewer", "empty reviewer is omitted")
	assert.NotContains(t, string(raw), "default_time_spent_minutes")
}

func TestSave_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	err := Save(path, &Config{APIEndpoint: "https://jira.example.com"})

	assert.True(t, errors.Is(err, ErrInvalidConfig))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv("JT_CONFIG", "/tmp/custom.toml")

	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.toml", p)
}

func TestTokenFromEnv(t *testing.T) {
	t.Setenv(TokenEnv, "  secret  ")
	token, err := TokenFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "secret", token)

	t.Setenv(TokenEnv, "")
	_, err = TokenFromEnv()
	assert.True(t, errors.Is(err, ErrMissingToken))
	assert.Contains(t, errors.FlattenHints(err), TokenEnv)
}

func TestJournalPath_EnvOverride(t *testing.T) {
	t.Setenv(JournalEnv, "/tmp/journal.db")

	p, err := JournalPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/journal.db", p)
}
