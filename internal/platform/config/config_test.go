package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://api.example.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.example.test", cfg.BackendBaseURL)
	assert.Equal(t, 15*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 5, cfg.MaxUploadFiles)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadFileBytes)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.EnableAuditJournal)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SEARCH_DEBOUNCE", "1s")
	t.Setenv("WIZARD_SESSION_TTL", "not-a-duration")
	t.Setenv("MAX_UPLOAD_FILES", "3")
	t.Setenv("ENABLE_AUDIT_JOURNAL", "true")
	t.Setenv("PGSQL_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, time.Second, cfg.SearchDebounce)
	assert.Equal(t, time.Hour, cfg.WizardSessionTTL, "invalid durations fall back")
	assert.Equal(t, 3, cfg.MaxUploadFiles)
	assert.False(t, cfg.EnableAuditJournal, "journal needs a database URL")
}
