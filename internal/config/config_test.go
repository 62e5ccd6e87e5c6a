package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"TM2_HTTP_ADDR", "TM2_LOG_LEVEL", "TM2_LOG_FORMAT", "TM2_FONT_DIR", "TM2_SYSTEM_FONTS", "TM2_DEFAULT_TAPE"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.FontDirs)
	assert.True(t, cfg.SystemFonts)
	assert.Equal(t, "SV36KN", cfg.DefaultTape)
}

func TestEnvThenFlags(t *testing.T) {
	t.Setenv("TM2_HTTP_ADDR", ":9000")
	t.Setenv("TM2_LOG_LEVEL", "debug")
	t.Setenv("TM2_FONT_DIR", "/a, /b")
	t.Setenv("TM2_SYSTEM_FONTS", "nope")

	cfg, err := ParseServerFlags([]string{"-log-level", "warn", "-system-fonts=false"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []string{"/a", "/b"}, cfg.FontDirs)
	assert.False(t, cfg.SystemFonts)

	cfg, err = ParseServerFlags([]string{"-http-addr", "127.0.0.1:1", "-font-dir", "/c"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:1", cfg.HTTPAddr)
	assert.Equal(t, []string{"/c"}, cfg.FontDirs)
	assert.True(t, cfg.SystemFonts, "invalid env bool falls back to default")
}

func TestUnknownFlag(t *testing.T) {
	_, err := ParseServerFlags([]string{"-bogus"})
	assert.Error(t, err)
}
