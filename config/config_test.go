package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CALHEAT_SERVER_PORT", "CALHEAT_ENV", "CALHEAT_LOG_LEVEL", "CALHEAT_CELL_SIZE",
		"CALHEAT_SEED", "CALHEAT_PALETTE_FILE", "CALHEAT_CORS_ORIGINS", "CALHEAT_RATE_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 15, cfg.CellSize)
	assert.Zero(t, cfg.Seed)
	assert.Empty(t, cfg.PaletteFile)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 600, cfg.RateLimit)
}

func TestNewConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CALHEAT_SERVER_PORT", "9090")
	t.Setenv("CALHEAT_ENV", "production")
	t.Setenv("CALHEAT_LOG_LEVEL", "debug")
	t.Setenv("CALHEAT_CELL_SIZE", "12")
	t.Setenv("CALHEAT_SEED", "42")
	t.Setenv("CALHEAT_PALETTE_FILE", "/tmp/palettes.toml")
	t.Setenv("CALHEAT_CORS_ORIGINS", "http://a.example, http://b.example,")
	t.Setenv("CALHEAT_RATE_LIMIT", "0")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 12, cfg.CellSize)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "/tmp/palettes.toml", cfg.PaletteFile)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.Zero(t, cfg.RateLimit)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		key, value  string
		description string
	}{
		{"cell size not a number", "CALHEAT_CELL_SIZE", "big", "数値でないセルサイズ"},
		{"cell size zero", "CALHEAT_CELL_SIZE", "0", "0以下のセルサイズ"},
		{"negative seed", "CALHEAT_SEED", "-1", "負のシード"},
		{"negative rate limit", "CALHEAT_RATE_LIMIT", "-5", "負のレート制限"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := NewConfig()
			assert.Error(t, err, tt.description)
		})
	}
}
