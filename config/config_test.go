package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name:     "development environment",
			config:   &Config{Server: ServerConfig{AppEnv: "development"}},
			expected: true,
		},
		{
			name:     "debug gin mode",
			config:   &Config{Server: ServerConfig{GinMode: "debug"}},
			expected: true,
		},
		{
			name:     "release mode",
			config:   &Config{Server: ServerConfig{GinMode: "release", AppEnv: "production"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.IsDevelopment())
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080"},
		Storage: StorageConfig{Backend: BackendFile, Dir: "./data"},
		Session: SessionConfig{RequestedSetTTLMinutes: 30},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		errorMsg string
	}{
		{
			name:   "valid file backend",
			mutate: func(*Config) {},
		},
		{
			name:   "valid memory backend",
			mutate: func(c *Config) { c.Storage = StorageConfig{Backend: BackendMemory} },
		},
		{
			name:     "missing port",
			mutate:   func(c *Config) { c.Server.Port = "" },
			errorMsg: "PORT is required",
		},
		{
			name:     "file backend without dir",
			mutate:   func(c *Config) { c.Storage.Dir = "" },
			errorMsg: "STORAGE_DIR is required",
		},
		{
			name:     "postgres backend without url",
			mutate:   func(c *Config) { c.Storage.Backend = BackendPostgres },
			errorMsg: "DATABASE_URL is required",
		},
		{
			name:     "redis backend without addr",
			mutate:   func(c *Config) { c.Storage.Backend = BackendRedis },
			errorMsg: "REDIS_ADDR is required",
		},
		{
			name:     "s3 backend without bucket",
			mutate:   func(c *Config) { c.Storage.Backend = BackendS3 },
			errorMsg: "S3_BUCKET is required",
		},
		{
			name:     "unknown backend",
			mutate:   func(c *Config) { c.Storage.Backend = "localstorage" },
			errorMsg: `unknown STORAGE_BACKEND "localstorage"`,
		},
		{
			name:     "non-positive requested set ttl",
			mutate:   func(c *Config) { c.Session.RequestedSetTTLMinutes = 0 },
			errorMsg: "REQUESTED_SET_TTL_MINUTES must be positive",
		},
		{
			name:     "profiling without endpoint",
			mutate:   func(c *Config) { c.Profiling.Enabled = true },
			errorMsg: "O11Y_PROFILING_ENDPOINT is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "./data", cfg.Storage.Dir)
	assert.Equal(t, "alumni-connect:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 30, cfg.Session.RequestedSetTTLMinutes)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Empty(t, cfg.Auth.AdminAPIToken)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORAGE_BACKEND", " Redis ")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ALLOWED_CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("ADMIN_API_TOKEN", "secret")
	t.Setenv("REQUESTED_SET_TTL_MINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "secret", cfg.Auth.AdminAPIToken)
	assert.Equal(t, 5, cfg.Session.RequestedSetTTLMinutes)
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_BACKEND", BackendPostgres)

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
