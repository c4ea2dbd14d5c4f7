package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Storage: StorageConfig{
			BasePath: "/tmp/kitboard-test",
		},
		Server: ServerConfig{Port: "8080"},
		Upstream: UpstreamConfig{
			BaseURL: "https://bookings.example.edu",
			Timeout: 20 * time.Second,
		},
		Auth:    AuthConfig{TechSecret: "hunter2"},
		Booking: BookingConfig{WindowMinutes: 5},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad environment", func(c *Config) { c.App.Environment = "qa" }},
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"empty data path", func(c *Config) { c.Storage.BasePath = "" }},
		{"missing upstream url", func(c *Config) { c.Upstream.BaseURL = "" }},
		{"missing tech secret", func(c *Config) { c.Auth.TechSecret = "" }},
		{"zero window", func(c *Config) { c.Booking.WindowMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWindow(t *testing.T) {
	cfg := validConfig()
	cfg.Booking.WindowMinutes = 10
	assert.Equal(t, 10*time.Minute, cfg.Window())
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("KITBOARD_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "KITBOARD_TEST_KEY", "fallback"))
	assert.Equal(t, "from-env", getConfigValue("", "KITBOARD_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getConfigValue("", "KITBOARD_TEST_MISSING", "fallback"))
}
