package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("PAYMENT_SIMULATION_DELAY", "")

	cfg := LoadConfig()

	assert.Equal(t, "redis", cfg.StorageDriver)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 2*time.Second, cfg.PaymentSimulationDelay)
	assert.Equal(t, 20, cfg.SimulatedBookedSeats)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("PAYMENT_SIMULATION_DELAY", "0s")
	t.Setenv("SIMULATED_BOOKED_SEATS", "0")
	t.Setenv("REQUESTS_PER_SECOND", "2.5")
	t.Setenv("ENABLE_METRICS", "false")

	cfg := LoadConfig()

	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, time.Duration(0), cfg.PaymentSimulationDelay)
	assert.Equal(t, 0, cfg.SimulatedBookedSeats)
	assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	assert.False(t, cfg.EnableMetrics)
}

func TestGetEnvAsDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")

	assert.Equal(t, 5*time.Minute, getEnvAsDuration("SESSION_TTL", "5m"))
}

func TestValidate_SessionSecret(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		secret      string
		wantErr     bool
	}{
		{"development default", "development", "", false},
		{"production default", "production", "", true},
		{"staging default", "staging", "", true},
		{"production explicit", "production", "s3cr3t-value", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENVIRONMENT", tt.environment)
			t.Setenv("SESSION_SECRET", tt.secret)

			err := LoadConfig().Validate()

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSessionSecret)
				return
			}
			assert.NoError(t, err)
		})
	}
}
