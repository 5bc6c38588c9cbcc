package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"MiddleMeetup-App/internal/domain/model"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := fromEnv(viper.New())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, PlanStoreSupabase, cfg.PlanStore)
	assert.Equal(t, 10*time.Second, cfg.ExternalCallTimeout)
	assert.Equal(t, 300*time.Millisecond, cfg.AutocompleteDebounce)
	assert.Equal(t, 24, cfg.DraftTTLHours)
	assert.Equal(t, 1.0, cfg.NominatimRPS)
	assert.Equal(t, model.DefaultTravelPolicy(), cfg.TravelPolicy())
	assert.False(t, cfg.FirestoreEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PLAN_STORE", PlanStorePostgres)
	t.Setenv("EXTERNAL_CALL_TIMEOUT", "5s")
	t.Setenv("AUTOCOMPLETE_DEBOUNCE", "150ms")
	t.Setenv("TRAVEL_SPEED_KMH", "30")
	t.Setenv("WRAP_UP_MINUTES", "20")
	t.Setenv("FIRESTORE_PROJECT_ID", "meetup-dev")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")

	cfg := fromEnv(viper.New())

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, PlanStorePostgres, cfg.PlanStore)
	assert.Equal(t, 5*time.Second, cfg.ExternalCallTimeout)
	assert.Equal(t, 150*time.Millisecond, cfg.AutocompleteDebounce)
	assert.True(t, cfg.FirestoreEnabled())
	assert.True(t, cfg.SupabaseEnabled())

	policy := cfg.TravelPolicy()
	assert.Equal(t, 30.0, policy.AverageSpeedKmh)
	assert.Equal(t, 20, policy.WrapUpMinutes)
	assert.Equal(t, 30, policy.DepartureBufferMinutes)
}
