package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"MiddleMeetup-App/internal/domain/model"
)

// 永続化先の種類
const (
	PlanStoreSupabase = "supabase"
	PlanStorePostgres = "postgres"
)

// Config はアプリケーション全体の設定（環境変数から読み込む）
type Config struct {
	Port string `mapstructure:"PORT"`

	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	MapboxAccessToken  string  `mapstructure:"MAPBOX_ACCESS_TOKEN"`
	NominatimBaseURL   string  `mapstructure:"NOMINATIM_BASE_URL"`
	NominatimUserAgent string  `mapstructure:"NOMINATIM_USER_AGENT"`
	NominatimRPS       float64 `mapstructure:"NOMINATIM_RPS"`

	SupabaseURL        string `mapstructure:"SUPABASE_URL"`
	SupabaseAnonKey    string `mapstructure:"SUPABASE_ANON_KEY"`
	SupabaseDBPassword string `mapstructure:"SUPABASE_DB_PASSWORD"`
	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	PlanStore          string `mapstructure:"PLAN_STORE"`

	FirestoreProjectID       string `mapstructure:"FIRESTORE_PROJECT_ID"`
	FirestoreCredentialsFile string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	DraftTTLHours            int    `mapstructure:"DRAFT_TTL_HOURS"`

	ExternalCallTimeout  time.Duration `mapstructure:"EXTERNAL_CALL_TIMEOUT"`
	GeocodeCacheTTL      time.Duration `mapstructure:"GEOCODE_CACHE_TTL"`
	AutocompleteDebounce time.Duration `mapstructure:"AUTOCOMPLETE_DEBOUNCE"`

	TravelSpeedKmh           float64 `mapstructure:"TRAVEL_SPEED_KMH"`
	DepartureBufferMinutes   int     `mapstructure:"DEPARTURE_BUFFER_MINUTES"`
	MeetingBufferMinutes     int     `mapstructure:"MEETING_BUFFER_MINUTES"`
	TransitionBufferMinutes  int     `mapstructure:"TRANSITION_BUFFER_MINUTES"`
	WrapUpMinutes            int     `mapstructure:"WRAP_UP_MINUTES"`
	DefaultExperienceMinutes int     `mapstructure:"DEFAULT_EXPERIENCE_MINUTES"`
}

// Load は.envファイル（存在すれば）と環境変数から設定を読み込む
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ .envファイルが見つかりません。システム環境変数を使用します")
	}
	return fromEnv(viper.New())
}

func fromEnv(v *viper.Viper) Config {
	v.AutomaticEnv()
	// AutomaticEnvはUnmarshal時に既知のキーしか参照しないため、全キーにデフォルトを設定する
	policy := model.DefaultTravelPolicy()
	v.SetDefault("PORT", "8080")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("MAPBOX_ACCESS_TOKEN", "")
	v.SetDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("NOMINATIM_USER_AGENT", "MiddleMeetup/1.0 (contact@middlemeetup.com)")
	v.SetDefault("NOMINATIM_RPS", 1.0)
	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_ANON_KEY", "")
	v.SetDefault("SUPABASE_DB_PASSWORD", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PLAN_STORE", PlanStoreSupabase)
	v.SetDefault("FIRESTORE_PROJECT_ID", "")
	v.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "")
	v.SetDefault("DRAFT_TTL_HOURS", 24)
	v.SetDefault("EXTERNAL_CALL_TIMEOUT", 10*time.Second)
	v.SetDefault("GEOCODE_CACHE_TTL", 24*time.Hour)
	v.SetDefault("AUTOCOMPLETE_DEBOUNCE", 300*time.Millisecond)
	v.SetDefault("TRAVEL_SPEED_KMH", policy.AverageSpeedKmh)
	v.SetDefault("DEPARTURE_BUFFER_MINUTES", policy.DepartureBufferMinutes)
	v.SetDefault("MEETING_BUFFER_MINUTES", policy.MeetingBufferMinutes)
	v.SetDefault("TRANSITION_BUFFER_MINUTES", policy.TransitionBufferMinutes)
	v.SetDefault("WRAP_UP_MINUTES", policy.WrapUpMinutes)
	v.SetDefault("DEFAULT_EXPERIENCE_MINUTES", policy.DefaultExperienceMinutes)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("❌ 設定の読み込みに失敗しました。デフォルト値を使用します: %v", err)
	}
	return cfg
}

// TravelPolicy は行程生成に使う方針値を返す
func (c Config) TravelPolicy() model.TravelPolicy {
	return model.TravelPolicy{
		AverageSpeedKmh:          c.TravelSpeedKmh,
		DepartureBufferMinutes:   c.DepartureBufferMinutes,
		MeetingBufferMinutes:     c.MeetingBufferMinutes,
		TransitionBufferMinutes:  c.TransitionBufferMinutes,
		WrapUpMinutes:            c.WrapUpMinutes,
		DefaultExperienceMinutes: c.DefaultExperienceMinutes,
	}.WithDefaults()
}

// FirestoreEnabled は行程ドラフトをFirestoreに保存するかどうか
func (c Config) FirestoreEnabled() bool {
	return c.FirestoreProjectID != ""
}

// SupabaseEnabled はSupabaseの接続情報が揃っているかどうか
func (c Config) SupabaseEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}
