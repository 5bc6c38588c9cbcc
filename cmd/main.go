package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"MiddleMeetup-App/internal/config"
	"MiddleMeetup-App/internal/domain/repository"
	"MiddleMeetup-App/internal/domain/service"
	"MiddleMeetup-App/internal/handler"
	"MiddleMeetup-App/internal/infrastructure/ai"
	"MiddleMeetup-App/internal/infrastructure/database"
	"MiddleMeetup-App/internal/infrastructure/firestore"
	"MiddleMeetup-App/internal/infrastructure/geocoding"
	repoImpl "MiddleMeetup-App/internal/repository"
	"MiddleMeetup-App/internal/usecase"
)

// geminiCallTimeout 会場推薦の生成は住所解決より時間がかかる
const geminiCallTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	// 住所解決: Mapbox -> Nominatim -> 固定テーブル
	var primary repository.PrimaryGeocoder
	if cfg.MapboxAccessToken != "" {
		primary = geocoding.NewMapboxClient(cfg.MapboxAccessToken, cfg.ExternalCallTimeout)
	} else {
		log.Printf("⚠️ MAPBOX_ACCESS_TOKENが未設定のため、Nominatimと固定テーブルのみで住所を解決します")
	}
	secondary := geocoding.NewNominatimClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.NominatimRPS, cfg.ExternalCallTimeout)
	addressService := service.NewAddressResolutionService(primary, secondary, geocoding.NewStaticPlaceTable(), service.AddressResolutionOptions{
		CallTimeout: cfg.ExternalCallTimeout,
		CacheTTL:    cfg.GeocodeCacheTTL,
	})
	autocomplete := service.NewAutocompleteRegistry(addressService, cfg.AutocompleteDebounce, 10*time.Minute)

	// 会場推薦: Gemini（失敗時は固定会場）
	if cfg.GeminiAPIKey == "" {
		log.Printf("⚠️ GEMINI_API_KEYが未設定のため、会場推薦は固定会場で代替されます")
	}
	geminiClient := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, geminiCallTimeout)
	venueService := service.NewVenueRecommendationService(ai.NewGeminiVenueRepository(geminiClient), geminiCallTimeout)

	synthesizer := service.NewItinerarySynthesizer(cfg.TravelPolicy())

	// 行程ドラフト: Firestore（任意）
	var draftRepo repository.ItineraryDraftRepository
	if cfg.FirestoreEnabled() {
		firestoreClient, err := firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			log.Printf("⚠️ Firestoreを利用できないため行程ドラフトは保存しません: %v", err)
		} else {
			defer firestoreClient.Close()
			draftRepo = repoImpl.NewFirestoreItineraryDraftRepository(firestoreClient.GetClient())
		}
	}

	planningUseCase := usecase.NewPlanningUseCase(addressService, autocomplete, venueService, synthesizer, draftRepo, cfg.DraftTTLHours)
	planningHandler := handler.NewPlanningHandler(planningUseCase)

	// 計画の保存と認証: Supabase（PLAN_STORE=postgresの場合は直接接続）
	var (
		planHandler      *handler.MeetupPlanHandler
		identityProvider repository.IdentityProvider
	)
	if cfg.SupabaseEnabled() {
		supabaseClient, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			log.Fatalf("❌ Supabaseクライアント初期化失敗: %v", err)
		}
		identityProvider = repoImpl.NewSupabaseIdentityProvider(supabaseClient)

		planRepo, closeStore, err := newPlanRepository(ctx, cfg, supabaseClient)
		if err != nil {
			log.Fatalf("❌ 計画ストアの初期化失敗: %v", err)
		}
		defer closeStore()

		planHandler = handler.NewMeetupPlanHandler(usecase.NewMeetupPlanUseCase(synthesizer, planRepo))
		log.Printf("✅ 計画ストア: %s", cfg.PlanStore)
	} else {
		log.Printf("⚠️ Supabaseが未設定のため /api/plans は無効です")
	}

	router := handler.NewRouter(planningHandler, planHandler, identityProvider)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 MiddleMeetup-App server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ サーバー起動失敗: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("🛑 シャットダウンします")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ シャットダウン失敗: %v", err)
	}
}

// newPlanRepository は設定に応じた計画リポジトリと後始末関数を返す
func newPlanRepository(ctx context.Context, cfg config.Config, supabaseClient *database.SupabaseClient) (repository.MeetupPlanRepository, func(), error) {
	if cfg.PlanStore == config.PlanStorePostgres {
		pg, err := database.NewPostgreSQLClient(ctx, cfg.DatabaseURL, cfg.SupabaseURL, cfg.SupabaseDBPassword)
		if err != nil {
			return nil, nil, err
		}
		return repoImpl.NewPostgresPlanRepository(pg), func() { pg.Close() }, nil
	}

	if err := supabaseClient.HealthCheck(); err != nil {
		return nil, nil, err
	}
	return repoImpl.NewSupabasePlanRepository(supabaseClient), func() {}, nil
}
