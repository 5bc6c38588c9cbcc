package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
	"MiddleMeetup-App/internal/infrastructure/firestore"
)

// Firestoreエミュレータ（FIRESTORE_EMULATOR_HOST）がある場合のみ実行する
func TestFirestoreItineraryDraftRepository(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOSTが未設定のためスキップ")
	}

	ctx := context.Background()
	client, err := firestore.NewFirestoreClient(ctx, "middlemeetup-test", "")
	require.NoError(t, err)
	defer client.Close()

	repo := NewFirestoreItineraryDraftRepository(client.GetClient())
	itinerary := &model.Itinerary{
		Steps: []model.ItineraryStep{{
			ID:   "departure",
			Kind: model.StepKindDeparture,
			Time: "09:00 AM",
		}},
		TotalDurationMinutes: 30,
		GeneratedAt:          time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}

	t.Run("保存したドラフトを取得できる", func(t *testing.T) {
		id, err := repo.Save(ctx, itinerary, 1)
		require.NoError(t, err)
		assert.Contains(t, id, "draft_")

		got, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, itinerary.TotalDurationMinutes, got.TotalDurationMinutes)
		require.Len(t, got.Steps, 1)
		assert.Equal(t, "departure", got.Steps[0].ID)
	})

	t.Run("期限切れは未存在として扱う", func(t *testing.T) {
		id, err := repo.Save(ctx, itinerary, 1)
		require.NoError(t, err)

		expired := repo.(*FirestoreItineraryDraftRepository)
		expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { expired.now = time.Now }()

		_, err = repo.Get(ctx, id)
		assert.ErrorIs(t, err, repository.ErrDraftNotFound)
	})

	t.Run("存在しないID", func(t *testing.T) {
		_, err := repo.Get(ctx, "draft_missing")
		assert.ErrorIs(t, err, repository.ErrDraftNotFound)
	})
}
