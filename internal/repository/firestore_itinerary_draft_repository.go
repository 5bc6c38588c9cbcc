package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
)

// itineraryDraftsCollection 行程ドラフトのコレクション（expireAtにTTLポリシーを設定する）
const itineraryDraftsCollection = "itineraryDrafts"

// FirestoreItineraryDraftRepository Firestoreを使用した行程ドラフトのキャッシュリポジトリ
type FirestoreItineraryDraftRepository struct {
	client *firestore.Client
	now    func() time.Time
}

// NewFirestoreItineraryDraftRepository 新しいFirestoreItineraryDraftRepositoryインスタンスを作成
func NewFirestoreItineraryDraftRepository(client *firestore.Client) repository.ItineraryDraftRepository {
	return &FirestoreItineraryDraftRepository{
		client: client,
		now:    time.Now,
	}
}

// Save は行程をTTL付きで保存し、draft_idを生成して返す
func (r *FirestoreItineraryDraftRepository) Save(ctx context.Context, itinerary *model.Itinerary, ttlHours int) (string, error) {
	if itinerary == nil {
		return "", fmt.Errorf("保存する行程がありません")
	}

	draftID := fmt.Sprintf("draft_%s", uuid.New().String())
	data := itinerary.ToFirestoreItineraryDraft(ttlHours)

	if _, err := r.client.Collection(itineraryDraftsCollection).Doc(draftID).Set(ctx, data); err != nil {
		log.Printf("❌ Failed to save itinerary draft %s: %v", draftID, err)
		return "", fmt.Errorf("行程ドラフトの保存に失敗しました: %w", err)
	}

	log.Printf("✅ Itinerary draft saved: %s (expires in %d hours)", draftID, ttlHours)
	return draftID, nil
}

// Get は指定されたdraft_idの行程をFirestoreから取得する
// TTLによる削除は遅延するため、期限切れのドキュメントも未存在として扱う
func (r *FirestoreItineraryDraftRepository) Get(ctx context.Context, draftID string) (*model.Itinerary, error) {
	doc, err := r.client.Collection(itineraryDraftsCollection).Doc(draftID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", repository.ErrDraftNotFound, draftID)
		}
		return nil, fmt.Errorf("行程ドラフトの取得に失敗しました: %w", err)
	}

	var draft model.FirestoreItineraryDraft
	if err := doc.DataTo(&draft); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}
	if draft.IsExpired(r.now()) {
		log.Printf("⚠️ Itinerary draft expired: %s", draftID)
		return nil, fmt.Errorf("%w: %s", repository.ErrDraftNotFound, draftID)
	}

	log.Printf("✅ Itinerary draft retrieved: %s", draftID)
	return draft.ToItinerary(), nil
}
