package model

import "time"

// ItineraryStepKind 行程ステップの種類
const (
	StepKindDeparture  = "departure"
	StepKindArrival    = "arrival"
	StepKindActivity   = "activity"
	StepKindTransition = "transition"
	StepKindWrapUp     = "wrap_up"
	StepKindReturn     = "return"
)

// ItineraryTimeLayout 行程の表示用時刻フォーマット（12時間表記）
const ItineraryTimeLayout = "03:04 PM"

// ItineraryStep 行程の1ステップ
type ItineraryStep struct {
	ID              string    `json:"id" firestore:"id"`
	Kind            string    `json:"kind" firestore:"kind"`
	ScheduledTime   time.Time `json:"scheduled_time" firestore:"scheduled_time"`
	Time            string    `json:"time" firestore:"time"`
	Activity        string    `json:"activity" firestore:"activity"`
	Location        string    `json:"location" firestore:"location"`
	DurationMinutes int       `json:"duration" firestore:"duration"`
	Description     string    `json:"description" firestore:"description"`
	Coordinates     LatLng    `json:"coordinates" firestore:"coordinates"`
	Venue           *Venue    `json:"venue,omitempty" firestore:"venue,omitempty"`
}

// Itinerary 生成された行程と集計値
type Itinerary struct {
	Steps                []ItineraryStep `json:"steps"`
	TotalDurationMinutes int             `json:"total_duration_minutes"`
	MaxDistanceKm        float64         `json:"max_distance_km"`
	GeneratedAt          time.Time       `json:"generated_at"`
}

// IsEmpty ステップが存在しないかどうか
func (it *Itinerary) IsEmpty() bool {
	return it == nil || len(it.Steps) == 0
}

// FirestoreItineraryDraft Firestoreに一時保存する行程ドラフト
type FirestoreItineraryDraft struct {
	Steps                []ItineraryStep `firestore:"steps"`
	TotalDurationMinutes int             `firestore:"total_duration_minutes"`
	MaxDistanceKm        float64         `firestore:"max_distance_km"`
	GeneratedAt          time.Time       `firestore:"generated_at"`
	ExpireAt             time.Time       `firestore:"expireAt"`
}

// ToFirestoreItineraryDraft TTL付きのFirestore保存用構造体に変換
func (it *Itinerary) ToFirestoreItineraryDraft(ttlHours int) *FirestoreItineraryDraft {
	return &FirestoreItineraryDraft{
		Steps:                it.Steps,
		TotalDurationMinutes: it.TotalDurationMinutes,
		MaxDistanceKm:        it.MaxDistanceKm,
		GeneratedAt:          it.GeneratedAt,
		ExpireAt:             time.Now().Add(time.Duration(ttlHours) * time.Hour),
	}
}

// ToItinerary Firestoreのドラフトから行程に変換
func (d *FirestoreItineraryDraft) ToItinerary() *Itinerary {
	return &Itinerary{
		Steps:                d.Steps,
		TotalDurationMinutes: d.TotalDurationMinutes,
		MaxDistanceKm:        d.MaxDistanceKm,
		GeneratedAt:          d.GeneratedAt,
	}
}

// IsExpired ドラフトの有効期限が切れているか
func (d *FirestoreItineraryDraft) IsExpired(now time.Time) bool {
	return !d.ExpireAt.IsZero() && now.After(d.ExpireAt)
}
