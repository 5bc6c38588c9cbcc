package model

import "time"

// PlanStatus 保存された計画のステータス
const (
	PlanStatusPlanning  = "planning"
	PlanStatusConfirmed = "confirmed"
	PlanStatusCompleted = "completed"
	PlanStatusCancelled = "cancelled"
)

// MeetupPlan 確定した待ち合わせ計画（永続化ストアに渡す構造）
type MeetupPlan struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner_id"`
	Title       string       `json:"title"`
	Status      string       `json:"status"`
	Party1      Party        `json:"party1"`
	Party2      Party        `json:"party2"`
	Midpoint    LatLng       `json:"midpoint"`
	Activities  []string     `json:"activities"`
	Experiences []Experience `json:"experiences"`
	Itinerary   *Itinerary   `json:"itinerary"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Venues 計画に含まれる会場を順番通りに返す
func (p *MeetupPlan) Venues() []Venue {
	venues := make([]Venue, 0, len(p.Experiences))
	for _, exp := range p.Experiences {
		venues = append(venues, exp.Venue)
	}
	return venues
}

// Identity 認証済みの利用者
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
