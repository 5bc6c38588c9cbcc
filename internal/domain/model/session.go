package model

// PlanningStep 計画フローの段階
type PlanningStep string

const (
	PlanningStepLocation   PlanningStep = "location"
	PlanningStepActivities PlanningStep = "activities"
	PlanningStepVenues     PlanningStep = "venues"
	PlanningStepItinerary  PlanningStep = "itinerary"
)

// PlanningStepOrder フローの進行順
var PlanningStepOrder = []PlanningStep{
	PlanningStepLocation,
	PlanningStepActivities,
	PlanningStepVenues,
	PlanningStepItinerary,
}

// Index フロー内での位置（未知の段階は-1）
func (s PlanningStep) Index() int {
	for i, step := range PlanningStepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// PlanningSession 1回の計画セッションの状態
// 各段階は (session, input) -> session の変換として扱い、グローバル状態は持たない
type PlanningSession struct {
	Step        PlanningStep `json:"step"`
	Party1      *Party       `json:"party1,omitempty"`
	Party2      *Party       `json:"party2,omitempty"`
	Midpoint    *LatLng      `json:"midpoint,omitempty"`
	Activities  []string     `json:"activities"`
	Experiences []Experience `json:"experiences"`
	Itinerary   *Itinerary   `json:"itinerary,omitempty"`
}

// NewPlanningSession 空のセッションを作成
func NewPlanningSession() PlanningSession {
	return PlanningSession{
		Step:        PlanningStepLocation,
		Activities:  []string{},
		Experiences: []Experience{},
	}
}

// HasParties 2人の位置が確定しているか
func (s *PlanningSession) HasParties() bool {
	return s.Party1 != nil && s.Party2 != nil && s.Midpoint != nil
}

// Clone スライスを含めて複製する
func (s PlanningSession) Clone() PlanningSession {
	out := s
	if s.Party1 != nil {
		p := *s.Party1
		out.Party1 = &p
	}
	if s.Party2 != nil {
		p := *s.Party2
		out.Party2 = &p
	}
	if s.Midpoint != nil {
		m := *s.Midpoint
		out.Midpoint = &m
	}
	out.Activities = append([]string{}, s.Activities...)
	out.Experiences = append([]Experience{}, s.Experiences...)
	if s.Itinerary != nil {
		it := *s.Itinerary
		it.Steps = append([]ItineraryStep{}, s.Itinerary.Steps...)
		out.Itinerary = &it
	}
	return out
}
