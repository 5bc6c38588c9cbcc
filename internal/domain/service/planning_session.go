package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"MiddleMeetup-App/internal/domain/helper"
	"MiddleMeetup-App/internal/domain/model"
)

var (
	// ErrPartiesRequired は2人の位置が確定していない場合のエラー
	ErrPartiesRequired = errors.New("both parties must have resolved locations")
	// ErrNoExperiences は体験が1つも選択されていない場合のエラー
	ErrNoExperiences = errors.New("at least one venue must be selected")
	// ErrExperienceNotFound は指定された体験が存在しない場合のエラー
	ErrExperienceNotFound = errors.New("experience not found")
	// ErrDuplicateVenue は同じ会場を2回追加しようとした場合のエラー
	ErrDuplicateVenue = errors.New("venue is already part of the plan")
	// ErrStepNotReachable はまだ完了していない段階に進もうとした場合のエラー
	ErrStepNotReachable = errors.New("step is not reachable yet")
)

// PlanningFlow は計画セッションの各段階を (session, input) -> session の変換として提供する
// 受け取ったセッションは変更せず、常に新しいセッションを返す
type PlanningFlow struct {
	synthesizer *ItinerarySynthesizer
	now         func() time.Time
	newID       func() string
}

// NewPlanningFlow は新しいPlanningFlowを作成する
func NewPlanningFlow(synthesizer *ItinerarySynthesizer) *PlanningFlow {
	return &PlanningFlow{
		synthesizer: synthesizer,
		now:         time.Now,
		newID:       func() string { return "exp-" + uuid.New().String() },
	}
}

// WithClock は時刻の取得元を差し替えたPlanningFlowを返す
func (f *PlanningFlow) WithClock(now func() time.Time) *PlanningFlow {
	clone := *f
	clone.now = now
	return &clone
}

// Reset は空のセッションを返す
func (f *PlanningFlow) Reset() model.PlanningSession {
	return model.NewPlanningSession()
}

// SetParties は2人の位置を設定し、中間地点を再計算して次の段階へ進める
func (f *PlanningFlow) SetParties(session model.PlanningSession, party1, party2 model.Party) (model.PlanningSession, error) {
	if err := helper.ValidateLatLng(party1.Coordinates); err != nil {
		return session, fmt.Errorf("party1: %w", err)
	}
	if err := helper.ValidateLatLng(party2.Coordinates); err != nil {
		return session, fmt.Errorf("party2: %w", err)
	}
	if party1.Coordinates.IsZero() || party2.Coordinates.IsZero() {
		return session, ErrPartiesRequired
	}

	next := session.Clone()
	next.Party1 = &party1
	next.Party2 = &party2
	midpoint := helper.Midpoint(party1.Coordinates, party2.Coordinates)
	next.Midpoint = &midpoint
	next.Step = model.PlanningStepActivities
	f.refreshItinerary(&next)
	return next, nil
}

// SelectActivities はアクティビティを選択して会場選択へ進める
func (f *PlanningFlow) SelectActivities(session model.PlanningSession, activities []string) (model.PlanningSession, error) {
	if !session.HasParties() {
		return session, ErrPartiesRequired
	}
	selected := make([]string, 0, len(activities))
	seen := make(map[string]struct{}, len(activities))
	for _, a := range activities {
		a = strings.TrimSpace(a)
		if !model.IsKnownActivity(a) {
			return session, fmt.Errorf("unknown activity: %q", a)
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		selected = append(selected, a)
	}
	if len(selected) == 0 {
		return session, ErrNoActivities
	}

	next := session.Clone()
	next.Activities = selected
	next.Step = model.PlanningStepVenues
	return next, nil
}

// AddExperience は会場を計画の末尾に追加する
func (f *PlanningFlow) AddExperience(session model.PlanningSession, venue model.Venue) (model.PlanningSession, error) {
	for _, exp := range session.Experiences {
		if venue.ID != "" && exp.Venue.ID == venue.ID {
			return session, ErrDuplicateVenue
		}
	}

	next := session.Clone()
	next.Experiences = append(next.Experiences, model.Experience{
		ID:                       f.newID(),
		Venue:                    venue,
		SelectedActivities:       append([]string{}, session.Activities...),
		Order:                    len(session.Experiences) + 1,
		EstimatedDurationMinutes: f.synthesizer.Policy().DefaultExperienceMinutes,
	})
	f.refreshItinerary(&next)
	return next, nil
}

// RemoveExperience は体験を削除し、残りの順番を1..Nに振り直す
func (f *PlanningFlow) RemoveExperience(session model.PlanningSession, experienceID string) (model.PlanningSession, error) {
	idx := indexOfExperience(session.Experiences, experienceID)
	if idx < 0 {
		return session, ErrExperienceNotFound
	}

	next := session.Clone()
	next.Experiences = append(next.Experiences[:idx], next.Experiences[idx+1:]...)
	renumber(next.Experiences)
	f.refreshItinerary(&next)
	return next, nil
}

// MoveExperience は体験を指定位置（0始まり）に移動する
func (f *PlanningFlow) MoveExperience(session model.PlanningSession, experienceID string, position int) (model.PlanningSession, error) {
	idx := indexOfExperience(session.Experiences, experienceID)
	if idx < 0 {
		return session, ErrExperienceNotFound
	}
	if position < 0 || position >= len(session.Experiences) {
		return session, fmt.Errorf("position out of range: %d", position)
	}

	next := session.Clone()
	moved := next.Experiences[idx]
	rest := append(next.Experiences[:idx:idx], next.Experiences[idx+1:]...)
	reordered := make([]model.Experience, 0, len(next.Experiences))
	reordered = append(reordered, rest[:position]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[position:]...)
	next.Experiences = reordered
	renumber(next.Experiences)
	f.refreshItinerary(&next)
	return next, nil
}

// SetExperienceDuration は体験の想定時間（分）を変更する
func (f *PlanningFlow) SetExperienceDuration(session model.PlanningSession, experienceID string, durationMinutes int) (model.PlanningSession, error) {
	idx := indexOfExperience(session.Experiences, experienceID)
	if idx < 0 {
		return session, ErrExperienceNotFound
	}
	if durationMinutes <= 0 {
		return session, fmt.Errorf("duration must be positive: %d", durationMinutes)
	}

	next := session.Clone()
	next.Experiences[idx].EstimatedDurationMinutes = durationMinutes
	f.refreshItinerary(&next)
	return next, nil
}

// ConfirmExperiences は会場選択を確定し、行程を生成して最終段階へ進める
func (f *PlanningFlow) ConfirmExperiences(session model.PlanningSession) (model.PlanningSession, error) {
	next, err := f.BuildItinerary(session)
	if err != nil {
		return session, err
	}
	next.Step = model.PlanningStepItinerary
	return next, nil
}

// BuildItinerary は現在の体験から行程を全体再生成する
func (f *PlanningFlow) BuildItinerary(session model.PlanningSession) (model.PlanningSession, error) {
	if !session.HasParties() {
		return session, ErrPartiesRequired
	}
	if len(session.Experiences) == 0 {
		return session, ErrNoExperiences
	}

	next := session.Clone()
	next.Itinerary = f.synthesizer.Synthesize(f.now(), *next.Party1, *next.Party2, next.Midpoint, next.Experiences)
	return next, nil
}

// GoTo は指定した段階へ移動する
// 前の段階へは常に戻れるが、先の段階へは完了済みの場合のみ進める
func (f *PlanningFlow) GoTo(session model.PlanningSession, step model.PlanningStep) (model.PlanningSession, error) {
	target := step.Index()
	if target < 0 {
		return session, fmt.Errorf("unknown step: %q", step)
	}
	if target > session.Step.Index() && !IsStepCompleted(session, step) {
		return session, ErrStepNotReachable
	}

	next := session.Clone()
	next.Step = step
	return next, nil
}

// IsStepCompleted は段階の入力が揃っているかを判定する（最終段階は常にfalse）
func IsStepCompleted(session model.PlanningSession, step model.PlanningStep) bool {
	switch step {
	case model.PlanningStepLocation:
		return session.HasParties()
	case model.PlanningStepActivities:
		return len(session.Activities) > 0
	case model.PlanningStepVenues:
		return len(session.Experiences) > 0
	default:
		return false
	}
}

// ToPlan は永続化ストアに渡す確定計画を組み立てる
func (f *PlanningFlow) ToPlan(session model.PlanningSession, ownerID, title string) (*model.MeetupPlan, error) {
	built, err := f.BuildItinerary(session)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("%s & %s meetup", built.Party1.Name, built.Party2.Name)
	}
	return &model.MeetupPlan{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       title,
		Status:      model.PlanStatusConfirmed,
		Party1:      *built.Party1,
		Party2:      *built.Party2,
		Midpoint:    *built.Midpoint,
		Activities:  built.Activities,
		Experiences: built.Experiences,
		Itinerary:   built.Itinerary,
		CreatedAt:   built.Itinerary.GeneratedAt,
	}, nil
}

// refreshItinerary は生成済みの行程がある場合だけ入力の変更に合わせて再生成する
func (f *PlanningFlow) refreshItinerary(session *model.PlanningSession) {
	if session.Itinerary == nil {
		return
	}
	if !session.HasParties() || len(session.Experiences) == 0 {
		session.Itinerary = nil
		return
	}
	session.Itinerary = f.synthesizer.Synthesize(f.now(), *session.Party1, *session.Party2, session.Midpoint, session.Experiences)
}

func indexOfExperience(experiences []model.Experience, id string) int {
	for i, exp := range experiences {
		if exp.ID == id {
			return i
		}
	}
	return -1
}

func renumber(experiences []model.Experience) {
	for i := range experiences {
		experiences[i].Order = i + 1
	}
}
