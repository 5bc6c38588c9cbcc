package usecase

import (
	"context"
	"fmt"
	"log"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
	"MiddleMeetup-App/internal/domain/service"
)

type MeetupPlanUseCase interface {
	// CreatePlan は入力からセッションを組み立て直し、行程を再生成して計画を保存する
	CreatePlan(ctx context.Context, ownerID string, req *model.CreatePlanRequest) (*model.MeetupPlan, error)

	// GetPlan は利用者自身の計画を取得する
	GetPlan(ctx context.Context, ownerID, planID string) (*model.MeetupPlan, error)

	// ListPlans は利用者の計画を新しい順に返す
	ListPlans(ctx context.Context, ownerID string, limit int) ([]model.MeetupPlan, error)
}

// meetupPlanUseCaseImpl はMeetupPlanUseCaseの実装
type meetupPlanUseCaseImpl struct {
	flow     *service.PlanningFlow
	planRepo repository.MeetupPlanRepository
}

// NewMeetupPlanUseCase は新しいMeetupPlanUseCaseインスタンスを作成
func NewMeetupPlanUseCase(synthesizer *service.ItinerarySynthesizer, planRepo repository.MeetupPlanRepository) MeetupPlanUseCase {
	return &meetupPlanUseCaseImpl{
		flow:     service.NewPlanningFlow(synthesizer),
		planRepo: planRepo,
	}
}

func (u *meetupPlanUseCaseImpl) CreatePlan(ctx context.Context, ownerID string, req *model.CreatePlanRequest) (*model.MeetupPlan, error) {
	session, err := u.buildSession(req)
	if err != nil {
		return nil, err
	}

	plan, err := u.flow.ToPlan(session, ownerID, req.Title)
	if err != nil {
		return nil, err
	}

	if err := u.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("計画の保存に失敗: %w", err)
	}

	log.Printf("✅ 計画を確定しました: %s (%d件の体験)", plan.ID, len(plan.Experiences))
	return plan, nil
}

// buildSession は各段階の変換を順に適用して確定直前のセッションを作る
func (u *meetupPlanUseCaseImpl) buildSession(req *model.CreatePlanRequest) (model.PlanningSession, error) {
	session, err := u.flow.SetParties(u.flow.Reset(), req.Party1, req.Party2)
	if err != nil {
		return session, err
	}
	if session, err = u.flow.SelectActivities(session, req.Activities); err != nil {
		return session, err
	}

	for _, exp := range orderedExperiences(req.Experiences) {
		if session, err = u.flow.AddExperience(session, exp.Venue); err != nil {
			return session, err
		}
		if exp.EstimatedDurationMinutes > 0 {
			added := session.Experiences[len(session.Experiences)-1]
			if session, err = u.flow.SetExperienceDuration(session, added.ID, exp.EstimatedDurationMinutes); err != nil {
				return session, err
			}
		}
	}
	return session, nil
}

func (u *meetupPlanUseCaseImpl) GetPlan(ctx context.Context, ownerID, planID string) (*model.MeetupPlan, error) {
	plan, err := u.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	// 他人の計画は存在しないものとして扱う
	if plan.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: %s", repository.ErrPlanNotFound, planID)
	}
	return plan, nil
}

func (u *meetupPlanUseCaseImpl) ListPlans(ctx context.Context, ownerID string, limit int) ([]model.MeetupPlan, error) {
	plans, err := u.planRepo.ListByOwner(ctx, ownerID, limit)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []model.MeetupPlan{}
	}
	return plans, nil
}
