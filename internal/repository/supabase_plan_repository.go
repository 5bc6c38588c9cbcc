package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/supabase-community/postgrest-go"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
	"MiddleMeetup-App/internal/infrastructure/database"
)

// DefaultPlanListLimit 一覧取得の既定件数
const DefaultPlanListLimit = 20

type SupabasePlanRepository struct {
	client *database.SupabaseClient
}

func NewSupabasePlanRepository(client *database.SupabaseClient) repository.MeetupPlanRepository {
	return &SupabasePlanRepository{
		client: client,
	}
}

func (r *SupabasePlanRepository) Create(ctx context.Context, plan *model.MeetupPlan) error {
	_, _, err := r.client.GetClient().From(meetupPlansTable).Insert(PlanToRow(plan), false, "", "minimal", "").Execute()
	if err != nil {
		return fmt.Errorf("計画データの作成失敗: %w", err)
	}

	log.Printf("💾 計画を保存しました: %s", plan.ID)
	return nil
}

func (r *SupabasePlanRepository) GetByID(ctx context.Context, id string) (*model.MeetupPlan, error) {
	data, _, err := r.client.GetClient().From(meetupPlansTable).Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("計画データの取得失敗: %w", err)
	}

	rows, err := decodePlanRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrPlanNotFound, id)
	}

	return rows[0].ToPlan(), nil
}

func (r *SupabasePlanRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]model.MeetupPlan, error) {
	if limit <= 0 {
		limit = DefaultPlanListLimit
	}

	data, _, err := r.client.GetClient().From(meetupPlansTable).
		Select("*", "", false).
		Eq("owner_id", ownerID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("計画一覧の取得失敗: %w", err)
	}

	rows, err := decodePlanRows(data)
	if err != nil {
		return nil, err
	}

	plans := make([]model.MeetupPlan, 0, len(rows))
	for i := range rows {
		plans = append(plans, *rows[i].ToPlan())
	}
	return plans, nil
}

func decodePlanRows(data []byte) ([]MeetupPlanRow, error) {
	var rows []MeetupPlanRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("計画データのJSONアンマーシャル失敗: %w", err)
	}
	return rows, nil
}
