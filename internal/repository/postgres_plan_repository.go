package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"
	"github.com/paulmach/orb/encoding/wkt"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
	"MiddleMeetup-App/internal/infrastructure/database"
)

const insertPlanQuery = `
INSERT INTO meetup_plans (
	id, owner_id, title, status,
	party1_name, party1_address, party1_location,
	party2_name, party2_address, party2_location,
	midpoint, activities, experiences, itinerary, created_at
) VALUES (
	$1, $2, $3, $4,
	$5, $6, ST_GeomFromText($7, 4326),
	$8, $9, ST_GeomFromText($10, 4326),
	ST_GeomFromText($11, 4326), $12, $13, $14, $15
)`

const selectPlanColumns = `
SELECT id, owner_id, title, status,
	party1_name, party1_address, ST_AsText(party1_location),
	party2_name, party2_address, ST_AsText(party2_location),
	ST_AsText(midpoint), activities, experiences, itinerary, created_at
FROM meetup_plans`

type PostgresPlanRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresPlanRepository(client *database.PostgreSQLClient) repository.MeetupPlanRepository {
	return &PostgresPlanRepository{
		client: client,
	}
}

func (r *PostgresPlanRepository) Create(ctx context.Context, plan *model.MeetupPlan) error {
	row := PlanToRow(plan)

	experiences, err := json.Marshal(row.Experiences)
	if err != nil {
		return fmt.Errorf("体験データのJSONマーシャル失敗: %w", err)
	}
	var itinerary []byte
	if row.Itinerary != nil {
		if itinerary, err = json.Marshal(row.Itinerary); err != nil {
			return fmt.Errorf("行程データのJSONマーシャル失敗: %w", err)
		}
	}

	_, err = r.client.DB.ExecContext(ctx, insertPlanQuery,
		row.ID, row.OwnerID, row.Title, row.Status,
		row.Party1Name, row.Party1Address, pointWKT(plan.Party1.Coordinates),
		row.Party2Name, row.Party2Address, pointWKT(plan.Party2.Coordinates),
		pointWKT(plan.Midpoint), pq.Array(row.Activities), experiences, itinerary, row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("計画データの作成失敗: %w", err)
	}

	log.Printf("💾 計画を保存しました (PostgreSQL): %s", plan.ID)
	return nil
}

func (r *PostgresPlanRepository) GetByID(ctx context.Context, id string) (*model.MeetupPlan, error) {
	query := selectPlanColumns + ` WHERE id = $1`

	plan, err := scanPlan(r.client.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", repository.ErrPlanNotFound, id)
		}
		return nil, fmt.Errorf("計画データの取得失敗: %w", err)
	}
	return plan, nil
}

func (r *PostgresPlanRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]model.MeetupPlan, error) {
	if limit <= 0 {
		limit = DefaultPlanListLimit
	}
	query := selectPlanColumns + ` WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.client.DB.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("計画一覧の取得失敗: %w", err)
	}
	defer rows.Close()

	var plans []model.MeetupPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("計画データのスキャン失敗: %w", err)
		}
		plans = append(plans, *plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("計画一覧の読み込み失敗: %w", err)
	}
	return plans, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(s rowScanner) (*model.MeetupPlan, error) {
	var (
		row                            MeetupPlanRow
		party1WKT, party2WKT, midWKT   sql.NullString
		experiencesJSON, itineraryJSON []byte
	)

	err := s.Scan(
		&row.ID, &row.OwnerID, &row.Title, &row.Status,
		&row.Party1Name, &row.Party1Address, &party1WKT,
		&row.Party2Name, &row.Party2Address, &party2WKT,
		&midWKT, pq.Array(&row.Activities), &experiencesJSON, &itineraryJSON, &row.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if row.Party1Location, err = geoPointFromWKT(party1WKT); err != nil {
		return nil, err
	}
	if row.Party2Location, err = geoPointFromWKT(party2WKT); err != nil {
		return nil, err
	}
	if row.Midpoint, err = geoPointFromWKT(midWKT); err != nil {
		return nil, err
	}

	if len(experiencesJSON) > 0 {
		if err := json.Unmarshal(experiencesJSON, &row.Experiences); err != nil {
			return nil, fmt.Errorf("experiences JSONBパースエラー: %w", err)
		}
	}
	if len(itineraryJSON) > 0 {
		var it model.Itinerary
		if err := json.Unmarshal(itineraryJSON, &it); err != nil {
			return nil, fmt.Errorf("itinerary JSONBパースエラー: %w", err)
		}
		row.Itinerary = &it
	}

	return row.ToPlan(), nil
}

func geoPointFromWKT(s sql.NullString) (*GeoPoint, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	point, err := wkt.UnmarshalPoint(s.String)
	if err != nil {
		return nil, fmt.Errorf("location WKTパースエラー: %w", err)
	}
	return LatLngToGeoPoint(model.LatLngFromPoint(point)), nil
}
