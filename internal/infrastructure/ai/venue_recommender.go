package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"MiddleMeetup-App/internal/domain/model"
	"MiddleMeetup-App/internal/domain/repository"
)

var (
	// ErrNoJSONArray はレスポンスにJSON配列が含まれていない場合のエラー
	ErrNoJSONArray = errors.New("レスポンスに有効なJSON配列が見つかりません")
	// ErrNoValidVenues は全ての会場がスキーマ検証に失敗した場合のエラー
	ErrNoValidVenues = errors.New("スキーマを満たす会場がありません")
)

// 最初の '[' から最後の ']' までを取り出す（前後の説明文を許容する）
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// venueResponseItem は生成AIが返す会場1件のスキーマ
type venueResponseItem struct {
	Name           string        `json:"name" validate:"required"`
	Address        string        `json:"address" validate:"required"`
	Coordinates    *model.LatLng `json:"coordinates" validate:"required"`
	Rating         *float64      `json:"rating" validate:"omitempty,min=1,max=5"`
	Type           string        `json:"type" validate:"required,oneof=dining entertainment outdoor cultural shopping nightlife sports wellness"`
	Description    string        `json:"description"`
	GoogleMapsLink string        `json:"googleMapsLink" validate:"omitempty,url"`
}

// geminiVenueRepository はGemini APIを使用してVenueRecommendationRepositoryを実装
type geminiVenueRepository struct {
	client   ContentGenerator
	validate *validator.Validate
}

// NewGeminiVenueRepository は新しいgeminiVenueRepositoryインスタンスを作成
func NewGeminiVenueRepository(client ContentGenerator) repository.VenueRecommendationRepository {
	return &geminiVenueRepository{
		client:   client,
		validate: validator.New(),
	}
}

// FetchVenueCandidates は2人の位置と中間地点から会場候補を生成AIに問い合わせる
func (g *geminiVenueRepository) FetchVenueCandidates(ctx context.Context, req *model.VenueSearchRequest) ([]model.Venue, error) {
	prompt := g.buildVenuePrompt(req)

	log.Printf("🤖 Gemini APIで会場候補を生成中... (アクティビティ: %s, 半径: %.1fkm)", strings.Join(req.Activities, ","), req.GetRadiusKm())

	text, err := g.client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("Gemini API呼び出しエラー: %w", err)
	}

	venues, err := g.parseVenueResponse(text)
	if err != nil {
		log.Printf("❌ 会場レスポンスの解析に失敗: %v", err)
		return nil, err
	}

	log.Printf("✅ 会場候補の生成完了: %d件", len(venues))
	return venues, nil
}

// buildVenuePrompt は会場推薦用プロンプトを構築
func (g *geminiVenueRepository) buildVenuePrompt(req *model.VenueSearchRequest) string {
	return fmt.Sprintf(`You are a local expert helping two friends find the perfect meetup locations. Here's the context:

**User Locations:**
- User A: Latitude %f, Longitude %f
- User B: Latitude %f, Longitude %f
- Midpoint: Latitude %f, Longitude %f

**Requested Activities:** %s
**Search Radius:** %.1f km from midpoint

**Instructions:**
1. Find 6-8 real, specific venues near the midpoint coordinates that match the selected activities
2. Focus on places that are accessible to both users and well-reviewed
3. Include a variety of options (different price points, ambiance, etc.)
4. Make sure coordinates are accurate for real places

**Required Response Format (JSON only, no other text):**
[
  {
    "name": "Venue Name",
    "address": "Full street address",
    "coordinates": {
      "lat": 40.1234,
      "lng": -74.5678
    },
    "rating": 4.5,
    "type": "%s",
    "description": "Brief description of the venue and why it's good for meetups",
    "googleMapsLink": "https://maps.google.com/?q=latitude,longitude"
  }
]

**Important:**
- Only return valid JSON array
- Use real coordinates for actual places
- Rating should be a number between 1-5 (omit if unknown)
- Type must match one of the activity categories
- Keep descriptions concise but helpful
- Include Google Maps links with actual coordinates
`,
		req.Party1.Lat, req.Party1.Lng,
		req.Party2.Lat, req.Party2.Lng,
		req.Midpoint.Lat, req.Midpoint.Lng,
		strings.Join(req.Activities, ", "),
		req.GetRadiusKm(),
		strings.Join(model.GetAllActivities(), "|"),
	)
}

// parseVenueResponse は生成テキストからJSON配列を取り出し、スキーマ検証済みの会場に変換する
// 空配列は「該当なし」として正常に扱い、要素が全て不正な場合のみエラーとする
func (g *geminiVenueRepository) parseVenueResponse(text string) ([]model.Venue, error) {
	raw := jsonArrayPattern.FindString(text)
	if raw == "" {
		return nil, ErrNoJSONArray
	}

	var items []venueResponseItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("JSON配列のパースに失敗: %w", err)
	}

	venues := make([]model.Venue, 0, len(items))
	for i, item := range items {
		if err := g.validateItem(&item); err != nil {
			log.Printf("⚠️ 会場%d をスキップ (スキーマ不一致): %v", i+1, err)
			continue
		}
		venues = append(venues, item.toVenue())
	}

	if len(items) > 0 && len(venues) == 0 {
		return nil, ErrNoValidVenues
	}
	return venues, nil
}

func (g *geminiVenueRepository) validateItem(item *venueResponseItem) error {
	if err := g.validate.Struct(item); err != nil {
		return err
	}
	if item.Coordinates.IsZero() {
		return errors.New("座標が(0,0)です")
	}
	return nil
}

func (item *venueResponseItem) toVenue() model.Venue {
	mapLink := item.GoogleMapsLink
	if mapLink == "" {
		mapLink = fmt.Sprintf("https://maps.google.com/?q=%f,%f", item.Coordinates.Lat, item.Coordinates.Lng)
	}
	return model.Venue{
		Name:        strings.TrimSpace(item.Name),
		Address:     strings.TrimSpace(item.Address),
		Coordinates: *item.Coordinates,
		Rating:      item.Rating,
		Type:        item.Type,
		Description: item.Description,
		MapLink:     mapLink,
	}
}
