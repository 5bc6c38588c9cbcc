package model

// ActivityConstants はアプリケーションで使用するアクティビティ（カテゴリタグ）の定数
const (
	ActivityDining        = "dining"
	ActivityEntertainment = "entertainment"
	ActivityOutdoor       = "outdoor"
	ActivityCultural      = "cultural"
	ActivityShopping      = "shopping"
	ActivityNightlife     = "nightlife"
	ActivitySports        = "sports"
	ActivityWellness      = "wellness"
)

// DefaultActivityLabel は未知のカテゴリタグに使う行程ラベル
const DefaultActivityLabel = "Experience"

// ActivityCategory は選択可能なアクティビティの表示情報
type ActivityCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// ActivityCategories は選択画面に表示するアクティビティ一覧（表示順）
var ActivityCategories = []ActivityCategory{
	{ID: ActivityDining, Label: "Dining & Food", Icon: "🍽️"},
	{ID: ActivityEntertainment, Label: "Entertainment", Icon: "🎬"},
	{ID: ActivityOutdoor, Label: "Outdoor Activities", Icon: "🌳"},
	{ID: ActivityCultural, Label: "Cultural & Arts", Icon: "🎨"},
	{ID: ActivityShopping, Label: "Shopping", Icon: "🛍️"},
	{ID: ActivityNightlife, Label: "Nightlife", Icon: "🌙"},
	{ID: ActivitySports, Label: "Sports & Fitness", Icon: "⚽"},
	{ID: ActivityWellness, Label: "Wellness & Spa", Icon: "🧘"},
}

// ActivityStepLabelMap はカテゴリタグから行程ステップのラベルへのマッピング
var ActivityStepLabelMap = map[string]string{
	ActivityDining:        "Dining Experience",
	ActivityEntertainment: "Entertainment",
	ActivityOutdoor:       "Outdoor Activity",
	ActivityCultural:      "Cultural Experience",
	ActivityShopping:      "Shopping",
	ActivityNightlife:     "Nightlife",
	ActivitySports:        "Sports Activity",
	ActivityWellness:      "Wellness Activity",
}

// GetActivityStepLabel はカテゴリタグから行程ラベルを取得する
func GetActivityStepLabel(activity string) string {
	if label, ok := ActivityStepLabelMap[activity]; ok {
		return label
	}
	return DefaultActivityLabel
}

// IsKnownActivity は定義済みのアクティビティかどうかを判定する
func IsKnownActivity(activity string) bool {
	_, ok := ActivityStepLabelMap[activity]
	return ok
}

// GetAllActivities は全アクティビティIDの一覧を取得する
func GetAllActivities() []string {
	activities := make([]string, 0, len(ActivityCategories))
	for _, c := range ActivityCategories {
		activities = append(activities, c.ID)
	}
	return activities
}
