package helper

import (
	"sort"

	"MiddleMeetup-App/internal/domain/model"
)

// AnnotateDistances は各会場に2人からの距離を設定する
func AnnotateDistances(venues []model.Venue, party1, party2 model.LatLng) {
	for i := range venues {
		venues[i].DistanceFromParty1 = DistanceKm(party1, venues[i].Coordinates)
		venues[i].DistanceFromParty2 = DistanceKm(party2, venues[i].Coordinates)
	}
}

// SortByAverageDistance は2人からの平均距離の昇順で並べる
// 平均が同じ会場は入力順を保つ（安定ソート）
func SortByAverageDistance(venues []model.Venue) {
	sort.SliceStable(venues, func(i, j int) bool {
		return venues[i].AverageDistanceKm() < venues[j].AverageDistanceKm()
	})
}

// FilterByActivities は指定されたカテゴリタグの会場のみを抽出する
func FilterByActivities(venues []model.Venue, activities []string) []model.Venue {
	actSet := make(map[string]struct{}, len(activities))
	for _, a := range activities {
		actSet[a] = struct{}{}
	}
	filtered := make([]model.Venue, 0, len(venues))
	for _, v := range venues {
		if _, ok := actSet[v.Type]; ok {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// MaxPartyDistanceKm は会場群のうち、2人のどちらかから最も遠い距離を返す
func MaxPartyDistanceKm(venues []model.Venue, party1, party2 model.LatLng) float64 {
	var maxDistance float64
	for _, v := range venues {
		d := DistanceKm(party1, v.Coordinates)
		if d2 := DistanceKm(party2, v.Coordinates); d2 > d {
			d = d2
		}
		if d > maxDistance {
			maxDistance = d
		}
	}
	return maxDistance
}
