package helper

import (
	"fmt"
	"math"

	"MiddleMeetup-App/internal/domain/model"
)

const earthRadiusKm = 6371.0

// DefaultAverageSpeedKmh は移動時間の見積もりに使う平均速度
// 実際の経路は考慮せず、直線距離をこの速度で割った値を所要時間とする
const DefaultAverageSpeedKmh = 50.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// DistanceKm は2地点間の大圏距離をハーサイン公式で計算する (km)
func DistanceKm(p1, p2 model.LatLng) float64 {
	lat1 := toRadians(p1.Lat)
	lat2 := toRadians(p2.Lat)
	dLat := toRadians(p2.Lat - p1.Lat)
	dLng := toRadians(p2.Lng - p1.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// 丸め誤差で1をわずかに超えるとNaNになる
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Midpoint は大圏上の中間地点を計算する（緯度経度の単純平均ではない）
func Midpoint(p1, p2 model.LatLng) model.LatLng {
	if p1 == p2 {
		return p1
	}

	lat1 := toRadians(p1.Lat)
	lat2 := toRadians(p2.Lat)
	lng1 := toRadians(p1.Lng)
	dLng := toRadians(p2.Lng - p1.Lng)

	bx := math.Cos(lat2) * math.Cos(dLng)
	by := math.Cos(lat2) * math.Sin(dLng)

	lat3 := math.Atan2(
		math.Sin(lat1)+math.Sin(lat2),
		math.Sqrt((math.Cos(lat1)+bx)*(math.Cos(lat1)+bx)+by*by),
	)
	lng3 := lng1 + math.Atan2(by, math.Cos(lat1)+bx)

	return model.LatLng{
		Lat: toDegrees(lat3),
		Lng: normalizeLng(toDegrees(lng3)),
	}
}

// normalizeLng は経度を[-180, 180]に収める
func normalizeLng(lng float64) float64 {
	if lng >= -180 && lng <= 180 {
		return lng
	}
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}

// TravelTimeMinutes は平均50km/hを仮定した移動時間（分、切り上げ）
func TravelTimeMinutes(p1, p2 model.LatLng) int {
	return TravelTimeMinutesAtSpeed(p1, p2, DefaultAverageSpeedKmh)
}

// TravelTimeMinutesAtSpeed は指定した平均速度での移動時間（分、切り上げ）
func TravelTimeMinutesAtSpeed(p1, p2 model.LatLng, speedKmh float64) int {
	if speedKmh <= 0 {
		speedKmh = DefaultAverageSpeedKmh
	}
	return int(math.Ceil(DistanceKm(p1, p2) / speedKmh * 60))
}

// ValidateLatLng は緯度経度が有効範囲内かをチェックする
func ValidateLatLng(p model.LatLng) error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("緯度は-90から90の範囲で指定してください: %f", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("経度は-180から180の範囲で指定してください: %f", p.Lng)
	}
	return nil
}
