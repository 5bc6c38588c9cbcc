package helper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"MiddleMeetup-App/internal/domain/model"
)

var (
	newYork    = model.LatLng{Lat: 40.7128, Lng: -74.0060}
	losAngeles = model.LatLng{Lat: 34.0522, Lng: -118.2437}
	tokyo      = model.LatLng{Lat: 35.6762, Lng: 139.6503}
	sydney     = model.LatLng{Lat: -33.8688, Lng: 151.2093}
	london     = model.LatLng{Lat: 51.5074, Lng: -0.1278}
)

func TestDistanceKm(t *testing.T) {
	t.Run("ニューヨークとロサンゼルス間は約3936km", func(t *testing.T) {
		assert.InDelta(t, 3936, DistanceKm(newYork, losAngeles), 5)
	})

	t.Run("同一地点の距離は0", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceKm(tokyo, tokyo))
	})

	t.Run("対称性と非負性", func(t *testing.T) {
		pairs := [][2]model.LatLng{{newYork, losAngeles}, {tokyo, sydney}, {london, tokyo}}
		for _, p := range pairs {
			d1 := DistanceKm(p[0], p[1])
			d2 := DistanceKm(p[1], p[0])
			assert.InDelta(t, d1, d2, 1e-9)
			assert.GreaterOrEqual(t, d1, 0.0)
		}
	})

	t.Run("三角不等式", func(t *testing.T) {
		ab := DistanceKm(newYork, london)
		bc := DistanceKm(london, tokyo)
		ac := DistanceKm(newYork, tokyo)
		assert.LessOrEqual(t, ac, ab+bc+1e-6)
	})
}

func TestMidpoint(t *testing.T) {
	t.Run("ニューヨークとロサンゼルスの中間地点は内陸部", func(t *testing.T) {
		mid := Midpoint(newYork, losAngeles)
		assert.InDelta(t, 39.5, mid.Lat, 0.5)
		assert.InDelta(t, -97.0, mid.Lng, 0.5)
		// 単純平均(37.38, -96.12)とは異なる
		assert.Greater(t, mid.Lat, (newYork.Lat+losAngeles.Lat)/2+1)
	})

	t.Run("引数の順序に依存しない", func(t *testing.T) {
		pairs := [][2]model.LatLng{{newYork, losAngeles}, {tokyo, sydney}, {london, tokyo}, {sydney, london}}
		for _, p := range pairs {
			ab := Midpoint(p[0], p[1])
			ba := Midpoint(p[1], p[0])
			assert.InDelta(t, ab.Lat, ba.Lat, 1e-9)
			assert.InDelta(t, ab.Lng, ba.Lng, 1e-9)
		}
	})

	t.Run("同一地点の中間地点はその地点", func(t *testing.T) {
		assert.Equal(t, tokyo, Midpoint(tokyo, tokyo))
	})

	t.Run("中間地点は両者から等距離", func(t *testing.T) {
		mid := Midpoint(london, tokyo)
		assert.InDelta(t, DistanceKm(london, mid), DistanceKm(tokyo, mid), 1e-6)
	})

	t.Run("日付変更線をまたいでも経度は範囲内", func(t *testing.T) {
		mid := Midpoint(model.LatLng{Lat: 10, Lng: 179}, model.LatLng{Lat: 10, Lng: -177})
		assert.True(t, mid.IsValid())
		assert.InDelta(t, 181.0-360.0, mid.Lng, 0.1)
	})
}

func TestTravelTimeMinutes(t *testing.T) {
	t.Run("50km/hでの切り上げ", func(t *testing.T) {
		expected := int(math.Ceil(DistanceKm(newYork, losAngeles) / 50 * 60))
		assert.Equal(t, expected, TravelTimeMinutes(newYork, losAngeles))
	})

	t.Run("同一地点は0分", func(t *testing.T) {
		assert.Equal(t, 0, TravelTimeMinutes(london, london))
	})

	t.Run("わずかな距離でも1分以上", func(t *testing.T) {
		near := model.LatLng{Lat: london.Lat + 0.0001, Lng: london.Lng}
		assert.Equal(t, 1, TravelTimeMinutes(london, near))
	})

	t.Run("速度指定", func(t *testing.T) {
		// 経度1度差の赤道上は約111.19km
		a := model.LatLng{Lat: 0, Lng: 0}
		b := model.LatLng{Lat: 0, Lng: 1}
		assert.Equal(t, 67, TravelTimeMinutesAtSpeed(a, b, 100))
		assert.Equal(t, TravelTimeMinutes(a, b), TravelTimeMinutesAtSpeed(a, b, 0))
	})
}

func TestValidateLatLng(t *testing.T) {
	assert.NoError(t, ValidateLatLng(tokyo))
	assert.Error(t, ValidateLatLng(model.LatLng{Lat: 91, Lng: 0}))
	assert.Error(t, ValidateLatLng(model.LatLng{Lat: 0, Lng: -181}))
}
