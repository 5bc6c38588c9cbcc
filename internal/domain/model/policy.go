package model

// TravelPolicy 移動時間と行程バッファの方針値
// 実際の経路検索は行わず、直線距離と平均速度から所要時間を見積もる
type TravelPolicy struct {
	AverageSpeedKmh          float64 `json:"average_speed_kmh"`
	DepartureBufferMinutes   int     `json:"departure_buffer_minutes"`
	MeetingBufferMinutes     int     `json:"meeting_buffer_minutes"`
	TransitionBufferMinutes  int     `json:"transition_buffer_minutes"`
	WrapUpMinutes            int     `json:"wrap_up_minutes"`
	DefaultExperienceMinutes int     `json:"default_experience_minutes"`
}

// DefaultTravelPolicy は標準の方針値（50km/h、出発30分後、合流15分、移動30分、締め15分、体験120分）
func DefaultTravelPolicy() TravelPolicy {
	return TravelPolicy{
		AverageSpeedKmh:          50,
		DepartureBufferMinutes:   30,
		MeetingBufferMinutes:     15,
		TransitionBufferMinutes:  30,
		WrapUpMinutes:            15,
		DefaultExperienceMinutes: 120,
	}
}

// WithDefaults はゼロ値の項目をデフォルト値で補完したコピーを返す
func (p TravelPolicy) WithDefaults() TravelPolicy {
	d := DefaultTravelPolicy()
	if p.AverageSpeedKmh <= 0 {
		p.AverageSpeedKmh = d.AverageSpeedKmh
	}
	if p.DepartureBufferMinutes <= 0 {
		p.DepartureBufferMinutes = d.DepartureBufferMinutes
	}
	if p.MeetingBufferMinutes <= 0 {
		p.MeetingBufferMinutes = d.MeetingBufferMinutes
	}
	if p.TransitionBufferMinutes <= 0 {
		p.TransitionBufferMinutes = d.TransitionBufferMinutes
	}
	if p.WrapUpMinutes <= 0 {
		p.WrapUpMinutes = d.WrapUpMinutes
	}
	if p.DefaultExperienceMinutes <= 0 {
		p.DefaultExperienceMinutes = d.DefaultExperienceMinutes
	}
	return p
}
