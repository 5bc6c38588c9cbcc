package model

// Party 待ち合わせを計画する参加者（2人のうちの1人）
type Party struct {
	Name        string `json:"name"`
	Address     string `json:"address"`     // 入力された住所（フリーテキスト）
	Coordinates LatLng `json:"coordinates"` // 住所の解決結果
}

// PartyInput 住所解決前の参加者入力
type PartyInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}
