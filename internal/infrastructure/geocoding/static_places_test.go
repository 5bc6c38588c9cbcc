package geocoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticPlaceTable_Search(t *testing.T) {
	table := NewStaticPlaceTable()

	t.Run("部分一致を重要度の降順で返す", func(t *testing.T) {
		results := table.Search("  NEW york ", 10)
		require.Len(t, results, 4)
		assert.Equal(t, "New York City, NY, United States", results[0].DisplayName)
		assert.Equal(t, 0.95, results[0].Importance)
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Importance, results[i].Importance)
		}
	})

	t.Run("件数を制限する", func(t *testing.T) {
		assert.Len(t, table.Search("san", 2), 2)
	})

	t.Run("一致なし・空入力は空", func(t *testing.T) {
		assert.Empty(t, table.Search("reykjavik", 5))
		assert.Empty(t, table.Search("   ", 5))
	})
}

func TestStaticPlaceTable_Lookup(t *testing.T) {
	table := NewStaticPlaceTable()

	tests := []struct {
		name    string
		address string
		lat     float64
	}{
		{"完全一致", "Tokyo", 35.6762},
		{"入力がキーを含む", "Brooklyn Heights", 40.6782},
		{"短いキーより長いキーを優先", "Dallas, TX", 32.7767},
		{"laを含む都市名", "Philadelphia, PA", 39.9526},
		{"キーが入力を含む", "vancou", 49.2827},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords := table.Lookup(tt.address)
			require.NotNil(t, coords)
			assert.Equal(t, tt.lat, coords.Lat)
		})
	}

	t.Run("不明な住所と空入力はnil", func(t *testing.T) {
		assert.Nil(t, table.Lookup("Reykjavik"))
		assert.Nil(t, table.Lookup(""))
	})
}
