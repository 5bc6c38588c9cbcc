package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimClient_Search(t *testing.T) {
	t.Run("文字列の座標と重要度を読み取る", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
			q := r.URL.Query()
			assert.Equal(t, "json", q.Get("format"))
			assert.Equal(t, "brooklyn", q.Get("q"))
			assert.Equal(t, "3", q.Get("limit"))
			_, _ = w.Write([]byte(`[
				{"display_name":"Brooklyn, NY","lat":"40.6782","lon":"-73.9442","type":"city","importance":0.71},
				{"display_name":"Brooklyn Bridge","lat":"40.7061","lon":"-73.9969","importance":"0.55"},
				{"display_name":"Broken","lat":"n/a","lon":"-73.0"}
			]`))
		}))
		defer server.Close()

		client := NewNominatimClient(server.URL, "test-agent", 100, time.Second)
		candidates, err := client.Search(context.Background(), "brooklyn", 3)
		require.NoError(t, err)
		require.Len(t, candidates, 2)

		assert.Equal(t, 40.6782, candidates[0].Coordinates.Lat)
		assert.Equal(t, -73.9442, candidates[0].Coordinates.Lng)
		assert.Equal(t, 0.71, candidates[0].Importance)
		assert.Equal(t, "city", candidates[0].Type)
		assert.False(t, candidates[0].NeedsRetrieval())

		assert.Equal(t, 0.55, candidates[1].Importance)
		assert.Equal(t, "location", candidates[1].Type)
	})

	t.Run("エラーステータスはエラーを返す", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewNominatimClient(server.URL, "", 100, time.Second)
		_, err := client.Search(context.Background(), "x", 1)
		assert.Error(t, err)
	})

	t.Run("キャンセル済みのコンテキストはレート制限待ちで失敗する", func(t *testing.T) {
		client := NewNominatimClient("http://127.0.0.1:0", "", 0.001, time.Second)
		// 最初のトークンを消費させる
		client.limiter.Allow()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.Search(ctx, "x", 1)
		assert.Error(t, err)
	})
}
