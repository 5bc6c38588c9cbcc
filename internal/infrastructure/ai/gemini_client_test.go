package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClient_GenerateContent(t *testing.T) {
	t.Run("候補のテキストを連結して返す", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

			var req GeminiRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Contents, 1)
			assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

			_ = json.NewEncoder(w).Encode(GeminiResponse{
				Candidates: []Candidate{{Content: Content{Parts: []Part{{Text: "[1,"}, {Text: "2]"}}}}},
			})
		}))
		defer server.Close()

		client := NewGeminiClient("test-key", "test-model", time.Second).WithBaseURL(server.URL)
		text, err := client.GenerateContent(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, "[1,2]", text)
	})

	t.Run("エラーステータスはエラーを返す", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewGeminiClient("test-key", "", time.Second).WithBaseURL(server.URL)
		_, err := client.GenerateContent(context.Background(), "hello")
		assert.ErrorContains(t, err, "429")
	})

	t.Run("候補が空ならエラー", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}))
		defer server.Close()

		client := NewGeminiClient("test-key", "", time.Second).WithBaseURL(server.URL)
		_, err := client.GenerateContent(context.Background(), "hello")
		assert.Error(t, err)
	})

	t.Run("APIキー未設定なら通信しない", func(t *testing.T) {
		client := NewGeminiClient("", "", time.Second).WithBaseURL("http://127.0.0.1:0")
		_, err := client.GenerateContent(context.Background(), "hello")
		assert.ErrorContains(t, err, "GEMINI_API_KEY")
	})
}
