package moonshot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"idea-miner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Chat(t *testing.T) {
	messages := []domain.Message{
		{Role: "system", Content: "json only"},
		{Role: "user", Content: "analyze"},
	}

	t.Run("Returns the first choice content", func(t *testing.T) {
		var gotAuth string
		var gotReq chatRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			fmt.Fprint(w, `{"choices":[{"message":{"content":"{\"ideas\":[]}"}}]}`)
		}))
		t.Cleanup(srv.Close)

		client := NewClient(srv.URL, "sk-test", "kimi-k2.5", &http.Client{Timeout: 5 * time.Second})
		content, err := client.Chat(context.Background(), messages)

		require.NoError(t, err)
		assert.Equal(t, `{"ideas":[]}`, content)
		assert.Equal(t, "Bearer sk-test", gotAuth)
		assert.Equal(t, "kimi-k2.5", gotReq.Model)
		assert.Len(t, gotReq.Messages, 2)
		assert.Equal(t, chatMaxTokens, gotReq.MaxTokens)
	})

	t.Run("Non-200 surfaces status and body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusPaymentRequired)
		}))
		t.Cleanup(srv.Close)

		client := NewClient(srv.URL, "sk-test", "kimi-k2.5", srv.Client())
		_, err := client.Chat(context.Background(), messages)

		assert.ErrorContains(t, err, "402")
		assert.ErrorContains(t, err, "quota exceeded")
	})

	t.Run("Empty choices is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"choices":[]}`)
		}))
		t.Cleanup(srv.Close)

		client := NewClient(srv.URL, "sk-test", "kimi-k2.5", srv.Client())
		_, err := client.Chat(context.Background(), messages)

		assert.ErrorContains(t, err, "no choices")
	})
}

func TestClient_Version(t *testing.T) {
	client := NewClient("http://localhost", "k", "kimi-k2.5", nil)
	assert.Equal(t, "kimi-k2.5", client.Version())
}
