package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	_, err := NewClient(nil)
	assert.Error(t, err)

	_, err = NewClient(&Config{})
	assert.Error(t, err)
}

func TestToEnglish(t *testing.T) {
	t.Run("returns the translated text", func(t *testing.T) {
		var got translateRequest

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/translate", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: "two kilo potatoes"})
		}))
		defer srv.Close()

		client, err := NewClient(&Config{ApiHost: srv.URL + "/"})
		require.NoError(t, err)

		assert.Equal(t, "two kilo potatoes", client.ToEnglish(context.Background(), "do kilo aloo"))
		assert.Equal(t, translateRequest{Q: "do kilo aloo", Source: "auto", Target: "en", Format: "text"}, got)
	})

	t.Run("server errors return the input unchanged", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(translateResponse{Error: "bad language"})
		}))
		defer srv.Close()

		client, err := NewClient(&Config{ApiHost: srv.URL, Source: "hi"})
		require.NoError(t, err)

		assert.Equal(t, "do kilo aloo", client.ToEnglish(context.Background(), "do kilo aloo"))
	})

	t.Run("unreachable host returns the input unchanged", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		client, err := NewClient(&Config{ApiHost: url})
		require.NoError(t, err)

		assert.Equal(t, "aadha kilo paneer", client.ToEnglish(context.Background(), "aadha kilo paneer"))
	})

	t.Run("empty text is not sent", func(t *testing.T) {
		called := false

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		client, err := NewClient(&Config{ApiHost: srv.URL})
		require.NoError(t, err)

		assert.Equal(t, "", client.ToEnglish(context.Background(), ""))
		assert.False(t, called)
	})
}

func TestPassthrough(t *testing.T) {
	assert.Equal(t, "do kilo aloo", NewPassthrough().ToEnglish(context.Background(), "do kilo aloo"))
}
