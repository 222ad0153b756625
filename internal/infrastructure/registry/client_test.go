package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/refdata/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.RegistryConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, nil)
}

func TestClient_Lookup(t *testing.T) {
	t.Run("decodes entity card", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/entities/7707083893", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"inn": "7707083893",
				"kpp": "770701001",
				"ogrn": "1027700132195",
				"short_name": "ПАО Сбербанк",
				"full_name": "Публичное акционерное общество Сбербанк",
				"opf": "ПАО",
				"entity_type": "LEGAL",
				"capital": "67760844000.00",
				"address": {"postal_code": "117312", "city": "Москва", "street": "ул Вавилова", "house": "д 19"},
				"branches": [{"kpp": "773643001", "name": "Московский банк", "address": {"city": "Москва"}}]
			}`))
		}))
		defer server.Close()

		card, err := newTestClient(server.URL).Lookup(context.Background(), "7707083893")

		require.NoError(t, err)
		assert.Equal(t, "7707083893", card.INN)
		require.NotNil(t, card.KPP)
		assert.Equal(t, "770701001", *card.KPP)
		assert.True(t, card.Capital.Equal(decimal.RequireFromString("67760844000.00")))
		assert.Equal(t, "117312, Москва, ул Вавилова, д 19", card.Address.Format())
	})

	t.Run("maps 404 to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Lookup(context.Background(), "0000000000")

		assert.ErrorIs(t, err, ErrEntityNotFound)
	})

	t.Run("maps server errors to unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Lookup(context.Background(), "7707083893")

		assert.ErrorIs(t, err, ErrRegistryUnavailable)
	})

	t.Run("maps transport failure to unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // connection refused

		_, err := newTestClient(server.URL).Lookup(context.Background(), "7707083893")

		assert.ErrorIs(t, err, ErrRegistryUnavailable)
	})
}

func TestEntityCard_MatchesKPP(t *testing.T) {
	head := "770701001"
	card := &EntityCard{
		INN:      "7707083893",
		KPP:      &head,
		Branches: []Branch{{KPP: "773643001", Name: "Branch"}},
	}

	assert.True(t, card.MatchesKPP("770701001"))
	assert.True(t, card.MatchesKPP("773643001"))
	assert.False(t, card.MatchesKPP("999999999"))

	branch := card.BranchByKPP("773643001")
	require.NotNil(t, branch)
	assert.Equal(t, "Branch", branch.Name)
	assert.Nil(t, card.BranchByKPP("999999999"))
}
