package eth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDexScreenerOracle(t *testing.T) {
	t.Run("Picks Deepest Base Pool", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/latest/dex/tokens/0xtoken", r.URL.Path)
			w.Write([]byte(`{"pairs": [
				{"chainId": "ethereum", "priceNative": "0.9", "liquidity": {"usd": 9000000}},
				{"chainId": "base", "priceNative": "0.00001", "liquidity": {"usd": 50000}},
				{"chainId": "base", "priceNative": "0.00002", "liquidity": {"usd": 250000}}
			]}`))
		}))
		defer server.Close()

		price, err := NewDexScreenerOracle(server.URL).PriceInEth("0xtoken")
		assert.Nil(t, err)
		assert.Equal(t, "0.00002", price.String())
	})

	t.Run("No Base Pool", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"pairs": [{"chainId": "ethereum", "priceNative": "0.9", "liquidity": {"usd": 1}}]}`))
		}))
		defer server.Close()

		_, err := NewDexScreenerOracle(server.URL).PriceInEth("0xtoken")
		assert.Error(t, err)
	})

	t.Run("Upstream Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewDexScreenerOracle(server.URL).PriceInEth("0xtoken")
		assert.Error(t, err)
	})

	t.Run("Non Positive Price", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"pairs": [{"chainId": "base", "priceNative": "0", "liquidity": {"usd": 100}}]}`))
		}))
		defer server.Close()

		_, err := NewDexScreenerOracle(server.URL).PriceInEth("0xtoken")
		assert.Error(t, err)
	})
}
