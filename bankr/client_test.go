package bankr

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/bankrclub/registrar/models"
)

func init() {
	log.SetOutput(io.Discard)
}

func testLauncher(url string, partnerKey string) Launcher {
	return NewLauncher(models.BankrConfig{
		APIURL:      url,
		PartnerKey:  partnerKey,
		TimeoutSecs: 15,
	})
}

func testParams() LaunchParams {
	return LaunchParams{
		Name:     "alice",
		FullName: "alice.bankrclub.eth",
		FeeRecipient: FeeRecipient{
			Type:  "wallet",
			Value: "0x1111111111111111111111111111111111111111",
		},
		TweetURL: "https://x.com/alice/status/123",
	}
}

func TestTokenSymbol(t *testing.T) {
	assert.Equal(t, "ALICE", TokenSymbol("alice"))
	assert.Equal(t, "ALICEBOB", TokenSymbol("alice-bob"))
	assert.Equal(t, "VERYLONGNA", TokenSymbol("verylongname"))
}

func TestLaunch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var received deployRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/deploy", r.URL.Path)
			assert.Equal(t, "partner-key", r.Header.Get("X-Partner-Key"))
			assert.Nil(t, json.NewDecoder(r.Body).Decode(&received))
			w.Write([]byte(`{"success": true, "data": {
				"tokenAddress": "0xabc", "tokenSymbol": "ALICE", "poolId": "pool-1", "txHash": "0xdef"
			}}`))
		}))
		defer server.Close()

		result, err := testLauncher(server.URL, "partner-key").Launch(testParams())
		assert.Nil(t, err)
		assert.Equal(t, "0xabc", result.TokenAddress)
		assert.Equal(t, "ALICE", result.TokenSymbol)
		assert.Equal(t, "pool-1", result.PoolId)

		assert.Equal(t, "Alice", received.TokenName)
		assert.Equal(t, "ALICE", received.TokenSymbol)
		assert.Equal(t, "https://alice.bankrclub.eth.limo", received.WebsiteURL)
		assert.Equal(t, "https://x.com/alice/status/123", received.TweetURL)
		assert.Equal(t, FeeRecipient{Type: "wallet", Value: "0x1111111111111111111111111111111111111111"}, received.FeeRecipient)
		assert.False(t, received.SimulateOnly)
	})

	t.Run("Forwards Social Fee Recipient", func(t *testing.T) {
		var received deployRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Nil(t, json.NewDecoder(r.Body).Decode(&received))
			w.Write([]byte(`{"success": true, "data": {"tokenAddress": "0xabc"}}`))
		}))
		defer server.Close()

		params := testParams()
		params.FeeRecipient = FeeRecipient{Type: "x", Value: "@alice"}
		_, err := testLauncher(server.URL, "partner-key").Launch(params)
		assert.Nil(t, err)
		assert.Equal(t, FeeRecipient{Type: "x", Value: "@alice"}, received.FeeRecipient)
	})

	t.Run("Simulates Without Partner Key", func(t *testing.T) {
		var received deployRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("X-Partner-Key"))
			assert.Nil(t, json.NewDecoder(r.Body).Decode(&received))
			w.Write([]byte(`{"success": true, "data": {"tokenAddress": "0xabc"}}`))
		}))
		defer server.Close()

		_, err := testLauncher(server.URL, "").Launch(testParams())
		assert.Nil(t, err)
		assert.True(t, received.SimulateOnly)
	})

	t.Run("Rate Limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := testLauncher(server.URL, "partner-key").Launch(testParams())
		var launchErr *LaunchError
		assert.ErrorAs(t, err, &launchErr)
		assert.Equal(t, LaunchRateLimited, launchErr.Code)
		assert.Equal(t, "Token launch is rate limited, try again later", launchErr.Message())
	})

	t.Run("Upstream Error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success": false, "error": "deploy failed"}`))
		}))
		defer server.Close()

		_, err := testLauncher(server.URL, "partner-key").Launch(testParams())
		var launchErr *LaunchError
		assert.ErrorAs(t, err, &launchErr)
		assert.Equal(t, LaunchAPIError, launchErr.Code)
	})

	t.Run("Rejected With 200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": false, "error": "symbol taken"}`))
		}))
		defer server.Close()

		_, err := testLauncher(server.URL, "partner-key").Launch(testParams())
		var launchErr *LaunchError
		assert.ErrorAs(t, err, &launchErr)
		assert.Equal(t, LaunchAPIError, launchErr.Code)
	})

	t.Run("Timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		slow := &launcher{
			apiURL:     server.URL,
			partnerKey: "partner-key",
			timeout:    50 * time.Millisecond,
			http:       &http.Client{Timeout: 50 * time.Millisecond},
		}
		_, err := slow.Launch(testParams())
		var launchErr *LaunchError
		assert.ErrorAs(t, err, &launchErr)
		assert.Equal(t, LaunchTimeout, launchErr.Code)
	})
}
