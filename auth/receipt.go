package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ReceiptTTL bounds how long a sign-in receipt stays valid after issuance.
const ReceiptTTL = 24 * time.Hour

// ReceiptPayload is the claim set inside a signed sign-in receipt. The
// receipt is minted by the sign-in verify flow and presented on claims in
// place of a fresh signature.
type ReceiptPayload struct {
	Address       string `json:"address"`
	AgentId       int64  `json:"agentId"`
	AgentRegistry string `json:"agentRegistry"`
	ChainId       int64  `json:"chainId"`
	IssuedAt      int64  `json:"issuedAt"`
}

func receiptMAC(encoded string, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(encoded))
	return mac.Sum(nil)
}

// CreateReceipt mints a receipt token: base64url(payload).base64url(hmac).
func CreateReceipt(payload ReceiptPayload, secret string) (string, error) {
	if payload.IssuedAt == 0 {
		payload.IssuedAt = time.Now().Unix()
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "encoding receipt payload")
	}
	encoded := base64.RawURLEncoding.EncodeToString(raw)
	sig := base64.RawURLEncoding.EncodeToString(receiptMAC(encoded, secret))
	return encoded + "." + sig, nil
}

// VerifyReceipt checks the token's MAC and freshness against the server
// secret. Returns nil for any invalid, tampered or expired token.
func VerifyReceipt(token string, secret string) *ReceiptPayload {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return nil
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil
	}
	if !hmac.Equal(sig, receiptMAC(parts[0], secret)) {
		return nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil
	}
	var payload ReceiptPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	if payload.Address == "" {
		return nil
	}

	issued := time.Unix(payload.IssuedAt, 0)
	if time.Since(issued) > ReceiptTTL || issued.After(time.Now().Add(time.Minute)) {
		return nil
	}

	return &payload
}
