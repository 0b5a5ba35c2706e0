package auth

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethCrypto "github.com/ethereum/go-ethereum/crypto"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidAddress reports whether s looks like an EVM address.
func ValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// BuildSignMessage is the fixed template a wallet signs to claim a name.
// The address and nonce are embedded so the signature binds both.
func BuildSignMessage(domain string, address string, nonce string) string {
	return fmt.Sprintf(
		"%s agent registration\n\nI am registering a %s subdomain.\nAddress: %s\nNonce: %s",
		domain, domain, address, nonce,
	)
}

// VerifyPersonalSign checks an EIP-191 personal_sign signature over message
// against the claimed address. Returns false for malformed or mismatched
// signatures; errors are reserved for undecodable input.
func VerifyPersonalSign(address string, message string, signature string) (bool, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, fmt.Errorf("decoding signature: %w", err)
	}
	if len(sig) != 65 {
		return false, fmt.Errorf("signature must be 65 bytes, got %d", len(sig))
	}

	// wallets produce V as 27/28, go-ethereum expects 0/1
	if sig[64] >= 27 {
		sig = append([]byte{}, sig...)
		sig[64] -= 27
	}
	if sig[64] > 1 {
		return false, nil
	}

	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	hash := ethCrypto.Keccak256([]byte(prefixed))

	pubKey, err := ethCrypto.SigToPub(hash, sig)
	if err != nil {
		return false, nil
	}

	recovered := ethCrypto.PubkeyToAddress(*pubKey).Hex()
	return strings.EqualFold(recovered, address), nil
}
