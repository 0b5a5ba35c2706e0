package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionRegistrations = "registrations"
	CollectionPayments      = "payments"
	CollectionNonces        = "nonces"
	CollectionHealthChecks  = "healthchecks"
)

type PaymentToken string

const (
	PaymentTokenETH     PaymentToken = "ETH"
	PaymentTokenBNKR    PaymentToken = "BNKR"
	PaymentTokenCLAWDIA PaymentToken = "CLAWDIA"
)

// ParsePaymentToken maps a request string onto an accepted payment token,
// falling back to ETH for anything unrecognized.
func ParsePaymentToken(s string) PaymentToken {
	switch PaymentToken(s) {
	case PaymentTokenBNKR:
		return PaymentTokenBNKR
	case PaymentTokenCLAWDIA:
		return PaymentTokenCLAWDIA
	default:
		return PaymentTokenETH
	}
}

type Registration struct {
	Id                *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Subdomain         string              `bson:"subdomain" json:"subdomain"`
	Address           string              `bson:"address" json:"address"`
	TokenId           *int64              `bson:"token_id,omitempty" json:"tokenId,omitempty"`
	IsPremium         bool                `bson:"is_premium" json:"isPremium"`
	PaymentToken      PaymentToken        `bson:"payment_token" json:"paymentToken"`
	PremiumPaidEth    string              `bson:"premium_paid_eth,omitempty" json:"premiumPaidEth,omitempty"`
	BankrTokenAddress string              `bson:"bankr_token_address,omitempty" json:"bankrTokenAddress,omitempty"`
	BankrTokenSymbol  string              `bson:"bankr_token_symbol,omitempty" json:"bankrTokenSymbol,omitempty"`
	BankrPoolId       string              `bson:"bankr_pool_id,omitempty" json:"bankrPoolId,omitempty"`
	BankrTxHash       string              `bson:"bankr_tx_hash,omitempty" json:"bankrTxHash,omitempty"`
	RegisteredAt      time.Time           `bson:"registered_at" json:"registeredAt"`
}

// PaymentReceipt marks an on-chain transaction hash as consumed by a
// premium claim. The unique index on transaction_hash is the replay guard.
type PaymentReceipt struct {
	Id              *primitive.ObjectID `bson:"_id,omitempty"`
	TransactionHash string              `bson:"transaction_hash"`
	Claimer         string              `bson:"claimer"`
	Subdomain       string              `bson:"subdomain"`
	CreatedAt       time.Time           `bson:"created_at"`
}

// Nonce is a single-use signing challenge with a fixed TTL.
type Nonce struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty"`
	Nonce     string              `bson:"nonce"`
	CreatedAt time.Time           `bson:"created_at"`
}
