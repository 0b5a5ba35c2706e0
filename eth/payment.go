package eth

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/bankrclub/registrar/eth/client"
	"github.com/bankrclub/registrar/models"
)

const (
	// keccak256("Transfer(address,address,uint256)")
	transferTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

	erc20Decimals = 18
)

// Verification failure codes surfaced to claimers.
const (
	PaymentNotFound           = "NOT_FOUND"
	PaymentTxFailed           = "TX_FAILED"
	PaymentWrongSender        = "WRONG_SENDER"
	PaymentWrongRecipient     = "WRONG_RECIPIENT"
	PaymentInsufficientAmount = "INSUFFICIENT_AMOUNT"
	PaymentNoTransferFound    = "NO_TRANSFER_FOUND"
)

// VerifyError describes why an on-chain payment was rejected.
type VerifyError struct {
	Code   string
	Detail string
}

func (e *VerifyError) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// VerifyParams identifies the payment a claimer is presenting.
type VerifyParams struct {
	TxHash      string
	Payer       string
	RequiredEth decimal.Decimal
	Token       models.PaymentToken
}

// PaymentVerifier checks that a confirmed Base transaction pays the premium
// price to the treasury.
type PaymentVerifier interface {
	Verify(params VerifyParams) error
}

type paymentVerifier struct {
	client         client.EthereumClient
	oracle         PriceOracle
	chainId        *big.Int
	treasury       common.Address
	tokenAddresses map[models.PaymentToken]common.Address
	tolerance      decimal.Decimal
}

// NewPaymentVerifier creates a verifier for the given treasury and accepted
// payment tokens. tolerancePercent is the fraction of the quoted token amount
// that still clears, expressed as a whole percentage.
func NewPaymentVerifier(
	c client.EthereumClient,
	oracle PriceOracle,
	config models.PaymentConfig,
	chainId int64,
) PaymentVerifier {
	tokens := make(map[models.PaymentToken]common.Address, len(config.TokenAddresses))
	for symbol, address := range config.TokenAddresses {
		tokens[models.PaymentToken(symbol)] = common.HexToAddress(address)
	}
	return &paymentVerifier{
		client:         c,
		oracle:         oracle,
		chainId:        big.NewInt(chainId),
		treasury:       common.HexToAddress(config.TreasuryAddress),
		tokenAddresses: tokens,
		tolerance:      decimal.NewFromInt(config.TolerancePercent).Div(decimal.NewFromInt(100)),
	}
}

func (x *paymentVerifier) Verify(params VerifyParams) error {
	tx, pending, err := x.client.GetTransactionByHash(params.TxHash)
	if err != nil || tx == nil || pending {
		return &VerifyError{Code: PaymentNotFound, Detail: "transaction not found or pending"}
	}

	receipt, err := x.client.GetTransactionReceipt(params.TxHash)
	if err != nil || receipt == nil {
		return &VerifyError{Code: PaymentNotFound, Detail: "receipt not available"}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return &VerifyError{Code: PaymentTxFailed, Detail: "transaction reverted"}
	}

	sender, err := types.Sender(types.LatestSignerForChainID(x.chainId), tx)
	if err != nil {
		return errors.Wrap(err, "error recovering transaction sender")
	}
	if !strings.EqualFold(sender.Hex(), params.Payer) {
		return &VerifyError{Code: PaymentWrongSender, Detail: "transaction was not sent by the claiming wallet"}
	}

	if params.Token == models.PaymentTokenETH {
		return x.verifyNative(tx, params)
	}
	return x.verifyTokenTransfer(receipt, params)
}

func (x *paymentVerifier) verifyNative(tx *types.Transaction, params VerifyParams) error {
	if tx.To() == nil || *tx.To() != x.treasury {
		return &VerifyError{Code: PaymentWrongRecipient, Detail: "payment was not sent to the treasury"}
	}

	requiredWei := params.RequiredEth.Shift(erc20Decimals).BigInt()
	if tx.Value().Cmp(requiredWei) < 0 {
		return &VerifyError{
			Code:   PaymentInsufficientAmount,
			Detail: fmt.Sprintf("sent %s wei, required %s wei", tx.Value().String(), requiredWei.String()),
		}
	}
	return nil
}

// verifyTokenTransfer looks for a Transfer log from the payer to the treasury
// emitted by the accepted token contract. The required token amount comes from
// the price oracle. If the oracle is unavailable a matching transfer of any
// amount is accepted, since the alternative is blocking paid claims on a third
// party outage.
func (x *paymentVerifier) verifyTokenTransfer(receipt *types.Receipt, params VerifyParams) error {
	tokenAddress, ok := x.tokenAddresses[params.Token]
	if !ok {
		return &VerifyError{Code: PaymentNoTransferFound, Detail: "unsupported payment token"}
	}

	payerTopic := common.HexToHash(common.HexToAddress(params.Payer).Hex())
	treasuryTopic := common.HexToHash(x.treasury.Hex())

	var amount *big.Int
	for _, txLog := range receipt.Logs {
		if txLog.Address != tokenAddress || len(txLog.Topics) != 3 {
			continue
		}
		if txLog.Topics[0] != common.HexToHash(transferTopic) {
			continue
		}
		if txLog.Topics[1] != payerTopic || txLog.Topics[2] != treasuryTopic {
			continue
		}
		amount = new(big.Int).SetBytes(txLog.Data)
		break
	}
	if amount == nil {
		return &VerifyError{Code: PaymentNoTransferFound, Detail: "no matching token transfer to the treasury"}
	}

	price, err := x.oracle.PriceInEth(tokenAddress.Hex())
	if err != nil {
		log.WithError(err).WithField("token", params.Token).
			Warn("[PAYMENT] price oracle unavailable, accepting transfer without amount check")
		return nil
	}

	requiredTokens := params.RequiredEth.Div(price).Mul(x.tolerance)
	sent := decimal.NewFromBigInt(amount, -erc20Decimals)
	if sent.LessThan(requiredTokens) {
		return &VerifyError{
			Code:   PaymentInsufficientAmount,
			Detail: fmt.Sprintf("sent %s %s, required at least %s", sent.String(), params.Token, requiredTokens.String()),
		}
	}
	return nil
}
