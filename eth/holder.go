package eth

import (
	"math/big"
	"strings"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bankrclub/registrar/eth/client"
)

// HolderVerifier answers whether a wallet holds at least one token of the
// gating NFT collection on Base.
type HolderVerifier interface {
	IsHolder(address string) (bool, error)
	FirstTokenId(address string) *int64
}

var (
	balanceOfSelector           = crypto.Keccak256([]byte("balanceOf(address)"))[:4]
	tokenOfOwnerByIndexSelector = crypto.Keccak256([]byte("tokenOfOwnerByIndex(address,uint256)"))[:4]
	tokenURISelector            = crypto.Keccak256([]byte("tokenURI(uint256)"))[:4]
)

type holderVerifier struct {
	client     client.EthereumClient
	nftAddress common.Address
}

// NewHolderVerifier creates a verifier against the configured gate collection.
func NewHolderVerifier(c client.EthereumClient, nftAddress string) HolderVerifier {
	return &holderVerifier{
		client:     c,
		nftAddress: common.HexToAddress(nftAddress),
	}
}

// IsHolder calls balanceOf on the gate collection. RPC failures are returned
// as errors so the caller can refuse the claim rather than let it through.
func (x *holderVerifier) IsHolder(address string) (bool, error) {
	if !strings.HasPrefix(address, "0x") || len(address) != 42 {
		return false, errors.New("invalid address")
	}

	data := append([]byte{}, balanceOfSelector...)
	data = append(data, common.LeftPadBytes(common.HexToAddress(address).Bytes(), 32)...)

	res, err := x.client.CallContract(ethereum.CallMsg{
		To:   &x.nftAddress,
		Data: data,
	})
	if err != nil {
		return false, errors.Wrap(err, "error calling balanceOf")
	}
	if len(res) < 32 {
		return false, errors.New("short balanceOf response")
	}

	balance := new(big.Int).SetBytes(res)
	return balance.Sign() > 0, nil
}

// FirstTokenId returns the holder's first token id via tokenOfOwnerByIndex.
// The collection may not implement the enumerable extension, so any failure
// here is logged and swallowed.
func (x *holderVerifier) FirstTokenId(address string) *int64 {
	data := append([]byte{}, tokenOfOwnerByIndexSelector...)
	data = append(data, common.LeftPadBytes(common.HexToAddress(address).Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(big.NewInt(0).Bytes(), 32)...)

	res, err := x.client.CallContract(ethereum.CallMsg{
		To:   &x.nftAddress,
		Data: data,
	})
	if err != nil {
		log.WithError(err).Debug("[HOLDER] tokenOfOwnerByIndex unavailable")
		return nil
	}
	if len(res) < 32 {
		return nil
	}

	tokenId := new(big.Int).SetBytes(res)
	if !tokenId.IsInt64() {
		return nil
	}
	id := tokenId.Int64()
	return &id
}
