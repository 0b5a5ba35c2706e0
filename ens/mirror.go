package ens

import (
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bankrclub/registrar/eth/client"
	"github.com/bankrclub/registrar/models"
)

const setSubnodeRecordABI = `[{
	"name": "setSubnodeRecord",
	"type": "function",
	"inputs": [
		{"name": "parentNode", "type": "bytes32"},
		{"name": "label", "type": "string"},
		{"name": "owner", "type": "address"},
		{"name": "resolver", "type": "address"},
		{"name": "ttl", "type": "uint64"},
		{"name": "fuses", "type": "uint32"},
		{"name": "expiry", "type": "uint64"}
	],
	"outputs": [{"name": "node", "type": "bytes32"}]
}]`

const mirrorGasLimit = uint64(300000)

// Mirror writes claimed subdomains to the ENS NameWrapper on mainnet. The
// registry in Mongo is the source of truth so mirror failures never undo a
// registration.
type Mirror interface {
	Enabled() bool
	SignerAddress() string
	CreateSubdomain(label string, owner string) error
}

type nameWrapperMirror struct {
	client        client.EthereumClient
	wrapperABI    abi.ABI
	wrapper       common.Address
	resolver      common.Address
	parentNode    common.Hash
	expiry        uint64
	chainId       *big.Int
	signer        *ecdsa.PrivateKey
	signerAddress common.Address
	enabled       bool
}

// NewMirror creates a NameWrapper mirror from the ENS config. When disabled
// or when no signing key is configured, CreateSubdomain is a no-op.
func NewMirror(c client.EthereumClient, config models.ENSConfig, chainId int64) (Mirror, error) {
	parsed, err := abi.JSON(strings.NewReader(setSubnodeRecordABI))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing name wrapper abi")
	}

	m := &nameWrapperMirror{
		client:     c,
		wrapperABI: parsed,
		wrapper:    common.HexToAddress(config.NameWrapperAddress),
		resolver:   common.HexToAddress(config.ResolverAddress),
		parentNode: NameHash(config.Domain),
		expiry:     uint64(config.ParentExpiry),
		chainId:    big.NewInt(chainId),
		enabled:    config.MirrorEnabled,
	}
	if !config.MirrorEnabled {
		return m, nil
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(config.SigningKey, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing ens signing key")
	}
	m.signer = key
	m.signerAddress = crypto.PubkeyToAddress(key.PublicKey)
	return m, nil
}

func (x *nameWrapperMirror) Enabled() bool {
	return x.enabled
}

func (x *nameWrapperMirror) SignerAddress() string {
	if !x.enabled {
		return ""
	}
	return x.signerAddress.Hex()
}

// CreateSubdomain submits setSubnodeRecord for the label. The owner receives
// the wrapped subdomain with no fuses burned and the parent's expiry.
func (x *nameWrapperMirror) CreateSubdomain(label string, owner string) error {
	if !x.enabled {
		return nil
	}

	data, err := x.wrapperABI.Pack(
		"setSubnodeRecord",
		x.parentNode,
		label,
		common.HexToAddress(owner),
		x.resolver,
		uint64(0),
		uint32(0),
		x.expiry,
	)
	if err != nil {
		return errors.Wrap(err, "error packing setSubnodeRecord")
	}

	nonce, err := x.client.PendingNonceAt(x.signerAddress)
	if err != nil {
		return errors.Wrap(err, "error fetching signer nonce")
	}
	gasPrice, err := x.client.SuggestGasPrice()
	if err != nil {
		return errors.Wrap(err, "error fetching gas price")
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &x.wrapper,
		Value:    big.NewInt(0),
		Gas:      mirrorGasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(x.chainId), x.signer)
	if err != nil {
		return errors.Wrap(err, "error signing mirror transaction")
	}

	if err := x.client.SendTransaction(signed); err != nil {
		return errors.Wrap(err, "error sending mirror transaction")
	}

	log.WithFields(log.Fields{
		"label":   label,
		"owner":   owner,
		"tx_hash": signed.Hash().Hex(),
	}).Info("[ENS] submitted subdomain mirror transaction")
	return nil
}
