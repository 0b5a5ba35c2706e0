package client

import (
	"context"
	"time"

	"math/big"

	"github.com/bankrclub/registrar/models"
	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	log "github.com/sirupsen/logrus"
)

type EthereumClient interface {
	GetBlockNumber() (uint64, error)
	GetChainID() (*big.Int, error)
	GetClient() *ethclient.Client
	GetTransactionByHash(txHash string) (*types.Transaction, bool, error)
	GetTransactionReceipt(txHash string) (*types.Receipt, error)
	CallContract(msg ethereum.CallMsg) ([]byte, error)
	PendingNonceAt(address common.Address) (uint64, error)
	SuggestGasPrice() (*big.Int, error)
	SendTransaction(tx *types.Transaction) error
}

type ethereumClient struct {
	client  *ethclient.Client
	timeout time.Duration
}

func (c *ethereumClient) GetClient() *ethclient.Client {
	return c.client
}

func (c *ethereumClient) GetBlockNumber() (uint64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	blockNumber, err := c.client.BlockNumber(ctx)
	if err != nil {
		return 0, err
	}

	return blockNumber, nil
}

func (c *ethereumClient) GetChainID() (*big.Int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	chainID, err := c.client.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	return chainID, nil
}

func (c *ethereumClient) GetTransactionByHash(txHash string) (*types.Transaction, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	tx, isPending, err := c.client.TransactionByHash(ctx, common.HexToHash(txHash))
	return tx, isPending, err
}

func (c *ethereumClient) GetTransactionReceipt(txHash string) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return c.client.TransactionReceipt(ctx, common.HexToHash(txHash))
}

func (c *ethereumClient) CallContract(msg ethereum.CallMsg) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return c.client.CallContract(ctx, msg, nil)
}

func (c *ethereumClient) PendingNonceAt(address common.Address) (uint64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return c.client.PendingNonceAt(ctx, address)
}

func (c *ethereumClient) SuggestGasPrice() (*big.Int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return c.client.SuggestGasPrice(ctx)
}

func (c *ethereumClient) SendTransaction(tx *types.Transaction) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return c.client.SendTransaction(ctx, tx)
}

// NewClient dials the configured RPC endpoint and validates the chain id.
func NewClient(config models.ChainConfig) (EthereumClient, error) {
	log.Debugln("[ETH]", "Connecting to chain", "uri", config.RPCURL)
	rpcClient, err := ethclient.Dial(config.RPCURL)
	if err != nil {
		return nil, err
	}

	c := &ethereumClient{
		client:  rpcClient,
		timeout: time.Duration(config.RPCTimeoutMillis) * time.Millisecond,
	}

	chainID, err := c.GetChainID()
	if err != nil {
		return nil, err
	}
	if chainID.String() != config.ChainID {
		log.Errorln("[ETH]", "Chain ID Mismatch", "expected", config.ChainID, "got", chainID.String())
		return nil, errChainIDMismatch
	}

	log.Infoln("[ETH]", "Validated network", "chainID", chainID.String())
	return c, nil
}
