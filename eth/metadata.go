package eth

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/bankrclub/registrar/eth/client"
)

const ipfsGateway = "https://ipfs.io/ipfs/"

// MetadataFetcher resolves the image URL of a gate collection token. Used to
// decorate launched tokens, so every failure degrades to an empty string.
type MetadataFetcher interface {
	TokenImage(tokenId int64) string
}

type metadataFetcher struct {
	client     client.EthereumClient
	nftAddress common.Address
	http       *http.Client
}

func NewMetadataFetcher(c client.EthereumClient, nftAddress string) MetadataFetcher {
	return &metadataFetcher{
		client:     c,
		nftAddress: common.HexToAddress(nftAddress),
		http:       &http.Client{Timeout: 5 * time.Second},
	}
}

func (x *metadataFetcher) TokenImage(tokenId int64) string {
	uri := x.tokenURI(tokenId)
	if uri == "" {
		return ""
	}

	raw := x.fetchMetadata(uri)
	if raw == nil {
		return ""
	}

	var meta struct {
		Image string `json:"image"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		log.WithError(err).Debug("[METADATA] error decoding token metadata")
		return ""
	}
	return resolveIPFS(meta.Image)
}

func (x *metadataFetcher) tokenURI(tokenId int64) string {
	data := append([]byte{}, tokenURISelector...)
	data = append(data, common.LeftPadBytes(big.NewInt(tokenId).Bytes(), 32)...)

	res, err := x.client.CallContract(ethereum.CallMsg{
		To:   &x.nftAddress,
		Data: data,
	})
	if err != nil {
		log.WithError(err).Debug("[METADATA] error calling tokenURI")
		return ""
	}
	return unpackString(res)
}

func (x *metadataFetcher) fetchMetadata(uri string) []byte {
	if strings.HasPrefix(uri, "data:application/json;base64,") {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:application/json;base64,"))
		if err != nil {
			return nil
		}
		return raw
	}

	url := resolveIPFS(uri)
	if !strings.HasPrefix(url, "http") {
		return nil
	}

	res, err := x.http.Get(url)
	if err != nil {
		log.WithError(err).Debug("[METADATA] error fetching token metadata")
		return nil
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil
	}
	return raw
}

func resolveIPFS(uri string) string {
	if strings.HasPrefix(uri, "ipfs://") {
		return ipfsGateway + strings.TrimPrefix(uri, "ipfs://")
	}
	return uri
}

// unpackString decodes a single ABI-encoded string return value.
func unpackString(data []byte) string {
	if len(data) < 64 {
		return ""
	}
	offset := new(big.Int).SetBytes(data[:32])
	if !offset.IsInt64() || offset.Int64()+32 > int64(len(data)) {
		return ""
	}
	start := offset.Int64()
	length := new(big.Int).SetBytes(data[start : start+32])
	if !length.IsInt64() || start+32+length.Int64() > int64(len(data)) {
		return ""
	}
	return string(data[start+32 : start+32+length.Int64()])
}
