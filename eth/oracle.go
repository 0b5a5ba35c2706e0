package eth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// PriceOracle resolves the ETH price of an ERC-20 token.
type PriceOracle interface {
	PriceInEth(tokenAddress string) (decimal.Decimal, error)
}

type dexScreenerOracle struct {
	baseURL string
	http    *http.Client
}

// NewDexScreenerOracle creates an oracle backed by the DexScreener pairs API.
func NewDexScreenerOracle(baseURL string) PriceOracle {
	return &dexScreenerOracle{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type dexScreenerPair struct {
	ChainID     string `json:"chainId"`
	PriceNative string `json:"priceNative"`
	Liquidity   struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
}

type dexScreenerResponse struct {
	Pairs []dexScreenerPair `json:"pairs"`
}

// PriceInEth returns the token's price in ETH from the deepest Base pool.
func (x *dexScreenerOracle) PriceInEth(tokenAddress string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/latest/dex/tokens/%s", x.baseURL, tokenAddress)
	res, err := x.http.Get(url)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "error fetching token price")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return decimal.Zero, errors.Errorf("price oracle returned status %d", res.StatusCode)
	}

	var body dexScreenerResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return decimal.Zero, errors.Wrap(err, "error decoding price response")
	}

	var best *dexScreenerPair
	for i := range body.Pairs {
		pair := &body.Pairs[i]
		if pair.ChainID != "base" {
			continue
		}
		if best == nil || pair.Liquidity.USD > best.Liquidity.USD {
			best = pair
		}
	}
	if best == nil {
		return decimal.Zero, errors.New("no base pool found for token")
	}

	price, err := decimal.NewFromString(best.PriceNative)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "error parsing pool price")
	}
	if price.Sign() <= 0 {
		return decimal.Zero, errors.New("pool reported non-positive price")
	}
	return price, nil
}
