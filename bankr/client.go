package bankr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bankrclub/registrar/models"
)

// Launch failure codes. Launch failures never undo a registration, they are
// reported alongside the successful claim.
const (
	LaunchRateLimited = "rate_limited"
	LaunchAPIError    = "api_error"
	LaunchTimeout     = "timeout"
	LaunchUnknown     = "unknown"
)

var launchMessages = map[string]string{
	LaunchRateLimited: "Token launch is rate limited, try again later",
	LaunchAPIError:    "Token launch service rejected the request",
	LaunchTimeout:     "Token launch service timed out",
	LaunchUnknown:     "Token launch failed",
}

// LaunchError carries a stable code for API consumers.
type LaunchError struct {
	Code string
	Err  error
}

func (e *LaunchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
	}
	return e.Code
}

func (e *LaunchError) Message() string {
	if msg, ok := launchMessages[e.Code]; ok {
		return msg
	}
	return launchMessages[LaunchUnknown]
}

// FeeRecipient is where trading fees go. Type is one of wallet, x,
// farcaster or ens; non-wallet types carry the handle in Value.
type FeeRecipient struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// LaunchParams describes the token to deploy for a claimed subdomain.
type LaunchParams struct {
	Name         string
	FullName     string
	FeeRecipient FeeRecipient
	TweetURL     string
	ImageURL     string
}

// LaunchResult is the deployed token's identity.
type LaunchResult struct {
	TokenAddress string
	TokenSymbol  string
	PoolId       string
	TxHash       string
}

// Launcher deploys a personal token through the Bankr deploy API.
type Launcher interface {
	Launch(params LaunchParams) (*LaunchResult, error)
}

type launcher struct {
	apiURL     string
	partnerKey string
	timeout    time.Duration
	http       *http.Client
}

func NewLauncher(config models.BankrConfig) Launcher {
	timeout := time.Duration(config.TimeoutSecs) * time.Second
	return &launcher{
		apiURL:     config.APIURL,
		partnerKey: config.PartnerKey,
		timeout:    timeout,
		http:       &http.Client{Timeout: timeout},
	}
}

type deployRequest struct {
	TokenName    string       `json:"tokenName"`
	TokenSymbol  string       `json:"tokenSymbol"`
	Description  string       `json:"description"`
	WebsiteURL   string       `json:"websiteUrl"`
	TweetURL     string       `json:"tweetUrl,omitempty"`
	Image        string       `json:"image,omitempty"`
	FeeRecipient FeeRecipient `json:"feeRecipient"`
	SimulateOnly bool         `json:"simulateOnly,omitempty"`
}

type deployResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    struct {
		TokenAddress string `json:"tokenAddress"`
		TokenSymbol  string `json:"tokenSymbol"`
		PoolId       string `json:"poolId"`
		TxHash       string `json:"txHash"`
	} `json:"data"`
}

// TokenSymbol derives the ticker from a subdomain label.
func TokenSymbol(name string) string {
	symbol := strings.ToUpper(name)
	symbol = strings.ReplaceAll(symbol, "-", "")
	if len(symbol) > 10 {
		symbol = symbol[:10]
	}
	return symbol
}

func capitalize(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func (x *launcher) Launch(params LaunchParams) (*LaunchResult, error) {
	body := deployRequest{
		TokenName:    capitalize(params.Name),
		TokenSymbol:  TokenSymbol(params.Name),
		Description:  fmt.Sprintf("Personal token for %s, a BankrClub member", params.FullName),
		WebsiteURL:   fmt.Sprintf("https://%s.limo", params.FullName),
		TweetURL:     params.TweetURL,
		Image:        params.ImageURL,
		FeeRecipient: params.FeeRecipient,
		// Without partner credentials the deploy API only simulates.
		SimulateOnly: x.partnerKey == "",
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &LaunchError{Code: LaunchUnknown, Err: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), x.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.apiURL+"/deploy", bytes.NewReader(payload))
	if err != nil {
		return nil, &LaunchError{Code: LaunchUnknown, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if x.partnerKey != "" {
		req.Header.Set("X-Partner-Key", x.partnerKey)
	}

	res, err := x.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "deadline exceeded") {
			return nil, &LaunchError{Code: LaunchTimeout, Err: err}
		}
		return nil, &LaunchError{Code: LaunchUnknown, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests {
		return nil, &LaunchError{Code: LaunchRateLimited, Err: errors.New("deploy api rate limited")}
	}

	var parsed deployResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, &LaunchError{Code: LaunchAPIError, Err: errors.Wrap(err, "error decoding deploy response")}
	}

	if res.StatusCode != http.StatusOK || !parsed.Success {
		detail := parsed.Error
		if detail == "" {
			detail = fmt.Sprintf("deploy api returned status %d", res.StatusCode)
		}
		return nil, &LaunchError{Code: LaunchAPIError, Err: errors.New(detail)}
	}

	log.WithFields(log.Fields{
		"name":          params.Name,
		"token_address": parsed.Data.TokenAddress,
		"symbol":        parsed.Data.TokenSymbol,
	}).Info("[BANKR] token launched")

	return &LaunchResult{
		TokenAddress: parsed.Data.TokenAddress,
		TokenSymbol:  parsed.Data.TokenSymbol,
		PoolId:       parsed.Data.PoolId,
		TxHash:       parsed.Data.TxHash,
	}, nil
}
