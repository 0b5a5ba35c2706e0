package service

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bankrclub/registrar/auth"
	"github.com/bankrclub/registrar/bankr"
	"github.com/bankrclub/registrar/ens"
	"github.com/bankrclub/registrar/eth"
	"github.com/bankrclub/registrar/models"
	"github.com/bankrclub/registrar/names"
	"github.com/bankrclub/registrar/registry"
)

// Conflict reasons, re-derived from the store's atomic outcome.
const (
	ReasonAddressTaken  = "ADDRESS_TAKEN"
	ReasonNameTaken     = "NAME_TAKEN"
	ReasonPaymentTxUsed = "PAYMENT_TX_USED"
)

// Fee recipient descriptor types accepted on launch requests.
var feeRecipientTypes = map[string]bool{
	"wallet":    true,
	"x":         true,
	"farcaster": true,
	"ens":       true,
}

type HolderVerifier interface {
	IsHolder(address string) (bool, error)
	FirstTokenId(address string) *int64
}

type PaymentVerifier interface {
	Verify(params eth.VerifyParams) error
}

type TokenLauncher interface {
	Launch(params bankr.LaunchParams) (*bankr.LaunchResult, error)
}

type Announcer interface {
	AnnounceClaim(fullName string, address string) error
}

type Mirror interface {
	Enabled() bool
	CreateSubdomain(label string, owner string) error
}

type MetadataFetcher interface {
	TokenImage(tokenId int64) string
}

// ClaimRequest is the claim body. Authentication is either a receipt token
// (from the X-Agent-Receipt header) or the address/nonce/signature triple.
type ClaimRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Nonce     string `json:"nonce"`
	Signature string `json:"signature"`
	Receipt   string `json:"-"`

	PaymentToken  string `json:"paymentToken"`
	PaymentTxHash string `json:"paymentTxHash"`

	LaunchToken       bool   `json:"launchToken"`
	FeeRecipientType  string `json:"feeRecipientType"`
	FeeRecipientValue string `json:"feeRecipientValue"`
	TweetURL          string `json:"tweetUrl"`
	LogoURL           string `json:"logoUrl"`
}

// TokenLaunchInfo reports the launch outcome. On failure only Error and
// Message are set; the registration itself stands either way.
type TokenLaunchInfo struct {
	Address string `json:"address,omitempty"`
	Symbol  string `json:"symbol,omitempty"`
	PoolId  string `json:"poolId,omitempty"`
	TxHash  string `json:"txHash,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type ClaimResponse struct {
	Name         string           `json:"name"`
	FullName     string           `json:"fullName"`
	Address      string           `json:"address"`
	IsPremium    bool             `json:"isPremium"`
	PaymentToken string           `json:"paymentToken,omitempty"`
	PricePaidEth string           `json:"pricePaidEth,omitempty"`
	TokenInfo    *TokenLaunchInfo `json:"tokenInfo,omitempty"`
}

// ClaimService runs the claim pipeline. All gates before the store create are
// advisory; the store re-validates under its wallet lock.
type ClaimService struct {
	store         registry.Store
	policy        *names.Policy
	nonces        *auth.NonceService
	holder        HolderVerifier
	payments      PaymentVerifier
	launcher      TokenLauncher
	announcer     Announcer
	mirror        Mirror
	metadata      MetadataFetcher
	domain        string
	receiptSecret string
}

type ClaimServiceParams struct {
	Store         registry.Store
	Policy        *names.Policy
	Nonces        *auth.NonceService
	Holder        HolderVerifier
	Payments      PaymentVerifier
	Launcher      TokenLauncher
	Announcer     Announcer
	Mirror        Mirror
	Metadata      MetadataFetcher
	Domain        string
	ReceiptSecret string
}

func NewClaimService(params ClaimServiceParams) *ClaimService {
	return &ClaimService{
		store:         params.Store,
		policy:        params.Policy,
		nonces:        params.Nonces,
		holder:        params.Holder,
		payments:      params.Payments,
		launcher:      params.Launcher,
		announcer:     params.Announcer,
		mirror:        params.Mirror,
		metadata:      params.Metadata,
		domain:        params.Domain,
		receiptSecret: params.ReceiptSecret,
	}
}

func (s *ClaimService) Domain() string {
	return s.domain
}

func (s *ClaimService) Policy() *names.Policy {
	return s.policy
}

func (s *ClaimService) Nonces() *auth.NonceService {
	return s.nonces
}

func (s *ClaimService) Store() registry.Store {
	return s.store
}

// authenticate resolves the claiming address from one of the two credential
// methods. The nonce is consumed before the signature is checked, so a failed
// signature still burns it.
func (s *ClaimService) authenticate(req *ClaimRequest) (string, *Error) {
	if req.Receipt != "" {
		payload := auth.VerifyReceipt(req.Receipt, s.receiptSecret)
		if payload == nil {
			return "", unauthorized("invalid or expired receipt")
		}
		return strings.ToLower(payload.Address), nil
	}

	if !auth.ValidAddress(req.Address) {
		return "", unauthorized("invalid address")
	}
	if req.Nonce == "" || req.Signature == "" {
		return "", unauthorized("nonce and signature are required")
	}

	fresh, err := s.nonces.Consume(req.Nonce)
	if err != nil {
		return "", serviceError("error verifying nonce")
	}
	if !fresh {
		return "", unauthorized("invalid or expired nonce")
	}

	message := auth.BuildSignMessage(s.domain, req.Address, req.Nonce)
	valid, err := auth.VerifyPersonalSign(req.Address, message, req.Signature)
	if err != nil || !valid {
		return "", unauthorized("signature verification failed")
	}
	return strings.ToLower(req.Address), nil
}

// validateLaunchFields normalizes the launch extras in place. Unrecognized
// recipient types fall back to wallet, and a tweet link that is not an x.com
// or twitter.com URL is dropped rather than failing the claim.
func validateLaunchFields(req *ClaimRequest) *Error {
	if !req.LaunchToken {
		return nil
	}
	if !feeRecipientTypes[req.FeeRecipientType] {
		req.FeeRecipientType = "wallet"
	}
	req.FeeRecipientValue = strings.TrimSpace(req.FeeRecipientValue)
	if req.FeeRecipientType != "wallet" && req.FeeRecipientValue == "" {
		return invalidInput("fee recipient value is required")
	}
	req.TweetURL = normalizeTweetURL(req.TweetURL)
	return nil
}

func normalizeTweetURL(tweetURL string) string {
	if tweetURL == "" {
		return ""
	}
	parsed, err := url.Parse(tweetURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if host != "x.com" && host != "twitter.com" {
		return ""
	}
	return tweetURL
}

// Claim runs the full pipeline and returns either a response or an *Error.
func (s *ClaimService) Claim(req *ClaimRequest) (*ClaimResponse, *Error) {
	address, authErr := s.authenticate(req)
	if authErr != nil {
		return nil, authErr
	}

	name := strings.ToLower(strings.TrimSpace(req.Name))
	if err := s.policy.Validate(name); err != nil {
		return nil, invalidInput(err.Error())
	}

	if err := validateLaunchFields(req); err != nil {
		return nil, err
	}

	// Chain read failures here are treated the same as not holding: the
	// gate refuses rather than letting unverified wallets through.
	isHolder, err := s.holder.IsHolder(address)
	if err != nil {
		log.WithError(err).WithField("address", address).Warn("[CLAIM] holder check failed")
		return nil, forbidden("unable to verify nft ownership")
	}
	if !isHolder {
		return nil, forbidden("wallet does not hold the required nft")
	}

	existing, err := s.store.GetByAddress(address)
	if err != nil {
		return nil, serviceError("error checking wallet registration")
	}
	if existing != nil {
		return nil, conflict(ReasonAddressTaken)
	}

	available, err := s.store.CheckAvailability(name)
	if err != nil {
		return nil, serviceError("error checking name availability")
	}
	if !available {
		return nil, conflict(ReasonNameTaken)
	}

	isPremium := s.policy.IsPremium(name)
	token := models.ParsePaymentToken(req.PaymentToken)
	pricePaid := ""

	if isPremium {
		base := s.policy.BasePrice(name)
		price := s.policy.DiscountedPrice(base, token)

		if req.PaymentTxHash == "" {
			return nil, &Error{
				Kind:         KindPaymentRequired,
				Reason:       "premium name requires payment",
				PriceEth:     price.String(),
				BasePriceEth: base.String(),
				PaymentToken: string(token),
			}
		}

		if err := s.payments.Verify(eth.VerifyParams{
			TxHash:      req.PaymentTxHash,
			Payer:       address,
			RequiredEth: price,
			Token:       token,
		}); err != nil {
			var verifyErr *eth.VerifyError
			if errors.As(err, &verifyErr) {
				return nil, paymentInvalid(verifyErr.Code)
			}
			return nil, serviceError("error verifying payment")
		}
		pricePaid = price.String()
	}

	tokenId := s.holder.FirstTokenId(address)

	params := registry.CreateParams{
		Subdomain:      name,
		Address:        address,
		TokenId:        tokenId,
		IsPremium:      isPremium,
		PaymentToken:   token,
		PremiumPaidEth: pricePaid,
	}

	var registration *models.Registration
	if isPremium {
		registration, err = s.store.CreatePremiumRegistration(params, req.PaymentTxHash)
	} else {
		registration, err = s.store.CreateRegistration(params)
	}
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrAddressTaken):
			return nil, conflict(ReasonAddressTaken)
		case errors.Is(err, registry.ErrNameTaken):
			return nil, conflict(ReasonNameTaken)
		case errors.Is(err, registry.ErrPaymentTxUsed):
			return nil, conflict(ReasonPaymentTxUsed)
		default:
			log.WithError(err).Error("[CLAIM] error creating registration")
			return nil, serviceError("error creating registration")
		}
	}

	fullName := ens.FullName(name, s.domain)

	go func() {
		if err := s.announcer.AnnounceClaim(fullName, address); err != nil {
			log.WithError(err).Warn("[CLAIM] error announcing registration")
		}
	}()
	if s.mirror.Enabled() {
		go func() {
			if err := s.mirror.CreateSubdomain(name, address); err != nil {
				log.WithError(err).Warn("[CLAIM] error mirroring subdomain on chain")
			}
		}()
	}

	response := &ClaimResponse{
		Name:         registration.Subdomain,
		FullName:     fullName,
		Address:      registration.Address,
		IsPremium:    registration.IsPremium,
		PaymentToken: string(registration.PaymentToken),
		PricePaidEth: registration.PremiumPaidEth,
	}

	if req.LaunchToken {
		response.TokenInfo = s.launchToken(req, name, fullName, address, tokenId)
	}
	return response, nil
}
