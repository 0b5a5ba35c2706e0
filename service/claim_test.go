package service

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	ethCrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bankrclub/registrar/app"
	"github.com/bankrclub/registrar/auth"
	"github.com/bankrclub/registrar/bankr"
	"github.com/bankrclub/registrar/eth"
	"github.com/bankrclub/registrar/models"
	"github.com/bankrclub/registrar/names"
	"github.com/bankrclub/registrar/registry"
)

func init() {
	log.SetOutput(io.Discard)
}

const (
	testDomain  = "bankrclub.eth"
	testSecret  = "test-receipt-secret"
	claimerHex  = "0x1111111111111111111111111111111111111111"
	paymentHash = "0xcccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc"
)

type fakeStore struct {
	mu        sync.Mutex
	byAddress map[string]models.Registration
	byName    map[string]models.Registration
	payments  map[string]bool
	createErr error

	tokenInfo     map[string]registry.TokenInfo
	tokenInfoDone chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byAddress:     map[string]models.Registration{},
		byName:        map[string]models.Registration{},
		payments:      map[string]bool{},
		tokenInfo:     map[string]registry.TokenInfo{},
		tokenInfoDone: make(chan struct{}, 1),
	}
}

func (s *fakeStore) CheckAvailability(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, taken := s.byName[name]
	return !taken, nil
}

func (s *fakeStore) GetByAddress(address string) (*models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reg, ok := s.byAddress[strings.ToLower(address)]; ok {
		return &reg, nil
	}
	return nil, nil
}

func (s *fakeStore) GetBySubdomain(name string) (*models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reg, ok := s.byName[name]; ok {
		return &reg, nil
	}
	return nil, nil
}

func (s *fakeStore) GetRecent(limit int64) ([]models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	regs := make([]models.Registration, 0, len(s.byName))
	for _, reg := range s.byName {
		regs = append(regs, reg)
	}
	return regs, nil
}

func (s *fakeStore) create(params registry.CreateParams, paymentTxHash string) (*models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	address := strings.ToLower(params.Address)
	if _, ok := s.byAddress[address]; ok {
		return nil, registry.ErrAddressTaken
	}
	if _, ok := s.byName[params.Subdomain]; ok {
		return nil, registry.ErrNameTaken
	}
	if paymentTxHash != "" {
		hash := strings.ToLower(paymentTxHash)
		if s.payments[hash] {
			return nil, registry.ErrPaymentTxUsed
		}
		s.payments[hash] = true
	}
	reg := models.Registration{
		Subdomain:      params.Subdomain,
		Address:        address,
		TokenId:        params.TokenId,
		IsPremium:      params.IsPremium,
		PaymentToken:   params.PaymentToken,
		PremiumPaidEth: params.PremiumPaidEth,
		RegisteredAt:   time.Now(),
	}
	s.byAddress[address] = reg
	s.byName[params.Subdomain] = reg
	return &reg, nil
}

func (s *fakeStore) CreateRegistration(params registry.CreateParams) (*models.Registration, error) {
	return s.create(params, "")
}

func (s *fakeStore) CreatePremiumRegistration(params registry.CreateParams, paymentTxHash string) (*models.Registration, error) {
	return s.create(params, paymentTxHash)
}

func (s *fakeStore) UpdateTokenInfo(subdomain string, info registry.TokenInfo) error {
	s.mu.Lock()
	s.tokenInfo[subdomain] = info
	s.mu.Unlock()
	select {
	case s.tokenInfoDone <- struct{}{}:
	default:
	}
	return nil
}

type stubHolder struct {
	holder  bool
	err     error
	tokenId *int64
}

func (s *stubHolder) IsHolder(address string) (bool, error) { return s.holder, s.err }
func (s *stubHolder) FirstTokenId(address string) *int64    { return s.tokenId }

type stubPayments struct {
	err    error
	params []eth.VerifyParams
}

func (s *stubPayments) Verify(params eth.VerifyParams) error {
	s.params = append(s.params, params)
	return s.err
}

type stubLauncher struct {
	result *bankr.LaunchResult
	err    error
	params []bankr.LaunchParams
}

func (s *stubLauncher) Launch(params bankr.LaunchParams) (*bankr.LaunchResult, error) {
	s.params = append(s.params, params)
	return s.result, s.err
}

type stubAnnouncer struct {
	announced chan string
}

func (s *stubAnnouncer) AnnounceClaim(fullName string, address string) error {
	select {
	case s.announced <- fullName:
	default:
	}
	return nil
}

type stubMirror struct {
	enabled bool
	created chan string
}

func (s *stubMirror) Enabled() bool { return s.enabled }
func (s *stubMirror) CreateSubdomain(label string, owner string) error {
	select {
	case s.created <- label:
	default:
	}
	return nil
}

type stubMetadata struct {
	image string
}

func (s *stubMetadata) TokenImage(tokenId int64) string { return s.image }

type testHarness struct {
	service   *ClaimService
	store     *fakeStore
	holder    *stubHolder
	payments  *stubPayments
	launcher  *stubLauncher
	announcer *stubAnnouncer
	mirror    *stubMirror
	nonceDB   *app.MockDatabase
}

func testPolicy(t *testing.T) *names.Policy {
	policy, err := names.NewPolicy(names.Config{
		FreeMinLength: 9,
		ReservedNames: []string{"bankr", "admin", "www"},
		PriceSchedule: map[int]decimal.Decimal{
			3: decimal.RequireFromString("0.05"),
			4: decimal.RequireFromString("0.02"),
			5: decimal.RequireFromString("0.01"),
			6: decimal.RequireFromString("0.0075"),
			7: decimal.RequireFromString("0.005"),
			8: decimal.RequireFromString("0.0025"),
		},
		Discounts: map[models.PaymentToken]decimal.Decimal{
			models.PaymentTokenETH:     decimal.Zero,
			models.PaymentTokenBNKR:    decimal.RequireFromString("0.1"),
			models.PaymentTokenCLAWDIA: decimal.RequireFromString("0.25"),
		},
	})
	assert.Nil(t, err)
	return policy
}

func newTestHarness(t *testing.T) *testHarness {
	h := &testHarness{
		store:     newFakeStore(),
		holder:    &stubHolder{holder: true},
		payments:  &stubPayments{},
		launcher:  &stubLauncher{result: &bankr.LaunchResult{TokenAddress: "0xabc", TokenSymbol: "ALICE", PoolId: "pool-1", TxHash: "0xdef"}},
		announcer: &stubAnnouncer{announced: make(chan string, 1)},
		mirror:    &stubMirror{enabled: true, created: make(chan string, 1)},
		nonceDB:   app.NewMockDatabase(t),
	}
	h.service = NewClaimService(ClaimServiceParams{
		Store:         h.store,
		Policy:        testPolicy(t),
		Nonces:        auth.NewNonceService(h.nonceDB, 5*time.Minute),
		Holder:        h.holder,
		Payments:      h.payments,
		Launcher:      h.launcher,
		Announcer:     h.announcer,
		Mirror:        h.mirror,
		Metadata:      &stubMetadata{},
		Domain:        testDomain,
		ReceiptSecret: testSecret,
	})
	return h
}

func receiptFor(t *testing.T, address string) string {
	token, err := auth.CreateReceipt(auth.ReceiptPayload{Address: address, ChainId: 8453}, testSecret)
	assert.Nil(t, err)
	return token
}

func claimRequest(t *testing.T, name string) *ClaimRequest {
	return &ClaimRequest{
		Name:    name,
		Receipt: receiptFor(t, claimerHex),
	}
}

func TestClaimFreeName(t *testing.T) {
	h := newTestHarness(t)

	res, claimErr := h.service.Claim(claimRequest(t, "ninechars"))
	assert.Nil(t, claimErr)
	assert.Equal(t, "ninechars", res.Name)
	assert.Equal(t, "ninechars.bankrclub.eth", res.FullName)
	assert.Equal(t, claimerHex, res.Address)
	assert.False(t, res.IsPremium)
	assert.Nil(t, res.TokenInfo)

	select {
	case fullName := <-h.announcer.announced:
		assert.Equal(t, "ninechars.bankrclub.eth", fullName)
	case <-time.After(time.Second):
		t.Fatal("announcement was not sent")
	}
	select {
	case label := <-h.mirror.created:
		assert.Equal(t, "ninechars", label)
	case <-time.After(time.Second):
		t.Fatal("mirror was not invoked")
	}
}

func TestClaimNormalizesName(t *testing.T) {
	h := newTestHarness(t)

	res, claimErr := h.service.Claim(&ClaimRequest{
		Name:    "  NineChars ",
		Receipt: receiptFor(t, claimerHex),
	})
	assert.Nil(t, claimErr)
	assert.Equal(t, "ninechars", res.Name)
}

func TestClaimValidation(t *testing.T) {
	t.Run("Too Short", func(t *testing.T) {
		h := newTestHarness(t)
		_, claimErr := h.service.Claim(claimRequest(t, "ab"))
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindInvalidInput, claimErr.Kind)
		assert.Equal(t, "minimum 3 characters", claimErr.Reason)
	})

	t.Run("Reserved", func(t *testing.T) {
		h := newTestHarness(t)
		_, claimErr := h.service.Claim(claimRequest(t, "bankr"))
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindInvalidInput, claimErr.Kind)
		assert.Equal(t, "reserved name", claimErr.Reason)
	})
}

func TestClaimAuthentication(t *testing.T) {
	t.Run("Invalid Receipt", func(t *testing.T) {
		h := newTestHarness(t)
		_, claimErr := h.service.Claim(&ClaimRequest{Name: "ninechars", Receipt: "garbage"})
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindUnauthorized, claimErr.Kind)
	})

	t.Run("Missing Credentials", func(t *testing.T) {
		h := newTestHarness(t)
		_, claimErr := h.service.Claim(&ClaimRequest{Name: "ninechars", Address: claimerHex})
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindUnauthorized, claimErr.Kind)
	})

	t.Run("Valid Signature", func(t *testing.T) {
		h := newTestHarness(t)
		key, _ := ethCrypto.GenerateKey()
		address := ethCrypto.PubkeyToAddress(key.PublicKey).Hex()
		nonce := "nonce-1"

		h.nonceDB.EXPECT().FindOneAndDelete(models.CollectionNonces, mock.Anything, mock.Anything).Return(nil)

		message := auth.BuildSignMessage(testDomain, address, nonce)
		prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
		sig, err := ethCrypto.Sign(ethCrypto.Keccak256([]byte(prefixed)), key)
		assert.Nil(t, err)

		res, claimErr := h.service.Claim(&ClaimRequest{
			Name:      "ninechars",
			Address:   address,
			Nonce:     nonce,
			Signature: "0x" + fmt.Sprintf("%x", sig),
		})
		assert.Nil(t, claimErr)
		assert.Equal(t, strings.ToLower(address), res.Address)
	})

	t.Run("Expired Nonce", func(t *testing.T) {
		h := newTestHarness(t)
		key, _ := ethCrypto.GenerateKey()
		address := ethCrypto.PubkeyToAddress(key.PublicKey).Hex()

		h.nonceDB.EXPECT().FindOneAndDelete(models.CollectionNonces, mock.Anything, mock.Anything).
			Return(mongo.ErrNoDocuments)

		_, claimErr := h.service.Claim(&ClaimRequest{
			Name:      "ninechars",
			Address:   address,
			Nonce:     "stale",
			Signature: "0x" + strings.Repeat("00", 65),
		})
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindUnauthorized, claimErr.Kind)
	})
}

func TestClaimHolderGate(t *testing.T) {
	t.Run("Not A Holder", func(t *testing.T) {
		h := newTestHarness(t)
		h.holder.holder = false

		_, claimErr := h.service.Claim(claimRequest(t, "ninechars"))
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindForbidden, claimErr.Kind)
	})

	t.Run("Chain Read Failure Fails Closed", func(t *testing.T) {
		h := newTestHarness(t)
		h.holder.err = assert.AnError

		_, claimErr := h.service.Claim(claimRequest(t, "ninechars"))
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindForbidden, claimErr.Kind)
	})
}

func TestClaimConflicts(t *testing.T) {
	t.Run("Wallet Already Registered", func(t *testing.T) {
		h := newTestHarness(t)
		_, claimErr := h.service.Claim(claimRequest(t, "firstname"))
		assert.Nil(t, claimErr)

		_, claimErr = h.service.Claim(claimRequest(t, "othername"))
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindConflict, claimErr.Kind)
		assert.Equal(t, ReasonAddressTaken, claimErr.Reason)
	})

	t.Run("Name Taken", func(t *testing.T) {
		h := newTestHarness(t)
		_, claimErr := h.service.Claim(claimRequest(t, "sharedname"))
		assert.Nil(t, claimErr)

		_, claimErr = h.service.Claim(&ClaimRequest{
			Name:    "sharedname",
			Receipt: receiptFor(t, "0x2222222222222222222222222222222222222222"),
		})
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindConflict, claimErr.Kind)
		assert.Equal(t, ReasonNameTaken, claimErr.Reason)
	})

	t.Run("Lost Race Is Re-Derived From Store", func(t *testing.T) {
		h := newTestHarness(t)
		h.store.createErr = registry.ErrNameTaken

		_, claimErr := h.service.Claim(claimRequest(t, "ninechars"))
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindConflict, claimErr.Kind)
		assert.Equal(t, ReasonNameTaken, claimErr.Reason)
	})

	t.Run("Reused Payment Hash", func(t *testing.T) {
		h := newTestHarness(t)
		h.store.createErr = registry.ErrPaymentTxUsed

		_, claimErr := h.service.Claim(&ClaimRequest{
			Name:          "abcd",
			Receipt:       receiptFor(t, claimerHex),
			PaymentTxHash: paymentHash,
		})
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindConflict, claimErr.Kind)
		assert.Equal(t, ReasonPaymentTxUsed, claimErr.Reason)
	})
}

func TestClaimPremium(t *testing.T) {
	t.Run("Payment Required Without Hash", func(t *testing.T) {
		h := newTestHarness(t)

		_, claimErr := h.service.Claim(claimRequest(t, "abcd"))
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindPaymentRequired, claimErr.Kind)
		assert.Equal(t, "0.02", claimErr.PriceEth)
		assert.Equal(t, "0.02", claimErr.BasePriceEth)
		assert.Equal(t, "ETH", claimErr.PaymentToken)
	})

	t.Run("Quote Applies Token Discount", func(t *testing.T) {
		h := newTestHarness(t)

		_, claimErr := h.service.Claim(&ClaimRequest{
			Name:         "abcd",
			Receipt:      receiptFor(t, claimerHex),
			PaymentToken: "BNKR",
		})
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindPaymentRequired, claimErr.Kind)
		assert.Equal(t, "0.018", claimErr.PriceEth)
		assert.Equal(t, "BNKR", claimErr.PaymentToken)
	})

	t.Run("Verified Payment Registers", func(t *testing.T) {
		h := newTestHarness(t)

		res, claimErr := h.service.Claim(&ClaimRequest{
			Name:          "abcd",
			Receipt:       receiptFor(t, claimerHex),
			PaymentTxHash: paymentHash,
		})
		assert.Nil(t, claimErr)
		assert.True(t, res.IsPremium)
		assert.Equal(t, "0.02", res.PricePaidEth)

		assert.Len(t, h.payments.params, 1)
		assert.Equal(t, paymentHash, h.payments.params[0].TxHash)
		assert.Equal(t, claimerHex, h.payments.params[0].Payer)
		assert.True(t, h.store.payments[paymentHash])
	})

	t.Run("Failed Verification", func(t *testing.T) {
		h := newTestHarness(t)
		h.payments.err = &eth.VerifyError{Code: eth.PaymentTxFailed}

		_, claimErr := h.service.Claim(&ClaimRequest{
			Name:          "abcd",
			Receipt:       receiptFor(t, claimerHex),
			PaymentTxHash: paymentHash,
		})
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindPaymentInvalid, claimErr.Kind)
		assert.Equal(t, eth.PaymentTxFailed, claimErr.Reason)
	})

	t.Run("Verifier Outage Is A Service Error", func(t *testing.T) {
		h := newTestHarness(t)
		h.payments.err = assert.AnError

		_, claimErr := h.service.Claim(&ClaimRequest{
			Name:          "abcd",
			Receipt:       receiptFor(t, claimerHex),
			PaymentTxHash: paymentHash,
		})
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindServiceError, claimErr.Kind)
	})

	t.Run("Free Name Skips Payment Entirely", func(t *testing.T) {
		h := newTestHarness(t)

		_, claimErr := h.service.Claim(claimRequest(t, "ninechars"))
		assert.Nil(t, claimErr)
		assert.Empty(t, h.payments.params)
	})
}

func TestClaimTokenLaunch(t *testing.T) {
	launchRequest := func(t *testing.T) *ClaimRequest {
		req := claimRequest(t, "ninechars")
		req.LaunchToken = true
		return req
	}

	t.Run("Success Attaches Token Info", func(t *testing.T) {
		h := newTestHarness(t)

		res, claimErr := h.service.Claim(launchRequest(t))
		assert.Nil(t, claimErr)
		assert.NotNil(t, res.TokenInfo)
		assert.Equal(t, "0xabc", res.TokenInfo.Address)
		assert.Equal(t, "ALICE", res.TokenInfo.Symbol)
		assert.Empty(t, res.TokenInfo.Error)

		select {
		case <-h.store.tokenInfoDone:
		case <-time.After(time.Second):
			t.Fatal("token info was not persisted")
		}
		assert.Equal(t, "0xabc", h.store.tokenInfo["ninechars"].TokenAddress)
	})

	t.Run("Failure Is Partial Success", func(t *testing.T) {
		h := newTestHarness(t)
		h.launcher.result = nil
		h.launcher.err = &bankr.LaunchError{Code: bankr.LaunchRateLimited}

		res, claimErr := h.service.Claim(launchRequest(t))
		assert.Nil(t, claimErr)
		assert.NotNil(t, res.TokenInfo)
		assert.Equal(t, bankr.LaunchRateLimited, res.TokenInfo.Error)
		assert.NotEmpty(t, res.TokenInfo.Message)
		assert.Empty(t, res.TokenInfo.Address)

		// the registration itself stands
		reg, err := h.store.GetBySubdomain("ninechars")
		assert.Nil(t, err)
		assert.NotNil(t, reg)
	})

	t.Run("Wallet Fee Recipient Uses Claimer", func(t *testing.T) {
		h := newTestHarness(t)
		req := launchRequest(t)
		req.FeeRecipientType = "wallet"

		_, claimErr := h.service.Claim(req)
		assert.Nil(t, claimErr)
		assert.Len(t, h.launcher.params, 1)
		assert.Equal(t, bankr.FeeRecipient{Type: "wallet", Value: claimerHex}, h.launcher.params[0].FeeRecipient)
	})

	t.Run("Defaults Fee Recipient To Claimer", func(t *testing.T) {
		h := newTestHarness(t)

		_, claimErr := h.service.Claim(launchRequest(t))
		assert.Nil(t, claimErr)
		assert.Len(t, h.launcher.params, 1)
		assert.Equal(t, bankr.FeeRecipient{Type: "wallet", Value: claimerHex}, h.launcher.params[0].FeeRecipient)
	})

	t.Run("Social Fee Recipient Reaches Launcher", func(t *testing.T) {
		h := newTestHarness(t)
		req := launchRequest(t)
		req.FeeRecipientType = "x"
		req.FeeRecipientValue = "@somehandle"

		_, claimErr := h.service.Claim(req)
		assert.Nil(t, claimErr)
		assert.Len(t, h.launcher.params, 1)
		assert.Equal(t, bankr.FeeRecipient{Type: "x", Value: "@somehandle"}, h.launcher.params[0].FeeRecipient)
	})

	t.Run("Unknown Fee Recipient Type Falls Back To Wallet", func(t *testing.T) {
		h := newTestHarness(t)
		req := launchRequest(t)
		req.FeeRecipientType = "telegram"
		req.FeeRecipientValue = "@somehandle"

		_, claimErr := h.service.Claim(req)
		assert.Nil(t, claimErr)
		assert.Len(t, h.launcher.params, 1)
		assert.Equal(t, bankr.FeeRecipient{Type: "wallet", Value: claimerHex}, h.launcher.params[0].FeeRecipient)
	})

	t.Run("Social Fee Recipient Without Value", func(t *testing.T) {
		h := newTestHarness(t)
		req := launchRequest(t)
		req.FeeRecipientType = "x"
		req.FeeRecipientValue = ""

		_, claimErr := h.service.Claim(req)
		assert.NotNil(t, claimErr)
		assert.Equal(t, KindInvalidInput, claimErr.Kind)
	})

	t.Run("Tweet URL Forwarded To Launcher", func(t *testing.T) {
		h := newTestHarness(t)
		req := launchRequest(t)
		req.TweetURL = "https://www.x.com/someone/status/1"

		_, claimErr := h.service.Claim(req)
		assert.Nil(t, claimErr)
		assert.Len(t, h.launcher.params, 1)
		assert.Equal(t, "https://www.x.com/someone/status/1", h.launcher.params[0].TweetURL)
	})

	t.Run("Invalid Tweet URL Dropped Silently", func(t *testing.T) {
		h := newTestHarness(t)
		req := launchRequest(t)
		req.TweetURL = "https://example.com/status/1"

		res, claimErr := h.service.Claim(req)
		assert.Nil(t, claimErr)
		assert.NotNil(t, res.TokenInfo)
		assert.Len(t, h.launcher.params, 1)
		assert.Empty(t, h.launcher.params[0].TweetURL)
	})
}

func TestNormalizeTweetURL(t *testing.T) {
	assert.Equal(t, "https://x.com/a/status/1", normalizeTweetURL("https://x.com/a/status/1"))
	assert.Equal(t, "https://twitter.com/a/status/1", normalizeTweetURL("https://twitter.com/a/status/1"))
	assert.Equal(t, "https://WWW.X.com/a/status/1", normalizeTweetURL("https://WWW.X.com/a/status/1"))
	assert.Empty(t, normalizeTweetURL("https://example.com/a/status/1"))
	assert.Empty(t, normalizeTweetURL("://not a url"))
	assert.Empty(t, normalizeTweetURL(""))
}

func TestResolveLogo(t *testing.T) {
	tokenId := int64(7)

	t.Run("Pinata Gateway URL Is Trusted", func(t *testing.T) {
		h := newTestHarness(t)
		logo := h.service.resolveLogo("https://gateway.pinata.cloud/ipfs/Qm123", &tokenId)
		assert.Equal(t, "https://gateway.pinata.cloud/ipfs/Qm123", logo)
	})

	t.Run("Other URLs Fall Back To NFT Art", func(t *testing.T) {
		h := newTestHarness(t)
		h.service.metadata = &stubMetadata{image: "https://ipfs.io/ipfs/QmArt"}
		logo := h.service.resolveLogo("https://evil.example/logo.png", &tokenId)
		assert.Equal(t, "https://ipfs.io/ipfs/QmArt", logo)
	})

	t.Run("No Token Id No Logo", func(t *testing.T) {
		h := newTestHarness(t)
		logo := h.service.resolveLogo("", nil)
		assert.Empty(t, logo)
	})
}
