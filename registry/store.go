package registry

import (
	"strings"
	"time"

	"github.com/bankrclub/registrar/app"
	"github.com/bankrclub/registrar/models"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrAddressTaken means the wallet already owns a registration.
	ErrAddressTaken = errors.New("ADDRESS_TAKEN")
	// ErrNameTaken means the subdomain is already registered.
	ErrNameTaken = errors.New("NAME_TAKEN")
	// ErrPaymentTxUsed means the payment hash already funded a claim.
	ErrPaymentTxUsed = errors.New("PAYMENT_TX_USED")
)

// CreateParams are the fields of a new registration. Address and
// Subdomain must already be normalized (lowercased, trimmed) by the caller.
type CreateParams struct {
	Subdomain      string
	Address        string
	TokenId        *int64
	IsPremium      bool
	PaymentToken   models.PaymentToken
	PremiumPaidEth string
}

// TokenInfo is the post-launch metadata attached to a registration.
type TokenInfo struct {
	TokenAddress string
	TokenSymbol  string
	PoolId       string
	TxHash       string
}

// Store is the sole arbiter of name ownership, one-per-wallet and
// payment-hash consumption. Pre-checks elsewhere are advisory; the create
// operations re-validate everything inside a wallet-scoped exclusive lock,
// with the unique indexes as the final backstop.
type Store interface {
	CheckAvailability(name string) (bool, error)
	GetByAddress(address string) (*models.Registration, error)
	GetBySubdomain(name string) (*models.Registration, error)
	GetRecent(limit int64) ([]models.Registration, error)
	CreateRegistration(params CreateParams) (*models.Registration, error)
	CreatePremiumRegistration(params CreateParams, paymentTxHash string) (*models.Registration, error)
	UpdateTokenInfo(subdomain string, info TokenInfo) error
}

type mongoStore struct {
	db app.Database
}

func NewStore(db app.Database) Store {
	return &mongoStore{db: db}
}

func walletLockResource(address string) string {
	return "registration/" + strings.ToLower(address)
}

func (s *mongoStore) CheckAvailability(name string) (bool, error) {
	var existing models.Registration
	err := s.db.FindOne(models.CollectionRegistrations, bson.M{"subdomain": name}, &existing)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return true, nil
	}
	return false, errors.Wrap(err, "checking availability")
}

func (s *mongoStore) GetByAddress(address string) (*models.Registration, error) {
	var reg models.Registration
	err := s.db.FindOne(models.CollectionRegistrations, bson.M{"address": strings.ToLower(address)}, &reg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "finding registration by address")
	}
	return &reg, nil
}

func (s *mongoStore) GetBySubdomain(name string) (*models.Registration, error) {
	var reg models.Registration
	err := s.db.FindOne(models.CollectionRegistrations, bson.M{"subdomain": name}, &reg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "finding registration by subdomain")
	}
	return &reg, nil
}

func (s *mongoStore) GetRecent(limit int64) ([]models.Registration, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	opts := options.Find().SetSort(bson.D{{Key: "registered_at", Value: -1}}).SetLimit(limit)
	var regs []models.Registration
	err := s.db.FindMany(models.CollectionRegistrations, bson.M{}, opts, &regs)
	if err != nil {
		return nil, errors.Wrap(err, "finding recent registrations")
	}
	return regs, nil
}

func (s *mongoStore) CreateRegistration(params CreateParams) (*models.Registration, error) {
	return s.createLocked(params, "")
}

func (s *mongoStore) CreatePremiumRegistration(params CreateParams, paymentTxHash string) (*models.Registration, error) {
	if paymentTxHash == "" {
		return nil, errors.New("payment tx hash required for premium registration")
	}
	return s.createLocked(params, paymentTxHash)
}

// createLocked is the atomic claim: an exclusive wallet lock orders
// concurrent claims from the same wallet, the address re-check runs inside
// that lock, the payment receipt insert consumes the tx hash, and the
// registration insert's unique subdomain index decides races between
// different wallets for the same name.
func (s *mongoStore) createLocked(params CreateParams, paymentTxHash string) (*models.Registration, error) {
	address := strings.ToLower(params.Address)

	lockId, err := s.db.XLock(walletLockResource(address))
	if err != nil {
		return nil, errors.Wrap(err, "acquiring wallet lock")
	}
	defer func() {
		if err := s.db.Unlock(lockId); err != nil {
			log.Error("[REGISTRY] Error releasing wallet lock: ", err)
		}
	}()

	var existing models.Registration
	err = s.db.FindOne(models.CollectionRegistrations, bson.M{"address": address}, &existing)
	if err == nil {
		return nil, ErrAddressTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.Wrap(err, "re-checking wallet registration")
	}

	now := time.Now()

	if paymentTxHash != "" {
		receipt := models.PaymentReceipt{
			TransactionHash: strings.ToLower(paymentTxHash),
			Claimer:         address,
			Subdomain:       params.Subdomain,
			CreatedAt:       now,
		}
		if err := s.db.InsertOne(models.CollectionPayments, receipt); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrPaymentTxUsed
			}
			return nil, errors.Wrap(err, "consuming payment tx")
		}
	}

	token := params.PaymentToken
	if token == "" {
		token = models.PaymentTokenETH
	}

	reg := models.Registration{
		Subdomain:      params.Subdomain,
		Address:        address,
		TokenId:        params.TokenId,
		IsPremium:      params.IsPremium,
		PaymentToken:   token,
		PremiumPaidEth: params.PremiumPaidEth,
		RegisteredAt:   now,
	}
	if err := s.db.InsertOne(models.CollectionRegistrations, reg); err != nil {
		// the receipt above consumed the tx hash for a registration that never
		// happened; release it so the wallet can retry with the same payment
		s.releaseReceipt(paymentTxHash)
		if mongo.IsDuplicateKeyError(err) {
			// the wallet lock serializes same-wallet claims, so a duplicate
			// here is a lost race on the subdomain index unless the error
			// names the address index
			if strings.Contains(err.Error(), "address") {
				return nil, ErrAddressTaken
			}
			return nil, ErrNameTaken
		}
		return nil, errors.Wrap(err, "inserting registration")
	}

	log.Info("[REGISTRY] Registered subdomain: ", params.Subdomain, " for ", address)
	return &reg, nil
}

// releaseReceipt runs while the wallet lock is still held.
func (s *mongoStore) releaseReceipt(paymentTxHash string) {
	if paymentTxHash == "" {
		return
	}
	filter := bson.M{"transaction_hash": strings.ToLower(paymentTxHash)}
	if _, err := s.db.DeleteMany(models.CollectionPayments, filter); err != nil {
		log.Error("[REGISTRY] Error releasing payment receipt: ", err)
	}
}

func (s *mongoStore) UpdateTokenInfo(subdomain string, info TokenInfo) error {
	update := bson.M{
		"$set": bson.M{
			"bankr_token_address": info.TokenAddress,
			"bankr_token_symbol":  info.TokenSymbol,
			"bankr_pool_id":       info.PoolId,
			"bankr_tx_hash":       info.TxHash,
		},
	}
	err := s.db.UpdateOne(models.CollectionRegistrations, bson.M{"subdomain": subdomain}, update)
	return errors.Wrap(err, "updating token info")
}
