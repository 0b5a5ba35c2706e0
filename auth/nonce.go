package auth

import (
	"time"

	"github.com/bankrclub/registrar/app"
	"github.com/bankrclub/registrar/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// NonceService issues and consumes single-use signing challenges.
// Consumption is an atomic delete-if-fresh on the nonce row, so no
// separate locking is needed: at most one caller ever sees a given nonce
// as valid.
type NonceService struct {
	db  app.Database
	ttl time.Duration
}

func NewNonceService(db app.Database, ttl time.Duration) *NonceService {
	return &NonceService{db: db, ttl: ttl}
}

func (s *NonceService) TTL() time.Duration {
	return s.ttl
}

// Issue stores a fresh nonce and opportunistically purges expired ones.
func (s *NonceService) Issue() (string, error) {
	cutoff := time.Now().Add(-s.ttl)
	if deleted, err := s.db.DeleteMany(models.CollectionNonces, bson.M{"created_at": bson.M{"$lt": cutoff}}); err != nil {
		log.Warn("[AUTH] Error purging expired nonces: ", err)
	} else if deleted > 0 {
		log.Debug("[AUTH] Purged expired nonces: ", deleted)
	}

	nonce := uuid.NewString()
	doc := models.Nonce{
		Nonce:     nonce,
		CreatedAt: time.Now(),
	}
	if err := s.db.InsertOne(models.CollectionNonces, doc); err != nil {
		return "", errors.Wrap(err, "storing nonce")
	}
	return nonce, nil
}

// Consume deletes the nonce if it exists and is still within its TTL.
// Returns false for unknown, expired or already-consumed nonces.
func (s *NonceService) Consume(nonce string) (bool, error) {
	cutoff := time.Now().Add(-s.ttl)
	filter := bson.M{
		"nonce":      nonce,
		"created_at": bson.M{"$gt": cutoff},
	}
	var consumed models.Nonce
	err := s.db.FindOneAndDelete(models.CollectionNonces, filter, &consumed)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, errors.Wrap(err, "consuming nonce")
	}
	return true, nil
}
