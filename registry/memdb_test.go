package registry

import (
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bankrclub/registrar/models"
)

// memoryDatabase is an in-memory stand-in with the same uniqueness and
// locking semantics the store relies on: per-resource exclusive locks and
// duplicate-key errors on the unique indexes. It lets the concurrency tests
// exercise real interleavings without a mongo instance.
type memoryDatabase struct {
	mu            sync.Mutex
	registrations []models.Registration
	payments      []models.PaymentReceipt

	locks      map[string]*sync.Mutex
	lockOwners map[string]string
	lockSeq    int
}

func newMemoryDatabase() *memoryDatabase {
	return &memoryDatabase{
		locks:      map[string]*sync.Mutex{},
		lockOwners: map[string]string{},
	}
}

func duplicateKeyError(index string) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{
			Code:    11000,
			Message: fmt.Sprintf("E11000 duplicate key error collection: test index: %s_1", index),
		}},
	}
}

func (d *memoryDatabase) Connect() error      { return nil }
func (d *memoryDatabase) SetupLockers() error { return nil }
func (d *memoryDatabase) SetupIndexes() error { return nil }
func (d *memoryDatabase) Disconnect() error   { return nil }

func (d *memoryDatabase) XLock(resourceId string) (string, error) {
	d.mu.Lock()
	m, ok := d.locks[resourceId]
	if !ok {
		m = &sync.Mutex{}
		d.locks[resourceId] = m
	}
	d.lockSeq++
	lockId := fmt.Sprintf("lock-%d", d.lockSeq)
	d.mu.Unlock()

	m.Lock()

	d.mu.Lock()
	d.lockOwners[lockId] = resourceId
	d.mu.Unlock()
	return lockId, nil
}

func (d *memoryDatabase) Unlock(lockId string) error {
	d.mu.Lock()
	resource, ok := d.lockOwners[lockId]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("unknown lock id %s", lockId)
	}
	delete(d.lockOwners, lockId)
	m := d.locks[resource]
	d.mu.Unlock()

	m.Unlock()
	return nil
}

func (d *memoryDatabase) InsertOne(collection string, data interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch collection {
	case models.CollectionRegistrations:
		reg := data.(models.Registration)
		for _, r := range d.registrations {
			if r.Subdomain == reg.Subdomain {
				return duplicateKeyError("subdomain")
			}
			if strings.EqualFold(r.Address, reg.Address) {
				return duplicateKeyError("address")
			}
		}
		d.registrations = append(d.registrations, reg)
		return nil
	case models.CollectionPayments:
		receipt := data.(models.PaymentReceipt)
		for _, p := range d.payments {
			if p.TransactionHash == receipt.TransactionHash {
				return duplicateKeyError("transaction_hash")
			}
		}
		d.payments = append(d.payments, receipt)
		return nil
	default:
		return fmt.Errorf("unexpected collection %s", collection)
	}
}

func (d *memoryDatabase) FindOne(collection string, filter interface{}, result interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if collection != models.CollectionRegistrations {
		return mongo.ErrNoDocuments
	}
	f := filter.(bson.M)
	for _, r := range d.registrations {
		if address, ok := f["address"].(string); ok && strings.EqualFold(r.Address, address) {
			*result.(*models.Registration) = r
			return nil
		}
		if subdomain, ok := f["subdomain"].(string); ok && r.Subdomain == subdomain {
			*result.(*models.Registration) = r
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (d *memoryDatabase) FindMany(collection string, filter interface{}, opts interface{}, result interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	regs := append([]models.Registration{}, d.registrations...)
	*result.(*[]models.Registration) = regs
	return nil
}

func (d *memoryDatabase) FindOneAndDelete(collection string, filter interface{}, result interface{}) error {
	return mongo.ErrNoDocuments
}

func (d *memoryDatabase) UpdateOne(collection string, filter interface{}, update interface{}) error {
	return nil
}

func (d *memoryDatabase) UpsertOne(collection string, filter interface{}, update interface{}) error {
	return nil
}

func (d *memoryDatabase) DeleteMany(collection string, filter interface{}) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if collection != models.CollectionPayments {
		return 0, nil
	}
	hash, ok := filter.(bson.M)["transaction_hash"].(string)
	if !ok {
		return 0, nil
	}
	var kept []models.PaymentReceipt
	var deleted int64
	for _, p := range d.payments {
		if p.TransactionHash == hash {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	d.payments = kept
	return deleted, nil
}
