package app

import (
	"os"
	"time"

	"github.com/bankrclub/registrar/models"
	log "github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
)

type HealthService struct {
	stop          chan bool
	hostname      string
	signerAddress string
	interval      time.Duration
}

func (h *HealthService) Stop() {
	log.Debug("[HEALTH] Stopping health")
	h.stop <- true
}

func (h *HealthService) PostHealth() bool {
	log.Debug("[HEALTH] Posting health")

	filter := bson.M{"hostname": h.hostname}
	onInsert := bson.M{
		"hostname":       h.hostname,
		"signer_address": h.signerAddress,
		"created_at":     time.Now(),
	}
	onUpdate := bson.M{
		"healthy":    true,
		"updated_at": time.Now(),
	}
	update := bson.M{"$set": onUpdate, "$setOnInsert": onInsert}

	err := DB.UpsertOne(models.CollectionHealthChecks, filter, update)
	if err != nil {
		log.Error("[HEALTH] Error posting health: ", err)
		return false
	}
	return true
}

func (h *HealthService) LastHealth() (models.Health, error) {
	var health models.Health
	err := DB.FindOne(models.CollectionHealthChecks, bson.M{"hostname": h.hostname}, &health)
	return health, err
}

func (h *HealthService) Start() {
	log.Debug("[HEALTH] Starting health")
	stop := false
	for !stop {
		h.PostHealth()

		select {
		case <-h.stop:
			stop = true
			log.Debug("[HEALTH] Stopped health")
		case <-time.After(h.interval):
		}
	}
}

func NewHealthCheck(signerAddress string) *HealthService {
	log.Debug("[HEALTH] Initializing health")

	hostname, err := os.Hostname()
	if err != nil {
		log.Warn("[HEALTH] Error getting hostname: ", err)
		hostname = "unknown"
	}

	h := &HealthService{
		stop:          make(chan bool),
		interval:      time.Duration(Config.HealthCheck.IntervalMillis) * time.Millisecond,
		hostname:      hostname,
		signerAddress: signerAddress,
	}

	log.Debug("[HEALTH] Initialized health")

	return h
}
