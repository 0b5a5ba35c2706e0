package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Health struct {
	Id            *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Hostname      string              `bson:"hostname" json:"hostname"`
	SignerAddress string              `bson:"signer_address" json:"signer_address"`
	Healthy       bool                `bson:"healthy" json:"healthy"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}

type Service interface {
	Start()
	Stop()
}
