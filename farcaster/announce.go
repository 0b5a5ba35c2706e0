package farcaster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bankrclub/registrar/models"
)

var neynarCastURL = "https://api.neynar.com/v2/farcaster/cast"

// Announcer posts claim announcements to Farcaster. Announcements are best
// effort, errors are only logged by callers.
type Announcer interface {
	AnnounceClaim(fullName string, address string) error
}

type neynarAnnouncer struct {
	apiKey     string
	signerUUID string
	channel    string
	http       *http.Client
}

func NewAnnouncer(config models.FarcasterConfig) Announcer {
	return &neynarAnnouncer{
		apiKey:     config.NeynarAPIKey,
		signerUUID: config.SignerUUID,
		channel:    config.Channel,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

type castRequest struct {
	SignerUUID string `json:"signer_uuid"`
	Text       string `json:"text"`
	ChannelID  string `json:"channel_id,omitempty"`
}

func (x *neynarAnnouncer) AnnounceClaim(fullName string, address string) error {
	if x.apiKey == "" || x.signerUUID == "" {
		log.Debug("[FARCASTER] no credentials configured, skipping announcement")
		return nil
	}

	text := fmt.Sprintf("New member: %s has been claimed by %s", fullName, address)
	payload, err := json.Marshal(castRequest{
		SignerUUID: x.signerUUID,
		Text:       text,
		ChannelID:  x.channel,
	})
	if err != nil {
		return errors.Wrap(err, "error encoding cast")
	}

	req, err := http.NewRequest(http.MethodPost, neynarCastURL, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "error creating cast request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", x.apiKey)

	res, err := x.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "error posting cast")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("cast api returned status %d", res.StatusCode)
	}
	return nil
}
