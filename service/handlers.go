package service

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bankrclub/registrar/app"
	"github.com/bankrclub/registrar/auth"
	"github.com/bankrclub/registrar/models"
)

// receiptHeader carries the external sign-in receipt for agent claims.
const receiptHeader = "X-Agent-Receipt"

type Handlers struct {
	claims *ClaimService
	health *app.HealthService
}

func NewHandlers(claims *ClaimService, health *app.HealthService) *Handlers {
	return &Handlers{claims: claims, health: health}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("[HTTP] error encoding response")
	}
}

type errorBody struct {
	Error        string `json:"error"`
	Reason       string `json:"reason"`
	PriceEth     string `json:"priceEth,omitempty"`
	BasePriceEth string `json:"basePriceEth,omitempty"`
	PaymentToken string `json:"paymentToken,omitempty"`
}

func writeError(w http.ResponseWriter, err *Error) {
	writeJSON(w, err.HTTPStatus(), errorBody{
		Error:        string(err.Kind),
		Reason:       err.Reason,
		PriceEth:     err.PriceEth,
		BasePriceEth: err.BasePriceEth,
		PaymentToken: err.PaymentToken,
	})
}

type checkResponse struct {
	Name      string            `json:"name"`
	Available bool              `json:"available"`
	Premium   bool              `json:"premium"`
	Reason    string            `json:"reason,omitempty"`
	Prices    map[string]string `json:"prices,omitempty"`
}

// CheckName reports availability, premium classification and the full price
// table for a candidate name.
func (h *Handlers) CheckName(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("name")))

	if err := h.claims.Policy().Validate(name); err != nil {
		writeJSON(w, http.StatusOK, checkResponse{Name: name, Available: false, Reason: err.Error()})
		return
	}

	available, err := h.claims.Store().CheckAvailability(name)
	if err != nil {
		writeError(w, serviceError("error checking availability"))
		return
	}
	if !available {
		writeJSON(w, http.StatusOK, checkResponse{Name: name, Available: false, Reason: ReasonNameTaken})
		return
	}

	res := checkResponse{
		Name:      name,
		Available: true,
		Premium:   h.claims.Policy().IsPremium(name),
	}
	if res.Premium {
		res.Prices = map[string]string{}
		for token, price := range h.claims.Policy().PriceTable(name) {
			res.Prices[string(token)] = price.String()
		}
	}
	writeJSON(w, http.StatusOK, res)
}

type nonceResponse struct {
	Nonce     string `json:"nonce"`
	Message   string `json:"message"`
	ExpiresIn int64  `json:"expiresIn"`
}

// IssueNonce returns a single-use nonce and the exact message to sign.
func (h *Handlers) IssueNonce(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if !auth.ValidAddress(address) {
		writeError(w, invalidInput("invalid address"))
		return
	}

	nonce, err := h.claims.Nonces().Issue()
	if err != nil {
		writeError(w, serviceError("error issuing nonce"))
		return
	}

	writeJSON(w, http.StatusOK, nonceResponse{
		Nonce:     nonce,
		Message:   auth.BuildSignMessage(h.claims.Domain(), address, nonce),
		ExpiresIn: int64(h.claims.Nonces().TTL().Seconds()),
	})
}

// Claim handles the claim itself.
func (h *Handlers) Claim(w http.ResponseWriter, r *http.Request) {
	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, invalidInput("invalid request body"))
		return
	}
	req.Receipt = r.Header.Get(receiptHeader)

	res, claimErr := h.claims.Claim(&req)
	if claimErr != nil {
		writeError(w, claimErr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type registrationsResponse struct {
	Registrations []models.Registration `json:"registrations"`
}

// Registrations returns the recent claim feed.
func (h *Handlers) Registrations(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, invalidInput("invalid limit"))
			return
		}
		limit = parsed
	}

	registrations, err := h.claims.Store().GetRecent(limit)
	if err != nil {
		writeError(w, serviceError("error fetching registrations"))
		return
	}
	if registrations == nil {
		registrations = []models.Registration{}
	}
	writeJSON(w, http.StatusOK, registrationsResponse{Registrations: registrations})
}

type healthResponse struct {
	Healthy bool           `json:"healthy"`
	Health  *models.Health `json:"health,omitempty"`
}

// Health reports liveness plus the last recorded health document. No document
// yet just means the first health post has not landed; a read error means the
// database is unreachable and the endpoint reports degraded.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	health, err := h.health.LastHealth()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeJSON(w, http.StatusOK, healthResponse{Healthy: true})
			return
		}
		log.WithError(err).Error("[HEALTH] error reading last health")
		writeJSON(w, http.StatusOK, healthResponse{Healthy: false})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Healthy: health.Healthy, Health: &health})
}
