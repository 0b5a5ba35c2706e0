package service

import (
	"fmt"
	"net/http"
)

// Kind classifies a claim failure so clients can branch on it.
type Kind string

const (
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindInvalidInput    Kind = "INVALID_INPUT"
	KindForbidden       Kind = "FORBIDDEN"
	KindConflict        Kind = "CONFLICT"
	KindPaymentRequired Kind = "PAYMENT_REQUIRED"
	KindPaymentInvalid  Kind = "PAYMENT_INVALID"
	KindServiceError    Kind = "SERVICE_ERROR"
)

// Error is the claim pipeline's failure type. PaymentRequired errors carry
// the quoted price so the caller can pay and retry the same claim.
type Error struct {
	Kind   Kind
	Reason string

	// set only for KindPaymentRequired
	PriceEth     string
	BasePriceEth string
	PaymentToken string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindPaymentRequired, KindPaymentInvalid:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func unauthorized(reason string) *Error {
	return &Error{Kind: KindUnauthorized, Reason: reason}
}

func invalidInput(reason string) *Error {
	return &Error{Kind: KindInvalidInput, Reason: reason}
}

func forbidden(reason string) *Error {
	return &Error{Kind: KindForbidden, Reason: reason}
}

func conflict(reason string) *Error {
	return &Error{Kind: KindConflict, Reason: reason}
}

func paymentInvalid(reason string) *Error {
	return &Error{Kind: KindPaymentInvalid, Reason: reason}
}

func serviceError(reason string) *Error {
	return &Error{Kind: KindServiceError, Reason: reason}
}
