package exchange

import (
	"errors"
	"fmt"

	"github.com/adshao/go-binance/v2/common"
)

// Kind buckets an exchange failure for the handler boundary.
type Kind int

const (
	// KindUnauthorized: the configured credentials were rejected.
	KindUnauthorized Kind = iota + 1
	// KindRateLimited: the exchange asked us to back off.
	KindRateLimited
	// KindNotFound: the referenced order does not exist.
	KindNotFound
	// KindUpstream: any other exchange-reported failure.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate_limited"
	case KindNotFound:
		return "not_found"
	default:
		return "upstream"
	}
}

// Error is an exchange failure already classified into a Kind. Code is
// the exchange's native error code when one was reported.
type Error struct {
	Kind    Kind
	Code    int64
	Message string
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("exchange: %s (code %d): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("exchange: %s: %s", e.Kind, e.Message)
}

// Binance error codes worth distinguishing. Everything else is generic
// upstream failure.
const (
	codeTooManyRequests = -1003
	codeTooManyOrders   = -1015
	codeUnknownOrder    = -2011
	codeNoSuchOrder     = -2013
	codeInvalidAPIKey   = -2014
	codeRejectedAPIKey  = -2015
)

// Classify wraps any error from the exchange client into an *Error.
// Already-classified errors pass through unchanged.
func Classify(err error) *Error {
	var exErr *Error
	if errors.As(err, &exErr) {
		return exErr
	}

	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		kind := KindUpstream
		switch apiErr.Code {
		case codeInvalidAPIKey, codeRejectedAPIKey:
			kind = KindUnauthorized
		case codeTooManyRequests, codeTooManyOrders:
			kind = KindRateLimited
		case codeUnknownOrder, codeNoSuchOrder:
			kind = KindNotFound
		}
		return &Error{Kind: kind, Code: apiErr.Code, Message: apiErr.Message}
	}

	return &Error{Kind: KindUpstream, Message: err.Error()}
}
