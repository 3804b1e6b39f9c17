package exchange

import (
	"errors"
	"testing"

	"github.com/adshao/go-binance/v2/common"
	"github.com/stretchr/testify/assert"
)

func TestClassifyAPIErrors(t *testing.T) {
	cases := []struct {
		code int64
		want Kind
	}{
		{-2014, KindUnauthorized},
		{-2015, KindUnauthorized},
		{-1003, KindRateLimited},
		{-1015, KindRateLimited},
		{-2011, KindNotFound},
		{-2013, KindNotFound},
		{-1121, KindUpstream}, // invalid symbol
	}
	for _, tc := range cases {
		got := Classify(&common.APIError{Code: tc.code, Message: "boom"})
		assert.Equal(t, tc.want, got.Kind, "code %d", tc.code)
		assert.Equal(t, tc.code, got.Code)
	}
}

func TestClassifyPlainError(t *testing.T) {
	got := Classify(errors.New("connection refused"))
	assert.Equal(t, KindUpstream, got.Kind)
	assert.Zero(t, got.Code)
}

func TestClassifyPassesThroughClassified(t *testing.T) {
	orig := &Error{Kind: KindNotFound, Message: "unknown order id x"}
	assert.Same(t, orig, Classify(orig))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "simulation", ModeSimulated.String())
	assert.Equal(t, "connected_to_exchange", ModeLive.String())
}
