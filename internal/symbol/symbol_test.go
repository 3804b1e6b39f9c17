package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToExchange(t *testing.T) {
	assert.Equal(t, "BTCUSDT", ToExchange("BTC/USDT"))
	assert.Equal(t, "ETHUSDT", ToExchange("eth/usdt"))
	assert.Equal(t, "BTCUSDT", ToExchange(" BTCUSDT "))
}

func TestToDisplay(t *testing.T) {
	assert.Equal(t, "ETH/USDT", ToDisplay("ETHUSDT"))
	assert.Equal(t, "BTC/USDT", ToDisplay("BTC/USDT"))
	assert.Equal(t, "SOL/BTC", ToDisplay("SOLBTC"))
	// no recognized quote asset: pass through
	assert.Equal(t, "FOOBAR", ToDisplay("FOOBAR"))
}

func TestRoundTrip(t *testing.T) {
	for _, display := range []string{"ETH/USDT", "BTC/USDT", "BNB/BUSD", "ETH/BTC"} {
		assert.Equal(t, display, ToDisplay(ToExchange(display)))
	}
}
