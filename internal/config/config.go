package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Redis struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Config struct {
	Port string `env:"PORT" envDefault:"5000"`

	// Both must be set (and accepted by the exchange) for live mode.
	BinanceAPIKey    string `env:"BINANCE_API_KEY"`
	BinanceAPISecret string `env:"BINANCE_API_SECRET"`

	DefaultSymbol   string        `env:"DEFAULT_SYMBOL" envDefault:"BTC/USDT"`
	SimInterval     time.Duration `env:"SIM_INTERVAL" envDefault:"2s"`
	SimDrift        float64       `env:"SIM_DRIFT" envDefault:"0.1"`
	ExchangeTimeout time.Duration `env:"EXCHANGE_TIMEOUT" envDefault:"10s"`
	PriceCacheTTL   time.Duration `env:"PRICE_CACHE_TTL" envDefault:"2s"`

	StaticDir  string `env:"STATIC_DIR" envDefault:"./client/dist"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	Redis Redis
}

func Load() (Config, error) {
	var cfg Config
	return cfg, env.Parse(&cfg)
}
