package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Krisnadwisaputra/Lumos-Trade/internal/config"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/data"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/exchange"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/handler"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/market"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/middleware"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/routes"
	"github.com/Krisnadwisaputra/Lumos-Trade/internal/service"
)

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Decide the mode once. Missing credentials or any failure to reach
	// the exchange means the whole process lifetime runs simulated.
	mode := exchange.ModeSimulated
	var exClient exchange.Client
	if cfg.BinanceAPIKey != "" && cfg.BinanceAPISecret != "" {
		bc := exchange.NewBinance(cfg.BinanceAPIKey, cfg.BinanceAPISecret, cfg.ExchangeTimeout)
		probeCtx, cancel := context.WithTimeout(ctx, cfg.ExchangeTimeout)
		_, probeErr := bc.Balances(probeCtx)
		cancel()
		if probeErr != nil {
			logger.Warn("exchange connection failed, falling back to simulation", zap.Error(probeErr))
		} else {
			mode = exchange.ModeLive
			exClient = bc
			logger.Info("connected to exchange")
		}
	} else {
		logger.Info("no exchange credentials configured, running in simulation mode")
	}

	store := market.NewStore()

	// The ticker cache only matters when requests actually reach the
	// exchange; a missing Redis just means every request goes upstream.
	var cacheService *service.CacheService
	if mode == exchange.ModeLive {
		redisConn, redisErr := data.NewRedis(cfg.Redis)
		if redisErr != nil {
			logger.Warn("redis connection failed, proceeding without cache", zap.Error(redisErr))
		} else {
			defer redisConn.Close()
			cacheService = service.NewCacheService(redisConn.Client, cfg.PriceCacheTTL)
			logger.Info("price cache initialized")
		}
	}

	handle := handler.New(handler.Deps{
		Mode:          mode,
		Exchange:      exClient,
		Store:         store,
		Cache:         cacheService,
		Logger:        logger,
		DefaultSymbol: cfg.DefaultSymbol,
	})

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Upgrade", "Connection"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        24 * time.Hour,
	}
	if cfg.CORSOrigin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSOrigin}
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	routes.HealthRoutes(r, handle)
	routes.MarketRoutes(r, handle)
	routes.ExchangeRoutes(r, handle)
	routes.WebSocketRoutes(r, handle)
	routes.StaticRoutes(r, cfg.StaticDir)

	g, ctx := errgroup.WithContext(ctx)

	if mode == exchange.ModeSimulated {
		sim := market.NewSimulator(store, cfg.SimInterval, cfg.SimDrift, logger)
		g.Go(func() error { return sim.Run(ctx) })
		g.Go(func() error { return handle.Hub.Run(ctx) })
		g.Go(func() error { return handle.Hub.Broadcast(ctx, cfg.SimInterval) })
	}

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	g.Go(func() error {
		logger.Info("http listening",
			zap.String("port", cfg.Port),
			zap.String("mode", mode.String()),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
