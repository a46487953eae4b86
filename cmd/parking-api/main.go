// README: Entry point; loads config, wires stores and services, serves HTTP until SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"parking/internal/config"
	httptransport "parking/internal/http"
	"parking/internal/infra"
	"parking/internal/logger"
	"parking/internal/maps"
	"parking/internal/modules/allocation"
	"parking/internal/modules/lot"
	"parking/internal/modules/pricing"
	"parking/internal/modules/vehicle"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, zl); err != nil {
		zl.Fatal("parking-api stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var verifier infra.TokenVerifier
	if cfg.Auth.Disabled {
		zl.Warn("authentication disabled; every caller is treated as operator")
	} else {
		v, err := infra.NewFirebaseVerifier(ctx, cfg.Auth.ProjectID, cfg.Auth.CredentialsFile)
		if err != nil {
			return err
		}
		verifier = v
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		zl.Info("no redis address; rate schedules are read from postgres on every quote")
	}

	var geocoder lot.Geocoder
	if cfg.Maps.APIKey != "" {
		g, err := maps.NewGeocoder(cfg.Maps.APIKey, cfg.Maps.Region)
		if err != nil {
			return err
		}
		geocoder = g
	}

	pricingStore := pricing.NewStore(dbPool, redisClient, cfg.Pricing.RateCacheTTL, zl.Named("pricing"))
	pricingSvc := pricing.NewService(pricingStore, zl.Named("pricing"))

	lotSvc := lot.NewService(lot.NewStore(dbPool), geocoder, pricingStore, zl.Named("lot"))
	vehicleSvc := vehicle.NewService(vehicle.NewStore(dbPool), zl.Named("vehicle"))
	allocationSvc := allocation.NewService(
		allocation.NewStore(dbPool), lotSvc, vehicleSvc, pricingSvc, zl.Named("allocation"),
	)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Pricing:      pricingSvc,
		Lots:         lotSvc,
		Vehicles:     vehicleSvc,
		Allocations:  allocationSvc,
		Verifier:     verifier,
		AuthDisabled: cfg.Auth.Disabled,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		Log:          zl.Named("http"),
	})
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("listening", zap.String("addr", cfg.HTTP.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down", zap.Duration("timeout", cfg.HTTP.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
