// README: Entry point; loads config, wires stores and services, starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"physio/internal/ai"
	"physio/internal/config"
	httptransport "physio/internal/http"
	"physio/internal/infra"
	"physio/internal/logger"
	"physio/internal/modules/appointment"
	"physio/internal/modules/assist"
	"physio/internal/modules/catalog"
	"physio/internal/modules/client"
	"physio/internal/modules/provider"
)

func main() {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer gemini.Close()

	appointmentStore := appointment.NewStore(dbPool)
	appointmentSvc := appointment.NewService(appointmentStore)

	assistSvc := assist.NewService(gemini, appointmentSvc)

	clientStore := client.NewStore(dbPool)
	clientSvc := client.NewService(clientStore)

	providerStore := provider.NewStore(dbPool)
	providerSvc := provider.NewService(providerStore)

	catalogStore := catalog.NewStore(dbPool)
	catalogCache := catalog.NewCache(redisClient, cfg.Cache.LookupTTL)
	catalogSvc := catalog.NewService(catalogStore, catalogCache)

	handler := httptransport.NewRouter(assistSvc, appointmentSvc, clientSvc, providerSvc, catalogSvc)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", cfg.HTTP.Addr).Info("listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
