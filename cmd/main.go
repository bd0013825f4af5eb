package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/oppradar/oppradar/internal/api"
	"github.com/oppradar/oppradar/internal/clients/exa"
	"github.com/oppradar/oppradar/internal/config"
	"github.com/oppradar/oppradar/internal/logger"
	"github.com/oppradar/oppradar/internal/metrics"
	"github.com/oppradar/oppradar/internal/notifier"
	"github.com/oppradar/oppradar/internal/repositories"
	"github.com/oppradar/oppradar/internal/services"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.API.MetricsPort)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	opportunities := repositories.NewOpportunitiesRepository(dbContext.DB)
	searchRuns := repositories.NewSearchRunsRepository(dbContext.DB)

	exaClient := exa.NewClient(exa.Config{
		APIKey:  cfg.Exa.APIKey,
		BaseURL: cfg.Exa.BaseURL,
		Timeout: cfg.Exa.Timeout,
	})
	if cfg.Exa.MaxRequestsPerSecond > 0 {
		exaClient.SetRateLimit(cfg.Exa.MaxRequestsPerSecond)
	}

	bus := EventBus.New()

	if cfg.Notifier.TgToken != "" {
		tgNotifier, err := notifier.NewTelegramNotifier(cfg.Notifier.TgToken, cfg.Notifier.TgChatID, bus)
		if err != nil {
			log.Fatalf("can't create telegram notifier: %v", err)
		}
		defer tgNotifier.Stop()
	}

	if cfg.Cleanup.RunRetentionInDays > 0 {
		cleaner, err := services.NewSearchRunsCleaner(searchRuns, cfg.Cleanup.RunRetentionInDays)
		if err != nil {
			log.Fatalf("can't create search runs cleaner: %v", err)
		}
		defer cleaner.Stop()
	}

	ingestor := services.NewIngestor(bus, exaClient, opportunities, searchRuns)
	queries := services.NewQueryService(opportunities)

	server := api.NewServer(cfg.API.Port, cfg.API.Keys, ingestor, queries)
	go server.Run()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Errorf("api server shutdown failed: %v", err)
	}
	log.Info("Services stopped.")
}
