package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"markova/internal/adapter/repo"
	"markova/internal/genai"
	"markova/internal/generation"
	"markova/internal/http/handlers"
	"markova/internal/http/httpapi"
	"markova/internal/infra"
	"markova/internal/infra/credentials"
	"markova/internal/infra/geoip"
	"markova/internal/materialize"
	"markova/internal/poller"
	"markova/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()
	sqlRunner := infra.NewSQLRunner(dbpool, logger)

	brandKits := repo.NewBrandKitRepository(sqlRunner)
	campaigns := repo.NewCampaignRepository(sqlRunner)
	users := repo.NewUserRepository(sqlRunner)
	videos := repo.NewVideoRepository(sqlRunner)

	// The environment key wins; the stored key lets operators rotate without a redeploy.
	creds := credentials.Chain{
		credentials.EnvProvider{Key: cfg.GeminiAPIKey},
		credentials.StoreProvider{Store: credentials.NewStore(sqlRunner)},
	}
	client := genai.NewClient(genai.Options{
		Credentials: creds,
		BaseURL:     cfg.GeminiBaseURL,
		Logger:      &logger,
	})
	service := generation.NewService(client, brandKits, generation.Models{
		Text:       cfg.GeminiTextModel,
		Image:      cfg.GeminiImageModel,
		VeoFast:    cfg.VeoFastModel,
		VeoQuality: cfg.VeoQualityModel,
	}, &logger)

	store, err := storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare storage")
	}
	media, err := materialize.NewVideos(cfg.VideoDelivery, client, store)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid video delivery")
	}
	videoPoller := &poller.Poller{
		Interval: cfg.VideoPollInterval,
		Timeout:  cfg.VideoPollTimeout,
		Logger:   &logger,
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	if closer, ok := resolver.(io.Closer); ok {
		defer closer.Close()
	}

	app := &handlers.App{
		Config:       cfg,
		Logger:       logger,
		Credentials:  creds,
		Generator:    service,
		CampaignFlow: generation.NewCampaignFlow(service, campaigns, cfg.CampaignImageDelay, &logger),
		VideoJobs:    generation.NewVideoJobs(service, videoPoller, media, videos, &logger),
		BrandKits:    brandKits,
		Campaigns:    campaigns,
		Users:        users,
		Plans:        repo.NewPlanRepository(sqlRunner),
		Strategies:   repo.NewStrategyRepository(sqlRunner),
		Videos:       videos,
	}

	router := httpapi.NewRouter(app, geoip.Lookup(resolver))
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("video_delivery", cfg.VideoDelivery).
			Dur("video_poll_interval", cfg.VideoPollInterval).
			Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
