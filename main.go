package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/agromarket-api/config"
	"github.com/Kariqs/agromarket-api/controllers"
	"github.com/Kariqs/agromarket-api/experts"
	"github.com/Kariqs/agromarket-api/initializers"
	"github.com/Kariqs/agromarket-api/listing"
	"github.com/Kariqs/agromarket-api/middlewares"
	"github.com/Kariqs/agromarket-api/payments"
	"github.com/Kariqs/agromarket-api/routes"
	"github.com/Kariqs/agromarket-api/services"
	"github.com/Kariqs/agromarket-api/storage"
	"github.com/Kariqs/agromarket-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	cfg := initializers.LoadEnv()
	if err := initializers.InitLogger(cfg); err != nil {
		panic(err)
	}
	initializers.ConnectToDB(cfg)
	if err := initializers.SyncDatabase(initializers.DB); err != nil {
		initializers.Logger.Fatal("database migration failed", zap.Error(err))
	}
}

func expertRepository(ctx context.Context, cfg *config.Config) experts.Repository {
	if cfg.ExpertStore != "mongo" {
		return experts.NewGormRepository(initializers.DB)
	}
	mongoDB, err := initializers.ConnectToMongo(ctx, cfg)
	if err != nil {
		initializers.Logger.Fatal("could not connect to mongo", zap.Error(err))
	}
	initializers.Logger.Info("expert profiles stored in mongo", zap.String("database", cfg.Mongo.Database))
	return experts.NewMongoRepository(mongoDB)
}

func main() {
	cfg := initializers.Config
	logger := initializers.Logger
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := initializers.ConnectToRedis(ctx, cfg)
	if err != nil {
		logger.Warn("listing cache disabled", zap.Error(err))
	}
	var cache *listing.Cache
	if redisClient != nil {
		cache = listing.NewCache(redisClient, logger)
		defer redisClient.Close()
	}

	uploader, err := storage.New(ctx, cfg.Storage.Driver, cfg.Storage.Bucket, cfg.Storage.MaxInlineSize)
	if err != nil {
		logger.Fatal("could not configure storage", zap.Error(err))
	}

	var sender services.Sender
	smtpSender := utils.SMTPSender{
		From:     cfg.Mail.From,
		Password: cfg.Mail.Password,
		Host:     cfg.Mail.SMTPHost,
		Address:  cfg.Mail.SMTPAddress,
	}
	if smtpSender.Configured() {
		sender = smtpSender
	} else {
		logger.Warn("smtp not configured, emails will be logged as failed")
	}

	controllers.Configure(controllers.Dependencies{
		Config:   cfg,
		Cache:    cache,
		Uploader: uploader,
		Experts:  expertRepository(ctx, cfg),
		Mailer:   services.NewMailer(sender, initializers.DB, logger),
		Pesapal:  payments.NewPesapalClient(cfg.Pesapal),
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	server := gin.New()
	server.Use(gin.Recovery(), middlewares.RequestLogger(logger), middlewares.Metrics())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.Register(server, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
