package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-movie-catalog/config"
	"github.com/oksasatya/go-movie-catalog/internal/container"
	pginfra "github.com/oksasatya/go-movie-catalog/internal/infrastructure/postgres"
	"github.com/oksasatya/go-movie-catalog/internal/interface/middleware"
	"github.com/oksasatya/go-movie-catalog/internal/router"
	"github.com/oksasatya/go-movie-catalog/pkg/helpers"
	"github.com/oksasatya/go-movie-catalog/pkg/mailer"
	"github.com/oksasatya/go-movie-catalog/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	if cfg.StorageDriver == "memory" {
		logger.Warn("STORAGE_DRIVER=memory; data is lost on restart")
	} else {
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to postgres")
		}
		defer pool.Close()
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.WithError(err).Fatal("migration failed")
		}
		container.SetPGPool(pool)
	}

	// Redis backs the movie list cache; the API keeps serving from storage without it.
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable; movie cache disabled")
			_ = rdb.Close()
		} else {
			defer func() { _ = rdb.Close() }()
			container.SetRedis(rdb)
		}
		cancel()
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Fatal("failed to init elasticsearch client")
		}
		container.SetES(es)
	}

	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Fatal("failed to init GCS client")
		}
		defer func() { _ = gcsClient.Close() }()
		container.SetGCS(gcsClient)
	}

	jwtManager, err := helpers.NewJWTManager(cfg.JWTSessionSecret, cfg.JWTResetSecret, cfg.SessionTTL, cfg.ResetTTL)
	if err != nil {
		logger.WithError(err).Fatal("failed to init jwt manager")
	}

	sender, closeMail := newMailer(cfg, logger)
	defer closeMail()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(jwtManager)
	container.SetMailer(sender)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.TokenHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg, router.DepsFromContainer())
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// newMailer picks the delivery path for outgoing mail. The returned func
// releases whatever connection the sender holds.
func newMailer(cfg *config.Config, logger *logrus.Logger) (mailer.Sender, func()) {
	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; emails are logged, not sent")
		return mailer.NewLogMailer(logger), func() {}
	}
	switch cfg.MailTransport {
	case "direct":
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			logger.Fatal("MAIL_TRANSPORT=direct needs MAILGUN_DOMAIN, MAILGUN_API_KEY and MAILGUN_SENDER")
		}
		return mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender), func() {}
	case "queue":
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to rabbitmq")
		}
		logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("emails are queued for the email worker")
		return mailer.NewQueueMailer(pub), pub.Close
	default:
		logger.Fatalf("unknown MAIL_TRANSPORT %q (want queue or direct)", cfg.MailTransport)
		return nil, nil
	}
}
