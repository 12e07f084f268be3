package router

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-movie-catalog/config"
	"github.com/oksasatya/go-movie-catalog/internal/application"
	"github.com/oksasatya/go-movie-catalog/internal/container"
	repo "github.com/oksasatya/go-movie-catalog/internal/domain/repository"
	"github.com/oksasatya/go-movie-catalog/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-movie-catalog/internal/infrastructure/postgres"
	"github.com/oksasatya/go-movie-catalog/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-movie-catalog/internal/interface/http"
	"github.com/oksasatya/go-movie-catalog/internal/interface/middleware"
	"github.com/oksasatya/go-movie-catalog/internal/router/modules"
	"github.com/oksasatya/go-movie-catalog/pkg/helpers"
	"github.com/oksasatya/go-movie-catalog/pkg/mailer"
)

// Deps is everything the feature modules need. Optional collaborators
// (Redis, Index, Uploader) stay nil when not configured.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	JWT    *helpers.JWTManager
	Hasher *helpers.PasswordHasher
	Mailer mailer.Sender

	Users    repo.UserRepository
	Movies   repo.MovieRepository
	Comments repo.CommentRepository

	Redis    redis.Cmdable
	CacheTTL time.Duration
	Index    application.MovieIndex
	Uploader application.ObjectUploader
}

// DepsFromContainer builds Deps from the singletons main placed in the
// container, picking repositories by STORAGE_DRIVER.
func DepsFromContainer() Deps {
	cfg := container.GetConfig()
	d := Deps{
		Cfg:      cfg,
		Logger:   container.GetLogger(),
		JWT:      container.GetJWT(),
		Hasher:   helpers.NewPasswordHasher(cfg.BcryptCost),
		Mailer:   container.GetMailer(),
		CacheTTL: cfg.MovieCacheTTL,
	}

	if cfg.StorageDriver == "memory" {
		d.Users = memory.NewUserRepository()
		d.Movies = memory.NewMovieRepository()
		d.Comments = memory.NewCommentRepository()
	} else {
		pool := container.GetPGPool()
		d.Users = pginfra.NewUserRepository(pool)
		d.Movies = pginfra.NewMovieRepository(pool)
		d.Comments = pginfra.NewCommentRepository(pool)
	}

	if rdb := container.GetRedis(); rdb != nil {
		d.Redis = rdb
	}
	if es := container.GetES(); es != nil {
		d.Index = search.NewMovieIndex(es, cfg.ESMoviesIndex)
	}
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		d.Uploader = helpers.NewGCSUploader(gcs, cfg.GCSBucket)
	}
	return d
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, d Deps) {
	auth := middleware.Auth(d.JWT, d.Logger)

	authSvc := application.NewAuthService(d.Users, d.JWT, d.Hasher, d.Mailer, d.Cfg, d.Logger)
	userSvc := application.NewUserService(d.Users, d.Movies, d.Logger)
	movieSvc := application.NewMovieService(d.Movies, d.Redis, d.CacheTTL, d.Index, d.Uploader, d.Logger)
	commentSvc := application.NewCommentService(d.Comments, d.Movies, d.Logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(authSvc, userSvc, d.Logger), auth))
	r.Add(modules.NewMovieModule(handlers.NewMovieHandler(movieSvc, d.Logger), auth))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(commentSvc, d.Logger), auth))
	if d.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(auth))
	}
}
