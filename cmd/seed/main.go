package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-movie-catalog/config"
	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	"github.com/oksasatya/go-movie-catalog/internal/domain/repository"
	pginfra "github.com/oksasatya/go-movie-catalog/internal/infrastructure/postgres"
	"github.com/oksasatya/go-movie-catalog/pkg/helpers"
)

// seed creates the admin account, or promotes it when the email is already
// registered. Registration never grants admin, so this is the only way in.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	email := os.Getenv("SEED_ADMIN_EMAIL")
	username := os.Getenv("SEED_ADMIN_USERNAME")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}
	if username == "" {
		username = "admin"
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	users := pginfra.NewUserRepository(pool)
	log := logger.WithField("email", email)

	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if err := users.SetRole(ctx, existing.ID, entity.RoleAdmin); err != nil {
			log.WithError(err).Fatal("failed to promote user")
		}
		log.WithField("id", existing.ID).Info("promoted existing user to admin")
		return
	case !errors.Is(err, repository.ErrNotFound):
		log.WithError(err).Fatal("failed to look up user")
	}

	hash, err := helpers.NewPasswordHasher(cfg.BcryptCost).Hash(password)
	if err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}
	u := &entity.User{Username: username, Email: email, Password: hash, Role: entity.RoleAdmin}
	if err := users.Create(ctx, u); err != nil {
		log.WithError(err).Fatal("failed to create admin")
	}
	log.WithField("id", u.ID).Info("seeded admin user")
}
