package application

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-movie-catalog/config"
	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	repo "github.com/oksasatya/go-movie-catalog/internal/domain/repository"
	"github.com/oksasatya/go-movie-catalog/pkg/apperr"
	"github.com/oksasatya/go-movie-catalog/pkg/helpers"
	"github.com/oksasatya/go-movie-catalog/pkg/mailer"
	mailtpl "github.com/oksasatya/go-movie-catalog/pkg/mailer/templates"
)

// AuthService runs registration, login and the password reset lifecycle.
type AuthService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Hasher *helpers.PasswordHasher
	Mailer mailer.Sender
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewAuthService(repo repo.UserRepository, jwt *helpers.JWTManager, hasher *helpers.PasswordHasher, mail mailer.Sender, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Repo:   repo,
		JWT:    jwt,
		Hasher: hasher,
		Mailer: mail,
		Cfg:    cfg,
		Logger: logger,
	}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates an account with role user. Roles are never taken from
// the request; admins are provisioned by cmd/seed.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	existing, err := s.Repo.GetByEmailOrUsername(ctx, in.Email, in.Username)
	switch {
	case err == nil && existing != nil:
		return nil, ErrUserExists
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, apperr.Internal(err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	u := &entity.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hash,
		Role:      entity.RoleUser,
		Favorites: []string{},
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, apperr.Internal(err)
	}
	authStats.Add(statRegistered, 1)
	s.Logger.WithField("user_id", u.ID).Info("user registered")
	return u, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password are reported differently.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			authStats.Add(statLoginFailed, 1)
			return "", time.Time{}, ErrUserDoesNotExist
		}
		return "", time.Time{}, apperr.Internal(err)
	}
	if !s.Hasher.Verify(password, u.Password) {
		authStats.Add(statLoginFailed, 1)
		s.Logger.WithField("user_id", u.ID).Debug("login rejected: password mismatch")
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateSessionToken(helpers.SessionUser{
		ID:    u.ID,
		Email: u.Email,
		Role:  string(u.Role),
	})
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		return "", time.Time{}, apperr.Internal(err)
	}
	authStats.Add(statLoginOK, 1)
	return token, exp, nil
}

// ForgotPassword issues a reset token, stores it on the user (replacing any
// earlier one) and mails the link. A mail failure is reported as a server
// error but the stored token is kept.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrForgotUserMissing
		}
		return apperr.Internal(err)
	}

	token, exp, err := s.JWT.GenerateResetToken(u.ID)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.Repo.SetResetToken(ctx, u.ID, token); err != nil {
		return apperr.Internal(err)
	}
	authStats.Add(statResetRequested, 1)

	msg, err := s.resetMessage(u.Email, token, exp)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		authStats.Add(statResetMailFail, 1)
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("send password reset email failed")
		return apperr.Internal(err)
	}
	s.Logger.WithField("user_id", u.ID).Info("password reset email sent")
	return nil
}

func (s *AuthService) resetMessage(to, token string, exp time.Time) (mailer.Message, error) {
	data := mailtpl.NewPasswordResetData(
		s.Cfg.CompanyName,
		s.Cfg.AppName,
		s.Cfg.ClientURL,
		to,
		mailtpl.WithResetURL(s.Cfg.ResetLink(token)),
		mailtpl.WithExpiresAt(exp),
	)
	subject, text, html, err := mailtpl.Render(mailtpl.PasswordReset, data)
	if err != nil {
		return mailer.Message{}, err
	}
	return mailer.Message{To: to, Subject: subject, Text: text, HTML: html}, nil
}

// ResetPassword accepts only the most recently issued, unexpired reset token
// for the user and consumes it together with the password change.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" || newPassword == "" {
		return ErrResetFieldsRequired
	}

	claims, err := s.JWT.ParseResetToken(token)
	if err != nil {
		authStats.Add(statResetRejected, 1)
		s.Logger.WithError(err).Debug("reset token rejected")
		return ErrInvalidToken
	}

	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrResetUserMissing
		}
		return apperr.Internal(err)
	}
	if u.ResetPasswordLink == "" || subtle.ConstantTimeCompare([]byte(u.ResetPasswordLink), []byte(token)) != 1 {
		authStats.Add(statResetRejected, 1)
		s.Logger.WithField("user_id", u.ID).Debug("reset token is not the pending one")
		return ErrInvalidToken
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.Repo.ResetPassword(ctx, u.ID, token, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// consumed or replaced since the lookup above
			authStats.Add(statResetRejected, 1)
			return ErrInvalidToken
		}
		return apperr.Internal(err)
	}
	authStats.Add(statResetCompleted, 1)
	s.Logger.WithField("user_id", u.ID).Info("password reset completed")
	return nil
}
