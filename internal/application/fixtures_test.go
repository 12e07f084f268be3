package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-movie-catalog/config"
	"github.com/oksasatya/go-movie-catalog/internal/domain/entity"
	"github.com/oksasatya/go-movie-catalog/internal/infrastructure/memory"
	"github.com/oksasatya/go-movie-catalog/pkg/helpers"
	"github.com/oksasatya/go-movie-catalog/pkg/mailer"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) last() mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return mailer.Message{}
	}
	return m.sent[len(m.sent)-1]
}

type authFixture struct {
	svc   *AuthService
	users *memory.UserRepository
	mail  *fakeMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	jm, err := helpers.NewJWTManager("session-secret", "reset-secret", 0, 0)
	require.NoError(t, err)
	cfg := &config.Config{AppName: "movies", CompanyName: "Movie Catalog", ClientURL: "http://client.test/"}
	users := memory.NewUserRepository()
	mail := &fakeMailer{}
	svc := NewAuthService(users, jm, helpers.NewPasswordHasher(bcrypt.MinCost), mail, cfg, helpers.NewDiscardLogger())
	return &authFixture{svc: svc, users: users, mail: mail}
}

func (f *authFixture) register(t *testing.T, username, email, password string) *entity.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), RegisterInput{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)
	return u
}

func (f *authFixture) stored(t *testing.T, id string) *entity.User {
	t.Helper()
	u, err := f.users.GetByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

var errSMTP = errors.New("smtp: connection refused")
