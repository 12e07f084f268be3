package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMissing   = errors.New("token missing")
	ErrTokenMalformed = errors.New("token malformed or signature mismatch")
	ErrTokenExpired   = errors.New("token expired")

	ErrSessionSecretRequired = errors.New("session signing secret is required")
	ErrResetSecretRequired   = errors.New("reset signing secret is required")
	ErrSecretsMustDiffer     = errors.New("session and reset secrets must differ")
)

const (
	DefaultSessionTTL = 36000 * time.Second
	DefaultResetTTL   = 24 * time.Hour
)

// JWTManager issues and verifies the two token kinds. Session and reset tokens
// are signed with different secrets, so neither verifies as the other.
type JWTManager struct {
	SessionSecret []byte
	ResetSecret   []byte
	SessionTTL    time.Duration
	ResetTTL      time.Duration

	now func() time.Time
}

func NewJWTManager(sessionSecret, resetSecret string, sessionTTL, resetTTL time.Duration) (*JWTManager, error) {
	if sessionSecret == "" {
		return nil, ErrSessionSecretRequired
	}
	if resetSecret == "" {
		return nil, ErrResetSecretRequired
	}
	if sessionSecret == resetSecret {
		return nil, ErrSecretsMustDiffer
	}
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	if resetTTL <= 0 {
		resetTTL = DefaultResetTTL
	}
	return &JWTManager{
		SessionSecret: []byte(sessionSecret),
		ResetSecret:   []byte(resetSecret),
		SessionTTL:    sessionTTL,
		ResetTTL:      resetTTL,
		now:           time.Now,
	}, nil
}

// SessionUser is the identity embedded in a session token.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SessionClaims struct {
	User SessionUser `json:"user"`
	jwt.RegisteredClaims
}

type ResetClaims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

func (m *JWTManager) registered(ttl time.Duration) (jwt.RegisteredClaims, time.Time) {
	now := m.now()
	exp := now.Add(ttl)
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}, exp
}

func (m *JWTManager) GenerateSessionToken(u SessionUser) (string, time.Time, error) {
	rc, exp := m.registered(m.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{User: u, RegisteredClaims: rc})
	s, err := t.SignedString(m.SessionSecret)
	return s, exp, err
}

func (m *JWTManager) GenerateResetToken(userID string) (string, time.Time, error) {
	rc, exp := m.registered(m.ResetTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &ResetClaims{UserID: userID, RegisteredClaims: rc})
	s, err := t.SignedString(m.ResetSecret)
	return s, exp, err
}

func (m *JWTManager) ParseSessionToken(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := m.parse(tokenStr, claims, m.SessionSecret); err != nil {
		return nil, err
	}
	if claims.User.ID == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

func (m *JWTManager) ParseResetToken(tokenStr string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := m.parse(tokenStr, claims, m.ResetSecret); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

func (m *JWTManager) parse(tokenStr string, claims jwt.Claims, secret []byte) error {
	if tokenStr == "" {
		return ErrTokenMissing
	}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenMalformed
	}
	if !tkn.Valid {
		return ErrTokenMalformed
	}
	return nil
}
