package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/social-network/internal/core/domain"
	"github.com/99minutos/social-network/internal/core/ports"
)

type stubLimiter struct {
	blocked  bool
	allowErr error
	attempts []string
	resets   []string
}

func (l *stubLimiter) Allow(_ context.Context, username string) (bool, error) {
	l.attempts = append(l.attempts, username)
	if l.allowErr != nil {
		return false, l.allowErr
	}
	return !l.blocked, nil
}

func (l *stubLimiter) Reset(_ context.Context, username string) error {
	l.resets = append(l.resets, username)
	return nil
}

func annInput() ports.RegisterInput {
	return ports.RegisterInput{Name: "Ann", Username: "ann", Email: "a@x.com", Password: "pw1"}
}

func TestAuthService_Register_Success(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(store, nil, "secret", time.Hour, discardLogger)

	account, err := svc.Register(context.Background(), annInput())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.ID == "" {
		t.Fatalf("expected an assigned ID")
	}
	if account.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if account.Following == nil || account.Followers == nil {
		t.Fatalf("relationship lists must start empty, not nil")
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := NewAuthService(newMemStore(), nil, "secret", time.Hour, discardLogger)

	in := annInput()
	in.Email = ""
	if _, err := svc.Register(context.Background(), in); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthService_Register_DuplicateUsernameOrEmail(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(store, nil, "secret", time.Hour, discardLogger)

	if _, err := svc.Register(context.Background(), annInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	sameUsername := annInput()
	sameUsername.Email = "other@x.com"
	if _, err := svc.Register(context.Background(), sameUsername); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists for username, got %v", err)
	}

	sameEmail := annInput()
	sameEmail.Username = "ann2"
	if _, err := svc.Register(context.Background(), sameEmail); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists for email, got %v", err)
	}

	if len(store.accounts) != 1 {
		t.Fatalf("expected 1 stored account, got %d", len(store.accounts))
	}
}

func TestAuthService_Register_LookupError(t *testing.T) {
	store := newMemStore()
	store.existsErr = errors.New("mongo down")
	svc := NewAuthService(store, nil, "secret", time.Hour, discardLogger)

	if _, err := svc.Register(context.Background(), annInput()); err == nil || errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if len(store.accounts) != 0 {
		t.Fatalf("no account must be created on lookup failure")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(store, nil, "secret", time.Hour, discardLogger)

	registered, err := svc.Register(context.Background(), annInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, account, err := svc.Login(context.Background(), "ann", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if account.Username != "ann" {
		t.Fatalf("unexpected account: %+v", account)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["id"] != registered.ID {
		t.Fatalf("expected id claim %s, got %v", registered.ID, claims["id"])
	}
	if claims["jti"] == "" || claims["jti"] == nil {
		t.Fatalf("expected a jti claim")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("expected exp claim: %v", err)
	}
	if d := time.Until(exp.Time); d <= 0 || d > time.Hour+time.Minute {
		t.Fatalf("unexpected expiry distance: %v", d)
	}
}

func TestAuthService_Login_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(store, nil, "secret", time.Hour, discardLogger)
	_, _ = svc.Register(context.Background(), annInput())

	_, _, wrongPass := svc.Login(context.Background(), "ann", "wrong")
	_, _, unknown := svc.Login(context.Background(), "ghost", "pw1")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if unknown != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknown)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := NewAuthService(newMemStore(), nil, "secret", time.Hour, discardLogger)

	if _, _, err := svc.Login(context.Background(), "ann", ""); err != domain.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	store := newMemStore()
	limiter := &stubLimiter{blocked: true}
	svc := NewAuthService(store, limiter, "secret", time.Hour, discardLogger)
	_, _ = svc.Register(context.Background(), annInput())

	if _, _, err := svc.Login(context.Background(), "ann", "pw1"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if len(limiter.resets) != 0 {
		t.Fatalf("blocked attempt must not reset the counter")
	}
}

func TestAuthService_Login_ResetsLimiterOnSuccess(t *testing.T) {
	store := newMemStore()
	limiter := &stubLimiter{}
	svc := NewAuthService(store, limiter, "secret", time.Hour, discardLogger)
	_, _ = svc.Register(context.Background(), annInput())

	if _, _, err := svc.Login(context.Background(), "ann", "pw1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if len(limiter.attempts) != 1 || len(limiter.resets) != 1 || limiter.resets[0] != "ann" {
		t.Fatalf("unexpected limiter calls: attempts=%v resets=%v", limiter.attempts, limiter.resets)
	}
}

func TestAuthService_Login_LimiterErrorFailsOpen(t *testing.T) {
	store := newMemStore()
	limiter := &stubLimiter{allowErr: errors.New("redis timeout")}
	svc := NewAuthService(store, limiter, "secret", time.Hour, discardLogger)
	_, _ = svc.Register(context.Background(), annInput())

	if _, _, err := svc.Login(context.Background(), "ann", "pw1"); err != nil {
		t.Fatalf("expected login to proceed when limiter errors, got %v", err)
	}
}
