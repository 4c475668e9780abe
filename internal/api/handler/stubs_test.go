package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/social-network/internal/api/middleware"
	"github.com/99minutos/social-network/internal/core/domain"
	"github.com/99minutos/social-network/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Account, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.Account, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	return s.loginFn(ctx, username, password)
}

type stubAccountService struct {
	getFn         func(ctx context.Context, id string) (*domain.Account, error)
	updateFn      func(ctx context.Context, id string, u domain.ProfileUpdate) (*domain.Account, error)
	notFollowedFn func(ctx context.Context, id string) ([]*domain.Account, error)
	following     []domain.AccountSnapshot
	followers     []domain.AccountSnapshot
}

func (s *stubAccountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *stubAccountService) UpdateProfile(ctx context.Context, id string, u domain.ProfileUpdate) (*domain.Account, error) {
	return s.updateFn(ctx, id, u)
}

func (s *stubAccountService) NotFollowed(ctx context.Context, id string) ([]*domain.Account, error) {
	return s.notFollowedFn(ctx, id)
}

func (s *stubAccountService) Following(context.Context, string) ([]domain.AccountSnapshot, error) {
	return s.following, nil
}

func (s *stubAccountService) Followers(context.Context, string) ([]domain.AccountSnapshot, error) {
	return s.followers, nil
}

type stubPostService struct {
	createFn func(ctx context.Context, accountID, description string) (*domain.Post, error)
	listFn   func(ctx context.Context, accountID string) ([]*domain.Post, error)
	deleteFn func(ctx context.Context, accountID, postID string) error
	likeFn   func(ctx context.Context, accountID, postID string) (*domain.Post, error)
}

func (s *stubPostService) Create(ctx context.Context, accountID, description string) (*domain.Post, error) {
	return s.createFn(ctx, accountID, description)
}

func (s *stubPostService) List(ctx context.Context, accountID string) ([]*domain.Post, error) {
	return s.listFn(ctx, accountID)
}

func (s *stubPostService) ListOwn(ctx context.Context, accountID string) ([]*domain.Post, error) {
	return s.listFn(ctx, accountID)
}

func (s *stubPostService) Delete(ctx context.Context, accountID, postID string) error {
	return s.deleteFn(ctx, accountID, postID)
}

func (s *stubPostService) ToggleLike(ctx context.Context, accountID, postID string) (*domain.Post, error) {
	return s.likeFn(ctx, accountID, postID)
}

type stubRelationshipService struct {
	followFn func(ctx context.Context, accountID, targetID string) (*domain.AccountSnapshot, error)
}

func (s *stubRelationshipService) Follow(ctx context.Context, accountID, targetID string) (*domain.AccountSnapshot, error) {
	return s.followFn(ctx, accountID, targetID)
}

func (s *stubRelationshipService) Unfollow(ctx context.Context, accountID, targetID string) (*domain.AccountSnapshot, error) {
	return s.followFn(ctx, accountID, targetID)
}

func (s *stubRelationshipService) RemoveFollower(ctx context.Context, accountID, followerID string) (*domain.AccountSnapshot, error) {
	return s.followFn(ctx, accountID, followerID)
}

func (s *stubRelationshipService) Repair(context.Context, string) (ports.RepairReport, error) {
	return ports.RepairReport{}, nil
}

// newContext builds an echo.Context for method/target with an optional
// JSON body. A non-empty accountID simulates the Auth middleware.
func newContext(method, target, body, accountID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if accountID != "" {
		c.Set(middleware.ContextKeyAccountID, accountID)
	}
	return c, rec
}
