package handler

import "github.com/99minutos/social-network/internal/core/domain"

// ── Requests ──────────────────────────────────────────────────────────────────

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createPostRequest struct {
	Description string `json:"description" validate:"required"`
}

// updateProfileRequest uses pointers so absent fields stay untouched.
type updateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=50"`
	Bio      *string `json:"bio" validate:"omitempty,max=160"`
	Location *string `json:"location" validate:"omitempty,max=30"`
	Image    *string `json:"image" validate:"omitempty,url"`
}

func (r updateProfileRequest) toDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Name:     r.Name,
		Bio:      r.Bio,
		Location: r.Location,
		Image:    r.Image,
	}
}

// ── Responses ─────────────────────────────────────────────────────────────────

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type userResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    *domain.Account `json:"user"`
}

type usersResponse struct {
	Success bool              `json:"success"`
	Users   []*domain.Account `json:"users"`
}

type followingResponse struct {
	Success        bool                     `json:"success"`
	FollowingUsers []domain.AccountSnapshot `json:"followingUsers"`
}

type followersResponse struct {
	Success   bool                     `json:"success"`
	Followers []domain.AccountSnapshot `json:"followers"`
}

type postResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Post    *domain.Post `json:"post"`
}

type postsResponse struct {
	Success bool           `json:"success"`
	Posts   []*domain.Post `json:"posts"`
}
