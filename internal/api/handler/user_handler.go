package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/social-network/internal/api/metrics"
	"github.com/99minutos/social-network/internal/core/ports"
)

type UserHandler struct {
	accounts      ports.AccountService
	relationships ports.RelationshipService
}

func NewUserHandler(accounts ports.AccountService, relationships ports.RelationshipService) *UserHandler {
	return &UserHandler{accounts: accounts, relationships: relationships}
}

// NotFollowed lists accounts the caller does not follow, excluding the caller.
//
// @Summary      Suggested accounts
// @Tags         users
// @Produce      json
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  messageResponse
// @Router       /users/not-followed [get]
func (h *UserHandler) NotFollowed(c echo.Context) error {
	id, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	users, err := h.accounts.NotFollowed(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Success: true, Users: users})
}

// Following lists the accounts the caller follows.
//
// @Summary      Following
// @Tags         users
// @Produce      json
// @Success      200  {object}  followingResponse
// @Failure      401  {object}  messageResponse
// @Router       /users/following [get]
func (h *UserHandler) Following(c echo.Context) error {
	id, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	following, err := h.accounts.Following(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, followingResponse{Success: true, FollowingUsers: following})
}

// Followers lists the caller's followers.
//
// @Summary      Followers
// @Tags         users
// @Produce      json
// @Success      200  {object}  followersResponse
// @Failure      401  {object}  messageResponse
// @Router       /users/followers [get]
func (h *UserHandler) Followers(c echo.Context) error {
	id, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	followers, err := h.accounts.Followers(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, followersResponse{Success: true, Followers: followers})
}

// Follow makes the caller follow the account in the path.
//
// @Summary      Follow
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/follow/{id} [put]
func (h *UserHandler) Follow(c echo.Context) error {
	id, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	target, err := h.relationships.Follow(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.RelationshipsTotal.WithLabelValues("follow").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: fmt.Sprintf("%s followed successfully.", target.Username),
	})
}

// Unfollow stops the caller following the account in the path.
//
// @Summary      Unfollow
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/unfollow/{id} [put]
func (h *UserHandler) Unfollow(c echo.Context) error {
	id, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	target, err := h.relationships.Unfollow(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.RelationshipsTotal.WithLabelValues("unfollow").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: fmt.Sprintf("You have successfully unfollowed %s.", target.Username),
	})
}

// RemoveFollower detaches a follower from the caller.
//
// @Summary      Remove follower
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Follower account ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/followers/remove/{id} [put]
func (h *UserHandler) RemoveFollower(c echo.Context) error {
	id, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	follower, err := h.relationships.RemoveFollower(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.RelationshipsTotal.WithLabelValues("remove_follower").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: fmt.Sprintf("Follower %s removed successfully.", follower.Username),
	})
}

// UpdateProfile applies a partial profile update.
//
// @Summary      Update profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /users/update [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.accounts.UpdateProfile(c.Request().Context(), id, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Message: "Profile updated successfully.", User: account})
}
