package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/social-network/internal/api/metrics"
	"github.com/99minutos/social-network/internal/core/ports"
)

type PostHandler struct {
	posts ports.PostService
}

func NewPostHandler(posts ports.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create publishes a post authored by the caller.
//
// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      createPostRequest  true  "Post content"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /post/create [post]
func (h *PostHandler) Create(c echo.Context) error {
	id, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.Create(c.Request().Context(), id, req.Description)
	if err != nil {
		return err
	}

	metrics.PostsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, postResponse{Success: true, Message: "Tweet created successfully.", Post: post})
}

// List returns every post, newest first.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Success      200  {object}  postsResponse
// @Failure      401  {object}  messageResponse
// @Router       /post/ [get]
func (h *PostHandler) List(c echo.Context) error {
	id, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	posts, err := h.posts.List(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postsResponse{Success: true, Posts: posts})
}

// ListOwn returns the caller's posts.
//
// @Summary      List own posts
// @Tags         posts
// @Produce      json
// @Success      200  {object}  postsResponse
// @Failure      401  {object}  messageResponse
// @Router       /post/user [get]
func (h *PostHandler) ListOwn(c echo.Context) error {
	id, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	posts, err := h.posts.ListOwn(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postsResponse{Success: true, Posts: posts})
}

// Delete removes one of the caller's posts.
//
// @Summary      Delete post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /post/delete/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	if err := h.posts.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}

	metrics.PostsTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Tweet deleted successfully."})
}

// ToggleLike likes the post, or unlikes it when the caller already did.
//
// @Summary      Toggle like
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  postResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /post/like/{id} [put]
func (h *PostHandler) ToggleLike(c echo.Context) error {
	id, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	post, err := h.posts.ToggleLike(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.PostsTotal.WithLabelValues("like_toggled").Inc()
	return c.JSON(http.StatusOK, postResponse{Success: true, Message: "Post like updated successfully.", Post: post})
}
