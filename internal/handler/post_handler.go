package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"devconnector/internal/auth"
	apperrors "devconnector/internal/errors"
	"devconnector/internal/service"
)

// PostHandler handles post, like, and comment endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// TextRequest carries the body of a post or a comment.
type TextRequest struct {
	Text string `json:"text" validate:"required" msg:"Text is required"`
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body TextRequest true "Post text"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req TextRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.postService.Create(c.Request().Context(), auth.UserID(c), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// List godoc
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Success 200 {array} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.postService.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get godoc
// @Summary Get a post
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 404 {object} errors.MessageResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.postService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param id path string true "Post ID"
// @Success 200 {object} errors.MessageResponse
// @Failure 401 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.postService.Delete(c.Request().Context(), auth.UserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apperrors.MessageResponse{Msg: "Post removed"})
}

// Like godoc
// @Summary Like a post
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param id path string true "Post ID"
// @Success 200 {array} model.Like
// @Failure 400 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /posts/like/{id} [put]
func (h *PostHandler) Like(c echo.Context) error {
	likes, err := h.postService.Like(c.Request().Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

// Unlike godoc
// @Summary Remove a like from a post
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param id path string true "Post ID"
// @Success 200 {array} model.Like
// @Failure 400 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /posts/unlike/{id} [put]
func (h *PostHandler) Unlike(c echo.Context) error {
	likes, err := h.postService.Unlike(c.Request().Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

// Comment godoc
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path string true "Post ID"
// @Param request body TextRequest true "Comment text"
// @Success 200 {array} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /posts/comment/{id} [post]
func (h *PostHandler) Comment(c echo.Context) error {
	var req TextRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comments, err := h.postService.AddComment(c.Request().Context(), auth.UserID(c), c.Param("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags posts
// @Produce json
// @Security TokenAuth
// @Param id path string true "Post ID"
// @Param comment_id path string true "Comment ID"
// @Success 200 {array} model.Comment
// @Failure 401 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /posts/comment/{id}/{comment_id} [delete]
func (h *PostHandler) DeleteComment(c echo.Context) error {
	comments, err := h.postService.DeleteComment(c.Request().Context(), auth.UserID(c), c.Param("id"), c.Param("comment_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}
