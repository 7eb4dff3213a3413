package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/festive-table/internal/api/middleware"
	"github.com/d60-Lab/festive-table/internal/policy"
	"github.com/d60-Lab/festive-table/internal/service"
	"github.com/d60-Lab/festive-table/pkg/response"
)

// Handler carries the API's dependencies.
type Handler struct {
	svc    service.PostService
	policy *policy.Policy
}

func NewHandler(svc service.PostService, pol *policy.Policy) *Handler {
	return &Handler{svc: svc, policy: pol}
}

// viewerIsAdmin is the documented backdoor: a literal string comparison on
// the admin query parameter, no authentication. Kept exactly this weak.
func viewerIsAdmin(c *gin.Context) bool {
	return c.Query("admin") == "true"
}

type createPostRequest struct {
	Name    string `json:"name" binding:"max=8"`
	Icon    string `json:"icon"`
	Message string `json:"message" binding:"max=100"`
}

// Rejection reason tags, stable for clients.
const (
	reasonAlreadyPosted = "already_posted"
	reasonProfanity     = "profanity_detected"
	reasonMissingField  = "missing_field"
)

// ListPosts returns the whole table, newest first.
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"list": posts, "count": len(posts)})
}

// CreatePost submits a new dish for this session.
// @Summary Put a dish on the table
// @Tags posts
// @Accept json
// @Produce json
// @Param request body createPostRequest true "dish draft"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	draft := policy.Draft{Name: req.Name, Icon: req.Icon, Message: req.Message}
	post, err := h.svc.Submit(c.Request.Context(), middleware.SessionID(c), draft)
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrAlreadyPosted):
			response.Rejected(c, http.StatusConflict, reasonAlreadyPosted, "you already put a dish on the table")
		case errors.Is(err, policy.ErrProfanityDetected):
			response.Rejected(c, http.StatusBadRequest, reasonProfanity, "please use kind words")
		case errors.Is(err, policy.ErrMissingField):
			response.Rejected(c, http.StatusBadRequest, reasonMissingField, "name and message are both required")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, gin.H{"post": post})
}

// GetPost returns one post plus whether this viewer may delete it.
// @Summary Post detail
// @Tags posts
// @Produce json
// @Param id path string true "post id"
// @Param admin query string false "admin override"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, deletable, err := h.svc.Get(c.Request.Context(), middleware.SessionID(c), c.Param("id"), viewerIsAdmin(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "post not found")
		return
	}
	response.Success(c, gin.H{"post": post, "deletable": deletable})
}

// DeletePost removes a post the viewer owns (or any post with the admin
// override). Deleting an already-gone post succeeds.
// @Summary Take a dish off the table
// @Tags posts
// @Produce json
// @Param id path string true "post id"
// @Param admin query string false "admin override"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), middleware.SessionID(c), c.Param("id"), viewerIsAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrDeleteForbidden) {
			response.Forbidden(c, "this dish is not yours to take")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListIcons returns the enumerated icon set for the creation form, in
// display order; the first entry is the default.
// @Summary Icon set
// @Tags posts
// @Produce json
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/icons [get]
func (h *Handler) ListIcons(c *gin.Context) {
	response.Success(c, gin.H{"icons": h.policy.Icons()})
}

// bindErrorMessage turns validator field errors into something a visitor can
// act on; anything else gets a generic message.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "max" {
			return fmt.Sprintf("%s is too long (max %s characters)", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
	return "invalid request body"
}
