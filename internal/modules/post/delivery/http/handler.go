package handler

import (
	"net/http"

	postDto "anoa.com/fedipost/internal/modules/post/dto"
	post "anoa.com/fedipost/internal/modules/post/service"
	"anoa.com/fedipost/pkg/apperror"
	"anoa.com/fedipost/pkg/logger"
	"anoa.com/fedipost/pkg/response"
	"anoa.com/fedipost/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	service post.PostService
	log     *logger.Logger
}

func NewPostHandler(service post.PostService, log *logger.Logger) *PostHandler {
	return &PostHandler{service: service, log: log}
}

// Register mounts the post routes on rg.
func (h *PostHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.CreatePost)
	rg.GET("/:id", h.GetPost)
	rg.DELETE("/:id", h.DeletePost)
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req postDto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.CreatePost(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := h.bindPostID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetPost(c.Request.Context(), postID)
	if err != nil {
		response.ResponseError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := h.bindPostID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), postID); err != nil {
		response.ResponseError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PostHandler) bindPostID(c *gin.Context) (uuid.UUID, bool) {
	var req postDto.PostURIRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.ResponseError(c, h.log, apperror.InvalidInput(validator.FormatValidationError(err)))
		return uuid.Nil, false
	}
	postID, err := uuid.Parse(req.ID)
	if err != nil {
		response.ResponseError(c, h.log, apperror.InvalidInput("invalid post id"))
		return uuid.Nil, false
	}
	return postID, true
}
