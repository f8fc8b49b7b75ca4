package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect-backend/internal/http/response"
	"github.com/devconnect/devconnect-backend/internal/services"
	"github.com/devconnect/devconnect-backend/internal/validation"
)

var postTextRules = validation.Rules{
	{Field: "text", Message: "Text is required", Check: validation.Required},
}

type PostHandler struct {
	postService services.PostService
}

func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (ph *PostHandler) Create(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if errs := postTextRules.Validate(map[string]string{"text": req.Text}); errs != nil {
		response.RespondValidationErrors(c, errs)
		return
	}
	post, err := ph.postService.Create(c.Request.Context(), uid, req.Text)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, post)
}

func (ph *PostHandler) List(c *gin.Context) {
	posts, err := ph.postService.ListAll(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, posts)
}

func (ph *PostHandler) Get(c *gin.Context) {
	post, err := ph.postService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, post)
}

func (ph *PostHandler) Delete(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	if err := ph.postService.DeleteByID(c.Request.Context(), c.Param("id"), uid); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"msg": "post removed"})
}

func (ph *PostHandler) Like(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	likes, err := ph.postService.Like(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, likes)
}

func (ph *PostHandler) Unlike(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	likes, err := ph.postService.Unlike(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, likes)
}

func (ph *PostHandler) AddComment(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if errs := postTextRules.Validate(map[string]string{"text": req.Text}); errs != nil {
		response.RespondValidationErrors(c, errs)
		return
	}
	comments, err := ph.postService.AddComment(c.Request.Context(), c.Param("id"), uid, req.Text)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, comments)
}

func (ph *PostHandler) DeleteComment(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	comments, err := ph.postService.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("comment_id"), uid)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, comments)
}
