package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect-backend/internal/http/response"
	"github.com/devconnect/devconnect-backend/internal/pkg/ctxutil"
	"github.com/devconnect/devconnect-backend/internal/services"
	"github.com/devconnect/devconnect-backend/internal/validation"
)

var registerRules = validation.Rules{
	{Field: "name", Message: "Name is required", Check: validation.Required},
	{Field: "email", Message: "Please include a valid email", Check: validation.Email},
	{Field: "password", Message: "Please enter a password with 8 or more characters", Check: validation.MinLen(8)},
}

var loginRules = validation.Rules{
	{Field: "email", Message: "Please include a valid email", Check: validation.Email},
	{Field: "password", Message: "Password is required", Check: validation.Required},
}

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if errs := registerRules.Validate(map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
	}); errs != nil {
		response.RespondValidationErrors(c, errs)
		return
	}
	token, err := ah.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"token": token})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if errs := loginRules.Validate(map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}); errs != nil {
		response.RespondValidationErrors(c, errs)
		return
	}
	token, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"token": token})
}

// Me returns the authenticated user's record, password omitted.
func (ah *AuthHandler) Me(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthenticated", nil)
		return
	}
	user, err := ah.authService.GetUser(c.Request.Context(), uid)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, user)
}

func callerID(c *gin.Context) (string, bool) {
	identity, ok := ctxutil.GetIdentity(c.Request.Context())
	if !ok || identity.UserID == "" {
		return "", false
	}
	return identity.UserID, true
}
