package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vamsi1219/task-flow-manager-duo/internal/http/middleware"
	"github.com/vamsi1219/task-flow-manager-duo/internal/models"
	"github.com/vamsi1219/task-flow-manager-duo/internal/services"
	"github.com/vamsi1219/task-flow-manager-duo/internal/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register creates an account. The role field is honored only when the
// request carries a valid admin bearer token; everyone else gets an employee
// account no matter what they send.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	role := models.RoleEmployee
	if req.Role != "" && req.Role != string(models.RoleEmployee) {
		caller := h.optionalCaller(c)
		if caller != nil && caller.IsAdmin() {
			role = models.Role(req.Role)
		}
	}

	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondCreated(c, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		utils.RespondError(c, utils.Unauthenticated("missing token"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// optionalCaller resolves a bearer token if one is present. An absent or
// invalid token just means an anonymous caller here.
func (h *AuthHandler) optionalCaller(c *gin.Context) *models.User {
	token, ok := middleware.BearerToken(c)
	if !ok {
		return nil
	}
	user, err := h.auth.Resolve(c.Request.Context(), token)
	if err != nil {
		return nil
	}
	return user
}
