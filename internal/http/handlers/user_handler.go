package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vamsi1219/task-flow-manager-duo/internal/repo"
	"github.com/vamsi1219/task-flow-manager-duo/internal/utils"
)

type UserHandler struct {
	users repo.UserStore
}

func NewUserHandler(users repo.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, utils.Internal("could not list users"))
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			utils.RespondError(c, utils.NotFound("user not found"))
			return
		}
		utils.RespondError(c, utils.Internal("could not look up user"))
		return
	}
	c.JSON(http.StatusOK, user)
}
