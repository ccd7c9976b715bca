package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vamsi1219/task-flow-manager-duo/internal/http/middleware"
	"github.com/vamsi1219/task-flow-manager-duo/internal/models"
	"github.com/vamsi1219/task-flow-manager-duo/internal/services"
	"github.com/vamsi1219/task-flow-manager-duo/internal/utils"
)

type TaskHandler struct {
	tasks *services.TaskService
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	DueDate     string `json:"dueDate" binding:"required"`
	AssignedTo  string `json:"assignedTo" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed"`
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		utils.RespondValidationError(c, "dueDate must be YYYY-MM-DD or RFC3339")
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), middleware.CurrentUser(c), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondCreated(c, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) ListForUser(c *gin.Context) {
	tasks, err := h.tasks.ListForUser(c.Request.Context(), middleware.CurrentUser(c), c.Param("userId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	task, err := h.tasks.SetStatus(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), models.TaskStatus(req.Status))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.tasks.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

func parseDueDate(value string) (time.Time, error) {
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}
