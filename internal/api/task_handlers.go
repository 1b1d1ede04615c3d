package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/models"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/validate"
)

type taskRequest struct {
	ProjectID      *string  `json:"projectId"`
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Status         *string  `json:"status"`
	Priority       *string  `json:"priority"`
	Assignee       *string  `json:"assignee"`
	DueDate        *string  `json:"dueDate"`
	EstimatedHours *float64 `json:"estimatedHours"`
	CompletedHours *float64 `json:"completedHours"`
	Tags           []string `json:"tags"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	projectID := strOr(req.ProjectID, "")
	title := strOr(req.Title, "")
	status := strOr(req.Status, string(models.TaskStatusTodo))
	priority := strOr(req.Priority, string(models.PriorityMedium))
	estimated := 0.0
	if req.EstimatedHours != nil {
		estimated = *req.EstimatedHours
	}
	completed := 0.0
	if req.CompletedHours != nil {
		completed = *req.CompletedHours
	}

	if r := validate.All(
		validate.Required(projectID, validate.MsgProjectIDRequired),
		validate.Required(title, validate.MsgTitleRequired),
		validate.TaskStatus(status),
		validate.Priority(priority),
		validate.Date(strOr(req.DueDate, "")),
		validate.NonNegative(estimated, validate.MsgHoursNegative),
		validate.NonNegative(completed, validate.MsgHoursNegative),
	); !r.OK {
		badRequest(c, r.Message)
		return
	}

	exists, err := h.store().ProjectExists(projectID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !exists {
		badRequest(c, validate.MsgProjectNotFound)
		return
	}

	task := models.Task{
		ProjectID:      projectID,
		Title:          title,
		Description:    strOr(req.Description, ""),
		Status:         models.TaskStatus(status),
		Priority:       models.Priority(priority),
		Assignee:       strOr(req.Assignee, ""),
		DueDate:        req.DueDate,
		EstimatedHours: estimated,
		CompletedHours: completed,
		Tags:           req.Tags,
	}

	if err := h.store().CreateTask(&task); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "task": task})
}

func (h *Handler) ListTasks(c *gin.Context) {
	var filter store.TaskFilter
	if v := c.Query("projectId"); v != "" {
		filter.ProjectID = &v
	}
	if v := c.Query("status"); v != "" {
		if r := validate.TaskStatus(v); !r.OK {
			badRequest(c, r.Message)
			return
		}
		s := models.TaskStatus(v)
		filter.Status = &s
	}
	if v := c.Query("priority"); v != "" {
		if r := validate.Priority(v); !r.OK {
			badRequest(c, r.Message)
			return
		}
		p := models.Priority(v)
		filter.Priority = &p
	}

	tasks, err := h.store().ListTasks(filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks})
}

func (h *Handler) GetTask(c *gin.Context) {
	task, err := h.store().GetTask(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

func (h *Handler) UpdateTask(c *gin.Context) {
	existing, err := h.store().GetTask(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	title := strOr(req.Title, existing.Title)
	status := strOr(req.Status, string(existing.Status))
	priority := strOr(req.Priority, string(existing.Priority))
	estimated := existing.EstimatedHours
	if req.EstimatedHours != nil {
		estimated = *req.EstimatedHours
	}
	completed := existing.CompletedHours
	if req.CompletedHours != nil {
		completed = *req.CompletedHours
	}

	if r := validate.All(
		validate.Required(title, validate.MsgTitleRequired),
		validate.TaskStatus(status),
		validate.Priority(priority),
		validate.Date(strOr(req.DueDate, "")),
		validate.NonNegative(estimated, validate.MsgHoursNegative),
		validate.NonNegative(completed, validate.MsgHoursNegative),
	); !r.OK {
		badRequest(c, r.Message)
		return
	}

	existing.Title = title
	if req.Description != nil {
		existing.Description = *req.Description
	}
	existing.Status = models.TaskStatus(status)
	existing.Priority = models.Priority(priority)
	if req.Assignee != nil {
		existing.Assignee = *req.Assignee
	}
	if req.DueDate != nil {
		existing.DueDate = req.DueDate
	}
	existing.EstimatedHours = estimated
	existing.CompletedHours = completed
	if req.Tags != nil {
		existing.Tags = req.Tags
	}

	if err := h.store().UpdateTask(existing); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": existing})
}

func (h *Handler) DeleteTask(c *gin.Context) {
	if err := h.store().DeleteTask(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgDeleted})
}
