package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/models"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/validate"
)

type defectRequest struct {
	ProjectID   *string  `json:"projectId"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Severity    *string  `json:"severity"`
	Type        *string  `json:"type"`
	Assignee    *string  `json:"assignee"`
	Reporter    *string  `json:"reporter"`
	CreatedDate *string  `json:"createdDate"`
	DueDate     *string  `json:"dueDate"`
	Environment *string  `json:"environment"`
	Steps       []string `json:"steps"`
}

func (h *Handler) CreateDefect(c *gin.Context) {
	var req defectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	projectID := strOr(req.ProjectID, "")
	title := strOr(req.Title, "")
	status := strOr(req.Status, string(models.DefectStatusOpen))
	severity := strOr(req.Severity, string(models.PriorityMedium))
	typ := strOr(req.Type, string(models.DefectTypeBug))
	createdDate := strOr(req.CreatedDate, time.Now().Format("2006-01-02"))

	if r := validate.All(
		validate.Required(projectID, validate.MsgProjectIDRequired),
		validate.Required(title, validate.MsgTitleRequired),
		validate.DefectStatus(status),
		validate.Priority(severity),
		validate.DefectType(typ),
		validate.Date(createdDate),
		validate.Date(strOr(req.DueDate, "")),
		validate.DateOrder(createdDate, strOr(req.DueDate, ""), validate.MsgDueBeforeCreated),
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

	defect := models.Defect{
		ProjectID:   projectID,
		Title:       title,
		Description: strOr(req.Description, ""),
		Status:      models.DefectStatus(status),
		Severity:    models.Priority(severity),
		Type:        models.DefectType(typ),
		Assignee:    strOr(req.Assignee, ""),
		Reporter:    strOr(req.Reporter, ""),
		CreatedDate: createdDate,
		DueDate:     req.DueDate,
		Environment: strOr(req.Environment, ""),
		Steps:       req.Steps,
	}

	if err := h.store().CreateDefect(&defect); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "defect": defect})
}

func (h *Handler) ListDefects(c *gin.Context) {
	var filter store.DefectFilter
	if v := c.Query("projectId"); v != "" {
		filter.ProjectID = &v
	}
	if v := c.Query("status"); v != "" {
		if r := validate.DefectStatus(v); !r.OK {
			badRequest(c, r.Message)
			return
		}
		s := models.DefectStatus(v)
		filter.Status = &s
	}
	if v := c.Query("severity"); v != "" {
		if r := validate.Priority(v); !r.OK {
			badRequest(c, r.Message)
			return
		}
		p := models.Priority(v)
		filter.Severity = &p
	}
	if v := c.Query("type"); v != "" {
		if r := validate.DefectType(v); !r.OK {
			badRequest(c, r.Message)
			return
		}
		t := models.DefectType(v)
		filter.Type = &t
	}

	defects, err := h.store().ListDefects(filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "defects": defects})
}

func (h *Handler) GetDefect(c *gin.Context) {
	defect, err := h.store().GetDefect(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "defect": defect})
}

func (h *Handler) UpdateDefect(c *gin.Context) {
	existing, err := h.store().GetDefect(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	var req defectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	title := strOr(req.Title, existing.Title)
	status := strOr(req.Status, string(existing.Status))
	severity := strOr(req.Severity, string(existing.Severity))
	typ := strOr(req.Type, string(existing.Type))
	createdDate := strOr(req.CreatedDate, existing.CreatedDate)
	dueDate := ""
	if req.DueDate != nil {
		dueDate = *req.DueDate
	} else if existing.DueDate != nil {
		dueDate = *existing.DueDate
	}

	if r := validate.All(
		validate.Required(title, validate.MsgTitleRequired),
		validate.DefectStatus(status),
		validate.Priority(severity),
		validate.DefectType(typ),
		validate.Date(createdDate),
		validate.Date(dueDate),
		validate.DateOrder(createdDate, dueDate, validate.MsgDueBeforeCreated),
	); !r.OK {
		badRequest(c, r.Message)
		return
	}

	existing.Title = title
	if req.Description != nil {
		existing.Description = *req.Description
	}
	existing.Status = models.DefectStatus(status)
	existing.Severity = models.Priority(severity)
	existing.Type = models.DefectType(typ)
	if req.Assignee != nil {
		existing.Assignee = *req.Assignee
	}
	if req.Reporter != nil {
		existing.Reporter = *req.Reporter
	}
	existing.CreatedDate = createdDate
	if req.DueDate != nil {
		existing.DueDate = req.DueDate
	}
	if req.Environment != nil {
		existing.Environment = *req.Environment
	}
	if req.Steps != nil {
		existing.Steps = req.Steps
	}

	if err := h.store().UpdateDefect(existing); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "defect": existing})
}

func (h *Handler) DeleteDefect(c *gin.Context) {
	if err := h.store().DeleteDefect(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgDeleted})
}
