package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/auth"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/models"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/validate"
)

type requirementRequest struct {
	ProjectID   *string  `json:"projectId"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Type        *string  `json:"type"`
	Status      *string  `json:"status"`
	Priority    *string  `json:"priority"`
	StoryPoints *int     `json:"storyPoints"`
	Points      *int     `json:"points"`
	Tags        []string `json:"tags"`
}

func (h *Handler) CreateRequirement(c *gin.Context) {
	var req requirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	projectID := strOr(req.ProjectID, "")
	title := strOr(req.Title, "")
	typ := strOr(req.Type, string(models.RequirementTypeFeature))
	status := strOr(req.Status, string(models.RequirementStatusDraft))
	priority := strOr(req.Priority, string(models.PriorityMedium))

	if r := validate.All(
		validate.Required(projectID, validate.MsgProjectIDRequired),
		validate.Required(title, validate.MsgTitleRequired),
		validate.MaxLen(title, 200, validate.MsgTitleTooLong),
		validate.RequirementType(typ),
		validate.RequirementStatus(status),
		validate.Priority(priority),
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

	points := models.PointsForPriority(models.Priority(priority))
	if req.Points != nil {
		if *req.Points < 0 {
			badRequest(c, validate.MsgPointsNegative)
			return
		}
		points = *req.Points
	}

	requirement := models.Requirement{
		ProjectID:   projectID,
		Title:       title,
		Description: strOr(req.Description, ""),
		Type:        models.RequirementType(typ),
		Status:      models.RequirementStatus(status),
		Priority:    models.Priority(priority),
		Points:      points,
		Tags:        req.Tags,
	}
	if req.StoryPoints != nil {
		if *req.StoryPoints < 0 {
			badRequest(c, validate.MsgStoryPointsNegative)
			return
		}
		requirement.StoryPoints = *req.StoryPoints
	}

	if err := h.store().CreateRequirement(&requirement); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "requirement": requirement})
}

func (h *Handler) ListRequirements(c *gin.Context) {
	var filter store.RequirementFilter
	if v := c.Query("projectId"); v != "" {
		filter.ProjectID = &v
	}
	if v := c.Query("status"); v != "" {
		if r := validate.RequirementStatus(v); !r.OK {
			badRequest(c, r.Message)
			return
		}
		s := models.RequirementStatus(v)
		filter.Status = &s
	}
	if v := c.Query("type"); v != "" {
		if r := validate.RequirementType(v); !r.OK {
			badRequest(c, r.Message)
			return
		}
		t := models.RequirementType(v)
		filter.Type = &t
	}
	if v := c.Query("priority"); v != "" {
		if r := validate.Priority(v); !r.OK {
			badRequest(c, r.Message)
			return
		}
		p := models.Priority(v)
		filter.Priority = &p
	}

	requirements, err := h.store().ListRequirements(filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "requirements": requirements})
}

func (h *Handler) GetRequirement(c *gin.Context) {
	requirement, err := h.store().GetRequirement(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "requirement": requirement})
}

// UpdateRequirement is the one mutation with a cross-entity side effect: a
// transition into completed credits the requirement's points to the acting
// user. Anonymous requests update the requirement but accrue nothing.
func (h *Handler) UpdateRequirement(c *gin.Context) {
	existing, err := h.store().GetRequirement(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	var req requirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	title := strOr(req.Title, existing.Title)
	typ := strOr(req.Type, string(existing.Type))
	status := strOr(req.Status, string(existing.Status))
	priority := strOr(req.Priority, string(existing.Priority))

	if r := validate.All(
		validate.Required(title, validate.MsgTitleRequired),
		validate.MaxLen(title, 200, validate.MsgTitleTooLong),
		validate.RequirementType(typ),
		validate.RequirementStatus(status),
		validate.Priority(priority),
	); !r.OK {
		badRequest(c, r.Message)
		return
	}

	existing.Title = title
	if req.Description != nil {
		existing.Description = *req.Description
	}
	existing.Type = models.RequirementType(typ)
	existing.Status = models.RequirementStatus(status)
	existing.Priority = models.Priority(priority)
	if req.StoryPoints != nil {
		if *req.StoryPoints < 0 {
			badRequest(c, validate.MsgStoryPointsNegative)
			return
		}
		existing.StoryPoints = *req.StoryPoints
	}
	if req.Points != nil {
		if *req.Points < 0 {
			badRequest(c, validate.MsgPointsNegative)
			return
		}
		existing.Points = *req.Points
	}
	if req.Tags != nil {
		existing.Tags = req.Tags
	}

	if err := h.store().UpdateRequirement(existing, auth.ActorID(c)); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "requirement": existing})
}

func (h *Handler) DeleteRequirement(c *gin.Context) {
	if err := h.store().DeleteRequirement(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgDeleted})
}
