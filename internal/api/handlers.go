package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/auth"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/models"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/validate"
)

const (
	msgNotFound     = "资源不存在"
	msgUnauthorized = "未登录或登录已过期"
	msgInternal     = "服务器内部错误"
	msgDBDown       = "数据库未配置或不可用"
	msgDeleted      = "删除成功"
)

type Handler struct {
	resolver *store.Resolver
}

func NewHandler(resolver *store.Resolver) *Handler {
	return &Handler{resolver: resolver}
}

func (h *Handler) store() store.Store {
	return h.resolver.Resolve()
}

// badRequest writes the 400 envelope for a failed validation. The repository
// is never called on this path.
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

// fail is the single boundary converting repository errors into HTTP
// responses. ErrUnavailable also trips the resolver's memory latch so
// subsequent requests stop hammering a dead database.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": msgNotFound})
	case errors.Is(err, store.ErrUnavailable):
		h.resolver.ForceMemory()
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": msgDBDown})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msgInternal})
	}
}

// Recovery converts panics into the standard 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msgInternal})
	})
}

// Project handlers

type projectRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Type        *string  `json:"type"`
	Status      *string  `json:"status"`
	Priority    *string  `json:"priority"`
	StartDate   *string  `json:"startDate"`
	EndDate     *string  `json:"endDate"`
	Goals       []string `json:"goals"`
	Tags        []string `json:"tags"`
	Points      *int     `json:"points"`
}

func strOr(p *string, def string) string {
	if p != nil {
		return *p
	}
	return def
}

func (h *Handler) CreateProject(c *gin.Context) {
	// Projects are owner-scoped from birth; an anonymous create would
	// persist a record no user scope could ever retrieve.
	owner, ok := ownerScope(c)
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	name := strOr(req.Name, "")
	typ := strOr(req.Type, "")
	status := strOr(req.Status, string(models.ProjectStatusPlanning))
	priority := strOr(req.Priority, string(models.PriorityMedium))
	startDate := strOr(req.StartDate, "")
	endDate := strOr(req.EndDate, "")

	if r := validate.All(
		validate.Required(name, validate.MsgNameRequired),
		validate.MaxLen(name, 100, validate.MsgNameTooLong),
		validate.ProjectType(typ),
		validate.ProjectStatus(status),
		validate.Priority(priority),
		validate.Required(startDate, validate.MsgStartDateRequired),
		validate.Date(startDate),
		validate.Date(endDate),
		validate.DateOrder(startDate, endDate, validate.MsgEndBeforeStart),
	); !r.OK {
		badRequest(c, r.Message)
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

	project := models.Project{
		Name:        name,
		Description: strOr(req.Description, ""),
		Type:        models.ProjectType(typ),
		Status:      models.ProjectStatus(status),
		Priority:    models.Priority(priority),
		StartDate:   startDate,
		EndDate:     req.EndDate,
		Goals:       req.Goals,
		Tags:        req.Tags,
		Points:      points,
		OwnerUserID: owner,
	}

	if err := h.store().CreateProject(&project); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "project": project})
}

func (h *Handler) ListProjects(c *gin.Context) {
	var filter store.ProjectFilter
	if v := c.Query("status"); v != "" {
		if r := validate.ProjectStatus(v); !r.OK {
			badRequest(c, r.Message)
			return
		}
		s := models.ProjectStatus(v)
		filter.Status = &s
	}
	if v := c.Query("type"); v != "" {
		if r := validate.ProjectType(v); !r.OK {
			badRequest(c, r.Message)
			return
		}
		t := models.ProjectType(v)
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

	projects, err := h.store().ListProjects(filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "projects": projects})
}

// ownerScope resolves the acting user for project-scoped operations.
// Ownership itself is checked in the store; a missing identity is the one
// case reported as 401 rather than 404.
func ownerScope(c *gin.Context) (string, bool) {
	actor := auth.ActorID(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": msgUnauthorized})
		return "", false
	}
	return *actor, true
}

func (h *Handler) GetProject(c *gin.Context) {
	owner, ok := ownerScope(c)
	if !ok {
		return
	}

	project, err := h.store().GetProject(c.Param("id"), owner)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "project": project})
}

func (h *Handler) UpdateProject(c *gin.Context) {
	owner, ok := ownerScope(c)
	if !ok {
		return
	}

	existing, err := h.store().GetProject(c.Param("id"), owner)
	if err != nil {
		h.fail(c, err)
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	name := strOr(req.Name, existing.Name)
	typ := strOr(req.Type, string(existing.Type))
	status := strOr(req.Status, string(existing.Status))
	priority := strOr(req.Priority, string(existing.Priority))
	startDate := strOr(req.StartDate, existing.StartDate)
	endDate := ""
	if req.EndDate != nil {
		endDate = *req.EndDate
	} else if existing.EndDate != nil {
		endDate = *existing.EndDate
	}

	if r := validate.All(
		validate.Required(name, validate.MsgNameRequired),
		validate.MaxLen(name, 100, validate.MsgNameTooLong),
		validate.ProjectType(typ),
		validate.ProjectStatus(status),
		validate.Priority(priority),
		validate.Required(startDate, validate.MsgStartDateRequired),
		validate.Date(startDate),
		validate.Date(endDate),
		validate.DateOrder(startDate, endDate, validate.MsgEndBeforeStart),
	); !r.OK {
		badRequest(c, r.Message)
		return
	}

	existing.Name = name
	if req.Description != nil {
		existing.Description = *req.Description
	}
	existing.Type = models.ProjectType(typ)
	existing.Status = models.ProjectStatus(status)
	existing.Priority = models.Priority(priority)
	existing.StartDate = startDate
	if req.EndDate != nil {
		existing.EndDate = req.EndDate
	}
	if req.Goals != nil {
		existing.Goals = req.Goals
	}
	if req.Tags != nil {
		existing.Tags = req.Tags
	}
	if req.Points != nil {
		if *req.Points < 0 {
			badRequest(c, validate.MsgPointsNegative)
			return
		}
		existing.Points = *req.Points
	}

	if err := h.store().UpdateProject(existing, owner); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "project": existing})
}

func (h *Handler) DeleteProject(c *gin.Context) {
	owner, ok := ownerScope(c)
	if !ok {
		return
	}

	if err := h.store().DeleteProject(c.Param("id"), owner); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": msgDeleted})
}
