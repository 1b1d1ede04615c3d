package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store"
)

// InitDB creates or migrates the schema on the active backend.
func (h *Handler) InitDB(c *gin.Context) {
	if err := h.store().InitSchema(); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "数据库初始化完成",
		"backend": h.resolver.State().String(),
	})
}

// SeedData loads the demo data set into the active backend.
func (h *Handler) SeedData(c *gin.Context) {
	if err := h.store().InitSchema(); err != nil {
		h.fail(c, err)
		return
	}
	if err := store.Seed(h.store()); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "示例数据已写入"})
}

// Health reports liveness and which backend is serving data access.
func (h *Handler) Health(c *gin.Context) {
	status := "healthy"
	if err := h.store().Ping(); err != nil {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"backend": h.resolver.State().String(),
	})
}
