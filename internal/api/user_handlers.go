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

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store().ListUsers()
	if err != nil {
		h.fail(c, err)
		return
	}

	safe := make([]models.SafeUser, 0, len(users))
	for i := range users {
		safe = append(safe, users[i].Safe())
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": safe})
}

func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.store().GetUserByID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Safe()})
}

// Preference handlers. Preferences are keyed by the nickname the request
// claims; a request without one has nothing to read or write.

const msgNicknameMissing = "缺少用户标识"

func (h *Handler) GetPreference(c *gin.Context) {
	nickname := auth.ActorNickname(c)
	if nickname == "" {
		badRequest(c, msgNicknameMissing)
		return
	}

	pref, err := h.store().GetPreference(nickname)
	if errors.Is(err, store.ErrNotFound) {
		// No stored preference yet; answer with defaults rather than 404.
		pref = &models.Preference{Nickname: nickname, Language: "zh", Theme: "light"}
	} else if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "preference": pref})
}

type preferenceRequest struct {
	Language *string `json:"language"`
	Theme    *string `json:"theme"`
}

func (h *Handler) SavePreference(c *gin.Context) {
	nickname := auth.ActorNickname(c)
	if nickname == "" {
		badRequest(c, msgNicknameMissing)
		return
	}

	var req preferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	pref, err := h.store().GetPreference(nickname)
	if errors.Is(err, store.ErrNotFound) {
		pref = &models.Preference{Nickname: nickname, Language: "zh", Theme: "light"}
	} else if err != nil {
		h.fail(c, err)
		return
	}
	if req.Language != nil {
		if r := validate.Required(*req.Language, "语言设置不能为空"); !r.OK {
			badRequest(c, r.Message)
			return
		}
		pref.Language = *req.Language
	}
	if req.Theme != nil {
		pref.Theme = *req.Theme
	}

	if err := h.store().SavePreference(pref); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "preference": pref})
}
