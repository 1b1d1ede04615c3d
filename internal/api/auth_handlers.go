package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/auth"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/models"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store"
	"github.com/wyc7758775/aglie-person-manage-sub001/internal/validate"
	pkgauth "github.com/wyc7758775/aglie-person-manage-sub001/pkg/auth"
	"github.com/wyc7758775/aglie-person-manage-sub001/pkg/config"
)

type AuthHandler struct {
	resolver   *store.Resolver
	jwtManager *pkgauth.JWTManager
	cfg        config.AuthConfig
}

func NewAuthHandler(resolver *store.Resolver, jwtManager *pkgauth.JWTManager, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		resolver:   resolver,
		jwtManager: jwtManager,
		cfg:        cfg,
	}
}

func (h *AuthHandler) store() store.Store {
	return h.resolver.Resolve()
}

func (h *AuthHandler) fail(c *gin.Context, err error) {
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

type credentialsRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

const accessTokenMaxAge = 24 * 60 * 60

func (h *AuthHandler) setAuthCookies(c *gin.Context, user *models.User, accessToken, refreshToken string) {
	c.SetCookie(auth.AccessTokenCookie, accessToken, accessTokenMaxAge, "/",
		h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	c.SetCookie(auth.RefreshTokenCookie, refreshToken, 7*24*60*60, "/",
		h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	// The nickname cookie feeds the optimistic identity lookup; the UI also
	// reads it, so it is not HttpOnly.
	c.SetCookie(auth.NicknameCookie, user.Nickname, accessTokenMaxAge, "/",
		h.cfg.CookieDomain, h.cfg.CookieSecure, false)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(auth.AccessTokenCookie, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	c.SetCookie(auth.RefreshTokenCookie, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	c.SetCookie(auth.NicknameCookie, "", -1, "/", h.cfg.CookieDomain, h.cfg.CookieSecure, false)
}

// Login validates fail-fast: nickname format, password format, user lookup,
// password check. Format failures are 400; a missing user or a mismatch is
// 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if r := validate.Nickname(req.Nickname); !r.OK {
		badRequest(c, r.Message)
		return
	}
	if r := validate.Password(req.Password); !r.OK {
		badRequest(c, r.Message)
		return
	}

	user, err := h.store().GetUserByNickname(req.Nickname)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": validate.MsgUserNotFound})
			return
		}
		h.fail(c, err)
		return
	}

	if err := pkgauth.CheckPassword(req.Password, user.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": validate.MsgPasswordWrong})
		return
	}

	accessToken, err := h.jwtManager.Generate(user.ID, user.Nickname, string(user.Role))
	if err != nil {
		h.fail(c, err)
		return
	}
	refreshToken, err := h.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.setAuthCookies(c, user, accessToken, refreshToken)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Safe()})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if r := validate.Nickname(req.Nickname); !r.OK {
		badRequest(c, r.Message)
		return
	}
	if r := validate.Password(req.Password); !r.OK {
		badRequest(c, r.Message)
		return
	}

	hashed, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	user := models.User{
		Nickname: req.Nickname,
		Password: hashed,
		Role:     models.UserRoleUser,
	}
	if err := h.store().CreateUser(&user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			badRequest(c, validate.MsgNicknameTaken)
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user.Safe()})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "已退出登录"})
}

// Refresh reissues the access token from the refresh cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(auth.RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": msgUnauthorized})
		return
	}

	claims, err := h.jwtManager.Verify(refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": msgUnauthorized})
		return
	}

	user, err := h.store().GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": msgUnauthorized})
			return
		}
		h.fail(c, err)
		return
	}

	accessToken, err := h.jwtManager.Generate(user.ID, user.Nickname, string(user.Role))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.SetCookie(auth.AccessTokenCookie, accessToken, accessTokenMaxAge, "/",
		h.cfg.CookieDomain, h.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Safe()})
}
