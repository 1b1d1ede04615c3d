// Package auth carries the request-level auth plumbing: the cookie gate in
// front of the dashboard pages and the best-effort identity lookup used for
// point accrual and project scoping.
package auth

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/wyc7758775/aglie-person-manage-sub001/internal/store"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
	NicknameCookie     = "nickname"
	NicknameHeader     = "X-Nickname"

	ctxUserIDKey   = "auth.userID"
	ctxNicknameKey = "auth.nickname"
)

// DashboardGuard redirects to "/" with a next parameter when the access
// token cookie is absent. It only checks presence; token verification
// happens on the API routes that need identity.
func DashboardGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(AccessTokenCookie); err != nil || token == "" {
			c.Redirect(http.StatusFound, "/?next="+url.QueryEscape(c.Request.URL.Path))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Identity resolves the acting user from the nickname cookie or header.
// The lookup is optimistic: an unknown nickname or unavailable backend
// leaves the request anonymous, it never fails the request.
func Identity(resolver *store.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		nickname, err := c.Cookie(NicknameCookie)
		if err != nil || nickname == "" {
			nickname = c.GetHeader(NicknameHeader)
		}
		if nickname != "" {
			c.Set(ctxNicknameKey, nickname)
			if user, err := resolver.Resolve().GetUserByNickname(nickname); err == nil {
				c.Set(ctxUserIDKey, user.ID)
			}
		}
		c.Next()
	}
}

// ActorID returns the resolved user id, or nil when the request is anonymous.
func ActorID(c *gin.Context) *string {
	if v, ok := c.Get(ctxUserIDKey); ok {
		id := v.(string)
		return &id
	}
	return nil
}

// ActorNickname returns the nickname claimed by the request, resolved or not.
func ActorNickname(c *gin.Context) string {
	if v, ok := c.Get(ctxNicknameKey); ok {
		return v.(string)
	}
	return ""
}
