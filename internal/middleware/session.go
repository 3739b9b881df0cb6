package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

const (
	// ContextClaimsKey is the gin context key storing *models.Claims.
	ContextClaimsKey = "sessionClaims"
	// SessionCookie is the cookie carrying the session token.
	SessionCookie = "token"
)

type tokenDecoder interface {
	Decode(token string) (models.Claims, error)
}

// Session protects routes by requiring a valid session cookie. Every failure
// yields the same 401; the cause is attached to the context for debug logs.
func Session(decoder tokenDecoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}

		claims, err := decoder.Decode(token)
		if err != nil {
			response.Abort(c, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, appErrors.ErrUnauthorized.Message))
			return
		}

		c.Set(ContextClaimsKey, &claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by Session.
func ClaimsFromContext(c *gin.Context) (*models.Claims, bool) {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.Claims)
	return claims, ok && claims != nil
}
