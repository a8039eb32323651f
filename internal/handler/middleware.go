package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/task-manager/internal/service"
)

const (
	contextUserID = "user_id"
	contextEmail  = "email"
	contextClaims = "claims"
)

var (
	errMissingAuthorization   = errors.New("authorization header is required")
	errMalformedAuthorization = errors.New("invalid authorization header format")
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errMissingAuthorization
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMalformedAuthorization
	}

	return strings.TrimSpace(token), nil
}

// AuthMiddleware requires a valid access token and adds the caller's identity to the context
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			writeError(c, &service.Error{
				Kind:    service.KindUnauthorized,
				Key:     service.MsgAccessTokenRequired,
				Message: err.Error(),
			})
			return
		}

		claims, err := authService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			return
		}

		c.Set(contextUserID, claims.ID)
		c.Set(contextEmail, claims.Email)
		c.Set(contextClaims, claims)

		c.Next()
	}
}
