package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"chat-backend/internal/errs"
	"chat-backend/internal/models"
	"chat-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

const principalKey = "principal"

// CredentialVerifier turns a bearer token into a principal.
type CredentialVerifier interface {
	VerifyCredential(ctx context.Context, token string) (*models.Principal, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

// BearerToken reads the credential from the Authorization header, falling
// back to the token query parameter used by browser websocket clients.
func BearerToken(r *http.Request) string {
	if authz := strings.TrimSpace(r.Header.Get("Authorization")); authz != "" {
		if len(authz) > len("bearer ") && strings.EqualFold(authz[:len("bearer ")], "bearer ") {
			return strings.TrimSpace(authz[len("bearer "):])
		}
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// AuthMiddleware rejects requests without a valid credential and stores the
// principal in the gin context.
func AuthMiddleware(v CredentialVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := v.VerifyCredential(c.Request.Context(), BearerToken(c.Request))
		if err != nil {
			abortUnauthenticated(c, err)
			return
		}
		c.Set(principalKey, *p)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, err error) {
	msg := "Authentication failed"
	if errors.Is(err, errs.ErrUnauthenticated) {
		logger.Debugw("rejected credential", "path", c.Request.URL.Path, "error", err)
		msg = errs.PublicMessage(err, msg)
	} else {
		logger.Errorw("credential check failed", "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: msg})
}

func principal(c *gin.Context) models.Principal {
	return c.MustGet(principalKey).(models.Principal)
}

// OriginAllowed reports whether origin is in the allow-list. "*" allows any
// origin and an empty origin is always allowed.
func OriginAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return true
	}
	return lo.ContainsBy(allowed, func(a string) bool {
		return a == "*" || strings.EqualFold(a, origin)
	})
}

// CORS answers preflight requests and sets the allow headers for origins in
// the allow-list.
func CORS(allowed []string) gin.HandlerFunc {
	wildcard := lo.Contains(allowed, "*")
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && OriginAllowed(allowed, origin) {
			h := c.Writer.Header()
			if wildcard {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// writeError maps an error kind to a status code. Messages of non-public
// errors never reach the client.
func writeError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrUnauthenticated):
		status = http.StatusUnauthorized
	}
	if !errs.IsPublic(err) {
		logger.Errorw("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, errorResponse{Error: errs.PublicMessage(err, fallback)})
}
