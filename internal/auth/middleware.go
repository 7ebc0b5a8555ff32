package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillsenselab/equiphub/internal/auth/authctx"
	"github.com/skillsenselab/equiphub/internal/auth/token"
	apperrors "github.com/skillsenselab/equiphub/internal/errors"
	"github.com/skillsenselab/equiphub/internal/server"
)

// Middleware returns the identity middleware for protected routes. It
// verifies the bearer token, resolves the subject to a persisted user
// (token validity does not imply account existence), and attaches the
// user to the request context. No caching: every request re-verifies the
// token and re-reads the account.
func Middleware(tokens *token.Service, users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			abort(c, apperrors.MissingToken())
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			abort(c, err)
			return
		}

		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			abort(c, apperrors.InvalidToken().WithCause(err))
			return
		}

		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			abort(c, err)
			return
		}
		if user == nil {
			// Account deleted after the token was issued.
			abort(c, apperrors.AccountNotFound())
			return
		}

		c.Request = c.Request.WithContext(authctx.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Returns "" when the scheme or token is missing.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abort(c *gin.Context, err error) {
	server.RespondWithError(c, err)
	c.Abort()
}
