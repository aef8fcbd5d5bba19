package middleware

import (
	"errors"
	"net/http"
	"strings"

	"adminpanel/database/repository"
	adminRepo "adminpanel/database/repository/admin"
	userRepo "adminpanel/database/repository/user"
	"adminpanel/models"
	"adminpanel/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// identityKey is the gin context key holding the caller's models.Identity.
const identityKey = "identity"

// TokenValidator checks a session token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*utils.TokenClaims, error)
}

// RequireAuth rejects requests without a valid bearer token for an account
// that still exists, and attaches the caller's identity to the context.
func RequireAuth(tokens TokenValidator, users userRepo.UserRepository, admins adminRepo.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.AbortJSONError(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.AbortJSONError(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			utils.AbortJSONError(c, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		var identity models.Identity
		switch claims.Role {
		case models.RoleAdmin:
			admin, err := admins.GetByID(c.Request.Context(), claims.ID)
			if !accountFound(c, "admin", claims.ID, admin != nil, err) {
				return
			}
			identity = models.Identity{
				ID:      admin.ID,
				Name:    admin.Name,
				Email:   admin.Email,
				Role:    models.RoleAdmin,
				IsAdmin: admin.IsAdmin,
			}
		case models.RoleUser:
			usr, err := users.GetByID(c.Request.Context(), claims.ID)
			if !accountFound(c, "user", claims.ID, usr != nil, err) {
				return
			}
			identity = models.Identity{
				ID:    usr.ID,
				Name:  usr.Name,
				Email: usr.Email,
				Role:  models.RoleUser,
			}
		default:
			utils.AbortJSONError(c, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// accountFound aborts the request unless the token's account was loaded. A
// missing account is a 401; a failing store is a 500 so the client keeps its token.
func accountFound(c *gin.Context, kind, id string, found bool, err error) bool {
	switch {
	case err == nil && found:
		return true
	case err == nil, errors.Is(err, repository.ErrNotFound):
		utils.GetLogger().Debug("Token for unknown "+kind, zap.String("id", id), zap.Error(err))
		utils.AbortJSONError(c, http.StatusUnauthorized, "Not authorized, token failed")
	default:
		utils.GetLogger().Error("Failed to load "+kind+" for token", zap.String("id", id), zap.Error(err))
		utils.AbortJSONError(c, http.StatusInternalServerError, "Server error")
	}
	return false
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || !identity.IsAdmin {
			utils.AbortJSONError(c, http.StatusForbidden, "Not authorized as an admin")
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity attached by RequireAuth.
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}
