package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"todoportal/internal/domain/errors"
	"todoportal/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenCookie    = "jwt_token"
	claimUserID    = "user_id"
	contextUserKey = "user"
)

func (api *TodoAPI) issueToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimUserID: userID,
		"exp":       time.Now().Add(api.cfg.TokenTTL).Unix(),
	})
	return token.SignedString([]byte(api.cfg.JWTSecret))
}

func (api *TodoAPI) parseToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(api.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.ErrNotAuthenticated
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.ErrNotAuthenticated
	}
	userID, ok := claims[claimUserID].(string)
	if !ok || userID == "" {
		return "", errors.ErrNotAuthenticated
	}
	return userID, nil
}

func tokenFromRequest(ctx *gin.Context) string {
	if c, err := ctx.Cookie(tokenCookie); err == nil && c != "" {
		return c
	}
	parts := strings.SplitN(ctx.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func (api *TodoAPI) setTokenCookie(ctx *gin.Context, token string, ttl time.Duration) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(tokenCookie, token, int(ttl.Seconds()), "/", "", false, true)
}

// requireAuth accepts a request only when its token names the user held in
// the current session. A newer login or a logout invalidates older tokens.
func (api *TodoAPI) requireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw := tokenFromRequest(ctx)
		if raw == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrNotAuthenticated.Error()})
			return
		}
		userID, err := api.parseToken(raw)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrNotAuthenticated.Error()})
			return
		}

		current, err := api.svc.CurrentUser(ctx.Request.Context())
		if err != nil {
			if errors.Is(err, errors.ErrNotAuthenticated) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrNotAuthenticated.Error()})
				return
			}
			api.abortWithError(ctx, err)
			return
		}
		if current.ID != userID {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrNotAuthenticated.Error()})
			return
		}

		ctx.Set(contextUserKey, current)
		ctx.Next()
	}
}

func requireRole(role models.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := ctx.Get(contextUserKey)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrNotAuthenticated.Error()})
			return
		}
		if u, ok := user.(models.User); !ok || u.Role != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errors.ErrForbidden.Error()})
			return
		}
		ctx.Next()
	}
}
