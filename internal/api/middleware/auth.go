package middleware

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/linskybing/simtrack/internal/config"
	"github.com/linskybing/simtrack/internal/domain/user"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/pkg/response"
	"github.com/linskybing/simtrack/pkg/types"
)

// Auth handles authorization middleware
type Auth struct {
	repos *repository.Repos
}

// NewAuth creates a new Auth middleware instance
func NewAuth(repos *repository.Repos) *Auth {
	return &Auth{repos: repos}
}

func claimsFrom(c *gin.Context) (*types.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		return nil, false
	}
	claims, ok := v.(*types.Claims)
	return claims, ok
}

// RequireRole lets the request through when the caller has one of roles.
func (a *Auth) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
			return
		}
		for _, r := range roles {
			if claims.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "Permission denied for this role"})
	}
}

// Admin checks if user is an admin
func (a *Auth) Admin() gin.HandlerFunc {
	return a.RequireRole(user.RoleAdmin)
}

// Manager checks if user is a manager or an admin
func (a *Auth) Manager() gin.HandlerFunc {
	return a.RequireRole(user.RoleAdmin, user.RoleManager)
}

// Staff admits everyone who works requests: engineers, managers and admins.
func (a *Auth) Staff() gin.HandlerFunc {
	return a.RequireRole(user.RoleAdmin, user.RoleManager, user.RoleEngineer)
}

// UserOrAdmin checks if user is the target user or an admin
func (a *Auth) UserOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
			return
		}

		idParam := c.Param("id")
		if idParam == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{Error: "Missing user id"})
			return
		}
		targetUID, err := strconv.ParseUint(idParam, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid user id"})
			return
		}

		if claims.UserID == uint(targetUID) || claims.Role == user.RoleAdmin {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "Forbidden"})
	}
}

// LoggingMiddleware logs one line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.Request.URL.Path == "/metrics" {
			return
		}
		uid := uint(0)
		if claims, ok := claimsFrom(c); ok {
			uid = claims.UserID
		}
		log.Printf("[HTTP] %s %s %d %s uid=%d ip=%s", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start).Round(time.Millisecond), uid, c.ClientIP())
	}
}

// CORSMiddleware allows origins that start with one of config.AllowedOrigins.
func CORSMiddleware() gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOriginFunc: func(origin string) bool {
			for _, allowed := range config.AllowedOrigins {
				if allowed == "*" || strings.HasPrefix(origin, allowed) {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	corsHandler := cors.New(corsConfig)
	return func(c *gin.Context) {
		upgrade := c.GetHeader("Upgrade")
		if strings.EqualFold(upgrade, "websocket") {
			c.Next()
			return
		}
		corsHandler(c)
	}
}
