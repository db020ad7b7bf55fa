package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/services"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware initializes the authentication middleware
func InitAuthMiddleware(cfg *config.Config) {
	jwtService = services.NewJWTService(cfg)
}

// extractToken strips the "Bearer " prefix from an Authorization header
func extractToken(authHeader string) string {
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"code":    401,
		"message": message,
		"data":    nil,
	})
	c.Abort()
}

func abortForbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, gin.H{
		"code":    403,
		"message": message,
		"data":    nil,
	})
	c.Abort()
}

// authenticate validates the token and checks the role claim against the
// allowed roles before storing the claims in the request context
func authenticate(c *gin.Context, allowedRoles ...string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		abortUnauthorized(c, "Authorization header is required")
		return
	}

	tokenString := extractToken(authHeader)
	token, err := jwtService.ValidateToken(tokenString)
	if err != nil {
		abortUnauthorized(c, "Invalid token: "+err.Error())
		return
	}
	if !token.Valid {
		abortUnauthorized(c, "Invalid token")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		abortUnauthorized(c, "Invalid token claims")
		return
	}

	role, exists := claims["role"].(string)
	if !exists {
		abortForbidden(c, "Insufficient permissions: missing role claim")
		return
	}
	allowed := false
	for _, r := range allowedRoles {
		if role == r {
			allowed = true
			break
		}
	}
	if !allowed {
		abortForbidden(c, "Insufficient permissions: requires one of roles "+strings.Join(allowedRoles, ", "))
		return
	}

	c.Set("userID", claims["user_id"])
	c.Set("username", claims["username"])
	c.Set("role", role)
	c.Set("claims", claims)
	c.Next()
}

// AuthenticateAdmin allows admin accounts only
func AuthenticateAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, models.RoleAdmin)
	}
}

// AuthenticateStaff allows clerks and admins
func AuthenticateStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, models.RoleClerk, models.RoleAdmin)
	}
}

// Authentication validates the token without a role restriction
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, models.RoleClerk, models.RoleAdmin)
	}
}

// CurrentUserID returns the authenticated user ID from the context.
// JWT numeric claims decode as float64.
func CurrentUserID(c *gin.Context) uint {
	v, exists := c.Get("userID")
	if !exists {
		return 0
	}
	switch id := v.(type) {
	case float64:
		return uint(id)
	case uint:
		return id
	case int:
		return uint(id)
	}
	return 0
}
