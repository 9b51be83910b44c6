package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/simp-lee/sitecms/internal/domain"
	"github.com/simp-lee/sitecms/internal/pkg"
)

const principalContextKey = "principal"

var errUnexpectedSigningMethod = errors.New("unexpected signing method")

// AuthConfig configures bearer token validation.
type AuthConfig struct {
	// Secret is the HS256 key tokens are signed with.
	Secret string
}

// Auth returns a gin middleware that requires a valid HS256 bearer token.
//
// The token must carry a user id in "user_id" (or "sub"); "username" and
// "role" are optional. The resulting domain.Principal is stored in gin.Context
// and in the request context, where services read it via domain.ActorID.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	key := []byte(cfg.Secret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "authorization header is required")
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}
		tokenString := strings.TrimSpace(header[len(bearerPrefix):])
		if tokenString == "" {
			abortUnauthorized(c, "token is empty")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errUnexpectedSigningMethod
			}
			return key, nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortUnauthorized(c, "access token has expired")
				return
			}
			abortUnauthorized(c, "invalid access token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			abortUnauthorized(c, "invalid access token")
			return
		}

		principal, ok := principalFromClaims(claims)
		if !ok {
			abortUnauthorized(c, "token is missing the user id")
			return
		}

		c.Set(principalContextKey, principal)
		c.Request = c.Request.WithContext(domain.WithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}

func principalFromClaims(claims jwt.MapClaims) (domain.Principal, bool) {
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		userID, _ = claims.GetSubject()
	}
	if userID == "" {
		return domain.Principal{}, false
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return domain.Principal{UserID: userID, Username: username, Role: role}, true
}

// RequireRole returns a gin middleware that admits only principals whose role
// is one of roles. It must run after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			abortUnauthorized(c, "user not authenticated")
			return
		}
		if !allowed[principal.Role] {
			c.Abort()
			pkg.Error(c, domain.Forbidden("insufficient permissions"))
			return
		}
		c.Next()
	}
}

// GetPrincipal extracts the authenticated principal from the gin.Context.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, exists := c.Get(principalContextKey)
	if !exists {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Abort()
	pkg.Error(c, domain.Unauthorized(msg))
}
