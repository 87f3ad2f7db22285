package middleware

import (
	"fmt"
	"strings"

	"collection-app/config"
	"collection-app/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		jwtKey := []byte(config.JWT_SECRET)
		if len(jwtKey) == 0 {
			apierror.Abort(c, apierror.Internal())
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierror.Abort(c, apierror.Unauthorized())
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			apierror.Abort(c, apierror.Unauthorized())
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			apierror.Abort(c, apierror.Unauthorized())
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			apierror.Abort(c, apierror.Unauthorized())
			return
		}

		sub, _ := claims[userIDKey].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			apierror.Abort(c, apierror.Unauthorized())
			return
		}

		c.Set(userIDKey, userID)
		if email, ok := claims["email"].(string); ok {
			c.Set("email", email)
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's id, or uuid.Nil outside the
// authenticated group.
func UserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
