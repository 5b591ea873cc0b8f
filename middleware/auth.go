package middleware

import (
	"strings"

	"changelog-api/config"
	"changelog-api/helper"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ProjectIDKey is the gin context key holding the authenticated project id.
const ProjectIDKey = "project_id"

type Claims struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

func AuthMiddleware(jwtConfig config.JWTConfig, httpHelper *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpHelper.SendUnauthorizedError(c, "authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			httpHelper.SendUnauthorizedError(c, "bearer token required")
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return jwtConfig.Key(), nil
		})
		if err != nil || !token.Valid {
			httpHelper.SendUnauthorizedError(c, "invalid token")
			c.Abort()
			return
		}

		projectID, err := uuid.Parse(claims.ProjectID)
		if err != nil {
			httpHelper.SendUnauthorizedError(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(ProjectIDKey, projectID)
		c.Set("project_name", claims.Name)

		c.Next()
	}
}

// ProjectID returns the project id stored by AuthMiddleware.
func ProjectID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(ProjectIDKey)
	projectID, _ := id.(uuid.UUID)
	return projectID
}
