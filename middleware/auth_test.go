package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"changelog-api/config"
	"changelog-api/helper"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Expiration: time.Hour}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(testJWT, helper.NewHTTPHelper()))
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, ProjectID(c).String())
	})
	return router
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	projectID := uuid.New()
	token := signToken(t, testJWT.Secret, jwt.MapClaims{
		"project_id": projectID.String(),
		"name":       "acme",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newAuthRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, projectID.String(), w.Body.String())
}

func TestAuthMiddlewareRejects(t *testing.T) {
	projectID := uuid.New().String()
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", signToken(t, testJWT.Secret, jwt.MapClaims{"project_id": projectID})},
		{"wrong secret", "Bearer " + signToken(t, "other", jwt.MapClaims{"project_id": projectID})},
		{"expired", "Bearer " + signToken(t, testJWT.Secret, jwt.MapClaims{
			"project_id": projectID,
			"exp":        time.Now().Add(-time.Minute).Unix(),
		})},
		{"bad project id", "Bearer " + signToken(t, testJWT.Secret, jwt.MapClaims{"project_id": "42"})},
		{"garbage", "Bearer abc.def.ghi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter().ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"code_type":"UNAUTHORIZED"`)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
