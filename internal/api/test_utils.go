package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog/backend/internal/mocks"
	"github.com/nutrilog/backend/internal/types"
)

const testToken = "test-token"

// newTestAuth returns a mock auth service that accepts testToken for the
// given user.
func newTestAuth(userID uuid.UUID) *mocks.MockAuthService {
	auth := new(mocks.MockAuthService)
	auth.On("ValidateToken", testToken).Return(&types.TokenClaims{
		UserID:          userID,
		Username:        "testuser",
		IsEmailVerified: true,
	}, nil)
	return auth
}

// newTestRouter builds a gin engine in test mode with routes registered
// under /api/v1, the way the real router mounts them.
func newTestRouter(register func(*gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	register(router.Group("/api/v1"))
	return router
}

// doRequest performs an authenticated JSON request against the test router.
func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body into a map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
