package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/financetracking/backend/internal/infrastructure/auth"
	"github.com/financetracking/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthTestEngine(t *testing.T) (*gin.Engine, *auth.TokenValidator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	validator := auth.NewTokenValidator(config.JWTConfig{
		Secret:   "test-secret-test-secret-test-secret",
		Issuer:   "financetracking-oidc",
		Audience: "financetracking-backend",
	})

	engine := gin.New()
	engine.GET("/me", AuthRequired(validator, zap.NewNop()), func(c *gin.Context) {
		userID, ok := GetAuthUserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return engine, validator
}

func getWithAuth(engine *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set(AuthHeaderKey, header)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	engine, validator := newAuthTestEngine(t)
	userID := uuid.New()

	token, err := validator.SignTestToken(userID, "alice", time.Hour)
	require.NoError(t, err)

	rec := getWithAuth(engine, BearerPrefix+token)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		UserID uuid.UUID `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, userID, body.UserID)
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	engine, _ := newAuthTestEngine(t)

	rec := getWithAuth(engine, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "ERR_UNAUTHORIZED", errorCode(t, rec))
}

func TestAuthRequiredRejectsMalformedHeader(t *testing.T) {
	engine, _ := newAuthTestEngine(t)

	for _, header := range []string{"Basic abc", "Bearer", "Bearer "} {
		rec := getWithAuth(engine, header)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthRequiredRejectsGarbageToken(t *testing.T) {
	engine, _ := newAuthTestEngine(t)

	rec := getWithAuth(engine, BearerPrefix+"not.a.token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "ERR_TOKEN_INVALID", errorCode(t, rec))
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	engine, validator := newAuthTestEngine(t)

	token, err := validator.SignTestToken(uuid.New(), "alice", -time.Minute)
	require.NoError(t, err)

	rec := getWithAuth(engine, BearerPrefix+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "ERR_TOKEN_EXPIRED", errorCode(t, rec))
}

func TestAuthRequiredRejectsForeignSignature(t *testing.T) {
	engine, _ := newAuthTestEngine(t)

	other := auth.NewTokenValidator(config.JWTConfig{
		Secret:   "another-secret-another-secret-12",
		Issuer:   "financetracking-oidc",
		Audience: "financetracking-backend",
	})
	token, err := other.SignTestToken(uuid.New(), "alice", time.Hour)
	require.NoError(t, err)

	rec := getWithAuth(engine, BearerPrefix+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "ERR_TOKEN_INVALID", errorCode(t, rec))
}
