package controller

import (
	"net/http/httptest"
	"testing"
	"time"

	"client-retention-be/internal/pkg/serverutils"
	"client-retention-be/internal/repository/memory"
	"client-retention-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Setenv("JWT_SECRET", "test-secret")

	factory := memory.NewFactory(memory.NewStore())
	clientService := service.NewClientService(factory)
	analyticsService := service.NewAnalyticsService(factory)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	NewClientController(clientService, nil, nopLogger{}).RegisterRoutes(api)
	NewAnalyticsController(analyticsService).RegisterRoutes(api)

	return app
}

func signToken(t *testing.T, userIdClaim string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userIdClaim,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestMalformedUserClaimRejected(t *testing.T) {
	app := newTestApp(t)

	// The token is validly signed but carries a user_id that is not a UUID.
	// That is a bad credential and must surface as 400, never as a lookup
	// against the nil UUID.
	token := signToken(t, "not-a-uuid")

	routes := []struct {
		method string
		path   string
	}{
		{method: "GET", path: "/api/clients"},
		{method: "GET", path: "/api/analytics"},
		{method: "POST", path: "/api/clients"},
		{method: "POST", path: "/api/cancellations"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestValidUserClaimAccepted(t *testing.T) {
	app := newTestApp(t)

	token := signToken(t, "7f9c24e8-3b1a-4f6e-9c2d-8a5b1e0d4c7f")

	req := httptest.NewRequest("GET", "/api/clients", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
