package middleware

import (
	"net/http/httptest"
	"testing"

	"agora/config"
	"agora/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("userRole"),
		})
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
	app := newProtectedApp()

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token passes claims through", func(t *testing.T) {
		token, err := GenerateJWT(42, "alice", "USER", "alice@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		token, err := GenerateJWT(42, "alice", "USER", "alice@example.com")
		require.NoError(t, err)

		config.AppConfig.JWTKey = "rotated-secret"
		defer func() { config.AppConfig.JWTKey = "test-secret" }()

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestWorkflowErrorResponseMapping(t *testing.T) {
	app := fiber.New()
	app.Get("/err/:kind", func(c *fiber.Ctx) error {
		errs := map[string]error{
			"validation":    &workflow.Error{Kind: workflow.KindValidation, Message: "bad input"},
			"authorization": &workflow.Error{Kind: workflow.KindAuthorization, Message: "no standing"},
			"state":         &workflow.Error{Kind: workflow.KindState, Message: "deal concluded"},
			"duplicate":     &workflow.Error{Kind: workflow.KindDuplicate, Message: "already reviewed"},
			"store":         &workflow.Error{Kind: workflow.KindStore, Message: "db down"},
		}
		return WorkflowErrorResponse(c, errs[c.Params("kind")])
	})

	cases := map[string]int{
		"validation":    fiber.StatusBadRequest,
		"authorization": fiber.StatusForbidden,
		"state":         fiber.StatusConflict,
		"duplicate":     fiber.StatusConflict,
		"store":         fiber.StatusInternalServerError,
	}
	for kind, want := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", "/err/"+kind, nil))
		require.NoError(t, err)
		assert.Equalf(t, want, resp.StatusCode, "kind %s", kind)
	}
}
