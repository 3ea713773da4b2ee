package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/usercontext"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"Valid bearer token", "Bearer lh_abc123", "lh_abc123"},
		{"Case insensitive scheme", "bearer lh_abc123", "lh_abc123"},
		{"Missing header", "", ""},
		{"Wrong scheme", "Basic dXNlcjpwYXNz", ""},
		{"Scheme only", "Bearer", ""},
		{"Extra whitespace", "Bearer   lh_abc123  ", "lh_abc123"},
	}

	app := fiber.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := app.AcquireCtx(&fasthttp.RequestCtx{})
			defer app.ReleaseCtx(c)
			c.Request().Header.Set(fiber.HeaderAuthorization, tt.header)

			assert.Equal(t, tt.expected, extractBearerToken(c))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	newApp := func(uc *usercontext.UserContext) *fiber.App {
		app := fiber.New()
		app.Get("/admin",
			func(c *fiber.Ctx) error {
				if uc != nil {
					c.Locals(usercontext.ContextKey, *uc)
				}
				return c.Next()
			},
			RequireAdmin(),
			func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
		)
		return app
	}

	t.Run("Admin passes", func(t *testing.T) {
		app := newApp(&usercontext.UserContext{IsLoggedIn: true, IsAdmin: true})
		resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Non-admin is forbidden", func(t *testing.T) {
		app := newApp(&usercontext.UserContext{IsLoggedIn: true, IsAdmin: false})
		resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("Anonymous is unauthorized", func(t *testing.T) {
		app := newApp(nil)
		resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
