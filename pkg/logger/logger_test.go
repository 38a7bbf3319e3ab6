package logger_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sorveteria-estoque/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProduccionEscribeJSONConNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("ignorado")
	l.Warn().Str("product_id", "p1").Msg("stock saturado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), "una sola línea JSON: el info se filtra por nivel")
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "p1", line["product_id"])
	assert.Equal(t, "stock saturado", line["message"])
}

func TestFiberMiddleware_RegistraStatus(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	app := fiber.New()
	app.Use(l.FiberMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/ping", line["path"])
	assert.EqualValues(t, fiber.StatusTeapot, line["status"])
}
