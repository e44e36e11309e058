package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chambapp/backend_chamba/internal/cache"
	"github.com/chambapp/backend_chamba/internal/db"
	"github.com/chambapp/backend_chamba/internal/middleware"
	"github.com/chambapp/backend_chamba/internal/services/account"
	"github.com/chambapp/backend_chamba/internal/services/moderation"
)

const testSecret = "secreto-de-prueba"

type captureMailer struct {
	email string
	code  string
	sent  int
}

func (m *captureMailer) SendVerificationCode(email, code string) {
	m.email = email
	m.code = code
	m.sent++
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// newTestApp wires the same routes as cmd/api, minus the rate limiter and
// with the category cache disabled.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *captureMailer) {
	t.Helper()
	gdb := openTestDB(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	validate := validator.New()
	mailer := &captureMailer{}

	authH := &AuthHandler{
		Svc:       account.NewService(gdb, mailer),
		Log:       logger,
		Validate:  validate,
		JWTSecret: testSecret,
		Expires:   60,
	}
	adminH := &AdminHandler{
		Svc:      moderation.NewService(gdb),
		Log:      logger,
		Validate: validate,
	}
	categoryH := NewCategoryHandler(gdb, cache.NewCategoryCache(nil), logger)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"mensaje": "API Funcionando"})
	})
	app.Get("/categorias", categoryH.GetCategories)
	app.Post("/registro-cliente", authH.RegisterClient)
	app.Post("/registro-trabajador", authH.RegisterWorker)
	app.Post("/verificar-cuenta", authH.VerifyAccount)
	app.Post("/login", authH.Login)
	app.Post("/logout", authH.Logout)

	admin := app.Group("/admin",
		middleware.JWTFromCookie(testSecret),
		middleware.AttachJWTLocals(),
		middleware.RequireRoles("admin"),
	)
	admin.Get("/usuarios", adminH.ListUsers)
	admin.Post("/accion", adminH.ApplyAction)

	return app, gdb, mailer
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, cookie string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func timeNowPlusDay() time.Time {
	return time.Now().Add(24 * time.Hour)
}

func clientBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"nombre":             "Ana",
		"apellidos":          "García",
		"correo_electronico": email,
		"password":           "secreta1",
		"telefono":           "5512345678",
		"fecha_nacimiento":   "1995-04-12",
		"calle":              "Av. Juárez",
		"colonia":            "Centro",
		"numero_exterior":    "12",
		"codigo_postal":      "06000",
		"ciudad":             "Ciudad de México",
	}
}

func workerBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"nombre":             "Luis",
		"apellidos":          "Hernández",
		"correo_electronico": email,
		"password":           "secreta1",
		"telefono":           "5587654321",
		"fecha_nacimiento":   "1988-11-02",
		"descripcion":        "Plomero con herramienta propia",
		"anios_experiencia":  10,
		"tarifa_hora":        250,
		"oficios_ids":        []uint{1, 3},
	}
}
