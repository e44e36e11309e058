package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/chambapp/backend_chamba/internal/services/account"
	"github.com/chambapp/backend_chamba/internal/utils"
)

type AuthHandler struct {
	Svc       *account.Service
	Log       *logrus.Logger
	Validate  *validator.Validate
	JWTSecret string
	Expires   int
}

type RegisterClientReq struct {
	Name      string `json:"nombre" validate:"required"`
	Surname   string `json:"apellidos" validate:"required"`
	Email     string `json:"correo_electronico" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"telefono" validate:"required"`
	BirthDate string `json:"fecha_nacimiento" validate:"required,datetime=2006-01-02"`

	Street         string  `json:"calle" validate:"required"`
	Neighborhood   string  `json:"colonia" validate:"required"`
	ExteriorNumber string  `json:"numero_exterior" validate:"required"`
	InteriorNumber *string `json:"numero_interior"`
	PostalCode     string  `json:"codigo_postal" validate:"required"`
	City           string  `json:"ciudad" validate:"required"`
	Reference      *string `json:"referencias"`

	Latitude  *float64 `json:"latitud"`
	Longitude *float64 `json:"longitud"`
}

type RegisterWorkerReq struct {
	Name      string `json:"nombre" validate:"required"`
	Surname   string `json:"apellidos" validate:"required"`
	Email     string `json:"correo_electronico" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"telefono" validate:"required"`
	BirthDate string `json:"fecha_nacimiento" validate:"required,datetime=2006-01-02"`

	Bio             string  `json:"descripcion"`
	YearsExperience int     `json:"anios_experiencia" validate:"gte=0"`
	HourlyRate      float64 `json:"tarifa_hora" validate:"gte=0"`
	CategoryIDs     []uint  `json:"oficios_ids" validate:"required,min=1"`

	Latitude  *float64 `json:"latitud"`
	Longitude *float64 `json:"longitud"`
}

type VerifyReq struct {
	Email string `json:"correo" validate:"required,email"`
	Code  string `json:"codigo" validate:"required,len=6"`
}

type LoginReq struct {
	Email    string `json:"correo" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) RegisterClient(c *fiber.Ctx) error {
	if h.Svc == nil {
		return errNoDB(c)
	}
	var req RegisterClientReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo inválido")
	}
	if err := h.Validate.Struct(req); err != nil {
		return badRequest(c, "Datos inválidos")
	}
	birth, _ := time.Parse("2006-01-02", req.BirthDate)

	user, err := h.Svc.RegisterClient(account.RegisterClientInput{
		Name:           req.Name,
		Surname:        req.Surname,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		BirthDate:      birth,
		Street:         req.Street,
		Neighborhood:   req.Neighborhood,
		ExteriorNumber: req.ExteriorNumber,
		InteriorNumber: req.InteriorNumber,
		PostalCode:     req.PostalCode,
		City:           req.City,
		Reference:      req.Reference,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
	})
	if err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) {
			return badRequest(c, "Correo ya registrado.")
		}
		h.Log.WithError(err).Error("registro de cliente falló")
		return errInterno(c)
	}

	return c.JSON(fiber.Map{
		"mensaje": "Registrado. Verifica tu código.",
		"correo":  user.Email,
	})
}

func (h *AuthHandler) RegisterWorker(c *fiber.Ctx) error {
	if h.Svc == nil {
		return errNoDB(c)
	}
	var req RegisterWorkerReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo inválido")
	}
	if err := h.Validate.Struct(req); err != nil {
		return badRequest(c, "Datos inválidos")
	}
	birth, _ := time.Parse("2006-01-02", req.BirthDate)

	user, err := h.Svc.RegisterWorker(account.RegisterWorkerInput{
		Name:            req.Name,
		Surname:         req.Surname,
		Email:           req.Email,
		Password:        req.Password,
		Phone:           req.Phone,
		BirthDate:       birth,
		Bio:             req.Bio,
		YearsExperience: req.YearsExperience,
		HourlyRate:      req.HourlyRate,
		CategoryIDs:     req.CategoryIDs,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	})
	if err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) {
			return badRequest(c, "Correo ya registrado.")
		}
		h.Log.WithError(err).Error("registro de trabajador falló")
		return badRequest(c, "Error de registro")
	}

	return c.JSON(fiber.Map{
		"mensaje": "Registrado. Verifica tu código.",
		"correo":  user.Email,
	})
}

func (h *AuthHandler) VerifyAccount(c *fiber.Ctx) error {
	if h.Svc == nil {
		return errNoDB(c)
	}
	var req VerifyReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo inválido")
	}
	if err := h.Validate.Struct(req); err != nil {
		return badRequest(c, "Datos inválidos")
	}

	activated, err := h.Svc.Verify(req.Email, req.Code)
	switch {
	case errors.Is(err, account.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"mensaje": "Usuario no encontrado.",
		})
	case errors.Is(err, account.ErrInvalidCode):
		return badRequest(c, "Código incorrecto.")
	case err != nil:
		h.Log.WithError(err).Error("verificación de cuenta falló")
		return errInterno(c)
	}

	if !activated {
		return c.JSON(fiber.Map{"mensaje": "Cuenta ya activa."})
	}
	return c.JSON(fiber.Map{"mensaje": "¡Cuenta activada!"})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if h.Svc == nil {
		return errNoDB(c)
	}
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo inválido")
	}
	if err := h.Validate.Struct(req); err != nil {
		return badRequest(c, "Datos inválidos")
	}

	user, err := h.Svc.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, account.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"mensaje": "Credenciales incorrectas",
		})
	case errors.Is(err, account.ErrAccountInactive):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"mensaje": "Tu cuenta no ha sido activada.",
		})
	case errors.Is(err, account.ErrAccountBlocked):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"mensaje": "Tu cuenta está bloqueada temporalmente.",
		})
	case err != nil:
		h.Log.WithError(err).Error("login falló")
		return errInterno(c)
	}

	role := strings.ToLower(string(user.Role()))
	token, err := utils.SignJWT(h.JWTSecret, user.ID.String(), role, h.Expires)
	if err != nil {
		h.Log.WithError(err).Error("firma de token falló")
		return errInterno(c)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "ch_token",
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})

	return c.JSON(fiber.Map{
		"mensaje": "Login exitoso",
		"usuario": fiber.Map{
			"id":       user.ID,
			"nombre":   user.Name,
			"es_admin": user.IsAdmin,
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "ch_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"mensaje": "Sesión cerrada"})
}
