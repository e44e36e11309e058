package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/chambapp/backend_chamba/internal/services/moderation"
)

type AdminHandler struct {
	Svc      *moderation.Service
	Log      *logrus.Logger
	Validate *validator.Validate
}

type AdminActionReq struct {
	UserID      string `json:"usuario_id" validate:"required,uuid4"`
	Action      string `json:"accion" validate:"required"`
	DaysBlocked int    `json:"dias_bloqueo" validate:"gte=0"`
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	if h.Svc == nil {
		return errNoDB(c)
	}
	rows, err := h.Svc.ListUsers()
	if err != nil {
		h.Log.WithError(err).Error("listado de usuarios falló")
		return errInterno(c)
	}
	return c.JSON(rows)
}

func (h *AdminHandler) ApplyAction(c *fiber.Ctx) error {
	if h.Svc == nil {
		return errNoDB(c)
	}
	var req AdminActionReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo inválido")
	}
	if err := h.Validate.Struct(req); err != nil {
		return badRequest(c, "Datos inválidos")
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return badRequest(c, "Datos inválidos")
	}
	adminID, _ := c.Locals("userId").(string)

	err = h.Svc.Apply(userID, req.Action, req.DaysBlocked)
	switch {
	case errors.Is(err, moderation.ErrInvalidAction):
		return badRequest(c, "Acción no reconocida")
	case errors.Is(err, moderation.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"mensaje": "Usuario no encontrado.",
		})
	case err != nil:
		h.Log.WithError(err).WithFields(logrus.Fields{
			"admin_id":   adminID,
			"usuario_id": req.UserID,
			"accion":     req.Action,
		}).Error("acción administrativa falló")
		return errInterno(c)
	}

	// audit trail: who did what to whom
	h.Log.WithFields(logrus.Fields{
		"admin_id":   adminID,
		"usuario_id": req.UserID,
		"accion":     req.Action,
	}).Info("acción administrativa aplicada")

	return c.JSON(fiber.Map{"mensaje": "Acción aplicada."})
}
