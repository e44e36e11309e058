package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/chambapp/backend_chamba/internal/cache"
	"github.com/chambapp/backend_chamba/internal/models"
)

type CategoryHandler struct {
	DB    *gorm.DB
	Cache *cache.CategoryCache
	Log   *logrus.Logger
}

func NewCategoryHandler(db *gorm.DB, c *cache.CategoryCache, log *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{DB: db, Cache: c, Log: log}
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	if h.DB == nil {
		return errNoDB(c)
	}

	if payload, ok := h.Cache.Get(c.Context()); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(payload)
	}

	var categories []models.Category
	if err := h.DB.Order("id").Find(&categories).Error; err != nil {
		h.Log.WithError(err).Error("listado de oficios falló")
		return errInterno(c)
	}

	if payload, err := json.Marshal(categories); err == nil {
		h.Cache.Set(c.Context(), payload)
	}

	return c.JSON(categories)
}
