package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/chambapp/backend_chamba/internal/models"
	"github.com/chambapp/backend_chamba/internal/utils"
)

// DefaultCategories are the trades offered at launch.
var DefaultCategories = []models.Category{
	{Name: "Plomería", IconURL: "/iconos/plomeria.svg"},
	{Name: "Electricidad", IconURL: "/iconos/electricidad.svg"},
	{Name: "Carpintería", IconURL: "/iconos/carpinteria.svg"},
	{Name: "Albañilería", IconURL: "/iconos/albanileria.svg"},
	{Name: "Pintura", IconURL: "/iconos/pintura.svg"},
	{Name: "Jardinería", IconURL: "/iconos/jardineria.svg"},
	{Name: "Limpieza", IconURL: "/iconos/limpieza.svg"},
	{Name: "Cerrajería", IconURL: "/iconos/cerrajeria.svg"},
}

// SeedAdmin makes sure the fixed administrator account exists, keyed on the
// unique admin email so repeated boots are no-ops.
func SeedAdmin(gdb *gorm.DB, email, password string) error {
	email = utils.NormalizeEmail(email)

	var existing models.User
	err := gdb.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Administrador",
		Surname:      "Sistema",
		Email:        email,
		PasswordHash: hash,
		Active:       true,
		IsAdmin:      true,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// another replica won the insert
			return nil
		}
		return err
	}
	return nil
}

// SeedCategories inserts the default trades when the table is empty.
func SeedCategories(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	cats := make([]models.Category, len(DefaultCategories))
	copy(cats, DefaultCategories)
	return gdb.Create(&cats).Error
}
