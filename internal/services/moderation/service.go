package moderation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chambapp/backend_chamba/internal/models"
)

var (
	ErrUserNotFound  = errors.New("usuario no encontrado")
	ErrInvalidAction = errors.New("acción no reconocida")
)

// Admin actions accepted by Apply.
const (
	ActionValidate = "validar"
	ActionBlock    = "bloquear"
	ActionUnblock  = "desbloquear"
	ActionDelete   = "eliminar"
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// UserRow is one entry of the moderation listing.
type UserRow struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"nombre"`
	Surname         string      `json:"apellidos"`
	Email           string      `json:"correo_electronico"`
	Active          bool        `json:"activo"`
	BlockedUntil    *time.Time  `json:"bloqueado_hasta,omitempty"`
	Role            models.Role `json:"rol"`
	WorkerValidated bool        `json:"validado_admin"`
}

// ListUsers returns every account, most recent registration first, with the
// role derived from which profile row exists.
func (s *Service) ListUsers() ([]UserRow, error) {
	var users []models.User
	err := s.DB.
		Preload("ClientProfile").
		Preload("WorkerProfile").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	rows := make([]UserRow, 0, len(users))
	for i := range users {
		u := &users[i]
		rows = append(rows, UserRow{
			ID:              u.ID,
			Name:            u.Name,
			Surname:         u.Surname,
			Email:           u.Email,
			Active:          u.Active,
			BlockedUntil:    u.BlockedUntil,
			Role:            u.Role(),
			WorkerValidated: u.WorkerProfile != nil && u.WorkerProfile.Validated,
		})
	}
	return rows, nil
}

// Apply runs one admin action against a user. daysBlocked only matters for
// "bloquear"; zero or negative falls back to a 100 year block.
func (s *Service) Apply(userID uuid.UUID, action string, daysBlocked int) error {
	switch action {
	case ActionValidate:
		// no-op when the user has no worker profile
		return s.DB.Model(&models.WorkerProfile{}).
			Where("user_id = ?", userID).
			Update("validated", true).Error

	case ActionBlock:
		now := time.Now()
		var until time.Time
		if daysBlocked > 0 {
			until = now.AddDate(0, 0, daysBlocked)
		} else {
			until = now.AddDate(100, 0, 0)
		}
		return s.updateUser(userID, map[string]interface{}{"blocked_until": until})

	case ActionUnblock:
		return s.updateUser(userID, map[string]interface{}{"blocked_until": nil})

	case ActionDelete:
		// cascade is done here instead of relying on FK constraints so the
		// behavior is the same on every driver
		return s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("user_id = ?", userID).Delete(&models.WorkerCategory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.WorkerProfile{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.ClientProfile{}).Error; err != nil {
				return err
			}
			res := tx.Where("id = ?", userID).Delete(&models.User{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrUserNotFound
			}
			return nil
		})

	default:
		return ErrInvalidAction
	}
}

func (s *Service) updateUser(userID uuid.UUID, fields map[string]interface{}) error {
	res := s.DB.Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
