package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkerProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	Bio             string  `gorm:"type:text" json:"descripcion"`
	YearsExperience int     `gorm:"not null;default:0" json:"anios_experiencia"`
	HourlyRate      float64 `gorm:"not null;default:0" json:"tarifa_hora"`

	// Set to true once an admin reviews the profile.
	Validated bool `gorm:"not null;default:false" json:"validado_admin"`

	Latitude  *float64 `json:"latitud,omitempty"`
	Longitude *float64 `json:"longitud,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *WorkerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// WorkerCategory links a worker user to one of the trades they offer.
type WorkerCategory struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CategoryID uint      `gorm:"primaryKey" json:"categoria_id"`
}
