package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	Street         string  `gorm:"not null" json:"calle"`
	Neighborhood   string  `gorm:"not null" json:"colonia"`
	ExteriorNumber string  `gorm:"type:varchar(20);not null" json:"numero_exterior"`
	InteriorNumber *string `gorm:"type:varchar(20)" json:"numero_interior,omitempty"`
	PostalCode     string  `gorm:"type:varchar(10);not null" json:"codigo_postal"`
	City           string  `gorm:"not null" json:"ciudad"`
	Reference      *string `gorm:"type:text" json:"referencias_domicilio,omitempty"`

	Latitude  *float64 `json:"latitud,omitempty"`
	Longitude *float64 `json:"longitud,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *ClientProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
