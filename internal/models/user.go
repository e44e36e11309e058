package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleClient  Role = "Cliente"
	RoleWorker  Role = "Trabajador"
	RoleAdmin   Role = "Admin"
	RoleUnknown Role = "Desconocido"
)

type User struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"not null" json:"nombre"`
	Surname string    `gorm:"not null" json:"apellidos"`
	Email   string    `gorm:"uniqueIndex;not null" json:"correo_electronico"`

	PasswordHash string         `gorm:"not null" json:"-"`
	Phone        string         `gorm:"type:varchar(30)" json:"telefono"`
	BirthDate    datatypes.Date `json:"fecha_nacimiento"`

	Active bool `gorm:"not null;default:false" json:"activo"`
	// Cleared once the account is activated.
	VerificationCode *string    `gorm:"type:varchar(6)" json:"-"`
	IsAdmin          bool       `gorm:"not null;default:false" json:"es_admin"`
	BlockedUntil     *time.Time `json:"bloqueado_hasta,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientProfile *ClientProfile `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"perfil_cliente,omitempty"`
	WorkerProfile *WorkerProfile `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"perfil_trabajador,omitempty"`
}

// BeforeCreate assigns the ID in-process so inserts do not depend on a
// database-side uuid default (gen_random_uuid is postgres only).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Role derives the moderation role for a user row. Worker wins over client,
// admin only applies when neither profile exists.
func (u *User) Role() Role {
	switch {
	case u.WorkerProfile != nil:
		return RoleWorker
	case u.ClientProfile != nil:
		return RoleClient
	case u.IsAdmin:
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

// Blocked reports whether the user is currently suspended.
func (u *User) Blocked(now time.Time) bool {
	return u.BlockedUntil != nil && u.BlockedUntil.After(now)
}
