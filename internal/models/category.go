package models

// Category is read-only reference data seeded at startup.
type Category struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"uniqueIndex;not null" json:"nombre"`
	IconURL string `json:"icono_url"`
}
