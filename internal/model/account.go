package model

import (
	"time"

	"gorm.io/gorm"
)

// Account represents a managed account record. It is the root of the
// ownership tree: contacts, tasks and notes all reference an account.
type Account struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Status    string    `json:"status" gorm:"type:varchar(50);not null"`
	Tags      string    `json:"tags" gorm:"type:text"` // Comma-separated tags for simplicity
	Owner     string    `json:"owner" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations (declared so AutoMigrate creates the foreign keys)
	Contacts []Contact `json:"-" gorm:"foreignKey:AccountID"`
	Tasks    []Task    `json:"-" gorm:"foreignKey:AccountID"`
	Notes    []Note    `json:"-" gorm:"foreignKey:AccountID"`
}

// BeforeCreate applies creation defaults
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = "active"
	}
	return nil
}
