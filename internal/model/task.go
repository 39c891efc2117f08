package model

import (
	"time"

	"gorm.io/gorm"
)

// Task is a reminder or follow-up owned by an account and optionally tied to
// a contact. AttachmentsCount is a denormalized counter maintained outside
// this service; the handlers here never change it. CompletedAt is likewise
// recorded storage only — no handler sets it.
type Task struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	AccountID        uint       `json:"account_id" gorm:"not null;index"`
	ContactID        *uint      `json:"contact_id,omitempty" gorm:"index"`
	Title            string     `json:"title" gorm:"type:varchar(255);not null"`
	Description      string     `json:"description" gorm:"type:text"`
	Status           string     `json:"status" gorm:"type:varchar(50);not null"`
	Priority         int        `json:"priority" gorm:"default:0"`
	DueAt            *time.Time `json:"due_at"`
	AttachmentsCount int        `json:"attachments_count" gorm:"default:0"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Relations (declared so AutoMigrate creates the foreign keys)
	Attachments []Attachment `json:"-" gorm:"foreignKey:TaskID"`
	Notes       []Note       `json:"-" gorm:"foreignKey:TaskID"`
}

// BeforeCreate applies creation defaults
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.Status == "" {
		t.Status = "pending"
	}
	return nil
}
