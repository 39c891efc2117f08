package model

import "time"

// Note is a markdown note attached to an account and optionally to a contact
// and/or a task
type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AccountID uint      `json:"account_id" gorm:"not null;index"`
	ContactID *uint     `json:"contact_id,omitempty" gorm:"index"`
	TaskID    *uint     `json:"task_id,omitempty" gorm:"index"`
	BodyMD    string    `json:"body_md" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
