package model

import "time"

// Attachment is a file stored for a task. SoftDeleted is a logical delete
// marker only: no read path in this service filters on it, and rows are
// otherwise removed with hard deletes like every other entity.
type Attachment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TaskID      uint      `json:"task_id" gorm:"not null;index"`
	Filename    string    `json:"filename" gorm:"type:varchar(255);not null"`
	Path        string    `json:"path" gorm:"type:varchar(512);not null"`
	SizeBytes   int64     `json:"size_bytes"`
	Mime        string    `json:"mime" gorm:"type:varchar(100)"`
	UploadedAt  time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
	SoftDeleted bool      `json:"soft_deleted" gorm:"default:false"`
}
