package model

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents a login identity. The schema exists and passwords are
// stored hashed, but no authentication flow is enforced by this service.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash string `json:"-" gorm:"type:varchar(255)"`
	ThemePref    string `json:"theme_pref" gorm:"type:varchar(50)"`
}

// BeforeCreate applies creation defaults
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ThemePref == "" {
		u.ThemePref = "system"
	}
	return nil
}

// SetPassword hashes the plaintext password into PasswordHash
func (u *User) SetPassword(plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// VerifyPassword reports whether the plaintext password matches PasswordHash
func (u *User) VerifyPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}
