package model

// Contact is a person attached to exactly one account
type Contact struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	AccountID uint   `json:"account_id" gorm:"not null;index"`
	Name      string `json:"name" gorm:"type:varchar(255);not null"`
	Email     string `json:"email" gorm:"type:varchar(255)"`
	Phone     string `json:"phone" gorm:"type:varchar(50)"`
	Role      string `json:"role" gorm:"type:varchar(100)"`

	// Relations (declared so AutoMigrate creates the foreign keys)
	Tasks []Task `json:"-" gorm:"foreignKey:ContactID"`
	Notes []Note `json:"-" gorm:"foreignKey:ContactID"`
}
