package model

import (
	"time"
)

// Customer represents a customer master record, unique by name per account.
type Customer struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_user_customer"`
	ContactPerson string    `json:"contact_person,omitempty" gorm:"type:varchar(100)"`
	Phone         string    `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Email         string    `json:"email,omitempty" gorm:"type:varchar(100)"`
	Address       string    `json:"address,omitempty" gorm:"type:text"`
	UserID        uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_customer"`
	CreatedAt     time.Time `json:"created_at"`
}
