package models

import "time"

type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Phone     string    `json:"phone" gorm:"not null;default:''"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Status    string    `json:"status" gorm:"not null;default:'new'"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

const ContactMessageNew = "new"
