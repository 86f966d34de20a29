package models

import "time"

type ClientRequest struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ClientName  string    `json:"client_name" gorm:"not null"`
	ClientPhone string    `json:"client_phone" gorm:"not null"`
	ClientEmail string    `json:"client_email" gorm:"not null;default:''"`
	ServiceType string    `json:"service_type" gorm:"not null"`
	Location    string    `json:"location" gorm:"not null;default:''"`
	Description string    `json:"description" gorm:"type:text;not null;default:''"`
	Budget      float64   `json:"budget" gorm:"not null;default:0"`
	Urgency     string    `json:"urgency" gorm:"not null;default:''"`
	Status      string    `json:"status" gorm:"not null;default:'Pending'"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const ClientRequestPending = "Pending"
