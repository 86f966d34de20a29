package models

import "time"

type FranchiseApplication struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	FullName           string    `json:"full_name" gorm:"not null"`
	ApplicantType      string    `json:"applicant_type" gorm:"not null;default:''"`
	MobileNumber       string    `json:"mobile_number" gorm:"not null"`
	Email              string    `json:"email" gorm:"not null;default:''"`
	AadharNumber       string    `json:"aadhar_number" gorm:"not null;default:''"`
	Address            string    `json:"address" gorm:"not null;default:''"`
	District           string    `json:"district" gorm:"not null;default:''"`
	City               string    `json:"city" gorm:"not null;default:''"`
	CenterLocationType string    `json:"center_location_type" gorm:"not null;default:''"`
	SpaceAvailable     string    `json:"space_available" gorm:"not null;default:''"`
	ComputerSystem     bool      `json:"computer_system" gorm:"not null;default:false"`
	InternetAvailable  bool      `json:"internet_available" gorm:"not null;default:false"`
	Status             string    `json:"status" gorm:"not null;default:'pending'"`
	ApplicationData    JSONMap   `json:"application_data" gorm:"type:jsonb"`
	CreatedAt          time.Time `json:"created_at" gorm:"index"`
}

const FranchiseApplicationPending = "pending"
