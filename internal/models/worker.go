package models

import "time"

type Worker struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	FullName         string    `json:"full_name" gorm:"not null"`
	Age              int       `json:"age" gorm:"not null;default:0"`
	Gender           string    `json:"gender" gorm:"not null;default:''"`
	AadhaarNumber    *string   `json:"aadhaar_number" gorm:"uniqueIndex"`
	MobileNumber     string    `json:"mobile_number" gorm:"not null"`
	Address          string    `json:"address" gorm:"not null;default:''"`
	City             string    `json:"city" gorm:"not null;default:''"`
	State            string    `json:"state" gorm:"not null;default:''"`
	Pincode          string    `json:"pincode" gorm:"not null;default:''"`
	District         string    `json:"district" gorm:"not null;default:''"`
	PrimarySkill     string    `json:"primary_skill" gorm:"not null"`
	Experience       int       `json:"experience" gorm:"not null;default:0"`
	DailyWage        float64   `json:"daily_wage" gorm:"not null;default:0"`
	Availability     string    `json:"availability" gorm:"not null;default:''"`
	AdditionalSkills string    `json:"additional_skills" gorm:"not null;default:''"`
	Latitude         *float64  `json:"latitude"`
	Longitude        *float64  `json:"longitude"`
	PhotoURL         string    `json:"photo_url" gorm:"column:photo_url;type:text;not null;default:''"`
	Status           string    `json:"status" gorm:"not null;default:'pending';index"`
	Verified         bool      `json:"verified" gorm:"not null;default:false"`
	CreatedAt        time.Time `json:"created_at" gorm:"index"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type WorkerStatus string

const (
	WorkerPending  WorkerStatus = "pending"
	WorkerActive   WorkerStatus = "active"
	WorkerInactive WorkerStatus = "inactive"
)

// Valid reports whether s is one of the worker lifecycle states.
func (s WorkerStatus) Valid() bool {
	switch s {
	case WorkerPending, WorkerActive, WorkerInactive:
		return true
	}
	return false
}

// WorkerStatistics summarises the registry by status and verification.
type WorkerStatistics struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	Pending    int64 `json:"pending"`
	Inactive   int64 `json:"inactive"`
	Verified   int64 `json:"verified"`
	Unverified int64 `json:"unverified"`
}
