package models

import "time"

const (
	AppointmentStatusPending = "PENDING"
	AppointmentStatusDone    = "DONE"

	RoleAdmin = "admin"
)

type AdminUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:320;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (AdminUser) TableName() string { return "admin_users" }

// Image is a gallery entry. Data holds the content unless StorageKey points
// at an object store; both are write-once.
type Image struct {
	ID         uint   `gorm:"primaryKey"`
	Mime       string `gorm:"size:64;not null"`
	Data       []byte
	StorageKey string    `gorm:"size:255;not null;default:''"`
	Size       int64     `gorm:"not null;default:0"`
	Width      int       `gorm:"not null;default:0"`
	Height     int       `gorm:"not null;default:0"`
	TitleFr    string    `gorm:"size:255;not null;default:''"`
	CaptionFr  string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"index:idx_images_created_at"`
}

func (Image) TableName() string { return "images" }

type Appointment struct {
	ID              uint      `gorm:"primaryKey"`
	FirstName       string    `gorm:"size:120;not null"`
	LastName        string    `gorm:"size:120;not null"`
	BirthDate       time.Time `gorm:"type:date;not null"`
	AppointmentDate time.Time `gorm:"type:date;not null"`
	FirstTime       bool      `gorm:"not null;default:false"`
	Phone           string    `gorm:"size:64;not null"`
	Status          string    `gorm:"size:16;not null;default:'PENDING'"`
	CreatedAt       time.Time `gorm:"index:idx_appointments_created_at"`
}

func (Appointment) TableName() string { return "appointments" }

func ValidAppointmentStatus(status string) bool {
	return status == AppointmentStatusPending || status == AppointmentStatusDone
}
