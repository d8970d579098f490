package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusAssigned  RequestStatus = "assigned"
	StatusCancelled RequestStatus = "cancelled"
)

// Tuition mode as submitted by the guardian.
const (
	ModeHome   = "home"
	ModeOnline = "online"
	ModeBoth   = "both"
)

// TuitionRequestModel is the guardian-submitted intake. Only an admin moves
// it out of pending: approval also materializes a tuition_postings row,
// rejection just cancels it.
type TuitionRequestModel struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	GuardianName  string `gorm:"size:100;not null" json:"guardian_name"`
	GuardianPhone string `gorm:"size:30;not null" json:"guardian_phone"`
	GuardianEmail string `gorm:"size:255" json:"guardian_email"`

	StudentClass string `gorm:"size:50;not null" json:"student_class"`
	Subject      string `gorm:"size:100;not null" json:"subject"`
	Location     string `gorm:"size:255;not null" json:"location"`
	City         string `gorm:"size:100;not null" json:"city"`
	Mode         string `gorm:"size:10;not null;default:'both'" json:"mode"` // home | online | both
	Budget       string `gorm:"size:50" json:"budget"`
	DaysPerWeek  int    `json:"days_per_week"`
	Notes        string `gorm:"type:text" json:"notes"`

	Status     RequestStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReviewedBy *uuid.UUID    `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time    `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TuitionRequestModel) TableName() string {
	return "tuition_requests"
}

func (m *TuitionRequestModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = StatusPending
	}
	return nil
}
