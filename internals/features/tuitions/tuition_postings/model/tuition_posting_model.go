package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostingStatus string

const (
	StatusAvailable PostingStatus = "available"
	StatusAssigned  PostingStatus = "assigned"
)

// Display labels mapped from the request's mode selector.
const (
	ModeLabelHome   = "Home Tuition"
	ModeLabelOnline = "Online Tuition"
	ModeLabelBoth   = "Both"
)

const FeeNegotiable = "Negotiable"

// TuitionPostingModel is the tutor-visible unit of work, derived from an
// approved request. Visible in browsing only while available; once assigned
// it shows up exclusively in the assigned tutor's "my tuitions".
// The application_count exposed by list endpoints is a subquery read model,
// not a column here.
type TuitionPostingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"request_id"`

	StudentClass string `gorm:"size:50;not null" json:"student_class"`
	Subject      string `gorm:"size:100;not null" json:"subject"`
	Location     string `gorm:"size:255;not null" json:"location"`
	City         string `gorm:"size:100;not null" json:"city"`
	Fee          string `gorm:"size:50;not null;default:'Negotiable'" json:"fee"`
	Mode         string `gorm:"size:20;not null" json:"mode"`
	DaysPerWeek  int    `json:"days_per_week"`

	Status          PostingStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	AssignedTutorID *uuid.UUID    `gorm:"type:uuid" json:"assigned_tutor_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TuitionPostingModel) TableName() string {
	return "tuition_postings"
}

func (m *TuitionPostingModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = StatusAvailable
	}
	return nil
}

// Title is a short display label used in notifications and list views.
func (m *TuitionPostingModel) Title() string {
	return m.Subject + " — " + m.StudentClass + ", " + m.City
}
