package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Application status is a small state machine:
// pending → approved | rejected, and rejected → pending on resubmission.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"

	// derived display status for accounts that never submitted
	StatusIncomplete ApplicationStatus = "incomplete"
)

// TutorApplicationModel is the submitted-for-review tutor profile. One row per
// account, never deleted: approval derives a separate tutors row and this one
// stays as the historical record.
type TutorApplicationModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	// Personal / contact
	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Phone     string `gorm:"size:30;not null" json:"phone"`
	Gender    string `gorm:"size:10" json:"gender"`

	// Address
	City    string `gorm:"size:100;not null" json:"city"`
	State   string `gorm:"size:100;not null" json:"state"`
	Address string `gorm:"type:text;not null" json:"address"`

	// Uploaded document references (URLs only, upload itself is external)
	PhotoURL    string `gorm:"type:text" json:"photo_url"`
	CVURL       string `gorm:"type:text" json:"cv_url"`
	IDCardURL   string `gorm:"type:text" json:"id_card_url"`
	DocumentURL string `gorm:"type:text" json:"document_url"`

	// Ordered histories + subject list
	EducationHistory datatypes.JSON `gorm:"type:jsonb" json:"education_history"`
	WorkHistory      datatypes.JSON `gorm:"type:jsonb" json:"work_history"`
	Subjects         datatypes.JSON `gorm:"type:jsonb" json:"subjects"`

	// Free-text bio
	Headline string `gorm:"size:255" json:"headline"`
	Bio      string `gorm:"type:text" json:"bio"`

	Status          ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	RejectionReason *string           `gorm:"type:text" json:"rejection_reason,omitempty"`
	ReviewedBy      *uuid.UUID        `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time        `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TutorApplicationModel) TableName() string {
	return "tutor_applications"
}

func (m *TutorApplicationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = StatusPending
	}
	return nil
}
