package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TuitionApplicationStatus string

const (
	StatusPending  TuitionApplicationStatus = "pending"
	StatusAccepted TuitionApplicationStatus = "accepted"
	StatusRejected TuitionApplicationStatus = "rejected"
)

// TuitionApplicationModel is a tutor's bid for a posting. At most one row per
// (tutor, posting) pair, enforced by the unique index — a duplicate attempt
// must surface as a distinct "already applied" conflict.
//
// TutorName/Phone/Email/Subjects are copy-on-write snapshots taken at apply
// time so the admin review shows what was true then; later profile edits do
// not rewrite history.
type TuitionApplicationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tuition_applications_posting_tutor" json:"posting_id"`
	TutorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tuition_applications_posting_tutor" json:"tutor_id"`

	TutorName     string         `gorm:"size:200;not null" json:"tutor_name"`
	TutorPhone    string         `gorm:"size:30;not null" json:"tutor_phone"`
	TutorEmail    string         `gorm:"size:255;not null" json:"tutor_email"`
	TutorSubjects datatypes.JSON `gorm:"type:jsonb" json:"tutor_subjects"`

	CoverLetter string `gorm:"type:text;not null" json:"cover_letter"`

	Status     TuitionApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReviewedBy *uuid.UUID               `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time               `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TuitionApplicationModel) TableName() string {
	return "tuition_applications"
}

func (m *TuitionApplicationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = StatusPending
	}
	return nil
}
