package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TutorModel is the approved, tuition-eligible profile, derived from an
// approved application. Its existence is the sole authority for "may this
// account apply to postings" — the archived application is not re-checked.
// Edits after approval land here only and never touch the application row.
type TutorModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null" json:"application_id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Phone     string `gorm:"size:30;not null" json:"phone"`
	Email     string `gorm:"size:255;not null" json:"email"`
	Gender    string `gorm:"size:10" json:"gender"`

	City    string `gorm:"size:100;not null" json:"city"`
	State   string `gorm:"size:100;not null" json:"state"`
	Address string `gorm:"type:text;not null" json:"address"`

	PhotoURL string         `gorm:"type:text" json:"photo_url"`
	Subjects datatypes.JSON `gorm:"type:jsonb" json:"subjects"`
	Headline string         `gorm:"size:255" json:"headline"`
	Bio      string         `gorm:"type:text" json:"bio"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TutorModel) TableName() string {
	return "tutors"
}

func (m *TutorModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
