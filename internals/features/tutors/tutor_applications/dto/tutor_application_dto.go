package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	appModel "tutorhub_backend/internals/features/tutors/tutor_applications/model"
)

/* =========================================================
   REQUEST DTO — SUBMIT / RESUBMIT (same payload, same rules)
========================================================= */

type EducationEntry struct {
	Degree      string `json:"degree" validate:"required"`
	Institution string `json:"institution" validate:"required"`
	StartYear   int    `json:"start_year"`
	EndYear     int    `json:"end_year"`
	Status      string `json:"status"` // e.g. "completed" | "ongoing"
}

type WorkEntry struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	StartYear    int    `json:"start_year"`
	EndYear      int    `json:"end_year"`
}

type SubmitTutorApplicationRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,max=30"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female other"`

	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	Address string `json:"address" validate:"required"`

	PhotoURL    string `json:"photo_url" validate:"omitempty,url"`
	CVURL       string `json:"cv_url" validate:"omitempty,url"`
	IDCardURL   string `json:"id_card_url" validate:"omitempty,url"`
	DocumentURL string `json:"document_url" validate:"omitempty,url"`

	EducationHistory []EducationEntry `json:"education_history" validate:"dive"`
	WorkHistory      []WorkEntry      `json:"work_history" validate:"dive"`
	Subjects         []string         `json:"subjects"`

	Headline string `json:"headline" validate:"max=255"`
	Bio      string `json:"bio"`
}

type RejectTutorApplicationRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type TutorApplicationResponse struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Address   string `json:"address"`

	PhotoURL    string `json:"photo_url,omitempty"`
	CVURL       string `json:"cv_url,omitempty"`
	IDCardURL   string `json:"id_card_url,omitempty"`
	DocumentURL string `json:"document_url,omitempty"`

	EducationHistory datatypes.JSON `json:"education_history,omitempty"`
	WorkHistory      datatypes.JSON `json:"work_history,omitempty"`
	Subjects         datatypes.JSON `json:"subjects,omitempty"`

	Headline string `json:"headline,omitempty"`
	Bio      string `json:"bio,omitempty"`

	Status          appModel.ApplicationStatus `json:"status"`
	RejectionReason *string                    `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time                 `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

func FromModel(m *appModel.TutorApplicationModel) TutorApplicationResponse {
	return TutorApplicationResponse{
		ID:               m.ID,
		UserID:           m.UserID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Phone:            m.Phone,
		Gender:           m.Gender,
		City:             m.City,
		State:            m.State,
		Address:          m.Address,
		PhotoURL:         m.PhotoURL,
		CVURL:            m.CVURL,
		IDCardURL:        m.IDCardURL,
		DocumentURL:      m.DocumentURL,
		EducationHistory: m.EducationHistory,
		WorkHistory:      m.WorkHistory,
		Subjects:         m.Subjects,
		Headline:         m.Headline,
		Bio:              m.Bio,
		Status:           m.Status,
		RejectionReason:  m.RejectionReason,
		ReviewedAt:       m.ReviewedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
