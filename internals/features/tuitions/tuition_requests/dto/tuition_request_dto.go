package dto

import (
	"time"

	"github.com/google/uuid"

	reqModel "tutorhub_backend/internals/features/tuitions/tuition_requests/model"
)

/* =========================================================
   REQUEST DTO — guardian intake form (auth not required)
========================================================= */

type SubmitTuitionRequest struct {
	GuardianName  string `json:"guardian_name" validate:"required,max=100"`
	GuardianPhone string `json:"guardian_phone" validate:"required,max=30"`
	GuardianEmail string `json:"guardian_email" validate:"omitempty,email"`

	StudentClass string `json:"student_class" validate:"required,max=50"`
	Subject      string `json:"subject" validate:"required,max=100"`
	Location     string `json:"location" validate:"required,max=255"`
	City         string `json:"city" validate:"required,max=100"`
	Mode         string `json:"mode" validate:"omitempty,oneof=home online both"`
	Budget       string `json:"budget" validate:"max=50"`
	DaysPerWeek  int    `json:"days_per_week" validate:"omitempty,min=1,max=7"`
	Notes        string `json:"notes"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type TuitionRequestResponse struct {
	ID            uuid.UUID               `json:"id"`
	GuardianName  string                  `json:"guardian_name"`
	GuardianPhone string                  `json:"guardian_phone"`
	GuardianEmail string                  `json:"guardian_email,omitempty"`
	StudentClass  string                  `json:"student_class"`
	Subject       string                  `json:"subject"`
	Location      string                  `json:"location"`
	City          string                  `json:"city"`
	Mode          string                  `json:"mode"`
	Budget        string                  `json:"budget,omitempty"`
	DaysPerWeek   int                     `json:"days_per_week,omitempty"`
	Notes         string                  `json:"notes,omitempty"`
	Status        reqModel.RequestStatus  `json:"status"`
	ReviewedAt    *time.Time              `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

func FromModel(m *reqModel.TuitionRequestModel) TuitionRequestResponse {
	return TuitionRequestResponse{
		ID:            m.ID,
		GuardianName:  m.GuardianName,
		GuardianPhone: m.GuardianPhone,
		GuardianEmail: m.GuardianEmail,
		StudentClass:  m.StudentClass,
		Subject:       m.Subject,
		Location:      m.Location,
		City:          m.City,
		Mode:          m.Mode,
		Budget:        m.Budget,
		DaysPerWeek:   m.DaysPerWeek,
		Notes:         m.Notes,
		Status:        m.Status,
		ReviewedAt:    m.ReviewedAt,
		CreatedAt:     m.CreatedAt,
	}
}
