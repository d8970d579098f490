package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	bidModel "tutorhub_backend/internals/features/tuitions/tuition_applications/model"
	tutorDTO "tutorhub_backend/internals/features/tutors/tutors/dto"
)

/* =========================================================
   REQUEST DTO
========================================================= */

type ApplyRequest struct {
	PostingID   uuid.UUID `json:"posting_id" validate:"required"`
	CoverLetter string    `json:"cover_letter" validate:"required,min=20"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type TuitionApplicationResponse struct {
	ID        uuid.UUID `json:"id"`
	PostingID uuid.UUID `json:"posting_id"`
	TutorID   uuid.UUID `json:"tutor_id"`

	// snapshot taken at apply time
	TutorName     string         `json:"tutor_name"`
	TutorPhone    string         `json:"tutor_phone"`
	TutorEmail    string         `json:"tutor_email"`
	TutorSubjects datatypes.JSON `json:"tutor_subjects,omitempty"`

	CoverLetter string                            `json:"cover_letter"`
	Status      bidModel.TuitionApplicationStatus `json:"status"`
	ReviewedAt  *time.Time                        `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time                         `json:"created_at"`
}

// AdminTuitionApplicationDetail pairs the apply-time snapshot with the live
// tutor profile so the admin can still reach the tutor after profile edits.
type AdminTuitionApplicationDetail struct {
	Application  TuitionApplicationResponse `json:"application"`
	CurrentTutor *tutorDTO.TutorResponse    `json:"current_tutor,omitempty"`
}

func FromModel(m *bidModel.TuitionApplicationModel) TuitionApplicationResponse {
	return TuitionApplicationResponse{
		ID:            m.ID,
		PostingID:     m.PostingID,
		TutorID:       m.TutorID,
		TutorName:     m.TutorName,
		TutorPhone:    m.TutorPhone,
		TutorEmail:    m.TutorEmail,
		TutorSubjects: m.TutorSubjects,
		CoverLetter:   m.CoverLetter,
		Status:        m.Status,
		ReviewedAt:    m.ReviewedAt,
		CreatedAt:     m.CreatedAt,
	}
}
