package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	tutorModel "tutorhub_backend/internals/features/tutors/tutors/model"
)

/* =========================================================
   REQUEST DTO — post-approval edits land on the tutors row
   only, never on the archived application
========================================================= */

type UpdateTutorProfileRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	City      string `json:"city" validate:"omitempty,max=100"`
	State     string `json:"state" validate:"omitempty,max=100"`
	Address   string `json:"address"`
	PhotoURL  string `json:"photo_url" validate:"omitempty,url"`
	Subjects  []string `json:"subjects"`
	Headline  string `json:"headline" validate:"omitempty,max=255"`
	Bio       string `json:"bio"`
}

/* =========================================================
   RESPONSE DTO
========================================================= */

type TutorResponse struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email"`
	City      string         `json:"city"`
	State     string         `json:"state"`
	Address   string         `json:"address"`
	PhotoURL  string         `json:"photo_url,omitempty"`
	Subjects  datatypes.JSON `json:"subjects,omitempty"`
	Headline  string         `json:"headline,omitempty"`
	Bio       string         `json:"bio,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func FromModel(m *tutorModel.TutorModel) TutorResponse {
	return TutorResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Phone:     m.Phone,
		Email:     m.Email,
		City:      m.City,
		State:     m.State,
		Address:   m.Address,
		PhotoURL:  m.PhotoURL,
		Subjects:  m.Subjects,
		Headline:  m.Headline,
		Bio:       m.Bio,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
