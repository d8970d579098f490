package dto

import (
	"time"

	"github.com/google/uuid"

	postingModel "tutorhub_backend/internals/features/tuitions/tuition_postings/model"
)

// TuitionPostingResponse carries the posting plus the application_count read
// model (a subquery at list time, recomputed by the store — never a
// hand-maintained counter).
type TuitionPostingResponse struct {
	ID           uuid.UUID                  `json:"id"`
	RequestID    uuid.UUID                  `json:"request_id"`
	Title        string                     `json:"title"`
	StudentClass string                     `json:"student_class"`
	Subject      string                     `json:"subject"`
	Location     string                     `json:"location"`
	City         string                     `json:"city"`
	Fee          string                     `json:"fee"`
	Mode         string                     `json:"mode"`
	DaysPerWeek  int                        `json:"days_per_week,omitempty"`
	Status       postingModel.PostingStatus `json:"status"`
	AssignedTutorID *uuid.UUID              `json:"assigned_tutor_id,omitempty"`
	ApplicationCount int64                  `json:"application_count"`
	CreatedAt    time.Time                  `json:"created_at"`
}

func FromModel(m *postingModel.TuitionPostingModel, applicationCount int64) TuitionPostingResponse {
	return TuitionPostingResponse{
		ID:               m.ID,
		RequestID:        m.RequestID,
		Title:            m.Title(),
		StudentClass:     m.StudentClass,
		Subject:          m.Subject,
		Location:         m.Location,
		City:             m.City,
		Fee:              m.Fee,
		Mode:             m.Mode,
		DaysPerWeek:      m.DaysPerWeek,
		Status:           m.Status,
		AssignedTutorID:  m.AssignedTutorID,
		ApplicationCount: applicationCount,
		CreatedAt:        m.CreatedAt,
	}
}
