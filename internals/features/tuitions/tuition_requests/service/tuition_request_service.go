package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	postingModel "tutorhub_backend/internals/features/tuitions/tuition_postings/model"
	reqDTO "tutorhub_backend/internals/features/tuitions/tuition_requests/dto"
	reqModel "tutorhub_backend/internals/features/tuitions/tuition_requests/model"
	helper "tutorhub_backend/internals/helpers"
)

// TuitionRequestService owns the request lifecycle:
//
//	pending → assigned  (approval, also inserts the sibling posting)
//	        → cancelled (rejection)
//
// Approval is two-step: posting insert first, then the status flip — the flip
// must never run when the insert failed, or a phantom "assigned" request with
// no visible posting would be left behind.
type TuitionRequestService struct {
	DB *gorm.DB
}

func NewTuitionRequestService(db *gorm.DB) *TuitionRequestService {
	return &TuitionRequestService{DB: db}
}

/* =========================================================
   SUBMIT (guardian, no auth required)
========================================================= */

func (s *TuitionRequestService) Submit(req reqDTO.SubmitTuitionRequest) (*reqModel.TuitionRequestModel, error) {
	row := reqModel.TuitionRequestModel{
		GuardianName:  strings.TrimSpace(req.GuardianName),
		GuardianPhone: strings.TrimSpace(req.GuardianPhone),
		GuardianEmail: strings.ToLower(strings.TrimSpace(req.GuardianEmail)),
		StudentClass:  strings.TrimSpace(req.StudentClass),
		Subject:       strings.TrimSpace(req.Subject),
		Location:      strings.TrimSpace(req.Location),
		City:          strings.TrimSpace(req.City),
		Mode:          normalizeMode(req.Mode),
		Budget:        strings.TrimSpace(req.Budget),
		DaysPerWeek:   req.DaysPerWeek,
		Notes:         req.Notes,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		log.Println("[ERROR] tuition request insert:", err)
		return nil, helper.NewUnavailable("Failed to save the tuition request")
	}
	return &row, nil
}

/* =========================================================
   APPROVE / REJECT (admin)
========================================================= */

// Approve inserts the derived posting and flips the request to assigned, in
// one transaction. The "posting already exists for this request" check makes
// a retry after a half-applied earlier attempt safe instead of duplicating.
func (s *TuitionRequestService) Approve(adminID, requestID uuid.UUID) (*postingModel.TuitionPostingModel, error) {
	var posting postingModel.TuitionPostingModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var request reqModel.TuitionRequestModel
		if err := tx.Where("id = ?", requestID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NewNotFound("Tuition request not found")
			}
			log.Println("[ERROR] approve request lookup:", err)
			return helper.NewUnavailable("Failed to load the tuition request")
		}

		switch request.Status {
		case reqModel.StatusAssigned:
			return helper.NewConflict("This request has already been approved")
		case reqModel.StatusCancelled:
			return helper.NewConflict("This request has already been cancelled")
		}

		// Step (a): the posting. Reuse an existing one when retrying.
		err := tx.Where("request_id = ?", request.ID).First(&posting).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			posting = BuildPosting(&request)
			if err := tx.Create(&posting).Error; err != nil {
				if helper.IsUniqueViolation(err) {
					return helper.NewConflict("A posting already exists for this request")
				}
				log.Println("[ERROR] posting insert:", err)
				return helper.NewUnavailable("Failed to create the posting")
			}
		case err != nil:
			log.Println("[ERROR] posting retry check:", err)
			return helper.NewUnavailable("Failed to create the posting")
		}

		// Step (b): only after (a) succeeded.
		now := time.Now().UTC()
		request.Status = reqModel.StatusAssigned
		request.ReviewedBy = &adminID
		request.ReviewedAt = &now
		if err := tx.Save(&request).Error; err != nil {
			log.Println("[ERROR] request status update:", err)
			return helper.NewUnavailable("Failed to update the request")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &posting, nil
}

func (s *TuitionRequestService) Reject(adminID, requestID uuid.UUID) (*reqModel.TuitionRequestModel, error) {
	var request reqModel.TuitionRequestModel
	if err := s.DB.Where("id = ?", requestID).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewNotFound("Tuition request not found")
		}
		log.Println("[ERROR] reject request lookup:", err)
		return nil, helper.NewUnavailable("Failed to load the tuition request")
	}

	switch request.Status {
	case reqModel.StatusAssigned:
		return nil, helper.NewConflict("This request has already been approved")
	case reqModel.StatusCancelled:
		return nil, helper.NewConflict("This request has already been cancelled")
	}

	now := time.Now().UTC()
	request.Status = reqModel.StatusCancelled
	request.ReviewedBy = &adminID
	request.ReviewedAt = &now
	if err := s.DB.Save(&request).Error; err != nil {
		log.Println("[ERROR] request cancel update:", err)
		return nil, helper.NewUnavailable("Failed to update the request")
	}
	return &request, nil
}

/* =========================================================
   Derivation rules
========================================================= */

// BuildPosting copies the tutor-relevant fields from the request. Empty
// budget becomes "Negotiable"; the mode selector becomes a display label.
func BuildPosting(request *reqModel.TuitionRequestModel) postingModel.TuitionPostingModel {
	return postingModel.TuitionPostingModel{
		RequestID:    request.ID,
		StudentClass: request.StudentClass,
		Subject:      request.Subject,
		Location:     request.Location,
		City:         request.City,
		Fee:          FeeOrDefault(request.Budget),
		Mode:         ModeLabel(request.Mode),
		DaysPerWeek:  request.DaysPerWeek,
		Status:       postingModel.StatusAvailable,
	}
}

func FeeOrDefault(budget string) string {
	if strings.TrimSpace(budget) == "" {
		return postingModel.FeeNegotiable
	}
	return strings.TrimSpace(budget)
}

func ModeLabel(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case reqModel.ModeHome:
		return postingModel.ModeLabelHome
	case reqModel.ModeOnline:
		return postingModel.ModeLabelOnline
	default:
		return postingModel.ModeLabelBoth
	}
}

func normalizeMode(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case reqModel.ModeHome:
		return reqModel.ModeHome
	case reqModel.ModeOnline:
		return reqModel.ModeOnline
	default:
		return reqModel.ModeBoth
	}
}
