package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bidModel "tutorhub_backend/internals/features/tuitions/tuition_applications/model"
	postingModel "tutorhub_backend/internals/features/tuitions/tuition_postings/model"
	tutorModel "tutorhub_backend/internals/features/tutors/tutors/model"
	helper "tutorhub_backend/internals/helpers"
	"tutorhub_backend/internals/mailer"
)

// TuitionApplicationService owns the apply/accept/reject orchestration.
// Accepting one application rejects every pending sibling in a single bulk
// update, flips the posting to assigned behind a compare-and-swap on its
// current status, and only notifies after the transaction committed.
type TuitionApplicationService struct {
	DB         *gorm.DB
	Dispatcher mailer.Dispatcher
}

func NewTuitionApplicationService(db *gorm.DB, dispatcher mailer.Dispatcher) *TuitionApplicationService {
	return &TuitionApplicationService{DB: db, Dispatcher: dispatcher}
}

/* =========================================================
   APPLY (tutor)
========================================================= */

// Apply creates a pending bid. Eligibility is exactly "a tutors row exists
// for this account"; contact fields are snapshotted at creation.
func (s *TuitionApplicationService) Apply(userID, postingID uuid.UUID, coverLetter string) (*bidModel.TuitionApplicationModel, error) {
	if strings.TrimSpace(coverLetter) == "" {
		return nil, helper.NewValidation("Cover letter is required", map[string]string{"cover_letter": "required"})
	}

	var tutor tutorModel.TutorModel
	if err := s.DB.Where("user_id = ?", userID).First(&tutor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewPermissionDenied("Only approved tutors can apply to postings")
		}
		log.Println("[ERROR] apply tutor lookup:", err)
		return nil, helper.NewUnavailable("Failed to load your tutor profile")
	}

	var posting postingModel.TuitionPostingModel
	if err := s.DB.Where("id = ?", postingID).First(&posting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewNotFound("Tuition posting not found")
		}
		log.Println("[ERROR] apply posting lookup:", err)
		return nil, helper.NewUnavailable("Failed to load the posting")
	}
	if posting.Status != postingModel.StatusAvailable {
		return nil, helper.NewConflict("This posting is no longer available")
	}

	row := bidModel.TuitionApplicationModel{
		PostingID:     posting.ID,
		TutorID:       tutor.ID,
		TutorName:     strings.TrimSpace(tutor.FirstName + " " + tutor.LastName),
		TutorPhone:    tutor.Phone,
		TutorEmail:    tutor.Email,
		TutorSubjects: tutor.Subjects,
		CoverLetter:   strings.TrimSpace(coverLetter),
	}
	if err := s.DB.Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.NewConflict("You have already applied to this tuition")
		}
		log.Println("[ERROR] application insert:", err)
		return nil, helper.NewUnavailable("Failed to save your application")
	}
	return &row, nil
}

/* =========================================================
   ACCEPT (admin)
========================================================= */

// Accept runs the full assignment:
//  1. the chosen application → accepted (+ reviewer stamp)
//  2. one bulk update rejects every other pending sibling on the posting
//  3. the posting available→assigned, guarded by a status CAS so only the
//     first of two racing accepts wins; the loser gets a Conflict
//  4. after commit: one assignment notification + one rejection notification
//     per swept sibling, fire-and-forget
//
// Re-accepting an already-accepted application is a benign Conflict and never
// re-sends notifications.
func (s *TuitionApplicationService) Accept(adminID, applicationID uuid.UUID) (*bidModel.TuitionApplicationModel, error) {
	var accepted bidModel.TuitionApplicationModel
	var posting postingModel.TuitionPostingModel
	var swept []bidModel.TuitionApplicationModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", applicationID).First(&accepted).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NewNotFound("Application not found")
			}
			log.Println("[ERROR] accept lookup:", err)
			return helper.NewUnavailable("Failed to load the application")
		}

		switch accepted.Status {
		case bidModel.StatusAccepted:
			return helper.NewConflict("This application has already been accepted")
		case bidModel.StatusRejected:
			return helper.NewConflict("This application has already been rejected")
		}

		now := time.Now().UTC()
		accepted.Status = bidModel.StatusAccepted
		accepted.ReviewedBy = &adminID
		accepted.ReviewedAt = &now
		if err := tx.Save(&accepted).Error; err != nil {
			log.Println("[ERROR] accept update:", err)
			return helper.NewUnavailable("Failed to update the application")
		}

		// Collect the siblings the sweep will hit, for the notifications.
		if err := tx.Where("posting_id = ? AND status = ? AND id <> ?",
			accepted.PostingID, bidModel.StatusPending, accepted.ID).
			Find(&swept).Error; err != nil {
			log.Println("[ERROR] sweep select:", err)
			return helper.NewUnavailable("Failed to load sibling applications")
		}

		// One conditional bulk update — no per-row loop, no partial sweep.
		if err := tx.Model(&bidModel.TuitionApplicationModel{}).
			Where("posting_id = ? AND status = ? AND id <> ?",
				accepted.PostingID, bidModel.StatusPending, accepted.ID).
			Updates(map[string]interface{}{
				"status":      bidModel.StatusRejected,
				"reviewed_by": adminID,
				"reviewed_at": now,
			}).Error; err != nil {
			log.Println("[ERROR] sweep update:", err)
			return helper.NewUnavailable("Failed to update sibling applications")
		}

		// CAS: only an available posting can be assigned.
		res := tx.Model(&postingModel.TuitionPostingModel{}).
			Where("id = ? AND status = ?", accepted.PostingID, postingModel.StatusAvailable).
			Updates(map[string]interface{}{
				"status":            postingModel.StatusAssigned,
				"assigned_tutor_id": accepted.TutorID,
			})
		if res.Error != nil {
			log.Println("[ERROR] posting assign:", res.Error)
			return helper.NewUnavailable("Failed to assign the posting")
		}
		if res.RowsAffected == 0 {
			return helper.NewConflict("This posting has already been assigned to another tutor")
		}

		if err := tx.Where("id = ?", accepted.PostingID).First(&posting).Error; err != nil {
			log.Println("[ERROR] posting reload:", err)
			return helper.NewUnavailable("Failed to load the posting")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notifications only after the commit. Best-effort, no ordering between
	// the acceptance and rejection sends.
	if s.Dispatcher != nil {
		title := posting.Title()
		s.Dispatcher.Notify(mailer.KindAssignment, accepted.TutorEmail, mailer.Fields{
			"name":          accepted.TutorName,
			"posting_title": title,
		})
		for i := range swept {
			s.Dispatcher.Notify(mailer.KindRejection, swept[i].TutorEmail, mailer.Fields{
				"name":          swept[i].TutorName,
				"posting_title": title,
			})
		}
	}

	return &accepted, nil
}

/* =========================================================
   REJECT (admin, single application)
========================================================= */

// Reject turns one pending application down. Rejecting an already-rejected
// application is a benign Conflict with no second notification.
func (s *TuitionApplicationService) Reject(adminID, applicationID uuid.UUID) (*bidModel.TuitionApplicationModel, error) {
	var row bidModel.TuitionApplicationModel
	if err := s.DB.Where("id = ?", applicationID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewNotFound("Application not found")
		}
		log.Println("[ERROR] reject lookup:", err)
		return nil, helper.NewUnavailable("Failed to load the application")
	}

	switch row.Status {
	case bidModel.StatusAccepted:
		return nil, helper.NewConflict("This application has already been accepted")
	case bidModel.StatusRejected:
		return nil, helper.NewConflict("This application has already been rejected")
	}

	now := time.Now().UTC()
	row.Status = bidModel.StatusRejected
	row.ReviewedBy = &adminID
	row.ReviewedAt = &now
	if err := s.DB.Save(&row).Error; err != nil {
		log.Println("[ERROR] reject update:", err)
		return nil, helper.NewUnavailable("Failed to update the application")
	}

	if s.Dispatcher != nil {
		var posting postingModel.TuitionPostingModel
		title := "this tuition"
		if err := s.DB.Where("id = ?", row.PostingID).First(&posting).Error; err == nil {
			title = posting.Title()
		}
		s.Dispatcher.Notify(mailer.KindRejection, row.TutorEmail, mailer.Fields{
			"name":          row.TutorName,
			"posting_title": title,
		})
	}

	return &row, nil
}
