package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	appDTO "tutorhub_backend/internals/features/tutors/tutor_applications/dto"
	appModel "tutorhub_backend/internals/features/tutors/tutor_applications/model"
	tutorModel "tutorhub_backend/internals/features/tutors/tutors/model"
	helper "tutorhub_backend/internals/helpers"
)

// TutorLifecycleService owns the onboarding state machine:
//
//	(no row) → pending → approved
//	                   ↘ rejected → pending (resubmission)
//
// Approval materializes a tutors row; the application row is never deleted.
type TutorLifecycleService struct {
	DB *gorm.DB
}

func NewTutorLifecycleService(db *gorm.DB) *TutorLifecycleService {
	return &TutorLifecycleService{DB: db}
}

/* =========================================================
   SUBMIT / RESUBMIT (tutor)
========================================================= */

// Submit creates the application for first-time submitters, or resets a
// rejected one back to pending with the edited fields. A pending profile is
// immutable (under review) and an approved account has nothing left to submit.
func (s *TutorLifecycleService) Submit(userID uuid.UUID, req appDTO.SubmitTutorApplicationRequest) (*appModel.TutorApplicationModel, error) {
	if fields := missingMandatoryFields(req); len(fields) > 0 {
		return nil, helper.NewValidation("Please fill in all required fields", fields)
	}

	var existing appModel.TutorApplicationModel
	err := s.DB.Where("user_id = ?", userID).First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := appModel.TutorApplicationModel{UserID: userID}
		applyRequest(&row, req)
		if err := s.DB.Create(&row).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				// lost the race against a concurrent first submit
				return nil, helper.NewConflict("You have already submitted a tutor application")
			}
			log.Println("[ERROR] tutor application insert:", err)
			return nil, helper.NewUnavailable("Failed to save your application")
		}
		return &row, nil

	case err != nil:
		log.Println("[ERROR] tutor application lookup:", err)
		return nil, helper.NewUnavailable("Failed to load your application")
	}

	switch existing.Status {
	case appModel.StatusPending:
		return nil, helper.NewPermissionDenied("Your profile is under review and cannot be edited")
	case appModel.StatusApproved:
		return nil, helper.NewConflict("Your application has already been approved")
	case appModel.StatusRejected:
		applyRequest(&existing, req)
		existing.Status = appModel.StatusPending
		existing.RejectionReason = nil
		existing.ReviewedBy = nil
		existing.ReviewedAt = nil
		if err := s.DB.Save(&existing).Error; err != nil {
			log.Println("[ERROR] tutor application resubmit:", err)
			return nil, helper.NewUnavailable("Failed to save your application")
		}
		return &existing, nil
	}

	return nil, helper.NewConflict("You have already submitted a tutor application")
}

/* =========================================================
   APPROVE / REJECT (admin)
========================================================= */

// Approve flips the application to approved and derives the tutors row from
// its current data, in one transaction. The two records diverge afterwards.
func (s *TutorLifecycleService) Approve(adminID, applicationID uuid.UUID) (*tutorModel.TutorModel, error) {
	var application appModel.TutorApplicationModel
	var derived tutorModel.TutorModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", applicationID).First(&application).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.NewNotFound("Tutor application not found")
			}
			log.Println("[ERROR] approve lookup:", err)
			return helper.NewUnavailable("Failed to load the application")
		}

		if application.Status == appModel.StatusApproved {
			return helper.NewConflict("This application has already been approved")
		}

		now := time.Now().UTC()
		application.Status = appModel.StatusApproved
		application.RejectionReason = nil
		application.ReviewedBy = &adminID
		application.ReviewedAt = &now
		if err := tx.Save(&application).Error; err != nil {
			log.Println("[ERROR] approve update:", err)
			return helper.NewUnavailable("Failed to update the application")
		}

		email, err := lookupUserEmail(tx, application.UserID)
		if err != nil {
			log.Println("[ERROR] approve email lookup:", err)
			return helper.NewUnavailable("Failed to load the applicant account")
		}

		derived = deriveTutor(&application, email)
		if err := tx.Create(&derived).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				// approved ⇔ tutor row: a row already exists for this account
				return helper.NewConflict("A tutor profile already exists for this account")
			}
			log.Println("[ERROR] derive tutor insert:", err)
			return helper.NewUnavailable("Failed to create the tutor profile")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &derived, nil
}

// Reject marks the application rejected. No tutors row is created or touched.
func (s *TutorLifecycleService) Reject(adminID, applicationID uuid.UUID, reason string) (*appModel.TutorApplicationModel, error) {
	var application appModel.TutorApplicationModel
	if err := s.DB.Where("id = ?", applicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewNotFound("Tutor application not found")
		}
		log.Println("[ERROR] reject lookup:", err)
		return nil, helper.NewUnavailable("Failed to load the application")
	}

	switch application.Status {
	case appModel.StatusApproved:
		return nil, helper.NewConflict("This application has already been approved")
	case appModel.StatusRejected:
		return nil, helper.NewConflict("This application has already been rejected")
	}

	now := time.Now().UTC()
	application.Status = appModel.StatusRejected
	application.ReviewedBy = &adminID
	application.ReviewedAt = &now
	if reason = strings.TrimSpace(reason); reason != "" {
		application.RejectionReason = &reason
	}
	if err := s.DB.Save(&application).Error; err != nil {
		log.Println("[ERROR] reject update:", err)
		return nil, helper.NewUnavailable("Failed to update the application")
	}
	return &application, nil
}

/* =========================================================
   DERIVED DISPLAY STATUS
========================================================= */

// DerivedStatus resolves what the account's dashboard should show. A tutors
// row is authoritative — even over a stale application row left behind in
// another state.
func (s *TutorLifecycleService) DerivedStatus(userID uuid.UUID) (appModel.ApplicationStatus, error) {
	var tutorCount int64
	if err := s.DB.Model(&tutorModel.TutorModel{}).Where("user_id = ?", userID).Count(&tutorCount).Error; err != nil {
		log.Println("[ERROR] derived status tutor count:", err)
		return "", helper.NewUnavailable("Failed to load your profile status")
	}
	if tutorCount > 0 {
		return appModel.StatusApproved, nil
	}

	var application appModel.TutorApplicationModel
	err := s.DB.Select("status").Where("user_id = ?", userID).First(&application).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appModel.StatusIncomplete, nil
	}
	if err != nil {
		log.Println("[ERROR] derived status lookup:", err)
		return "", helper.NewUnavailable("Failed to load your profile status")
	}
	return application.Status, nil
}

/* =========================================================
   Internal helpers
========================================================= */

func missingMandatoryFields(req appDTO.SubmitTutorApplicationRequest) map[string]string {
	fields := map[string]string{}
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			fields[name] = "required"
		}
	}
	check("first_name", req.FirstName)
	check("last_name", req.LastName)
	check("phone", req.Phone)
	check("city", req.City)
	check("state", req.State)
	check("address", req.Address)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func applyRequest(row *appModel.TutorApplicationModel, req appDTO.SubmitTutorApplicationRequest) {
	row.FirstName = strings.TrimSpace(req.FirstName)
	row.LastName = strings.TrimSpace(req.LastName)
	row.Phone = strings.TrimSpace(req.Phone)
	row.Gender = req.Gender
	row.City = strings.TrimSpace(req.City)
	row.State = strings.TrimSpace(req.State)
	row.Address = strings.TrimSpace(req.Address)
	row.PhotoURL = req.PhotoURL
	row.CVURL = req.CVURL
	row.IDCardURL = req.IDCardURL
	row.DocumentURL = req.DocumentURL
	row.EducationHistory = toJSON(req.EducationHistory)
	row.WorkHistory = toJSON(req.WorkHistory)
	row.Subjects = toJSON(req.Subjects)
	row.Headline = strings.TrimSpace(req.Headline)
	row.Bio = req.Bio
}

func deriveTutor(application *appModel.TutorApplicationModel, email string) tutorModel.TutorModel {
	return tutorModel.TutorModel{
		UserID:        application.UserID,
		ApplicationID: application.ID,
		FirstName:     application.FirstName,
		LastName:      application.LastName,
		Phone:         application.Phone,
		Email:         email,
		Gender:        application.Gender,
		City:          application.City,
		State:         application.State,
		Address:       application.Address,
		PhotoURL:      application.PhotoURL,
		Subjects:      application.Subjects,
		Headline:      application.Headline,
		Bio:           application.Bio,
	}
}

func lookupUserEmail(tx *gorm.DB, userID uuid.UUID) (string, error) {
	var row struct {
		Email string
	}
	if err := tx.Table("users").Select("email").Where("id = ?", userID).First(&row).Error; err != nil {
		return "", err
	}
	return row.Email, nil
}

func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := sonic.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
