package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	appDTO "tutorhub_backend/internals/features/tutors/tutor_applications/dto"
	appModel "tutorhub_backend/internals/features/tutors/tutor_applications/model"
	tutorModel "tutorhub_backend/internals/features/tutors/tutors/model"
	authModel "tutorhub_backend/internals/features/users/auth/model"
	helper "tutorhub_backend/internals/helpers"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authModel.UserModel{},
		&appModel.TutorApplicationModel{},
		&tutorModel.TutorModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *authModel.UserModel {
	t.Helper()
	user := authModel.UserModel{
		UserName: "user-" + email,
		Email:    email,
		Password: "hashed-password",
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func validSubmission() appDTO.SubmitTutorApplicationRequest {
	return appDTO.SubmitTutorApplicationRequest{
		FirstName: "Rahim",
		LastName:  "Uddin",
		Phone:     "01711111111",
		City:      "Dhaka",
		State:     "Dhaka",
		Address:   "House 12, Road 3, Dhanmondi",
		Subjects:  []string{"Math", "Physics"},
	}
}

func kindOf(t *testing.T, err error) helper.ErrorKind {
	t.Helper()
	ae, ok := err.(*helper.AppError)
	require.True(t, ok, "expected *helper.AppError, got %T: %v", err, err)
	return ae.Kind
}

func TestSubmitCreatesPendingApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewTutorLifecycleService(db)
	user := seedUser(t, db, "rahim@example.com")

	row, err := svc.Submit(user.ID, validSubmission())
	require.NoError(t, err)
	assert.Equal(t, appModel.StatusPending, row.Status)
	assert.Equal(t, user.ID, row.UserID)
	assert.Nil(t, row.ReviewedBy)
}

func TestSubmitMissingMandatoryFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewTutorLifecycleService(db)
	user := seedUser(t, db, "rahim@example.com")

	req := validSubmission()
	req.City = ""
	req.Address = "   "

	_, err := svc.Submit(user.ID, req)
	require.Error(t, err)
	assert.Equal(t, helper.KindValidation, kindOf(t, err))
	ae := err.(*helper.AppError)
	assert.Contains(t, ae.Fields, "city")
	assert.Contains(t, ae.Fields, "address")

	var count int64
	db.Model(&appModel.TutorApplicationModel{}).Count(&count)
	assert.Zero(t, count)
}

func TestSubmitWhilePendingIsDenied(t *testing.T) {
	db := newTestDB(t)
	svc := NewTutorLifecycleService(db)
	user := seedUser(t, db, "rahim@example.com")

	_, err := svc.Submit(user.ID, validSubmission())
	require.NoError(t, err)

	// profile is under review, immutable
	_, err = svc.Submit(user.ID, validSubmission())
	require.Error(t, err)
	assert.Equal(t, helper.KindPermissionDenied, kindOf(t, err))
}

func TestApproveDerivesTutorRecord(t *testing.T) {
	db := newTestDB(t)
	svc := NewTutorLifecycleService(db)
	user := seedUser(t, db, "rahim@example.com")
	admin := seedUser(t, db, "admin@example.com")

	row, err := svc.Submit(user.ID, validSubmission())
	require.NoError(t, err)

	tutor, err := svc.Approve(admin.ID, row.ID)
	require.NoError(t, err)

	// approved ⇔ exactly one tutor row for the account
	var tutorCount int64
	db.Model(&tutorModel.TutorModel{}).Where("user_id = ?", user.ID).Count(&tutorCount)
	assert.EqualValues(t, 1, tutorCount)
	assert.Equal(t, row.ID, tutor.ApplicationID)
	assert.Equal(t, "Rahim", tutor.FirstName)
	assert.Equal(t, user.Email, tutor.Email)

	var reloaded appModel.TutorApplicationModel
	require.NoError(t, db.First(&reloaded, "id = ?", row.ID).Error)
	assert.Equal(t, appModel.StatusApproved, reloaded.Status)
	require.NotNil(t, reloaded.ReviewedBy)
	assert.Equal(t, admin.ID, *reloaded.ReviewedBy)
	assert.NotNil(t, reloaded.ReviewedAt)
}

func TestApproveTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewTutorLifecycleService(db)
	user := seedUser(t, db, "rahim@example.com")
	admin := seedUser(t, db, "admin@example.com")

	row, err := svc.Submit(user.ID, validSubmission())
	require.NoError(t, err)
	_, err = svc.Approve(admin.ID, row.ID)
	require.NoError(t, err)

	_, err = svc.Approve(admin.ID, row.ID)
	require.Error(t, err)
	assert.Equal(t, helper.KindConflict, kindOf(t, err))

	var tutorCount int64
	db.Model(&tutorModel.TutorModel{}).Count(&tutorCount)
	assert.EqualValues(t, 1, tutorCount, "no second tutor row")
}

func TestApproveMissingApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewTutorLifecycleService(db)
	admin := seedUser(t, db, "admin@example.com")

	_, err := svc.Approve(admin.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, helper.KindNotFound, kindOf(t, err))
}

func TestRejectThenResubmitResetsToPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewTutorLifecycleService(db)
	user := seedUser(t, db, "rahim@example.com")
	admin := seedUser(t, db, "admin@example.com")

	row, err := svc.Submit(user.ID, validSubmission())
	require.NoError(t, err)

	rejected, err := svc.Reject(admin.ID, row.ID, "CV unreadable")
	require.NoError(t, err)
	assert.Equal(t, appModel.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "CV unreadable", *rejected.RejectionReason)

	// no tutor row was created
	var tutorCount int64
	db.Model(&tutorModel.TutorModel{}).Count(&tutorCount)
	assert.Zero(t, tutorCount)

	// resubmission runs the same operation against the same row
	edited := validSubmission()
	edited.CVURL = "https://cdn.example.com/cv-v2.pdf"
	resubmitted, err := svc.Submit(user.ID, edited)
	require.NoError(t, err)
	assert.Equal(t, row.ID, resubmitted.ID)
	assert.Equal(t, appModel.StatusPending, resubmitted.Status)
	assert.Nil(t, resubmitted.RejectionReason)
	assert.Nil(t, resubmitted.ReviewedBy)
	assert.Nil(t, resubmitted.ReviewedAt)
	assert.Equal(t, "https://cdn.example.com/cv-v2.pdf", resubmitted.CVURL)
}

func TestRejectTwiceConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewTutorLifecycleService(db)
	user := seedUser(t, db, "rahim@example.com")
	admin := seedUser(t, db, "admin@example.com")

	row, err := svc.Submit(user.ID, validSubmission())
	require.NoError(t, err)
	_, err = svc.Reject(admin.ID, row.ID, "")
	require.NoError(t, err)

	_, err = svc.Reject(admin.ID, row.ID, "")
	require.Error(t, err)
	assert.Equal(t, helper.KindConflict, kindOf(t, err))
}

func TestDerivedStatusIncompleteWithoutAnyRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewTutorLifecycleService(db)
	user := seedUser(t, db, "rahim@example.com")

	status, err := svc.DerivedStatus(user.ID)
	require.NoError(t, err)
	assert.Equal(t, appModel.StatusIncomplete, status)
}

func TestDerivedStatusFollowsApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewTutorLifecycleService(db)
	user := seedUser(t, db, "rahim@example.com")
	admin := seedUser(t, db, "admin@example.com")

	row, err := svc.Submit(user.ID, validSubmission())
	require.NoError(t, err)

	status, err := svc.DerivedStatus(user.ID)
	require.NoError(t, err)
	assert.Equal(t, appModel.StatusPending, status)

	_, err = svc.Reject(admin.ID, row.ID, "")
	require.NoError(t, err)

	status, err = svc.DerivedStatus(user.ID)
	require.NoError(t, err)
	assert.Equal(t, appModel.StatusRejected, status)
}

// A tutors row wins even over an inconsistent application left in rejected —
// existence of the approved profile is authoritative.
func TestDerivedStatusTutorRowWinsOverStaleApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewTutorLifecycleService(db)
	user := seedUser(t, db, "rahim@example.com")

	application := appModel.TutorApplicationModel{
		UserID:    user.ID,
		FirstName: "Rahim",
		LastName:  "Uddin",
		Phone:     "01711111111",
		City:      "Dhaka",
		State:     "Dhaka",
		Address:   "House 12",
		Status:    appModel.StatusRejected,
	}
	require.NoError(t, db.Create(&application).Error)
	require.NoError(t, db.Create(&tutorModel.TutorModel{
		UserID:        user.ID,
		ApplicationID: application.ID,
		FirstName:     "Rahim",
		LastName:      "Uddin",
		Phone:         "01711111111",
		Email:         user.Email,
		City:          "Dhaka",
		State:         "Dhaka",
		Address:       "House 12",
	}).Error)

	status, err := svc.DerivedStatus(user.ID)
	require.NoError(t, err)
	assert.Equal(t, appModel.StatusApproved, status)
}
