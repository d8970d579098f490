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

	postingModel "tutorhub_backend/internals/features/tuitions/tuition_postings/model"
	reqDTO "tutorhub_backend/internals/features/tuitions/tuition_requests/dto"
	reqModel "tutorhub_backend/internals/features/tuitions/tuition_requests/model"
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
		&reqModel.TuitionRequestModel{},
		&postingModel.TuitionPostingModel{},
	))
	return db
}

func intakeForm() reqDTO.SubmitTuitionRequest {
	return reqDTO.SubmitTuitionRequest{
		GuardianName:  "Mrs. Akter",
		GuardianPhone: "01822222222",
		GuardianEmail: "Akter@Example.com",
		StudentClass:  "Class 8",
		Subject:       "Math",
		Location:      "Mirpur 10",
		City:          "Dhaka",
		Mode:          "home",
		Budget:        "5000 BDT/month",
		DaysPerWeek:   3,
	}
}

func kindOf(t *testing.T, err error) helper.ErrorKind {
	t.Helper()
	ae, ok := err.(*helper.AppError)
	require.True(t, ok, "expected *helper.AppError, got %T: %v", err, err)
	return ae.Kind
}

func TestSubmitNormalizesAndStartsPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionRequestService(db)

	row, err := svc.Submit(intakeForm())
	require.NoError(t, err)
	assert.Equal(t, reqModel.StatusPending, row.Status)
	assert.Equal(t, "akter@example.com", row.GuardianEmail)
	assert.Equal(t, reqModel.ModeHome, row.Mode)
}

func TestSubmitUnknownModeFallsBackToBoth(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionRequestService(db)

	form := intakeForm()
	form.Mode = "hybrid"
	row, err := svc.Submit(form)
	require.NoError(t, err)
	assert.Equal(t, reqModel.ModeBoth, row.Mode)
}

func TestApproveCreatesPostingAndAssignsRequest(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionRequestService(db)
	adminID := uuid.New()

	row, err := svc.Submit(intakeForm())
	require.NoError(t, err)

	posting, err := svc.Approve(adminID, row.ID)
	require.NoError(t, err)

	assert.Equal(t, row.ID, posting.RequestID)
	assert.Equal(t, postingModel.StatusAvailable, posting.Status)
	assert.Equal(t, "Class 8", posting.StudentClass)
	assert.Equal(t, "Math", posting.Subject)
	assert.Equal(t, "Mirpur 10", posting.Location)
	assert.Equal(t, "Dhaka", posting.City)
	assert.Equal(t, "5000 BDT/month", posting.Fee)
	assert.Equal(t, postingModel.ModeLabelHome, posting.Mode)
	assert.Equal(t, 3, posting.DaysPerWeek)
	assert.Nil(t, posting.AssignedTutorID)

	var reloaded reqModel.TuitionRequestModel
	require.NoError(t, db.First(&reloaded, "id = ?", row.ID).Error)
	assert.Equal(t, reqModel.StatusAssigned, reloaded.Status)
	require.NotNil(t, reloaded.ReviewedBy)
	assert.Equal(t, adminID, *reloaded.ReviewedBy)
}

func TestApproveEmptyBudgetDefaultsToNegotiable(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionRequestService(db)

	form := intakeForm()
	form.Budget = "   "
	row, err := svc.Submit(form)
	require.NoError(t, err)

	posting, err := svc.Approve(uuid.New(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, postingModel.FeeNegotiable, posting.Fee)
}

func TestApproveIsNotRepeatable(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionRequestService(db)
	adminID := uuid.New()

	row, err := svc.Submit(intakeForm())
	require.NoError(t, err)
	_, err = svc.Approve(adminID, row.ID)
	require.NoError(t, err)

	_, err = svc.Approve(adminID, row.ID)
	require.Error(t, err)
	assert.Equal(t, helper.KindConflict, kindOf(t, err))

	var postingCount int64
	db.Model(&postingModel.TuitionPostingModel{}).Count(&postingCount)
	assert.EqualValues(t, 1, postingCount)
}

// A retry after an earlier half-applied attempt (posting inserted, request
// still pending) must adopt the existing posting instead of duplicating it.
func TestApproveRetryReusesExistingPosting(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionRequestService(db)
	adminID := uuid.New()

	row, err := svc.Submit(intakeForm())
	require.NoError(t, err)

	orphan := BuildPosting(row)
	require.NoError(t, db.Create(&orphan).Error)

	posting, err := svc.Approve(adminID, row.ID)
	require.NoError(t, err)
	assert.Equal(t, orphan.ID, posting.ID)

	var postingCount int64
	db.Model(&postingModel.TuitionPostingModel{}).Count(&postingCount)
	assert.EqualValues(t, 1, postingCount)

	var reloaded reqModel.TuitionRequestModel
	require.NoError(t, db.First(&reloaded, "id = ?", row.ID).Error)
	assert.Equal(t, reqModel.StatusAssigned, reloaded.Status)
}

func TestApproveMissingRequest(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionRequestService(db)

	_, err := svc.Approve(uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, helper.KindNotFound, kindOf(t, err))
}

func TestRejectCancelsWithoutPosting(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionRequestService(db)
	adminID := uuid.New()

	row, err := svc.Submit(intakeForm())
	require.NoError(t, err)

	cancelled, err := svc.Reject(adminID, row.ID)
	require.NoError(t, err)
	assert.Equal(t, reqModel.StatusCancelled, cancelled.Status)

	var postingCount int64
	db.Model(&postingModel.TuitionPostingModel{}).Count(&postingCount)
	assert.Zero(t, postingCount)

	// a cancelled request stays cancelled
	_, err = svc.Approve(adminID, row.ID)
	require.Error(t, err)
	assert.Equal(t, helper.KindConflict, kindOf(t, err))
}

func TestFeeOrDefault(t *testing.T) {
	assert.Equal(t, postingModel.FeeNegotiable, FeeOrDefault(""))
	assert.Equal(t, postingModel.FeeNegotiable, FeeOrDefault("  "))
	assert.Equal(t, "4000 BDT", FeeOrDefault(" 4000 BDT "))
}

func TestModeLabel(t *testing.T) {
	cases := map[string]string{
		"home":   postingModel.ModeLabelHome,
		"HOME":   postingModel.ModeLabelHome,
		"online": postingModel.ModeLabelOnline,
		"both":   postingModel.ModeLabelBoth,
		"":       postingModel.ModeLabelBoth,
		"hybrid": postingModel.ModeLabelBoth,
	}
	for mode, want := range cases {
		assert.Equal(t, want, ModeLabel(mode), "mode %q", mode)
	}
}
