package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	bidModel "tutorhub_backend/internals/features/tuitions/tuition_applications/model"
	postingModel "tutorhub_backend/internals/features/tuitions/tuition_postings/model"
	tutorModel "tutorhub_backend/internals/features/tutors/tutors/model"
	helper "tutorhub_backend/internals/helpers"
	"tutorhub_backend/internals/mailer"
)

/* =========================================================
   Fixtures
========================================================= */

type sentMail struct {
	Kind      mailer.Kind
	Recipient string
	Fields    mailer.Fields
}

// fakeDispatcher records every Notify call so tests can assert on exactly
// which notifications went out, and to whom.
type fakeDispatcher struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeDispatcher) Notify(kind mailer.Kind, recipient string, fields mailer.Fields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{Kind: kind, Recipient: recipient, Fields: fields})
}

func (f *fakeDispatcher) byKind(kind mailer.Kind) []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentMail
	for _, m := range f.sent {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeDispatcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&tutorModel.TutorModel{},
		&postingModel.TuitionPostingModel{},
		&bidModel.TuitionApplicationModel{},
	))
	return db
}

func seedTutor(t *testing.T, db *gorm.DB, name string) *tutorModel.TutorModel {
	t.Helper()
	tutor := tutorModel.TutorModel{
		UserID:        uuid.New(),
		ApplicationID: uuid.New(),
		FirstName:     name,
		LastName:      "Tutor",
		Phone:         "01700000000",
		Email:         name + "@example.com",
		City:          "Dhaka",
		State:         "Dhaka",
		Address:       "Somewhere in Dhaka",
	}
	require.NoError(t, db.Create(&tutor).Error)
	return &tutor
}

func seedPosting(t *testing.T, db *gorm.DB) *postingModel.TuitionPostingModel {
	t.Helper()
	posting := postingModel.TuitionPostingModel{
		RequestID:    uuid.New(),
		StudentClass: "Class 8",
		Subject:      "Math",
		Location:     "Mirpur 10",
		City:         "Dhaka",
		Fee:          "5000 BDT/month",
		Mode:         postingModel.ModeLabelHome,
		DaysPerWeek:  3,
		Status:       postingModel.StatusAvailable,
	}
	require.NoError(t, db.Create(&posting).Error)
	return &posting
}

const coverLetter = "I have five years of experience teaching this class and subject."

func kindOf(t *testing.T, err error) helper.ErrorKind {
	t.Helper()
	ae, ok := err.(*helper.AppError)
	require.True(t, ok, "expected *helper.AppError, got %T: %v", err, err)
	return ae.Kind
}

/* =========================================================
   APPLY
========================================================= */

func TestApplySnapshotsTutorContact(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionApplicationService(db, &fakeDispatcher{})
	tutor := seedTutor(t, db, "karim")
	posting := seedPosting(t, db)

	row, err := svc.Apply(tutor.UserID, posting.ID, coverLetter)
	require.NoError(t, err)
	assert.Equal(t, bidModel.StatusPending, row.Status)
	assert.Equal(t, tutor.ID, row.TutorID)
	assert.Equal(t, "karim Tutor", row.TutorName)
	assert.Equal(t, tutor.Email, row.TutorEmail)
	assert.Equal(t, tutor.Phone, row.TutorPhone)

	// snapshot, not a live reference: a later profile edit must not leak in
	require.NoError(t, db.Model(tutor).Update("phone", "01999999999").Error)
	var reloaded bidModel.TuitionApplicationModel
	require.NoError(t, db.First(&reloaded, "id = ?", row.ID).Error)
	assert.Equal(t, "01700000000", reloaded.TutorPhone)
}

func TestApplyRequiresCoverLetter(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionApplicationService(db, &fakeDispatcher{})
	tutor := seedTutor(t, db, "karim")
	posting := seedPosting(t, db)

	_, err := svc.Apply(tutor.UserID, posting.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, helper.KindValidation, kindOf(t, err))
}

func TestApplyRequiresTutorProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionApplicationService(db, &fakeDispatcher{})
	posting := seedPosting(t, db)

	// plain account, no tutors row
	_, err := svc.Apply(uuid.New(), posting.ID, coverLetter)
	require.Error(t, err)
	assert.Equal(t, helper.KindPermissionDenied, kindOf(t, err))
}

func TestApplyToAssignedPostingConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionApplicationService(db, &fakeDispatcher{})
	tutor := seedTutor(t, db, "karim")
	posting := seedPosting(t, db)
	require.NoError(t, db.Model(posting).Update("status", postingModel.StatusAssigned).Error)

	_, err := svc.Apply(tutor.UserID, posting.ID, coverLetter)
	require.Error(t, err)
	assert.Equal(t, helper.KindConflict, kindOf(t, err))
}

func TestApplyTwiceConflictsAndKeepsFirstRecord(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionApplicationService(db, &fakeDispatcher{})
	tutor := seedTutor(t, db, "karim")
	posting := seedPosting(t, db)

	first, err := svc.Apply(tutor.UserID, posting.ID, coverLetter)
	require.NoError(t, err)

	_, err = svc.Apply(tutor.UserID, posting.ID, "A different cover letter the second time around.")
	require.Error(t, err)
	assert.Equal(t, helper.KindConflict, kindOf(t, err))

	var rows []bidModel.TuitionApplicationModel
	require.NoError(t, db.Where("posting_id = ?", posting.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, first.ID, rows[0].ID)
	assert.Equal(t, coverLetter, rows[0].CoverLetter, "first record untouched")
}

/* =========================================================
   ACCEPT — sweep, CAS, notifications
========================================================= */

func TestAcceptSweepsSiblingsAndAssignsPosting(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &fakeDispatcher{}
	svc := NewTuitionApplicationService(db, dispatcher)
	posting := seedPosting(t, db)
	adminID := uuid.New()

	tutors := []*tutorModel.TutorModel{
		seedTutor(t, db, "alif"),
		seedTutor(t, db, "borhan"),
		seedTutor(t, db, "chameli"),
	}
	var bids []*bidModel.TuitionApplicationModel
	for _, tu := range tutors {
		bid, err := svc.Apply(tu.UserID, posting.ID, coverLetter)
		require.NoError(t, err)
		bids = append(bids, bid)
	}

	accepted, err := svc.Accept(adminID, bids[1].ID)
	require.NoError(t, err)
	assert.Equal(t, bidModel.StatusAccepted, accepted.Status)

	var rows []bidModel.TuitionApplicationModel
	require.NoError(t, db.Where("posting_id = ?", posting.ID).Order("created_at").Find(&rows).Error)
	statusByID := map[uuid.UUID]bidModel.TuitionApplicationStatus{}
	for _, r := range rows {
		statusByID[r.ID] = r.Status
	}
	assert.Equal(t, bidModel.StatusRejected, statusByID[bids[0].ID])
	assert.Equal(t, bidModel.StatusAccepted, statusByID[bids[1].ID])
	assert.Equal(t, bidModel.StatusRejected, statusByID[bids[2].ID])

	var reloadedPosting postingModel.TuitionPostingModel
	require.NoError(t, db.First(&reloadedPosting, "id = ?", posting.ID).Error)
	assert.Equal(t, postingModel.StatusAssigned, reloadedPosting.Status)
	require.NotNil(t, reloadedPosting.AssignedTutorID)
	assert.Equal(t, tutors[1].ID, *reloadedPosting.AssignedTutorID)

	// exactly 3 notifications: 1 assignment + 2 rejections, distinct recipients
	require.Equal(t, 3, dispatcher.count())
	assignments := dispatcher.byKind(mailer.KindAssignment)
	require.Len(t, assignments, 1)
	assert.Equal(t, tutors[1].Email, assignments[0].Recipient)

	rejections := dispatcher.byKind(mailer.KindRejection)
	require.Len(t, rejections, 2)
	recipients := map[string]bool{}
	for _, r := range rejections {
		recipients[r.Recipient] = true
	}
	assert.True(t, recipients[tutors[0].Email])
	assert.True(t, recipients[tutors[2].Email])
}

// A sibling that was already rejected individually is not part of the sweep
// and must not be notified a second time.
func TestAcceptSkipsAlreadyRejectedSiblings(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &fakeDispatcher{}
	svc := NewTuitionApplicationService(db, dispatcher)
	posting := seedPosting(t, db)
	adminID := uuid.New()

	winner := seedTutor(t, db, "alif")
	loser := seedTutor(t, db, "borhan")
	winnerBid, err := svc.Apply(winner.UserID, posting.ID, coverLetter)
	require.NoError(t, err)
	loserBid, err := svc.Apply(loser.UserID, posting.ID, coverLetter)
	require.NoError(t, err)

	_, err = svc.Reject(adminID, loserBid.ID)
	require.NoError(t, err)
	require.Equal(t, 1, dispatcher.count()) // the individual rejection

	_, err = svc.Accept(adminID, winnerBid.ID)
	require.NoError(t, err)

	// only the assignment was added; no repeat rejection for the loser
	assert.Equal(t, 2, dispatcher.count())
	assert.Len(t, dispatcher.byKind(mailer.KindAssignment), 1)
	assert.Len(t, dispatcher.byKind(mailer.KindRejection), 1)
}

func TestAcceptTwiceIsBenignConflict(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &fakeDispatcher{}
	svc := NewTuitionApplicationService(db, dispatcher)
	posting := seedPosting(t, db)
	adminID := uuid.New()

	tutor := seedTutor(t, db, "alif")
	bid, err := svc.Apply(tutor.UserID, posting.ID, coverLetter)
	require.NoError(t, err)

	_, err = svc.Accept(adminID, bid.ID)
	require.NoError(t, err)
	sentAfterFirst := dispatcher.count()

	_, err = svc.Accept(adminID, bid.ID)
	require.Error(t, err)
	assert.Equal(t, helper.KindConflict, kindOf(t, err))
	assert.Equal(t, sentAfterFirst, dispatcher.count(), "no duplicate notifications")
}

// Two pending applications, the posting already grabbed through the first
// accept: the second accept loses the CAS and must roll back entirely.
func TestAcceptLosesRaceWhenPostingAlreadyAssigned(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &fakeDispatcher{}
	svc := NewTuitionApplicationService(db, dispatcher)
	posting := seedPosting(t, db)
	adminID := uuid.New()

	tutor := seedTutor(t, db, "alif")
	bid, err := svc.Apply(tutor.UserID, posting.ID, coverLetter)
	require.NoError(t, err)

	// posting snatched out from under this accept
	otherTutorID := uuid.New()
	require.NoError(t, db.Model(&postingModel.TuitionPostingModel{}).
		Where("id = ?", posting.ID).
		Updates(map[string]interface{}{
			"status":            postingModel.StatusAssigned,
			"assigned_tutor_id": otherTutorID,
		}).Error)

	_, err = svc.Accept(adminID, bid.ID)
	require.Error(t, err)
	assert.Equal(t, helper.KindConflict, kindOf(t, err))
	assert.Zero(t, dispatcher.count())

	// the whole transaction rolled back: the bid is still pending
	var reloaded bidModel.TuitionApplicationModel
	require.NoError(t, db.First(&reloaded, "id = ?", bid.ID).Error)
	assert.Equal(t, bidModel.StatusPending, reloaded.Status)

	var reloadedPosting postingModel.TuitionPostingModel
	require.NoError(t, db.First(&reloadedPosting, "id = ?", posting.ID).Error)
	require.NotNil(t, reloadedPosting.AssignedTutorID)
	assert.Equal(t, otherTutorID, *reloadedPosting.AssignedTutorID)
}

func TestAcceptMissingApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewTuitionApplicationService(db, &fakeDispatcher{})

	_, err := svc.Accept(uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, helper.KindNotFound, kindOf(t, err))
}

/* =========================================================
   REJECT (single)
========================================================= */

func TestRejectSingleApplication(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &fakeDispatcher{}
	svc := NewTuitionApplicationService(db, dispatcher)
	posting := seedPosting(t, db)
	adminID := uuid.New()

	tutor := seedTutor(t, db, "alif")
	bid, err := svc.Apply(tutor.UserID, posting.ID, coverLetter)
	require.NoError(t, err)

	rejected, err := svc.Reject(adminID, bid.ID)
	require.NoError(t, err)
	assert.Equal(t, bidModel.StatusRejected, rejected.Status)

	rejections := dispatcher.byKind(mailer.KindRejection)
	require.Len(t, rejections, 1)
	assert.Equal(t, tutor.Email, rejections[0].Recipient)

	// the posting is untouched: still open for other tutors
	var reloadedPosting postingModel.TuitionPostingModel
	require.NoError(t, db.First(&reloadedPosting, "id = ?", posting.ID).Error)
	assert.Equal(t, postingModel.StatusAvailable, reloadedPosting.Status)
}

func TestRejectTwiceIsBenignConflict(t *testing.T) {
	db := newTestDB(t)
	dispatcher := &fakeDispatcher{}
	svc := NewTuitionApplicationService(db, dispatcher)
	posting := seedPosting(t, db)
	adminID := uuid.New()

	tutor := seedTutor(t, db, "alif")
	bid, err := svc.Apply(tutor.UserID, posting.ID, coverLetter)
	require.NoError(t, err)

	_, err = svc.Reject(adminID, bid.ID)
	require.NoError(t, err)

	_, err = svc.Reject(adminID, bid.ID)
	require.Error(t, err)
	assert.Equal(t, helper.KindConflict, kindOf(t, err))
	assert.Equal(t, 1, dispatcher.count(), "no duplicate notification")
}
