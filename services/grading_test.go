package services

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createAssignment(t *testing.T, db *gorm.DB, courseID uint, maxScore int) *courseModels.Assignment {
	t.Helper()

	a := courseModels.Assignment{
		CourseID: courseID,
		Title:    "Homework",
		MaxScore: maxScore,
	}
	require.NoError(t, db.Create(&a).Error)
	return &a
}

func TestUpsertSubmissionCreatesThenReplaces(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusPublished)
	enroll(t, db, student.ID, crs.ID)
	assignment := createAssignment(t, db, crs.ID, 100)

	sub, err := UpsertSubmission(db, assignment.ID, student.ID, SubmissionInput{Content: "first try"})
	require.NoError(t, err)
	assert.Equal(t, "first try", sub.Content)
	assert.False(t, sub.IsGraded)

	// Grade it, then resubmit: the graded state resets while the stale
	// score stays visible until regraded.
	graded, err := GradeSubmission(db, assignment.ID, sub.ID, 80, "good start")
	require.NoError(t, err)
	assert.True(t, graded.IsGraded)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 80, *graded.Score)

	resubmitted, err := UpsertSubmission(db, assignment.ID, student.ID, SubmissionInput{Content: "second try"})
	require.NoError(t, err)
	assert.Equal(t, sub.ID, resubmitted.ID, "resubmission reuses the same row")
	assert.Equal(t, "second try", resubmitted.Content)
	assert.False(t, resubmitted.IsGraded)
	assert.Nil(t, resubmitted.GradedAt)
	require.NotNil(t, resubmitted.Score)
	assert.Equal(t, 80, *resubmitted.Score)

	// Still exactly one submission row for this (assignment, student).
	var count int64
	require.NoError(t, db.Model(&courseModels.Submission{}).
		Where("assignment_id = ? AND student_id = ?", assignment.ID, student.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertSubmissionRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusPublished)
	assignment := createAssignment(t, db, crs.ID, 10)

	_, err := UpsertSubmission(db, assignment.ID, student.ID, SubmissionInput{Content: "hi"})
	require.ErrorIs(t, err, courseModels.ErrNotEnrolled)

	_, err = UpsertSubmission(db, assignment.ID+99, student.ID, SubmissionInput{Content: "hi"})
	require.ErrorIs(t, err, courseModels.ErrNotFound)
}

func TestGradeSubmissionBounds(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	student := createUser(t, db, models.RoleStudent)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusPublished)
	enroll(t, db, student.ID, crs.ID)
	assignment := createAssignment(t, db, crs.ID, 50)

	sub, err := UpsertSubmission(db, assignment.ID, student.ID, SubmissionInput{Content: "answer"})
	require.NoError(t, err)

	_, err = GradeSubmission(db, assignment.ID, sub.ID, -1, "")
	require.ErrorIs(t, err, courseModels.ErrScoreOutOfRange)

	_, err = GradeSubmission(db, assignment.ID, sub.ID, 51, "")
	require.ErrorIs(t, err, courseModels.ErrScoreOutOfRange)

	// Both bounds are themselves valid scores.
	graded, err := GradeSubmission(db, assignment.ID, sub.ID, 0, "zero")
	require.NoError(t, err)
	assert.Equal(t, 0, *graded.Score)

	graded, err = GradeSubmission(db, assignment.ID, sub.ID, 50, "full marks")
	require.NoError(t, err)
	assert.Equal(t, 50, *graded.Score)
	assert.Equal(t, "full marks", graded.Feedback)
	assert.NotNil(t, graded.GradedAt)

	_, err = GradeSubmission(db, assignment.ID, sub.ID+99, 10, "")
	require.ErrorIs(t, err, courseModels.ErrNotFound)
}

func TestAssignmentCounts(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusPublished)
	assignment := createAssignment(t, db, crs.ID, 100)

	students := make([]*models.User, 3)
	for i := range students {
		u := models.User{
			Name:  "Student",
			Email: string(rune('a'+i)) + "@students.example.com",
			Role:  models.RoleStudent,
		}
		require.NoError(t, db.Create(&u).Error)
		students[i] = &u
		enroll(t, db, u.ID, crs.ID)
		_, err := UpsertSubmission(db, assignment.ID, u.ID, SubmissionInput{Content: "answer"})
		require.NoError(t, err)
	}

	total, ungraded, err := AssignmentCounts(db, assignment.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.EqualValues(t, 3, ungraded)

	var sub courseModels.Submission
	require.NoError(t, db.Where("assignment_id = ? AND student_id = ?", assignment.ID, students[0].ID).First(&sub).Error)
	_, err = GradeSubmission(db, assignment.ID, sub.ID, 90, "")
	require.NoError(t, err)

	total, ungraded, err = AssignmentCounts(db, assignment.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.EqualValues(t, 2, ungraded)

	// A resubmission drops the graded count back down.
	_, err = UpsertSubmission(db, assignment.ID, students[0].ID, SubmissionInput{Content: "redo"})
	require.NoError(t, err)

	_, ungraded, err = AssignmentCounts(db, assignment.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, ungraded)
}
