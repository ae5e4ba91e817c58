package services

import (
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema. A single
// connection keeps the in-memory store alive for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func createUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	user := models.User{
		Name:     "Test " + string(role),
		Email:    string(role) + "@example.com",
		Role:     role,
		Password: "secret-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createCourse(t *testing.T, db *gorm.DB, creatorID uint, status courseModels.Status) *courseModels.Course {
	t.Helper()

	crs := courseModels.Course{
		Title:     "Test Course",
		CreatorID: creatorID,
		Status:    status,
		IsPublic:  true,
	}
	require.NoError(t, db.Create(&crs).Error)
	return &crs
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) {
	t.Helper()

	require.NoError(t, db.Create(&courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   courseModels.EnrollmentEnrolled,
	}).Error)
}
