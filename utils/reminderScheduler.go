package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

func logScheduler(message string) {
	log.Printf("[REMINDER-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartReminderScheduler runs the daily assignment due-date reminder job.
func StartReminderScheduler() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc(config.AppConfig.ReminderCron, sendDueTomorrowReminders); err != nil {
		log.Fatalf("Failed to schedule reminder job: %v", err)
	}
	c.Start()
	logScheduler("Assignment reminder scheduler started")
	return c
}

// sendDueTomorrowReminders emails every enrolled student whose course has an
// assignment due tomorrow. Best effort throughout: any row that fails to
// load is logged and skipped.
func sendDueTomorrowReminders() {
	db := database.Database.Db

	tomorrow := now.With(time.Now().AddDate(0, 0, 1))
	start, end := tomorrow.BeginningOfDay(), tomorrow.EndOfDay()

	var assignments []courseModels.Assignment
	if err := db.Where("due_date BETWEEN ? AND ? AND is_deleted = ?", start, end, false).Find(&assignments).Error; err != nil {
		logScheduler("Error fetching due assignments: " + err.Error())
		return
	}

	for _, assignment := range assignments {
		var crs courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", assignment.CourseID, false).First(&crs).Error; err != nil {
			continue
		}
		if crs.Status != courseModels.StatusPublished {
			continue
		}

		var enrollments []courseModels.Enrollment
		if err := db.Where("course_id = ? AND is_deleted = ?", crs.ID, false).Find(&enrollments).Error; err != nil {
			logScheduler("Error fetching enrollments: " + err.Error())
			continue
		}

		for _, enrollment := range enrollments {
			var student models.User
			if err := db.Where("id = ? AND is_deleted = ?", enrollment.UserID, false).First(&student).Error; err != nil {
				continue
			}
			SendAssignmentReminderEmail(student.Email, student.Name, crs.Title, assignment.Title, *assignment.DueDate)
		}
	}
}
