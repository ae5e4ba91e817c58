package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email. Sendgrid is used when an API key is
// configured; otherwise it falls back to plain SMTP.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendgridAPIKey != "" {
		return sendWithSendgrid(to, subject, htmlBody)
	}
	return sendWithSMTP(to, subject, htmlBody)
}

func sendWithSendgrid(to []string, subject string, htmlBody string) error {
	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)
	from := mail.NewEmail("LMS", config.AppConfig.EmailSender)

	for _, recipient := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", recipient), "", htmlBody)
		resp, err := client.Send(message)
		if err != nil {
			log.Printf("Error sending email via sendgrid: %v", err)
			return err
		}
		if resp.StatusCode >= 400 {
			log.Printf("Sendgrid rejected email to %s: %d %s", recipient, resp.StatusCode, resp.Body)
			return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
		}
	}
	return nil
}

func sendWithSMTP(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #212121; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #1A237E; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LMS</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				You are receiving this email because of activity on your LMS account.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---
// All triggers run async and best effort: a lost email never fails the
// operation that caused it.

// SendCourseSubmittedEmail confirms to the creator that the course is in review.
func SendCourseSubmittedEmail(email, name, courseTitle string) {
	subject := "Your course was submitted for review"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your course <strong>%s</strong> has been submitted for review.</p>
		<p>We will notify you as soon as a reviewer has looked at it.</p>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Submitted", body))
}

// SendCoursePublishedEmail tells the creator the course went live.
func SendCoursePublishedEmail(email, name, courseTitle string) {
	subject := "Your course is published"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Good news! Your course <strong>%s</strong> has been published.</p>
		<p>Students can enroll as soon as you make it public.</p>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Published", body))
}

// SendCourseRejectedEmail tells the creator the course needs changes.
func SendCourseRejectedEmail(email, name, courseTitle, reason string) {
	subject := "Your course needs changes"
	reasonBlock := ""
	if reason != "" {
		reasonBlock = fmt.Sprintf(`<div class="info-box">%s</div>`, reason)
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your course <strong>%s</strong> was not approved for publication.</p>
		%s
		<p>Your course content is untouched. Edit it and resubmit whenever you are ready.</p>
	`, name, courseTitle, reasonBlock)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Rejected", body))
}

// SendAssignmentReminderEmail nudges an enrolled student about a due date.
func SendAssignmentReminderEmail(email, name, courseTitle, assignmentTitle string, due time.Time) {
	subject := fmt.Sprintf("Reminder: %s is due soon", assignmentTitle)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The assignment <strong>%s</strong> in <strong>%s</strong> is due on %s.</p>
		<p>Submit your work before the deadline to make sure it gets graded.</p>
	`, name, assignmentTitle, courseTitle, due.Format("Monday, 2 January 2006 15:04"))

	go SendEmail([]string{email}, subject, getEmailTemplate("Assignment Due Soon", body))
}
