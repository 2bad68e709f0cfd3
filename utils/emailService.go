package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"academy/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all Academy mails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #111111; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #111111; line-height: 1.6; }
			.content h2 { color: #111111; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4CAF50; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>Academy</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				You are receiving this email because you have an Academy account.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendWelcomeEmail greets a freshly registered user
func SendWelcomeEmail(email, userName string) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to Academy! Browse the course catalog, enroll, and start learning at your own pace.</p>
		<p>Happy Learning!</p>
	`, userName)

	return SendEmail([]string{email}, "Welcome to Academy", getEmailTemplate("Welcome!", body))
}

// SendEnrollmentEmail sends an email notification when a user enrolls in a course
func SendEnrollmentEmail(email, userName, courseName string) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully enrolled in:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>You can now access the course content. Lessons unlock in order as you complete them, and each week closes with an assignment.</p>
		<p>Happy Learning!</p>
	`, userName, courseName)

	return SendEmail([]string{email}, "Course Enrollment Confirmation - Academy", getEmailTemplate("Enrollment Successful", body))
}

// SendSubmissionReceiptEmail confirms a stored assignment submission
func SendSubmissionReceiptEmail(email, userName, assignmentTitle, fileName string) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We received your submission for:</p>
		<div class="info-box"><strong>%s</strong><br/>File: %s</div>
		<p>You can replace it any time before it is graded by uploading a new file.</p>
	`, userName, assignmentTitle, fileName)

	return SendEmail([]string{email}, "Assignment Submission Received - Academy", getEmailTemplate("Submission Received", body))
}
