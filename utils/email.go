package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

// ReminderDetails carries what the reminder template needs about an
// upcoming appointment.
type ReminderDetails struct {
	PatientName    string
	DoctorName     string
	Specialization string
	Start          time.Time
	End            time.Time
	Mode           string
}

// SendAppointmentReminder mails a patient about an appointment starting
// soon. The request path never depends on mail delivery; failures are the
// caller's to log.
func SendAppointmentReminder(to string, d ReminderDetails) error {
	subject := fmt.Sprintf("Reminder: Upcoming Appointment with Dr. %s", d.DoctorName)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s (%s)</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
			<li><strong>Mode:</strong> %s</li>
		</ul>
		<p>If you need to reschedule or cancel, contact your clinic as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, d.PatientName, d.DoctorName, d.Specialization,
		d.Start.Format("2006-01-02 15:04:05"),
		d.End.Format("2006-01-02 15:04:05"),
		d.Mode)

	return sendMail(to, subject, body)
}

// sendMail delivers an HTML mail through the configured SMTP relay.
func sendMail(to, subject, body string) error {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}
