package mailer

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"tutorhub_backend/internals/configs"
)

// Kind selects the template used for a notification.
type Kind string

const (
	KindAssignment Kind = "assignment"
	KindRejection  Kind = "rejection"
	KindLogin      Kind = "login"
)

type Fields map[string]string

// Dispatcher sends templated notification emails. Delivery is best-effort:
// callers never wait for or learn about the outcome.
type Dispatcher interface {
	Notify(kind Kind, recipient string, fields Fields)
}

/* ===============================
   SMTP dispatcher (gomail)
=================================*/

type SMTPDispatcher struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPDispatcher() *SMTPDispatcher {
	if configs.SMTPUser == "" {
		// log-only mode, see Notify
		return &SMTPDispatcher{}
	}
	return &SMTPDispatcher{
		dialer: gomail.NewDialer(configs.SMTPHost, configs.SMTPPort, configs.SMTPUser, configs.SMTPPassword),
		from:   configs.SMTPFrom,
	}
}

// Notify renders the template and sends in a goroutine. Failures are logged,
// never retried, never surfaced to the caller.
func (d *SMTPDispatcher) Notify(kind Kind, recipient string, fields Fields) {
	if recipient == "" {
		log.Printf("[MAIL] skip %s: empty recipient", kind)
		return
	}

	subject, body := renderTemplate(kind, fields)

	if d.dialer == nil {
		log.Printf("[MAIL] (log-only) %s → %s | %s", kind, recipient, subject)
		return
	}

	go func() {
		m := gomail.NewMessage()
		m.SetHeader("From", d.from)
		m.SetHeader("To", recipient)
		m.SetHeader("Subject", subject)
		m.SetBody("text/plain", body)

		if err := d.dialer.DialAndSend(m); err != nil {
			log.Printf("[MAIL] ❌ send %s to %s failed: %v", kind, recipient, err)
			return
		}
		log.Printf("[MAIL] ✅ sent %s to %s", kind, recipient)
	}()
}

func renderTemplate(kind Kind, f Fields) (subject, body string) {
	name := f["name"]
	switch kind {
	case KindAssignment:
		subject = "Congratulations! You have been selected"
		body = fmt.Sprintf(
			"Dear %s,\n\nYour application for \"%s\" has been accepted. "+
				"The guardian's contact details are available in your dashboard under My Tuitions.\n\n"+
				"TutorHub Team",
			name, f["posting_title"])
	case KindRejection:
		subject = "Update on your tuition application"
		body = fmt.Sprintf(
			"Dear %s,\n\nThank you for applying for \"%s\". "+
				"Unfortunately another tutor has been selected for this posting. "+
				"Please keep an eye on new postings in your dashboard.\n\n"+
				"TutorHub Team",
			name, f["posting_title"])
	case KindLogin:
		subject = "New sign-in to your TutorHub account"
		body = fmt.Sprintf(
			"Dear %s,\n\nYour account was just signed in from IP %s at %s. "+
				"If this was not you, please change your password immediately.\n\n"+
				"TutorHub Team",
			name, f["ip"], f["time"])
	default:
		subject = "TutorHub notification"
		body = fmt.Sprintf("Dear %s,\n\nYou have a new notification on TutorHub.", name)
	}
	return subject, body
}
