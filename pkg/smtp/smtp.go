package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
)

type ItfSmtp interface {
	SendEmail(to string, subject string, body string) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
}

func New(mail, password string) ItfSmtp {
	auth := smtpPkg.PlainAuth("", mail, password, "smtp.gmail.com")

	return &smtp{auth: auth, mail: mail}
}

func (s *smtp) SendEmail(to string, subject string, body string) error {
	recipients := []string{to}

	message := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s", to, subject, body))

	if err := smtpPkg.SendMail("smtp.gmail.com:587", s.auth, s.mail, recipients, message); err != nil {
		return err
	}

	return nil
}
