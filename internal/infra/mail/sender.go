package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var leadWelcomeTmpl = template.Must(template.ParseFS(templatesFS, "templates/lead_welcome.html"))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		SiteName: "DietaTransform",
	}
}

// SendLeadWelcome mails the lead a welcome message right after capture.
func (s *EmailSender) SendLeadWelcome(to, name string) error {
	body, err := s.renderLeadWelcome(name)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", s.leadWelcomeSubject(name))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}

func (s *EmailSender) leadWelcomeSubject(name string) string {
	if name == "" {
		return fmt.Sprintf("Bem-vindo(a) à %s! 🥗", s.SiteName)
	}
	return fmt.Sprintf("%s, seu plano na %s começa agora! 🥗", name, s.SiteName)
}

func (s *EmailSender) renderLeadWelcome(name string) (string, error) {
	var body bytes.Buffer
	data := LeadWelcomeData{Name: name, SiteName: s.SiteName}
	if err := leadWelcomeTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}
