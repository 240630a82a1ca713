package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendAssignmentSummary manda o resumo da atribuição para o corretor: quem
// chegou na carteira dele.
func (s *EmailSender) SendAssignmentSummary(to, brokerName, mode string, leadNames []string) error {
	data := AssignmentEmailData{
		BrokerName: brokerName,
		LeadCount:  len(leadNames),
		LeadNames:  leadNames,
		Mode:       mode,
	}

	tmplPath := filepath.Join("templates", "assignment.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@imobflow.com.br")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%s, você recebeu %d lead(s) 🏠", brokerName, len(leadNames)))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
