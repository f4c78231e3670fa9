package notify

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

const leadAlertTemplate = `<html>
<body>
  <h2>New seller lead in {{.ZipCode}}</h2>
  <p><strong>{{.Name}}</strong> is looking to sell in your territory.</p>
  <ul>
    {{if .Email}}<li>Email: {{.Email}}</li>{{end}}
    {{if .Phone}}<li>Phone: {{.Phone}}</li>{{end}}
    {{if .Address}}<li>Address: {{.Address}}</li>{{end}}
  </ul>
  <p>Log in to your dashboard to start working this lead.</p>
</body>
</html>`

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	tmpl *template.Template
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		tmpl:     template.Must(template.New("lead_alert").Parse(leadAlertTemplate)),
	}
}

// SendLeadAlert sends one message addressed to every recipient.
func (s *EmailSender) SendLeadAlert(to []string, notice LeadNotice) error {
	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, notice); err != nil {
		return fmt.Errorf("render lead alert: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", fmt.Sprintf("New lead in %s: %s", notice.ZipCode, notice.Name))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send lead alert: %w", err)
	}

	return nil
}
