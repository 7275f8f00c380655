package infra

import (
	"fmt"
	"net/smtp"

	"istorepro/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends emails with PDF attachments over SMTP.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	from     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from:     fmt.Sprintf("%s <%s>", cfg.StoreName, cfg.SMTPUser),
	}
}

// Enabled reports whether SMTP is configured at all.
func (m *Mailer) Enabled() bool { return m.host != "" }

// SendRecibo mails the receipt PDF of a sale.
func (m *Mailer) SendRecibo(to, vendaID, pdfPath string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Recibo da venda %s", vendaID)
	e.Text = []byte(fmt.Sprintf("Olá! Segue em anexo o recibo da sua compra (venda %s).\n\nObrigado pela preferência.", vendaID))

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
