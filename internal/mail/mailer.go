package mail

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/spec-kit/question-service/internal/config"
)

const (
	subjectRequestReceived = "Uspješno postavljen zahtjev - MF Banka"
	subjectOperatorAnswer  = "Odgovor na Vaš zahtjev - MF Banka"
)

// Mailer sends customer emails over SMTP. All sends are fire-and-forget from
// the caller's perspective: errors are returned for logging only and never
// abort question handling. With no SMTP host configured the mailer logs and
// drops every message.
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	enabled  bool
	logger   *zap.Logger
}

// NewMailer constructs the mailer from SMTP configuration.
func NewMailer(cfg config.EmailConfig, logger *zap.Logger) *Mailer {
	m := &Mailer{
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
		enabled:  cfg.SMTPHost != "",
		logger:   logger,
	}
	if m.enabled {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	} else {
		logger.Warn("no SMTP host configured, emails will be dropped")
	}
	return m
}

// SendAnswerEmail confirms the request and includes the automated answer.
func (m *Mailer) SendAnswerEmail(to, customerName, question, answer string) error {
	return m.send(to, subjectRequestReceived, answerBody(customerName, question, answer))
}

// SendConfirmationEmail confirms the request without an answer.
func (m *Mailer) SendConfirmationEmail(to, customerName, question string) error {
	return m.send(to, subjectRequestReceived, confirmationBody(customerName, question))
}

// SendOperatorAnswerEmail delivers the operator's written answer.
func (m *Mailer) SendOperatorAnswerEmail(to, customerName, question, answer string) error {
	return m.send(to, subjectOperatorAnswer, operatorAnswerBody(customerName, question, answer))
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.enabled {
		m.logger.Debug("email sending disabled, dropping message",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	m.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func answerBody(customerName, question, answer string) string {
	return emailShell(fmt.Sprintf(`
            <p>Poštovani/a %s,</p>
            <p>Hvala vam što ste nas kontaktirali.</p>
            <div class='question-box'>
                <strong>Vaše pitanje:</strong>
                <p>%s</p>
            </div>
            <div class='answer-box'>
                <strong>Naš odgovor:</strong>
                <p>%s</p>
            </div>
            <p>Očekujte poziv od našeg operatera u roku od 15 minuta.</p>
            <p>Srdačan pozdrav,<br>Tim MF Banke</p>`, customerName, question, answer))
}

func confirmationBody(customerName, question string) string {
	return emailShell(fmt.Sprintf(`
            <p>Poštovani/a %s,</p>
            <p>Hvala vam što ste nas kontaktirali.</p>
            <div class='question-box'>
                <strong>Vaše pitanje:</strong>
                <p>%s</p>
            </div>
            <p>Očekujte poziv od našeg operatera u roku od 15 minuta.</p>
            <p>Srdačan pozdrav,<br>Tim MF Banke</p>`, customerName, question))
}

func operatorAnswerBody(customerName, question, answer string) string {
	return emailShell(fmt.Sprintf(`
            <p>Poštovani/a %s,</p>
            <p>Hvala vam što ste nas kontaktirali. Odgovor na Vaše pitanje se nalazi u prilogu.</p>
            <div class='question-box'>
                <strong>Vaše pitanje:</strong>
                <p>%s</p>
            </div>
            <div class='answer-box'>
                <strong>Naš odgovor:</strong>
                <p>%s</p>
            </div>
            <p>Ukoliko imate drugih pitanja, slobodno pošaljite novi zahtjev putem našeg sajta.</p>
            <p>Srdačan pozdrav,<br>Tim MF Banke</p>`, customerName, question, answer))
}

func emailShell(content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #1a4d8f 0%%, #2d6bb8 100%%); color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .content { background: #f8fafb; padding: 30px; border-radius: 0 0 8px 8px; }
        .question-box { background: white; padding: 20px; border-left: 4px solid #4a90e2; margin: 20px 0; border-radius: 4px; }
        .answer-box { background: #e8f0fe; padding: 20px; border-radius: 4px; margin: 20px 0; }
        .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class='container'>
        <div class='header'>
            <h1>MF Banka</h1>
        </div>
        <div class='content'>%s
        </div>
        <div class='footer'>
            <p>MF Banka | office@mfbanka.com | 080 051 055</p>
            <p>Ova poruka je automatski generisana. Molimo ne odgovarajte direktno na ovaj email.</p>
        </div>
    </div>
</body>
</html>`, content)
}
