package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"globalfund/pkg/types"

	"github.com/sirupsen/logrus"
)

// Mailer sends admin notifications over SMTP. Port 465 is treated as
// implicit TLS; anything else negotiates STARTTLS.
type Mailer struct {
	logger *logrus.Logger
	config *types.Config
}

func NewMailer(config *types.Config, logger *logrus.Logger) *Mailer {
	return &Mailer{logger: logger, config: config}
}

func (m *Mailer) send(subject, htmlBody, toEmail string) error {
	from := m.config.EmailUsername

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.config.EmailSenderName, from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", toEmail))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.config.EmailHost, m.config.EmailPort)
	auth := smtp.PlainAuth("", from, m.config.EmailPassword, m.config.EmailHost)

	if m.config.EmailPort == 465 {
		return m.sendImplicitTLS(addr, auth, from, toEmail, []byte(msg.String()))
	}

	if err := smtp.SendMail(addr, auth, from, []string{toEmail}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}

func (m *Mailer) sendImplicitTLS(addr string, auth smtp.Auth, from, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.config.EmailHost})
	if err != nil {
		return fmt.Errorf("dial smtps: %w", err)
	}

	client, err := smtp.NewClient(conn, m.config.EmailHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return client.Quit()
}

// ApplicationSubmitted emails the configured admin address a summary of a
// freshly submitted application.
func (m *Mailer) ApplicationSubmitted(application *types.Application, documentURLs []string) error {
	if m.config.AdminReceivingEmail == "" {
		return fmt.Errorf("ADMIN_RECEIVING_EMAIL is not configured")
	}

	subject := "New Grant Application Submitted"
	body := m.buildSubmissionBody(application, documentURLs)

	if err := m.send(subject, body, m.config.AdminReceivingEmail); err != nil {
		return err
	}

	m.logger.WithFields(logrus.Fields{
		"to":      m.config.AdminReceivingEmail,
		"subject": subject,
	}).Info("notification email sent")

	return nil
}

func (m *Mailer) buildSubmissionBody(application *types.Application, documentURLs []string) string {
	documentLinks := "N/A"
	if len(documentURLs) > 0 {
		var links strings.Builder
		links.WriteString("<ul>")
		for _, u := range documentURLs {
			links.WriteString(fmt.Sprintf(`<li><a href="%s" target="_blank">%s</a></li>`, u, u))
		}
		links.WriteString("</ul>")
		documentLinks = links.String()
	}

	rows := [][2]string{
		{"Full Name", application.FullName},
		{"Mother's Maiden Name", application.MotherMaidenName},
		{"Email", application.Email},
		{"Phone", application.Phone},
		{"Address", application.Address},
		{"City", application.City},
		{"State", application.State},
		{"Zip Code", application.ZipCode},
		{"Country", application.Country},
		{"Date of Birth", application.DateOfBirth},
		{"Gender", application.Gender},
		{"Occupation", application.Occupation},
		{"Monthly Income", fmt.Sprintf("$%.2f", application.MonthlyIncome)},
		{"Delivery Preference", application.DeliveryPreference},
		{"Winning Code", application.WinningCode},
		{"Reason For Applying", application.ReasonForApplying},
		{"ID Documents Uploaded", documentLinks},
		{"Submission Date", application.SubmittedAt.UTC().Format("2006-01-02 15:04:05 UTC")},
	}

	var table strings.Builder
	for _, row := range rows {
		table.WriteString(fmt.Sprintf("<tr><th>%s:</th><td>%s</td></tr>", row[0], row[1]))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
	<h2>New Grant Application Received</h2>
	<p>Dear Administrator,</p>
	<p>A new grant application has been submitted to %s.</p>
	<table>%s</table>
	<p><a href="%s/admin_login">Go to Admin Dashboard</a></p>
</body>
</html>`, m.config.EmailSenderName, table.String(), m.config.PublicBaseURL)
}
