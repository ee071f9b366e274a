package services

import (
	"database/sql"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"

	"backend/models"
	"backend/storage"

	"golang.org/x/net/html"
)

// EmailService sends review notifications to admins over SMTP.
type EmailService struct {
	db *sql.DB
}

// NewEmailService creates a new email service instance.
func NewEmailService(db *sql.DB) *EmailService {
	return &EmailService{db: db}
}

// convertHTMLToText converts HTML content to plain text for email clients
// that do not render HTML.
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "table", "tr":
				text.WriteString("\n")
			case "li":
				text.WriteString("- ")
			case "td", "th":
				text.WriteString(" | ")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}
	extractText(doc)

	result := text.String()
	result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	return strings.TrimSpace(result)
}

const pendingQuoteTemplate = `
<div>
  <h2>Quote pending review</h2>
  <p>{{submitter}} submitted a quote that needs approval before it goes live.</p>
  <table>
    <tr><td>Reference</td><td>{{quote_ref}}</td></tr>
    <tr><td>Material</td><td>{{material}}</td></tr>
    <tr><td>Supplier</td><td>{{supplier}}</td></tr>
    <tr><td>Price</td><td>{{price}} {{currency}} per {{unit}}</td></tr>
    <tr><td>Standardized rate</td><td>{{standard_rate}} {{currency}}/{{base_unit}}</td></tr>
  </table>
</div>`

func (es *EmailService) processTemplate(template string, vars map[string]string) string {
	out := template
	for key, value := range vars {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}

// NotifyPendingQuote emails every admin that a quote landed in review.
// Failures are logged, never surfaced to the submitting buyer.
func (es *EmailService) NotifyPendingQuote(quote models.Quote, submitterName string) {
	admins, err := storage.GetAdminEmails(es.db)
	if err != nil {
		log.Printf("Failed to fetch admin emails: %v", err)
		return
	}
	if len(admins) == 0 {
		return
	}

	body := es.processTemplate(pendingQuoteTemplate, map[string]string{
		"submitter":     submitterName,
		"quote_ref":     quote.QuoteRef,
		"material":      quote.MaterialName,
		"supplier":      quote.SupplierName,
		"price":         fmt.Sprintf("%.2f", quote.RawPrice),
		"currency":      quote.Currency,
		"unit":          quote.Unit,
		"standard_rate": fmt.Sprintf("%.2f", quote.StandardizedPricePerBaseUnit),
		"base_unit":     quote.BaseUnit,
	})

	subject := fmt.Sprintf("Quote pending review: %s from %s", quote.MaterialName, quote.SupplierName)
	if err := es.send(admins, subject, convertHTMLToText(body)); err != nil {
		log.Printf("Failed to send pending-quote notification: %v", err)
	}
}

// NotifyPendingBacklog emails admins a daily digest when quotes have been
// sitting in review for more than a day.
func (es *EmailService) NotifyPendingBacklog(staleCount int) error {
	if staleCount == 0 {
		return nil
	}
	admins, err := storage.GetAdminEmails(es.db)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		return nil
	}
	body := fmt.Sprintf("%d quotes have been pending review for more than 24 hours.", staleCount)
	return es.send(admins, "Quote review backlog", body)
}

// SendPasswordReset emails a reset link that expires shortly.
func (es *EmailService) SendPasswordReset(to, token string) error {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	link := fmt.Sprintf("%s/reset-password/%s", base, token)
	body := fmt.Sprintf("Click the link below to reset your password:\n\n%s\n\nThis link will expire in 15 minutes.", link)
	return es.send([]string{to}, "Reset Your Password", body)
}

func (es *EmailService) send(to []string, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")

	if host == "" || from == "" {
		return fmt.Errorf("SMTP not configured")
	}
	if port == "" {
		port = "587"
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		from, strings.Join(to, ","), subject, body))

	var auth smtp.Auth
	if password != "" {
		auth = smtp.PlainAuth("", from, password, host)
	}
	return smtp.SendMail(host+":"+port, auth, from, to, msg)
}
