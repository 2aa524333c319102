package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/spokefoods/spoke-backend/config"
	"github.com/spokefoods/spoke-backend/models"
	"github.com/spokefoods/spoke-backend/utils"
)

// SMTPConfig holds connection credentials, populated from the environment.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

func smtpConfigFromEnv() SMTPConfig {
	return SMTPConfig{
		Host:     config.Get("SMTP_HOST", "smtp.gmail.com"),
		Port:     config.Get("SMTP_PORT", "465"),
		Username: config.Get("EMAIL_USER", ""),
		Password: config.Get("EMAIL_PASS", ""),
		From:     config.Get("EMAIL_USER", "orders@spoke.com"),
		FromName: "Spoke Restaurant",
	}
}

// Mailer sends order notification emails, or appends them to a durable queue
// when the outbound path is down. A failed send never propagates to the
// order flow that triggered it.
type Mailer struct {
	DB     *gorm.DB
	SMTP   SMTPConfig
	Online ReachabilityChecker
}

func NewMailer(db *gorm.DB, online ReachabilityChecker) *Mailer {
	return &Mailer{DB: db, SMTP: smtpConfigFromEnv(), Online: online}
}

// Send delivers one email via SMTP. Implicit TLS on 465, STARTTLS otherwise.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if m.SMTP.Username == "" {
		return fmt.Errorf("mailer: EMAIL_USER not configured")
	}

	addr := m.SMTP.Host + ":" + m.SMTP.Port
	auth := smtp.PlainAuth("", m.SMTP.Username, m.SMTP.Password, m.SMTP.Host)
	raw := m.buildRaw(to, subject, htmlBody)

	if m.SMTP.Port == "465" {
		return m.sendTLS(addr, auth, to, raw)
	}
	return smtp.SendMail(addr, auth, m.SMTP.From, []string{to}, raw)
}

// SendOrQueue delivers when the reachability probe says online, otherwise
// queues. A live send that still fails is queued as well.
func (m *Mailer) SendOrQueue(to, subject, htmlBody string) {
	if m.Online() {
		if err := m.Send(to, subject, htmlBody); err == nil {
			utils.InfoLogger.Printf("Email sent to %s", to)
			return
		} else {
			utils.ErrorLogger.Printf("Email to %s failed, queueing: %v", to, err)
		}
	} else {
		utils.InfoLogger.Printf("Offline: email queued for %s", to)
	}

	queued := models.QueuedEmail{Recipient: to, Subject: subject, Body: htmlBody}
	if err := m.DB.Create(&queued).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to queue email for %s: %v", to, err)
	}
}

// FlushQueue retries every unsent queued email. Returns how many went out.
func (m *Mailer) FlushQueue() (int, error) {
	var pending []models.QueuedEmail
	if err := m.DB.Where("sent_at IS NULL").Order("id asc").Find(&pending).Error; err != nil {
		return 0, err
	}

	sent := 0
	for i := range pending {
		if err := m.Send(pending[i].Recipient, pending[i].Subject, pending[i].Body); err != nil {
			// Stop at the first failure; the link is probably down again.
			return sent, err
		}
		now := time.Now()
		pending[i].SentAt = &now
		if err := m.DB.Save(&pending[i]).Error; err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// StartQueueFlusher periodically drains the queue while online.
func (m *Mailer) StartQueueFlusher(interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)
			if !m.Online() {
				continue
			}
			if sent, err := m.FlushQueue(); err != nil {
				utils.ErrorLogger.Printf("Queue flush stopped after %d emails: %v", sent, err)
			} else if sent > 0 {
				utils.InfoLogger.Printf("Flushed %d queued emails", sent)
			}
		}
	}()
}

func (m *Mailer) sendTLS(addr string, auth smtp.Auth, to string, raw []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.SMTP.Host})
	if err != nil {
		return fmt.Errorf("mailer: TLS dial: %w", err)
	}
	client, err := smtp.NewClient(conn, m.SMTP.Host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(m.SMTP.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	defer w.Close()
	_, err = w.Write(raw)
	return err
}

func (m *Mailer) buildRaw(to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.SMTP.FromName, m.SMTP.From))
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

// ------------------- Order email rendering -------------------

// OrderEmailLine is one row of the order table in a notification email.
type OrderEmailLine struct {
	Name     string
	Quantity int
	Price    float64
	Subtotal float64
	ImageSrc template.URL
}

// OrderEmailData feeds the confirmation and out-for-delivery templates.
type OrderEmailData struct {
	UserName    string
	OrderNumber string
	Location    string
	Lines       []OrderEmailLine
	FoodTotal   float64
	DeliveryFee float64
	Total       float64
}

var emailFuncs = template.FuncMap{
	"inr": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
}

var orderConfirmationTmpl = template.Must(template.New("confirmation").Funcs(emailFuncs).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 10px;">
  <h2 style="color: #333;">Payment Successful!</h2>
  <p>Dear {{.UserName}},</p>
  <p>Thank you for your order at Spoke Restaurant! Your payment of {{inr .Total}} for Order #{{.OrderNumber}} has been successfully processed.</p>
  <h3 style="color: #333;">Order Details</h3>
  <p><strong>Delivery Location:</strong> {{.Location}}</p>
  <table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">
    <thead>
      <tr style="background-color: #f5f5f5;">
        <th style="padding: 10px; text-align: center;">Image</th>
        <th style="padding: 10px; text-align: left;">Item</th>
        <th style="padding: 10px; text-align: center;">Quantity</th>
        <th style="padding: 10px; text-align: right;">Price</th>
        <th style="padding: 10px; text-align: right;">Subtotal</th>
      </tr>
    </thead>
    <tbody>
      {{range .Lines}}
      <tr>
        <td style="padding: 10px; text-align: center;"><img src="{{.ImageSrc}}" alt="{{.Name}}" style="width: 100px; height: 100px; object-fit: cover; border-radius: 5px;"></td>
        <td style="padding: 10px;">{{.Name}}</td>
        <td style="padding: 10px; text-align: center;">{{.Quantity}}</td>
        <td style="padding: 10px; text-align: right;">{{inr .Price}}</td>
        <td style="padding: 10px; text-align: right;">{{inr .Subtotal}}</td>
      </tr>
      {{end}}
    </tbody>
    <tfoot>
      <tr><td colspan="4" style="padding: 10px; text-align: right;">Food Total:</td><td style="padding: 10px; text-align: right;">{{inr .FoodTotal}}</td></tr>
      <tr><td colspan="4" style="padding: 10px; text-align: right;">Delivery Fee:</td><td style="padding: 10px; text-align: right;">{{inr .DeliveryFee}}</td></tr>
      <tr><td colspan="4" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td><td style="padding: 10px; text-align: right; font-weight: bold;">{{inr .Total}}</td></tr>
    </tfoot>
  </table>
  <p>We're preparing your order and will notify you when it's out for delivery.</p>
  <p>Questions? Contact us at <a href="mailto:support@spoke.com" style="color: #007bff;">support@spoke.com</a>.</p>
  <p style="margin-top: 20px;">Best regards,<br>Spoke Restaurant Team</p>
</div>`))

var outForDeliveryTmpl = template.Must(template.New("out_for_delivery").Funcs(emailFuncs).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 10px;">
  <h2 style="color: #333;">Your Order is Out for Delivery!</h2>
  <p>Dear {{.UserName}},</p>
  <p>Great news! Your order #{{.OrderNumber}} from Spoke Restaurant is now out for delivery.</p>
  <h3 style="color: #333;">Order Details:</h3>
  <table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">
    <thead>
      <tr style="background-color: #f5f5f5;">
        <th style="padding: 10px; text-align: center;">Image</th>
        <th style="padding: 10px; text-align: left;">Item</th>
        <th style="padding: 10px; text-align: center;">Quantity</th>
        <th style="padding: 10px; text-align: right;">Price</th>
        <th style="padding: 10px; text-align: right;">Subtotal</th>
      </tr>
    </thead>
    <tbody>
      {{range .Lines}}
      <tr>
        <td style="padding: 10px; text-align: center;"><img src="{{.ImageSrc}}" alt="{{.Name}}" style="width: 100px; height: 100px; object-fit: cover; border-radius: 5px;"></td>
        <td style="padding: 10px;">{{.Name}}</td>
        <td style="padding: 10px; text-align: center;">{{.Quantity}}</td>
        <td style="padding: 10px; text-align: right;">{{inr .Price}}</td>
        <td style="padding: 10px; text-align: right;">{{inr .Subtotal}}</td>
      </tr>
      {{end}}
    </tbody>
    <tfoot>
      <tr><td colspan="4" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td><td style="padding: 10px; text-align: right; font-weight: bold;">{{inr .Total}}</td></tr>
    </tfoot>
  </table>
  <p>Estimated Delivery: Within the next hour.</p>
  <p>Track your order or contact us at <a href="mailto:support@spoke.com" style="color: #007bff;">support@spoke.com</a>.</p>
  <p style="margin-top: 20px;">Enjoy your meal!<br>Spoke Restaurant Team</p>
</div>`))

// RenderOrderConfirmation builds the checkout confirmation email body.
func RenderOrderConfirmation(data OrderEmailData) (string, error) {
	var buf bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderOutForDelivery builds the delivery notification email body.
func RenderOutForDelivery(data OrderEmailData) (string, error) {
	var buf bytes.Buffer
	if err := outForDeliveryTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
