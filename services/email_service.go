package services

import (
	"fmt"
	"orderdesk_server/structs"
	"orderdesk_server/structs/tables"
	"os"
	"path/filepath"
	"strings"

	"github.com/MonkyMars/gecho"
	"gopkg.in/gomail.v2"
)

// MailMessage is a fully rendered email ready for transport.
type MailMessage struct {
	To             []string
	Subject        string
	Text           string
	HTML           string
	AttachmentPath string
}

// Mailer is the transport capability; it can be substituted with a test double.
type Mailer interface {
	Send(msg *MailMessage) error
}

type smtpMailer struct {
	cfg *structs.MailConfig
}

func (m *smtpMailer) Send(msg *MailMessage) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.cfg.From)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		gm.AddAlternative("text/html", msg.HTML)
	}
	if msg.AttachmentPath != "" {
		gm.Attach(msg.AttachmentPath)
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return dialer.DialAndSend(gm)
}

// EmailService formats and dispatches the order notification emails. Send
// results are booleans: a transport failure is logged and reported, never
// raised to the caller's caller.
type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	mailer Mailer
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		mailer: &smtpMailer{cfg: cfg.Mail},
	}
}

// NewEmailServiceWithMailer injects the mail transport, for tests.
func NewEmailServiceWithMailer(logger *gecho.Logger, cfg *structs.Config, mailer Mailer) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		mailer: mailer,
	}
}

func (es *EmailService) SendCustomerEmail(order *tables.Order) bool {
	msg := es.customerMessage(order)

	if err := es.mailer.Send(msg); err != nil {
		es.logger.Error("Failed to send customer email",
			gecho.Field("error", err),
			gecho.Field("to", order.Email),
			gecho.Field("reference_code", order.ReferenceCode))
		return false
	}

	es.logger.Info("Customer email sent",
		gecho.Field("to", order.Email),
		gecho.Field("reference_code", order.ReferenceCode))
	return true
}

func (es *EmailService) SendAdminEmail(order *tables.Order) bool {
	if es.cfg.Mail.AdminEmail == "" {
		es.logger.Warn("Admin email not configured, skipping admin notification",
			gecho.Field("reference_code", order.ReferenceCode))
		return false
	}

	msg := es.adminMessage(order)

	if err := es.mailer.Send(msg); err != nil {
		es.logger.Error("Failed to send admin email",
			gecho.Field("error", err),
			gecho.Field("to", es.cfg.Mail.AdminEmail),
			gecho.Field("reference_code", order.ReferenceCode))
		return false
	}

	es.logger.Info("Admin email sent",
		gecho.Field("to", es.cfg.Mail.AdminEmail),
		gecho.Field("reference_code", order.ReferenceCode))
	return true
}

func (es *EmailService) customerMessage(order *tables.Order) *MailMessage {
	itemsText, itemsHTML, total := itemLines(order)

	text := fmt.Sprintf(`Dear %s,

Thank you for your order!

We have received your order with the following details:
- Order Reference: %s
- Payment Code: %s

Your order details:
- Name: %s
- Email: %s
- Phone: %s
- Shipping Address: %s, %s, %s, %s

Order Items:
%s
Total: ₦%.2f

When making your payment, please include the payment code "%s" in your payment narration.
After making payment, upload your proof of payment to complete your order.

Best regards,
The Team
`,
		order.Name,
		order.ReferenceCode, order.PaymentCode,
		order.Name, order.Email, order.PhoneNumber,
		order.Street, order.City, order.State, order.Country,
		itemsText, total, order.PaymentCode)

	html := fmt.Sprintf(`<html>
<body>
	<h2>Dear %s,</h2>
	<p>Thank you for your order!</p>

	<div style="background-color: #f0f8ff; padding: 15px; border-radius: 5px; margin: 20px 0;">
		<p style="margin: 5px 0;"><strong>Order Reference:</strong> %s</p>
		<p style="margin: 5px 0;"><strong>Payment Code:</strong> <span style="font-size: 20px; color: #d9534f; font-weight: bold;">%s</span></p>
	</div>

	<h3>Your order details:</h3>
	<ul>
		<li><strong>Name:</strong> %s</li>
		<li><strong>Email:</strong> %s</li>
		<li><strong>Phone:</strong> %s</li>
		<li><strong>Shipping Address:</strong> %s, %s, %s, %s</li>
	</ul>

	<h3>Order Items:</h3>
	%s

	<div style="background-color: #fff3cd; padding: 15px; border-left: 4px solid #ffc107; margin: 20px 0;">
		<h3 style="margin-top: 0;">PAYMENT INSTRUCTIONS</h3>
		<p>When making your payment, please include the following code in your payment narration/description:</p>
		<p style="font-size: 24px; font-weight: bold; color: #d9534f; text-align: center; margin: 15px 0;">%s</p>
		<p>After making payment, upload your proof of payment to complete your order.</p>
	</div>

	<p>Best regards,<br>The Team</p>
</body>
</html>`,
		order.Name,
		order.ReferenceCode, order.PaymentCode,
		order.Name, order.Email, order.PhoneNumber,
		order.Street, order.City, order.State, order.Country,
		itemsHTML, order.PaymentCode)

	return &MailMessage{
		To:             []string{order.Email},
		Subject:        "Thank You for Your Order!",
		Text:           text,
		HTML:           html,
		AttachmentPath: es.proofAttachment(order),
	}
}

func (es *EmailService) adminMessage(order *tables.Order) *MailMessage {
	itemsText, itemsHTML, total := itemLines(order)

	proof := "none"
	if order.ProofOfPayment != nil {
		proof = *order.ProofOfPayment
	}

	text := fmt.Sprintf(`New Order Alert!

A new order has been completed with the following details:

Reference Code: %s
Payment Code: %s
Name: %s
Email: %s
Phone: %s
Street: %s
City: %s
State: %s
Country: %s
Proof of Payment: %s
Created At: %s

Order Items:
%s
Total Amount: ₦%.2f

The customer has been instructed to include the payment code "%s" in their payment narration.

Please review and process this order.
`,
		order.ReferenceCode, order.PaymentCode,
		order.Name, order.Email, order.PhoneNumber,
		order.Street, order.City, order.State, order.Country,
		proof, order.CreatedAt.Format("2006-01-02 15:04:05"),
		itemsText, total, order.PaymentCode)

	html := fmt.Sprintf(`<html>
<body>
	<h2>New Order Alert!</h2>
	<p>A new order has been completed with the following details:</p>

	<table border="1" cellpadding="10" cellspacing="0" style="border-collapse: collapse;">
		<tr><td><strong>Reference Code</strong></td><td>%s</td></tr>
		<tr style="background-color: #fff3cd;"><td><strong>Payment Code</strong></td><td><strong style="color: #d9534f; font-size: 16px;">%s</strong></td></tr>
		<tr><td><strong>Name</strong></td><td>%s</td></tr>
		<tr><td><strong>Email</strong></td><td>%s</td></tr>
		<tr><td><strong>Phone</strong></td><td>%s</td></tr>
		<tr><td><strong>Street</strong></td><td>%s</td></tr>
		<tr><td><strong>City</strong></td><td>%s</td></tr>
		<tr><td><strong>State</strong></td><td>%s</td></tr>
		<tr><td><strong>Country</strong></td><td>%s</td></tr>
		<tr><td><strong>Proof of Payment</strong></td><td>%s</td></tr>
		<tr><td><strong>Created At</strong></td><td>%s</td></tr>
	</table>

	<h3>Order Items:</h3>
	%s

	<p>Please review and process this order.</p>
</body>
</html>`,
		order.ReferenceCode, order.PaymentCode,
		order.Name, order.Email, order.PhoneNumber,
		order.Street, order.City, order.State, order.Country,
		proof, order.CreatedAt.Format("2006-01-02 15:04:05"),
		itemsHTML)

	return &MailMessage{
		To:             []string{es.cfg.Mail.AdminEmail},
		Subject:        "New Order Created - " + order.ReferenceCode,
		Text:           text,
		HTML:           html,
		AttachmentPath: es.proofAttachment(order),
	}
}

// proofAttachment resolves the stored proof file, if the order has one and it
// is still present on disk.
func (es *EmailService) proofAttachment(order *tables.Order) string {
	if order.ProofOfPayment == nil {
		return ""
	}

	path := filepath.Join(es.cfg.Upload.Dir, *order.ProofOfPayment)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// itemLines renders the itemized list once for both the text and HTML bodies
// and returns the grand total.
func itemLines(order *tables.Order) (string, string, float64) {
	var textBuilder, htmlBuilder strings.Builder
	var total float64

	htmlBuilder.WriteString(`<table border="1" cellpadding="8" cellspacing="0" style="border-collapse: collapse;">
		<thead>
			<tr style="background-color: #f2f2f2;"><th>Item</th><th>Price</th><th>Quantity</th><th>Total</th></tr>
		</thead>
		<tbody>`)

	for _, item := range order.Items {
		lineTotal := item.LineTotal()
		total += lineTotal
		fmt.Fprintf(&textBuilder, "- %s: ₦%.2f x %d = ₦%.2f\n", item.Name, item.Amount, item.Quantity, lineTotal)
		fmt.Fprintf(&htmlBuilder, `<tr><td>%s</td><td>₦%.2f</td><td>%d</td><td>₦%.2f</td></tr>`,
			item.Name, item.Amount, item.Quantity, lineTotal)
	}

	fmt.Fprintf(&htmlBuilder, `</tbody>
		<tfoot>
			<tr style="font-weight: bold; background-color: #f2f2f2;"><td colspan="3" style="text-align: right;">Total:</td><td>₦%.2f</td></tr>
		</tfoot>
	</table>`, total)

	return textBuilder.String(), htmlBuilder.String(), total
}
