package services

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"shophub/models"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns nil without error when SMTP is not configured; order
// confirmation email is optional.
func NewMailer() (*Mailer, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, nil
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = smtpUser
	}

	return &Mailer{
		dialer: gomail.NewDialer(smtpHost, port, smtpUser, smtpPass),
		from:   from,
	}, nil
}

func (m *Mailer) SendOrderConfirmation(toEmail string, order *models.Order) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Order %s confirmed - ShopHub", order.OrderNumber))

	rows := ""
	for _, item := range order.Items {
		rows += fmt.Sprintf(
			`<tr><td style="padding:8px;border-bottom:1px solid #eee;">%s</td>
			<td style="padding:8px;border-bottom:1px solid #eee;text-align:center;">%d</td>
			<td style="padding:8px;border-bottom:1px solid #eee;text-align:right;">%s</td></tr>`,
			item.ProductName, item.Quantity, item.Total.StringFixed(2))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
	<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
		<h2 style="color: #333;">Thank you for your order!</h2>
		<p>Your order <strong>%s</strong> has been placed and is now pending.</p>
		<table style="width:100%%; border-collapse: collapse;">
			<tr><th style="text-align:left;padding:8px;">Item</th><th style="padding:8px;">Qty</th><th style="text-align:right;padding:8px;">Total</th></tr>
			%s
		</table>
		<p style="margin-top:20px;">
			Subtotal: %s<br>
			Tax: %s<br>
			Shipping: %s<br>
			<strong>Total: %s</strong>
		</p>
		<p>Shipping to: %s</p>
		<p style="color: #666; font-size: 12px; margin-top: 30px;">This is an automated email. Please do not reply.</p>
	</div>
</body>
</html>`,
		order.OrderNumber, rows,
		order.Subtotal.StringFixed(2), order.Tax.StringFixed(2),
		order.Shipping.StringFixed(2), order.Total.StringFixed(2),
		order.ShippingAddress)

	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}
