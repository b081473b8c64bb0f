package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Branded HTML shells for the storefront emails. Content stays minimal;
// the surrounding markup matches the site's palette.

var baseTmpl = template.Must(template.New("base").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <div style="background: #722F37; padding: 30px; text-align: center;">
        <h1 style="color: #D4AF37; margin: 0;">{{.Brand}}</h1>
        <p style="color: #F5EDE4; margin: 5px 0 0;">{{.Tagline}}</p>
    </div>
    <div style="padding: 30px; background: #FFFEF9;">
        {{.Body}}
    </div>
    <div style="background: #2C2420; padding: 20px; text-align: center; color: #9E9186;">
        <p style="margin: 0;">{{.Footer}}</p>
    </div>
</div>`))

type templateData struct {
	Brand   string
	Tagline string
	Body    template.HTML
	Footer  string
}

func (m *Mailer) render(tagline string, body string) string {
	brand := m.config.FromName
	if brand == "" {
		brand = "Kara-Saaram"
	}

	var buf bytes.Buffer
	err := baseTmpl.Execute(&buf, templateData{
		Brand:   brand,
		Tagline: tagline,
		Body:    template.HTML(body),
		Footer:  fmt.Sprintf("%s. All rights reserved.", brand),
	})
	if err != nil {
		// Template is static, execution can only fail on writer errors
		return body
	}
	return buf.String()
}

// SendWelcome greets a newly registered account
func (m *Mailer) SendWelcome(to string, name string) error {
	if name == "" {
		name = "Valued Customer"
	}
	body := fmt.Sprintf(`
        <h2 style="color: #722F37;">Welcome to the Family!</h2>
        <p>Hello %s,</p>
        <p>Thank you for creating an account with us. Your account gives you
        quick checkout, order history and member-only offers.</p>`,
		template.HTMLEscapeString(name))

	return m.Send(&Message{
		To:      []string{to},
		Subject: "Welcome! Your Culinary Journey Begins",
		Text:    fmt.Sprintf("Welcome, %s! Thank you for creating an account with us.", name),
		HTML:    m.render("Authentic Chettinadu Masalas", body),
	})
}

// SendPasswordReset mails the raw reset token link
func (m *Mailer) SendPasswordReset(to, name, resetURL string) error {
	if name == "" {
		name = "User"
	}
	body := fmt.Sprintf(`
        <h2 style="color: #722F37;">Hello %s,</h2>
        <p>You requested a password reset for your account.</p>
        <p><a href="%s" style="background: #D4AF37; color: #2C2420; padding: 12px 30px; text-decoration: none; border-radius: 5px; font-weight: bold;">Reset Password</a></p>
        <p style="color: #999; font-size: 0.85rem;">This link will expire in 1 hour.
        If you did not request this, please ignore this email.</p>`,
		template.HTMLEscapeString(name), resetURL)

	return m.Send(&Message{
		To:      []string{to},
		Subject: "Password Reset Request",
		Text: fmt.Sprintf("Hello %s,\n\nReset your password: %s\n\nThis link will expire in 1 hour.",
			name, resetURL),
		HTML: m.render("Password Reset", body),
	})
}

// SendPasswordChanged confirms a completed reset
func (m *Mailer) SendPasswordChanged(to, name string) error {
	if name == "" {
		name = "User"
	}
	body := fmt.Sprintf(`
        <h2 style="color: #722F37;">Password Changed Successfully</h2>
        <p>Hello %s,</p>
        <p>Your password has been successfully changed.</p>
        <p style="color: #999; font-size: 0.85rem;">If you did not make this change, please contact us immediately.</p>`,
		template.HTMLEscapeString(name))

	return m.Send(&Message{
		To:      []string{to},
		Subject: "Password Changed",
		Text:    fmt.Sprintf("Hello %s,\n\nYour password has been successfully changed.", name),
		HTML:    m.render("Account Security", body),
	})
}

// SendSubscriberWelcome greets a newsletter subscriber
func (m *Mailer) SendSubscriberWelcome(to string, reactivation bool) error {
	heading := "Welcome to the Family!"
	subject := "Welcome to our Newsletter"
	if reactivation {
		heading = "Welcome Back!"
		subject = "Welcome Back to our Newsletter"
	}

	body := fmt.Sprintf(`
        <h2 style="color: #722F37; text-align: center;">%s</h2>
        <p style="text-align: center;">As a subscriber you'll receive authentic
        Chettinadu recipes, cooking tips, exclusive offers and new product
        announcements.</p>`, heading)

	return m.Send(&Message{
		To:      []string{to},
		Subject: subject,
		Text:    "Thank you for subscribing to our newsletter!",
		HTML:    m.render("Authentic Chettinadu Masalas", body),
	})
}

// SendAdminNewSubscriber notifies the admin inbox about a signup
func (m *Mailer) SendAdminNewSubscriber(subscriberEmail string) error {
	adminTo := m.config.AdminTo
	if adminTo == "" {
		adminTo = m.config.From
	}

	body := fmt.Sprintf(`
        <h2 style="color: #722F37;">New Newsletter Subscriber</h2>
        <p><strong>Email:</strong> %s</p>`,
		template.HTMLEscapeString(subscriberEmail))

	return m.Send(&Message{
		To:      []string{adminTo},
		Subject: fmt.Sprintf("New Newsletter Subscriber: %s", subscriberEmail),
		Text:    fmt.Sprintf("New newsletter subscription!\n\nEmail: %s", subscriberEmail),
		HTML:    m.render("Newsletter", body),
	})
}

// SendNewsletter sends one message BCC'd to all recipients
func (m *Mailer) SendNewsletter(recipients []string, subject, content, htmlContent string) error {
	body := htmlContent
	if body == "" {
		body = strings.ReplaceAll(template.HTMLEscapeString(content), "\n", "<br>")
	}

	return m.Send(&Message{
		To:      []string{m.config.From},
		BCC:     recipients,
		Subject: subject,
		Text:    content,
		HTML:    m.render("Newsletter", body),
	})
}
