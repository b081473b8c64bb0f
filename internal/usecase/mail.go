package usecase

// MailSender is the slice of the mailer the services use. Satisfied by
// *mailer.Mailer in production wiring.
type MailSender interface {
	Configured() bool
	SendWelcome(to string, name string) error
	SendPasswordReset(to, name, resetURL string) error
	SendPasswordChanged(to, name string) error
	SendSubscriberWelcome(to string, reactivation bool) error
	SendAdminNewSubscriber(subscriberEmail string) error
	SendNewsletter(recipients []string, subject, content, htmlContent string) error
}
