package mailingservices

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

// Mailer sends transactional mail. Split out so tests can drop in a fake.
type Mailer interface {
	SendResetPassword(toEmail, resetLink string) (string, error)
}

type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init() {
	m.Client = mailgun.NewMailgun(os.Getenv("MG_DOMAIN"), os.Getenv("MG_PUBLIC_API_KEY"))
	m.From = os.Getenv("EMAIL_FROM")
}

// SendResetPassword mails the password reset link and returns the provider
// message id.
func (m *Mailgun) SendResetPassword(toEmail, resetLink string) (string, error) {
	subject := "Reset your password"
	body := fmt.Sprintf("Follow this link to reset your password: %s\n\nThe link expires in 30 minutes.", resetLink)
	message := m.Client.NewMessage(m.From, subject, body, toEmail)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, id, err := m.Client.Send(ctx, message)
	if err != nil {
		return "", err
	}
	return id, nil
}
