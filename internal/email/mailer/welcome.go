// internal/email/mailer/welcome.go
package mailer

import (
	"context"

	"github.com/dangerclosesec/apmap/internal/email"
	"github.com/dangerclosesec/apmap/internal/model"
)

//go:generate mockgen -source=./welcome.go -destination=../../mocks/mock_welcome_mailer.go -package=mocks Welcomer

// Welcomer greets newly registered users.
type Welcomer interface {
	SendWelcome(ctx context.Context, user *model.User, organizationName string) error
}

// Sender delivers a rendered template email
type Sender interface {
	SendEmail(data email.EmailData) error
}

// WelcomeTemplateData contains data for the welcome email template
type WelcomeTemplateData struct {
	Username         string
	OrganizationName string
	AppURL           string
}

// WelcomeMailer sends the welcome email through a Sender
type WelcomeMailer struct {
	sender Sender
	appURL string
}

func NewWelcomeMailer(sender Sender, appURL string) *WelcomeMailer {
	return &WelcomeMailer{sender: sender, appURL: appURL}
}

// SendWelcome sends the welcome email to a new user
func (m *WelcomeMailer) SendWelcome(ctx context.Context, user *model.User, organizationName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return m.sender.SendEmail(email.EmailData{
		To:           user.Email,
		FromName:     "apmap",
		Subject:      "Welcome to apmap",
		TemplateName: "welcome",
		TemplateData: WelcomeTemplateData{
			Username:         user.Username,
			OrganizationName: organizationName,
			AppURL:           m.appURL,
		},
	})
}
