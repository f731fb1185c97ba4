package email

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendgridMessage builds the v3 mail payload. The template name travels as
// a category and a custom arg so deliveries can be filtered per template in
// the Sendgrid activity feed.
func sendgridMessage(data EmailData, htmlContent, textContent string) *mail.SGMailV3 {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(data.FromName, data.From))
	message.Subject = data.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", data.To))
	p.SetCustomArg("template", data.TemplateName)
	message.AddPersonalizations(p)

	message.AddContent(
		mail.NewContent("text/plain", textContent),
		mail.NewContent("text/html", htmlContent),
	)
	if data.TemplateName != "" {
		message.AddCategories(data.TemplateName)
	}

	return message
}

func (s *Service) sendWithSendgrid(data EmailData, htmlContent, textContent string) error {
	response, err := s.sendgridClient.Send(sendgridMessage(data, htmlContent, textContent))
	if err != nil {
		return fmt.Errorf("sending %s email via Sendgrid: %w", data.TemplateName, err)
	}

	if response.StatusCode != http.StatusAccepted && response.StatusCode != http.StatusOK {
		return fmt.Errorf("sendgrid rejected %s email: status %d: %s", data.TemplateName, response.StatusCode, response.Body)
	}

	return nil
}
