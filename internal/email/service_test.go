package email

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/dangerclosesec/apmap/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type welcomeData struct {
	Username         string
	OrganizationName string
	AppURL           string
}

func TestEmbeddedTemplatesRender(t *testing.T) {
	s, err := NewEmailService(&config.Config{}, ProviderLog)
	require.NoError(t, err)
	require.Contains(t, s.Templates, "welcome")

	html, text, err := s.renderTemplate("welcome", welcomeData{
		Username:         "alice",
		OrganizationName: "Acme <Corp>",
		AppURL:           "https://apmap.example",
	})
	require.NoError(t, err)

	assert.Contains(t, text, "Welcome, alice!")
	assert.Contains(t, text, "You joined Acme <Corp>.")
	assert.Contains(t, html, "Acme &lt;Corp&gt;")
	assert.Contains(t, html, "https://apmap.example")
}

func TestRenderUnknownTemplate(t *testing.T) {
	s, err := NewEmailService(&config.Config{}, ProviderLog)
	require.NoError(t, err)

	_, _, err = s.renderTemplate("missing", nil)
	assert.ErrorContains(t, err, "template missing not found")
}

func TestLoadTemplatesRequiresBothFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/emails/broken/html.tmpl": {Data: []byte("<p>hi</p>")},
	}
	_, err := newService(&config.Config{}, ProviderLog, fsys)
	assert.ErrorContains(t, err, "invalid email template group broken")

	_, err = newService(&config.Config{}, ProviderLog, fstest.MapFS{
		"templates/emails/README": {Data: []byte("none")},
	})
	assert.ErrorContains(t, err, "no email templates found")
}

func TestSendEmailLogProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.Sendgrid.From = "no-reply@apmap.local"

	s, err := NewEmailService(cfg, ProviderLog)
	require.NoError(t, err)

	err = s.SendEmail(EmailData{To: "a@example.com", Subject: "hi", TemplateName: "welcome", TemplateData: welcomeData{Username: "a"}})
	assert.NoError(t, err)

	err = s.SendEmail(EmailData{To: "a@example.com", TemplateName: "nope"})
	assert.Error(t, err)
}

func TestUnsupportedProvider(t *testing.T) {
	s, err := NewEmailService(&config.Config{}, Provider("pigeon"))
	require.NoError(t, err)

	err = s.SendEmail(EmailData{TemplateName: "welcome", TemplateData: welcomeData{}})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "pigeon"))
}

func TestProviderFor(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, ProviderLog, ProviderFor(cfg))
	cfg.Sendgrid.APIKey = "SG.key"
	assert.Equal(t, ProviderSendgrid, ProviderFor(cfg))
}

func TestSendgridMessage(t *testing.T) {
	msg := sendgridMessage(EmailData{
		To:           "alice@example.com",
		From:         "no-reply@apmap.local",
		FromName:     "apmap",
		Subject:      "Welcome",
		TemplateName: "welcome",
	}, "<p>hi</p>", "hi")

	assert.Equal(t, "no-reply@apmap.local", msg.From.Address)
	assert.Equal(t, "apmap", msg.From.Name)
	assert.Equal(t, "Welcome", msg.Subject)
	require.Len(t, msg.Personalizations, 1)
	require.Len(t, msg.Personalizations[0].To, 1)
	assert.Equal(t, "alice@example.com", msg.Personalizations[0].To[0].Address)
	assert.Equal(t, "welcome", msg.Personalizations[0].CustomArgs["template"])
	assert.Equal(t, []string{"welcome"}, msg.Categories)
	require.Len(t, msg.Content, 2)
	assert.Equal(t, "text/plain", msg.Content[0].Type)
	assert.Equal(t, "text/html", msg.Content[1].Type)
}
