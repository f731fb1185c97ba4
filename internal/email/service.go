// internal/email/service.go
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	texttemplate "text/template"

	"github.com/dangerclosesec/apmap"
	"github.com/dangerclosesec/apmap/internal/config"
	"github.com/sendgrid/sendgrid-go"
)

// Provider identifies supported email providers
type Provider string

const (
	ProviderSendgrid Provider = "sendgrid"
	// ProviderLog renders messages and logs them instead of sending
	ProviderLog Provider = "log"

	DefaultTemplatePath = "templates/emails"
)

// ProviderFor picks Sendgrid when an API key is configured.
func ProviderFor(cfg *config.Config) Provider {
	if cfg.Sendgrid.APIKey != "" {
		return ProviderSendgrid
	}
	return ProviderLog
}

// EmailData contains all necessary information for sending an email
type EmailData struct {
	To           string
	From         string
	FromName     string
	Subject      string
	TemplateName string
	TemplateData interface{}
}

// Service handles email operations
type Service struct {
	config         *config.Config
	provider       Provider
	sendgridClient *sendgrid.Client
	Templates      map[string]*Template
}

type Template struct {
	HTML      *template.Template
	Plaintext *texttemplate.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(config *config.Config, provider Provider) (*Service, error) {
	return newService(config, provider, apmap.EmailFS)
}

func newService(config *config.Config, provider Provider, templateFS fs.FS) (*Service, error) {
	s := &Service{
		config:    config,
		provider:  provider,
		Templates: make(map[string]*Template),
	}

	if provider == ProviderSendgrid {
		s.sendgridClient = sendgrid.NewSendClient(config.Sendgrid.APIKey)
	}

	if err := s.loadTemplates(templateFS); err != nil {
		return nil, fmt.Errorf("loading email templates: %w", err)
	}

	return s, nil
}

// loadTemplates loads all email templates from the embedded filesystem
func (s *Service) loadTemplates(templateFS fs.FS) error {
	templateGroups, err := fs.ReadDir(templateFS, DefaultTemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read email templates directory: %w", err)
	}

	for _, group := range templateGroups {
		if !group.IsDir() {
			continue
		}

		groupPath := DefaultTemplatePath + "/" + group.Name()

		html, err := template.ParseFS(templateFS, groupPath+"/html.tmpl")
		if err != nil {
			return fmt.Errorf("invalid email template group %s: %w", group.Name(), err)
		}
		text, err := texttemplate.ParseFS(templateFS, groupPath+"/plaintext.tmpl")
		if err != nil {
			return fmt.Errorf("invalid email template group %s: %w", group.Name(), err)
		}

		s.Templates[group.Name()] = &Template{HTML: html, Plaintext: text}
	}

	if len(s.Templates) == 0 {
		return fmt.Errorf("no email templates found")
	}

	return nil
}

// SendEmail sends an email using the configured provider
func (s *Service) SendEmail(data EmailData) error {
	// Renders both HTML and text versions of the email
	htmlContent, textContent, err := s.renderTemplate(data.TemplateName, data.TemplateData)
	if err != nil {
		return fmt.Errorf("rendering %s template: %w", data.TemplateName, err)
	}

	if data.From == "" {
		data.From = s.config.Sendgrid.From
	}

	switch s.provider {
	case ProviderSendgrid:
		return s.sendWithSendgrid(data, htmlContent, textContent)
	case ProviderLog:
		slog.Info("email not sent, no provider configured",
			"to", data.To, "subject", data.Subject, "template", data.TemplateName, "bytes", len(textContent))
		return nil
	default:
		return fmt.Errorf("unsupported email provider: %s", s.provider)
	}
}

// renderTemplate renders a template with the given data
func (s *Service) renderTemplate(name string, data interface{}) (string, string, error) {
	tmpl, exists := s.Templates[name]
	if !exists {
		return "", "", fmt.Errorf("template %s not found", name)
	}

	var htmlbuf bytes.Buffer
	if err := tmpl.HTML.Execute(&htmlbuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}

	var textbuf bytes.Buffer
	if err := tmpl.Plaintext.Execute(&textbuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}

	return htmlbuf.String(), textbuf.String(), nil
}
