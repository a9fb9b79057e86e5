// Package notify renders and delivers transactional emails.
package notify

import (
	"bytes"
	"embed"
	"fmt"
	htmltmpl "html/template"
	"net/mail"
	"sync"
	texttmpl "text/template"
)

//go:embed templates/*
var templateFS embed.FS

var (
	textTemplates *texttmpl.Template
	htmlTemplates *htmltmpl.Template
	tmplErr       error
	tmplInit      sync.Once
)

func loadTemplates() error {
	tmplInit.Do(func() {
		textTemplates, tmplErr = texttmpl.ParseFS(templateFS, "templates/*.txt")
		if tmplErr != nil {
			return
		}
		htmlTemplates, tmplErr = htmltmpl.ParseFS(templateFS, "templates/*.html")
	})
	return tmplErr
}

// Message is an outgoing email. TemplateName selects <name>.txt and <name>.html under templates/.
type Message struct {
	To      []mail.Address
	Subject string

	TemplateName string
	TemplateData any
	TextContent  string
	HTMLContent  string
}

// Mailer is anything that can deliver emails
type Mailer interface {
	// SendMessages sends messages concurrently
	SendMessages(messages ...*Message)
}

// Render fills TextContent and HTMLContent from the message template
func (m *Message) Render() error {
	if m.TemplateName == "" {
		return nil
	}
	if err := loadTemplates(); err != nil {
		return fmt.Errorf("parsing email templates: %w", err)
	}

	var text bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&text, m.TemplateName+".txt", m.TemplateData); err != nil {
		return fmt.Errorf("rendering %s.txt: %w", m.TemplateName, err)
	}
	var html bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, m.TemplateName+".html", m.TemplateData); err != nil {
		return fmt.Errorf("rendering %s.html: %w", m.TemplateName, err)
	}
	m.TextContent = text.String()
	m.HTMLContent = html.String()
	return nil
}

func (m *Message) HasRecipients() bool {
	return len(m.To) > 0
}

func (m *Message) HasContent() bool {
	return m.TextContent != "" || m.HTMLContent != ""
}
