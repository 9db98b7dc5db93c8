package mail

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateContactSubmission notifies the admin inbox of a new contact form message
const TemplateContactSubmission = "contact_submission"

// Rendered is a message ready to be composed
type Rendered struct {
	Subject     string
	Body        string
	ReplyTo     string
	ReplyToName string
}

type renderer func(data map[string]string) (*Rendered, error)

var contactBody = template.Must(template.New(TemplateContactSubmission).Parse(
	`Er is een nieuw bericht binnengekomen via het contactformulier.

Naam:      {{.name}}
E-mail:    {{.email}}
{{- if .phone}}
Telefoon:  {{.phone}}
{{- end}}
Onderwerp: {{.subject}}

{{.message}}
`))

var renderers = map[string]renderer{
	TemplateContactSubmission: func(data map[string]string) (*Rendered, error) {
		var body bytes.Buffer
		if err := contactBody.Execute(&body, data); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", TemplateContactSubmission, err)
		}
		return &Rendered{
			Subject:     "Nieuw contactformulier: " + data["subject"],
			Body:        body.String(),
			ReplyTo:     data["email"],
			ReplyToName: data["name"],
		}, nil
	},
}

// Render produces the subject and body for templateID
func Render(templateID string, data map[string]string) (*Rendered, error) {
	r, ok := renderers[templateID]
	if !ok {
		return nil, ErrUnknownTemplate{ID: templateID}
	}
	return r(data)
}
