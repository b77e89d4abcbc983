package notify

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"sfss/internal/domain/grant"
	"sfss/pkg/mailer"
)

const (
	subjectFmt = "Secure File Access - %s"

	accessCodeText = `A file has been securely shared with you.

Uploader: {{.UploaderEmail}}
File: {{.FileName}}

Your access code: {{.AccessCode}}

This file will expire {{.ExpiryMinutes}} minutes after your first access.

Do NOT share this code with anyone.
`
)

var accessCodeTmpl = template.Must(template.New("access_code").Parse(accessCodeText))

// EmailNotifier delivers access codes to grant recipients via an email
// provider. One email goes to all recipients of a grant.
type EmailNotifier struct {
	provider mailer.EmailProvider
	from     string
}

func NewEmailNotifier(provider mailer.EmailProvider, from string) *EmailNotifier {
	return &EmailNotifier{provider: provider, from: from}
}

type accessCodeContext struct {
	UploaderEmail string
	FileName      string
	AccessCode    string
	ExpiryMinutes int
}

func (n *EmailNotifier) SendAccessCode(_ context.Context, g *grant.AccessGrant, ownerEmail string) error {
	var body strings.Builder
	err := accessCodeTmpl.Execute(&body, accessCodeContext{
		UploaderEmail: ownerEmail,
		FileName:      g.FileName,
		AccessCode:    g.AccessCode,
		ExpiryMinutes: g.ExpiryDurationMinutes,
	})
	if err != nil {
		return fmt.Errorf("failed to render access code email: %w", err)
	}

	_, err = n.provider.Send(&mailer.EmailData{
		To:      g.Recipients,
		From:    n.from,
		Subject: fmt.Sprintf(subjectFmt, g.FileName),
		Text:    body.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to send access code email via %s: %w", n.provider.GetName(), err)
	}

	return nil
}
