package mailer

import "net/mail"

type EmailProvider interface {
	Send(emailData *EmailData) (*EmailResult, error)
	Verify() (bool, error)
	GetName() string
}

type BaseProvider struct {
	APIKey       string
	ProviderName string
}

func (p *BaseProvider) GetName() string {
	return p.ProviderName
}

type EmailData struct {
	To      []string
	From    string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
}

type EmailResult struct {
	Success   bool
	MessageID string
	Error     string
	Provider  string
}

func ValidateEmail(email string) error {
	_, err := mail.ParseAddress(email)
	return err
}

func ValidateEmailData(data *EmailData) error {
	if len(data.To) == 0 {
		return ErrAtLeastOneRecipient
	}

	for _, to := range data.To {
		if err := ValidateEmail(to); err != nil {
			return err
		}
	}

	if data.From == "" {
		return ErrFromRequired
	}
	if err := ValidateEmail(data.From); err != nil {
		return err
	}

	if data.Subject == "" {
		return ErrSubjectRequired
	}

	if data.HTML == "" && data.Text == "" {
		return ErrBodyRequired
	}

	if data.ReplyTo != "" {
		if err := ValidateEmail(data.ReplyTo); err != nil {
			return err
		}
	}

	return nil
}

func isHTTPSuccess(statusCode int) bool {
	return statusCode >= httpStatusSuccessMin && statusCode < httpStatusSuccessMax
}
