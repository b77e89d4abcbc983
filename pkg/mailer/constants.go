package mailer

import (
	"errors"
	"fmt"
)

const (
	ProviderSendGrid = "sendgrid"

	SendGridAPIURL       = "https://api.sendgrid.com"
	pathSendGridMailSend = "/v3/mail/send"
	pathSendGridScopes   = "/v3/scopes"

	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerMessageID     = "X-Message-Id"
	authBearerPrefix    = "Bearer "

	mimeApplicationJSON = "application/json"
	mimeTextPlain       = "text/plain"
	mimeTextHTML        = "text/html"

	httpStatusSuccessMin = 200
	httpStatusSuccessMax = 300

	msgFailedMarshalPayloadFmt = "failed to marshal payload: %v"
	msgFailedCreateRequestFmt  = "failed to create request: %v"
	msgRequestFailedFmt        = "request failed: %v"
	msgSendGridAPIErrorFmt     = "sendgrid API error (status %d): %s"
)

var (
	ErrAPIKeyRequired      = errors.New("API key is required")
	ErrAtLeastOneRecipient = errors.New("at least one recipient is required")
	ErrFromRequired        = errors.New("from address is required")
	ErrSubjectRequired     = errors.New("subject is required")
	ErrBodyRequired        = errors.New("email body is required")

	errAPIStatus = func(status int) error {
		return fmt.Errorf("API returned status %d", status)
	}
)
