package notify

import (
	"context"
	"errors"
	"testing"

	"sfss/internal/domain/grant"
	"sfss/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureProvider struct {
	sent    *mailer.EmailData
	sendErr error
}

func (p *captureProvider) Send(data *mailer.EmailData) (*mailer.EmailResult, error) {
	p.sent = data
	if p.sendErr != nil {
		return &mailer.EmailResult{Success: false, Provider: "capture"}, p.sendErr
	}
	return &mailer.EmailResult{Success: true, Provider: "capture"}, nil
}

func (p *captureProvider) Verify() (bool, error) { return true, nil }
func (p *captureProvider) GetName() string       { return "capture" }

func TestEmailNotifier_SendAccessCode(t *testing.T) {
	provider := &captureProvider{}
	notifier := NewEmailNotifier(provider, "noreply@example.com")

	g := &grant.AccessGrant{
		FileName:              "report.pdf",
		Recipients:            []string{"bob@example.com", "charlie@example.com"},
		AccessCode:            "482913",
		ExpiryDurationMinutes: 5,
	}

	err := notifier.SendAccessCode(context.Background(), g, "alice@example.com")
	require.NoError(t, err)

	require.NotNil(t, provider.sent)
	assert.Equal(t, []string{"bob@example.com", "charlie@example.com"}, provider.sent.To)
	assert.Equal(t, "noreply@example.com", provider.sent.From)
	assert.Equal(t, "Secure File Access - report.pdf", provider.sent.Subject)
	assert.Contains(t, provider.sent.Text, "482913")
	assert.Contains(t, provider.sent.Text, "alice@example.com")
	assert.Contains(t, provider.sent.Text, "5 minutes after your first access")
}

func TestEmailNotifier_SendAccessCode_ProviderError(t *testing.T) {
	provider := &captureProvider{sendErr: errors.New("provider down")}
	notifier := NewEmailNotifier(provider, "noreply@example.com")

	g := &grant.AccessGrant{
		FileName:              "report.pdf",
		Recipients:            []string{"bob@example.com"},
		AccessCode:            "482913",
		ExpiryDurationMinutes: 5,
	}

	err := notifier.SendAccessCode(context.Background(), g, "alice@example.com")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "capture")
}

type nilResultProvider struct{}

func (p *nilResultProvider) Send(*mailer.EmailData) (*mailer.EmailResult, error) {
	return nil, errors.New("connection refused")
}

func (p *nilResultProvider) Verify() (bool, error) { return false, nil }
func (p *nilResultProvider) GetName() string       { return "nilresult" }

func TestEmailNotifier_SendAccessCode_NilResultOnError(t *testing.T) {
	notifier := NewEmailNotifier(&nilResultProvider{}, "noreply@example.com")

	g := &grant.AccessGrant{
		FileName:              "report.pdf",
		Recipients:            []string{"bob@example.com"},
		AccessCode:            "482913",
		ExpiryDurationMinutes: 5,
	}

	err := notifier.SendAccessCode(context.Background(), g, "alice@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nilresult")
}
