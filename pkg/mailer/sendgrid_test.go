package mailer

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendGridProvider_Send(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotPayload)
		w.Header().Set("X-Message-Id", "msg-123")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	p := NewSendGridProvider(SendGridConfig{APIKey: "sg-key", APIURL: server.URL})

	result, err := p.Send(&EmailData{
		To:      []string{"bob@example.com"},
		From:    "noreply@example.com",
		Subject: "hello",
		Text:    "plain body",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "msg-123", result.MessageID)
	assert.Equal(t, ProviderSendGrid, result.Provider)
	assert.Equal(t, "Bearer sg-key", gotAuth)
	assert.Equal(t, "hello", gotPayload["subject"])
}

func TestSendGridProvider_Send_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	p := NewSendGridProvider(SendGridConfig{APIKey: "sg-key", APIURL: server.URL})

	result, err := p.Send(&EmailData{
		To:      []string{"bob@example.com"},
		From:    "noreply@example.com",
		Subject: "hello",
		Text:    "plain body",
	})
	assert.Error(t, err)
	assert.False(t, result.Success)
}

func TestSendGridProvider_Send_MissingAPIKey(t *testing.T) {
	p := NewSendGridProvider(SendGridConfig{})

	_, err := p.Send(&EmailData{
		To:      []string{"bob@example.com"},
		From:    "noreply@example.com",
		Subject: "hello",
		Text:    "plain body",
	})
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
}

func TestValidateEmailData(t *testing.T) {
	valid := &EmailData{
		To:      []string{"bob@example.com"},
		From:    "noreply@example.com",
		Subject: "hello",
		Text:    "body",
	}
	assert.NoError(t, ValidateEmailData(valid))

	cases := []struct {
		name   string
		mutate func(*EmailData)
	}{
		{"no recipients", func(d *EmailData) { d.To = nil }},
		{"bad recipient", func(d *EmailData) { d.To = []string{"nope"} }},
		{"no from", func(d *EmailData) { d.From = "" }},
		{"no subject", func(d *EmailData) { d.Subject = "" }},
		{"no body", func(d *EmailData) { d.Text = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := *valid
			tc.mutate(&data)
			assert.Error(t, ValidateEmailData(&data))
		})
	}
}
