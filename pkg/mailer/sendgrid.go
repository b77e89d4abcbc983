package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type SendGridProvider struct {
	BaseProvider
	APIURL string
}

type SendGridConfig struct {
	APIKey string
	APIURL string
}

func NewSendGridProvider(config SendGridConfig) *SendGridProvider {
	apiURL := config.APIURL
	if apiURL == "" {
		apiURL = SendGridAPIURL
	}

	return &SendGridProvider{
		BaseProvider: BaseProvider{
			APIKey:       config.APIKey,
			ProviderName: ProviderSendGrid,
		},
		APIURL: apiURL,
	}
}

func (p *SendGridProvider) Send(emailData *EmailData) (*EmailResult, error) {
	if p.APIKey == "" {
		return &EmailResult{
			Success:  false,
			Error:    ErrAPIKeyRequired.Error(),
			Provider: p.ProviderName,
		}, ErrAPIKeyRequired
	}

	if err := ValidateEmailData(emailData); err != nil {
		return &EmailResult{
			Success:  false,
			Error:    err.Error(),
			Provider: p.ProviderName,
		}, err
	}

	toList := make([]map[string]string, len(emailData.To))
	for i, email := range emailData.To {
		toList[i] = map[string]string{"email": email}
	}

	content := []map[string]string{}
	if emailData.Text != "" {
		content = append(content, map[string]string{"type": mimeTextPlain, "value": emailData.Text})
	}
	if emailData.HTML != "" {
		content = append(content, map[string]string{"type": mimeTextHTML, "value": emailData.HTML})
	}

	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{{"to": toList}},
		"from":             map[string]string{"email": emailData.From},
		"subject":          emailData.Subject,
		"content":          content,
	}

	if emailData.ReplyTo != "" {
		payload["reply_to"] = map[string]string{"email": emailData.ReplyTo}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf(msgFailedMarshalPayloadFmt, err),
			Provider: p.ProviderName,
		}, err
	}

	req, err := http.NewRequest(http.MethodPost, p.APIURL+pathSendGridMailSend, bytes.NewBuffer(jsonData))
	if err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf(msgFailedCreateRequestFmt, err),
			Provider: p.ProviderName,
		}, err
	}

	req.Header.Set(headerAuthorization, authBearerPrefix+p.APIKey)
	req.Header.Set(headerContentType, mimeApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf(msgRequestFailedFmt, err),
			Provider: p.ProviderName,
		}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if !isHTTPSuccess(resp.StatusCode) {
		return &EmailResult{
			Success:  false,
			Error:    fmt.Sprintf(msgSendGridAPIErrorFmt, resp.StatusCode, string(body)),
			Provider: p.ProviderName,
		}, errAPIStatus(resp.StatusCode)
	}

	return &EmailResult{
		Success:   true,
		MessageID: resp.Header.Get(headerMessageID),
		Provider:  p.ProviderName,
	}, nil
}

func (p *SendGridProvider) Verify() (bool, error) {
	if p.APIKey == "" {
		return false, ErrAPIKeyRequired
	}

	req, err := http.NewRequest(http.MethodGet, p.APIURL+pathSendGridScopes, nil)
	if err != nil {
		return false, err
	}

	req.Header.Set(headerAuthorization, authBearerPrefix+p.APIKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	return isHTTPSuccess(resp.StatusCode), nil
}
