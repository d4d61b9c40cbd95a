package twilio

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.twilio.com"
	sendTimeout    = 20 * time.Second
)

// Backend delivers messages over WhatsApp through the Twilio REST API
type Backend struct {
	accountSID string
	authToken  string
	from       string
	to         string

	baseURL string
	client  *http.Client
}

// New creates a Twilio WhatsApp backend. Any missing credential
// produces an unconfigured backend that the sender skips.
func New(accountSID, authToken, from, to string) *Backend {
	return &Backend{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		to:         to,
		baseURL:    defaultBaseURL,
		client:     &http.Client{Timeout: sendTimeout},
	}
}

// Name implements delivery.Backend
func (b *Backend) Name() string {
	return "twilio whatsapp"
}

// Configured implements delivery.Backend
func (b *Backend) Configured() bool {
	return b.accountSID != "" && b.authToken != "" && b.from != "" && b.to != ""
}

// Send implements delivery.Backend. One form POST to the Messages
// endpoint, basic auth with the account credentials.
func (b *Backend) Send(text string) error {
	form := url.Values{
		"From": {b.from},
		"To":   {b.to},
		"Body": {text},
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", b.baseURL, b.accountSID)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build twilio request: %w", err)
	}
	req.SetBasicAuth(b.accountSID, b.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("send twilio message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("twilio returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
