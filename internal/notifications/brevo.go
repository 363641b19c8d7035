package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBrevoEndpoint = "https://api.brevo.com/v3/smtp/email"

var (
	ErrNotConfigured = errors.New("brevo client is not configured")
	ErrEmptyMessage  = errors.New("message needs a recipient, a subject and a body")
)

// Message is one transactional e-mail.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

func (m Message) valid() bool {
	return strings.TrimSpace(m.To) != "" && strings.TrimSpace(m.Subject) != "" && strings.TrimSpace(m.HTML) != ""
}

// BrevoClient sends mail through Brevo's SMTP API.
type BrevoClient struct {
	apiKey   string
	sender   brevoContact
	sandbox  bool
	endpoint string
	http     *http.Client
}

// NewBrevoClient returns nil when the key or sender is missing, which callers
// treat as e-mail being disabled.
func NewBrevoClient(apiKey, senderEmail, senderName string, sandbox bool) *BrevoClient {
	apiKey, senderEmail = strings.TrimSpace(apiKey), strings.TrimSpace(senderEmail)
	if apiKey == "" || senderEmail == "" {
		return nil
	}
	if strings.TrimSpace(senderName) == "" {
		senderName = senderEmail
	}
	return &BrevoClient{
		apiKey:   apiKey,
		sender:   brevoContact{Email: senderEmail, Name: senderName},
		sandbox:  sandbox,
		endpoint: defaultBrevoEndpoint,
		http:     &http.Client{Timeout: 8 * time.Second},
	}
}

// WithEndpoint points the client at another URL, such as a local test server.
func (c *BrevoClient) WithEndpoint(endpoint string) *BrevoClient {
	if c != nil && endpoint != "" {
		c.endpoint = endpoint
	}
	return c
}

// Send delivers msg and returns the provider's message id.
func (c *BrevoClient) Send(ctx context.Context, msg Message) (string, error) {
	if c == nil {
		return "", ErrNotConfigured
	}
	if !msg.valid() {
		return "", ErrEmptyMessage
	}

	body := brevoEmail{
		Sender:      c.sender,
		To:          []brevoContact{{Email: msg.To, Name: msg.ToName}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	}
	if c.sandbox {
		// Brevo validates the request but drops the e-mail
		body.Headers = map[string]string{"X-Sib-Sandbox": "drop"}
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("brevo encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("brevo request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("brevo send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("brevo send: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var accepted struct {
		MessageID string `json:"messageId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&accepted); err != nil {
		return "", fmt.Errorf("brevo decode: %w", err)
	}
	if accepted.MessageID == "" {
		return "", errors.New("brevo send: response has no messageId")
	}
	return accepted.MessageID, nil
}

type brevoEmail struct {
	Sender      brevoContact      `json:"sender"`
	To          []brevoContact    `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	Headers     map[string]string `json:"headers,omitempty"`
}

type brevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
