package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DevRyuki/todo-with-cline/config"
)

const resendEndpoint = "https://api.resend.com/emails"

var ErrMailerNotConfigured = errors.New("mail delivery is not configured")

// Mailer delivers transactional mail.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, userName, resetURL string) error
}

// ResendMailer sends through the Resend REST API.
type ResendMailer struct {
	apiKey   string
	domain   string
	endpoint string
	client   *http.Client
}

type ResendMailerOption func(*ResendMailer)

// NewResendMailer fails when the provider configuration is incomplete so a
// misconfigured deployment refuses to start instead of silently dropping mail.
func NewResendMailer(cfg config.MailConfig, opts ...ResendMailerOption) (*ResendMailer, error) {
	if cfg.ResendAPIKey == "" || cfg.ResendDomain == "" {
		return nil, fmt.Errorf("%w: RESEND_API_KEY and RESEND_DOMAIN are required", ErrMailerNotConfigured)
	}
	if cfg.AppURL == "" {
		return nil, fmt.Errorf("%w: APP_URL is required to build reset links", ErrMailerNotConfigured)
	}

	m := &ResendMailer{
		apiKey:   cfg.ResendAPIKey,
		domain:   cfg.ResendDomain,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// WithEndpoint overrides the Resend API endpoint, used by tests.
func WithEndpoint(endpoint string) ResendMailerOption {
	return func(m *ResendMailer) {
		m.endpoint = endpoint
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) ResendMailerOption {
	return func(m *ResendMailer) {
		m.client = client
	}
}

type resendPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (m *ResendMailer) SendPasswordReset(ctx context.Context, to, userName, resetURL string) error {
	greeting := "Hello,"
	if userName != "" {
		greeting = fmt.Sprintf("Hello %s,", userName)
	}

	payload := resendPayload{
		From:    fmt.Sprintf("noreply@%s", m.domain),
		To:      to,
		Subject: "Password reset instructions",
		HTML: fmt.Sprintf(`<h1>Password reset</h1>
<p>%s</p>
<p>We received a request to reset your password. Click the link below to choose a new one.</p>
<p><a href="%s">Reset your password</a></p>
<p>This link is valid for 24 hours.</p>
<p>If you did not request a password reset, you can safely ignore this email.</p>`, greeting, resetURL),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend API returned status %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
