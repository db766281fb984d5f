package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DevRyuki/todo-with-cline/app/service"
	"github.com/DevRyuki/todo-with-cline/config"
)

func TestNewResendMailer_RequiresConfiguration(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.MailConfig
	}{
		{"missing api key", config.MailConfig{ResendDomain: "example.com", AppURL: "https://app.example.com"}},
		{"missing domain", config.MailConfig{ResendAPIKey: "key", AppURL: "https://app.example.com"}},
		{"missing app url", config.MailConfig{ResendAPIKey: "key", ResendDomain: "example.com"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.NewResendMailer(tc.cfg)
			if !errors.Is(err, service.ErrMailerNotConfigured) {
				t.Fatalf("expected ErrMailerNotConfigured, got %v", err)
			}
		})
	}
}

func TestResendMailer_SendPasswordReset(t *testing.T) {
	type sentMail struct {
		From    string `json:"from"`
		To      string `json:"to"`
		Subject string `json:"subject"`
		HTML    string `json:"html"`
	}

	var received sentMail
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	mailer, err := service.NewResendMailer(config.MailConfig{
		ResendAPIKey: "test-key",
		ResendDomain: "example.com",
		AppURL:       "https://app.example.com",
	}, service.WithEndpoint(server.URL))
	if err != nil {
		t.Fatalf("failed to build mailer: %v", err)
	}

	resetURL := "https://app.example.com/auth/reset-password?token=deadbeef"
	if err := mailer.SendPasswordReset(context.Background(), "alice@example.com", "Alice", resetURL); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if authHeader != "Bearer test-key" {
		t.Errorf("unexpected authorization header: %s", authHeader)
	}
	if received.From != "noreply@example.com" {
		t.Errorf("unexpected from: %s", received.From)
	}
	if received.To != "alice@example.com" {
		t.Errorf("unexpected to: %s", received.To)
	}
	if !strings.Contains(received.HTML, resetURL) {
		t.Error("mail body does not contain the reset link")
	}
	if !strings.Contains(received.HTML, "Hello Alice,") {
		t.Error("mail body does not greet the user by name")
	}
}

func TestResendMailer_SendPasswordReset_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	mailer, err := service.NewResendMailer(config.MailConfig{
		ResendAPIKey: "bad-key",
		ResendDomain: "example.com",
		AppURL:       "https://app.example.com",
	}, service.WithEndpoint(server.URL))
	if err != nil {
		t.Fatalf("failed to build mailer: %v", err)
	}

	err = mailer.SendPasswordReset(context.Background(), "alice@example.com", "", "https://app.example.com/reset")
	if err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error should carry the status code: %v", err)
	}
}
