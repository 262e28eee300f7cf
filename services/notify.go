package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"github.com/rs/zerolog/log"
)

const resendAPIURL = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Notifier emails users when their book finishes generating. All sends are
// best effort; a notification failure never fails a pipeline.
type Notifier struct {
	apiKey     string
	fromEmail  string
	userLookup func(uuid.UUID) (*models.User, error)
	client     *http.Client
}

// NewNotifier returns nil when no API key is configured, which disables
// notifications entirely.
func NewNotifier(apiKey, fromEmail string, userLookup func(uuid.UUID) (*models.User, error)) *Notifier {
	if apiKey == "" {
		return nil
	}
	return &Notifier{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		userLookup: userLookup,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// ProjectCompleted tells the owning user their book is ready.
func (n *Notifier) ProjectCompleted(userID uuid.UUID, title string) {
	logger := log.With().Str("service", "notify").Str("userId", userID.String()).Logger()

	user, err := n.userLookup(userID)
	if err != nil {
		logger.Warn().Err(err).Msg("Could not resolve user for completion email")
		return
	}

	subject := fmt.Sprintf("Your ebook %q is ready", title)
	body := fmt.Sprintf(`<p>Good news - your ebook <strong>%s</strong> has finished generating.</p>
<p>Open your dashboard to preview it, download the exports, or generate marketing mockups.</p>`, title)

	if err := n.send(subject, body, []string{user.Email}); err != nil {
		logger.Warn().Err(err).Msg("Completion email failed")
		return
	}
	logger.Debug().Msg("Completion email sent")
}

func (n *Notifier) send(subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	payload := ResendEmailRequest{
		From:    n.fromEmail,
		To:      recipients,
		Subject: subject,
		Html:    body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, resendAPIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}
