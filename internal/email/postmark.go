package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultAPIURL = "https://api.postmarkapp.com/email"

// Client sends transactional mail through the Postmark HTTP API. Sending is
// best-effort everywhere it is used: callers log failures and move on.
type Client struct {
	serverToken string
	fromEmail   string
	baseURL     string
	apiURL      string
	httpClient  *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithAPIURL overrides the Postmark endpoint (used for testing).
func WithAPIURL(url string) Option {
	return func(cl *Client) {
		cl.apiURL = url
	}
}

// NewClient creates a Client. baseURL is the app's public URL used to build
// verification and reset links.
func NewClient(serverToken, fromEmail, baseURL string, opts ...Option) *Client {
	c := &Client{
		serverToken: serverToken,
		fromEmail:   fromEmail,
		baseURL:     baseURL,
		apiURL:      defaultAPIURL,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server token is set.
func (c *Client) Configured() bool {
	return c.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// SendVerification sends the email-verification link for a new account.
func (c *Client) SendVerification(toEmail, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", c.baseURL, token)
	return c.send(postmarkEmail{
		From:     c.fromEmail,
		To:       toEmail,
		Subject:  "Verify your Freezer App account",
		TextBody: fmt.Sprintf("Welcome to Freezer App!\n\nVerify your email address by opening:\n\n%s", link),
		HtmlBody: fmt.Sprintf(`<p>Welcome to Freezer App!</p><p>Verify your email address by clicking <a href="%s">here</a>.</p>`, link),
	})
}

// SendPasswordReset sends a password reset link. The link expires after an
// hour.
func (c *Client) SendPasswordReset(toEmail, token, name string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", c.baseURL, token)
	return c.send(postmarkEmail{
		From:     c.fromEmail,
		To:       toEmail,
		Subject:  "Reset your Freezer App password",
		TextBody: fmt.Sprintf("Hi %s,\n\nReset your password by opening:\n\n%s\n\nThis link expires in 1 hour. If you did not request a reset, ignore this email.", name, link),
		HtmlBody: fmt.Sprintf(`<p>Hi %s,</p><p>Reset your password by clicking <a href="%s">here</a>.</p><p>This link expires in 1 hour. If you did not request a reset, ignore this email.</p>`, name, link),
	})
}

// SendHouseholdInvitation invites someone to join a household by invite code.
func (c *Client) SendHouseholdInvitation(toEmail, householdName, inviteCode, inviterName string) error {
	link := fmt.Sprintf("%s/join?code=%s", c.baseURL, inviteCode)
	return c.send(postmarkEmail{
		From:    c.fromEmail,
		To:      toEmail,
		Subject: fmt.Sprintf("%s invited you to %s on Freezer App", inviterName, householdName),
		TextBody: fmt.Sprintf("%s invited you to join the household %q on Freezer App.\n\nJoin with invite code %s or open:\n\n%s",
			inviterName, householdName, inviteCode, link),
		HtmlBody: fmt.Sprintf(`<p>%s invited you to join the household <strong>%s</strong> on Freezer App.</p><p>Join with invite code <code>%s</code> or click <a href="%s">here</a>.</p>`,
			inviterName, householdName, inviteCode, link),
	})
}

func (c *Client) send(payload postmarkEmail) error {
	if !c.Configured() {
		return fmt.Errorf("email client not configured: missing server token")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}

	return nil
}
