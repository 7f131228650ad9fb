package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gamestore-zarzis/backend/pkg/email"
)

const DefaultBaseURL = "https://api.brevo.com/v3"

// Client is a Brevo transactional email API client.
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	fromName   string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, from, fromName string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("empty brevo api key")
	}

	if !email.IsEmailValid(from) {
		return nil, errors.New("invalid from email")
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		from:       from,
		fromName:   fromName,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type contact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendEmailRequest struct {
	Sender      contact   `json:"sender"`
	To          []contact `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent,omitempty"`
	TextContent string    `json:"textContent,omitempty"`
}

func (c *Client) Send(ctx context.Context, input email.SendEmailInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	reqBody := sendEmailRequest{
		Sender:      contact{Email: c.from, Name: c.fromName},
		To:          []contact{{Email: input.To, Name: input.Name}},
		Subject:     input.Subject,
		HTMLContent: input.Body,
		TextContent: input.Text,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal brevo request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/smtp/email", bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create brevo request failed: %w", err)
	}

	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("brevo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("brevo api error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return nil
}
