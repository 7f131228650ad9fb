package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/gamestore-zarzis/backend/pkg/logger"
)

var ErrAPIKeyMissing = errors.New("sms api key is not set")

type Sender interface {
	Send(ctx context.Context, to string, body string) error
}

// HTTPSender posts {to, body, api_key} to a generic SMS gateway. When disabled it
// runs in stub mode: the message is logged and reported as sent.
type HTTPSender struct {
	providerURL string
	apiKey      string
	enabled     bool
	httpClient  *http.Client
}

func NewHTTPSender(providerURL, apiKey string, enabled bool, timeout time.Duration) *HTTPSender {
	return &HTTPSender{
		providerURL: providerURL,
		apiKey:      apiKey,
		enabled:     enabled,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSender) Enabled() bool {
	return s.enabled
}

type sendRequest struct {
	To     string `json:"to"`
	Body   string `json:"body"`
	APIKey string `json:"api_key"`
}

func (s *HTTPSender) Send(ctx context.Context, to string, body string) error {
	if !s.enabled {
		logger.Info("sms service disabled, message not sent", zap.String("to", to))
		return nil
	}

	if s.apiKey == "" {
		return ErrAPIKeyMissing
	}

	jsonData, err := json.Marshal(sendRequest{To: to, Body: body, APIKey: s.apiKey})
	if err != nil {
		return fmt.Errorf("marshal sms request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.providerURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create sms request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sms provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	logger.Info("sms sent", zap.String("to", to))

	return nil
}
